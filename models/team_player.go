// models/team_player.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

// TeamPlayer links a player to a team for exactly one season and carries
// the season-scoped jersey and statistics.
type TeamPlayer struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	JogadorID    uint           `json:"jogadorId" gorm:"not null;index"`
	Jogador      *Player        `json:"jogador,omitempty" gorm:"foreignKey:JogadorID"`
	TimeID       uint           `json:"timeId" gorm:"not null;index"`
	Time         *Team          `json:"time,omitempty" gorm:"foreignKey:TimeID"`
	Temporada    string         `json:"temporada" gorm:"not null;size:10;index"`
	Numero       int            `json:"numero"`
	Camisa       string         `json:"camisa"`
	Estatisticas datatypes.JSON `json:"estatisticas"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// EmptyStats is the statistics blob every new link starts with.
func EmptyStats() datatypes.JSON {
	return datatypes.JSON("{}")
}

func (TeamPlayer) TableName() string {
	return "jogador_times"
}
