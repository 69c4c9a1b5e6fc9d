// models/team.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

// Team is one club in one season. A new season always gets a new row.
type Team struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Nome           string         `json:"nome" gorm:"not null;size:120;index"`
	Sigla          string         `json:"sigla" gorm:"size:10"`
	Cor            string         `json:"cor" gorm:"size:20"`
	Cidade         string         `json:"cidade" gorm:"size:100"`
	BandeiraEstado string         `json:"bandeira_estado"`
	Fundacao       string         `json:"fundacao" gorm:"size:20"`
	Logo           string         `json:"logo"`
	Capacete       string         `json:"capacete"`
	Instagram      string         `json:"instagram"`
	Instagram2     string         `json:"instagram2"`
	Estadio        string         `json:"estadio"`
	Presidente     string         `json:"presidente"`
	HeadCoach      string         `json:"head_coach"`
	InstagramCoach string         `json:"instagram_coach"`
	CoordOfen      string         `json:"coord_ofen"`
	CoordDefen     string         `json:"coord_defen"`
	Titulos        datatypes.JSON `json:"titulos"`
	Temporada      string         `json:"temporada" gorm:"not null;size:10;index"`
	Jogadores      []TeamPlayer   `json:"jogadores,omitempty" gorm:"foreignKey:TimeID"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// EmptyTitles is stored when a team is created without a titles list.
func EmptyTitles() datatypes.JSON {
	return datatypes.JSON("[]")
}

func (Team) TableName() string {
	return "times"
}
