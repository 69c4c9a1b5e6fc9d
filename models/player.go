// models/player.go
package models

import "time"

const DefaultSector = "Ataque"

// Player identity is season independent; season data lives on TeamPlayer.
type Player struct {
	ID            uint         `json:"id" gorm:"primaryKey"`
	Nome          string       `json:"nome" gorm:"not null;size:120;index"`
	TimeFormador  string       `json:"timeFormador"`
	Posicao       string       `json:"posicao" gorm:"size:40"`
	Setor         string       `json:"setor" gorm:"size:20;default:'Ataque'"`
	Experiencia   int          `json:"experiencia"`
	Idade         int          `json:"idade"`
	Altura        float64      `json:"altura"`
	Peso          float64      `json:"peso"`
	Instagram     string       `json:"instagram"`
	Instagram2    string       `json:"instagram2"`
	Cidade        string       `json:"cidade"`
	Nacionalidade string       `json:"nacionalidade"`
	Times         []TeamPlayer `json:"times,omitempty" gorm:"foreignKey:JogadorID"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

func (Player) TableName() string {
	return "jogadores"
}
