// models/article.go
package models

import "time"

type Article struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Titulo     string    `json:"titulo" gorm:"not null;size:200"`
	Subtitulo  string    `json:"subtitulo" gorm:"size:300"`
	Imagem     string    `json:"imagem"`
	Legenda    string    `json:"legenda"`
	Texto      string    `json:"texto" gorm:"type:text;not null"`
	Autor      string    `json:"autor" gorm:"size:120"`
	AutorImage string    `json:"autorImage"`
	CreatedAt  time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (Article) TableName() string {
	return "materias"
}
