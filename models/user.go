// models/user.go
package models

import (
	"time"
)

// Plan is a subscription tier carried in the access token.
type Plan string

const (
	PlanBasico  Plan = "BASICO"
	PlanPadrao  Plan = "PADRAO"
	PlanPremium Plan = "PREMIUM"
)

// Valid reports whether p is one of the known tiers.
func (p Plan) Valid() bool {
	switch p {
	case PlanBasico, PlanPadrao, PlanPremium:
		return true
	}
	return false
}

// Allows reports whether a holder of p may access a route gated on required.
// PREMIUM opens every gate.
func (p Plan) Allows(required Plan) bool {
	return p == required || p == PlanPremium
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Nome      string    `gorm:"not null" json:"nome"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Senha     string    `gorm:"not null" json:"-"`
	Plano     Plan      `gorm:"size:20;default:'BASICO'" json:"plano"`
	IsAdmin   bool      `gorm:"default:false" json:"admin"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	LastLogin time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "usuarios"
}
