package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Conta de acesso ao painel; o papel decide quem vê as reservas
type Profile struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Email        string `gorm:"size:120;uniqueIndex;not null" json:"email"`
	FullName     string `gorm:"size:120" json:"full_name"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Role         string `gorm:"size:20;default:'user'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p *Profile) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
