package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/troia-reservas/internal/caldate"
)

type Reservation struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name  string `gorm:"size:120;not null" json:"name"`
	Email string `gorm:"size:120;not null" json:"email"`
	Phone string `gorm:"size:30;not null" json:"phone"`

	Guests int          `gorm:"not null" json:"guests"`
	Date   caldate.Date `gorm:"type:date;not null" json:"date"`
	Period string       `gorm:"column:periodo;size:10;not null" json:"periodo"`

	CreatedAt time.Time `json:"created_at"`
}

func (Reservation) TableName() string {
	return "reservations"
}

func (r *Reservation) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
