package audit

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/troia-reservas/internal/models"
)

// Logger grava eventos na tabela audit_logs.
type Logger struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Logger {
	return &Logger{db: db}
}

func (l *Logger) Record(ctx context.Context, ev Event) error {
	var metaJSON string
	if ev.Metadata != nil {
		if b, err := json.Marshal(ev.Metadata); err == nil {
			metaJSON = string(b)
		}
	}

	log := models.AuditLog{
		UserID:   ev.UserID,
		Action:   ev.Action,
		Entity:   ev.Entity,
		EntityID: ev.EntityID,
		Metadata: metaJSON,
	}

	return l.db.WithContext(ctx).Create(&log).Error
}
