package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/quizhub-io/quiz-service/internal/models"
	"github.com/quizhub-io/quiz-service/internal/repositories"
)

type AuditPostgreSQL struct {
	db *gorm.DB
}

func NewAuditPostgreSQL(db *gorm.DB) repositories.AuditRepository {
	return &AuditPostgreSQL{db: db}
}

func (a *AuditPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return a.db
}

func (a *AuditPostgreSQL) Create(ctx context.Context, tx *gorm.DB, event *models.AuditEvent) error {
	db := a.getDB(tx)
	if err := db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create audit event: %w", err)
	}
	return nil
}

func (a *AuditPostgreSQL) ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*models.AuditEvent, error) {
	db := a.getDB(tx)
	if limit <= 0 {
		limit = 100
	}
	var events []*models.AuditEvent
	if err := db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	return events, nil
}
