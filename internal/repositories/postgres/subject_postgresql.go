package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/quizhub-io/quiz-service/internal/cache"
	"github.com/quizhub-io/quiz-service/internal/models"
	"github.com/quizhub-io/quiz-service/internal/repositories"
)

type SubjectPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewSubjectPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.SubjectRepository {
	return &SubjectPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (s *SubjectPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return s.db
}

func (s *SubjectPostgreSQL) List(ctx context.Context, tx *gorm.DB) ([]*models.Subject, error) {
	db := s.getDB(tx)
	var subjects []*models.Subject
	if err := db.WithContext(ctx).Find(&subjects).Error; err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

func (s *SubjectPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Subject, error) {
	db := s.getDB(tx)
	cacheKey := fmt.Sprintf("id:%d", id)
	var subject models.Subject

	err := s.cacheManager.Subject.CacheOrExecute(ctx, cacheKey, &subject, cache.SubjectCacheConfig.TTL, func() (interface{}, error) {
		var dbSubject models.Subject
		if err := db.WithContext(ctx).First(&dbSubject, id).Error; err != nil {
			return nil, err
		}
		return &dbSubject, nil
	})
	if err != nil {
		return nil, err
	}
	return &subject, nil
}
