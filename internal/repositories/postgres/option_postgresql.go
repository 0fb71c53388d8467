package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/quizhub-io/quiz-service/internal/cache"
	"github.com/quizhub-io/quiz-service/internal/models"
	"github.com/quizhub-io/quiz-service/internal/repositories"
)

type OptionPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewOptionPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.OptionRepository {
	return &OptionPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (o *OptionPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return o.db
}

func (o *OptionPostgreSQL) Create(ctx context.Context, tx *gorm.DB, option *models.QuestionOption) error {
	db := o.getDB(tx)
	if err := db.WithContext(ctx).Create(option).Error; err != nil {
		return fmt.Errorf("failed to create option: %w", err)
	}
	cache.SafeDelete(ctx, o.cacheManager.Question, fmt.Sprintf("options:%d", option.QuestionID))
	return nil
}

func (o *OptionPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.QuestionOption, error) {
	db := o.getDB(tx)
	var option models.QuestionOption
	if err := db.WithContext(ctx).First(&option, id).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

func (o *OptionPostgreSQL) GetByQuestionID(ctx context.Context, tx *gorm.DB, questionID uint) ([]*models.QuestionOption, error) {
	db := o.getDB(tx)
	cacheKey := fmt.Sprintf("options:%d", questionID)
	var options []*models.QuestionOption

	err := o.cacheManager.Question.CacheOrExecute(ctx, cacheKey, &options, cache.QuestionCacheConfig.TTL, func() (interface{}, error) {
		var dbOptions []*models.QuestionOption
		if err := db.WithContext(ctx).
			Where("question_id = ?", questionID).
			Order("order_num").
			Find(&dbOptions).Error; err != nil {
			return nil, err
		}
		return dbOptions, nil
	})
	if err != nil {
		return nil, err
	}
	return options, nil
}

func (o *OptionPostgreSQL) DeleteByQuestionID(ctx context.Context, tx *gorm.DB, questionID uint) error {
	db := o.getDB(tx)
	if err := db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Delete(&models.QuestionOption{}).Error; err != nil {
		return fmt.Errorf("failed to delete options for question %d: %w", questionID, err)
	}
	cache.SafeDelete(ctx, o.cacheManager.Question, fmt.Sprintf("options:%d", questionID))
	return nil
}
