package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/quizhub-io/quiz-service/internal/cache"
	"github.com/quizhub-io/quiz-service/internal/models"
	"github.com/quizhub-io/quiz-service/internal/repositories"
)

type QuestionPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewQuestionPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.QuestionRepository {
	return &QuestionPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (q *QuestionPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return q.db
}

func (q *QuestionPostgreSQL) Create(ctx context.Context, tx *gorm.DB, question *models.Question) error {
	db := q.getDB(tx)
	if err := db.WithContext(ctx).Create(question).Error; err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	cache.InvalidateQuestionCache(ctx, q.cacheManager, question.ID)
	return nil
}

func (q *QuestionPostgreSQL) GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Question, error) {
	db := q.getDB(tx)
	cacheKey := fmt.Sprintf("id:%d", id)
	var question models.Question

	err := q.cacheManager.Question.CacheOrExecute(ctx, cacheKey, &question, cache.QuestionCacheConfig.TTL, func() (interface{}, error) {
		var dbQuestion models.Question
		if err := db.WithContext(ctx).First(&dbQuestion, id).Error; err != nil {
			return nil, err
		}
		return &dbQuestion, nil
	})
	if err != nil {
		return nil, err
	}
	return &question, nil
}

func (q *QuestionPostgreSQL) GetByQuizID(ctx context.Context, tx *gorm.DB, quizID uint) ([]*models.Question, error) {
	db := q.getDB(tx)
	var questions []*models.Question
	if err := db.WithContext(ctx).
		Where("quiz_id = ?", quizID).
		Order("order_num").
		Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to get questions for quiz %d: %w", quizID, err)
	}
	return questions, nil
}

// GetByOrderNum reads the live table; the duplicate-number check depends on
// this never serving a stale cached answer.
func (q *QuestionPostgreSQL) GetByOrderNum(ctx context.Context, tx *gorm.DB, orderNum int) ([]*models.Question, error) {
	db := q.getDB(tx)
	var questions []*models.Question
	if err := db.WithContext(ctx).
		Where("order_num = ?", orderNum).
		Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to get questions by order num %d: %w", orderNum, err)
	}
	return questions, nil
}

func (q *QuestionPostgreSQL) ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error) {
	db := q.getDB(tx)
	var count int64
	if err := db.WithContext(ctx).
		Model(&models.Question{}).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check question existence: %w", err)
	}
	return count > 0, nil
}

func (q *QuestionPostgreSQL) Delete(ctx context.Context, tx *gorm.DB, id uint) error {
	db := q.getDB(tx)

	var question models.Question
	if err := db.WithContext(ctx).First(&question, id).Error; err == nil {
		defer cache.InvalidateQuestionCache(ctx, q.cacheManager, question.ID)
	}

	if err := db.WithContext(ctx).Delete(&models.Question{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete question %d: %w", id, err)
	}
	return nil
}
