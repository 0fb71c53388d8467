package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/quizhub-io/quiz-service/internal/models"
	"github.com/quizhub-io/quiz-service/internal/repositories"
)

type AnswerPostgreSQL struct {
	db *gorm.DB
}

func NewAnswerPostgreSQL(db *gorm.DB) repositories.AnswerRepository {
	return &AnswerPostgreSQL{db: db}
}

func (a *AnswerPostgreSQL) getDB(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return a.db
}

func (a *AnswerPostgreSQL) Create(ctx context.Context, tx *gorm.DB, answer *models.UserAnswer) error {
	db := a.getDB(tx)
	if err := db.WithContext(ctx).Create(answer).Error; err != nil {
		return fmt.Errorf("failed to create answer: %w", err)
	}
	return nil
}

func (a *AnswerPostgreSQL) GetByAttemptID(ctx context.Context, tx *gorm.DB, attemptID uint) ([]*models.UserAnswer, error) {
	db := a.getDB(tx)
	var answers []*models.UserAnswer
	if err := db.WithContext(ctx).
		Where("quiz_attempt_id = ?", attemptID).
		Find(&answers).Error; err != nil {
		return nil, fmt.Errorf("failed to get answers for attempt %d: %w", attemptID, err)
	}
	return answers, nil
}

// GetByQuestionID is an indexed lookup; question deletion depends on it
// finding every answer row that references the question.
func (a *AnswerPostgreSQL) GetByQuestionID(ctx context.Context, tx *gorm.DB, questionID uint) ([]*models.UserAnswer, error) {
	db := a.getDB(tx)
	var answers []*models.UserAnswer
	if err := db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Find(&answers).Error; err != nil {
		return nil, fmt.Errorf("failed to get answers for question %d: %w", questionID, err)
	}
	return answers, nil
}

func (a *AnswerPostgreSQL) DeleteByQuestionID(ctx context.Context, tx *gorm.DB, questionID uint) error {
	db := a.getDB(tx)
	if err := db.WithContext(ctx).
		Where("question_id = ?", questionID).
		Delete(&models.UserAnswer{}).Error; err != nil {
		return fmt.Errorf("failed to delete answers for question %d: %w", questionID, err)
	}
	return nil
}
