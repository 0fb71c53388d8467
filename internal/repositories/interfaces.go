package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/quizhub-io/quiz-service/internal/models"
)

// All methods accept an optional transaction handle; a nil tx runs against
// the base connection.

type QuizRepository interface {
	List(ctx context.Context, tx *gorm.DB) ([]*models.Quiz, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Quiz, error)
}

type SubjectRepository interface {
	List(ctx context.Context, tx *gorm.DB) ([]*models.Subject, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Subject, error)
}

type QuestionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, question *models.Question) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.Question, error)
	GetByQuizID(ctx context.Context, tx *gorm.DB, quizID uint) ([]*models.Question, error)
	GetByOrderNum(ctx context.Context, tx *gorm.DB, orderNum int) ([]*models.Question, error)
	ExistsByID(ctx context.Context, tx *gorm.DB, id uint) (bool, error)
	Delete(ctx context.Context, tx *gorm.DB, id uint) error
}

type OptionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, option *models.QuestionOption) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.QuestionOption, error)
	GetByQuestionID(ctx context.Context, tx *gorm.DB, questionID uint) ([]*models.QuestionOption, error)
	DeleteByQuestionID(ctx context.Context, tx *gorm.DB, questionID uint) error
}

type AttemptRepository interface {
	Create(ctx context.Context, tx *gorm.DB, attempt *models.QuizAttempt) error
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.QuizAttempt, error)
	Update(ctx context.Context, tx *gorm.DB, attempt *models.QuizAttempt) error
	List(ctx context.Context, tx *gorm.DB) ([]*models.QuizAttempt, error)
}

type AnswerRepository interface {
	Create(ctx context.Context, tx *gorm.DB, answer *models.UserAnswer) error
	GetByAttemptID(ctx context.Context, tx *gorm.DB, attemptID uint) ([]*models.UserAnswer, error)
	GetByQuestionID(ctx context.Context, tx *gorm.DB, questionID uint) ([]*models.UserAnswer, error)
	DeleteByQuestionID(ctx context.Context, tx *gorm.DB, questionID uint) error
}

type UserRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*models.User, error)
	GetByUsername(ctx context.Context, tx *gorm.DB, username string) (*models.User, error)
	Save(ctx context.Context, tx *gorm.DB, user *models.User) error
}

type AuditRepository interface {
	Create(ctx context.Context, tx *gorm.DB, event *models.AuditEvent) error
	ListRecent(ctx context.Context, tx *gorm.DB, limit int) ([]*models.AuditEvent, error)
}

// IsNotFoundError reports whether err represents a missing row.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
