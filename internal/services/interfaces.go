package services

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/quizhub-io/quiz-service/internal/models"
	"github.com/quizhub-io/quiz-service/internal/validator"
)

// ===== REQUEST DTOs =====

// Request shapes come from the validator package so struct tags and business
// validation live in one place.
type CreateQuestionRequest = validator.CreateQuestionRequest
type SaveAnswerRequest = validator.SaveAnswerRequest
type IdentifyUserRequest = validator.IdentifyUserRequest

// ===== SERVICE INTERFACES =====

// QuizService covers quiz/subject/question retrieval, the attempt lifecycle,
// answer recording and teacher attempt summaries.
type QuizService interface {
	// Read side
	ListQuizzes(ctx context.Context) ([]*models.Quiz, error)
	GetQuiz(ctx context.Context, id uint) (*models.Quiz, error)
	GetQuestionsByQuiz(ctx context.Context, quizID uint) ([]*models.QuestionResponse, error)
	GetOptionsForQuestion(ctx context.Context, questionID uint) ([]*models.QuestionOption, error)
	ListSubjects(ctx context.Context) ([]*models.Subject, error)

	// Attempt lifecycle
	StartAttempt(ctx context.Context, quizID, userID uint) (*models.QuizAttempt, error)
	SaveAnswer(ctx context.Context, attemptID uint, req *SaveAnswerRequest) (*models.UserAnswer, error)
	CompleteAttempt(ctx context.Context, attemptID uint) (*models.QuizAttempt, error)

	// Teacher dashboard
	AttemptSummaries(ctx context.Context) ([]*models.AttemptSummary, error)
}

// QuestionService covers the teacher-only question mutations.
type QuestionService interface {
	Create(ctx context.Context, req *CreateQuestionRequest, actorID uint) (*models.QuestionResponse, error)
	Delete(ctx context.Context, id uint, actorID uint) (bool, error)
	DeleteByOrderNum(ctx context.Context, orderNum int, actorID uint) (bool, error)
}

// UserService resolves or creates user rows for the anonymous identify flow.
type UserService interface {
	Identify(ctx context.Context, req *IdentifyUserRequest) (*models.User, error)
}

// ExportService renders teacher reports as spreadsheet workbooks.
type ExportService interface {
	AttemptSummariesWorkbook(ctx context.Context) (*excelize.File, error)
}

// ServiceManager wires and owns all service instances.
type ServiceManager interface {
	Quiz() QuizService
	Question() QuestionService
	User() UserService
	Export() ExportService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
	HealthCheck(ctx context.Context) error
}
