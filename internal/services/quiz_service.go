package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/quizhub-io/quiz-service/internal/events"
	"github.com/quizhub-io/quiz-service/internal/models"
	"github.com/quizhub-io/quiz-service/internal/repositories"
	"github.com/quizhub-io/quiz-service/internal/validator"
)

type quizService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewQuizService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) QuizService {
	return &quizService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// ===== READ SIDE =====

func (s *quizService) ListQuizzes(ctx context.Context) ([]*models.Quiz, error) {
	return s.repo.Quiz().List(ctx, s.db)
}

func (s *quizService) GetQuiz(ctx context.Context, id uint) (*models.Quiz, error) {
	quiz, err := s.repo.Quiz().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}
	return quiz, nil
}

func (s *quizService) GetQuestionsByQuiz(ctx context.Context, quizID uint) ([]*models.QuestionResponse, error) {
	questions, err := s.repo.Question().GetByQuizID(ctx, s.db, quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}

	responses := make([]*models.QuestionResponse, 0, len(questions))
	for _, q := range questions {
		responses = append(responses, s.decorateQuestion(ctx, q))
	}
	return responses, nil
}

func (s *quizService) GetOptionsForQuestion(ctx context.Context, questionID uint) ([]*models.QuestionOption, error) {
	options, err := s.repo.Option().GetByQuestionID(ctx, s.db, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get options: %w", err)
	}
	return options, nil
}

func (s *quizService) ListSubjects(ctx context.Context) ([]*models.Subject, error) {
	return s.repo.Subject().List(ctx, s.db)
}

// decorateQuestion attaches the subject's display name and color when the
// subject row resolves; a missing subject leaves the fields empty.
func (s *quizService) decorateQuestion(ctx context.Context, q *models.Question) *models.QuestionResponse {
	resp := &models.QuestionResponse{Question: q}
	subject, err := s.repo.Subject().GetByID(ctx, s.db, q.SubjectID)
	if err == nil {
		resp.SubjectName = subject.Name
		resp.SubjectColor = subject.Color
	}
	return resp
}

// ===== ATTEMPT LIFECYCLE =====

func (s *quizService) StartAttempt(ctx context.Context, quizID, userID uint) (*models.QuizAttempt, error) {
	// Teachers may not take quizzes. An unknown user id starts the attempt
	// anyway; the identify flow creates rows lazily. Any other lookup
	// failure must not bypass the role guard.
	user, err := s.repo.User().GetByID(ctx, s.db, userID)
	if err != nil && !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if err == nil && user.Role == models.RoleTeacher {
		return nil, NewPermissionError(userID, "start attempt", "teachers cannot take quizzes")
	}

	attempt := &models.QuizAttempt{
		QuizID:    quizID,
		UserID:    userID,
		StartTime: time.Now(),
		Completed: false,
	}

	if err := s.repo.Attempt().Create(ctx, s.db, attempt); err != nil {
		return nil, fmt.Errorf("failed to start attempt: %w", err)
	}

	s.logger.Info("quiz attempt started",
		"attempt_id", attempt.ID,
		"quiz_id", quizID,
		"user_id", userID)

	return attempt, nil
}

func (s *quizService) SaveAnswer(ctx context.Context, attemptID uint, req *SaveAnswerRequest) (*models.UserAnswer, error) {
	if req.QuestionID == nil || req.SelectedOptionID == nil {
		return nil, NewValidationError("questionId and selectedOptionId are required")
	}

	answer := &models.UserAnswer{
		QuizAttemptID:    attemptID,
		QuestionID:       *req.QuestionID,
		SelectedOptionID: *req.SelectedOptionID,
	}

	// Correctness is copied from the stored option at write time. An option
	// id that does not resolve records a wrong answer rather than failing.
	option, err := s.repo.Option().GetByID(ctx, s.db, *req.SelectedOptionID)
	if err == nil {
		answer.IsCorrect = option.IsCorrect
	} else if !repositories.IsNotFoundError(err) {
		return nil, fmt.Errorf("failed to look up option: %w", err)
	}

	if err := s.repo.Answer().Create(ctx, s.db, answer); err != nil {
		return nil, fmt.Errorf("failed to save answer: %w", err)
	}

	return answer, nil
}

func (s *quizService) CompleteAttempt(ctx context.Context, attemptID uint) (*models.QuizAttempt, error) {
	attempt, err := s.repo.Attempt().GetByID(ctx, s.db, attemptID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrAttemptNotFound
		}
		return nil, fmt.Errorf("failed to get attempt: %w", err)
	}

	now := time.Now()
	attempt.EndTime = &now
	attempt.Completed = true

	answers, err := s.repo.Answer().GetByAttemptID(ctx, s.db, attemptID)
	if err != nil {
		return nil, fmt.Errorf("failed to get answers: %w", err)
	}

	correct := 0
	for _, a := range answers {
		if a.IsCorrect {
			correct++
		}
	}
	total := len(answers)
	timeSpent := int(now.Sub(attempt.StartTime).Seconds())

	attempt.Score = &correct
	attempt.CorrectAnswers = &correct
	attempt.TotalQuestions = &total
	attempt.TimeSpentSeconds = &timeSpent

	if err := s.repo.Attempt().Update(ctx, s.db, attempt); err != nil {
		return nil, fmt.Errorf("failed to complete attempt: %w", err)
	}

	s.logger.Info("quiz attempt completed",
		"attempt_id", attempt.ID,
		"score", correct,
		"total_questions", total,
		"time_spent_seconds", timeSpent)

	s.publishEvent(ctx, events.TopicAttemptCompleted, events.AttemptCompletedEvent{
		AttemptID:      attempt.ID,
		QuizID:         attempt.QuizID,
		UserID:         attempt.UserID,
		Score:          correct,
		CorrectAnswers: correct,
		TotalQuestions: total,
		CompletedAt:    now,
	})

	return attempt, nil
}

func (s *quizService) publishEvent(ctx context.Context, topic string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, payload); err != nil {
		s.logger.Error("failed to publish event", "topic", topic, "error", err)
	}
}

// ===== TEACHER DASHBOARD =====

// AttemptSummaries joins user and quiz metadata onto every attempt. Rows
// whose user or quiz no longer resolve keep the bare attempt fields.
func (s *quizService) AttemptSummaries(ctx context.Context) ([]*models.AttemptSummary, error) {
	attempts, err := s.repo.Attempt().List(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("failed to list attempts: %w", err)
	}

	summaries := make([]*models.AttemptSummary, 0, len(attempts))
	for _, a := range attempts {
		summary := &models.AttemptSummary{
			AttemptID:      a.ID,
			QuizID:         a.QuizID,
			UserID:         a.UserID,
			Score:          a.Score,
			TotalQuestions: a.TotalQuestions,
			CorrectAnswers: a.CorrectAnswers,
			Completed:      a.Completed,
			StartTime:      a.StartTime,
			EndTime:        a.EndTime,
		}

		if user, err := s.repo.User().GetByID(ctx, s.db, a.UserID); err == nil {
			summary.Username = user.Username
			summary.Email = user.Email
		}
		if quiz, err := s.repo.Quiz().GetByID(ctx, s.db, a.QuizID); err == nil {
			summary.QuizTitle = quiz.Title
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}
