package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/gorm"

	"github.com/quizhub-io/quiz-service/internal/events"
	"github.com/quizhub-io/quiz-service/internal/models"
	"github.com/quizhub-io/quiz-service/internal/repositories"
	"github.com/quizhub-io/quiz-service/internal/validator"
)

type questionService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher
}

func NewQuestionService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator, publisher events.EventPublisher) QuestionService {
	return &questionService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
		publisher: publisher,
	}
}

// Create is the single path that enforces the id-equals-orderNum convention:
// the question number must be free both as an order number and as a question
// id before the row is written with ID forced to the number.
func (s *questionService) Create(ctx context.Context, req *CreateQuestionRequest, actorID uint) (*models.QuestionResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewValidationError(err.Error())
	}

	quizID := valueOr(req.QuizID, 1)
	subjectID := valueOr(req.SubjectID, 1)
	points := valueOrInt(req.Points, 1)
	orderNum := valueOrInt(req.OrderNum, 0)
	correctIndex := valueOrInt(req.CorrectIndex, 0)

	if strings.TrimSpace(req.QuestionText) == "" || len(req.Options) == 0 ||
		correctIndex < 0 || correctIndex >= len(req.Options) {
		return nil, NewValidationError("questionText, options and a correctIndex within bounds are required")
	}
	// The number becomes the row id, so it must survive the uint conversion.
	if orderNum < 1 {
		return nil, NewValidationError("orderNum must be a positive question number")
	}

	existing, err := s.repo.Question().GetByOrderNum(ctx, s.db, orderNum)
	if err != nil {
		return nil, fmt.Errorf("failed to check order number: %w", err)
	}
	if len(existing) > 0 {
		return nil, NewDuplicateOrderNumError(orderNum)
	}

	idTaken, err := s.repo.Question().ExistsByID(ctx, s.db, uint(orderNum))
	if err != nil {
		return nil, fmt.Errorf("failed to check question id: %w", err)
	}
	if idTaken {
		return nil, NewDuplicateIDError(orderNum)
	}

	question := &models.Question{
		ID:           uint(orderNum),
		QuizID:       quizID,
		SubjectID:    subjectID,
		QuestionText: req.QuestionText,
		QuestionType: models.QuestionMultipleChoice,
		Points:       points,
		OrderNum:     orderNum,
	}

	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		if err := txRepo.Question().Create(ctx, nil, question); err != nil {
			return err
		}

		for i, optText := range req.Options {
			if strings.TrimSpace(optText) == "" {
				continue
			}
			option := &models.QuestionOption{
				QuestionID: question.ID,
				OptionText: strings.TrimSpace(optText),
				IsCorrect:  i == correctIndex,
				OrderNum:   i + 1,
			}
			if err := txRepo.Option().Create(ctx, nil, option); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}

	s.logger.Info("question created",
		"question_id", question.ID,
		"quiz_id", quizID,
		"order_num", orderNum,
		"actor_id", actorID)

	s.recordAudit(ctx, actorID, models.AuditQuestionCreated, map[string]interface{}{
		"questionId": question.ID,
		"quizId":     quizID,
		"orderNum":   orderNum,
	})
	s.publishEvent(ctx, events.TopicQuestionCreated, events.QuestionCreatedEvent{
		QuestionID: question.ID,
		QuizID:     quizID,
		SubjectID:  subjectID,
		OrderNum:   orderNum,
	})

	return s.decorate(ctx, question), nil
}

// Delete removes a question and everything that hangs off it: options first,
// then user answers referencing it, then the question row. The cascade is a
// sequence of independent writes, not one transaction.
func (s *questionService) Delete(ctx context.Context, id uint, actorID uint) (bool, error) {
	question, err := s.repo.Question().GetByID(ctx, s.db, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to get question: %w", err)
	}

	if err := s.repo.Option().DeleteByQuestionID(ctx, s.db, id); err != nil {
		return false, err
	}
	if err := s.repo.Answer().DeleteByQuestionID(ctx, s.db, id); err != nil {
		return false, err
	}
	if err := s.repo.Question().Delete(ctx, s.db, id); err != nil {
		return false, err
	}

	s.logger.Info("question deleted",
		"question_id", id,
		"order_num", question.OrderNum,
		"actor_id", actorID)

	s.recordAudit(ctx, actorID, models.AuditQuestionDeleted, map[string]interface{}{
		"questionId": id,
		"quizId":     question.QuizID,
		"orderNum":   question.OrderNum,
	})
	s.publishEvent(ctx, events.TopicQuestionDeleted, events.QuestionDeletedEvent{
		QuestionID: id,
		QuizID:     question.QuizID,
		OrderNum:   question.OrderNum,
	})

	return true, nil
}

// DeleteByOrderNum deletes every question carrying the number. Per-row
// failures are logged and skipped; the call reports success when at least
// one row went away.
func (s *questionService) DeleteByOrderNum(ctx context.Context, orderNum int, actorID uint) (bool, error) {
	questions, err := s.repo.Question().GetByOrderNum(ctx, s.db, orderNum)
	if err != nil {
		return false, fmt.Errorf("failed to find questions by order num: %w", err)
	}
	if len(questions) == 0 {
		return false, nil
	}

	anyDeleted := false
	for _, q := range questions {
		deleted, err := s.Delete(ctx, q.ID, actorID)
		if err != nil {
			s.logger.Error("failed to delete question, continuing",
				"question_id", q.ID,
				"error", err)
			continue
		}
		if deleted {
			anyDeleted = true
		}
	}

	return anyDeleted, nil
}

func (s *questionService) decorate(ctx context.Context, q *models.Question) *models.QuestionResponse {
	resp := &models.QuestionResponse{Question: q}
	if subject, err := s.repo.Subject().GetByID(ctx, s.db, q.SubjectID); err == nil {
		resp.SubjectName = subject.Name
		resp.SubjectColor = subject.Color
	}
	return resp
}

func (s *questionService) recordAudit(ctx context.Context, actorID uint, action string, detail map[string]interface{}) {
	data, err := json.Marshal(detail)
	if err != nil {
		s.logger.Error("failed to marshal audit detail", "action", action, "error", err)
		return
	}
	event := &models.AuditEvent{
		ActorID: actorID,
		Action:  action,
		Detail:  data,
	}
	if err := s.repo.Audit().Create(ctx, s.db, event); err != nil {
		s.logger.Error("failed to record audit event", "action", action, "error", err)
	}
}

func (s *questionService) publishEvent(ctx context.Context, topic string, payload interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, topic, payload); err != nil {
		s.logger.Error("failed to publish event", "topic", topic, "error", err)
	}
}

func valueOr(p *uint, fallback uint) uint {
	if p != nil {
		return *p
	}
	return fallback
}

func valueOrInt(p *int, fallback int) int {
	if p != nil {
		return *p
	}
	return fallback
}
