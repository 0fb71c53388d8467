package services

import (
	"context"
	"fmt"
	"sync"

	"log/slog"

	"gorm.io/gorm"

	"github.com/quizhub-io/quiz-service/internal/events"
	"github.com/quizhub-io/quiz-service/internal/repositories"
	"github.com/quizhub-io/quiz-service/internal/validator"
)

type serviceManager struct {
	mu          sync.RWMutex
	initialized bool

	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
	publisher events.EventPublisher

	quizService     QuizService
	questionService QuestionService
	userService     UserService
	exportService   ExportService
}

// NewServiceManager builds all services against the shared repository,
// database handle, validator and event publisher.
func NewServiceManager(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) ServiceManager {
	return &serviceManager{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
		publisher: publisher,
	}
}

func (m *serviceManager) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := m.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository not reachable: %w", err)
	}

	m.quizService = NewQuizService(m.repo, m.db, m.logger, m.validator, m.publisher)
	m.questionService = NewQuestionService(m.repo, m.db, m.logger, m.validator, m.publisher)
	m.userService = NewUserService(m.repo, m.db, m.logger, m.validator)
	m.exportService = NewExportService(m.quizService, m.logger)

	m.initialized = true
	m.logger.Info("service manager initialized")
	return nil
}

func (m *serviceManager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return nil
	}

	if m.publisher != nil {
		if err := m.publisher.Close(); err != nil {
			m.logger.Warn("event publisher close failed", "error", err)
		}
	}

	m.initialized = false
	m.logger.Info("service manager shut down")
	return nil
}

func (m *serviceManager) HealthCheck(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.initialized {
		return fmt.Errorf("service manager not initialized")
	}
	return m.repo.Ping(ctx)
}

func (m *serviceManager) Quiz() QuizService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.quizService
}

func (m *serviceManager) Question() QuestionService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.questionService
}

func (m *serviceManager) User() UserService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.userService
}

func (m *serviceManager) Export() ExportService {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.exportService
}
