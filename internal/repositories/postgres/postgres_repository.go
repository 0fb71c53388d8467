package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/quizhub-io/quiz-service/internal/cache"
	"github.com/quizhub-io/quiz-service/internal/repositories"
)

// PostgreSQLRepository implements the aggregate Repository interface.
type PostgreSQLRepository struct {
	db           *gorm.DB
	redisClient  *redis.Client
	cacheManager *cache.CacheManager

	quiz     repositories.QuizRepository
	subject  repositories.SubjectRepository
	question repositories.QuestionRepository
	option   repositories.OptionRepository
	attempt  repositories.AttemptRepository
	answer   repositories.AnswerRepository
	user     repositories.UserRepository
	audit    repositories.AuditRepository
}

// RepositoryConfig holds the connections repositories are built from.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

// NewPostgreSQLRepository creates the repository aggregate with all
// sub-repositories sharing one cache manager.
func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	cacheManager := cache.NewCacheManager(config.RedisClient)

	repo := &PostgreSQLRepository{
		db:           config.DB,
		redisClient:  config.RedisClient,
		cacheManager: cacheManager,
	}

	repo.quiz = NewQuizPostgreSQL(config.DB, cacheManager)
	repo.subject = NewSubjectPostgreSQL(config.DB, cacheManager)
	repo.question = NewQuestionPostgreSQL(config.DB, cacheManager)
	repo.option = NewOptionPostgreSQL(config.DB, cacheManager)
	repo.attempt = NewAttemptPostgreSQL(config.DB)
	repo.answer = NewAnswerPostgreSQL(config.DB)
	repo.user = NewUserPostgreSQL(config.DB)
	repo.audit = NewAuditPostgreSQL(config.DB)

	return repo
}

func (r *PostgreSQLRepository) Quiz() repositories.QuizRepository         { return r.quiz }
func (r *PostgreSQLRepository) Subject() repositories.SubjectRepository   { return r.subject }
func (r *PostgreSQLRepository) Question() repositories.QuestionRepository { return r.question }
func (r *PostgreSQLRepository) Option() repositories.OptionRepository     { return r.option }
func (r *PostgreSQLRepository) Attempt() repositories.AttemptRepository   { return r.attempt }
func (r *PostgreSQLRepository) Answer() repositories.AnswerRepository     { return r.answer }
func (r *PostgreSQLRepository) User() repositories.UserRepository         { return r.user }
func (r *PostgreSQLRepository) Audit() repositories.AuditRepository       { return r.audit }

// WithTransaction executes fn against a repository bound to one transaction.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &PostgreSQLRepository{
			db:           tx,
			redisClient:  r.redisClient,
			cacheManager: r.cacheManager,
		}

		txRepo.quiz = NewQuizPostgreSQL(tx, r.cacheManager)
		txRepo.subject = NewSubjectPostgreSQL(tx, r.cacheManager)
		txRepo.question = NewQuestionPostgreSQL(tx, r.cacheManager)
		txRepo.option = NewOptionPostgreSQL(tx, r.cacheManager)
		txRepo.attempt = NewAttemptPostgreSQL(tx)
		txRepo.answer = NewAnswerPostgreSQL(tx)
		txRepo.user = NewUserPostgreSQL(tx)
		txRepo.audit = NewAuditPostgreSQL(tx)

		return fn(txRepo)
	})
}

// Ping checks database and cache connections.
func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if r.redisClient != nil {
		if err := r.cacheManager.HealthCheck(ctx); err != nil {
			return fmt.Errorf("cache ping failed: %w", err)
		}
	}

	return nil
}

// Close closes all connections.
func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close Redis: %w", err)
		}
	}

	return nil
}

// Manager implements repositories.RepositoryManager.
type Manager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &Manager{config: config}
}

// Initialize validates connections and builds the repository aggregate.
func (m *Manager) Initialize() error {
	if m.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}

	sqlDB, err := m.config.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	if m.config.RedisClient != nil {
		if _, err := m.config.RedisClient.Ping(ctx).Result(); err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
	}

	m.repo = NewPostgreSQLRepository(m.config)
	return nil
}

func (m *Manager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *Manager) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repository not initialized")
	}
	return m.repo.Ping(ctx)
}

func (m *Manager) Shutdown(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}
