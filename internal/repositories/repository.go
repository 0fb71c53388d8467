package repositories

import "context"

// Repository aggregates the per-domain repositories behind one dependency.
type Repository interface {
	Quiz() QuizRepository
	Subject() SubjectRepository
	Question() QuestionRepository
	Option() OptionRepository
	Attempt() AttemptRepository
	Answer() AnswerRepository
	User() UserRepository
	Audit() AuditRepository

	// Transaction support
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connections
	Close() error
}

// RepositoryManager manages repository lifecycle.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
