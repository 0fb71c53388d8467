package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/quizhub-io/quiz-service/internal/models"
	"github.com/quizhub-io/quiz-service/internal/repositories"
	"github.com/quizhub-io/quiz-service/internal/validator"
)

type userService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewUserService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, validator *validator.Validator) UserService {
	return &userService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: validator,
	}
}

// Identify resolves an existing user by id, then email, then username, in
// that priority order, creating a row when nothing matches. The operation is
// an idempotent upsert: calling it again with the same email returns the
// same row with a refreshed updatedAt.
func (s *userService) Identify(ctx context.Context, req *IdentifyUserRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, NewValidationError(err.Error())
	}

	var user *models.User

	if req.ID != nil {
		if found, err := s.repo.User().GetByID(ctx, s.db, *req.ID); err == nil {
			user = found
		}
	}

	if user == nil && strings.TrimSpace(req.Email) != "" {
		if found, err := s.repo.User().GetByEmail(ctx, s.db, req.Email); err == nil {
			user = found
		}
	}

	if user == nil && strings.TrimSpace(req.Username) != "" {
		if found, err := s.repo.User().GetByUsername(ctx, s.db, req.Username); err == nil {
			user = found
		}
	}

	if user == nil {
		user = &models.User{}
	}

	username := req.Username
	if strings.TrimSpace(username) == "" {
		// Lightweight generated username when none was provided.
		username = fmt.Sprintf("user%d", time.Now().UnixMilli())
	}
	email := req.Email
	if strings.TrimSpace(email) == "" {
		email = username + "@example.local"
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now
	user.Username = username
	user.Email = email
	user.FullName = req.FullName

	// An unrecognized role string leaves the stored role unchanged.
	if role, ok := models.ParseRole(req.Role); ok {
		user.Role = role
	}

	if user.PasswordHash == "" {
		user.PasswordHash = models.PasswordHashPlaceholder
	}

	if err := s.repo.User().Save(ctx, s.db, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.logger.Info("user identified",
		"user_id", user.ID,
		"username", user.Username,
		"role", user.Role)

	return user, nil
}
