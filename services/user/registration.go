package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"tourhub/database"
	"tourhub/models"
	"tourhub/utils"

	"go.uber.org/zap"
)

// Register stores a new user with the base role. A second registration of the
// same email leaves the existing record untouched and reports created=false.
func (s *DefaultUserService) Register(ctx context.Context, user models.User) (bool, error) {
	user.Email = strings.TrimSpace(user.Email)
	if user.Email == "" {
		return false, utils.Validation("email is required")
	}

	existing, err := s.Repo.GetByEmail(ctx, user.Email)
	if err != nil {
		return false, utils.Internal("failed to register user", err)
	}
	if existing != nil {
		return false, nil
	}

	user.Role = models.RoleUser
	user.Status = models.StatusNone
	user.GuideApplication = nil
	user.ApprovedAt, user.RejectedAt = nil, nil
	user.CreatedAt = time.Now()

	if err := s.Repo.Create(ctx, &user); err != nil {
		// Lost a race with a concurrent registration of the same email.
		if errors.Is(err, database.ErrDuplicate) {
			return false, nil
		}
		return false, utils.Internal("failed to register user", err)
	}
	s.Logger.Info("User registered", zap.String("email", user.Email))
	return true, nil
}

// GetRole returns nil when no user has the email.
func (s *DefaultUserService) GetRole(ctx context.Context, email string) (*models.Role, error) {
	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, utils.Internal("failed to fetch role", err)
	}
	if user == nil {
		return nil, nil
	}
	return &user.Role, nil
}
