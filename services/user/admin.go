package user

import (
	"context"

	"tourhub/models"
	"tourhub/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ListAll retrieves all users for admin access.
func (s *DefaultUserService) ListAll(ctx context.Context) ([]models.User, error) {
	users, err := s.Repo.List(ctx, models.UserFilter{})
	if err != nil {
		return nil, utils.Internal("failed to fetch users", err)
	}
	return users, nil
}

func (s *DefaultUserService) ListGuides(ctx context.Context) ([]models.User, error) {
	users, err := s.Repo.List(ctx, models.UserFilter{Role: models.RoleGuide})
	if err != nil {
		return nil, utils.Internal("failed to fetch guides", err)
	}
	return users, nil
}

func (s *DefaultUserService) DeleteByID(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.Validation("invalid user id")
	}
	n, err := s.Repo.DeleteByID(ctx, oid)
	if err != nil {
		return utils.Internal("failed to delete user", err)
	}
	if n == 0 {
		return utils.NotFound("user not found")
	}
	s.Logger.Info("User deleted", zap.String("id", id))
	return nil
}
