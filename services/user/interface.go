package user

import (
	"context"

	userRepo "tourhub/database/repository/user"
	"tourhub/models"

	"go.uber.org/zap"
)

type UserService interface {
	// Registration
	Register(ctx context.Context, user models.User) (created bool, err error)
	GetRole(ctx context.Context, email string) (*models.Role, error)

	// Guide applications
	ApplyForGuide(ctx context.Context, email string, app GuideApplicationRequest) (models.UpdateCount, error)
	ListCandidates(ctx context.Context) ([]models.User, error)
	Decide(ctx context.Context, email, action string) (models.UpdateCount, error)

	// Admin / listing
	ListAll(ctx context.Context) ([]models.User, error)
	ListGuides(ctx context.Context) ([]models.User, error)
	DeleteByID(ctx context.Context, id string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo   userRepo.UserRepository
	Logger *zap.Logger
}

func NewUserService(repo userRepo.UserRepository, logger *zap.Logger) *DefaultUserService {
	return &DefaultUserService{Repo: repo, Logger: logger}
}

// GuideApplicationRequest is the body of a guide application.
type GuideApplicationRequest struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
	CVLink string `json:"cvLink"`
}

// Decision directives accepted by Decide.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)
