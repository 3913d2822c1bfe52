package story

import (
	"context"

	storyRepo "tourhub/database/repository/story"
	userRepo "tourhub/database/repository/user"
	"tourhub/models"
	"tourhub/services/authz"

	"go.uber.org/zap"
)

type StoryService interface {
	Create(ctx context.Context, caller authz.Caller, req CreateStoryRequest) (*models.Story, error)
	ListAll(ctx context.Context) ([]models.Story, error)
	ListMine(ctx context.Context, caller authz.Caller) ([]models.Story, error)
	Get(ctx context.Context, id string) (*models.Story, error)
	UpdateText(ctx context.Context, caller authz.Caller, id string, req UpdateStoryRequest) (models.UpdateCount, error)
	AddImages(ctx context.Context, caller authz.Caller, id string, images []string) (models.UpdateCount, error)
	RemoveImage(ctx context.Context, caller authz.Caller, id string, image string) (models.UpdateCount, error)
	Delete(ctx context.Context, caller authz.Caller, id string) error
}

// DefaultStoryService is the production implementation.
type DefaultStoryService struct {
	Repo   storyRepo.StoryRepository
	Users  userRepo.UserRepository
	Logger *zap.Logger
}

func NewStoryService(repo storyRepo.StoryRepository, users userRepo.UserRepository, logger *zap.Logger) *DefaultStoryService {
	return &DefaultStoryService{Repo: repo, Users: users, Logger: logger}
}

type CreateStoryRequest struct {
	Title  string   `json:"title"`
	Text   string   `json:"text"`
	Images []string `json:"images"`
}

// UpdateStoryRequest carries a partial update. Nil fields are left alone.
type UpdateStoryRequest struct {
	Title *string `json:"title"`
	Text  *string `json:"text"`
}
