package story

import (
	"context"
	"strings"
	"time"

	"tourhub/models"
	"tourhub/services/authz"
	"tourhub/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Create stores a story with a snapshot of the caller as author.
func (s *DefaultStoryService) Create(ctx context.Context, caller authz.Caller, req CreateStoryRequest) (*models.Story, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Text = strings.TrimSpace(req.Text)
	images := cleanImages(req.Images)
	if req.Title == "" || req.Text == "" || len(images) == 0 {
		return nil, utils.Validation("title, text and images are required")
	}

	author, err := s.Users.GetByEmail(ctx, caller.Email)
	if err != nil {
		return nil, utils.Internal("failed to create story", err)
	}
	if author == nil {
		return nil, utils.NotFound("user not found")
	}

	story := &models.Story{
		Title:  req.Title,
		Text:   req.Text,
		Images: images,
		Author: models.StoryAuthor{
			ID:    author.ID,
			Name:  author.Name,
			Email: author.Email,
			Photo: author.Photo,
			Role:  author.Role,
		},
		CreatedAt: time.Now(),
	}
	if err := s.Repo.Create(ctx, story); err != nil {
		return nil, utils.Internal("failed to create story", err)
	}
	s.Logger.Info("Story created", zap.String("storyId", story.ID.Hex()), zap.String("author", author.Email))
	return story, nil
}

func (s *DefaultStoryService) ListAll(ctx context.Context) ([]models.Story, error) {
	stories, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, utils.Internal("failed to fetch stories", err)
	}
	return stories, nil
}

func (s *DefaultStoryService) ListMine(ctx context.Context, caller authz.Caller) ([]models.Story, error) {
	stories, err := s.Repo.ListByAuthor(ctx, caller.Email)
	if err != nil {
		return nil, utils.Internal("failed to fetch stories", err)
	}
	return stories, nil
}

func (s *DefaultStoryService) Get(ctx context.Context, id string) (*models.Story, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.Validation("invalid story id")
	}
	story, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		return nil, utils.Internal("failed to fetch story", err)
	}
	if story == nil {
		return nil, utils.NotFound("story not found")
	}
	return story, nil
}

// owned loads the story and checks that caller wrote it.
func (s *DefaultStoryService) owned(ctx context.Context, caller authz.Caller, id string) (primitive.ObjectID, error) {
	story, err := s.Get(ctx, id)
	if err != nil {
		return primitive.NilObjectID, err
	}
	if story.Author.Email != caller.Email {
		return primitive.NilObjectID, utils.Forbidden("forbidden access")
	}
	return story.ID, nil
}

func (s *DefaultStoryService) UpdateText(ctx context.Context, caller authz.Caller, id string, req UpdateStoryRequest) (models.UpdateCount, error) {
	if req.Title == nil && req.Text == nil {
		return models.UpdateCount{}, utils.Validation("title or text is required")
	}
	oid, err := s.owned(ctx, caller, id)
	if err != nil {
		return models.UpdateCount{}, err
	}
	count, err := s.Repo.UpdateText(ctx, oid, req.Title, req.Text)
	if err != nil {
		return count, utils.Internal("failed to update story", err)
	}
	return count, nil
}

func (s *DefaultStoryService) AddImages(ctx context.Context, caller authz.Caller, id string, images []string) (models.UpdateCount, error) {
	images = cleanImages(images)
	if len(images) == 0 {
		return models.UpdateCount{}, utils.Validation("images are required")
	}
	oid, err := s.owned(ctx, caller, id)
	if err != nil {
		return models.UpdateCount{}, err
	}
	count, err := s.Repo.PushImages(ctx, oid, images)
	if err != nil {
		return count, utils.Internal("failed to add images", err)
	}
	return count, nil
}

func (s *DefaultStoryService) RemoveImage(ctx context.Context, caller authz.Caller, id string, image string) (models.UpdateCount, error) {
	if strings.TrimSpace(image) == "" {
		return models.UpdateCount{}, utils.Validation("image is required")
	}
	oid, err := s.owned(ctx, caller, id)
	if err != nil {
		return models.UpdateCount{}, err
	}
	count, err := s.Repo.PullImage(ctx, oid, image)
	if err != nil {
		return count, utils.Internal("failed to remove image", err)
	}
	return count, nil
}

func (s *DefaultStoryService) Delete(ctx context.Context, caller authz.Caller, id string) error {
	oid, err := s.owned(ctx, caller, id)
	if err != nil {
		return err
	}
	n, err := s.Repo.Delete(ctx, oid)
	if err != nil {
		return utils.Internal("failed to delete story", err)
	}
	if n == 0 {
		return utils.NotFound("story not found")
	}
	s.Logger.Info("Story deleted", zap.String("storyId", id), zap.String("by", caller.Email))
	return nil
}

func cleanImages(images []string) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		if img = strings.TrimSpace(img); img != "" {
			out = append(out, img)
		}
	}
	return out
}
