package storyRepo

import (
	"context"

	"tourhub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// StoryRepository defines methods for travel story data access. Lookups that
// find nothing return (nil, nil).
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Story, error)
	// ListAll returns every story, newest first.
	ListAll(ctx context.Context) ([]models.Story, error)
	ListByAuthor(ctx context.Context, email string) ([]models.Story, error)
	// UpdateText sets title and/or text; nil fields are left alone.
	UpdateText(ctx context.Context, id primitive.ObjectID, title, text *string) (models.UpdateCount, error)
	PushImages(ctx context.Context, id primitive.ObjectID, images []string) (models.UpdateCount, error)
	PullImage(ctx context.Context, id primitive.ObjectID, image string) (models.UpdateCount, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	// SyncAuthorProfile rewrites the author snapshot on every story written by email.
	SyncAuthorProfile(ctx context.Context, email string, fields models.ProfileFields) (models.UpdateCount, error)
	Count(ctx context.Context) (int64, error)
}
