package userRepo

import (
	"context"

	"tourhub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UserRepository defines methods for user data access. Lookups that find
// nothing return (nil, nil).
type UserRepository interface {
	// Create inserts a new user; database.ErrDuplicate if the email is taken.
	Create(ctx context.Context, user *models.User) error
	// GetByEmail retrieves a user by its email address.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID retrieves a user by its document ID.
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// List retrieves users matching the filter.
	List(ctx context.Context, filter models.UserFilter) ([]models.User, error)
	// CountByRole counts users holding the given role.
	CountByRole(ctx context.Context, role models.Role) (int64, error)
	// UpdateProfile sets name and/or photo on the user with the given email.
	UpdateProfile(ctx context.Context, email string, fields models.ProfileFields) (models.UpdateCount, error)
	// SubmitGuideApplication stores the application and sets status to Requested.
	SubmitGuideApplication(ctx context.Context, email string, app models.GuideApplication) (models.UpdateCount, error)
	// ApplyDecision records an admin's approve/reject decision.
	ApplyDecision(ctx context.Context, email string, decision models.ApplicationDecision) (models.UpdateCount, error)
	// PromoteRole changes the role to `to` only while it is still `from`.
	PromoteRole(ctx context.Context, email string, from, to models.Role) (models.UpdateCount, error)
	// DeleteByID removes a user and returns the number of deleted documents.
	DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error)
}
