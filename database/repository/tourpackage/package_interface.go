package packageRepo

import (
	"context"

	"tourhub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PackageRepository defines methods for travel package data access.
type PackageRepository interface {
	Create(ctx context.Context, pkg models.Package) (primitive.ObjectID, error)
	List(ctx context.Context) ([]models.Package, error)
	// GetByID returns (nil, nil) when no package has the id.
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Package, error)
	// Sample returns up to n packages picked at random.
	Sample(ctx context.Context, n int) ([]models.Package, error)
	Count(ctx context.Context) (int64, error)
}
