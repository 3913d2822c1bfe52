package testutil

import (
	"context"
	"math/rand"
	"sync"

	"tourhub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PackageRepo is an in-memory packageRepo.PackageRepository.
type PackageRepo struct {
	Failures
	mu       sync.Mutex
	packages []models.Package
}

func NewPackageRepo(seed ...models.Package) *PackageRepo {
	r := &PackageRepo{}
	for _, p := range seed {
		r.packages = append(r.packages, withID(p))
	}
	return r
}

func withID(p models.Package) models.Package {
	c := models.Package{}
	for k, v := range p {
		c[k] = v
	}
	if _, ok := c["_id"]; !ok {
		c["_id"] = primitive.NewObjectID()
	}
	return c
}

func (r *PackageRepo) Create(ctx context.Context, pkg models.Package) (primitive.ObjectID, error) {
	if err := r.check("Create"); err != nil {
		return primitive.NilObjectID, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c := models.Package{}
	for k, v := range pkg {
		c[k] = v
	}
	id := primitive.NewObjectID()
	c["_id"] = id
	r.packages = append(r.packages, c)
	return id, nil
}

func (r *PackageRepo) List(ctx context.Context) ([]models.Package, error) {
	if err := r.check("List"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.Package{}, r.packages...), nil
}

func (r *PackageRepo) GetByID(ctx context.Context, id primitive.ObjectID) (models.Package, error) {
	if err := r.check("GetByID"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.packages {
		if p["_id"] == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *PackageRepo) Sample(ctx context.Context, n int) ([]models.Package, error) {
	if err := r.check("Sample"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Package{}
	for _, i := range rand.Perm(len(r.packages)) {
		if len(out) == n {
			break
		}
		out = append(out, r.packages[i])
	}
	return out, nil
}

func (r *PackageRepo) Count(ctx context.Context) (int64, error) {
	if err := r.check("Count"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.packages)), nil
}
