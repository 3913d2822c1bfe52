package tourpackage

import (
	"context"

	packageRepo "tourhub/database/repository/tourpackage"
	"tourhub/models"
	"tourhub/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// RandomSampleSize is how many packages the home page features.
const RandomSampleSize = 3

type PackageService interface {
	Create(ctx context.Context, pkg models.Package) (primitive.ObjectID, error)
	List(ctx context.Context) ([]models.Package, error)
	Get(ctx context.Context, id string) (models.Package, error)
	Random(ctx context.Context) ([]models.Package, error)
}

type DefaultPackageService struct {
	Repo   packageRepo.PackageRepository
	Logger *zap.Logger
}

func NewPackageService(repo packageRepo.PackageRepository, logger *zap.Logger) *DefaultPackageService {
	return &DefaultPackageService{Repo: repo, Logger: logger}
}

func (s *DefaultPackageService) Create(ctx context.Context, pkg models.Package) (primitive.ObjectID, error) {
	if len(pkg) == 0 {
		return primitive.NilObjectID, utils.Validation("package body is required")
	}
	id, err := s.Repo.Create(ctx, pkg)
	if err != nil {
		return primitive.NilObjectID, utils.Internal("failed to create package", err)
	}
	s.Logger.Info("Package created", zap.String("packageId", id.Hex()))
	return id, nil
}

func (s *DefaultPackageService) List(ctx context.Context) ([]models.Package, error) {
	packages, err := s.Repo.List(ctx)
	if err != nil {
		return nil, utils.Internal("failed to fetch packages", err)
	}
	return packages, nil
}

func (s *DefaultPackageService) Get(ctx context.Context, id string) (models.Package, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.Validation("invalid package id")
	}
	pkg, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		return nil, utils.Internal("failed to fetch package", err)
	}
	if pkg == nil {
		return nil, utils.NotFound("package not found")
	}
	return pkg, nil
}

// Random returns a NotFound error when there are no packages at all.
func (s *DefaultPackageService) Random(ctx context.Context) ([]models.Package, error) {
	packages, err := s.Repo.Sample(ctx, RandomSampleSize)
	if err != nil {
		return nil, utils.Internal("failed to fetch packages", err)
	}
	if len(packages) == 0 {
		return nil, utils.NotFound("no packages found")
	}
	return packages, nil
}
