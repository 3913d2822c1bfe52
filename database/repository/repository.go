package repository

import (
	"fmt"

	bookingRepo "tourhub/database/repository/booking"
	storyRepo "tourhub/database/repository/story"
	packageRepo "tourhub/database/repository/tourpackage"
	userRepo "tourhub/database/repository/user"

	"go.mongodb.org/mongo-driver/mongo"
)

// Re-export the repository interfaces and constructors.
type UserRepository = userRepo.UserRepository

type BookingRepository = bookingRepo.BookingRepository

type StoryRepository = storyRepo.StoryRepository

type PackageRepository = packageRepo.PackageRepository

var (
	NewMongoUserRepo    = userRepo.NewMongoUserRepo
	NewMongoBookingRepo = bookingRepo.NewMongoBookingRepo
	NewMongoStoryRepo   = storyRepo.NewMongoStoryRepo
	NewMongoPackageRepo = packageRepo.NewMongoPackageRepo
)

// Repositories groups the stores shared by every service.
type Repositories struct {
	Users    UserRepository
	Bookings BookingRepository
	Stories  StoryRepository
	Packages PackageRepository
}

// NewMongoRepositories opens every collection on db and ensures its indexes.
func NewMongoRepositories(db *mongo.Database) (*Repositories, error) {
	users, err := NewMongoUserRepo(db)
	if err != nil {
		return nil, fmt.Errorf("user repository: %w", err)
	}
	bookings, err := NewMongoBookingRepo(db)
	if err != nil {
		return nil, fmt.Errorf("booking repository: %w", err)
	}
	stories, err := NewMongoStoryRepo(db)
	if err != nil {
		return nil, fmt.Errorf("story repository: %w", err)
	}
	return &Repositories{
		Users:    users,
		Bookings: bookings,
		Stories:  stories,
		Packages: NewMongoPackageRepo(db),
	}, nil
}
