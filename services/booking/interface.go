package booking

import (
	"context"

	bookingRepo "tourhub/database/repository/booking"
	userRepo "tourhub/database/repository/user"
	"tourhub/models"
	"tourhub/services/authz"

	"go.uber.org/zap"
)

type BookingService interface {
	Create(ctx context.Context, caller authz.Caller, booking models.Booking) (*models.Booking, error)
	ListForTourist(ctx context.Context, caller authz.Caller, email string) ([]models.Booking, error)
	Delete(ctx context.Context, caller authz.Caller, id string) error
	MyOrders(ctx context.Context, caller authz.Caller, email string) ([]models.Booking, error)
	AssignedTours(ctx context.Context, caller authz.Caller, email string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, caller authz.Caller, id string, status models.BookingStatus) (models.UpdateCount, error)
}

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo   bookingRepo.BookingRepository
	Users  userRepo.UserRepository
	Logger *zap.Logger
}

func NewBookingService(repo bookingRepo.BookingRepository, users userRepo.UserRepository, logger *zap.Logger) *DefaultBookingService {
	return &DefaultBookingService{Repo: repo, Users: users, Logger: logger}
}
