package booking

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

// Create stores a new pending booking owned by the caller. Tourist and guide
// name/photo are copied from their user records; payment fields are never
// accepted from the client.
func (s *DefaultBookingService) Create(ctx context.Context, caller authz.Caller, booking models.Booking) (*models.Booking, error) {
	booking.TouristEmail = strings.TrimSpace(booking.TouristEmail)
	if booking.TouristEmail == "" {
		booking.TouristEmail = caller.Email
	}
	if booking.TouristEmail == "" {
		return nil, utils.Validation("touristEmail is required")
	}
	if !caller.Owns(booking.TouristEmail) {
		return nil, utils.Forbidden("forbidden access")
	}

	tourist, err := s.Users.GetByEmail(ctx, booking.TouristEmail)
	if err != nil {
		return nil, utils.Internal("failed to create booking", err)
	}
	if tourist == nil {
		return nil, utils.NotFound("user not found")
	}
	booking.TouristName = tourist.Name
	booking.TouristPhoto = tourist.Photo

	booking.GuideEmail = strings.TrimSpace(booking.GuideEmail)
	booking.GuideName, booking.GuidePhoto = "", ""
	if booking.GuideEmail != "" {
		guide, err := s.Users.GetByEmail(ctx, booking.GuideEmail)
		if err != nil {
			return nil, utils.Internal("failed to create booking", err)
		}
		if guide == nil || guide.Role != models.RoleGuide {
			return nil, utils.Validation("guideEmail does not belong to a guide")
		}
		booking.GuideName = guide.Name
		booking.GuidePhoto = guide.Photo
	}

	booking.ID = primitive.NilObjectID
	booking.Status = models.BookingPending
	booking.TransactionID = ""
	booking.PaidAt = nil
	booking.PaymentInfo = nil
	booking.CreatedAt = time.Now()

	if err := s.Repo.Create(ctx, &booking); err != nil {
		return nil, utils.Internal("failed to create booking", err)
	}
	s.Logger.Info("Booking created",
		zap.String("bookingId", booking.ID.Hex()),
		zap.String("touristEmail", booking.TouristEmail),
		zap.String("by", caller.Email),
	)
	return &booking, nil
}

func (s *DefaultBookingService) ListForTourist(ctx context.Context, caller authz.Caller, email string) ([]models.Booking, error) {
	if !caller.Owns(email) {
		return nil, utils.Forbidden("forbidden access")
	}
	bookings, err := s.Repo.ListByTourist(ctx, email, nil)
	if err != nil {
		return nil, utils.Internal("failed to fetch bookings", err)
	}
	return bookings, nil
}

// Delete removes a booking. The owning tourist, the assigned guide and admins may delete it.
func (s *DefaultBookingService) Delete(ctx context.Context, caller authz.Caller, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return utils.Validation("invalid booking id")
	}
	booking, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		return utils.Internal("failed to delete booking", err)
	}
	if booking == nil {
		return utils.NotFound("booking not found")
	}
	if !caller.Owns(booking.TouristEmail) && (booking.GuideEmail == "" || caller.Email != booking.GuideEmail) {
		return utils.Forbidden("forbidden access")
	}

	n, err := s.Repo.Delete(ctx, oid)
	if err != nil {
		return utils.Internal("failed to delete booking", err)
	}
	if n == 0 {
		return utils.NotFound("booking not found")
	}
	s.Logger.Info("Booking deleted", zap.String("bookingId", id), zap.String("by", caller.Email))
	return nil
}

// MyOrders lists the caller's bookings that have been paid for.
func (s *DefaultBookingService) MyOrders(ctx context.Context, caller authz.Caller, email string) ([]models.Booking, error) {
	if !caller.Owns(email) {
		return nil, utils.Forbidden("forbidden access")
	}
	bookings, err := s.Repo.ListByTourist(ctx, email, models.PaidStatuses)
	if err != nil {
		return nil, utils.Internal("failed to fetch orders", err)
	}
	return bookings, nil
}

func (s *DefaultBookingService) AssignedTours(ctx context.Context, caller authz.Caller, email string) ([]models.Booking, error) {
	if !caller.Owns(email) {
		return nil, utils.Forbidden("forbidden access")
	}
	bookings, err := s.Repo.ListByGuide(ctx, email)
	if err != nil {
		return nil, utils.Internal("failed to fetch assigned tours", err)
	}
	return bookings, nil
}

// UpdateStatus lets the assigned guide move a booking to another known status.
func (s *DefaultBookingService) UpdateStatus(ctx context.Context, caller authz.Caller, id string, status models.BookingStatus) (models.UpdateCount, error) {
	if !status.Known() {
		return models.UpdateCount{}, utils.Validation("invalid booking status")
	}
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.UpdateCount{}, utils.Validation("invalid booking id")
	}
	booking, err := s.Repo.GetByID(ctx, oid)
	if err != nil {
		return models.UpdateCount{}, utils.Internal("failed to update booking status", err)
	}
	if booking == nil {
		return models.UpdateCount{}, utils.NotFound("booking not found")
	}
	if booking.GuideEmail != caller.Email {
		return models.UpdateCount{}, utils.Forbidden("forbidden access")
	}

	count, err := s.Repo.UpdateStatus(ctx, oid, status)
	if err != nil {
		return count, utils.Internal("failed to update booking status", err)
	}
	s.Logger.Info("Booking status updated",
		zap.String("bookingId", id),
		zap.String("status", string(status)),
	)
	return count, nil
}
