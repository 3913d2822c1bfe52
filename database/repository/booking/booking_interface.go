package bookingRepo

import (
	"context"

	"tourhub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingRepository defines methods for booking data access. Lookups that find
// nothing return (nil, nil).
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error)
	// ListByTourist returns the tourist's bookings; an empty statuses slice matches all.
	ListByTourist(ctx context.Context, email string, statuses []models.BookingStatus) ([]models.Booking, error)
	ListByGuide(ctx context.Context, email string) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) (models.UpdateCount, error)
	// RecordPayment writes status, transaction id, paid time and optional payment info.
	RecordPayment(ctx context.Context, id primitive.ObjectID, record models.PaymentRecord) (models.UpdateCount, error)
	Delete(ctx context.Context, id primitive.ObjectID) (int64, error)
	// SyncTouristProfile rewrites the denormalized tourist name/photo on every booking of email.
	SyncTouristProfile(ctx context.Context, email string, fields models.ProfileFields) (models.UpdateCount, error)
	// SyncGuideProfile rewrites the denormalized guide name/photo on every booking assigned to email.
	SyncGuideProfile(ctx context.Context, email string, fields models.ProfileFields) (models.UpdateCount, error)
	Count(ctx context.Context) (int64, error)
	// SumTotalPrice adds up totalPrice over all bookings, coercing strings to numbers.
	SumTotalPrice(ctx context.Context) (float64, error)
}
