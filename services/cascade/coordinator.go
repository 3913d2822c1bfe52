package cascade

import (
	"context"
	"strings"
	"time"

	"tourhub/database"
	bookingRepo "tourhub/database/repository/booking"
	storyRepo "tourhub/database/repository/story"
	userRepo "tourhub/database/repository/user"
	"tourhub/models"
	"tourhub/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// DefaultCoordinator is the production implementation.
type DefaultCoordinator struct {
	Users    userRepo.UserRepository
	Bookings bookingRepo.BookingRepository
	Stories  storyRepo.StoryRepository
	// Tx is only used in ModeTransactional.
	Tx     database.Transactor
	Mode   Mode
	Logger *zap.Logger
	now    func() time.Time
}

func NewCoordinator(users userRepo.UserRepository, bookings bookingRepo.BookingRepository, stories storyRepo.StoryRepository, tx database.Transactor, mode Mode, logger *zap.Logger) *DefaultCoordinator {
	if mode == ModeTransactional && tx == nil {
		logger.Warn("Transactional cascade requested without a transactor, using best-effort")
		mode = ModeBestEffort
	}
	return &DefaultCoordinator{
		Users:    users,
		Bookings: bookings,
		Stories:  stories,
		Tx:       tx,
		Mode:     mode,
		Logger:   logger,
		now:      time.Now,
	}
}

func (c *DefaultCoordinator) UpdateProfile(ctx context.Context, email string, fields models.ProfileFields) (*ProfileUpdateResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, utils.Validation("email is required")
	}
	if fields.Empty() {
		return nil, utils.Validation("name or photo is required")
	}

	user, err := c.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, utils.Internal("failed to update profile", err)
	}
	if user == nil {
		return nil, utils.NotFound("user not found")
	}

	var result *ProfileUpdateResult
	run := func(ctx context.Context) error {
		res, err := c.applyProfile(ctx, email, fields)
		if err != nil {
			return err
		}
		result = res
		return nil
	}

	if c.Mode == ModeTransactional {
		err = c.Tx.WithTransaction(ctx, run)
	} else {
		err = run(ctx)
	}
	if err != nil {
		return nil, utils.Internal("failed to update profile", err)
	}

	c.Logger.Info("Profile cascade applied",
		zap.String("email", email),
		zap.String("mode", string(c.Mode)),
		zap.Int64("touristBookings", result.TouristBookings.Modified),
		zap.Int64("guideBookings", result.GuideBookings.Modified),
		zap.Int64("stories", result.Stories.Modified),
	)
	return result, nil
}

// applyProfile stops at the first failing sub-update; earlier ones stay applied
// unless ctx carries a transaction.
func (c *DefaultCoordinator) applyProfile(ctx context.Context, email string, fields models.ProfileFields) (*ProfileUpdateResult, error) {
	var (
		res ProfileUpdateResult
		err error
	)
	if res.User, err = c.Users.UpdateProfile(ctx, email, fields); err != nil {
		return nil, err
	}
	if res.TouristBookings, err = c.Bookings.SyncTouristProfile(ctx, email, fields); err != nil {
		return nil, err
	}
	if res.GuideBookings, err = c.Bookings.SyncGuideProfile(ctx, email, fields); err != nil {
		return nil, err
	}
	if res.Stories, err = c.Stories.SyncAuthorProfile(ctx, email, fields); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *DefaultCoordinator) CompletePayment(ctx context.Context, completion models.PaymentCompletion) (*PaymentResult, error) {
	id, err := primitive.ObjectIDFromHex(completion.BookingID)
	if err != nil {
		return nil, utils.Validation("invalid booking id")
	}
	if completion.TransactionID == "" {
		return nil, utils.Validation("transactionId is required")
	}

	record := models.PaymentRecord{
		Status:        completion.Status,
		TransactionID: completion.TransactionID,
		Info:          completion.Info,
	}
	if record.Status == "" {
		record.Status = models.BookingInReview
	} else if !record.Status.Known() {
		return nil, utils.Validation("invalid booking status")
	}
	if completion.PaidAt != nil {
		record.PaidAt = *completion.PaidAt
	} else {
		record.PaidAt = c.now()
	}

	count, err := c.Bookings.RecordPayment(ctx, id, record)
	if err != nil {
		return nil, utils.Internal("failed to record payment", err)
	}
	if count.Matched == 0 {
		return nil, utils.NotFound("booking not found")
	}

	result := &PaymentResult{Booking: count}
	if completion.PayerEmail == "" {
		return result, nil
	}

	// Promotion is independent of the booking update and never fails the call.
	promoted, err := c.Users.PromoteRole(ctx, completion.PayerEmail, models.RoleUser, models.RoleTourist)
	if err != nil {
		c.Logger.Error("Role promotion after payment failed",
			zap.String("email", completion.PayerEmail),
			zap.String("bookingId", completion.BookingID),
			zap.Error(err),
		)
		return result, nil
	}
	result.Promoted = promoted.Modified > 0
	if result.Promoted {
		c.Logger.Info("Promoted payer to tourist", zap.String("email", completion.PayerEmail))
	}
	return result, nil
}
