package cascade

import (
	"context"

	"tourhub/models"
)

// Mode selects how the sub-updates of a profile cascade are grouped.
type Mode string

const (
	// ModeBestEffort issues each sub-update on its own; a concurrent reader may
	// observe a partially cascaded state.
	ModeBestEffort Mode = "best-effort"
	// ModeTransactional wraps the profile cascade in a multi-document transaction.
	ModeTransactional Mode = "transactional"
)

// ParseMode falls back to best-effort for unknown values.
func ParseMode(s string) Mode {
	if Mode(s) == ModeTransactional {
		return ModeTransactional
	}
	return ModeBestEffort
}

// ProfileUpdateResult reports the per-target update counts of a profile cascade.
type ProfileUpdateResult struct {
	User            models.UpdateCount `json:"user"`
	TouristBookings models.UpdateCount `json:"touristBookings"`
	GuideBookings   models.UpdateCount `json:"guideBookings"`
	Stories         models.UpdateCount `json:"stories"`
}

// PaymentResult reports what a payment completion changed.
type PaymentResult struct {
	Booking  models.UpdateCount `json:"booking"`
	Promoted bool               `json:"promoted"`
}

// Coordinator keeps denormalized copies and roles consistent across collections.
type Coordinator interface {
	UpdateProfile(ctx context.Context, email string, fields models.ProfileFields) (*ProfileUpdateResult, error)
	CompletePayment(ctx context.Context, completion models.PaymentCompletion) (*PaymentResult, error)
}
