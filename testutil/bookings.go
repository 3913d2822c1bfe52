package testutil

import (
	"context"
	"strconv"
	"sync"
	"time"

	"tourhub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingRepo is an in-memory bookingRepo.BookingRepository.
type BookingRepo struct {
	Failures
	mu       sync.Mutex
	bookings []*models.Booking
}

func NewBookingRepo(seed ...models.Booking) *BookingRepo {
	r := &BookingRepo{}
	for i := range seed {
		b := seed[i]
		if b.ID.IsZero() {
			b.ID = primitive.NewObjectID()
		}
		r.bookings = append(r.bookings, &b)
	}
	return r
}

func cloneBooking(b *models.Booking) *models.Booking {
	c := *b
	if b.PaidAt != nil {
		t := *b.PaidAt
		c.PaidAt = &t
	}
	if b.PaymentInfo != nil {
		info := *b.PaymentInfo
		c.PaymentInfo = &info
	}
	return &c
}

// Len returns the number of stored bookings.
func (r *BookingRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.bookings)
}

// All returns a copy of every stored booking.
func (r *BookingRepo) All() []models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Booking, 0, len(r.bookings))
	for _, b := range r.bookings {
		out = append(out, *cloneBooking(b))
	}
	return out
}

func (r *BookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if err := r.check("Create"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = time.Now()
	}
	r.bookings = append(r.bookings, cloneBooking(booking))
	return nil
}

func (r *BookingRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Booking, error) {
	if err := r.check("GetByID"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, b := range r.bookings {
		if b.ID == id {
			return cloneBooking(b), nil
		}
	}
	return nil, nil
}

func (r *BookingRepo) filter(match func(b *models.Booking) bool) []models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Booking{}
	for _, b := range r.bookings {
		if match(b) {
			out = append(out, *cloneBooking(b))
		}
	}
	return out
}

func (r *BookingRepo) ListByTourist(ctx context.Context, email string, statuses []models.BookingStatus) ([]models.Booking, error) {
	if err := r.check("ListByTourist"); err != nil {
		return nil, err
	}
	return r.filter(func(b *models.Booking) bool {
		if b.TouristEmail != email {
			return false
		}
		if len(statuses) == 0 {
			return true
		}
		for _, s := range statuses {
			if b.Status == s {
				return true
			}
		}
		return false
	}), nil
}

func (r *BookingRepo) ListByGuide(ctx context.Context, email string) ([]models.Booking, error) {
	if err := r.check("ListByGuide"); err != nil {
		return nil, err
	}
	return r.filter(func(b *models.Booking) bool { return b.GuideEmail == email }), nil
}

func (r *BookingRepo) update(match func(b *models.Booking) bool, apply func(b *models.Booking) bool) models.UpdateCount {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count models.UpdateCount
	for _, b := range r.bookings {
		if !match(b) {
			continue
		}
		count.Matched++
		if apply(b) {
			count.Modified++
		}
	}
	return count
}

func byID(id primitive.ObjectID) func(b *models.Booking) bool {
	return func(b *models.Booking) bool { return b.ID == id }
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id primitive.ObjectID, status models.BookingStatus) (models.UpdateCount, error) {
	if err := r.check("UpdateStatus"); err != nil {
		return models.UpdateCount{}, err
	}
	return r.update(byID(id), func(b *models.Booking) bool {
		if b.Status == status {
			return false
		}
		b.Status = status
		return true
	}), nil
}

func (r *BookingRepo) RecordPayment(ctx context.Context, id primitive.ObjectID, record models.PaymentRecord) (models.UpdateCount, error) {
	if err := r.check("RecordPayment"); err != nil {
		return models.UpdateCount{}, err
	}
	return r.update(byID(id), func(b *models.Booking) bool {
		b.Status = record.Status
		b.TransactionID = record.TransactionID
		paidAt := record.PaidAt
		b.PaidAt = &paidAt
		if record.Info != nil {
			info := *record.Info
			b.PaymentInfo = &info
		}
		return true
	}), nil
}

func (r *BookingRepo) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if err := r.check("Delete"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, b := range r.bookings {
		if b.ID == id {
			r.bookings = append(r.bookings[:i], r.bookings[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *BookingRepo) SyncTouristProfile(ctx context.Context, email string, fields models.ProfileFields) (models.UpdateCount, error) {
	if err := r.check("SyncTouristProfile"); err != nil {
		return models.UpdateCount{}, err
	}
	return r.update(
		func(b *models.Booking) bool { return b.TouristEmail == email },
		func(b *models.Booking) bool { return applyProfile(&b.TouristName, &b.TouristPhoto, fields) },
	), nil
}

func (r *BookingRepo) SyncGuideProfile(ctx context.Context, email string, fields models.ProfileFields) (models.UpdateCount, error) {
	if err := r.check("SyncGuideProfile"); err != nil {
		return models.UpdateCount{}, err
	}
	return r.update(
		func(b *models.Booking) bool { return b.GuideEmail != "" && b.GuideEmail == email },
		func(b *models.Booking) bool { return applyProfile(&b.GuideName, &b.GuidePhoto, fields) },
	), nil
}

func (r *BookingRepo) Count(ctx context.Context) (int64, error) {
	if err := r.check("Count"); err != nil {
		return 0, err
	}
	return int64(r.Len()), nil
}

// SumTotalPrice mirrors the store's $convert to double: non-numeric values count as 0.
func (r *BookingRepo) SumTotalPrice(ctx context.Context) (float64, error) {
	if err := r.check("SumTotalPrice"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var total float64
	for _, b := range r.bookings {
		total += toDouble(b.TotalPrice)
	}
	return total, nil
}

func toDouble(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}
