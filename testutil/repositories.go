package testutil

import (
	"context"

	"tourhub/database/repository"
)

// Stores bundles the in-memory repositories behind a repository.Repositories.
type Stores struct {
	Users    *UserRepo
	Bookings *BookingRepo
	Stories  *StoryRepo
	Packages *PackageRepo
}

func NewStores() *Stores {
	return &Stores{
		Users:    NewUserRepo(),
		Bookings: NewBookingRepo(),
		Stories:  NewStoryRepo(),
		Packages: NewPackageRepo(),
	}
}

func (s *Stores) Repositories() *repository.Repositories {
	return &repository.Repositories{
		Users:    s.Users,
		Bookings: s.Bookings,
		Stories:  s.Stories,
		Packages: s.Packages,
	}
}

// Transactor runs fn directly and counts how often it was used.
type Transactor struct {
	Calls int
}

func (t *Transactor) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	t.Calls++
	return fn(ctx)
}
