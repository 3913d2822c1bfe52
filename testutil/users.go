// Package testutil provides in-memory repositories for service and handler tests.
package testutil

import (
	"context"
	"sync"
	"time"

	"tourhub/database"
	"tourhub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Failures lets a test make a named repository method return an error.
type Failures struct {
	mu   sync.Mutex
	errs map[string]error
}

// Fail makes every later call of method return err. A nil err clears it.
func (f *Failures) Fail(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errs == nil {
		f.errs = map[string]error{}
	}
	if err == nil {
		delete(f.errs, method)
		return
	}
	f.errs[method] = err
}

func (f *Failures) check(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs[method]
}

// UserRepo is an in-memory userRepo.UserRepository.
type UserRepo struct {
	Failures
	mu    sync.Mutex
	users []*models.User
}

func NewUserRepo(seed ...models.User) *UserRepo {
	r := &UserRepo{}
	for i := range seed {
		u := seed[i]
		if u.ID.IsZero() {
			u.ID = primitive.NewObjectID()
		}
		r.users = append(r.users, &u)
	}
	return r
}

func cloneUser(u *models.User) *models.User {
	c := *u
	if u.GuideApplication != nil {
		app := *u.GuideApplication
		c.GuideApplication = &app
	}
	return &c
}

func (r *UserRepo) find(email string) *models.User {
	for _, u := range r.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// Len returns the number of stored users.
func (r *UserRepo) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	if err := r.check("Create"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.find(user.Email) != nil {
		return database.ErrDuplicate
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users = append(r.users, cloneUser(user))
	return nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := r.check("GetByEmail"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if u := r.find(email); u != nil {
		return cloneUser(u), nil
	}
	return nil, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if err := r.check("GetByID"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return cloneUser(u), nil
		}
	}
	return nil, nil
}

func (r *UserRepo) List(ctx context.Context, filter models.UserFilter) ([]models.User, error) {
	if err := r.check("List"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.User{}
	for _, u := range r.users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if filter.Status != models.StatusNone && u.Status != filter.Status {
			continue
		}
		out = append(out, *cloneUser(u))
	}
	return out, nil
}

func (r *UserRepo) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	if err := r.check("CountByRole"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *UserRepo) update(email string, apply func(u *models.User) bool) models.UpdateCount {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.find(email)
	if u == nil {
		return models.UpdateCount{}
	}
	count := models.UpdateCount{Matched: 1}
	if apply(u) {
		count.Modified = 1
	}
	return count
}

func (r *UserRepo) UpdateProfile(ctx context.Context, email string, fields models.ProfileFields) (models.UpdateCount, error) {
	if err := r.check("UpdateProfile"); err != nil {
		return models.UpdateCount{}, err
	}
	return r.update(email, func(u *models.User) bool {
		return applyProfile(&u.Name, &u.Photo, fields)
	}), nil
}

func (r *UserRepo) SubmitGuideApplication(ctx context.Context, email string, app models.GuideApplication) (models.UpdateCount, error) {
	if err := r.check("SubmitGuideApplication"); err != nil {
		return models.UpdateCount{}, err
	}
	return r.update(email, func(u *models.User) bool {
		u.Status = models.StatusRequested
		u.GuideApplication = &app
		return true
	}), nil
}

func (r *UserRepo) ApplyDecision(ctx context.Context, email string, decision models.ApplicationDecision) (models.UpdateCount, error) {
	if err := r.check("ApplyDecision"); err != nil {
		return models.UpdateCount{}, err
	}
	return r.update(email, func(u *models.User) bool {
		u.Status = decision.Status
		if decision.Role != "" {
			u.Role = decision.Role
		}
		if decision.ApprovedAt != nil {
			t := *decision.ApprovedAt
			u.ApprovedAt = &t
		}
		if decision.RejectedAt != nil {
			t := *decision.RejectedAt
			u.RejectedAt = &t
		}
		return true
	}), nil
}

func (r *UserRepo) PromoteRole(ctx context.Context, email string, from, to models.Role) (models.UpdateCount, error) {
	if err := r.check("PromoteRole"); err != nil {
		return models.UpdateCount{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.find(email)
	if u == nil || u.Role != from {
		return models.UpdateCount{}, nil
	}
	u.Role = to
	return models.UpdateCount{Matched: 1, Modified: 1}, nil
}

func (r *UserRepo) DeleteByID(ctx context.Context, id primitive.ObjectID) (int64, error) {
	if err := r.check("DeleteByID"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// applyProfile sets the non-nil fields and reports whether anything changed.
func applyProfile(name, photo *string, fields models.ProfileFields) bool {
	changed := false
	if fields.Name != nil && *name != *fields.Name {
		*name = *fields.Name
		changed = true
	}
	if fields.Photo != nil && *photo != *fields.Photo {
		*photo = *fields.Photo
		changed = true
	}
	return changed
}
