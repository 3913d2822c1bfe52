package authz

import (
	"context"

	userRepo "tourhub/database/repository/user"
	"tourhub/models"
	"tourhub/utils"
)

// RoleResolver looks up the current role of a user.
type RoleResolver interface {
	// ResolveRole returns a NotFound AppError when no user has the email and
	// a Forbidden one when the stored role is not recognized.
	ResolveRole(ctx context.Context, email string) (models.Role, error)
}

// StoreRoleResolver reads the role from the user store on every call, so a
// role change takes effect on the caller's next request.
type StoreRoleResolver struct {
	Users userRepo.UserRepository
}

func NewStoreRoleResolver(users userRepo.UserRepository) *StoreRoleResolver {
	return &StoreRoleResolver{Users: users}
}

func (r *StoreRoleResolver) ResolveRole(ctx context.Context, email string) (models.Role, error) {
	user, err := r.Users.GetByEmail(ctx, email)
	if err != nil {
		return "", utils.Internal("failed to resolve role", err)
	}
	if user == nil {
		return "", utils.NotFound("user not found")
	}
	if !user.Role.Valid() {
		return "", utils.Forbidden("unrecognized role")
	}
	return user.Role, nil
}
