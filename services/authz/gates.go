package authz

import "tourhub/models"

// Gate names a set of roles allowed through.
type Gate struct {
	Name  string
	Roles []models.Role
}

// Allows reports whether role passes the gate.
func (g Gate) Allows(role models.Role) bool {
	for _, r := range g.Roles {
		if r == role {
			return true
		}
	}
	return false
}

var (
	RequireAdmin          = Gate{Name: "admin", Roles: []models.Role{models.RoleAdmin}}
	RequireGuide          = Gate{Name: "guide", Roles: []models.Role{models.RoleGuide}}
	RequireTourist        = Gate{Name: "tourist", Roles: []models.Role{models.RoleTourist}}
	RequireTouristOrGuide = Gate{Name: "tourist or guide", Roles: []models.Role{models.RoleTourist, models.RoleGuide}}
)

// Caller is the authenticated identity behind a request.
type Caller struct {
	Email string
	Role  models.Role
}

func (c Caller) IsAdmin() bool { return c.Role == models.RoleAdmin }

// Owns is the self-or-admin rule for resources keyed by email.
func (c Caller) Owns(email string) bool { return c.Email == email || c.IsAdmin() }
