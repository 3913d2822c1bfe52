package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Role governs what a user is allowed to do.
type Role string

const (
	RoleUser    Role = "user"
	RoleTourist Role = "tourist"
	RoleGuide   Role = "guide"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleTourist, RoleGuide, RoleAdmin:
		return true
	}
	return false
}

// ApplicationStatus tracks a guide application. The zero value means none was made.
type ApplicationStatus string

const (
	StatusNone      ApplicationStatus = ""
	StatusRequested ApplicationStatus = "Requested"
	StatusApproved  ApplicationStatus = "Approved"
	StatusRejected  ApplicationStatus = "Rejected"
)

// User is the root identity document. Email is the key other collections reference.
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Email            string             `bson:"email" json:"email"`
	Name             string             `bson:"name" json:"name"`
	Photo            string             `bson:"photo" json:"photo"`
	Role             Role               `bson:"role" json:"role"`
	Status           ApplicationStatus  `bson:"status,omitempty" json:"status,omitempty"`
	GuideApplication *GuideApplication  `bson:"guideApplication,omitempty" json:"guideApplication,omitempty"`
	ApprovedAt       *time.Time         `bson:"approvedAt,omitempty" json:"approvedAt,omitempty"`
	RejectedAt       *time.Time         `bson:"rejectedAt,omitempty" json:"rejectedAt,omitempty"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

type GuideApplication struct {
	Title       string    `bson:"title" json:"title"`
	Reason      string    `bson:"reason" json:"reason"`
	CVLink      string    `bson:"cvLink" json:"cvLink"`
	RequestedAt time.Time `bson:"requestedAt" json:"requestedAt"`
}

// UserFilter narrows user listings. Empty fields match everything.
type UserFilter struct {
	Role   Role
	Status ApplicationStatus
}

// ApplicationDecision is written by an admin approving or rejecting a candidate.
type ApplicationDecision struct {
	Status     ApplicationStatus
	Role       Role // empty leaves the role untouched
	ApprovedAt *time.Time
	RejectedAt *time.Time
}

// ProfileFields carries a partial name/photo update. Nil fields are left alone.
type ProfileFields struct {
	Name  *string `json:"name"`
	Photo *string `json:"photo"`
}

func (p ProfileFields) Empty() bool {
	return p.Name == nil && p.Photo == nil
}

// UpdateCount mirrors the matched/modified counters of a store update.
type UpdateCount struct {
	Matched  int64 `json:"matchedCount"`
	Modified int64 `json:"modifiedCount"`
}
