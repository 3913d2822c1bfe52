package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending  BookingStatus = "pending"
	BookingInReview BookingStatus = "in review"
	BookingPaid     BookingStatus = "paid"
	BookingAccepted BookingStatus = "accepted"
	BookingRejected BookingStatus = "rejected"
)

// Known reports whether s is one of the statuses the platform writes.
// Stored documents may still carry other values; those are returned as-is.
func (s BookingStatus) Known() bool {
	switch s {
	case BookingPending, BookingInReview, BookingPaid, BookingAccepted, BookingRejected:
		return true
	}
	return false
}

// PaidStatuses are the states shown on a tourist's order history.
var PaidStatuses = []BookingStatus{BookingInReview, BookingPaid, BookingAccepted}

// Booking is owned by the tourist who created it and referenced by the assigned guide.
// Tourist and guide name/photo are denormalized copies kept in sync on profile edits.
type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	PackageID     string             `bson:"packageId,omitempty" json:"packageId,omitempty"`
	PackageName   string             `bson:"packageName,omitempty" json:"packageName,omitempty"`
	TourDate      string             `bson:"tourDate,omitempty" json:"tourDate,omitempty"`
	TouristEmail  string             `bson:"touristEmail" json:"touristEmail"`
	TouristName   string             `bson:"touristName" json:"touristName"`
	TouristPhoto  string             `bson:"touristPhoto" json:"touristPhoto"`
	GuideEmail    string             `bson:"guideEmail,omitempty" json:"guideEmail,omitempty"`
	GuideName     string             `bson:"guideName,omitempty" json:"guideName,omitempty"`
	GuidePhoto    string             `bson:"guidePhoto,omitempty" json:"guidePhoto,omitempty"`
	TotalPrice    interface{}        `bson:"totalPrice" json:"totalPrice"`
	Status        BookingStatus      `bson:"status" json:"status"`
	TransactionID string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	PaidAt        *time.Time         `bson:"paidAt,omitempty" json:"paidAt,omitempty"`
	PaymentInfo   *PaymentInfo       `bson:"paymentInfo,omitempty" json:"paymentInfo,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
