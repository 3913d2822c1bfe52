package models

import "time"

// PaymentInfo is attached to a booking by the PATCH payment endpoint.
type PaymentInfo struct {
	Amount        *float64 `bson:"amount" json:"amount"`
	Method        string   `bson:"method" json:"method"`
	CustomerEmail *string  `bson:"customerEmail" json:"customerEmail"`
}

// PaymentRecord is the set of booking fields written on payment completion.
type PaymentRecord struct {
	Status        BookingStatus
	TransactionID string
	PaidAt        time.Time
	Info          *PaymentInfo
}

// PaymentCompletion is the input of the payment cascade.
type PaymentCompletion struct {
	BookingID     string
	TransactionID string
	PayerEmail    string
	Status        BookingStatus // defaults to "in review"
	PaidAt        *time.Time    // defaults to now
	Info          *PaymentInfo
}
