package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PaymentSucceeded is the status written on every settled payment record.
const PaymentSucceeded = "succeeded"

// Payment is the immutable record written when a parcel is settled.
type Payment struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	ParcelID      string             `bson:"parcelId" json:"parcelId"`
	Email         string             `bson:"email" json:"email"`
	Amount        int64              `bson:"amount" json:"amount"` // minor currency units
	TransactionID string             `bson:"transactionId" json:"transactionId"`
	PaymentMethod []string           `bson:"paymentMethod" json:"paymentMethod"`
	Status        string             `bson:"status" json:"status"`
	PaidAt        time.Time          `bson:"paid_at" json:"paid_at"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
