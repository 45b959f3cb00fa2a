package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Payment status values for a parcel.
const (
	PaymentStatusUnpaid = "unpaid"
	PaymentStatusPaid   = "paid"
)

// Parcel represents a delivery request submitted by a sender.
type Parcel struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	TrackingID      string             `bson:"tracking_id" json:"tracking_id"`
	Title           string             `bson:"title" json:"title"`
	Type            string             `bson:"type" json:"type"` // document or non-document
	Weight          float64            `bson:"weight,omitempty" json:"weight,omitempty"`
	SenderName      string             `bson:"sender_name" json:"sender_name"`
	SenderEmail     string             `bson:"sender_email" json:"sender_email"`
	SenderContact   string             `bson:"sender_contact,omitempty" json:"sender_contact,omitempty"`
	SenderRegion    string             `bson:"sender_region,omitempty" json:"sender_region,omitempty"`
	SenderAddress   string             `bson:"sender_address,omitempty" json:"sender_address,omitempty"`
	ReceiverName    string             `bson:"receiver_name,omitempty" json:"receiver_name,omitempty"`
	ReceiverContact string             `bson:"receiver_contact,omitempty" json:"receiver_contact,omitempty"`
	ReceiverRegion  string             `bson:"receiver_region,omitempty" json:"receiver_region,omitempty"`
	ReceiverAddress string             `bson:"receiver_address,omitempty" json:"receiver_address,omitempty"`
	Cost            float64            `bson:"cost" json:"cost"`
	DeliveryStatus  string             `bson:"delivery_status,omitempty" json:"delivery_status,omitempty"`
	PaymentStatus   string             `bson:"payment_status" json:"payment_status"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}
