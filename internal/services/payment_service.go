package services

import (
	"context"
	"errors"
	"time"

	"github.com/swiftparcel/swiftparcel-be/internal/models"
	"github.com/swiftparcel/swiftparcel-be/internal/payments"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicatePayment is returned when a payment for the same parcel and
// transaction has already been recorded.
var ErrDuplicatePayment = errors.New("payment already recorded for this transaction")

// PaymentRequest carries the fields needed to settle a parcel.
type PaymentRequest struct {
	ParcelID      string   `json:"parcelId"`
	Amount        int64    `json:"amount"`
	TransactionID string   `json:"transactionId"`
	PaymentMethod []string `json:"paymentMethod"`
	Email         string   `json:"email"`
}

// PaymentServiceProvider defines the interface for payment services.
type PaymentServiceProvider interface {
	CreatePaymentIntent(ctx context.Context, amountInCents int64) (string, error)
	RecordPayment(ctx context.Context, req PaymentRequest) (models.Payment, error)
	ListPayments(ctx context.Context, email string) ([]models.Payment, error)
	SettledParcelIDs(ctx context.Context) ([]string, error)
}

// PaymentService provides the parcel payment-settlement workflow.
type PaymentService struct {
	db      *mongo.Database
	parcels ParcelServiceProvider
	intents payments.IntentCreator
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(db *mongo.Database, parcels ParcelServiceProvider, intents payments.IntentCreator) *PaymentService {
	return &PaymentService{db: db, parcels: parcels, intents: intents}
}

func (s *PaymentService) collection() *mongo.Collection {
	return s.db.Collection("payments")
}

// CreatePaymentIntent delegates to the payment processor and returns the
// client secret for the new intent. The amount is taken as-is, already in
// minor currency units.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, amountInCents int64) (string, error) {
	return s.intents.CreateIntent(ctx, amountInCents)
}

// RecordPayment settles a parcel in two phases: mark the parcel paid, then
// insert the payment record. The phases are not atomic; a crash in between
// leaves a paid parcel without a payment record, which the reconciler
// surfaces. The unique parcelId+transactionId index keeps a retried
// settlement from writing a second record.
func (s *PaymentService) RecordPayment(ctx context.Context, req PaymentRequest) (models.Payment, error) {
	if err := s.parcels.MarkParcelPaid(ctx, req.ParcelID); err != nil {
		return models.Payment{}, err
	}

	now := time.Now().UTC()
	payment := models.Payment{
		ParcelID:      req.ParcelID,
		Email:         req.Email,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
		PaymentMethod: req.PaymentMethod,
		Status:        models.PaymentSucceeded,
		PaidAt:        now,
		CreatedAt:     now,
	}

	res, err := s.collection().InsertOne(ctx, payment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Payment{}, ErrDuplicatePayment
		}
		return models.Payment{}, err
	}
	payment.ID = res.InsertedID.(primitive.ObjectID)
	return payment, nil
}

// ListPayments returns payment records newest-first, optionally scoped to
// one payer email.
func (s *PaymentService) ListPayments(ctx context.Context, email string) ([]models.Payment, error) {
	filter := bson.M{}
	if email != "" {
		filter["email"] = email
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []models.Payment{}
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// SettledParcelIDs returns the distinct parcel ids that have at least one
// payment record.
func (s *PaymentService) SettledParcelIDs(ctx context.Context) ([]string, error) {
	values, err := s.collection().Distinct(ctx, "parcelId", bson.M{})
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(values))
	for _, v := range values {
		if id, ok := v.(string); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
