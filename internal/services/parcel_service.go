package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/swiftparcel/swiftparcel-be/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrParcelNotFound is returned when no parcel matches the given id.
	ErrParcelNotFound = errors.New("parcel not found")
	// ErrParcelAlreadyPaid is returned when settlement targets a parcel
	// whose payment status is already "paid".
	ErrParcelAlreadyPaid = errors.New("parcel already paid")
)

// ParcelServiceProvider defines the interface for parcel services.
type ParcelServiceProvider interface {
	CreateParcel(ctx context.Context, parcel models.Parcel) (models.Parcel, error)
	ListParcels(ctx context.Context, email, role string) ([]models.Parcel, error)
	GetParcelByID(ctx context.Context, id string) (models.Parcel, error)
	DeleteParcelByID(ctx context.Context, id string) (int64, error)
	MarkParcelPaid(ctx context.Context, id string) error
	FindPaidParcelIDs(ctx context.Context) ([]string, error)
}

// ParcelService provides business logic for parcel management.
type ParcelService struct {
	db *mongo.Database
}

// NewParcelService creates a new ParcelService.
func NewParcelService(db *mongo.Database) *ParcelService {
	return &ParcelService{db: db}
}

func (s *ParcelService) collection() *mongo.Collection {
	return s.db.Collection("parcels")
}

// CreateParcel inserts a new parcel, assigning a tracking id, creation time
// and the initial payment status.
func (s *ParcelService) CreateParcel(ctx context.Context, parcel models.Parcel) (models.Parcel, error) {
	parcel.ID = primitive.NilObjectID
	parcel.TrackingID = fmt.Sprintf("TRK-%s", uuid.New().String())
	parcel.PaymentStatus = models.PaymentStatusUnpaid
	parcel.CreatedAt = time.Now().UTC()

	res, err := s.collection().InsertOne(ctx, parcel)
	if err != nil {
		return models.Parcel{}, err
	}
	parcel.ID = res.InsertedID.(primitive.ObjectID)
	return parcel, nil
}

// ListParcels returns parcels newest-first. Admins see everything; other
// callers are scoped to their sender email when one is given.
func (s *ParcelService) ListParcels(ctx context.Context, email, role string) ([]models.Parcel, error) {
	filter := bson.M{}
	if role != "admin" && email != "" {
		filter["sender_email"] = email
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := s.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	parcels := []models.Parcel{}
	if err := cursor.All(ctx, &parcels); err != nil {
		return nil, err
	}
	return parcels, nil
}

// GetParcelByID retrieves a single parcel by its hex id.
func (s *ParcelService) GetParcelByID(ctx context.Context, id string) (models.Parcel, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Parcel{}, ErrParcelNotFound
	}

	var parcel models.Parcel
	err = s.collection().FindOne(ctx, bson.M{"_id": oid}).Decode(&parcel)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Parcel{}, ErrParcelNotFound
		}
		return models.Parcel{}, err
	}
	return parcel, nil
}

// DeleteParcelByID removes a parcel and returns the raw deleted count.
// Deleting an unknown id is not an error; the count is simply zero.
func (s *ParcelService) DeleteParcelByID(ctx context.Context, id string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, ErrParcelNotFound
	}

	res, err := s.collection().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// MarkParcelPaid flips a parcel's payment status from unpaid to paid. The
// update is filtered on the unpaid status so a settled parcel is never
// matched; when nothing was modified a follow-up lookup distinguishes a
// missing parcel from one that was already paid.
func (s *ParcelService) MarkParcelPaid(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrParcelNotFound
	}

	res, err := s.collection().UpdateOne(ctx,
		bson.M{"_id": oid, "payment_status": models.PaymentStatusUnpaid},
		bson.M{"$set": bson.M{"payment_status": models.PaymentStatusPaid}},
	)
	if err != nil {
		return err
	}
	if res.ModifiedCount == 0 {
		err := s.collection().FindOne(ctx, bson.M{"_id": oid}).Err()
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrParcelNotFound
		}
		if err != nil {
			return err
		}
		return ErrParcelAlreadyPaid
	}
	return nil
}

// FindPaidParcelIDs returns the hex ids of all parcels marked paid.
func (s *ParcelService) FindPaidParcelIDs(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := s.collection().Find(ctx, bson.M{"payment_status": models.PaymentStatusPaid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID.Hex())
	}
	return ids, nil
}
