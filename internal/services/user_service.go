package services

import (
	"context"
	"time"

	"github.com/swiftparcel/swiftparcel-be/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertResult reports the outcome of a registration upsert.
type UpsertResult struct {
	Created       bool   `json:"created"`
	InsertedID    string `json:"insertedId,omitempty"`
	ModifiedCount int64  `json:"modifiedCount"`
}

// UserServiceProvider defines the interface for user services.
type UserServiceProvider interface {
	UpsertUser(ctx context.Context, user models.User) (UpsertResult, error)
}

// UserService provides business logic for user registration.
type UserService struct {
	db *mongo.Database
}

// NewUserService creates a new UserService.
func NewUserService(db *mongo.Database) *UserService {
	return &UserService{db: db}
}

func (s *UserService) collection() *mongo.Collection {
	return s.db.Collection("users")
}

// UpsertUser registers a user on first login and touches last_log_in on
// every later one. A single upsert keyed on email keeps concurrent first
// logins from inserting twice; the profile fields only apply on insert.
func (s *UserService) UpsertUser(ctx context.Context, user models.User) (UpsertResult, error) {
	now := time.Now().UTC()

	role := user.Role
	if role == "" {
		role = "user"
	}

	update := bson.M{
		"$set": bson.M{"last_log_in": now},
		"$setOnInsert": bson.M{
			"email":      user.Email,
			"name":       user.Name,
			"photoURL":   user.PhotoURL,
			"role":       role,
			"created_at": now,
		},
	}

	res, err := s.collection().UpdateOne(ctx, bson.M{"email": user.Email}, update, options.Update().SetUpsert(true))
	if err != nil {
		return UpsertResult{}, err
	}

	if res.UpsertedID != nil {
		id, _ := res.UpsertedID.(primitive.ObjectID)
		return UpsertResult{Created: true, InsertedID: id.Hex()}, nil
	}
	return UpsertResult{ModifiedCount: res.ModifiedCount}, nil
}
