package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swiftparcel/swiftparcel-be/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestUpsertUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock).DatabaseName("parcelDB"))

	mt.Run("first login inserts", func(mt *mtest.T) {
		oid := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "upserted", Value: bson.A{
				bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: oid}},
			}},
		))
		svc := NewUserService(mt.DB)

		result, err := svc.UpsertUser(context.Background(), models.User{Email: "a@x.com", Name: "Ana"})
		require.NoError(mt, err)
		assert.True(mt, result.Created)
		assert.Equal(mt, oid.Hex(), result.InsertedID)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		require.Equal(mt, "update", evt.CommandName)

		updates, err := evt.Command.Lookup("updates").Array().Values()
		require.NoError(mt, err)
		require.Len(mt, updates, 1)
		update := updates[0].Document()

		// Single atomic upsert keyed on email.
		assert.True(mt, update.Lookup("upsert").Boolean())
		assert.Equal(mt, "a@x.com", update.Lookup("q", "email").StringValue())
		// Profile fields only apply on insert; last_log_in on every call.
		assert.Equal(mt, "Ana", update.Lookup("u", "$setOnInsert", "name").StringValue())
		assert.NoError(mt, update.Lookup("u", "$set", "last_log_in").Validate())
	})

	mt.Run("repeat login touches last_log_in only", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))
		svc := NewUserService(mt.DB)

		result, err := svc.UpsertUser(context.Background(), models.User{Email: "a@x.com", Name: "Renamed"})
		require.NoError(mt, err)
		assert.False(mt, result.Created)
		assert.Empty(mt, result.InsertedID)
		assert.Equal(mt, int64(1), result.ModifiedCount)
	})

	mt.Run("role defaults to user on insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "upserted", Value: bson.A{
				bson.D{{Key: "index", Value: 0}, {Key: "_id", Value: primitive.NewObjectID()}},
			}},
		))
		svc := NewUserService(mt.DB)

		_, err := svc.UpsertUser(context.Background(), models.User{Email: "a@x.com"})
		require.NoError(mt, err)

		evt := mt.GetStartedEvent()
		require.NotNil(mt, evt)
		updates, err := evt.Command.Lookup("updates").Array().Values()
		require.NoError(mt, err)
		update := updates[0].Document()
		assert.Equal(mt, "user", update.Lookup("u", "$setOnInsert", "role").StringValue())
	})
}
