package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/aman-4321/CourseVault/app/models"
	"github.com/aman-4321/CourseVault/app/repositories"
	"github.com/aman-4321/CourseVault/pkg/errs"
)

func TestMongoUsers(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("create sets id", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		u := &models.User{Email: "a@x.io"}
		require.NoError(mt, repositories.NewMongoUsers(mt.Coll).Create(ctx, u))
		assert.False(mt, u.ID.IsZero())
		assert.NotNil(mt, u.CoursesOwned)
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error",
		}))

		err := repositories.NewMongoUsers(mt.Coll).Create(ctx, &models.User{Email: "a@x.io"})
		assert.ErrorIs(mt, err, errs.ErrDuplicateEmail)
	})

	mt.Run("find by email", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "a@x.io"},
			{Key: "password", Value: "hash"},
			{Key: "firstName", Value: "Ada"},
		}))

		u, err := repositories.NewMongoUsers(mt.Coll).FindByEmail(ctx, "a@x.io")
		require.NoError(mt, err)
		assert.Equal(mt, id, u.ID)
		assert.Equal(mt, "hash", u.Password)
		assert.Equal(mt, "Ada", u.FirstName)
	})

	mt.Run("find missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.users", mtest.FirstBatch))

		_, err := repositories.NewMongoUsers(mt.Coll).FindByID(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, repositories.ErrUserNotFound)
	})

	mt.Run("update returns new document", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: bson.D{
			{Key: "_id", Value: id},
			{Key: "email", Value: "new@x.io"},
		}}))

		email := "new@x.io"
		u, err := repositories.NewMongoUsers(mt.Coll).Update(ctx, id, models.ProfilePatch{Email: &email})
		require.NoError(mt, err)
		assert.Equal(mt, "new@x.io", u.Email)
	})

	mt.Run("update to taken email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code: 11000, Name: "DuplicateKey", Message: "E11000 duplicate key error",
		}))

		email := "taken@x.io"
		_, err := repositories.NewMongoUsers(mt.Coll).Update(ctx, primitive.NewObjectID(), models.ProfilePatch{Email: &email})
		assert.ErrorIs(mt, err, errs.ErrDuplicateEmail)
	})

	mt.Run("add purchase on missing user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}, bson.E{Key: "nModified", Value: 0}))

		err := repositories.NewMongoUsers(mt.Coll).AddPurchase(ctx, primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, repositories.ErrUserNotFound)
	})
}

func TestMongoCourses(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("find all", func(mt *mtest.T) {
		creator := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.courses", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "title", Value: "Go"}, {Key: "price", Value: 100.0}, {Key: "creatorId", Value: creator}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "title", Value: "Rust"}, {Key: "price", Value: 50.0}, {Key: "creatorId", Value: creator}},
		))

		courses, err := repositories.NewMongoCourses(mt.Coll).FindAll(ctx)
		require.NoError(mt, err)
		require.Len(mt, courses, 2)
		assert.Equal(mt, "Go", courses[0].Title)
		assert.Equal(mt, 50.0, courses[1].Price)
	})

	mt.Run("find by ids skips the query when empty", func(mt *mtest.T) {
		courses, err := repositories.NewMongoCourses(mt.Coll).FindByIDs(ctx, nil)
		require.NoError(mt, err)
		assert.Empty(mt, courses)
	})

	mt.Run("update missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "value", Value: nil}))

		title := "New"
		_, err := repositories.NewMongoCourses(mt.Coll).Update(ctx, primitive.NewObjectID(), models.CoursePatch{Title: &title})
		assert.ErrorIs(mt, err, repositories.ErrCourseNotFound)
	})

	mt.Run("delete missing", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		err := repositories.NewMongoCourses(mt.Coll).Delete(ctx, primitive.NewObjectID())
		assert.ErrorIs(mt, err, repositories.ErrCourseNotFound)
	})
}

func TestMongoPurchases(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("second purchase of the pair", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index: 0, Code: 11000, Message: "E11000 duplicate key error",
		}))

		err := repositories.NewMongoPurchases(mt.Coll).Create(ctx, &models.Purchase{
			UserID: primitive.NewObjectID(), CourseID: primitive.NewObjectID(),
		})
		assert.ErrorIs(mt, err, errs.ErrAlreadyOwned)
	})

	mt.Run("count by course", func(mt *mtest.T) {
		c1, c2 := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "db.purchases", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: c1}, {Key: "count", Value: int32(3)}},
		))

		counts, err := repositories.NewMongoPurchases(mt.Coll).CountByCourse(ctx, []primitive.ObjectID{c1, c2})
		require.NoError(mt, err)
		assert.Equal(mt, map[primitive.ObjectID]int64{c1: 3}, counts)
	})

	mt.Run("course ids by user", func(mt *mtest.T) {
		c1, c2 := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "values", Value: bson.A{c1, c2}}))

		ids, err := repositories.NewMongoPurchases(mt.Coll).CourseIDsByUser(ctx, primitive.NewObjectID())
		require.NoError(mt, err)
		assert.Equal(mt, []primitive.ObjectID{c1, c2}, ids)
	})
}
