package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aman-4321/CourseVault/app/models"
	"github.com/aman-4321/CourseVault/pkg/database"
	"github.com/aman-4321/CourseVault/pkg/errs"
	"github.com/aman-4321/CourseVault/pkg/metrics"
)

// NewMongoStore builds the Mongo-backed repositories on db.
func NewMongoStore(db *database.DB) Store {
	return Store{
		Users:     NewMongoUsers(db.Collection(database.Users)),
		Admins:    NewMongoAdmins(db.Collection(database.Admins)),
		Courses:   NewMongoCourses(db.Collection(database.Courses)),
		Purchases: NewMongoPurchases(db.Collection(database.Purchases)),
	}
}

type MongoUsers struct {
	col *mongo.Collection
}

func NewMongoUsers(col *mongo.Collection) *MongoUsers {
	return &MongoUsers{col: col}
}

func (r *MongoUsers) Create(ctx context.Context, u *models.User) error {
	defer metrics.ObserveStore("users.create", time.Now())

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if u.CoursesOwned == nil {
		u.CoursesOwned = []primitive.ObjectID{}
	}
	if u.Purchases == nil {
		u.Purchases = []primitive.ObjectID{}
	}

	if _, err := r.col.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Wrap(errs.ErrDuplicateEmail, err)
		}
		return errs.Internal(fmt.Errorf("users: insert: %w", err))
	}
	return nil
}

func (r *MongoUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	defer metrics.ObserveStore("users.find_by_email", time.Now())
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUsers) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	defer metrics.ObserveStore("users.find_by_id", time.Now())
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoUsers) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := r.col.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Internal(fmt.Errorf("users: find: %w", err))
	}
	return &u, nil
}

func (r *MongoUsers) Update(ctx context.Context, id primitive.ObjectID, patch models.ProfilePatch) (*models.User, error) {
	defer metrics.ObserveStore("users.update", time.Now())

	set := bson.M{}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.FirstName != nil {
		set["firstName"] = *patch.FirstName
	}
	if patch.LastName != nil {
		set["lastName"] = *patch.LastName
	}
	if patch.Password != nil {
		set["password"] = *patch.Password
	}
	if len(set) == 0 {
		return r.findOne(ctx, bson.M{"_id": id})
	}

	var u models.User
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&u)
	switch {
	case err == nil:
		return &u, nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return nil, ErrUserNotFound
	case mongo.IsDuplicateKeyError(err):
		return nil, errs.Wrap(errs.ErrDuplicateEmail, err)
	default:
		return nil, errs.Internal(fmt.Errorf("users: update: %w", err))
	}
}

func (r *MongoUsers) AddPurchase(ctx context.Context, userID, courseID, purchaseID primitive.ObjectID) error {
	defer metrics.ObserveStore("users.add_purchase", time.Now())

	res, err := r.col.UpdateByID(ctx, userID, bson.M{"$addToSet": bson.M{
		"coursesOwned": courseID,
		"purchases":    purchaseID,
	}})
	if err != nil {
		return errs.Internal(fmt.Errorf("users: add purchase: %w", err))
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
