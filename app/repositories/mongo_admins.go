package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aman-4321/CourseVault/app/models"
	"github.com/aman-4321/CourseVault/pkg/errs"
	"github.com/aman-4321/CourseVault/pkg/metrics"
)

type MongoAdmins struct {
	col *mongo.Collection
}

func NewMongoAdmins(col *mongo.Collection) *MongoAdmins {
	return &MongoAdmins{col: col}
}

func (r *MongoAdmins) Create(ctx context.Context, a *models.Admin) error {
	defer metrics.ObserveStore("admins.create", time.Now())

	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	if a.CoursesCreated == nil {
		a.CoursesCreated = []primitive.ObjectID{}
	}

	if _, err := r.col.InsertOne(ctx, a); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Wrap(errs.ErrDuplicateEmail, err)
		}
		return errs.Internal(fmt.Errorf("admins: insert: %w", err))
	}
	return nil
}

func (r *MongoAdmins) FindByEmail(ctx context.Context, email string) (*models.Admin, error) {
	defer metrics.ObserveStore("admins.find_by_email", time.Now())
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoAdmins) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error) {
	defer metrics.ObserveStore("admins.find_by_id", time.Now())
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoAdmins) findOne(ctx context.Context, filter bson.M) (*models.Admin, error) {
	var a models.Admin
	if err := r.col.FindOne(ctx, filter).Decode(&a); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrAdminNotFound
		}
		return nil, errs.Internal(fmt.Errorf("admins: find: %w", err))
	}
	return &a, nil
}

func (r *MongoAdmins) AddCourse(ctx context.Context, adminID, courseID primitive.ObjectID) error {
	defer metrics.ObserveStore("admins.add_course", time.Now())
	return r.updateCourses(ctx, adminID, bson.M{"$addToSet": bson.M{"coursesCreated": courseID}})
}

func (r *MongoAdmins) RemoveCourse(ctx context.Context, adminID, courseID primitive.ObjectID) error {
	defer metrics.ObserveStore("admins.remove_course", time.Now())
	return r.updateCourses(ctx, adminID, bson.M{"$pull": bson.M{"coursesCreated": courseID}})
}

func (r *MongoAdmins) updateCourses(ctx context.Context, adminID primitive.ObjectID, update bson.M) error {
	res, err := r.col.UpdateByID(ctx, adminID, update)
	if err != nil {
		return errs.Internal(fmt.Errorf("admins: update courses: %w", err))
	}
	if res.MatchedCount == 0 {
		return ErrAdminNotFound
	}
	return nil
}
