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
	"github.com/aman-4321/CourseVault/pkg/errs"
	"github.com/aman-4321/CourseVault/pkg/metrics"
)

type MongoCourses struct {
	col *mongo.Collection
	now func() time.Time
}

func NewMongoCourses(col *mongo.Collection) *MongoCourses {
	return &MongoCourses{col: col, now: time.Now}
}

func (r *MongoCourses) Create(ctx context.Context, c *models.Course) error {
	defer metrics.ObserveStore("courses.create", time.Now())

	if c.ID.IsZero() {
		c.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, c); err != nil {
		return errs.Internal(fmt.Errorf("courses: insert: %w", err))
	}
	return nil
}

func (r *MongoCourses) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error) {
	defer metrics.ObserveStore("courses.find_by_id", time.Now())

	var c models.Course
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCourseNotFound
		}
		return nil, errs.Internal(fmt.Errorf("courses: find: %w", err))
	}
	return &c, nil
}

func (r *MongoCourses) FindAll(ctx context.Context) ([]models.Course, error) {
	defer metrics.ObserveStore("courses.find_all", time.Now())
	return r.find(ctx, bson.M{})
}

func (r *MongoCourses) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Course, error) {
	defer metrics.ObserveStore("courses.find_by_ids", time.Now())
	if len(ids) == 0 {
		return []models.Course{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}})
}

func (r *MongoCourses) FindByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]models.Course, error) {
	defer metrics.ObserveStore("courses.find_by_creator", time.Now())
	return r.find(ctx, bson.M{"creatorId": creatorID})
}

func (r *MongoCourses) find(ctx context.Context, filter bson.M) ([]models.Course, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("courses: find: %w", err))
	}
	courses := []models.Course{}
	if err := cur.All(ctx, &courses); err != nil {
		return nil, errs.Internal(fmt.Errorf("courses: decode: %w", err))
	}
	return courses, nil
}

func (r *MongoCourses) Update(ctx context.Context, id primitive.ObjectID, patch models.CoursePatch) (*models.Course, error) {
	defer metrics.ObserveStore("courses.update", time.Now())

	set := bson.M{"updatedAt": r.now().UTC()}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Price != nil {
		set["price"] = *patch.Price
	}
	if patch.ImageURL != nil {
		set["imageUrl"] = *patch.ImageURL
	}

	var c models.Course
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCourseNotFound
		}
		return nil, errs.Internal(fmt.Errorf("courses: update: %w", err))
	}
	return &c, nil
}

func (r *MongoCourses) Delete(ctx context.Context, id primitive.ObjectID) error {
	defer metrics.ObserveStore("courses.delete", time.Now())

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return errs.Internal(fmt.Errorf("courses: delete: %w", err))
	}
	if res.DeletedCount == 0 {
		return ErrCourseNotFound
	}
	return nil
}
