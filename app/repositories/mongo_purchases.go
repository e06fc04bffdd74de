package repositories

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/aman-4321/CourseVault/app/models"
	"github.com/aman-4321/CourseVault/pkg/errs"
	"github.com/aman-4321/CourseVault/pkg/metrics"
)

type MongoPurchases struct {
	col *mongo.Collection
}

func NewMongoPurchases(col *mongo.Collection) *MongoPurchases {
	return &MongoPurchases{col: col}
}

// Create relies on the unique (userId, courseId) index to reject a
// concurrent second purchase that slipped past the ownership check.
func (r *MongoPurchases) Create(ctx context.Context, p *models.Purchase) error {
	defer metrics.ObserveStore("purchases.create", time.Now())

	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	if _, err := r.col.InsertOne(ctx, p); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errs.Wrap(errs.ErrAlreadyOwned, err)
		}
		return errs.Internal(fmt.Errorf("purchases: insert: %w", err))
	}
	return nil
}

type courseCount struct {
	CourseID primitive.ObjectID `bson:"_id"`
	Count    int64              `bson:"count"`
}

func (r *MongoPurchases) CountByCourse(ctx context.Context, courseIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	defer metrics.ObserveStore("purchases.count_by_course", time.Now())

	counts := make(map[primitive.ObjectID]int64, len(courseIDs))
	if len(courseIDs) == 0 {
		return counts, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"courseId": bson.M{"$in": courseIDs}}}},
		{{Key: "$group", Value: bson.M{"_id": "$courseId", "count": bson.M{"$sum": 1}}}},
	}
	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("purchases: aggregate: %w", err))
	}

	var rows []courseCount
	if err := cur.All(ctx, &rows); err != nil {
		return nil, errs.Internal(fmt.Errorf("purchases: decode: %w", err))
	}
	for _, row := range rows {
		counts[row.CourseID] = row.Count
	}
	return counts, nil
}

func (r *MongoPurchases) CourseIDsByUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error) {
	defer metrics.ObserveStore("purchases.course_ids_by_user", time.Now())

	values, err := r.col.Distinct(ctx, "courseId", bson.M{"userId": userID})
	if err != nil {
		return nil, errs.Internal(fmt.Errorf("purchases: distinct: %w", err))
	}

	ids := make([]primitive.ObjectID, 0, len(values))
	for _, v := range values {
		if id, ok := v.(primitive.ObjectID); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
