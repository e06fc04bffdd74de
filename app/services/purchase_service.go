package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aman-4321/CourseVault/app/models"
	"github.com/aman-4321/CourseVault/app/repositories"
	"github.com/aman-4321/CourseVault/pkg/auth"
	"github.com/aman-4321/CourseVault/pkg/errs"
	"github.com/aman-4321/CourseVault/pkg/logger"
	"github.com/aman-4321/CourseVault/pkg/metrics"
)

// PurchaseInput is the body of POST /user/purchase.
type PurchaseInput struct {
	CourseID string `json:"courseId" validate:"required,objectid"`
}

var ErrNoCourses = errs.NotFound("No courses found for this admin")

// PurchaseService records purchases and reports earnings.
type PurchaseService struct {
	users     repositories.UserRepository
	courses   repositories.CourseRepository
	purchases repositories.PurchaseRepository
}

func NewPurchaseService(users repositories.UserRepository, courses repositories.CourseRepository, purchases repositories.PurchaseRepository) *PurchaseService {
	return &PurchaseService{users: users, courses: courses, purchases: purchases}
}

// Purchase buys courseID for the calling user.
//
// The purchase record and the user's owned-course set are two writes. If
// the second fails the caller gets an internal error, but the purchase
// stands: Owned still lists the course because it reads the ledger too,
// and a retry is answered with "Course already purchased" by the unique
// pair index.
func (s *PurchaseService) Purchase(ctx context.Context, user auth.Identity, courseID string) (*models.Purchase, error) {
	p, err := s.purchase(ctx, user, courseID)
	metrics.RecordPurchase(purchaseResult(err))
	return p, err
}

func (s *PurchaseService) purchase(ctx context.Context, user auth.Identity, courseID string) (*models.Purchase, error) {
	userID, err := subjectID(user)
	if err != nil {
		return nil, err
	}
	cid, err := parseID("courseId", courseID)
	if err != nil {
		return nil, err
	}

	course, err := s.courses.FindByID(ctx, cid)
	if err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u.Owns(course.ID) {
		return nil, errs.ErrAlreadyOwned
	}

	p := &models.Purchase{UserID: u.ID, CourseID: course.ID, CreatedAt: time.Now().UTC()}
	if err := s.purchases.Create(ctx, p); err != nil {
		return nil, err
	}

	if err := s.users.AddPurchase(ctx, u.ID, course.ID, p.ID); err != nil {
		logger.WithCtx(ctx).Error("purchase recorded but owned courses not updated",
			"purchase_id", p.ID.Hex(),
			"user_id", u.ID.Hex(),
			"course_id", course.ID.Hex(),
			"error", err,
		)
		return nil, errs.Internal(err)
	}

	logger.WithCtx(ctx).Info("course purchased", "user_id", u.ID.Hex(), "course_id", course.ID.Hex())
	return p, nil
}

func purchaseResult(err error) string {
	switch {
	case err == nil:
		return "created"
	case errors.Is(err, errs.ErrAlreadyOwned):
		return "already_owned"
	case errs.KindOf(err) == errs.KindNotFound:
		return "not_found"
	case errs.KindOf(err) == errs.KindValidation:
		return "invalid"
	default:
		return "error"
	}
}

// Owned returns the calling user's courses: the owned-course set plus any
// purchase in the ledger the set missed.
func (s *PurchaseService) Owned(ctx context.Context, user auth.Identity) ([]models.Course, error) {
	userID, err := subjectID(user)
	if err != nil {
		return nil, err
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	ledger, err := s.purchases.CourseIDsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.courses.FindByIDs(ctx, mergeIDs(u.CoursesOwned, ledger))
}

// mergeIDs returns a followed by the ids of b not already in a.
func mergeIDs(a, b []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(a)+len(b))
	out := make([]primitive.ObjectID, 0, len(a)+len(b))
	for _, ids := range [][]primitive.ObjectID{a, b} {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}
	return out
}

// Earnings sums price times purchase count over the calling admin's
// courses. An admin with no courses gets ErrNoCourses.
func (s *PurchaseService) Earnings(ctx context.Context, admin auth.Identity) (*models.EarningsReport, error) {
	adminID, err := subjectID(admin)
	if err != nil {
		return nil, err
	}

	courses, err := s.courses.FindByCreator(ctx, adminID)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, ErrNoCourses
	}

	ids := make([]primitive.ObjectID, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	counts, err := s.purchases.CountByCourse(ctx, ids)
	if err != nil {
		return nil, err
	}

	report := &models.EarningsReport{AdminID: adminID, Courses: make([]models.EarningsLine, 0, len(courses))}
	for _, c := range courses {
		n := counts[c.ID]
		line := models.EarningsLine{
			CourseID:  c.ID,
			Title:     c.Title,
			Price:     c.Price,
			Purchases: n,
			Revenue:   c.Price * float64(n),
		}
		report.Total += line.Revenue
		report.Courses = append(report.Courses, line)
	}
	return report, nil
}
