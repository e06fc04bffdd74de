// Package repositories persists accounts, courses and purchases.
//
// Each store has a MongoDB implementation for DB_DRIVER=mongo and an
// in-memory one for DB_DRIVER=memory and tests. Both report the same
// typed errors from pkg/errs.
package repositories

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/aman-4321/CourseVault/app/models"
	"github.com/aman-4321/CourseVault/pkg/errs"
)

var (
	ErrUserNotFound   = errs.NotFound("User not found")
	ErrAdminNotFound  = errs.NotFound("Admin not found")
	ErrCourseNotFound = errs.NotFound("Course not found")
)

// UserRepository stores learner accounts.
type UserRepository interface {
	// Create inserts u and sets its ID. Fails errs.ErrDuplicateEmail.
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	// Update applies patch and returns the stored user.
	Update(ctx context.Context, id primitive.ObjectID, patch models.ProfilePatch) (*models.User, error)
	// AddPurchase adds courseID to coursesOwned and purchaseID to purchases.
	AddPurchase(ctx context.Context, userID, courseID, purchaseID primitive.ObjectID) error
}

// AdminRepository stores content-admin accounts.
type AdminRepository interface {
	Create(ctx context.Context, a *models.Admin) error
	FindByEmail(ctx context.Context, email string) (*models.Admin, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Admin, error)
	AddCourse(ctx context.Context, adminID, courseID primitive.ObjectID) error
	RemoveCourse(ctx context.Context, adminID, courseID primitive.ObjectID) error
}

// CourseRepository stores the catalog.
type CourseRepository interface {
	Create(ctx context.Context, c *models.Course) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Course, error)
	FindAll(ctx context.Context) ([]models.Course, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Course, error)
	FindByCreator(ctx context.Context, creatorID primitive.ObjectID) ([]models.Course, error)
	Update(ctx context.Context, id primitive.ObjectID, patch models.CoursePatch) (*models.Course, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// PurchaseRepository stores the ledger.
type PurchaseRepository interface {
	// Create inserts p and sets its ID. A second purchase of the same
	// course by the same user fails errs.ErrAlreadyOwned.
	Create(ctx context.Context, p *models.Purchase) error
	// CountByCourse returns the number of purchases per course id. Courses
	// with no purchases are absent from the map.
	CountByCourse(ctx context.Context, courseIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error)
	// CourseIDsByUser returns the ids of every course userID has bought.
	CourseIDsByUser(ctx context.Context, userID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// Store bundles the four repositories.
type Store struct {
	Users     UserRepository
	Admins    AdminRepository
	Courses   CourseRepository
	Purchases PurchaseRepository
}

var (
	_ UserRepository     = (*MongoUsers)(nil)
	_ AdminRepository    = (*MongoAdmins)(nil)
	_ CourseRepository   = (*MongoCourses)(nil)
	_ PurchaseRepository = (*MongoPurchases)(nil)

	_ UserRepository     = (*MemoryUsers)(nil)
	_ AdminRepository    = (*MemoryAdmins)(nil)
	_ CourseRepository   = (*MemoryCourses)(nil)
	_ PurchaseRepository = (*MemoryPurchases)(nil)
)
