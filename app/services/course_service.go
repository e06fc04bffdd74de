package services

import (
	"context"
	"time"

	"github.com/aman-4321/CourseVault/app/models"
	"github.com/aman-4321/CourseVault/app/repositories"
	"github.com/aman-4321/CourseVault/pkg/auth"
	"github.com/aman-4321/CourseVault/pkg/errs"
	"github.com/aman-4321/CourseVault/pkg/logger"
)

// CreateCourseInput is the body of POST /admin/course.
type CreateCourseInput struct {
	Title       string   `json:"title" validate:"required,max=30"`
	Description string   `json:"description" validate:"required,max=200"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	ImageURL    string   `json:"imageUrl" validate:"required,max=2048"`
}

// UpdateCourseInput is the body of PUT /admin/course/{id}.
type UpdateCourseInput struct {
	Title       *string  `json:"title" validate:"omitempty,min=1,max=30"`
	Description *string  `json:"description" validate:"omitempty,min=1,max=200"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	ImageURL    *string  `json:"imageUrl" validate:"omitempty,max=2048"`
}

var ErrNotCourseOwner = errs.Forbidden("You can only delete your own courses")

// CourseService manages the catalog.
type CourseService struct {
	courses repositories.CourseRepository
	admins  repositories.AdminRepository
}

func NewCourseService(courses repositories.CourseRepository, admins repositories.AdminRepository) *CourseService {
	return &CourseService{courses: courses, admins: admins}
}

// List returns every course. There is no pagination.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	return s.courses.FindAll(ctx)
}

func (s *CourseService) Get(ctx context.Context, courseID string) (*models.Course, error) {
	id, err := parseID("id", courseID)
	if err != nil {
		return nil, err
	}
	return s.courses.FindByID(ctx, id)
}

// ListByCreator returns the courses the calling admin created.
func (s *CourseService) ListByCreator(ctx context.Context, admin auth.Identity) ([]models.Course, error) {
	adminID, err := subjectID(admin)
	if err != nil {
		return nil, err
	}
	return s.courses.FindByCreator(ctx, adminID)
}

// Create stores a course owned by the calling admin and records it in the
// admin's coursesCreated.
func (s *CourseService) Create(ctx context.Context, admin auth.Identity, in CreateCourseInput) (*models.Course, error) {
	adminID, err := subjectID(admin)
	if err != nil {
		return nil, err
	}
	if _, err := s.admins.FindByID(ctx, adminID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	c := &models.Course{
		Title:       in.Title,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		CreatorID:   adminID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Price != nil {
		c.Price = *in.Price
	}

	if err := s.courses.Create(ctx, c); err != nil {
		return nil, err
	}
	if err := s.admins.AddCourse(ctx, adminID, c.ID); err != nil {
		logger.WithCtx(ctx).Error("course created but not linked to admin",
			"course_id", c.ID.Hex(), "admin_id", adminID.Hex(), "error", err)
		return nil, err
	}
	return c, nil
}

// Update patches a course. Any authenticated admin may update any course;
// only deletion checks the creator.
func (s *CourseService) Update(ctx context.Context, admin auth.Identity, courseID string, in UpdateCourseInput) (*models.Course, error) {
	if _, err := subjectID(admin); err != nil {
		return nil, err
	}
	id, err := parseID("id", courseID)
	if err != nil {
		return nil, err
	}

	patch := models.CoursePatch{
		Title:       in.Title,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
	}
	if patch.Empty() {
		return nil, errs.Validation("No fields to update")
	}
	return s.courses.Update(ctx, id, patch)
}

// Delete removes a course created by the calling admin.
func (s *CourseService) Delete(ctx context.Context, admin auth.Identity, courseID string) error {
	adminID, err := subjectID(admin)
	if err != nil {
		return err
	}
	id, err := parseID("id", courseID)
	if err != nil {
		return err
	}

	c, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if c.CreatorID != adminID {
		return ErrNotCourseOwner
	}

	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.admins.RemoveCourse(ctx, adminID, id); err != nil {
		logger.WithCtx(ctx).Error("course deleted but still listed on admin",
			"course_id", id.Hex(), "admin_id", adminID.Hex(), "error", err)
	}
	return nil
}
