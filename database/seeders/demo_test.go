package seeders_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aman-4321/CourseVault/app/repositories"
	"github.com/aman-4321/CourseVault/app/services"
	"github.com/aman-4321/CourseVault/database/seeders"
	"github.com/aman-4321/CourseVault/pkg/auth"
	"github.com/aman-4321/CourseVault/pkg/denylist"
)

func TestSeedDemoCatalogIsRepeatable(t *testing.T) {
	store := repositories.NewMemoryStore()
	tokens := auth.NewTokens("user-secret", "admin-secret", time.Hour)
	d := seeders.Deps{
		Auth:          services.NewAuthService(store.Users, store.Admins, tokens, denylist.NewMemory()),
		Courses:       services.NewCourseService(store.Courses, store.Admins),
		AdminPassword: "changeme123",
	}
	ctx := context.Background()

	require.NoError(t, seeders.SeedDemoCatalog(ctx, d))
	require.NoError(t, seeders.SeedDemoCatalog(ctx, d))

	courses, err := store.Courses.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, 3)

	admin, err := store.Admins.FindByEmail(ctx, seeders.DemoAdminEmail)
	require.NoError(t, err)
	assert.Len(t, admin.CoursesCreated, 3)
	for _, c := range courses {
		assert.Equal(t, admin.ID, c.CreatorID)
	}
}

func TestSeedDemoCatalogWrongPassword(t *testing.T) {
	store := repositories.NewMemoryStore()
	tokens := auth.NewTokens("user-secret", "admin-secret", time.Hour)
	authSvc := services.NewAuthService(store.Users, store.Admins, tokens, denylist.NewMemory())
	courses := services.NewCourseService(store.Courses, store.Admins)
	ctx := context.Background()

	require.NoError(t, seeders.SeedDemoCatalog(ctx, seeders.Deps{Auth: authSvc, Courses: courses, AdminPassword: "changeme123"}))
	err := seeders.SeedDemoCatalog(ctx, seeders.Deps{Auth: authSvc, Courses: courses, AdminPassword: "different123"})
	assert.Error(t, err)
}
