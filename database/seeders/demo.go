package seeders

import (
	"context"
	"errors"

	"github.com/aman-4321/CourseVault/app/services"
	"github.com/aman-4321/CourseVault/pkg/auth"
	"github.com/aman-4321/CourseVault/pkg/errs"
)

// DemoAdminEmail owns the demo catalog.
const DemoAdminEmail = "demo-admin@coursevault.dev"

func init() {
	Register("demo_catalog", SeedDemoCatalog)
}

var demoCourses = []services.CreateCourseInput{
	{Title: "Go from Zero", Description: "Types, interfaces, goroutines and the standard library.", ImageURL: "https://images.coursevault.dev/go.png"},
	{Title: "MongoDB Essentials", Description: "Documents, indexes and aggregation pipelines.", ImageURL: "https://images.coursevault.dev/mongo.png"},
	{Title: "HTTP APIs in Practice", Description: "Routing, middleware, auth and error envelopes.", ImageURL: "https://images.coursevault.dev/http.png"},
}

var demoPrices = []float64{49, 39, 0}

// SeedDemoCatalog creates the demo admin, or signs in if it exists, and
// adds the demo courses the admin does not have yet.
func SeedDemoCatalog(ctx context.Context, d Deps) error {
	admin, err := demoAdmin(ctx, d)
	if err != nil {
		return err
	}

	existing, err := d.Courses.ListByCreator(ctx, admin)
	if err != nil {
		return err
	}
	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[c.Title] = true
	}

	for i, in := range demoCourses {
		if have[in.Title] {
			continue
		}
		price := demoPrices[i]
		in.Price = &price
		if _, err := d.Courses.Create(ctx, admin, in); err != nil {
			return err
		}
	}
	return nil
}

func demoAdmin(ctx context.Context, d Deps) (auth.Identity, error) {
	res, err := d.Auth.Signup(ctx, auth.RealmAdmin, services.SignupInput{
		Email:     DemoAdminEmail,
		FirstName: "Demo",
		LastName:  "Admin",
		Password:  d.AdminPassword,
	})
	if errors.Is(err, errs.ErrDuplicateEmail) {
		res, err = d.Auth.Signin(ctx, auth.RealmAdmin, services.SigninInput{
			Email:    DemoAdminEmail,
			Password: d.AdminPassword,
		})
	}
	if err != nil {
		return auth.Identity{}, err
	}
	return auth.Identity{Realm: auth.RealmAdmin, SubjectID: res.ID}, nil
}
