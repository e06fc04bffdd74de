package routes

import (
	"github.com/aman-4321/CourseVault/app/controllers"
	"github.com/aman-4321/CourseVault/app/services"
	"github.com/aman-4321/CourseVault/pkg/auth"
	"github.com/aman-4321/CourseVault/pkg/ctx"
	"github.com/aman-4321/CourseVault/pkg/middleware"
	"github.com/aman-4321/CourseVault/pkg/router"
)

// Deps is what the API routes need from the application.
type Deps struct {
	Auth      *services.AuthService
	Courses   *services.CourseService
	Purchases *services.PurchaseService
	Gate      *middleware.Gate
	// AuthLimit throttles signup and signin. Nil disables it.
	AuthLimit router.Middleware
}

// RegisterAPI mounts the /api/v1 routes on r.
func RegisterAPI(r *router.Router, d Deps) {
	users := controllers.NewUserController(d.Auth, d.Courses, d.Purchases)
	admins := controllers.NewAdminController(d.Auth, d.Courses, d.Purchases)
	courses := controllers.NewCourseController(d.Courses)

	var throttle []router.Middleware
	if d.AuthLimit != nil {
		throttle = append(throttle, d.AuthLimit)
	}
	asUser := router.Middleware(d.Gate.Require(auth.RealmUser))
	asAdmin := router.Middleware(d.Gate.Require(auth.RealmAdmin))

	api := r.Group("/api/v1")

	user := api.Group("/user")
	user.Post("/signup", "user.signup", ctx.Wrap(users.Signup), throttle...)
	user.Post("/signin", "user.signin", ctx.Wrap(users.Signin), throttle...)
	user.Get("/bulk", "user.bulk", ctx.Wrap(users.Bulk))

	userAuthed := user.Group("", asUser)
	userAuthed.Post("/logout", "user.logout", ctx.Wrap(users.Logout))
	userAuthed.Post("/purchase", "user.purchase", ctx.Wrap(users.Purchase))
	userAuthed.Get("/purchased", "user.purchased", ctx.Wrap(users.Purchased))
	userAuthed.Put("/update", "user.update", ctx.Wrap(users.Update))

	admin := api.Group("/admin")
	admin.Post("/signup", "admin.signup", ctx.Wrap(admins.Signup), throttle...)
	admin.Post("/signin", "admin.signin", ctx.Wrap(admins.Signin), throttle...)

	adminAuthed := admin.Group("", asAdmin)
	adminAuthed.Post("/course", "admin.course.store", ctx.Wrap(admins.CreateCourse))
	adminAuthed.Get("/course/bulk", "admin.course.mine", ctx.Wrap(admins.MyCourses))
	adminAuthed.Put("/course/{id}", "admin.course.update", ctx.Wrap(admins.UpdateCourse))
	adminAuthed.Delete("/course/{id}", "admin.course.destroy", ctx.Wrap(admins.DeleteCourse))
	adminAuthed.Get("/earnings", "admin.earnings", ctx.Wrap(admins.Earnings))

	catalog := api.Group("/course")
	catalog.Get("/course", "course.index", ctx.Wrap(courses.Index))
	catalog.Get("/course/{id}", "course.show", ctx.Wrap(courses.Show))
}
