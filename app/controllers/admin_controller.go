package controllers

import (
	"net/http"

	"github.com/aman-4321/CourseVault/app/services"
	"github.com/aman-4321/CourseVault/pkg/auth"
	"github.com/aman-4321/CourseVault/pkg/ctx"
)

// AdminController serves the /admin routes.
type AdminController struct {
	auth      *services.AuthService
	courses   *services.CourseService
	purchases *services.PurchaseService
}

func NewAdminController(a *services.AuthService, c *services.CourseService, p *services.PurchaseService) *AdminController {
	return &AdminController{auth: a, courses: c, purchases: p}
}

func (ac *AdminController) Signup(c *ctx.Context) {
	var in services.SignupInput
	if !c.BindJSON(&in) {
		return
	}
	res, err := ac.auth.Signup(c.Context(), auth.RealmAdmin, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Message(http.StatusCreated, "Admin created successfully", res)
}

func (ac *AdminController) Signin(c *ctx.Context) {
	var in services.SigninInput
	if !c.BindJSON(&in) {
		return
	}
	res, err := ac.auth.Signin(c.Context(), auth.RealmAdmin, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Message(http.StatusOK, "Signed in successfully", res)
}

func (ac *AdminController) CreateCourse(c *ctx.Context) {
	var in services.CreateCourseInput
	if !c.BindJSON(&in) {
		return
	}
	course, err := ac.courses.Create(c.Context(), c.MustIdentity(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Message(http.StatusCreated, "Course created successfully", course)
}

func (ac *AdminController) UpdateCourse(c *ctx.Context) {
	var in services.UpdateCourseInput
	if !c.BindJSON(&in) {
		return
	}
	course, err := ac.courses.Update(c.Context(), c.MustIdentity(), c.Param("id"), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Message(http.StatusOK, "Course updated successfully", course)
}

func (ac *AdminController) DeleteCourse(c *ctx.Context) {
	if err := ac.courses.Delete(c.Context(), c.MustIdentity(), c.Param("id")); err != nil {
		c.Fail(err)
		return
	}
	c.Message(http.StatusOK, "Course deleted successfully", nil)
}

// MyCourses lists the courses created by the calling admin.
func (ac *AdminController) MyCourses(c *ctx.Context) {
	courses, err := ac.courses.ListByCreator(c.Context(), c.MustIdentity())
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(courses)
}

func (ac *AdminController) Earnings(c *ctx.Context) {
	report, err := ac.purchases.Earnings(c.Context(), c.MustIdentity())
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(report)
}
