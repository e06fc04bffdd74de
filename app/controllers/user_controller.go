package controllers

import (
	"net/http"

	"github.com/aman-4321/CourseVault/app/services"
	"github.com/aman-4321/CourseVault/pkg/auth"
	"github.com/aman-4321/CourseVault/pkg/ctx"
)

// UserController serves the /user routes.
type UserController struct {
	auth      *services.AuthService
	courses   *services.CourseService
	purchases *services.PurchaseService
}

func NewUserController(a *services.AuthService, c *services.CourseService, p *services.PurchaseService) *UserController {
	return &UserController{auth: a, courses: c, purchases: p}
}

func (uc *UserController) Signup(c *ctx.Context) {
	var in services.SignupInput
	if !c.BindJSON(&in) {
		return
	}
	res, err := uc.auth.Signup(c.Context(), auth.RealmUser, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Message(http.StatusCreated, "User created successfully", res)
}

func (uc *UserController) Signin(c *ctx.Context) {
	var in services.SigninInput
	if !c.BindJSON(&in) {
		return
	}
	res, err := uc.auth.Signin(c.Context(), auth.RealmUser, in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Message(http.StatusOK, "Signed in successfully", res)
}

func (uc *UserController) Logout(c *ctx.Context) {
	if err := uc.auth.Logout(c.Context(), c.MustIdentity()); err != nil {
		c.Fail(err)
		return
	}
	c.Message(http.StatusOK, "Logged out successfully", nil)
}

func (uc *UserController) Purchase(c *ctx.Context) {
	var in services.PurchaseInput
	if !c.BindJSON(&in) {
		return
	}
	p, err := uc.purchases.Purchase(c.Context(), c.MustIdentity(), in.CourseID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Message(http.StatusCreated, "Course purchased successfully", p)
}

// Bulk lists every course in the catalog.
func (uc *UserController) Bulk(c *ctx.Context) {
	courses, err := uc.courses.List(c.Context())
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(courses)
}

func (uc *UserController) Purchased(c *ctx.Context) {
	courses, err := uc.purchases.Owned(c.Context(), c.MustIdentity())
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(courses)
}

func (uc *UserController) Update(c *ctx.Context) {
	var in services.UpdateProfileInput
	if !c.BindJSON(&in) {
		return
	}
	u, err := uc.auth.UpdateProfile(c.Context(), c.MustIdentity(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Message(http.StatusOK, "Profile updated successfully", u)
}
