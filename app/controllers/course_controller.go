package controllers

import (
	"github.com/aman-4321/CourseVault/app/services"
	"github.com/aman-4321/CourseVault/pkg/ctx"
)

// CourseController serves the public /course routes.
type CourseController struct {
	courses *services.CourseService
}

func NewCourseController(c *services.CourseService) *CourseController {
	return &CourseController{courses: c}
}

func (cc *CourseController) Index(c *ctx.Context) {
	courses, err := cc.courses.List(c.Context())
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(courses)
}

func (cc *CourseController) Show(c *ctx.Context) {
	course, err := cc.courses.Get(c.Context(), c.Param("id"))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(course)
}
