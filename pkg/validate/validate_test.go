package validate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aman-4321/CourseVault/pkg/errs"
	"github.com/aman-4321/CourseVault/pkg/validate"
)

type signupInput struct {
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6,max=30"`
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName"  validate:"omitempty,max=50"`
}

type courseInput struct {
	Title string   `json:"title" validate:"required,max=30"`
	Price *float64 `json:"price" validate:"omitempty,gte=0"`
}

func fieldNames(fields []errs.FieldError) []string {
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Field)
	}
	return names
}

func TestValidInput(t *testing.T) {
	fields := validate.Struct(signupInput{
		Email:     "ada@example.com",
		Password:  "secret1",
		FirstName: "Ada",
	})
	assert.False(t, validate.HasErrors(fields), "%v", fields)
}

func TestRequiredFieldsUseJSONNames(t *testing.T) {
	fields := validate.Struct(signupInput{})
	assert.ElementsMatch(t, []string{"email", "password", "firstName"}, fieldNames(fields))
}

func TestFirstFailingRulePerField(t *testing.T) {
	fields := validate.Struct(signupInput{Email: "nope", Password: "123", FirstName: "A"})
	require.Len(t, fields, 2)
	assert.Equal(t, errs.FieldError{Field: "email", Message: "The email must be a valid email address."}, fields[0])
	assert.Equal(t, errs.FieldError{Field: "password", Message: "The password must be at least 6 characters."}, fields[1])
}

func TestMaxLength(t *testing.T) {
	fields := validate.Struct(courseInput{Title: "a title that is far too long for a course"})
	require.Len(t, fields, 1)
	assert.Equal(t, "The title must not exceed 30 characters.", fields[0].Message)
}

func TestOptionalNumber(t *testing.T) {
	assert.Empty(t, validate.Struct(courseInput{Title: "Go"}))

	negative := -1.0
	fields := validate.Struct(courseInput{Title: "Go", Price: &negative})
	require.Len(t, fields, 1)
	assert.Equal(t, "price", fields[0].Field)
}

func TestObjectIDRule(t *testing.T) {
	type in struct {
		CourseID string `json:"courseId" validate:"required,objectid"`
	}
	assert.Empty(t, validate.Struct(in{CourseID: "64b7f0c2e4b0a1a2b3c4d5e6"}))

	fields := validate.Struct(in{CourseID: "not-an-id"})
	require.Len(t, fields, 1)
	assert.Equal(t, "The courseId must be a valid id.", fields[0].Message)
}

func TestBcryptRuleCountsBytes(t *testing.T) {
	type in struct {
		Password string `json:"password" validate:"required,max=30,bcrypt"`
	}
	assert.Empty(t, validate.Struct(in{Password: strings.Repeat("é", 30)}))

	fields := validate.Struct(in{Password: strings.Repeat("🔑", 20)})
	require.Len(t, fields, 1)
	assert.Equal(t, "The password must not exceed 72 bytes.", fields[0].Message)
}
