// Package validate runs struct-tag validation and reports failures as
// field errors keyed by JSON name.
//
// Rules are go-playground/validator tags under the `validate` key:
//
//	type SignupInput struct {
//	    Email     string `json:"email"     validate:"required,email"`
//	    Password  string `json:"password"  validate:"required,min=6,max=30"`
//	    FirstName string `json:"firstName" validate:"required,max=50"`
//	}
//
// Messages read like "The email must be a valid email address."
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/aman-4321/CourseVault/pkg/errs"
)

var (
	once sync.Once
	v    *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonFieldName)
		if err := v.RegisterValidation("objectid", isObjectID); err != nil {
			panic(err)
		}
		if err := v.RegisterValidation("bcrypt", fitsBcrypt); err != nil {
			panic(err)
		}
	})
	return v
}

// Struct validates s and returns one FieldError per failing field, in
// declaration order. A nil slice means s is valid.
func Struct(s interface{}) []errs.FieldError {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []errs.FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]errs.FieldError, 0, len(verrs))
	seen := make(map[string]bool, len(verrs))
	for _, fe := range verrs {
		name := fe.Field()
		if seen[name] {
			continue // first failing rule per field
		}
		seen[name] = true
		out = append(out, errs.FieldError{Field: name, Message: message(fe)})
	}
	return out
}

// HasErrors reports whether fields is non-empty.
func HasErrors(fields []errs.FieldError) bool { return len(fields) > 0 }

func message(fe validator.FieldError) string {
	field := fe.Field()
	param := fe.Param()
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "url", "http_url":
		return fmt.Sprintf("The %s must be a valid URL.", field)
	case "objectid":
		return fmt.Sprintf("The %s must be a valid id.", field)
	case "bcrypt":
		return fmt.Sprintf("The %s must not exceed %d bytes.", field, BcryptMaxBytes)
	case "min":
		if isString {
			return fmt.Sprintf("The %s must be at least %s characters.", field, param)
		}
		return fmt.Sprintf("The %s must be at least %s.", field, param)
	case "max":
		if isString {
			return fmt.Sprintf("The %s must not exceed %s characters.", field, param)
		}
		return fmt.Sprintf("The %s must not be greater than %s.", field, param)
	case "gte":
		return fmt.Sprintf("The %s must be greater than or equal to %s.", field, param)
	case "lte":
		return fmt.Sprintf("The %s must be less than or equal to %s.", field, param)
	default:
		return fmt.Sprintf("The %s is invalid.", field)
	}
}

func jsonFieldName(f reflect.StructField) string {
	name := f.Tag.Get("json")
	if name == "-" {
		return ""
	}
	if idx := strings.Index(name, ","); idx != -1 {
		name = name[:idx]
	}
	if name == "" {
		return strings.ToLower(f.Name[:1]) + f.Name[1:]
	}
	return name
}

// BcryptMaxBytes is the longest input bcrypt hashes. Rune-counted limits
// such as max=30 can still exceed it with multi-byte characters.
const BcryptMaxBytes = 72

func fitsBcrypt(fl validator.FieldLevel) bool {
	return len(fl.Field().String()) <= BcryptMaxBytes
}

// isObjectID accepts 24 hex characters, the wire form of a Mongo ObjectID.
func isObjectID(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 24 {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}
