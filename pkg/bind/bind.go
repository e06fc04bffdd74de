// Package bind decodes and validates an HTTP request body into a struct.
package bind

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aman-4321/CourseVault/pkg/errs"
	"github.com/aman-4321/CourseVault/pkg/validate"
)

// DefaultMaxBodyBytes caps bodies when the caller passes a non-positive limit.
const DefaultMaxBodyBytes int64 = 1 << 20

// JSON decodes r.Body into dest and validates it.
//
// Every failure is a validation error: malformed or oversized bodies carry
// a message only, rule failures carry the per-field list.
func JSON(w http.ResponseWriter, r *http.Request, dest interface{}, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBodyBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return errs.Validation(fmt.Sprintf("Request body too large (max %d bytes)", maxErr.Limit))
		case errors.Is(err, io.EOF):
			return errs.Validation("Request body is empty")
		default:
			return errs.Wrap(errs.Validation("Invalid JSON body"), err)
		}
	}

	if fields := validate.Struct(dest); validate.HasErrors(fields) {
		return errs.Validation("Invalid Input", fields...)
	}
	return nil
}
