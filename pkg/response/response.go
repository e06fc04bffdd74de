package response

import (
	"encoding/json"
	"net/http"

	"github.com/aman-4321/CourseVault/pkg/errs"
	"github.com/aman-4321/CourseVault/pkg/logger"
)

// Envelope is the JSON body of every API response.
type Envelope struct {
	Status  int               `json:"status"`
	Message string            `json:"message,omitempty"`
	Data    interface{}       `json:"data,omitempty"`
	Errors  []errs.FieldError `json:"errors,omitempty"`
}

// Write sends body with status.
func Write(w http.ResponseWriter, status int, body Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body) //nolint:errcheck
}

// Success sends a 200 JSON response with data.
func Success(w http.ResponseWriter, data interface{}) {
	Write(w, http.StatusOK, Envelope{Status: http.StatusOK, Data: data})
}

// Error sends status with a message and no data.
func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, Envelope{Status: status, Message: message})
}

// Fail maps err to its status and public message. Server-side failures are
// logged with their cause on the request logger; clients never see it.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	e := errs.As(err)
	status := e.Kind.Status()

	if status >= http.StatusInternalServerError {
		logger.WithCtx(r.Context()).Error("request failed",
			"kind", e.Kind.String(),
			"error", err.Error(),
			"path", r.URL.Path,
		)
	}

	Write(w, status, Envelope{Status: status, Message: e.Message, Errors: e.Fields})
}
