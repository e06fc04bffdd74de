package ctx_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aman-4321/CourseVault/pkg/auth"
	appctx "github.com/aman-4321/CourseVault/pkg/ctx"
	"github.com/aman-4321/CourseVault/pkg/errs"
	"github.com/aman-4321/CourseVault/pkg/response"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Envelope {
	t.Helper()
	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	appctx.Wrap(func(c *appctx.Context) {
		c.Success(map[string]any{"id": 1})
	})(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":200,"data":{"id":1}}`, rec.Body.String())
}

func TestMessageEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		c.Message(http.StatusCreated, "Course created", map[string]string{"courseId": "x"})
	})(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	env := decode(t, rec)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Course created", env.Message)
}

func TestParamFromChi(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/course/{id}", appctx.Wrap(func(c *appctx.Context) {
		c.Success(c.Param("id"))
	}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/course/abc", nil))
	assert.Equal(t, "abc", decode(t, rec).Data)
}

func TestBindJSONValid(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"John","email":"john@example.com"}`))

	appctx.Wrap(func(c *appctx.Context) {
		var input struct {
			Name  string `json:"name"  validate:"required"`
			Email string `json:"email" validate:"required,email"`
		}
		require.True(t, c.BindJSON(&input))
		assert.Equal(t, "John", input.Name)
		c.Success(nil)
	})(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBindJSONInvalidWrites400(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":""}`))

	appctx.Wrap(func(c *appctx.Context) {
		var input struct {
			Name string `json:"name" validate:"required"`
		}
		assert.False(t, c.BindJSON(&input))
	})(rec, req)

	env := decode(t, rec)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid Input", env.Message)
	require.Len(t, env.Errors, 1)
	assert.Equal(t, "name", env.Errors[0].Field)
}

func TestBodyLimit(t *testing.T) {
	appctx.SetMaxBodyBytes(16)
	defer appctx.SetMaxBodyBytes(0)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"`+strings.Repeat("x", 64)+`"}`))
	appctx.Wrap(func(c *appctx.Context) {
		var input struct {
			Name string `json:"name"`
		}
		assert.False(t, c.BindJSON(&input))
	})(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec).Message, "too large")
}

func TestFailHidesInternalCause(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		c.Fail(errs.Internal(errors.New("mongo: connection refused")))
	})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "Internal Server Error", decode(t, rec).Message)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestIdentity(t *testing.T) {
	id := auth.Identity{Realm: auth.RealmAdmin, SubjectID: "a1"}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(auth.WithIdentity(req.Context(), id))

	appctx.Wrap(func(c *appctx.Context) {
		got, ok := c.Identity()
		assert.True(t, ok)
		assert.Equal(t, id, got)
		assert.Equal(t, id, c.MustIdentity())
	})(httptest.NewRecorder(), req)

	appctx.Wrap(func(c *appctx.Context) {
		_, ok := c.Identity()
		assert.False(t, ok)
		assert.Panics(t, func() { c.MustIdentity() })
	})(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}
