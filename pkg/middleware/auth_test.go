package middleware_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aman-4321/CourseVault/pkg/auth"
	"github.com/aman-4321/CourseVault/pkg/denylist"
	"github.com/aman-4321/CourseVault/pkg/middleware"
)

type gateFixture struct {
	tokens  *auth.Tokens
	revoked *denylist.Memory
	now     time.Time
}

func newGateFixture() *gateFixture {
	f := &gateFixture{revoked: denylist.NewMemory(), now: time.Now()}
	f.tokens = auth.NewTokens("user-secret", "admin-secret", time.Hour, auth.WithClock(func() time.Time { return f.now }))
	return f
}

// serve runs one request through the gate and returns the response and the
// identity seen by the protected handler.
func (f *gateFixture) serve(t *testing.T, tokens *auth.Tokens, realm auth.Realm, header string) (*httptest.ResponseRecorder, *auth.Identity) {
	t.Helper()

	var seen *auth.Identity
	h := middleware.NewGate(tokens, f.revoked).Require(realm)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := auth.IdentityFrom(r.Context())
		require.True(t, ok)
		seen = &id
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, seen
}

func message(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Message
}

func TestGateAcceptsValidToken(t *testing.T) {
	f := newGateFixture()
	raw, _, err := f.tokens.Issue(auth.RealmUser, "u1")
	require.NoError(t, err)

	rec, id := f.serve(t, f.tokens, auth.RealmUser, "Bearer "+raw)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, id)
	assert.Equal(t, auth.Identity{Realm: auth.RealmUser, SubjectID: "u1", TokenID: id.TokenID, ExpiresAt: id.ExpiresAt}, *id)
	assert.NotEmpty(t, id.TokenID)
}

func TestGateHeaderErrors(t *testing.T) {
	f := newGateFixture()

	cases := []struct {
		name   string
		header string
		msg    string
	}{
		{"missing", "", "No token provided"},
		{"wrong scheme", "Token abc", "Invalid authorization header format"},
		{"lowercase scheme", "bearer abc", "Invalid authorization header format"},
		{"no token", "Bearer ", "Invalid authorization header format"},
		{"scheme only", "Bearer", "Invalid authorization header format"},
		{"double space", "Bearer  abc", "Invalid authorization header format"},
		{"extra segment", "Bearer abc def", "Invalid authorization header format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, id := f.serve(t, f.tokens, auth.RealmUser, tc.header)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tc.msg, message(t, rec))
			assert.Nil(t, id)
		})
	}
}

func TestGateRejectsOtherRealm(t *testing.T) {
	f := newGateFixture()
	userToken, _, err := f.tokens.Issue(auth.RealmUser, "u1")
	require.NoError(t, err)
	adminToken, _, err := f.tokens.Issue(auth.RealmAdmin, "a1")
	require.NoError(t, err)

	rec, _ := f.serve(t, f.tokens, auth.RealmAdmin, "Bearer "+userToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Invalid token", message(t, rec))

	rec, _ = f.serve(t, f.tokens, auth.RealmUser, "Bearer "+adminToken)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGateExpiredToken(t *testing.T) {
	f := newGateFixture()
	raw, _, err := f.tokens.Issue(auth.RealmAdmin, "a1")
	require.NoError(t, err)

	f.now = f.now.Add(2 * time.Hour)
	rec, _ := f.serve(t, f.tokens, auth.RealmAdmin, "Bearer "+raw)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Token expired", message(t, rec))
}

func TestGateRevokedToken(t *testing.T) {
	f := newGateFixture()
	raw, claims, err := f.tokens.Issue(auth.RealmUser, "u1")
	require.NoError(t, err)
	require.NoError(t, f.revoked.Revoke(context.Background(), claims.ID, claims.ExpiresAt.Time))

	rec, _ := f.serve(t, f.tokens, auth.RealmUser, "Bearer "+raw)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Token revoked", message(t, rec))
}

func TestGateMissingSecret(t *testing.T) {
	f := newGateFixture()
	unconfigured := auth.NewTokens("user-secret", "", time.Hour)

	rec, _ := f.serve(t, unconfigured, auth.RealmAdmin, "Bearer whatever")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server configuration error", message(t, rec))
}
