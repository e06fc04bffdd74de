package middleware

import (
	"net/http"
	"strings"

	"github.com/aman-4321/CourseVault/pkg/auth"
	"github.com/aman-4321/CourseVault/pkg/denylist"
	"github.com/aman-4321/CourseVault/pkg/errs"
	"github.com/aman-4321/CourseVault/pkg/logger"
	"github.com/aman-4321/CourseVault/pkg/metrics"
	"github.com/aman-4321/CourseVault/pkg/response"
)

// Gate guards realm-scoped routes with bearer tokens.
type Gate struct {
	tokens  *auth.Tokens
	revoked denylist.Store
}

// NewGate builds a gate. revoked may be nil to skip revocation checks.
func NewGate(tokens *auth.Tokens, revoked denylist.Store) *Gate {
	return &Gate{tokens: tokens, revoked: revoked}
}

// Require only lets requests through that carry a valid token for realm.
// The verified identity is bound into the request context:
//
//	id, _ := auth.IdentityFrom(r.Context())
func (g *Gate) Require(realm auth.Realm) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !g.tokens.Configured(realm) {
				logger.WithCtx(r.Context()).Error("signing secret missing", "realm", realm.String())
				response.Error(w, http.StatusInternalServerError, errs.ErrMissingSecret.Message)
				return
			}

			header := r.Header.Get("Authorization")
			if header == "" {
				metrics.RecordAuth(realm.String(), "missing_token")
				response.Error(w, http.StatusUnauthorized, "No token provided")
				return
			}

			raw, ok := bearerToken(header)
			if !ok {
				metrics.RecordAuth(realm.String(), "malformed_header")
				response.Error(w, http.StatusUnauthorized, "Invalid authorization header format")
				return
			}

			claims, err := g.tokens.Verify(realm, raw)
			if err != nil {
				e := errs.As(err)
				metrics.RecordAuth(realm.String(), "rejected")
				response.Error(w, e.Kind.Status(), e.Message)
				return
			}

			if g.revoked != nil && claims.ID != "" {
				revoked, err := g.revoked.IsRevoked(r.Context(), claims.ID)
				if err != nil {
					response.Fail(w, r, errs.Internal(err))
					return
				}
				if revoked {
					metrics.RecordAuth(realm.String(), "revoked")
					response.Error(w, http.StatusForbidden, "Token revoked")
					return
				}
			}

			ctx := auth.WithIdentity(r.Context(), claims.Identity())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken accepts exactly "Bearer <token>": a case-sensitive scheme, one
// space, and one non-empty token segment.
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
