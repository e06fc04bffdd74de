package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/aman-4321/CourseVault/pkg/errs"
)

// DefaultTTL is the token lifetime when none is configured.
const DefaultTTL = time.Hour

// Verification failures. Both map to 403; only the message differs.
var (
	ErrExpired = &errs.Error{Kind: errs.KindForbidden, Message: "Token expired"}
	ErrInvalid = &errs.Error{Kind: errs.KindForbidden, Message: "Invalid token"}
)

// Claims holds the typed JWT payload.
type Claims struct {
	UserID string `json:"userId"`
	Realm  Realm  `json:"realm"`
	jwt.RegisteredClaims
}

// Tokens issues and verifies HS256 tokens for both realms.
type Tokens struct {
	secrets map[Realm][]byte
	ttl     time.Duration
	now     func() time.Time
}

// Option customises Tokens.
type Option func(*Tokens)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(t *Tokens) { t.now = now }
}

// NewTokens builds an issuer. An empty secret leaves that realm
// unconfigured: Issue and Verify for it return errs.ErrMissingSecret.
func NewTokens(userSecret, adminSecret string, ttl time.Duration, opts ...Option) *Tokens {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	t := &Tokens{
		secrets: map[Realm][]byte{},
		ttl:     ttl,
		now:     time.Now,
	}
	if userSecret != "" {
		t.secrets[RealmUser] = []byte(userSecret)
	}
	if adminSecret != "" {
		t.secrets[RealmAdmin] = []byte(adminSecret)
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// TTL returns the configured token lifetime.
func (t *Tokens) TTL() time.Duration { return t.ttl }

func (t *Tokens) secret(realm Realm) ([]byte, error) {
	s, ok := t.secrets[realm]
	if !ok {
		return nil, errs.Wrap(errs.ErrMissingSecret, fmt.Errorf("no signing secret for realm %q", realm))
	}
	return s, nil
}

// Issue signs a token for subjectID in realm.
func (t *Tokens) Issue(realm Realm, subjectID string) (string, *Claims, error) {
	secret, err := t.secret(realm)
	if err != nil {
		return "", nil, err
	}

	now := t.now()
	claims := &Claims{
		UserID: subjectID,
		Realm:  realm,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   subjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", nil, errs.Internal(fmt.Errorf("sign token: %w", err))
	}
	return signed, claims, nil
}

// Verify parses raw and checks signature, expiry and realm.
func (t *Tokens) Verify(realm Realm, raw string) (*Claims, error) {
	secret, err := t.secret(realm)
	if err != nil {
		return nil, err
	}

	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(*jwt.Token) (interface{}, error) {
		return secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, errs.Wrap(ErrExpired, err)
		}
		return nil, errs.Wrap(ErrInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" || claims.Realm != realm {
		return nil, ErrInvalid
	}
	return claims, nil
}

// Identity converts verified claims into the context identity.
func (c *Claims) Identity() Identity {
	id := Identity{Realm: c.Realm, SubjectID: c.UserID, TokenID: c.ID}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.Time
	}
	return id
}

// Configured reports whether realm has a signing secret.
func (t *Tokens) Configured(realm Realm) bool {
	_, ok := t.secrets[realm]
	return ok
}
