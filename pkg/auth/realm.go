// Package auth issues and verifies realm-scoped bearer tokens and hashes
// passwords.
//
// Users and admins live in disjoint realms. Each realm signs with its own
// secret, so a token minted for one realm never verifies in the other.
package auth

import (
	"context"
	"time"
)

// Realm is an identity space with its own signing secret.
type Realm string

const (
	RealmUser  Realm = "user"
	RealmAdmin Realm = "admin"
)

func (r Realm) String() string { return string(r) }

// Valid reports whether r is a known realm.
func (r Realm) Valid() bool { return r == RealmUser || r == RealmAdmin }

// Identity is the verified caller bound into a request context by the gate.
type Identity struct {
	Realm     Realm
	SubjectID string
	TokenID   string
	ExpiresAt time.Time
}

// Is reports whether the identity belongs to realm.
func (i Identity) Is(realm Realm) bool { return i.Realm == realm }

type identityKey struct{}

// WithIdentity stores id in ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity stored by WithIdentity.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
