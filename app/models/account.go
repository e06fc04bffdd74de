package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a learner account in the users collection.
type User struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email        string               `bson:"email" json:"email"`
	Password     string               `bson:"password" json:"-"` // bcrypt hash, never serialised
	FirstName    string               `bson:"firstName" json:"firstName"`
	LastName     string               `bson:"lastName,omitempty" json:"lastName,omitempty"`
	CoursesOwned []primitive.ObjectID `bson:"coursesOwned" json:"coursesOwned"`
	Purchases    []primitive.ObjectID `bson:"purchases" json:"purchases"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
}

// Owns reports whether courseID is in the user's owned-course set.
func (u *User) Owns(courseID primitive.ObjectID) bool {
	for _, id := range u.CoursesOwned {
		if id == courseID {
			return true
		}
	}
	return false
}

// Admin is a content-admin account in the admins collection.
type Admin struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Email          string               `bson:"email" json:"email"`
	Password       string               `bson:"password" json:"-"`
	FirstName      string               `bson:"firstName" json:"firstName"`
	LastName       string               `bson:"lastName,omitempty" json:"lastName,omitempty"`
	CoursesCreated []primitive.ObjectID `bson:"coursesCreated" json:"coursesCreated"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
}

// Credential is the part of an account the sign-in flow needs, shared by
// both realms.
type Credential struct {
	ID           primitive.ObjectID
	Email        string
	PasswordHash string
}

// Credential returns the sign-in view of u.
func (u *User) Credential() Credential {
	return Credential{ID: u.ID, Email: u.Email, PasswordHash: u.Password}
}

// Credential returns the sign-in view of a.
func (a *Admin) Credential() Credential {
	return Credential{ID: a.ID, Email: a.Email, PasswordHash: a.Password}
}

// NormalizeEmail trims and lower-cases an address before it is stored or
// looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ProfilePatch holds the fields a user may change. Nil fields are left
// alone. Password is the new bcrypt hash, never the raw value.
type ProfilePatch struct {
	Email     *string
	FirstName *string
	LastName  *string
	Password  *string
}

// Empty reports whether the patch changes nothing.
func (p ProfilePatch) Empty() bool {
	return p.Email == nil && p.FirstName == nil && p.LastName == nil && p.Password == nil
}
