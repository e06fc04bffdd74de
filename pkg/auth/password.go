package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/aman-4321/CourseVault/pkg/errs"
)

// Cost is the bcrypt work factor (bcrypt.DefaultCost, i.e. 10).
const Cost = bcrypt.DefaultCost

// dummyHash is compared against when an account does not exist, so an
// unknown email costs the same as a wrong password.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("coursevault-placeholder"), Cost)

// ErrPasswordTooLong is returned for passwords over bcrypt's 72-byte input.
var ErrPasswordTooLong = errs.Validation("Invalid Input", errs.FieldError{
	Field:   "password",
	Message: "The password must not exceed 72 bytes.",
})

// HashPassword returns a salted bcrypt hash of plain. Input bcrypt cannot
// hash is a validation error; anything else is internal.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", errs.Wrap(ErrPasswordTooLong, err)
		}
		return "", errs.Internal(err)
	}
	return string(b), nil
}

// CheckPassword compares a bcrypt hash against the plain-text candidate.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// BurnPasswordCheck spends one bcrypt comparison and always fails.
func BurnPasswordCheck(plain string) bool {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plain))
	return false
}
