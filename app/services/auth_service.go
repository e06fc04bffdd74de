package services

import (
	"context"
	"strings"
	"time"

	"github.com/aman-4321/CourseVault/app/models"
	"github.com/aman-4321/CourseVault/app/repositories"
	"github.com/aman-4321/CourseVault/pkg/auth"
	"github.com/aman-4321/CourseVault/pkg/denylist"
	"github.com/aman-4321/CourseVault/pkg/errs"
	"github.com/aman-4321/CourseVault/pkg/logger"
	"github.com/aman-4321/CourseVault/pkg/metrics"
)

// SignupInput is the body of POST /user/signup and /admin/signup.
type SignupInput struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"omitempty,max=50"`
	Password  string `json:"password" validate:"required,min=6,max=30,bcrypt"`
}

// SigninInput is the body of POST /user/signin and /admin/signin.
type SigninInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateProfileInput is the body of PUT /user/update. Absent fields are
// left unchanged.
type UpdateProfileInput struct {
	Email     *string `json:"email" validate:"omitempty,email"`
	FirstName *string `json:"firstName" validate:"omitempty,min=1,max=50"`
	LastName  *string `json:"lastName" validate:"omitempty,max=50"`
	Password  *string `json:"password" validate:"omitempty,min=6,max=30,bcrypt"`
}

// AuthResult is returned by signup and signin.
type AuthResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Realm     string    `json:"realm"`
}

// AuthService signs accounts up and in for both realms and revokes tokens.
type AuthService struct {
	users   repositories.UserRepository
	admins  repositories.AdminRepository
	tokens  *auth.Tokens
	revoked denylist.Store
}

func NewAuthService(users repositories.UserRepository, admins repositories.AdminRepository, tokens *auth.Tokens, revoked denylist.Store) *AuthService {
	return &AuthService{users: users, admins: admins, tokens: tokens, revoked: revoked}
}

// Signup creates an account in realm and issues its first token.
func (s *AuthService) Signup(ctx context.Context, realm auth.Realm, in SignupInput) (*AuthResult, error) {
	if !s.tokens.Configured(realm) {
		return nil, errs.ErrMissingSecret
	}

	firstName, lastName := strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName)
	if firstName == "" {
		return nil, errFirstNameBlank
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	email := models.NormalizeEmail(in.Email)
	now := time.Now().UTC()

	var account models.Credential
	switch realm {
	case auth.RealmUser:
		u := &models.User{Email: email, Password: hash, FirstName: firstName, LastName: lastName, CreatedAt: now}
		if err := s.users.Create(ctx, u); err != nil {
			return nil, err
		}
		account = u.Credential()
	case auth.RealmAdmin:
		a := &models.Admin{Email: email, Password: hash, FirstName: firstName, LastName: lastName, CreatedAt: now}
		if err := s.admins.Create(ctx, a); err != nil {
			return nil, err
		}
		account = a.Credential()
	default:
		return nil, errs.Internal(errUnknownRealm(realm))
	}

	metrics.RecordAuth(realm.String(), "signup")
	logger.WithCtx(ctx).Info("account created", "realm", realm.String(), "id", account.ID.Hex())
	return s.issue(realm, account)
}

// Signin checks credentials and issues a token. An unknown email and a
// wrong password produce the same error and cost the same bcrypt work.
func (s *AuthService) Signin(ctx context.Context, realm auth.Realm, in SigninInput) (*AuthResult, error) {
	if !s.tokens.Configured(realm) {
		return nil, errs.ErrMissingSecret
	}

	account, err := s.credential(ctx, realm, models.NormalizeEmail(in.Email))
	if err != nil {
		if errs.KindOf(err) == errs.KindNotFound {
			auth.BurnPasswordCheck(in.Password)
			metrics.RecordAuth(realm.String(), "signin_failed")
			return nil, errs.ErrBadCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(account.PasswordHash, in.Password) {
		metrics.RecordAuth(realm.String(), "signin_failed")
		return nil, errs.ErrBadCredentials
	}

	metrics.RecordAuth(realm.String(), "signin")
	return s.issue(realm, account)
}

func (s *AuthService) credential(ctx context.Context, realm auth.Realm, email string) (models.Credential, error) {
	switch realm {
	case auth.RealmUser:
		u, err := s.users.FindByEmail(ctx, email)
		if err != nil {
			return models.Credential{}, err
		}
		return u.Credential(), nil
	case auth.RealmAdmin:
		a, err := s.admins.FindByEmail(ctx, email)
		if err != nil {
			return models.Credential{}, err
		}
		return a.Credential(), nil
	default:
		return models.Credential{}, errs.Internal(errUnknownRealm(realm))
	}
}

func (s *AuthService) issue(realm auth.Realm, account models.Credential) (*AuthResult, error) {
	token, claims, err := s.tokens.Issue(realm, account.ID.Hex())
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:     token,
		ExpiresAt: claims.ExpiresAt.Time,
		ID:        account.ID.Hex(),
		Email:     account.Email,
		Realm:     realm.String(),
	}, nil
}

// UpdateProfile patches the caller's user record. A new password is
// hashed before it is stored.
func (s *AuthService) UpdateProfile(ctx context.Context, id auth.Identity, in UpdateProfileInput) (*models.User, error) {
	userID, err := subjectID(id)
	if err != nil {
		return nil, err
	}

	var patch models.ProfilePatch
	if in.FirstName != nil {
		firstName := strings.TrimSpace(*in.FirstName)
		if firstName == "" {
			return nil, errFirstNameBlank
		}
		patch.FirstName = &firstName
	}
	if in.LastName != nil {
		lastName := strings.TrimSpace(*in.LastName)
		patch.LastName = &lastName
	}
	if in.Email != nil {
		email := models.NormalizeEmail(*in.Email)
		patch.Email = &email
	}
	if in.Password != nil {
		hash, err := auth.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		patch.Password = &hash
	}
	if patch.Empty() {
		return nil, errs.Validation("No fields to update")
	}

	return s.users.Update(ctx, userID, patch)
}

// Logout revokes the presented token until it would have expired.
func (s *AuthService) Logout(ctx context.Context, id auth.Identity) error {
	if id.TokenID == "" {
		return auth.ErrInvalid
	}
	until := id.ExpiresAt
	if until.IsZero() {
		until = time.Now().Add(s.tokens.TTL())
	}
	if err := s.revoked.Revoke(ctx, id.TokenID, until); err != nil {
		return errs.Internal(err)
	}
	metrics.RecordAuth(id.Realm.String(), "logout")
	return nil
}

var errFirstNameBlank = errs.Validation("Invalid Input", errs.FieldError{
	Field:   "firstName",
	Message: "The firstName field is required.",
})

type errUnknownRealm auth.Realm

func (e errUnknownRealm) Error() string { return "unknown realm " + string(e) }
