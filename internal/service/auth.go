package service

import (
	"context"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
	"github.com/Wesley-SdS/modern-ecommerce/internal/repository"
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// OIDCClaims are the ID token claims used to link an external identity.
type OIDCClaims struct {
	Subject       string `json:"sub"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Phone         string `json:"phone_number"`
}

type AuthService struct {
	users *repository.UserRepository
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{users: repository.NewUserRepository(db)}
}

// Register creates a customer account. A taken email is reported as a
// validation error so the sign-up form can show it inline.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	email := normalizeEmail(in.Email)
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Validation("email already registered", nil)
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := models.User{Name: in.Name, Email: email, PasswordHash: hash, Role: models.RoleCustomer, Phone: in.Phone}
	if err := s.users.Create(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	u, err := s.users.FindByEmail(ctx, normalizeEmail(in.Email))
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	if err != nil {
		return nil, err
	}
	if u.PasswordHash == "" || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)) != nil {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	return u, nil
}

// UpsertOIDCUser finds the user for an external identity, linking it to an
// existing account with the same email before creating a new customer.
// Only a verified email links; an unverified one that is already taken is a
// conflict.
func (s *AuthService) UpsertOIDCUser(ctx context.Context, c OIDCClaims) (*models.User, error) {
	if c.Subject == "" {
		return nil, apperr.Unauthorized("id token has no subject")
	}

	u, err := s.users.FindByOIDCSubject(ctx, c.Subject)
	if err == nil {
		return u, nil
	}
	if !apperr.Is(err, apperr.KindNotFound) {
		return nil, err
	}

	email := normalizeEmail(c.Email)
	if email != "" {
		u, err = s.users.FindByEmail(ctx, email)
		if err == nil {
			if !c.EmailVerified {
				return nil, apperr.Conflict("email already registered; verify it with the identity provider to link")
			}
			return s.users.LinkOIDCSubject(ctx, u.ID, c.Subject)
		}
		if !apperr.Is(err, apperr.KindNotFound) {
			return nil, err
		}
	}

	name := c.Name
	if name == "" {
		name = email
	}
	sub := c.Subject
	u = &models.User{Name: name, Email: email, Role: models.RoleCustomer, Phone: c.Phone, OIDCSubject: &sub}
	if email == "" {
		// email is unique and mandatory; fall back to a subject-scoped address
		u.Email = sub + "@oidc.local"
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *AuthService) CurrentUser(ctx context.Context, id string) (*models.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if apperr.Is(err, apperr.KindNotFound) {
		return nil, apperr.Unauthorized("user not found")
	}
	return u, err
}
