package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Wesley-SdS/modern-ecommerce/internal/apperr"
	"github.com/Wesley-SdS/modern-ecommerce/internal/models"
	"github.com/Wesley-SdS/modern-ecommerce/internal/repository"
)

// PasswordCost is the bcrypt cost used for new password hashes.
var PasswordCost = 12

type CreateUserInput struct {
	Name     string      `json:"name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     models.Role `json:"role" binding:"omitempty,oneof=CUSTOMER ADMIN SUPER_ADMIN"`
	Phone    string      `json:"phone"`
}

type UpdateRoleInput struct {
	Role models.Role `json:"role" binding:"required,oneof=CUSTOMER ADMIN SUPER_ADMIN"`
}

type UserList struct {
	Users      []models.User         `json:"users"`
	Pagination repository.Pagination `json:"pagination"`
}

type UserService struct {
	users *repository.UserRepository
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{users: repository.NewUserRepository(db)}
}

func (s *UserService) ListUsers(ctx context.Context, page, limit int) (*UserList, error) {
	p := repository.NewPage(page, limit, repository.DefaultLimit)
	users, total, err := s.users.FindAll(ctx, p)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return &UserList{Users: users, Pagination: repository.NewPagination(p, total)}, nil
}

func (s *UserService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// CreateUser is the back-office path; an existing email is a conflict.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	email := normalizeEmail(in.Email)
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("user with this email already exists")
	} else if !apperr.Is(err, apperr.KindNotFound) {
		return nil, err
	}

	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = models.RoleCustomer
	}

	u := models.User{Name: in.Name, Email: email, PasswordHash: hash, Role: role, Phone: in.Phone}
	if err := s.users.Create(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *UserService) UpdateUserRole(ctx context.Context, id string, in UpdateRoleInput) (*models.User, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	return s.users.UpdateRole(ctx, id, in.Role)
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	return s.users.Delete(ctx, id)
}

func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", apperr.Wrap(err, "hash password")
	}
	return string(b), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
