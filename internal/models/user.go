package models

type Role string

const (
	RoleCustomer   Role = "CUSTOMER"
	RoleAdmin      Role = "ADMIN"
	RoleSuperAdmin Role = "SUPER_ADMIN"
)

func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

type User struct {
	Base
	Name         string  `gorm:"not null" json:"name"`
	Email        string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string  `json:"-"`
	Role         Role    `gorm:"size:16;not null;default:CUSTOMER" json:"role"`
	Phone        string  `json:"phone,omitempty"`
	OIDCSubject  *string `gorm:"column:oidc_subject;uniqueIndex" json:"-"` // OpenID Connect identifier
}
