package user

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleOwner    Role = "PROJECT_OWNER"
	RoleManager  Role = "PROJECT_MANAGER"
	RoleCustomer Role = "CUSTOMER"
)

// Valid reports whether r is one of the four known roles. Roles are flat:
// no role implies another's permissions.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOwner, RoleManager, RoleCustomer:
		return true
	}
	return false
}

var (
	ErrNotFound        = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already exists")
	ErrInvalidRole     = errors.New("invalid role")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrBadCredentials  = errors.New("invalid email or password")
)

type User struct {
	ID uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"-"`
	// Public identifier (32-char lowercase hex)
	UserID       string         `gorm:"column:user_id;type:char(32);not null;uniqueIndex:ux_users_user_id_active" json:"user_id"`
	Name         string         `gorm:"column:name;size:255" json:"name"`
	Email        string         `gorm:"column:email;size:255;not null;uniqueIndex:ux_users_email_active" json:"email"`
	PasswordHash string         `gorm:"column:password_hash;size:100;not null" json:"-"`
	Role         Role           `gorm:"column:role;type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"-"`
	DeletedAt    gorm.DeletedAt `gorm:"column:deleted_at;index" json:"-"`
}

func (User) TableName() string { return "users" }

// DisplayName is the label shown next to user-generated content:
// the name when set, the email otherwise.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.Email
}
