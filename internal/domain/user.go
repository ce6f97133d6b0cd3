package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleReadonly Role = "readonly"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool { return r == RoleAdmin || r == RoleReadonly }

// Satisfies: admin 满足任何要求，readonly 只满足 readonly
func (r Role) Satisfies(required Role) bool {
	switch required {
	case "", RoleReadonly:
		return r.Valid()
	case RoleAdmin:
		return r == RoleAdmin
	}
	return false
}

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Email        string     `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Name         string     `gorm:"size:128;not null" json:"naam"`
	PasswordHash string     `gorm:"size:100;not null" json:"-"`
	Role         Role       `gorm:"size:16;not null;default:readonly" json:"rol"`
	LastLoginAt  *time.Time `json:"laatst_ingelogd"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type UserFilter struct {
	Q string // email / naam 模糊
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, f UserFilter, p Page) ([]User, int64, error)
	// Update 与 Delete 在事务内校验“至少保留一个管理员”，违反时返回 ErrLastAdmin
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uint) error
	TouchLogin(ctx context.Context, id uint, at time.Time) error
	CountAdmins(ctx context.Context) (int64, error)
}
