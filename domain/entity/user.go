package entity

import (
	"time"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleEditor  = "editor"
)

type User struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Password    string     `json:"-"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewUser(name, email, password, role string) *User {
	now := time.Now()
	return &User{
		Name:      name,
		Email:     email,
		Password:  password,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (u *User) HasRole(roles ...string) bool {
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

func (u *User) MarkLoggedIn(at time.Time) {
	u.LastLoginAt = &at
}

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleManager, RoleEditor:
		return true
	}
	return false
}
