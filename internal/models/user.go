package models

import "time"

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// ValidRole reports whether role is one of the roles accepted at signup.
func ValidRole(role string) bool {
	return role == RoleStudent || role == RoleAdmin
}

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      string    `json:"role" gorm:"not null;default:student"`
	AdminKey  string    `json:"-"`
}
