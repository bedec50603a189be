package models

import "golang.org/x/crypto/bcrypt"

// Role — user role
type Role string

const (
	RoleBuyer Role = "buyer"
	RoleClerk Role = "clerk"
	RoleAdmin Role = "admin"
)

// User — users table
type User struct {
	Base
	Email        string `gorm:"uniqueIndex" json:"email"`
	Phone        string `gorm:"uniqueIndex" json:"phone,omitempty"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         Role   `gorm:"type:varchar(16);not null;default:'buyer'" json:"role"`
}

// HashPassword turns a plain password into a safe hash
func HashPassword(pw string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPassword verifies a password against its hash
func CheckPassword(hash, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) == nil
}
