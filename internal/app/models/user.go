package models

import (
	"fmt"

	"github.com/yigit/schoolrecords/internal/app/models/dto"
)

// User defines the guardian account model based on the 'users' table
type User struct {
	Username   string `json:"username" db:"username"`
	Password   string `json:"-" db:"password"` // bcrypt hash, never plaintext
	FirstName  string `json:"first_name" db:"first_name"`
	LastName   string `json:"last_name" db:"last_name"`
	Email      string `json:"email" db:"email"`
	Phone      string `json:"phone" db:"phone"`
	IsGuardian bool   `json:"is_guardian" db:"is_guardian"`
}

var UserColumns = []string{"username", "password", "first_name", "last_name", "email", "phone", "is_guardian"}

func (u *User) ScanTargets() []interface{} {
	return []interface{}{&u.Username, &u.Password, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.IsGuardian}
}

// Serialize leaves out the password hash
func (u *User) Serialize() dto.UserResponse {
	return dto.UserResponse{
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Phone:      u.Phone,
		IsGuardian: u.IsGuardian,
	}
}

func (u *User) String() string {
	return fmt.Sprintf("<User %s: %s>", u.Username, u.Email)
}
