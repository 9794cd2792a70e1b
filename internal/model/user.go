package model

import (
	"time"
)

// Role names seeded at startup
const (
	RoleAdmin      = "Admin"
	RolePharmacist = "Pharmacist"
	RoleUser       = "User"
)

// User represents an account in the identity store. A user holds at most one
// outstanding refresh token; every login, registration or refresh overwrites
// it, so only the most recently issued refresh token is ever valid.
type User struct {
	ID                    uint       `json:"id" gorm:"primaryKey"`
	Email                 string     `json:"email" gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash          string     `json:"-" gorm:"type:varchar(255);not null"`
	FirstName             string     `json:"first_name" gorm:"type:varchar(100)"`
	LastName              string     `json:"last_name" gorm:"type:varchar(100)"`
	Roles                 []Role     `json:"roles" gorm:"many2many:user_roles"`
	RefreshToken          *string    `json:"-" gorm:"type:varchar(100);index"`
	RefreshTokenExpiresAt *time.Time `json:"-"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// RoleNames returns the user's role names as a plain string slice
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		names = append(names, r.Name)
	}
	return names
}

// Role is a named role assignable to users
type Role struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(50);uniqueIndex;not null"`
}
