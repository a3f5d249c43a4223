package model

import (
	"time"
)

const AdminUsername = "admin"

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `json:"username" gorm:"not null;uniqueIndex;size:64"`
	Password     string    `json:"-" gorm:"not null"` // bcrypt hash
	Email        string    `json:"email" gorm:"not null;uniqueIndex;size:255"`
	ProfileImage []byte    `json:"profileImage,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string { return "users" }

// Role is derived from the username; there is no stored role column.
func (u *User) Role() string {
	if u.Username == AdminUsername {
		return RoleAdmin
	}
	return RoleUser
}
