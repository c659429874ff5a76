package models

import (
	"time"
)

// User is an account record. Password holds the bcrypt hash and is never
// serialized; email and username carry storage-level unique indexes.
type User struct {
	ID             string    `gorm:"type:char(36);primaryKey" json:"id"`
	FirstName      string    `gorm:"size:255;not null" json:"firstName"`
	LastName       string    `gorm:"size:255;not null" json:"lastName"`
	Username       string    `gorm:"size:255;not null;uniqueIndex:uq_users_username" json:"username"`
	Email          string    `gorm:"size:255;not null;uniqueIndex:uq_users_email" json:"email"`
	Password       string    `gorm:"size:255;not null" json:"-"`
	ProfilePicture string    `gorm:"size:1024" json:"profilePicture"`
	LastLogin      time.Time `json:"lastLogin"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
