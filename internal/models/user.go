package models

import (
	"time"
)

// User represents a dashboard account in the system
type User struct {
	ID           string     `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	Username     string     `json:"username" gorm:"type:varchar(255);not null;unique;index"`
	Email        string     `json:"email" gorm:"type:varchar(255);index"`
	PasswordHash string     `json:"-" gorm:"type:varchar(255);not null"`
	IsActive     bool       `json:"is_active" gorm:"default:true;index"`
	LastLoginAt  *time.Time `json:"last_login_at"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
