package models

import "time"

// User represents an account in the database
type User struct {
	ID        int32   `gorm:"primaryKey;column:user_id"`
	Email     string  `gorm:"uniqueIndex;size:255"`
	Username  string  `gorm:"uniqueIndex;size:255"`
	Password  string  `gorm:"column:pw_hash"`
	Name      string  `gorm:"size:255"`
	Bio       *string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name used by GORM
func (User) TableName() string {
	return "user"
}
