package models

import "time"

// Like is an edge between a user and a post, unique per (user, post) pair.
type Like struct {
	UserID    int32 `gorm:"primaryKey;column:user_id"`
	PostID    int32 `gorm:"primaryKey;column:post_id"`
	CreatedAt time.Time
}

// TableName overrides the table name used by GORM
func (Like) TableName() string {
	return "post_like"
}
