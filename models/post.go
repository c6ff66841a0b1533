package models

import "time"

// Post represents a post in the system
type Post struct {
	ID        int32  `gorm:"primaryKey;column:post_id"`
	Content   string `gorm:"type:text"`
	AuthorID  int32  `gorm:"column:author_id;index"`
	Author    User   `gorm:"foreignKey:AuthorID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the table name used by GORM
func (Post) TableName() string {
	return "post"
}
