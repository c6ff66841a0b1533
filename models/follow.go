package models

import "time"

// Follow is a directed edge between two users. The composite primary key
// keeps the edge unique per ordered (follower, following) pair.
type Follow struct {
	FollowerID  int32 `gorm:"primaryKey;column:follower_id"`
	FollowingID int32 `gorm:"primaryKey;column:following_id"`
	CreatedAt   time.Time
}

// TableName overrides the table name used by GORM
func (Follow) TableName() string {
	return "follower"
}
