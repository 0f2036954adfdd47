// Package models contains data structures for the application's domain models.
package models

import "time"

// Comment represents a reader's comment on a post. Comments are immutable
// once created; there is no edit or delete path.
type Comment struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Text        string    `gorm:"type:text;not null" json:"text"`
	CommenterID uint      `gorm:"not null;index" json:"commenter_id"`
	PostID      uint      `gorm:"not null;index" json:"post_id"`
	Commenter   User      `gorm:"foreignKey:CommenterID" json:"commenter"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Comment) TableName() string {
	return "comments"
}
