package types

import (
  "time"
  "github.com/google/uuid"
)

// Bookmark is a save-for-later marker; it feeds no counters.
type Bookmark struct {
  ID          uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  PostID      uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_bookmark_post_user;column:post_id" json:"post_id"`
  Post        *Post       `gorm:"constraint:OnDelete:CASCADE;foreignKey:PostID;references:ID" json:"post,omitempty"`
  UserID      uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_bookmark_post_user;column:user_id" json:"user_id"`
  User        *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  CreatedAt   time.Time   `gorm:"not null;default:now()" json:"created_at"`
}

func (Bookmark) TableName() string {
  return "bookmark"
}
