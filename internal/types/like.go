package types

import (
  "time"
  "github.com/google/uuid"
)

// Like existence is the fact; toggling is insert or delete, never update.
type Like struct {
  ID          uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  PostID      uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_like_post_user;column:post_id" json:"post_id"`
  Post        *Post       `gorm:"constraint:OnDelete:CASCADE;foreignKey:PostID;references:ID" json:"-"`
  UserID      uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_like_post_user;column:user_id" json:"user_id"`
  User        *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  CreatedAt   time.Time   `gorm:"not null;default:now()" json:"created_at"`
}

func (Like) TableName() string {
  return "like"
}
