package types

import (
  "time"
  "github.com/google/uuid"
)

type Comment struct {
  ID               uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  PostID           uuid.UUID   `gorm:"type:uuid;not null;index;column:post_id" json:"post_id"`
  Post             *Post       `gorm:"constraint:OnDelete:CASCADE;foreignKey:PostID;references:ID" json:"-"`
  AuthorID         uuid.UUID   `gorm:"type:uuid;not null;index;column:author_id" json:"author_id"`
  Author           *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthorID;references:ID" json:"author,omitempty"`
  ParentCommentID  *uuid.UUID  `gorm:"type:uuid;index;column:parent_comment_id" json:"parent_comment_id,omitempty"`
  ParentComment    *Comment    `gorm:"constraint:OnDelete:CASCADE;foreignKey:ParentCommentID;references:ID" json:"-"`
  Body             string      `gorm:"type:text;not null;column:body" json:"body"`
  CreatedAt        time.Time   `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt        time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (Comment) TableName() string {
  return "comment"
}
