package types

import (
  "time"
  "github.com/google/uuid"
)

// PendingRecipientMatch tracks a story recipient who was not a registered
// account at post-creation time. Once Matched is true, MatchedUserID must
// equal the reconciling user's own id; the row is never re-claimed by a
// different user. Claiming is a conditional UPDATE so two concurrent
// claimants cannot both win.
type PendingRecipientMatch struct {
  ID              uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  PostID          uuid.UUID   `gorm:"type:uuid;not null;index;column:post_id" json:"post_id"`
  Post            *Post       `gorm:"constraint:OnDelete:CASCADE;foreignKey:PostID;references:ID" json:"post,omitempty"`
  RecipientName   string      `gorm:"not null;index;column:recipient_name" json:"recipient_name"`
  RecipientEmail  *string     `gorm:"index;column:recipient_email" json:"recipient_email,omitempty"`
  Matched         bool        `gorm:"not null;default:false;index;column:matched" json:"matched"`
  MatchedUserID   *uuid.UUID  `gorm:"type:uuid;index;column:matched_user_id" json:"matched_user_id,omitempty"`
  MatchedUser     *User       `gorm:"constraint:OnDelete:SET NULL;foreignKey:MatchedUserID;references:ID" json:"-"`
  CreatedAt       time.Time   `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt       time.Time   `gorm:"not null;default:now()" json:"updated_at"`
}

func (PendingRecipientMatch) TableName() string {
  return "pending_recipient_match"
}
