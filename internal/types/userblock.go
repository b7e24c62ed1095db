package types

import (
  "time"
  "github.com/google/uuid"
)

// UserBlock is a directed edge: blocker no longer sees the blocked user's
// posts, and the blocked user cannot interact with the blocker's.
type UserBlock struct {
  ID          uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  BlockerID   uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_user_block_pair;column:blocker_id" json:"blocker_id"`
  Blocker     *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:BlockerID;references:ID" json:"-"`
  BlockedID   uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_user_block_pair;column:blocked_id" json:"blocked_id"`
  Blocked     *User       `gorm:"constraint:OnDelete:CASCADE;foreignKey:BlockedID;references:ID" json:"-"`
  CreatedAt   time.Time   `gorm:"not null;default:now()" json:"created_at"`
}

func (UserBlock) TableName() string {
  return "user_block"
}
