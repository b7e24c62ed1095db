package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/datatypes"
)

type NotificationType string

const (
  NotificationTypeTagged                NotificationType = "tagged"
  NotificationTypeLike                  NotificationType = "like"
  NotificationTypeComment               NotificationType = "comment"
  NotificationTypeMatchFound            NotificationType = "match_found"
  NotificationTypeVerificationComplete  NotificationType = "verification_complete"
)

// Notification is an append-only fact table keyed by the recipient user.
// IsRead is the only mutable field and transitions false -> true exactly
// once; it never reverses.
type Notification struct {
  ID          uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID      uuid.UUID         `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
  User        *User             `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  ActorID     *uuid.UUID        `gorm:"type:uuid;index;column:actor_id" json:"actor_id,omitempty"`
  Actor       *User             `gorm:"constraint:OnDelete:SET NULL;foreignKey:ActorID;references:ID" json:"actor,omitempty"`
  Type        NotificationType  `gorm:"type:varchar(32);not null;index;column:type" json:"type"`
  PostID      *uuid.UUID        `gorm:"type:uuid;index;column:post_id" json:"post_id,omitempty"`
  Post        *Post             `gorm:"constraint:OnDelete:CASCADE;foreignKey:PostID;references:ID" json:"-"`
  Data        datatypes.JSON    `gorm:"type:jsonb;column:data" json:"data,omitempty"`
  IsRead      bool              `gorm:"not null;default:false;index;column:is_read" json:"is_read"`
  CreatedAt   time.Time         `gorm:"not null;default:now();index" json:"created_at"`
}

func (Notification) TableName() string {
  return "notification"
}
