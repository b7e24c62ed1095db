package types

import (
  "time"
  "github.com/google/uuid"
)

// VerificationRequest moves out of pending exactly once; ReviewedAt and
// ReviewedBy are set only on that transition.
type VerificationRequest struct {
  ID          uuid.UUID           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID      uuid.UUID           `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
  User        *User               `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  Status      VerificationStatus  `gorm:"type:varchar(16);not null;default:'pending';index;column:status" json:"status"`
  Note        string              `gorm:"type:text;column:note" json:"note"`
  ReviewedAt  *time.Time          `gorm:"column:reviewed_at" json:"reviewed_at,omitempty"`
  ReviewedBy  *uuid.UUID          `gorm:"type:uuid;column:reviewed_by" json:"reviewed_by,omitempty"`
  Reviewer    *User               `gorm:"constraint:OnDelete:SET NULL;foreignKey:ReviewedBy;references:ID" json:"-"`
  CreatedAt   time.Time           `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt   time.Time           `gorm:"not null;default:now()" json:"updated_at"`
}

func (VerificationRequest) TableName() string {
  return "verification_request"
}
