package types

import (
  "time"
  "github.com/google/uuid"
)

type PrivacyLevel string

const (
  PrivacyPublic         PrivacyLevel = "public"
  PrivacyPrivate        PrivacyLevel = "private"
  PrivacyRecipientOnly  PrivacyLevel = "recipient_only"
)

func (p PrivacyLevel) Valid() bool {
  switch p {
  case PrivacyPublic, PrivacyPrivate, PrivacyRecipientOnly:
    return true
  }
  return false
}

type Anonymity string

const (
  AnonymityFullIdentity   Anonymity = "full_identity"
  AnonymityFirstNameOnly  Anonymity = "first_name_only"
)

func (a Anonymity) Valid() bool {
  return a == AnonymityFullIdentity || a == AnonymityFirstNameOnly
}

// Post is a positive-impact story. The author reference is nullable so that
// deleting an account does not erase the story; AuthorFirstName is a snapshot
// taken at creation for exactly that case. PrivacyLevel is owned by the
// author, RecipientVisibilityOverride by the tagged recipient; both range
// over the same enum but are independently nullable and independently owned.
// LikeCount, CommentCount and EngagementScore are derived columns maintained
// by the engagement service inside the same transaction as each child-row
// mutation; handlers never write them.
type Post struct {
  ID                           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  AuthorID                     *uuid.UUID     `gorm:"type:uuid;index;column:author_id" json:"author_id,omitempty"`
  Author                       *User          `gorm:"constraint:OnDelete:SET NULL;foreignKey:AuthorID;references:ID" json:"author,omitempty"`
  AuthorFirstName              string         `gorm:"not null;column:author_first_name" json:"author_first_name"`
  RecipientID                  *uuid.UUID     `gorm:"type:uuid;index;column:recipient_id" json:"recipient_id,omitempty"`
  Recipient                    *User          `gorm:"constraint:OnDelete:SET NULL;foreignKey:RecipientID;references:ID" json:"recipient,omitempty"`
  RecipientName                string         `gorm:"column:recipient_name" json:"recipient_name"`
  Body                         string         `gorm:"type:text;not null;column:body" json:"body"`
  PrivacyLevel                 PrivacyLevel   `gorm:"type:varchar(16);not null;default:'public';column:privacy_level" json:"privacy_level"`
  RecipientVisibilityOverride  *PrivacyLevel  `gorm:"type:varchar(16);column:recipient_visibility_override" json:"recipient_visibility_override,omitempty"`
  Anonymity                    Anonymity      `gorm:"type:varchar(16);not null;default:'full_identity';column:anonymity" json:"anonymity"`
  LikeCount                    int            `gorm:"not null;default:0;column:like_count" json:"like_count"`
  CommentCount                 int            `gorm:"not null;default:0;column:comment_count" json:"comment_count"`
  EngagementScore              float64        `gorm:"not null;default:0;column:engagement_score" json:"engagement_score"`
  CreatedAt                    time.Time      `gorm:"not null;default:now();index" json:"created_at"`
  UpdatedAt                    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Post) TableName() string {
  return "post"
}
