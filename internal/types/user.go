package types

import (
  "time"
  "github.com/google/uuid"
)

type VerificationStatus string

const (
  VerificationPending   VerificationStatus = "pending"
  VerificationVerified  VerificationStatus = "verified"
  VerificationRejected  VerificationStatus = "rejected"
)

type User struct {
  ID                  uuid.UUID           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Email               string              `gorm:"uniqueIndex;not null;column:email" json:"email"`
  Password            string              `gorm:"not null;column:password" json:"-"`
  FirstName           string              `gorm:"not null;column:first_name" json:"first_name"`
  LastName            string              `gorm:"not null;column:last_name" json:"last_name"`
  AvatarBucketKey     string              `gorm:"column:avatar_bucket_key" json:"avatar_bucket_key"`
  AvatarURL           string              `gorm:"column:avatar_url" json:"avatar_url"`
  VerificationStatus  VerificationStatus  `gorm:"type:varchar(16);not null;default:'pending';column:verification_status" json:"verification_status"`
  IsReviewer          bool                `gorm:"not null;default:false;column:is_reviewer" json:"is_reviewer"`
  CreatedAt           time.Time           `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt           time.Time           `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}

func (u *User) FullName() string {
  if u.LastName == "" {
    return u.FirstName
  }
  return u.FirstName + " " + u.LastName
}
