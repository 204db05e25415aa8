package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

// SubscriptionTier values persisted on user.subscription_tier.
const (
  TierFree       = "free"
  TierPro        = "pro"
  TierEnterprise = "enterprise"
)

// User.ID is supplied by the client identity channel for anonymous sessions
// and generated server-side on identity-provider sync, so it carries no
// column default.
type User struct {
  gorm.Model
  ID                  uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  Email               string          `gorm:"uniqueIndex;not null;column:email" json:"email"`
  ExternalIdentityRef string          `gorm:"uniqueIndex;not null;column:external_identity_ref" json:"external_identity_ref"`
  SubscriptionTier    string          `gorm:"not null;default:'free';column:subscription_tier" json:"subscription_tier"`
  DisplayName         string          `gorm:"column:display_name" json:"display_name"`
  PhotoURL            string          `gorm:"column:photo_url" json:"photo_url"`
  CreatedAt           time.Time       `gorm:"not null" json:"created_at"`
  UpdatedAt           time.Time       `gorm:"not null" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}
