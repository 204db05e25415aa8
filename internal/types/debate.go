package types

import (
  "time"
  "gorm.io/datatypes"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

// Fallacy is one referee finding inside a debate's fallacies_found payload.
type Fallacy struct {
  Type        string `json:"type"`
  Quote       string `json:"quote"`
  Explanation string `json:"explanation"`
}

// Debate is one analysis round. The random v4 id doubles as the public share
// key, so it must stay guess-resistant; only Title is mutable after creation.
type Debate struct {
  gorm.Model
  ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  OwnerUserID      *uuid.UUID      `gorm:"type:uuid;index;column:owner_user_id" json:"owner_user_id,omitempty"`
  ArgumentText     string          `gorm:"not null;column:argument_text" json:"argument_text"`
  SteelManResponse string          `gorm:"column:steel_man_response" json:"steel_man_response"`
  FallaciesFound   datatypes.JSON  `gorm:"type:jsonb;column:fallacies_found" json:"fallacies_found"`
  StrengthScore    int             `gorm:"not null;column:strength_score" json:"strength_score"`
  AttachmentURL    string          `gorm:"column:attachment_url" json:"attachment_url,omitempty"`
  Title            string          `gorm:"column:title" json:"title,omitempty"`
  CreatedAt        time.Time       `gorm:"not null" json:"created_at"`
  UpdatedAt        time.Time       `gorm:"not null" json:"updated_at"`
}

func (Debate) TableName() string {
  return "debate"
}
