package types

import (
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
)

// CompletionCallLog records one round trip to the completion provider.
type CompletionCallLog struct {
  gorm.Model
  ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
  DebateID  *uuid.UUID `gorm:"type:uuid;index" json:"debate_id,omitempty"`
  Persona   string     `gorm:"column:persona;not null" json:"persona"`
  ModelName string     `gorm:"column:model;not null" json:"model"`
  Success   bool       `gorm:"column:success;not null" json:"success"`
  Error     string     `gorm:"column:error" json:"error"`
  LatencyMS int64      `gorm:"column:latency_ms" json:"latency_ms"`
  CreatedAt time.Time  `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (CompletionCallLog) TableName() string {
  return "completion_call_log"
}
