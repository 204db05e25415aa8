package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/steelman-backend/internal/logger"
  "github.com/yungbote/steelman-backend/internal/types"
)

type CompletionCallLogRepo interface {
  Create(ctx context.Context, tx *gorm.DB, logs []*types.CompletionCallLog) ([]*types.CompletionCallLog, error)
}

type completionCallLogRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCompletionCallLogRepo(db *gorm.DB, baseLog *logger.Logger) CompletionCallLogRepo {
  repoLog := baseLog.With("repo", "CompletionCallLogRepo")
  return &completionCallLogRepo{db: db, log: repoLog}
}

func (r *completionCallLogRepo) Create(ctx context.Context, tx *gorm.DB, logs []*types.CompletionCallLog) ([]*types.CompletionCallLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(logs) == 0 {
    return []*types.CompletionCallLog{}, nil
  }
  for _, l := range logs {
    if l.ID == uuid.Nil {
      l.ID = uuid.New()
    }
  }
  if err := transaction.WithContext(ctx).Create(&logs).Error; err != nil {
    return nil, err
  }
  return logs, nil
}
