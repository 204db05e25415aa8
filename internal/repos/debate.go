package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/yungbote/steelman-backend/internal/logger"
  "github.com/yungbote/steelman-backend/internal/types"
)

type DebateRepo interface {
  Insert(ctx context.Context, tx *gorm.DB, debate *types.Debate) (*types.Debate, error)
  GetByID(ctx context.Context, tx *gorm.DB, debateID uuid.UUID) (*types.Debate, error)
  ListByOwner(ctx context.Context, tx *gorm.DB, ownerUserID uuid.UUID, limit int) ([]*types.Debate, error)
  UpdateTitle(ctx context.Context, tx *gorm.DB, debateID uuid.UUID, title string) error
  Delete(ctx context.Context, tx *gorm.DB, debateID uuid.UUID) error
}

type debateRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewDebateRepo(db *gorm.DB, baseLog *logger.Logger) DebateRepo {
  repoLog := baseLog.With("repo", "DebateRepo")
  return &debateRepo{db: db, log: repoLog}
}

func (dr *debateRepo) Insert(ctx context.Context, tx *gorm.DB, debate *types.Debate) (*types.Debate, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }
  if debate.ID == uuid.Nil {
    debate.ID = uuid.New()
  }
  if err := transaction.WithContext(ctx).Create(debate).Error; err != nil {
    return nil, err
  }
  return debate, nil
}

func (dr *debateRepo) GetByID(ctx context.Context, tx *gorm.DB, debateID uuid.UUID) (*types.Debate, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  var result types.Debate
  if err := transaction.WithContext(ctx).
    Where("id = ?", debateID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (dr *debateRepo) ListByOwner(ctx context.Context, tx *gorm.DB, ownerUserID uuid.UUID, limit int) ([]*types.Debate, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  var results []*types.Debate
  if err := transaction.WithContext(ctx).
    Where("owner_user_id = ?", ownerUserID).
    Order("created_at DESC").
    Limit(limit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (dr *debateRepo) UpdateTitle(ctx context.Context, tx *gorm.DB, debateID uuid.UUID, title string) error {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  return transaction.WithContext(ctx).
    Model(&types.Debate{}).
    Where("id = ?", debateID).
    Update("title", title).Error
}

func (dr *debateRepo) Delete(ctx context.Context, tx *gorm.DB, debateID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  return transaction.WithContext(ctx).
    Where("id = ?", debateID).
    Delete(&types.Debate{}).Error
}
