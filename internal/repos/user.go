package repos

import (
  "context"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"
  "github.com/yungbote/steelman-backend/internal/logger"
  "github.com/yungbote/steelman-backend/internal/types"
)

type UserRepo interface {
  CreateIfAbsent(ctx context.Context, tx *gorm.DB, user *types.User) error
  GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error)
  GetByExternalRef(ctx context.Context, tx *gorm.DB, externalRef string) (*types.User, error)
  UpdateProfile(ctx context.Context, tx *gorm.DB, userID uuid.UUID, displayName *string, photoURL *string) error
  UpdateSubscriptionTier(ctx context.Context, tx *gorm.DB, userID uuid.UUID, tier string) error
}

type userRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
  repoLog := baseLog.With("repo", "UserRepo")
  return &userRepo{db: db, log: repoLog}
}

// CreateIfAbsent inserts and silently yields to any existing row on unique
// conflict (id or external ref), so concurrent first-requests for the same
// identifier never produce duplicates. Callers re-fetch after calling.
func (ur *userRepo) CreateIfAbsent(ctx context.Context, tx *gorm.DB, user *types.User) error {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }
  if err := transaction.WithContext(ctx).
    Clauses(clause.OnConflict{DoNothing: true}).
    Create(user).Error; err != nil {
    return err
  }
  return nil
}

func (ur *userRepo) GetByID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.User, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }

  var result types.User
  if err := transaction.WithContext(ctx).
    Where("id = ?", userID).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

func (ur *userRepo) GetByExternalRef(ctx context.Context, tx *gorm.DB, externalRef string) (*types.User, error) {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }

  var result types.User
  if err := transaction.WithContext(ctx).
    Where("external_identity_ref = ?", externalRef).
    First(&result).Error; err != nil {
    return nil, err
  }
  return &result, nil
}

// UpdateProfile applies merge-on-null semantics: nil fields are left untouched.
func (ur *userRepo) UpdateProfile(ctx context.Context, tx *gorm.DB, userID uuid.UUID, displayName *string, photoURL *string) error {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }

  updates := map[string]interface{}{}
  if displayName != nil {
    updates["display_name"] = *displayName
  }
  if photoURL != nil {
    updates["photo_url"] = *photoURL
  }
  if len(updates) == 0 {
    return nil
  }

  return transaction.WithContext(ctx).
    Model(&types.User{}).
    Where("id = ?", userID).
    Updates(updates).Error
}

func (ur *userRepo) UpdateSubscriptionTier(ctx context.Context, tx *gorm.DB, userID uuid.UUID, tier string) error {
  transaction := tx
  if transaction == nil {
    transaction = ur.db
  }

  return transaction.WithContext(ctx).
    Model(&types.User{}).
    Where("id = ?", userID).
    Update("subscription_tier", tier).Error
}
