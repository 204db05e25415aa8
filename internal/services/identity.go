package services

import (
  "context"
  "errors"
  "fmt"
  "strings"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/steelman-backend/internal/apierr"
  "github.com/yungbote/steelman-backend/internal/logger"
  "github.com/yungbote/steelman-backend/internal/repos"
  "github.com/yungbote/steelman-backend/internal/types"
)

// guestEmailPrefix marks synthetic addresses minted for anonymous sessions.
// Guest classification is derived from it, never stored.
const guestEmailPrefix = "anon_"

// EntitlementStatus is the wire shape of GET /api/me.
type EntitlementStatus struct {
  IsPro            bool   `json:"is_pro"`
  IsGuest          bool   `json:"is_guest"`
  SubscriptionTier string `json:"subscription_tier"`
  Email            string `json:"email,omitempty"`
  DisplayName      string `json:"display_name,omitempty"`
  PhotoURL         string `json:"photo_url,omitempty"`
}

// IdentityService resolves opaque caller identifiers into persisted users.
type IdentityService interface {
  // Resolve lazily creates a free-tier guest record for unseen identifiers.
  // It never fails: uuid.Nil and persistence errors both resolve to nil,
  // which callers must treat as anonymous.
  Resolve(ctx context.Context, userID uuid.UUID) *types.User
  SyncExternalLogin(ctx context.Context, externalRef string, email string) (*types.User, error)
  Status(ctx context.Context, userID uuid.UUID) EntitlementStatus
  UpdateProfile(ctx context.Context, userID uuid.UUID, displayName *string, photoURL *string) error
  ApplyTierChange(ctx context.Context, userID uuid.UUID, tier string) error
}

type identityService struct {
  db       *gorm.DB
  log      *logger.Logger
  userRepo repos.UserRepo
}

func NewIdentityService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) IdentityService {
  serviceLog := log.With("service", "IdentityService")
  return &identityService{db: db, log: serviceLog, userRepo: userRepo}
}

func IsPro(user *types.User) bool {
  if user == nil {
    return false
  }
  return user.SubscriptionTier == types.TierPro || user.SubscriptionTier == types.TierEnterprise
}

func IsGuest(user *types.User) bool {
  if user == nil {
    return false
  }
  return strings.HasPrefix(user.Email, guestEmailPrefix)
}

func syntheticEmail(userID uuid.UUID) string {
  return fmt.Sprintf("%s%s@example.com", guestEmailPrefix, userID.String()[:8])
}

func (is *identityService) Resolve(ctx context.Context, userID uuid.UUID) *types.User {
  if userID == uuid.Nil {
    return nil
  }

  user, err := is.userRepo.GetByID(ctx, nil, userID)
  if err == nil {
    return user
  }
  if !errors.Is(err, gorm.ErrRecordNotFound) {
    is.log.Warn("User fetch failed, proceeding as anonymous", "user_id", userID, "error", err)
    return nil
  }

  // Upsert-on-read. The insert yields on conflict, so a concurrent first
  // request for the same identifier lands on the same row via the re-fetch.
  fresh := &types.User{
    ID:                  userID,
    Email:               syntheticEmail(userID),
    ExternalIdentityRef: userID.String(),
    SubscriptionTier:    types.TierFree,
  }
  if err := is.userRepo.CreateIfAbsent(ctx, nil, fresh); err != nil {
    is.log.Warn("User create failed, proceeding as anonymous", "user_id", userID, "error", err)
    return nil
  }
  user, err = is.userRepo.GetByID(ctx, nil, userID)
  if err != nil {
    is.log.Warn("User re-fetch after create failed, proceeding as anonymous", "user_id", userID, "error", err)
    return nil
  }
  return user
}

// SyncExternalLogin upserts the user record for an identity-provider subject.
// Repeated logins for the same subject return the existing record.
func (is *identityService) SyncExternalLogin(ctx context.Context, externalRef string, email string) (*types.User, error) {
  externalRef = strings.TrimSpace(externalRef)
  email = strings.TrimSpace(email)
  if externalRef == "" || email == "" {
    return nil, fmt.Errorf("external_ref and email required")
  }

  user, err := is.userRepo.GetByExternalRef(ctx, nil, externalRef)
  if err == nil {
    return user, nil
  }
  if !errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, apierr.PersistenceUnavailable(err)
  }

  fresh := &types.User{
    ID:                  uuid.New(),
    Email:               email,
    ExternalIdentityRef: externalRef,
    SubscriptionTier:    types.TierFree,
  }
  if err := is.userRepo.CreateIfAbsent(ctx, nil, fresh); err != nil {
    return nil, apierr.PersistenceUnavailable(err)
  }
  user, err = is.userRepo.GetByExternalRef(ctx, nil, externalRef)
  if err != nil {
    return nil, apierr.PersistenceUnavailable(err)
  }
  return user, nil
}

func (is *identityService) Status(ctx context.Context, userID uuid.UUID) EntitlementStatus {
  user := is.Resolve(ctx, userID)
  if user == nil {
    return EntitlementStatus{SubscriptionTier: types.TierFree}
  }
  return EntitlementStatus{
    IsPro:            IsPro(user),
    IsGuest:          IsGuest(user),
    SubscriptionTier: user.SubscriptionTier,
    Email:            user.Email,
    DisplayName:      user.DisplayName,
    PhotoURL:         user.PhotoURL,
  }
}

func (is *identityService) UpdateProfile(ctx context.Context, userID uuid.UUID, displayName *string, photoURL *string) error {
  if userID == uuid.Nil {
    return apierr.MissingIdentity()
  }
  if err := is.userRepo.UpdateProfile(ctx, nil, userID, displayName, photoURL); err != nil {
    return apierr.PersistenceUnavailable(err)
  }
  return nil
}

// ApplyTierChange is the billing notification target. The tier is a simple
// assignment, so re-applying the same notification is a no-op by design of
// the operation, not by bookkeeping.
func (is *identityService) ApplyTierChange(ctx context.Context, userID uuid.UUID, tier string) error {
  switch tier {
  case types.TierFree, types.TierPro, types.TierEnterprise:
  default:
    return fmt.Errorf("unknown subscription tier %q", tier)
  }
  if userID == uuid.Nil {
    return apierr.MissingIdentity()
  }
  if err := is.userRepo.UpdateSubscriptionTier(ctx, nil, userID, tier); err != nil {
    return apierr.PersistenceUnavailable(err)
  }
  is.log.Info("Subscription tier applied", "user_id", userID, "tier", tier)
  return nil
}
