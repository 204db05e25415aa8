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

// historyFetchCap is how many rows a history request pulls regardless of
// tier; the entitlement gate decides how much of it is readable.
const historyFetchCap = 50

// DebateService owns retrieval and mutation of existing analysis records.
// Unlike the write path inside the orchestrator, persistence failures here
// always surface: the caller needs to know the action did not take effect.
type DebateService interface {
  // Get serves the public share link. The random id is the only capability;
  // there is deliberately no ownership filter here.
  Get(ctx context.Context, debateID uuid.UUID) (*types.Debate, error)
  History(ctx context.Context, requesterID uuid.UUID) (*HistoryView, error)
  Rename(ctx context.Context, debateID uuid.UUID, requesterID uuid.UUID, newTitle string) error
  Remove(ctx context.Context, debateID uuid.UUID, requesterID uuid.UUID) error
}

type debateService struct {
  db         *gorm.DB
  log        *logger.Logger
  debateRepo repos.DebateRepo
  identity   IdentityService
  cache      ShareCache
}

func NewDebateService(db *gorm.DB, log *logger.Logger, debateRepo repos.DebateRepo, identity IdentityService, cache ShareCache) DebateService {
  serviceLog := log.With("service", "DebateService")
  return &debateService{
    db:         db,
    log:        serviceLog,
    debateRepo: debateRepo,
    identity:   identity,
    cache:      cache,
  }
}

func (ds *debateService) Get(ctx context.Context, debateID uuid.UUID) (*types.Debate, error) {
  if ds.cache != nil {
    if debate, ok := ds.cache.Get(ctx, debateID); ok {
      return debate, nil
    }
  }

  debate, err := ds.debateRepo.GetByID(ctx, nil, debateID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, apierr.NotFound(fmt.Errorf("debate %s not found", debateID))
    }
    return nil, apierr.PersistenceUnavailable(err)
  }

  if ds.cache != nil {
    ds.cache.Set(ctx, debate)
  }
  return debate, nil
}

func (ds *debateService) History(ctx context.Context, requesterID uuid.UUID) (*HistoryView, error) {
  if requesterID == uuid.Nil {
    return nil, apierr.MissingIdentity()
  }

  user := ds.identity.Resolve(ctx, requesterID)

  debates, err := ds.debateRepo.ListByOwner(ctx, nil, requesterID, historyFetchCap)
  if err != nil {
    return nil, apierr.PersistenceUnavailable(err)
  }

  view := AnnotateHistory(debates, user)
  return &view, nil
}

func (ds *debateService) Rename(ctx context.Context, debateID uuid.UUID, requesterID uuid.UUID, newTitle string) error {
  if requesterID == uuid.Nil {
    return apierr.MissingIdentity()
  }
  newTitle = strings.TrimSpace(newTitle)

  if err := ds.checkOwnership(ctx, debateID, requesterID); err != nil {
    return err
  }
  if err := ds.debateRepo.UpdateTitle(ctx, nil, debateID, newTitle); err != nil {
    return apierr.PersistenceUnavailable(err)
  }
  if ds.cache != nil {
    ds.cache.Invalidate(ctx, debateID)
  }
  return nil
}

func (ds *debateService) Remove(ctx context.Context, debateID uuid.UUID, requesterID uuid.UUID) error {
  if requesterID == uuid.Nil {
    return apierr.MissingIdentity()
  }

  if err := ds.checkOwnership(ctx, debateID, requesterID); err != nil {
    return err
  }
  if err := ds.debateRepo.Delete(ctx, nil, debateID); err != nil {
    return apierr.PersistenceUnavailable(err)
  }
  if ds.cache != nil {
    ds.cache.Invalidate(ctx, debateID)
  }
  return nil
}

// checkOwnership is a read-then-compare, not one atomic statement. That is
// safe only because owner_user_id is write-once at insert; if ownership ever
// becomes transferable this must move into a single guarded UPDATE/DELETE.
func (ds *debateService) checkOwnership(ctx context.Context, debateID uuid.UUID, requesterID uuid.UUID) error {
  debate, err := ds.debateRepo.GetByID(ctx, nil, debateID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return apierr.NotFound(fmt.Errorf("debate %s not found", debateID))
    }
    return apierr.PersistenceUnavailable(err)
  }
  if debate.OwnerUserID == nil || *debate.OwnerUserID != requesterID {
    return apierr.Unauthorized(fmt.Errorf("debate %s is not owned by requester", debateID))
  }
  return nil
}
