package services

import (
  "context"
  "encoding/json"
  "fmt"
  "strings"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/yungbote/steelman-backend/internal/logger"
  "github.com/yungbote/steelman-backend/internal/repos"
  "github.com/yungbote/steelman-backend/internal/types"
)

// persistTimeout bounds the best-effort insert: a slow database must not
// block returning an already-computed completion round.
const persistTimeout = 5 * time.Second

// AnalysisResult is the submit-analysis wire contract. A nil ID with
// Saved=false means "analyzed but not saved" and is a success, not an error.
type AnalysisResult struct {
  ID        *uuid.UUID      `json:"id"`
  SteelMan  string          `json:"steel_man"`
  Score     int             `json:"score"`
  Fallacies []types.Fallacy `json:"fallacies"`
  CreatedAt time.Time       `json:"created_at"`
  IsPro     bool            `json:"is_pro"`
  Saved     bool            `json:"saved"`
}

// AnalysisService walks one submission through
// IDENTIFY -> GENERATE -> PARSE -> PERSIST -> RESPOND, with no backward
// transitions and no retries. Only GENERATE is fatal.
type AnalysisService interface {
  Submit(ctx context.Context, requesterID uuid.UUID, argumentText string, attachmentURL string) (*AnalysisResult, error)
}

type analysisService struct {
  db          *gorm.DB
  log         *logger.Logger
  gateway     CompletionGateway
  identity    IdentityService
  debateRepo  repos.DebateRepo
  callLogRepo repos.CompletionCallLogRepo
}

func NewAnalysisService(
  db *gorm.DB,
  log *logger.Logger,
  gateway CompletionGateway,
  identity IdentityService,
  debateRepo repos.DebateRepo,
  callLogRepo repos.CompletionCallLogRepo,
) AnalysisService {
  serviceLog := log.With("service", "AnalysisService")
  return &analysisService{
    db:          db,
    log:         serviceLog,
    gateway:     gateway,
    identity:    identity,
    debateRepo:  debateRepo,
    callLogRepo: callLogRepo,
  }
}

func (as *analysisService) Submit(ctx context.Context, requesterID uuid.UUID, argumentText string, attachmentURL string) (*AnalysisResult, error) {
  argumentText = strings.TrimSpace(argumentText)
  if argumentText == "" {
    return nil, fmt.Errorf("argument_text required")
  }

  // IDENTIFY: resolution failure is not fatal, the round runs anonymously.
  user := as.identity.Resolve(ctx, requesterID)
  var ownerID *uuid.UUID
  if user != nil {
    id := user.ID
    ownerID = &id
  }

  // GENERATE: the only fatal state. A response carrying just one of the two
  // texts is never returned.
  dual, genErr := as.gateway.RunDualAnalysis(ctx, argumentText)
  if genErr != nil {
    as.recordCompletionCalls(ctx, ownerID, nil, dual, genErr)
    return nil, genErr
  }

  // PARSE: total over arbitrary referee output.
  analysis := ParseFallacyPayload(dual.RawFallacyText)
  if analysis.UsedFallback {
    as.log.Warn("Referee payload unparseable, using fallback", "user_id", requesterID)
  }

  result := &AnalysisResult{
    SteelMan:  dual.SteelManText,
    Score:     analysis.Score,
    Fallacies: analysis.Fallacies,
    CreatedAt: time.Now().UTC(),
    IsPro:     IsPro(user),
  }

  // PERSIST: best effort. Losing a completed completion round to a transient
  // database hiccup is worse than serving an unsaved result.
  fallaciesJSON, err := json.Marshal(analysis.Fallacies)
  if err != nil {
    fallaciesJSON = []byte("[]")
  }
  debate := &types.Debate{
    OwnerUserID:      ownerID,
    ArgumentText:     argumentText,
    SteelManResponse: dual.SteelManText,
    FallaciesFound:   datatypes.JSON(fallaciesJSON),
    StrengthScore:    analysis.Score,
    AttachmentURL:    attachmentURL,
  }

  persistCtx, cancel := context.WithTimeout(ctx, persistTimeout)
  defer cancel()
  saved, err := as.debateRepo.Insert(persistCtx, nil, debate)
  if err != nil {
    as.log.Warn("Debate insert failed, returning unsaved result", "user_id", requesterID, "error", err)
    as.recordCompletionCalls(ctx, ownerID, nil, dual, nil)
    return result, nil
  }

  // Call logs are written after the insert so saved rounds link back to
  // their debate row.
  as.recordCompletionCalls(ctx, ownerID, &saved.ID, dual, nil)

  result.ID = &saved.ID
  result.CreatedAt = saved.CreatedAt
  result.Saved = true
  return result, nil
}

// recordCompletionCalls writes the provider call log rows. Best effort: this
// must never influence the response.
func (as *analysisService) recordCompletionCalls(ctx context.Context, userID *uuid.UUID, debateID *uuid.UUID, dual *DualCompletion, callErr error) {
  if as.callLogRepo == nil {
    return
  }

  success := callErr == nil
  errText := ""
  if callErr != nil {
    errText = callErr.Error()
  }

  var steelMS, refMS int64
  if dual != nil {
    steelMS = dual.SteelManMS
    refMS = dual.RefereeMS
  }

  logs := []*types.CompletionCallLog{
    {
      UserID:    userID,
      DebateID:  debateID,
      Persona:   PersonaSteelMan,
      ModelName: as.gateway.Model(),
      Success:   success,
      Error:     errText,
      LatencyMS: steelMS,
    },
    {
      UserID:    userID,
      DebateID:  debateID,
      Persona:   PersonaReferee,
      ModelName: as.gateway.Model(),
      Success:   success,
      Error:     errText,
      LatencyMS: refMS,
    },
  }

  logCtx, cancel := context.WithTimeout(ctx, persistTimeout)
  defer cancel()
  if _, err := as.callLogRepo.Create(logCtx, nil, logs); err != nil {
    as.log.Debug("Completion call log write failed", "error", err)
  }
}
