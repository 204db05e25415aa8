package services

import (
  "context"
  "fmt"
  "time"

  "golang.org/x/sync/errgroup"

  "github.com/yungbote/steelman-backend/internal/apierr"
  "github.com/yungbote/steelman-backend/internal/logger"
)

const steelManSystemPrompt = `You are 'The Steel Man', a world-class debater and philosopher. Your goal is to represent the opposing view of the user's argument with maximum charity, intellectual rigor, and nuance.

RULES:
- Do NOT straw man the user. Interpret their argument in its strongest possible form.
- Do NOT simply summarize. Argue FOR the opposing side.
- Your tone should be respectful but formidable. You are a worthy adversary.
- Keep it concise but potent (under 400 words).`

const refereeSystemPrompt = `You are a Logic Referee. Analyze the user's text for logical errors effectively. Return ONLY a valid JSON object with two keys: 'score' (0-100 integer representing logical strength) and 'fallacies' (an array of objects with 'type', 'quote', and 'explanation').

Example JSON:
{
  "score": 65,
  "fallacies": [
    { "type": "Ad Hominem", "quote": "because you're stupid", "explanation": "Attacking the person instead of the argument." }
  ]
}

If no fallacies are found, return empty array.`

const (
  PersonaSteelMan = "steel_man"
  PersonaReferee  = "referee"
)

// DualCompletion is the joined result of one steel-man call and one referee
// call. RawFallacyText is unvalidated model output; the parser owns its shape.
type DualCompletion struct {
  SteelManText   string
  RawFallacyText string
  SteelManMS     int64
  RefereeMS      int64
}

// CompletionGateway issues the two persona calls for one argument. The calls
// carry no data dependency, so they always run concurrently; either failure
// fails the pair with no partial result.
type CompletionGateway interface {
  RunDualAnalysis(ctx context.Context, argumentText string) (*DualCompletion, error)
  Model() string
}

type completionGateway struct {
  log    *logger.Logger
  client CompletionClient
}

func NewCompletionGateway(log *logger.Logger, client CompletionClient) CompletionGateway {
  return &completionGateway{
    log:    log.With("service", "CompletionGateway"),
    client: client,
  }
}

func (cg *completionGateway) Model() string {
  return cg.client.Model()
}

func (cg *completionGateway) RunDualAnalysis(ctx context.Context, argumentText string) (*DualCompletion, error) {
  out := &DualCompletion{}

  g, groupCtx := errgroup.WithContext(ctx)

  g.Go(func() error {
    started := time.Now()
    text, err := cg.client.Complete(
      groupCtx,
      steelManSystemPrompt,
      fmt.Sprintf("Here is my argument:\n%q\n\nGive me your strongest counter-argument.", argumentText),
    )
    out.SteelManMS = time.Since(started).Milliseconds()
    if err != nil {
      return fmt.Errorf("steel man call: %w", err)
    }
    out.SteelManText = text
    return nil
  })

  g.Go(func() error {
    started := time.Now()
    text, err := cg.client.Complete(
      groupCtx,
      refereeSystemPrompt,
      fmt.Sprintf("Analyze the logic of this argument:\n%q", argumentText),
    )
    out.RefereeMS = time.Since(started).Milliseconds()
    if err != nil {
      return fmt.Errorf("referee call: %w", err)
    }
    out.RawFallacyText = text
    return nil
  })

  if err := g.Wait(); err != nil {
    retryable := IsRetryableUpstream(err)
    cg.log.Warn("Dual analysis failed", "retryable", retryable, "error", err)
    return nil, apierr.UpstreamUnavailable(retryable, err)
  }
  return out, nil
}
