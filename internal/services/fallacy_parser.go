package services

import (
  "encoding/json"
  "fmt"
  "strings"

  "github.com/yungbote/steelman-backend/internal/types"
)

// FallacyAnalysis is the parser's tagged result: either a cleanly decoded
// referee payload or the declared fallback, with UsedFallback distinguishing
// the two for observability.
type FallacyAnalysis struct {
  Score        int
  Fallacies    []types.Fallacy
  UsedFallback bool
}

const fallbackScore = 50

func fallbackFallacyAnalysis() FallacyAnalysis {
  return FallacyAnalysis{Score: fallbackScore, Fallacies: []types.Fallacy{}, UsedFallback: true}
}

// ParseFallacyPayload extracts {score, fallacies} from raw model text. It is
// total over arbitrary input: code fences are stripped, invalid JSON or
// missing/mistyped top-level keys yield the {50, []} fallback, out-of-range
// scores are clamped, and entries missing a field get "" for it.
func ParseFallacyPayload(raw string) FallacyAnalysis {
  cleaned := stripCodeFences(raw)
  if cleaned == "" {
    return fallbackFallacyAnalysis()
  }

  var obj map[string]any
  if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
    return fallbackFallacyAnalysis()
  }

  score, ok := anyInt(obj["score"])
  if !ok {
    return fallbackFallacyAnalysis()
  }
  rawList, ok := obj["fallacies"].([]any)
  if !ok {
    return fallbackFallacyAnalysis()
  }

  // The 0-100 range is a documentation contract, not an upstream guarantee.
  if score < 0 {
    score = 0
  }
  if score > 100 {
    score = 100
  }

  fallacies := make([]types.Fallacy, 0, len(rawList))
  for _, item := range rawList {
    entry, ok := item.(map[string]any)
    if !ok {
      continue
    }
    fallacies = append(fallacies, types.Fallacy{
      Type:        strings.TrimSpace(anyStr(entry["type"])),
      Quote:       anyStr(entry["quote"]),
      Explanation: strings.TrimSpace(anyStr(entry["explanation"])),
    })
  }

  return FallacyAnalysis{Score: score, Fallacies: fallacies}
}

func stripCodeFences(raw string) string {
  cleaned := strings.TrimSpace(raw)
  cleaned = strings.ReplaceAll(cleaned, "```json", "")
  cleaned = strings.ReplaceAll(cleaned, "```", "")
  return strings.TrimSpace(cleaned)
}

func anyStr(v any) string {
  if v == nil {
    return ""
  }
  if s, ok := v.(string); ok {
    return s
  }
  return fmt.Sprint(v)
}

func anyInt(v any) (int, bool) {
  switch t := v.(type) {
  case float64:
    return int(t), true
  case float32:
    return int(t), true
  case int:
    return t, true
  case int64:
    return int(t), true
  case json.Number:
    if i64, err := t.Int64(); err == nil {
      return int(i64), true
    }
  }
  if s, ok := v.(string); ok {
    s = strings.TrimSpace(s)
    if s == "" {
      return 0, false
    }
    if i64, err := json.Number(s).Int64(); err == nil {
      return int(i64), true
    }
  }
  return 0, false
}
