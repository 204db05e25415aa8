package services

import (
  "encoding/json"
  "time"

  "github.com/google/uuid"

  "github.com/yungbote/steelman-backend/internal/types"
)

// HistoryEntry is one annotated row of a user's debate history. Locked
// entries keep their identity (id, title, score, timestamps) but withhold the
// argument and generated texts server-side.
type HistoryEntry struct {
  ID            uuid.UUID       `json:"id"`
  Title         string          `json:"title,omitempty"`
  Locked        bool            `json:"locked"`
  StrengthScore int             `json:"strength_score"`
  CreatedAt     time.Time       `json:"created_at"`
  ArgumentText  string          `json:"argument_text,omitempty"`
  SteelMan      string          `json:"steel_man_response,omitempty"`
  Fallacies     []types.Fallacy `json:"fallacies_found,omitempty"`
  AttachmentURL string          `json:"attachment_url,omitempty"`
}

// HistoryView is the entitlement gate's full answer for one list request.
// IsGuest only steers presentation (sign-up vs upgrade on the lock UI).
type HistoryView struct {
  Entries []HistoryEntry `json:"debates"`
  IsPro   bool           `json:"is_pro"`
  IsGuest bool           `json:"is_guest"`
}

// VisibleDebates splits a newest-first history into the unlocked and locked
// subsets for the given tier: pro and enterprise unlock everything, any other
// tier unlocks only the most recent debate.
func VisibleDebates(debatesNewestFirst []*types.Debate, tier string) (unlocked []*types.Debate, locked []*types.Debate) {
  allUnlocked := tier == types.TierPro || tier == types.TierEnterprise
  for i, d := range debatesNewestFirst {
    if allUnlocked || i == 0 {
      unlocked = append(unlocked, d)
      continue
    }
    locked = append(locked, d)
  }
  return unlocked, locked
}

// AnnotateHistory renders a newest-first history through the entitlement
// policy. Pure: it touches no storage and no clock.
func AnnotateHistory(debatesNewestFirst []*types.Debate, user *types.User) HistoryView {
  view := HistoryView{
    Entries: make([]HistoryEntry, 0, len(debatesNewestFirst)),
    IsPro:   IsPro(user),
    IsGuest: IsGuest(user),
  }

  unlockedCount := len(debatesNewestFirst)
  if !view.IsPro {
    unlockedCount = 1
  }

  for i, d := range debatesNewestFirst {
    entry := HistoryEntry{
      ID:            d.ID,
      Title:         d.Title,
      StrengthScore: d.StrengthScore,
      CreatedAt:     d.CreatedAt,
    }
    if i < unlockedCount {
      entry.ArgumentText = d.ArgumentText
      entry.SteelMan = d.SteelManResponse
      entry.Fallacies = decodeFallacies(d.FallaciesFound)
      entry.AttachmentURL = d.AttachmentURL
    } else {
      entry.Locked = true
    }
    view.Entries = append(view.Entries, entry)
  }
  return view
}

func decodeFallacies(raw []byte) []types.Fallacy {
  if len(raw) == 0 {
    return []types.Fallacy{}
  }
  var out []types.Fallacy
  if err := json.Unmarshal(raw, &out); err != nil {
    return []types.Fallacy{}
  }
  return out
}
