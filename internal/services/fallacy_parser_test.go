package services

import (
	"testing"
)

func TestParseFallacyPayload_CleanJSON(t *testing.T) {
	raw := `{"score": 72, "fallacies": [{"type": "Ad Hominem", "quote": "you fool", "explanation": "Attacks the person."}]}`
	out := ParseFallacyPayload(raw)
	if out.UsedFallback {
		t.Fatalf("expected clean parse, got fallback")
	}
	if out.Score != 72 {
		t.Fatalf("expected score=72 got %d", out.Score)
	}
	if len(out.Fallacies) != 1 {
		t.Fatalf("expected 1 fallacy got %d", len(out.Fallacies))
	}
	if out.Fallacies[0].Type != "Ad Hominem" || out.Fallacies[0].Quote != "you fool" {
		t.Fatalf("unexpected fallacy: %+v", out.Fallacies[0])
	}
}

func TestParseFallacyPayload_CodeFencedJSON(t *testing.T) {
	raw := "```json\n{\"score\": 65, \"fallacies\": []}\n```"
	out := ParseFallacyPayload(raw)
	if out.UsedFallback {
		t.Fatalf("expected clean parse, got fallback")
	}
	if out.Score != 65 {
		t.Fatalf("expected score=65 got %d", out.Score)
	}
	if len(out.Fallacies) != 0 {
		t.Fatalf("expected no fallacies got %d", len(out.Fallacies))
	}
}

func TestParseFallacyPayload_MalformedInputsFallBack(t *testing.T) {
	cases := map[string]string{
		"empty":            "",
		"prose":            "I think this argument is pretty strong overall.",
		"truncated":        `{"score": 70, "fallacies": [`,
		"missing_score":    `{"fallacies": []}`,
		"missing_list":     `{"score": 70}`,
		"score_not_number": `{"score": "strong", "fallacies": []}`,
		"list_not_array":   `{"score": 70, "fallacies": "none"}`,
		"top_level_array":  `[1, 2, 3]`,
	}
	for name, raw := range cases {
		out := ParseFallacyPayload(raw)
		if !out.UsedFallback {
			t.Fatalf("%s: expected fallback", name)
		}
		if out.Score != 50 {
			t.Fatalf("%s: expected fallback score=50 got %d", name, out.Score)
		}
		if out.Fallacies == nil || len(out.Fallacies) != 0 {
			t.Fatalf("%s: expected empty fallacies got %v", name, out.Fallacies)
		}
	}
}

func TestParseFallacyPayload_ClampsScore(t *testing.T) {
	out := ParseFallacyPayload(`{"score": 180, "fallacies": []}`)
	if out.UsedFallback {
		t.Fatalf("expected clean parse")
	}
	if out.Score != 100 {
		t.Fatalf("expected clamp to 100 got %d", out.Score)
	}

	out = ParseFallacyPayload(`{"score": -5, "fallacies": []}`)
	if out.Score != 0 {
		t.Fatalf("expected clamp to 0 got %d", out.Score)
	}
}

func TestParseFallacyPayload_CoercesScoreShapes(t *testing.T) {
	out := ParseFallacyPayload(`{"score": 72.6, "fallacies": []}`)
	if out.UsedFallback || out.Score != 72 {
		t.Fatalf("expected float coercion to 72, got fallback=%v score=%d", out.UsedFallback, out.Score)
	}
	out = ParseFallacyPayload(`{"score": "88", "fallacies": []}`)
	if out.UsedFallback || out.Score != 88 {
		t.Fatalf("expected numeric-string coercion to 88, got fallback=%v score=%d", out.UsedFallback, out.Score)
	}
}

func TestParseFallacyPayload_DefaultsMissingEntryFields(t *testing.T) {
	raw := `{"score": 40, "fallacies": [{"type": "Strawman"}, "not an object", {"quote": "q", "explanation": "e"}]}`
	out := ParseFallacyPayload(raw)
	if out.UsedFallback {
		t.Fatalf("expected clean parse")
	}
	if len(out.Fallacies) != 2 {
		t.Fatalf("expected 2 object entries got %d", len(out.Fallacies))
	}
	if out.Fallacies[0].Type != "Strawman" || out.Fallacies[0].Quote != "" || out.Fallacies[0].Explanation != "" {
		t.Fatalf("expected missing fields defaulted to empty, got %+v", out.Fallacies[0])
	}
	if out.Fallacies[1].Type != "" || out.Fallacies[1].Quote != "q" {
		t.Fatalf("unexpected entry: %+v", out.Fallacies[1])
	}
}
