package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/steelman-backend/internal/apierr"
	"github.com/yungbote/steelman-backend/internal/repos"
	"github.com/yungbote/steelman-backend/internal/types"
)

func newDebateFixture(t *testing.T) (DebateService, repos.DebateRepo, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger(t)
	userRepo := repos.NewUserRepo(db, log)
	debateRepo := repos.NewDebateRepo(db, log)
	identity := NewIdentityService(db, log, userRepo)
	return NewDebateService(db, log, debateRepo, identity, nil), debateRepo, db
}

func insertDebate(t *testing.T, debateRepo repos.DebateRepo, owner *uuid.UUID) *types.Debate {
	t.Helper()
	saved, err := debateRepo.Insert(context.Background(), nil, &types.Debate{
		OwnerUserID:      owner,
		ArgumentText:     "argument",
		SteelManResponse: "steel man",
		FallaciesFound:   []byte(`[]`),
		StrengthScore:    70,
		Title:            "original title",
	})
	if err != nil {
		t.Fatalf("seed debate: %v", err)
	}
	return saved
}

func TestGet_PublicShareByID(t *testing.T) {
	svc, debateRepo, _ := newDebateFixture(t)
	owner := uuid.New()
	seeded := insertDebate(t, debateRepo, &owner)

	// No requester identity involved: the id is the capability.
	got, err := svc.Get(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.ID != seeded.ID || got.SteelManResponse != "steel man" {
		t.Fatalf("unexpected debate: %+v", got)
	}
}

func TestGet_UnknownIDIsNotFound(t *testing.T) {
	svc, _, _ := newDebateFixture(t)
	_, err := svc.Get(context.Background(), uuid.New())
	if err == nil {
		t.Fatalf("expected error")
	}
	if apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", apierr.StatusOf(err))
	}
}

func TestRename_OwnerSucceeds(t *testing.T) {
	svc, debateRepo, _ := newDebateFixture(t)
	owner := uuid.New()
	seeded := insertDebate(t, debateRepo, &owner)

	if err := svc.Rename(context.Background(), seeded.ID, owner, "  better title  "); err != nil {
		t.Fatalf("rename failed: %v", err)
	}
	got, err := debateRepo.GetByID(context.Background(), nil, seeded.ID)
	if err != nil {
		t.Fatalf("fetch after rename: %v", err)
	}
	if got.Title != "better title" {
		t.Fatalf("expected trimmed title got %q", got.Title)
	}
}

func TestRename_NonOwnerIsRejectedAndUnchanged(t *testing.T) {
	svc, debateRepo, _ := newDebateFixture(t)
	owner := uuid.New()
	seeded := insertDebate(t, debateRepo, &owner)

	err := svc.Rename(context.Background(), seeded.ID, uuid.New(), "hijacked")
	if err == nil {
		t.Fatalf("expected error")
	}
	if apierr.StatusOf(err) != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", apierr.StatusOf(err))
	}
	got, fetchErr := debateRepo.GetByID(context.Background(), nil, seeded.ID)
	if fetchErr != nil {
		t.Fatalf("fetch after rejected rename: %v", fetchErr)
	}
	if got.Title != "original title" {
		t.Fatalf("rejected rename must not mutate, got %q", got.Title)
	}
}

func TestRename_AnonymousRequesterIsRejected(t *testing.T) {
	svc, debateRepo, _ := newDebateFixture(t)
	owner := uuid.New()
	seeded := insertDebate(t, debateRepo, &owner)

	err := svc.Rename(context.Background(), seeded.ID, uuid.Nil, "anything")
	if apierr.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", apierr.StatusOf(err))
	}
}

func TestRename_OwnerlessDebateCannotBeRenamed(t *testing.T) {
	svc, debateRepo, _ := newDebateFixture(t)
	seeded := insertDebate(t, debateRepo, nil)

	err := svc.Rename(context.Background(), seeded.ID, uuid.New(), "claimed")
	if apierr.StatusOf(err) != http.StatusForbidden {
		t.Fatalf("expected 403 for ownerless record got %d", apierr.StatusOf(err))
	}
}

func TestRemove_OwnerDeletesRecord(t *testing.T) {
	svc, debateRepo, _ := newDebateFixture(t)
	owner := uuid.New()
	seeded := insertDebate(t, debateRepo, &owner)

	if err := svc.Remove(context.Background(), seeded.ID, owner); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := svc.Get(context.Background(), seeded.ID); apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("expected 404 after remove got %v", err)
	}
}

func TestRemove_NonOwnerIsRejected(t *testing.T) {
	svc, debateRepo, _ := newDebateFixture(t)
	owner := uuid.New()
	seeded := insertDebate(t, debateRepo, &owner)

	err := svc.Remove(context.Background(), seeded.ID, uuid.New())
	if apierr.StatusOf(err) != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", apierr.StatusOf(err))
	}
	if _, fetchErr := debateRepo.GetByID(context.Background(), nil, seeded.ID); fetchErr != nil {
		t.Fatalf("record must survive rejected delete: %v", fetchErr)
	}
}

func TestRemove_UnknownIDIsNotFound(t *testing.T) {
	svc, _, _ := newDebateFixture(t)
	err := svc.Remove(context.Background(), uuid.New(), uuid.New())
	if apierr.StatusOf(err) != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", apierr.StatusOf(err))
	}
}

func TestHistory_ReturnsOwnRowsNewestFirst(t *testing.T) {
	svc, debateRepo, _ := newDebateFixture(t)
	owner := uuid.New()
	other := uuid.New()

	first := insertDebate(t, debateRepo, &owner)
	second := insertDebate(t, debateRepo, &owner)
	insertDebate(t, debateRepo, &other)
	insertDebate(t, debateRepo, nil)

	view, err := svc.History(context.Background(), owner)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(view.Entries) != 2 {
		t.Fatalf("expected 2 entries got %d", len(view.Entries))
	}
	ids := map[uuid.UUID]bool{view.Entries[0].ID: true, view.Entries[1].ID: true}
	if !ids[first.ID] || !ids[second.ID] {
		t.Fatalf("history leaked or dropped rows: %v", ids)
	}
	if view.IsPro {
		t.Fatalf("lazily created owner must be free tier")
	}
}

func TestHistory_CapsAtFiftyRows(t *testing.T) {
	svc, debateRepo, _ := newDebateFixture(t)
	owner := uuid.New()
	for i := 0; i < 55; i++ {
		insertDebate(t, debateRepo, &owner)
	}

	view, err := svc.History(context.Background(), owner)
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(view.Entries) != 50 {
		t.Fatalf("expected 50 entries got %d", len(view.Entries))
	}
}

func TestHistory_AnonymousIsRejected(t *testing.T) {
	svc, _, _ := newDebateFixture(t)
	_, err := svc.History(context.Background(), uuid.Nil)
	if apierr.StatusOf(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", apierr.StatusOf(err))
	}
}
