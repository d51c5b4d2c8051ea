package analyses

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"resume-check/report/model"
)

func TestMemoryRepoPutReplacesCurrent(t *testing.T) {
	repo := NewMemoryRepo(nil)
	ctx := context.Background()

	first := Analysis{ID: "a1", SessionID: "tab", FileName: "old.pdf", Report: model.Sample("old.pdf")}
	second := Analysis{ID: "a2", SessionID: "tab", FileName: "new.pdf", Report: model.Sample("new.pdf")}
	if err := repo.Put(ctx, first); err != nil {
		t.Fatalf("put first: %v", err)
	}
	if err := repo.Put(ctx, second); err != nil {
		t.Fatalf("put second: %v", err)
	}

	got, err := repo.Current(ctx, "tab")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if got.ID != "a2" || got.Report.FileName != "new.pdf" {
		t.Fatalf("expected second analysis, got %s", got.ID)
	}
	if repo.Len() != 1 {
		t.Fatalf("expected one entry per session, got %d", repo.Len())
	}
}

func TestMemoryRepoIsolatesSessions(t *testing.T) {
	repo := NewMemoryRepo(nil)
	ctx := context.Background()
	if err := repo.Put(ctx, Analysis{ID: "a1", SessionID: "tab-1"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	if _, err := repo.Current(ctx, "tab-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other session, got %v", err)
	}
}

func TestMemoryRepoDelete(t *testing.T) {
	repo := NewMemoryRepo(nil)
	ctx := context.Background()
	if err := repo.Put(ctx, Analysis{ID: "a1", SessionID: "tab"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	if err := repo.Delete(ctx, "tab"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.Current(ctx, "tab"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := repo.Delete(ctx, "tab"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMemoryRepoReturnsCopies(t *testing.T) {
	repo := NewMemoryRepo(nil)
	ctx := context.Background()
	stored := Analysis{ID: "a1", SessionID: "tab", Report: model.Sample("cv.pdf")}
	if err := repo.Put(ctx, stored); err != nil {
		t.Fatalf("put: %v", err)
	}
	stored.Report.HardSkills[0] = "mutated by caller"

	got, err := repo.Current(ctx, "tab")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	got.Report.SoftSkills[0] = "mutated by reader"

	again, err := repo.Current(ctx, "tab")
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	want := model.Sample("cv.pdf")
	if again.Report.HardSkills[0] != want.HardSkills[0] || again.Report.SoftSkills[0] != want.SoftSkills[0] {
		t.Fatalf("stored report was mutated through a shared slice")
	}
}

func TestMemoryRepoRejectsMissingSession(t *testing.T) {
	if err := NewMemoryRepo(nil).Put(context.Background(), Analysis{ID: "a1"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMemoryRepoHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := NewMemoryRepo(nil).Put(ctx, Analysis{ID: "a1", SessionID: "tab"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMemoryRepoConcurrentSessions(t *testing.T) {
	repo := NewMemoryRepo(nil)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			session := fmt.Sprintf("tab-%d", i%4)
			_ = repo.Put(ctx, Analysis{ID: fmt.Sprintf("a%d", i), SessionID: session})
			_, _ = repo.Current(ctx, session)
		}(i)
	}
	wg.Wait()

	if repo.Len() != 4 {
		t.Fatalf("expected 4 sessions, got %d", repo.Len())
	}
}

func TestMemoryRepoDropsIdleSessions(t *testing.T) {
	now := testNow
	repo := NewMemoryRepo(func() time.Time { return now })
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if err := repo.Put(ctx, Analysis{ID: fmt.Sprintf("a%d", i), SessionID: fmt.Sprintf("tab-%d", i)}); err != nil {
			t.Fatalf("put: %v", err)
		}
	}
	if repo.Len() != 3 {
		t.Fatalf("expected 3 sessions, got %d", repo.Len())
	}

	now = now.Add(DefaultSessionTTL + time.Second)

	if repo.Len() != 0 {
		t.Fatalf("expected idle sessions to be dropped, got %d", repo.Len())
	}
	if _, err := repo.Current(ctx, "tab-0"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for expired session, got %v", err)
	}
}

func TestMemoryRepoReadKeepsSessionAlive(t *testing.T) {
	now := testNow
	repo := NewMemoryRepo(func() time.Time { return now })
	ctx := context.Background()
	if err := repo.Put(ctx, Analysis{ID: "a1", SessionID: "tab"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	for i := 0; i < 3; i++ {
		now = now.Add(DefaultSessionTTL / 2)
		if _, err := repo.Current(ctx, "tab"); err != nil {
			t.Fatalf("current after %d reads: %v", i, err)
		}
	}
	if repo.Len() != 1 {
		t.Fatalf("expected session kept alive by reads, got %d", repo.Len())
	}
}

func TestMemoryRepoExpiredCurrentIsNotFound(t *testing.T) {
	now := testNow
	repo := NewMemoryRepo(func() time.Time { return now })
	ctx := context.Background()
	if err := repo.Put(ctx, Analysis{ID: "a1", SessionID: "tab"}); err != nil {
		t.Fatalf("put: %v", err)
	}

	now = now.Add(DefaultSessionTTL + time.Minute)

	if _, err := repo.Current(ctx, "tab"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "tab"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestMemoryRepoCapsSessions(t *testing.T) {
	now := testNow
	repo := NewMemoryRepo(func() time.Time { return now })
	repo.MaxSessions = 2
	ctx := context.Background()

	for _, id := range []string{"tab-1", "tab-2"} {
		if err := repo.Put(ctx, Analysis{ID: id, SessionID: id}); err != nil {
			t.Fatalf("put %s: %v", id, err)
		}
		now = now.Add(time.Second)
	}
	if _, err := repo.Current(ctx, "tab-1"); err != nil {
		t.Fatalf("current: %v", err)
	}
	now = now.Add(time.Second)

	if err := repo.Put(ctx, Analysis{ID: "tab-3", SessionID: "tab-3"}); err != nil {
		t.Fatalf("put tab-3: %v", err)
	}
	if repo.Len() != 2 {
		t.Fatalf("expected cap of 2 sessions, got %d", repo.Len())
	}
	if _, err := repo.Current(ctx, "tab-2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected least recently seen session evicted, got %v", err)
	}
	for _, id := range []string{"tab-1", "tab-3"} {
		if _, err := repo.Current(ctx, id); err != nil {
			t.Fatalf("expected %s kept: %v", id, err)
		}
	}

	// Replacing an existing session never evicts another one.
	if err := repo.Put(ctx, Analysis{ID: "tab-1b", SessionID: "tab-1"}); err != nil {
		t.Fatalf("replace tab-1: %v", err)
	}
	if repo.Len() != 2 {
		t.Fatalf("expected 2 sessions after replace, got %d", repo.Len())
	}
}
