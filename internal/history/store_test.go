package history_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"cuesplit/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "state", "history.db"))
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	jobs := []history.Job{
		{
			UUID:       "aaaa-1111",
			SheetPath:  "/music/a/album.cue",
			Album:      "First Album",
			Artist:     "First Artist",
			Format:     "flac",
			TrackCount: 10,
			Status:     history.StatusCompleted,
			StartedAt:  base,
			FinishedAt: base.Add(2 * time.Minute),
		},
		{
			UUID:       "bbbb-2222",
			SheetPath:  "/music/b/album.cue",
			Album:      "Second Album",
			Artist:     "Second Artist",
			Format:     "mp3",
			TrackCount: 8,
			Status:     history.StatusFailed,
			Error:      "ffmpeg error: exit status 1",
			StartedAt:  base.Add(time.Hour),
			FinishedAt: base.Add(time.Hour + time.Minute),
		},
	}
	for _, job := range jobs {
		if err := store.Record(ctx, job); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("job count = %d, want 2", len(recent))
	}
	// Newest first.
	if recent[0].UUID != "bbbb-2222" || recent[1].UUID != "aaaa-1111" {
		t.Fatalf("order wrong: %q then %q", recent[0].UUID, recent[1].UUID)
	}
	if recent[0].Status != history.StatusFailed || recent[0].Error == "" {
		t.Fatalf("failed job lost its error: %+v", recent[0])
	}
	if !recent[1].StartedAt.Equal(base) {
		t.Fatalf("started_at roundtrip = %v, want %v", recent[1].StartedAt, base)
	}
	if recent[1].TrackCount != 10 || recent[1].Album != "First Album" {
		t.Fatalf("job fields lost: %+v", recent[1])
	}
}

func TestRecentLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		job := history.Job{
			UUID:      string(rune('a'+i)) + "-uuid",
			SheetPath: "/music/album.cue",
			Status:    history.StatusCompleted,
			StartedAt: time.Now().UTC().Add(time.Duration(i) * time.Minute),
		}
		if err := store.Record(ctx, job); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("job count = %d, want 3", len(recent))
	}
}

func TestRecentEmptyStore(t *testing.T) {
	store := openStore(t)
	recent, err := store.Recent(context.Background(), 0)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 0 {
		t.Fatalf("job count = %d, want 0", len(recent))
	}
}

func TestReopenKeepsSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	if err := store.Record(context.Background(), history.Job{UUID: "x", Status: history.StatusCompleted, StartedAt: time.Now()}); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer reopened.Close()
	recent, err := reopened.Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("job count after reopen = %d, want 1", len(recent))
	}
}
