package store

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"mylo/internal/assistant"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "stats.db"), testLogger())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndTotals(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	events := []assistant.QueryEvent{
		{ID: uuid.NewString(), Channel: "telegram", Sender: "bob", Intent: "search", Blocks: 1, At: time.Now()},
		{ID: uuid.NewString(), Channel: "telegram", Sender: "bob", Intent: "search", Blocks: 2, At: time.Now()},
		{ID: uuid.NewString(), Channel: "telegram", Sender: "alice", Intent: "earnings", Blocks: 1, At: time.Now()},
	}
	for _, ev := range events {
		if err := s.Record(ctx, ev); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	totals, err := s.Totals(ctx)
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if totals["search"] != 2 {
		t.Errorf("search = %d, want 2", totals["search"])
	}
	if totals["earnings"] != 1 {
		t.Errorf("earnings = %d, want 1", totals["earnings"])
	}
}

func TestTotalsEmpty(t *testing.T) {
	s := openTestStore(t)

	totals, err := s.Totals(context.Background())
	if err != nil {
		t.Fatalf("Totals: %v", err)
	}
	if len(totals) != 0 {
		t.Errorf("totals = %v, want empty", totals)
	}
}

func TestRecordDuplicateID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	ev := assistant.QueryEvent{ID: "fixed", Intent: "search", At: time.Now()}
	if err := s.Record(ctx, ev); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(ctx, ev); err == nil {
		t.Error("expected primary key violation on duplicate id")
	}
}
