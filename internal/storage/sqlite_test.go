package storage

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/hitcircle/internal/game"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func summary(mapID, difficulty string, score, accuracy float64) game.Summary {
	return game.Summary{
		RoundID:    "round-" + difficulty,
		MapID:      mapID,
		MapName:    mapID,
		Difficulty: difficulty,
		Score:      score,
		Hits:       int(accuracy * 10),
		MaxHits:    10,
		Accuracy:   accuracy,
		Rank:       game.RankFor(accuracy),
		Elapsed:    37*time.Second + 400*time.Millisecond,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndHistory(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, s := range []game.Summary{
		summary("onigiri", "Easy", 1200.5, 0.7),
		summary("onigiri", "Hard", 5400, 0.95),
		summary("babyhalo", "Easy", 300, 1),
	} {
		if _, err := store.SaveResult(ctx, s); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	history, err := store.History("onigiri", 10)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(history))
	}

	// Newest first
	latest := history[0]
	if latest.Difficulty != "Hard" {
		t.Errorf("Expected newest result first, got %q", latest.Difficulty)
	}
	if latest.Score != 5400 || latest.Rank != game.RankS || latest.Hits != 9 || latest.MaxHits != 10 {
		t.Errorf("Unexpected result fields: %+v", latest)
	}
	if latest.ElapsedSecs != 37 {
		t.Errorf("Expected elapsed 37s, got %d", latest.ElapsedSecs)
	}
	if latest.RoundID != "round-Hard" {
		t.Errorf("Expected round id to round-trip, got %q", latest.RoundID)
	}
	if math.Abs(latest.AccuracyPercent()-95) > 1e-9 {
		t.Errorf("AccuracyPercent() = %v", latest.AccuracyPercent())
	}
	if latest.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}

	other, err := store.History("babyhalo", 10)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(other) != 1 {
		t.Errorf("Expected 1 babyhalo result, got %d", len(other))
	}

	empty, err := store.History("unplayed", 10)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("Expected an empty non-nil list for an unplayed map, got %#v", empty)
	}
}

func TestStoreHistoryLimit(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 30; i++ {
		if _, err := store.SaveResult(ctx, summary("map", "Normal", float64(i), 0.5)); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	history, err := store.History("map", 5)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(history) != 5 {
		t.Errorf("Expected 5 results, got %d", len(history))
	}
	if history[0].Score != 29 {
		t.Errorf("Expected newest score 29, got %v", history[0].Score)
	}

	all, err := store.History("map", 0)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(all) != 20 {
		t.Errorf("Expected default limit of 20, got %d", len(all))
	}
}

func TestStoreBestByDifficulty(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for _, s := range []game.Summary{
		summary("slyleaf", "Normal", 100, 0.5),
		summary("slyleaf", "Normal", 900, 0.85),
		summary("slyleaf", "Normal", 400, 0.6),
		summary("slyleaf", "Easy", 50, 1),
		summary("other", "Normal", 99999, 1),
	} {
		if _, err := store.SaveResult(ctx, s); err != nil {
			t.Fatalf("SaveResult() failed: %v", err)
		}
	}

	bests, err := store.BestByDifficulty("slyleaf")
	if err != nil {
		t.Fatalf("BestByDifficulty() failed: %v", err)
	}
	if len(bests) != 2 {
		t.Fatalf("Expected 2 difficulties, got %d", len(bests))
	}

	if bests[0].Difficulty != "Easy" || bests[0].Score != 50 || bests[0].Plays != 1 {
		t.Errorf("Unexpected Easy best: %+v", bests[0])
	}
	if bests[1].Difficulty != "Normal" || bests[1].Score != 900 || bests[1].Plays != 3 {
		t.Errorf("Unexpected Normal best: %+v", bests[1])
	}
	if bests[1].Rank != game.RankB {
		t.Errorf("Expected best rank B, got %s", bests[1].Rank)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	empty, err := store.Stats("nothing")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if empty.Plays != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	store.SaveResult(ctx, summary("m", "Easy", 100, 0.5))
	store.SaveResult(ctx, summary("m", "Hard", 300, 1))

	stats, err := store.Stats("m")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Plays != 2 || stats.BestScore != 300 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgAccuracy != 0.75 {
		t.Errorf("Expected average accuracy 0.75, got %v", stats.AvgAccuracy)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}
}

func TestStoreClearHistory(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	store.SaveResult(ctx, summary("a", "Easy", 1, 1))
	store.SaveResult(ctx, summary("b", "Easy", 1, 1))

	if err := store.ClearHistory("a"); err != nil {
		t.Fatalf("ClearHistory() failed: %v", err)
	}

	a, _ := store.History("a", 10)
	b, _ := store.History("b", 10)
	if len(a) != 0 {
		t.Errorf("Expected map a cleared, got %d", len(a))
	}
	if len(b) != 1 {
		t.Errorf("Expected map b untouched, got %d", len(b))
	}
}

func TestStoreRecordsSessionWin(t *testing.T) {
	store := openTestStore(t)

	var rec game.ResultRecorder = store
	if err := rec.RecordResult(context.Background(), summary("onigiri", "Insane", 42, 0.9)); err != nil {
		t.Fatalf("RecordResult() failed: %v", err)
	}

	history, err := store.History("onigiri", 1)
	if err != nil {
		t.Fatalf("History() failed: %v", err)
	}
	if len(history) != 1 || history[0].Rank != game.RankA {
		t.Errorf("Unexpected history after RecordResult: %+v", history)
	}
}

func TestStoreCancelledContext(t *testing.T) {
	store := openTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.SaveResult(ctx, summary("m", "Easy", 1, 1)); err == nil {
		t.Error("SaveResult() with cancelled context should fail")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
