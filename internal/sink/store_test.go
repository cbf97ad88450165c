package sink

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"number-persistence/internal/search"
)

// setupTestStore creates a temporary SQLite store for testing
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	tmpDir := t.TempDir()
	store, err := OpenStore(filepath.Join(tmpDir, "test.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
	})

	return store
}

func record(value string, p int) search.Record {
	n, _ := new(big.Int).SetString(value, 10)
	return search.Record{Value: n, Persistence: p}
}

func TestStore_RunLifecycle(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	run, err := store.StartRun(ctx, search.VariantExhaustive, big.NewInt(1), big.NewInt(1000))
	require.NoError(t, err)
	_, err = uuid.Parse(run.ID())
	require.NoError(t, err, "run IDs are UUIDs")

	require.NoError(t, run.Emit(ctx, record("11", 1)))
	require.NoError(t, run.Emit(ctx, record("25", 2)))
	require.NoError(t, run.Emit(ctx, record("679", 5)))

	info, err := store.GetRun(ctx, run.ID())
	require.NoError(t, err)
	require.NotNil(t, info)
	assert.Equal(t, "exhaustive", info.Variant)
	assert.Nil(t, info.FinishedAt)

	require.NoError(t, run.Finish(ctx, search.Result{Best: record("679", 5), Candidates: 819}))

	info, err = store.GetRun(ctx, run.ID())
	require.NoError(t, err)
	assert.NotNil(t, info.FinishedAt)
	assert.Equal(t, int64(819), info.Candidates)
	assert.Equal(t, 5, info.BestPersistence)

	records, err := store.ListRecords(ctx, 10)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "679", records[0].Value, "newest first")
	assert.Equal(t, 5, records[0].Persistence)
	assert.Equal(t, 3, records[0].Digits)
	assert.Equal(t, run.ID(), records[0].RunID)
	assert.False(t, records[0].FoundAt.IsZero())
	assert.Equal(t, "11", records[2].Value)
}

func TestStore_ListRecords_Limit(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	run, err := store.StartRun(ctx, search.VariantHeuristic, big.NewInt(10), big.NewInt(100))
	require.NoError(t, err)
	for i, v := range []string{"27", "77", "2777"} {
		require.NoError(t, run.Emit(ctx, record(v, i+2)))
	}

	tests := []struct {
		name          string
		limit         int
		expectedCount int
	}{
		{name: "BelowCount", limit: 2, expectedCount: 2},
		{name: "AboveCount", limit: 50, expectedCount: 3},
		{name: "Zero", limit: 0, expectedCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := store.ListRecords(ctx, tt.limit)
			require.NoError(t, err)
			assert.Len(t, records, tt.expectedCount)
		})
	}
}

func TestStore_LongValue(t *testing.T) {
	ctx := context.Background()
	store := setupTestStore(t)

	start, end := search.LongSearchRange(2000)
	run, err := store.StartRun(ctx, search.VariantHeuristic, start, end)
	require.NoError(t, err)

	long := search.SkipUnlikelyDigits.Apply(start)
	require.NoError(t, run.Emit(ctx, search.Record{Value: long, Persistence: 2}))

	records, err := store.ListRecords(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, long.String(), records[0].Value)
	assert.Equal(t, 2001, records[0].Digits)
}

func TestStore_GetRun_NotFound(t *testing.T) {
	store := setupTestStore(t)

	info, err := store.GetRun(context.Background(), "NONEXISTENT")
	require.NoError(t, err)
	assert.Nil(t, info)
}

func TestRun_Finish_UnknownRun(t *testing.T) {
	store := setupTestStore(t)
	run := &Run{store: store, id: "missing"}

	err := run.Finish(context.Background(), search.Result{})
	assert.Error(t, err)
}

func TestStore_DBError(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		call func(s *Store) error
	}{
		{
			name: "StartRun",
			call: func(s *Store) error {
				_, err := s.StartRun(ctx, search.VariantExhaustive, big.NewInt(1), big.NewInt(2))
				return err
			},
		},
		{
			name: "ListRecords",
			call: func(s *Store) error {
				_, err := s.ListRecords(ctx, 10)
				return err
			},
		},
		{
			name: "GetRun",
			call: func(s *Store) error {
				_, err := s.GetRun(ctx, "id")
				return err
			},
		},
		{
			name: "Emit",
			call: func(s *Store) error {
				return (&Run{store: s, id: "id"}).Emit(ctx, record("25", 2))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := setupTestStore(t)
			store.Close()
			assert.Error(t, tt.call(store))
		})
	}
}

func TestOpenStore_Idempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "records.db")

	first, err := OpenStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenStore(dbPath)
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestInitDB_Error(t *testing.T) {
	// Try to open a database in a non-existent directory
	_, err := InitDB("/non/existent/path/test.db")
	assert.Error(t, err)
}
