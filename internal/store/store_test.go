package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.db")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, path
}

func sampleRun(token string, ok bool) RunRecord {
	started := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	return RunRecord{
		RunToken:     token,
		InputPath:    "houses/" + token + ".h2k",
		OutputPath:   "out/" + token + ".xml",
		OK:           ok,
		WarningCount: 2,
		StartedAt:    started,
		FinishedAt:   started.Add(120 * time.Millisecond),
	}
}

func TestOpenAppliesPragmas(t *testing.T) {
	s, _ := openTemp(t)
	assert.NoError(t, s.verifyPragma("journal_mode", "wal"))
	assert.NoError(t, s.verifyPragma("foreign_keys", "1"))
}

func TestWriteAndReadRuns(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	first := sampleRun("a1", true)
	second := sampleRun("b2", false)
	second.Error = "stage systems: [E501] unmapped value"
	second.OutputPath = ""

	require.NoError(t, s.WriteRun(ctx, first))
	require.NoError(t, s.WriteRun(ctx, second))

	recs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, first, recs[0])
	assert.Equal(t, second, recs[1])
}

func TestWriteRunIdempotentByToken(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	rec := sampleRun("a1", true)
	require.NoError(t, s.WriteRun(ctx, rec))

	dup := rec
	dup.Error = "second report"
	require.NoError(t, s.WriteRun(ctx, dup))

	recs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Empty(t, recs[0].Error, "first record wins")
}

func TestTokenlessRunsAllRecorded(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	// Documents that fail before a run starts have no token; those rows
	// must not collapse into one.
	for i := 0; i < 3; i++ {
		rec := sampleRun("", false)
		rec.Error = "malformed document"
		require.NoError(t, s.WriteRun(ctx, rec))
	}

	recs, err := s.Runs(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 3)
}

func TestRunByToken(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.WriteRun(ctx, sampleRun("a1", true)))

	rec, found, err := s.RunByToken(ctx, "a1")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "houses/a1.h2k", rec.InputPath)

	_, found, err = s.RunByToken(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestSummarize(t *testing.T) {
	s, _ := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.WriteRun(ctx, sampleRun("a1", true)))
	require.NoError(t, s.WriteRun(ctx, sampleRun("b2", true)))
	fail := sampleRun("c3", false)
	fail.Error = "boom"
	require.NoError(t, s.WriteRun(ctx, fail))

	sum, err := s.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, Summary{Total: 3, OK: 2, Failed: 1, Warnings: 6}, sum)
}

func TestReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.WriteRun(ctx, sampleRun("a1", true)))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	recs, err := s.Runs(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}
