package backup

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNextRun(t *testing.T) {
	loc := time.UTC
	before := time.Date(2026, 5, 10, 1, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 5, 10, 2, 0, 0, 0, loc), NextRun(before, 2, 0))

	exactly := time.Date(2026, 5, 10, 2, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 5, 11, 2, 0, 0, 0, loc), NextRun(exactly, 2, 0))

	after := time.Date(2026, 5, 31, 23, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2026, 6, 1, 2, 0, 0, 0, loc), NextRun(after, 2, 0))
}

func TestRunOnce_CopiesAndPrunes(t *testing.T) {
	src := t.TempDir()
	dst := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(src, "nested"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "qr.png"), []byte("qr"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "nested", "old.png"), []byte("old"), 0644))

	stale := filepath.Join(dst, "2020-01-01_02-00-00")
	require.NoError(t, os.MkdirAll(stale, 0755))
	longAgo := time.Now().Add(-10 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(stale, longAgo, longAgo))

	s := &Scheduler{SrcDir: src, BackupDir: dst, Retention: 4 * 24 * time.Hour, Logger: zap.NewNop()}
	dest, err := s.RunOnce(time.Now())
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dest, "qr.png"))
	require.NoError(t, err)
	assert.Equal(t, "qr", string(data))
	assert.FileExists(t, filepath.Join(dest, "nested", "old.png"))
	assert.NoDirExists(t, stale)
}

func TestRunOnce_MissingSource(t *testing.T) {
	s := &Scheduler{SrcDir: filepath.Join(t.TempDir(), "missing"), BackupDir: t.TempDir(), Logger: zap.NewNop()}
	_, err := s.RunOnce(time.Now())
	assert.Error(t, err)
}
