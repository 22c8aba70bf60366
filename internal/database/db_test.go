package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(Config{
		Path:    filepath.Join(t.TempDir(), "cache.db"),
		Profile: ProfileCache,
		Name:    "cache",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBuildConnectionString(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		profile  DatabaseProfile
		contains []string
		prefix   string
	}{
		{
			name:     "cache profile",
			path:     "/tmp/cache.db",
			profile:  ProfileCache,
			contains: []string{"synchronous(OFF)", "journal_mode(WAL)"},
			prefix:   "/tmp/cache.db?",
		},
		{
			name:     "standard profile",
			path:     "/tmp/x.db",
			profile:  ProfileStandard,
			contains: []string{"synchronous(NORMAL)"},
			prefix:   "/tmp/x.db?",
		},
		{
			name:     "uri with query",
			path:     "file:test?mode=memory",
			profile:  ProfileCache,
			contains: []string{"mode=memory&_pragma=journal_mode(WAL)"},
			prefix:   "file:test?mode=memory&",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildConnectionString(tt.path, tt.profile)
			assert.Contains(t, got, tt.prefix)
			for _, want := range tt.contains {
				assert.Contains(t, got, want)
			}
		})
	}
}

func TestMigrate_CreatesJobRuns(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrate())
	// Idempotent
	require.NoError(t, db.Migrate())

	var name string
	err := db.Conn().QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='job_runs'`).Scan(&name)
	require.NoError(t, err)
	assert.Equal(t, "job_runs", name)
	assert.Equal(t, "cache", db.Name())
}

func TestMigrate_UnknownNameIsNoop(t *testing.T) {
	db, err := New(Config{Path: filepath.Join(t.TempDir(), "other.db"), Name: "other"})
	require.NoError(t, err)
	defer db.Close()

	assert.NoError(t, db.Migrate())
}

func TestWithTransaction(t *testing.T) {
	db := newTestDB(t)
	_, err := db.ExecContext(context.Background(), `CREATE TABLE t (v INTEGER)`)
	require.NoError(t, err)

	count := func() int {
		var n int
		require.NoError(t, db.Conn().QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n))
		return n
	}

	err = WithTransaction(db.Conn(), func(tx *sql.Tx) error {
		_, err := tx.Exec(`INSERT INTO t (v) VALUES (1)`)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 1, count())

	boom := errors.New("boom")
	err = WithTransaction(db.Conn(), func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO t (v) VALUES (2)`); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, count())

	err = WithTransaction(db.Conn(), func(tx *sql.Tx) error {
		panic("kaboom")
	})
	assert.EqualError(t, err, "panic in transaction: kaboom")
	assert.Equal(t, 1, count())

	assert.Error(t, WithTransaction(nil, func(tx *sql.Tx) error { return nil }))
}

func TestWALCheckpoint(t *testing.T) {
	db := newTestDB(t)
	assert.NoError(t, db.WALCheckpoint(""))
	assert.NoError(t, db.WALCheckpoint("PASSIVE"))
	assert.NoError(t, db.QuickCheck(context.Background()))
}
