package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *SQLite {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	migrations, err := filepath.Abs("migrations")
	require.NoError(t, err)
	require.NoError(t, RunMigrations(dbPath, migrations))

	s, err := Open(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	s := openTestDB(t)

	require.NoError(t, s.Save(KeyExpenses, []byte(`[{"id":"1"}]`)))

	got, err := s.Load(KeyExpenses)
	require.NoError(t, err)
	require.Equal(t, []byte(`[{"id":"1"}]`), got)
}

func TestSaveOverwrites(t *testing.T) {
	t.Parallel()
	s := openTestDB(t)

	require.NoError(t, s.Save(KeyPaychecks, []byte("old")))
	require.NoError(t, s.Save(KeyPaychecks, []byte("new")))

	got, err := s.Load(KeyPaychecks)
	require.NoError(t, err)
	require.Equal(t, []byte("new"), got)
}

func TestLoadMissingKeyReturnsNil(t *testing.T) {
	t.Parallel()
	s := openTestDB(t)

	got, err := s.Load("never-saved")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("migrations")
	require.NoError(t, err)

	require.NoError(t, RunMigrations(dbPath, migrations))
	require.NoError(t, RunMigrations(dbPath, migrations))
}

func TestRunMigrationsWithDB(t *testing.T) {
	t.Parallel()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	migrations, err := filepath.Abs("migrations")
	require.NoError(t, err)

	s, err := Open(dbPath)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, RunMigrationsWithDB(s.DB(), migrations))
	require.NoError(t, s.Save(KeyAllocations, []byte("x")))
}
