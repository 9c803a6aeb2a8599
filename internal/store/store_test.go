package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestStore opens a store on a fresh database file under t.TempDir().
func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenMigratesToLatest(t *testing.T) {
	s := openTestStore(t)

	var version int
	require.NoError(t, s.DB().QueryRow("PRAGMA user_version").Scan(&version))
	assert.Equal(t, len(migrations), version)

	for _, table := range []string{"records", "kv", "llm_events", "tags", "record_tags"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, "table %s must exist", table)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.KV().Set("probe", "1"))
	require.NoError(t, s1.Close())

	// Reopening an up-to-date database must not reapply migrations.
	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	v, err := s2.KV().Get("probe")
	require.NoError(t, err)
	assert.Equal(t, "1", v)
}

func TestOpenRejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.DB().Exec("PRAGMA user_version = 99")
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer")
}

func TestKV(t *testing.T) {
	s := openTestStore(t)
	kv := s.KV()

	v, err := kv.Get("missing")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	require.NoError(t, kv.Set("qianfan_model_index", "3"))
	v, err = kv.Get("qianfan_model_index")
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	// Upsert replaces.
	require.NoError(t, kv.Set("qianfan_model_index", "7"))
	v, err = kv.Get("qianfan_model_index")
	require.NoError(t, err)
	assert.Equal(t, "7", v)

	require.NoError(t, kv.Delete("qianfan_model_index"))
	v, err = kv.Get("qianfan_model_index")
	require.NoError(t, err)
	assert.Equal(t, "", v)

	// Deleting an absent key is fine.
	require.NoError(t, kv.Delete("missing"))
}
