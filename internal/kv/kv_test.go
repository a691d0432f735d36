package kv

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()

	fs, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	ss, err := NewSQLiteStore(db)
	require.NoError(t, err)

	return map[string]Store{
		"file":   fs,
		"sqlite": ss,
		"memory": NewMemoryStore(),
	}
}

func TestStore_Contract(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			v, err := s.Read(ctx, "absent")
			require.NoError(t, err)
			assert.Nil(t, v)

			require.NoError(t, s.Write(ctx, "k", []byte(`{"a":1}`)))
			v, err = s.Read(ctx, "k")
			require.NoError(t, err)
			assert.JSONEq(t, `{"a":1}`, string(v))

			require.NoError(t, s.Write(ctx, "k", []byte(`{"a":2}`)))
			v, err = s.Read(ctx, "k")
			require.NoError(t, err)
			assert.JSONEq(t, `{"a":2}`, string(v))

			require.NoError(t, s.Write(ctx, "k", nil))
			v, err = s.Read(ctx, "k")
			require.NoError(t, err)
			assert.Nil(t, v)

			// Deleting a missing key is fine.
			require.NoError(t, s.Write(ctx, "k", nil))
		})
	}
}

func TestStore_KeysAreIndependent(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Write(ctx, "active_workout", []byte(`1`)))
			require.NoError(t, s.Write(ctx, "rest_timer", []byte(`2`)))
			require.NoError(t, s.Write(ctx, "active_workout", nil))

			v, err := s.Read(ctx, "rest_timer")
			require.NoError(t, err)
			assert.Equal(t, "2", string(v))
		})
	}
}

func TestFileStore_SanitizesKeysAndLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Write(context.Background(), "../escape/key", []byte(`{}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, ".._escape_key.json", entries[0].Name())
	_, err = os.Stat(filepath.Join(filepath.Dir(dir), "escape"))
	assert.True(t, os.IsNotExist(err))
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(BackendSQLite, dir)
	require.NoError(t, err)
	require.NoError(t, s.Write(context.Background(), "k", []byte("v")))
	require.NoError(t, s.(*SQLiteStore).Close())
	_, err = os.Stat(filepath.Join(dir, "state.db"))
	require.NoError(t, err)

	_, err = Open("redis", dir)
	assert.Error(t, err)

	m, err := Open(BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, m)
}

func TestMemoryStore_CopiesValues(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()
	in := []byte("abc")
	require.NoError(t, m.Write(ctx, "k", in))
	in[0] = 'x'

	out, err := m.Read(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(out))
	assert.Equal(t, 1, m.Writes())
}
