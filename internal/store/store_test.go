package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xarxa/internal/catalog"
	"xarxa/internal/geom"
)

var t0 = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func kvs(t *testing.T) map[string]KV {
	t.Helper()
	mem, err := OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { mem.Close() })

	file, err := Open(filepath.Join(t.TempDir(), "cache", "xarxa.db"))
	require.NoError(t, err)
	t.Cleanup(func() { file.Close() })

	return map[string]KV{"memory": NewMemory(), "sqlite-memory": mem, "sqlite-file": file}
}

func TestKV(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvs(t) {
		t.Run(name, func(t *testing.T) {
			_, err := kv.Get(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, kv.Set(ctx, "a", "1"))
			require.NoError(t, kv.Set(ctx, "a", "2"))
			v, err := kv.Get(ctx, "a")
			require.NoError(t, err)
			assert.Equal(t, "2", v)

			require.NoError(t, kv.Delete(ctx, "a"))
			_, err = kv.Get(ctx, "a")
			assert.ErrorIs(t, err, ErrNotFound)
			require.NoError(t, kv.Delete(ctx, "a"))
		})
	}
}

func TestFileSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "xarxa.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Set(ctx, LayoutKey, "[]"))
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()
	v, err := db.Get(ctx, LayoutKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestFilePragmas(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "xarxa.db"))
	require.NoError(t, err)
	defer db.Close()

	var mode string
	require.NoError(t, db.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var timeout int
	require.NoError(t, db.db.QueryRow("PRAGMA busy_timeout").Scan(&timeout))
	assert.Equal(t, 5000, timeout)
}

func TestLayoutLoad(t *testing.T) {
	ctx := context.Background()
	defaults := catalog.Default().DefaultLayout()

	t.Run("nothing saved", func(t *testing.T) {
		s := NewLayoutStore(NewMemory(), nil)
		assert.Equal(t, defaults, s.Load(ctx, defaults))
	})

	t.Run("matching length", func(t *testing.T) {
		s := NewLayoutStore(NewMemory(), nil)
		edited := defaults.Clone()
		edited[0] = geom.Percent{X: 1, Y: 2}
		require.NoError(t, s.Save(ctx, edited))
		assert.Equal(t, edited, s.Load(ctx, defaults))
	})

	t.Run("wrong length", func(t *testing.T) {
		s := NewLayoutStore(NewMemory(), nil)
		require.NoError(t, s.Save(ctx, defaults[:10]))
		assert.Equal(t, defaults, s.Load(ctx, defaults))
	})

	t.Run("garbage", func(t *testing.T) {
		kv := NewMemory()
		require.NoError(t, kv.Set(ctx, LayoutKey, "{not json"))
		s := NewLayoutStore(kv, nil)
		assert.Equal(t, defaults, s.Load(ctx, defaults))
	})
}

func TestLayoutStoredAsJSONArray(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	s := NewLayoutStore(kv, nil)
	require.NoError(t, s.Save(ctx, catalog.Layout{{X: 65, Y: 40}, {X: 74.5, Y: 49}}))

	raw, err := kv.Get(ctx, LayoutKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"x":65,"y":40},{"x":74.5,"y":49}]`, raw)
}

func TestScheduleDebounces(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	s := NewLayoutStore(kv, nil)
	first := catalog.Layout{{X: 1, Y: 1}}
	second := catalog.Layout{{X: 2, Y: 2}}

	s.Schedule(t0, first)
	s.Schedule(t0.Add(200*time.Millisecond), second)
	s.Tick(ctx, t0.Add(400*time.Millisecond))
	_, err := kv.Get(ctx, LayoutKey)
	assert.ErrorIs(t, err, ErrNotFound, "still inside the delay")
	assert.True(t, s.Pending())

	s.Tick(ctx, t0.Add(500*time.Millisecond))
	got, err := s.Saved(ctx)
	require.NoError(t, err)
	assert.Equal(t, second, got)
	assert.False(t, s.Pending())
}

func TestFlushAndReset(t *testing.T) {
	ctx := context.Background()
	s := NewLayoutStore(NewMemory(), nil)
	s.Schedule(t0, catalog.Layout{{X: 3, Y: 3}})
	s.Flush(ctx)

	got, err := s.Saved(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)

	require.NoError(t, s.Reset(ctx))
	_, err = s.Saved(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

type failingKV struct{ *Memory }

func (failingKV) Set(context.Context, string, string) error { return assert.AnError }

func TestWriteErrorsIgnored(t *testing.T) {
	s := NewLayoutStore(failingKV{NewMemory()}, nil)
	s.Schedule(t0, catalog.Layout{{X: 3, Y: 3}})
	assert.NotPanics(t, func() { s.Tick(context.Background(), t0.Add(time.Second)) })
	assert.False(t, s.Pending())
}
