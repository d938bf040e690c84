package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "bottom-left", QuadrantKey("bottom-left"))
	assert.Equal(t, "top-right-fps", PanelKey("top-right", "fps"))
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	_, ok := m.Bool("x")
	assert.False(t, ok)

	require.NoError(t, m.SetBool("x", true))
	v, ok := m.Bool("x")
	assert.True(t, ok)
	assert.True(t, v)

	require.NoError(t, m.SetBool("x", false))
	v, ok = m.Bool("x")
	assert.True(t, ok)
	assert.False(t, v)
}

func TestFile_MissingIsEmpty(t *testing.T) {
	f, err := OpenFile(filepath.Join(t.TempDir(), "nope", "state.toml"))
	require.NoError(t, err)
	_, ok := f.Bool("bottom-right")
	assert.False(t, ok)
}

func TestFile_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "state.toml")

	f, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, f.SetBool("bottom-right", true))
	require.NoError(t, f.SetBool("bottom-right-fps", false))

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	v, ok := reopened.Bool("bottom-right")
	assert.True(t, ok)
	assert.True(t, v)
	v, ok = reopened.Bool("bottom-right-fps")
	assert.True(t, ok)
	assert.False(t, v)
}

func TestFile_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	require.NoError(t, os.WriteFile(path, []byte("flags = [[["), 0o644))
	_, err := OpenFile(path)
	assert.Error(t, err)
}

func TestDefaultFilePath_EnvOverride(t *testing.T) {
	want := filepath.Join(t.TempDir(), "s.toml")
	t.Setenv(StateFileEnv, want)
	got, err := DefaultFilePath()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

// fakeRedis serves HGet/HSet from memory. Other UniversalClient methods
// panic through the nil embedded interface.
type fakeRedis struct {
	redis.UniversalClient
	hashes   map[string]map[string]string
	setErr   error
	closeErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{hashes: make(map[string]map[string]string)}
}

func (f *fakeRedis) HGet(ctx context.Context, key, field string) *redis.StringCmd {
	v, ok := f.hashes[key][field]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd {
	if f.setErr != nil {
		return redis.NewIntResult(0, f.setErr)
	}
	h, ok := f.hashes[key]
	if !ok {
		h = make(map[string]string)
		f.hashes[key] = h
	}
	for i := 0; i+1 < len(values); i += 2 {
		h[fmt.Sprint(values[i])] = fmt.Sprint(values[i+1])
	}
	return redis.NewIntResult(int64(len(values)/2), nil)
}

func (f *fakeRedis) Close() error {
	return f.closeErr
}

func TestRedis_FakeRoundTrip(t *testing.T) {
	f := newFakeRedis()
	r := NewRedis(f, "")

	_, ok := r.Bool("top-left")
	assert.False(t, ok, "missing key reads as absent")

	require.NoError(t, r.SetBool("top-left", true))
	v, ok := r.Bool("top-left")
	assert.True(t, ok)
	assert.True(t, v)
	assert.Equal(t, "true", f.hashes[DefaultRedisHash]["top-left"])

	require.NoError(t, r.SetBool("top-left", false))
	v, ok = r.Bool("top-left")
	assert.True(t, ok)
	assert.False(t, v)
}

func TestRedis_CustomHash(t *testing.T) {
	f := newFakeRedis()
	r := NewRedis(f, "shared")
	require.NoError(t, r.SetBool("k", true))
	assert.Contains(t, f.hashes, "shared")
	assert.NotContains(t, f.hashes, DefaultRedisHash)
}

func TestRedis_NonBoolValueIsAbsent(t *testing.T) {
	f := newFakeRedis()
	f.hashes[DefaultRedisHash] = map[string]string{"top-left": "maybe"}
	_, ok := NewRedis(f, "").Bool("top-left")
	assert.False(t, ok)
}

func TestRedis_SetErrorIsWrapped(t *testing.T) {
	f := newFakeRedis()
	f.setErr = errors.New("connection refused")
	err := NewRedis(f, "").SetBool("top-left", true)
	require.Error(t, err)
	assert.ErrorIs(t, err, f.setErr)
	assert.Contains(t, err.Error(), "redis hset top-left")
}

func TestRedis_CloseIgnoresAlreadyClosed(t *testing.T) {
	f := newFakeRedis()
	f.closeErr = redis.ErrClosed
	assert.NoError(t, NewRedis(f, "").Close())

	f.closeErr = errors.New("boom")
	assert.Error(t, NewRedis(f, "").Close())
}

// Set DEBUGPANELS_TEST_REDIS=host:port to run against a live server.
func TestRedis_RoundTrip(t *testing.T) {
	addr := os.Getenv("DEBUGPANELS_TEST_REDIS")
	if addr == "" {
		t.Skip("DEBUGPANELS_TEST_REDIS not set")
	}
	r, err := DialRedis(context.Background(), addr, "debugpanels:test:"+t.Name())
	require.NoError(t, err)
	defer r.Close()

	require.NoError(t, r.SetBool("top-left", true))
	v, ok := r.Bool("top-left")
	assert.True(t, ok)
	assert.True(t, v)

	_, ok = r.Bool("missing")
	assert.False(t, ok)
}
