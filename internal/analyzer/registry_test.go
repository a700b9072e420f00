package analyzer

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry(Options{Latency: testLatency})
	defer r.Close()

	v := r.Create()
	require.NotNil(t, v)
	assert.Equal(t, 1, r.Len())

	got, ok := r.Get(v.ID())
	require.True(t, ok)
	assert.Same(t, v, got)

	_, ok = r.Get(uuid.New())
	assert.False(t, ok)

	assert.True(t, r.Remove(v.ID()))
	assert.False(t, r.Remove(v.ID()))
	assert.True(t, v.Closed())
	assert.Equal(t, 0, r.Len())
}

func TestRegistryReap(t *testing.T) {
	r := NewRegistry(Options{Latency: time.Hour})
	defer r.Close()

	stale := r.Create()
	stale.SetKeyword("ab")
	require.True(t, stale.Run())

	time.Sleep(30 * time.Millisecond)
	fresh := r.Create()

	assert.Equal(t, 1, r.Reap(20*time.Millisecond))
	assert.Equal(t, 1, r.Len())
	assert.True(t, stale.Closed())
	assert.False(t, fresh.Closed())

	_, ok := r.Get(fresh.ID())
	assert.True(t, ok)
	require.NoError(t, stale.Wait(t.Context()))
}

func TestRegistryClose(t *testing.T) {
	r := NewRegistry(Options{})
	a := r.Create()
	b := r.Create()

	r.Close()
	assert.Equal(t, 0, r.Len())
	assert.True(t, a.Closed())
	assert.True(t, b.Closed())
}
