package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/a2acal/core"
)

func TestInMemoryStore_GetMissing(t *testing.T) {
	store := NewInMemoryStore()

	_, err := store.Get("nope")
	require.ErrorIs(t, err, core.ErrTaskNotFound)
}

func TestInMemoryStore_SaveAndGetClones(t *testing.T) {
	store := NewInMemoryStore()

	original := core.NewTask("t1", "c1")
	require.NoError(t, store.Save(original))

	// Mutating the saved pointer must not leak into the store.
	original.State = core.TaskStateFailed

	got, err := store.Get("c1")
	require.NoError(t, err)
	assert.Equal(t, core.TaskStateSubmitted, got.State)

	// Mutating the returned pointer must not leak either.
	got.State = core.TaskStateFailed
	again, err := store.Get("c1")
	require.NoError(t, err)
	assert.Equal(t, core.TaskStateSubmitted, again.State)
}

func TestInMemoryStore_KeyedByContext(t *testing.T) {
	store := NewInMemoryStore()

	require.NoError(t, store.Save(core.NewTask("t1", "c1")))
	require.NoError(t, store.Save(core.NewTask("t2", "c2")))

	got, err := store.Get("c2")
	require.NoError(t, err)
	assert.Equal(t, "t2", got.ID)
}
