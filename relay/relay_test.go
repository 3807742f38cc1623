package relay

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/a2acal/core"
	"github.com/hupe1980/a2acal/internal/testutil"
)

func TestRelay_PreservesOrder(t *testing.T) {
	sink := &testutil.RecordingSink{}
	r := New(sink)

	for i := 0; i < 5; i++ {
		r.Deliver(core.NewStatusEvent("t1", "c1", core.TaskStateWorking, fmt.Sprintf("chunk %d", i), false))
	}

	events := sink.Events()
	require.Len(t, events, 5)
	for i, ev := range events {
		tp, ok := ev.Content.(core.TextPart)
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("chunk %d", i), tp.Text)
	}
}

func TestRelay_SwallowsSinkFailures(t *testing.T) {
	sink := &testutil.RecordingSink{FailAfter: 1}
	r := New(sink)

	r.Deliver(core.NewStatusEvent("t1", "c1", core.TaskStateWorking, "first", false))
	// Must not panic or propagate; delivery is attempted regardless.
	r.Deliver(core.NewStatusEvent("t1", "c1", core.TaskStateWorking, "second", false))
	r.Deliver(core.NewStatusEvent("t1", "c1", core.TaskStateCompleted, "third", true))

	assert.Equal(t, 3, sink.Sends())
	assert.Len(t, sink.Events(), 1)
}
