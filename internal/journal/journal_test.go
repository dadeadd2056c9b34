package journal

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"pgregory.net/rapid"
)

func cloneInts(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)
	return out
}

func TestSnapshotAndUndo(t *testing.T) {
	j := New(10, cloneInts, zaptest.NewLogger(t))

	state := []int{1}
	j.Snapshot("ADD", "added 2", cloneInts(state))
	state = append(state, 2)

	restored, description, ok := j.Undo(cloneInts(state))
	require.True(t, ok)
	assert.Equal(t, []int{1}, restored)
	assert.Equal(t, "added 2", description)
	assert.Equal(t, 0, j.UndoDepth())
	assert.Equal(t, 1, j.RedoDepth())
}

func TestUndoEmpty(t *testing.T) {
	j := New(10, cloneInts, zaptest.NewLogger(t))

	_, _, ok := j.Undo([]int{1})
	assert.False(t, ok)
	_, _, ok = j.Redo([]int{1})
	assert.False(t, ok)
}

func TestRedoAfterUndo(t *testing.T) {
	j := New(10, cloneInts, zaptest.NewLogger(t))

	j.Snapshot("ADD", "added 2", []int{1})
	current := []int{1, 2}

	restored, _, ok := j.Undo(cloneInts(current))
	require.True(t, ok)

	again, description, ok := j.Redo(cloneInts(restored))
	require.True(t, ok)
	assert.Equal(t, current, again)
	assert.Equal(t, "added 2", description)
	assert.Equal(t, 1, j.UndoDepth())
	assert.Equal(t, 0, j.RedoDepth())
}

func TestSnapshotClearsRedo(t *testing.T) {
	j := New(10, cloneInts, zaptest.NewLogger(t))

	j.Snapshot("A", "first", []int{1})
	_, _, ok := j.Undo([]int{1, 2})
	require.True(t, ok)
	require.Equal(t, 1, j.RedoDepth())

	j.Snapshot("B", "second", []int{1})
	assert.Equal(t, 0, j.RedoDepth())
}

func TestUndoCapEvictsOldest(t *testing.T) {
	j := New(50, cloneInts, zaptest.NewLogger(t))

	for i := 0; i < 51; i++ {
		j.Snapshot("ADD", fmt.Sprintf("step %d", i), []int{i})
	}
	assert.Equal(t, 50, j.UndoDepth())

	// Step 0 was evicted: the deepest reachable snapshot is step 1.
	var last []int
	for {
		restored, _, ok := j.Undo(last)
		if !ok {
			break
		}
		last = restored
	}
	assert.Equal(t, []int{1}, last)
}

func TestSnapshotStoresDeepCopy(t *testing.T) {
	j := New(10, cloneInts, zaptest.NewLogger(t))

	state := []int{1, 2}
	j.Snapshot("A", "snap", state)
	state[0] = 99

	restored, _, ok := j.Undo(state)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, restored)
}

func TestHistory(t *testing.T) {
	j := New(10, cloneInts, zaptest.NewLogger(t))

	j.Snapshot("A", "first", []int{1})
	j.Snapshot("B", "second", []int{1, 2})
	_, _, ok := j.Undo([]int{1, 2, 3})
	require.True(t, ok)

	h := j.History()
	require.Len(t, h.Undo, 1)
	require.Len(t, h.Redo, 1)
	assert.Equal(t, "first", h.Undo[0].Description)
	assert.Equal(t, "second", h.Redo[0].Description)
	assert.NotEmpty(t, h.Undo[0].ID)
	assert.NotEmpty(t, h.Undo[0].Timestamp)
}

// Property: from any mutation sequence, undoing everything restores the
// initial state and redoing everything restores the final state.
func TestUndoRedoRoundTrip(t *testing.T) {
	logger := zaptest.NewLogger(t)

	rapid.Check(t, func(rt *rapid.T) {
		j := New(100, cloneInts, logger)

		initial := []int{}
		state := cloneInts(initial)

		steps := rapid.IntRange(0, 20).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			j.Snapshot("APPEND", fmt.Sprintf("append %d", i), cloneInts(state))
			state = append(state, rapid.Int().Draw(rt, "value"))
		}
		final := cloneInts(state)

		for i := 0; i < steps; i++ {
			restored, _, ok := j.Undo(cloneInts(state))
			if !ok {
				rt.Fatalf("undo %d failed", i)
			}
			state = restored
		}
		if !reflect.DeepEqual(initial, state) {
			rt.Fatalf("undo-all restored %v, want %v", state, initial)
		}

		for i := 0; i < steps; i++ {
			restored, _, ok := j.Redo(cloneInts(state))
			if !ok {
				rt.Fatalf("redo %d failed", i)
			}
			state = restored
		}
		if !reflect.DeepEqual(final, state) {
			rt.Fatalf("redo-all restored %v, want %v", state, final)
		}
	})
}
