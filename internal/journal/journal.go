// Package journal implements a linear undo/redo history of whole-state
// snapshots: a stack pair where taking a snapshot invalidates the redo side
// and the undo side is capped with FIFO eviction.
package journal

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Entry is one journal record. State is an exclusively owned deep copy taken
// just before the mutation the entry describes.
type Entry[S any] struct {
	ID          string
	Action      string
	Description string
	State       S
	Timestamp   string
}

// Record is the state-free view of an entry, for history listings.
type Record struct {
	ID          string `json:"id"`
	Action      string `json:"action"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
}

// History lists both stacks, most recent last.
type History struct {
	Undo []Record `json:"undo"`
	Redo []Record `json:"redo"`
}

// Journal holds the stack pair. It is not safe for concurrent use; the
// owning engine serializes access.
type Journal[S any] struct {
	clone func(S) S
	limit int

	undo []Entry[S]
	redo []Entry[S]

	now    func() time.Time
	logger *zap.Logger
}

// New returns a journal keeping at most limit undo entries. clone must
// produce a deep copy sharing nothing with its argument.
func New[S any](limit int, clone func(S) S, logger *zap.Logger) *Journal[S] {
	return &Journal[S]{
		clone:  clone,
		limit:  limit,
		now:    time.Now,
		logger: logger,
	}
}

// Snapshot records the pre-mutation state, clears the redo stack, and evicts
// the oldest undo entry when over the cap.
func (j *Journal[S]) Snapshot(action, description string, state S) {
	j.undo = append(j.undo, Entry[S]{
		ID:          uuid.NewString(),
		Action:      action,
		Description: description,
		State:       j.clone(state),
		Timestamp:   j.now().Format("1/2/2006, 3:04:05 PM"),
	})
	j.redo = nil

	if len(j.undo) > j.limit {
		j.undo = j.undo[len(j.undo)-j.limit:]
	}

	j.logger.Debug("snapshot taken",
		zap.String("action", action),
		zap.Int("undo_depth", len(j.undo)))
}

// Undo pops the most recent snapshot, pushing the caller's current state
// onto the redo stack first. ok is false when there is nothing to undo; the
// caller's state is then untouched.
func (j *Journal[S]) Undo(current S) (restored S, description string, ok bool) {
	if len(j.undo) == 0 {
		var zero S
		return zero, "", false
	}

	last := j.undo[len(j.undo)-1]
	j.undo = j.undo[:len(j.undo)-1]

	j.redo = append(j.redo, Entry[S]{
		ID:          uuid.NewString(),
		Action:      last.Action,
		Description: last.Description,
		State:       j.clone(current),
		Timestamp:   j.now().Format("1/2/2006, 3:04:05 PM"),
	})

	return j.clone(last.State), last.Description, true
}

// Redo is the mirror of Undo.
func (j *Journal[S]) Redo(current S) (restored S, description string, ok bool) {
	if len(j.redo) == 0 {
		var zero S
		return zero, "", false
	}

	next := j.redo[len(j.redo)-1]
	j.redo = j.redo[:len(j.redo)-1]

	j.undo = append(j.undo, Entry[S]{
		ID:          uuid.NewString(),
		Action:      next.Action,
		Description: next.Description,
		State:       j.clone(current),
		Timestamp:   j.now().Format("1/2/2006, 3:04:05 PM"),
	})

	return j.clone(next.State), next.Description, true
}

// UndoDepth returns the number of undoable entries.
func (j *Journal[S]) UndoDepth() int {
	return len(j.undo)
}

// RedoDepth returns the number of redoable entries.
func (j *Journal[S]) RedoDepth() int {
	return len(j.redo)
}

// History returns state-free records of both stacks.
func (j *Journal[S]) History() History {
	h := History{
		Undo: make([]Record, len(j.undo)),
		Redo: make([]Record, len(j.redo)),
	}
	for i, e := range j.undo {
		h.Undo[i] = Record{ID: e.ID, Action: e.Action, Description: e.Description, Timestamp: e.Timestamp}
	}
	for i, e := range j.redo {
		h.Redo[i] = Record{ID: e.ID, Action: e.Action, Description: e.Description, Timestamp: e.Timestamp}
	}
	return h
}
