// Package progress tracks which lessons the learner has completed.
package progress

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
)

// SlotKey is the storage slot holding the completed lesson ids.
const SlotKey = "grandmaster_progress_v2"

// Slots is the key/value storage the tracker persists to.
type Slots interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// Tracker is the set of completed lesson ids, kept in completion order.
// Ids may outlive the lessons they name; nothing is removed when a lesson
// is deleted.
type Tracker struct {
	ids    []string
	slots  Slots
	logger *zap.Logger
}

// NewTracker creates an unpersisted tracker.
func NewTracker(ids ...string) *Tracker {
	t := &Tracker{logger: zap.NewNop()}
	for _, id := range ids {
		t.add(id)
	}
	return t
}

// Open loads the completed set from slots. Absent or corrupt data yields an
// empty set.
func Open(ctx context.Context, slots Slots, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	t := &Tracker{slots: slots, logger: logger}

	raw, ok, err := slots.Get(ctx, SlotKey)
	if err != nil {
		logger.Warn("reading progress failed, starting empty", zap.Error(err))
		return t
	}
	if !ok {
		return t
	}
	ids, err := Decode([]byte(raw))
	if err != nil {
		logger.Warn("saved progress is corrupt, starting empty", zap.Error(err))
		return t
	}
	for _, id := range ids {
		t.add(id)
	}
	return t
}

// Complete marks id as completed. It reports false when id was already
// completed, in which case nothing is written.
func (t *Tracker) Complete(id string) bool {
	if id == "" || !t.add(id) {
		return false
	}
	t.persist()
	return true
}

// IsCompleted reports whether id is in the completed set.
func (t *Tracker) IsCompleted(id string) bool {
	for _, existing := range t.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// Len returns the number of completed ids.
func (t *Tracker) Len() int { return len(t.ids) }

// IDs returns the completed ids in completion order.
func (t *Tracker) IDs() []string {
	return append([]string{}, t.ids...)
}

// CountIn returns how many of lessonIDs are completed.
func (t *Tracker) CountIn(lessonIDs []string) int {
	n := 0
	for _, id := range lessonIDs {
		if t.IsCompleted(id) {
			n++
		}
	}
	return n
}

// Reset clears all progress.
func (t *Tracker) Reset() {
	t.ids = nil
	t.persist()
}

func (t *Tracker) add(id string) bool {
	if t.IsCompleted(id) {
		return false
	}
	t.ids = append(t.ids, id)
	return true
}

func (t *Tracker) persist() {
	if t.slots == nil {
		return
	}
	data, err := Encode(t.ids)
	if err != nil {
		t.logger.Error("encoding progress failed", zap.Error(err))
		return
	}
	if err := t.slots.Put(context.Background(), SlotKey, string(data)); err != nil {
		t.logger.Error("saving progress failed", zap.Error(err))
	}
}

// Encode serializes completed ids as a JSON array of strings.
func Encode(ids []string) ([]byte, error) {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("encode progress: %w", err)
	}
	return data, nil
}

// Decode parses a blob written by Encode.
func Decode(data []byte) ([]string, error) {
	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("decode progress: %w", err)
	}
	return ids, nil
}
