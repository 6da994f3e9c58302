package store

import (
	"sort"
	"time"

	"nickandperla.net/regcalc/internal/expr"
)

// Memory is the register table. It has a single writer and is not safe
// for concurrent use.
type Memory struct {
	data map[string]*expr.Value
}

// NewMemory creates an empty register table.
func NewMemory() *Memory {
	return &Memory{
		data: make(map[string]*expr.Value),
	}
}

// Get retrieves the current value of a register.
func (m *Memory) Get(name string) (*expr.Value, bool) {
	v, ok := m.data[name]
	return v, ok
}

// Put replaces the value of a register.
func (m *Memory) Put(name string, v *expr.Value) {
	m.data[name] = v
}

// Len returns the number of registers.
func (m *Memory) Len() int {
	return len(m.data)
}

// Names returns the register names in sorted order.
func (m *Memory) Names() []string {
	names := make([]string, 0, len(m.data))
	for name := range m.data {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MemoryJournal is an in-memory journal for testing.
type MemoryJournal struct {
	Session string
	entries map[string][]VersionEntry
	now     func() time.Time
}

// NewMemoryJournal creates an empty in-memory journal.
func NewMemoryJournal(session string) *MemoryJournal {
	return &MemoryJournal{
		Session: session,
		entries: make(map[string][]VersionEntry),
		now:     time.Now,
	}
}

// Record appends a new version of name.
func (j *MemoryJournal) Record(name string, v *expr.Value) error {
	list := j.entries[name]
	j.entries[name] = append(list, VersionEntry{
		Version: len(list) + 1,
		Value:   v.String(),
		Session: j.Session,
		Ts:      j.now().UTC(),
	})
	return nil
}

// GetHistory returns recorded versions of name, newest first.
func (j *MemoryJournal) GetHistory(name string, limit int) ([]VersionEntry, error) {
	list := j.entries[name]
	var out []VersionEntry
	for i := len(list) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, list[i])
	}
	return out, nil
}

// Close is a no-op for the memory journal.
func (j *MemoryJournal) Close() error {
	return nil
}
