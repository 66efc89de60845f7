package agent

import (
	"cmp"
	"slices"

	"github.com/mitchelldurbincs/NimReinforcementLearning/internal/game/core"
)

// Key identifies one learned value
type Key struct {
	State  core.State
	Action core.Action
}

// Entry is a stored value with its key
type Entry struct {
	Key
	Value float64
}

// QTable maps (state, action) pairs to learned values. Pairs that were never
// updated are simply absent.
type QTable struct {
	values map[Key]float64
}

// NewQTable creates an empty table
func NewQTable() *QTable {
	return &QTable{values: make(map[Key]float64)}
}

// Get returns the stored value and whether one exists. It never inserts.
func (q *QTable) Get(s core.State, a core.Action) (float64, bool) {
	v, ok := q.values[Key{State: s, Action: a}]
	return v, ok
}

// Set stores a value, replacing any previous one
func (q *QTable) Set(s core.State, a core.Action, v float64) {
	q.values[Key{State: s, Action: a}] = v
}

// Len returns the number of stored pairs
func (q *QTable) Len() int {
	return len(q.values)
}

// Entries returns every stored value ordered by state, then pile, then count
func (q *QTable) Entries() []Entry {
	entries := make([]Entry, 0, len(q.values))
	for k, v := range q.values {
		entries = append(entries, Entry{Key: k, Value: v})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return compareKeys(a.Key, b.Key)
	})
	return entries
}

func compareKeys(a, b Key) int {
	for i := range a.State {
		if c := cmp.Compare(a.State[i], b.State[i]); c != 0 {
			return c
		}
	}
	if c := cmp.Compare(a.Action.Pile, b.Action.Pile); c != 0 {
		return c
	}
	return cmp.Compare(a.Action.Count, b.Action.Count)
}
