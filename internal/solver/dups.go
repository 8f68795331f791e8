package solver

import (
	"github.com/puzzle-framework/crossnum/pkg/crossnum"
)

// dupTracker records which values are committed somewhere in the
// current run. When duplicates are allowed every check passes.
type dupTracker struct {
	allow bool
	used  map[crossnum.Value]int
}

func newDupTracker(allow bool) *dupTracker {
	return &dupTracker{allow: allow, used: make(map[crossnum.Value]int)}
}

// inUse reports whether committing v would repeat a committed value.
func (t *dupTracker) inUse(v crossnum.Value) bool {
	if t.allow {
		return false
	}
	return t.used[v] > 0
}

func (t *dupTracker) add(v crossnum.Value) {
	t.used[v]++
}

func (t *dupTracker) remove(v crossnum.Value) {
	if t.used[v] <= 1 {
		delete(t.used, v)
		return
	}
	t.used[v]--
}
