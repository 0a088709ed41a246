package storage

import (
	"sync"

	"github.com/FrozenTear/Nirify-sub003/internal/models"
)

// DirtyTracker is the set of categories changed since the last flush. It is
// safe for concurrent Mark calls while Take drains it.
type DirtyTracker struct {
	mu    sync.Mutex
	dirty [models.CategoryCount]bool
	n     int
}

func NewDirtyTracker() *DirtyTracker {
	return &DirtyTracker{}
}

// Mark adds categories to the set. Marking a dirty category is a no-op.
func (d *DirtyTracker) Mark(cats ...models.Category) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, c := range cats {
		if !c.Valid() || d.dirty[c] {
			continue
		}
		d.dirty[c] = true
		d.n++
	}
}

// Take returns the dirty categories in declaration order and empties the
// set. A Mark that returned before Take is in exactly one Take result; a
// later Mark waits for the next one.
func (d *DirtyTracker) Take() []models.Category {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.n == 0 {
		return nil
	}
	out := make([]models.Category, 0, d.n)
	for i, v := range d.dirty {
		if v {
			out = append(out, models.Category(i))
		}
	}
	d.dirty = [models.CategoryCount]bool{}
	d.n = 0
	return out
}

func (d *DirtyTracker) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.n
}

func (d *DirtyTracker) IsDirty(cat models.Category) bool {
	if !cat.Valid() {
		return false
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dirty[cat]
}
