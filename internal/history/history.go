// Package history keeps the most recently picked colours.
package history

import (
	"slices"
	"sync"

	"github.com/jmylchreest/nullpick/internal/colour"
)

// DefaultLimit is the number of colours kept when no limit is given.
const DefaultLimit = 15

// History is a bounded first-in first-out list of colours. It is safe for
// concurrent use.
type History struct {
	mu      sync.Mutex
	limit   int
	colours []colour.RGB
}

// New creates a history holding at most limit colours. A limit below 1
// uses DefaultLimit.
func New(limit int) *History {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &History{limit: limit, colours: make([]colour.RGB, 0, limit)}
}

// Add records rgb, evicting the oldest colour once the history is full.
func (h *History) Add(rgb colour.RGB) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.colours) == h.limit {
		h.colours = slices.Delete(h.colours, 0, 1)
	}
	h.colours = append(h.colours, rgb)
}

// Newest returns the colours newest first.
func (h *History) Newest() []colour.RGB {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := slices.Clone(h.colours)
	slices.Reverse(out)
	return out
}

// Len returns the number of colours held.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.colours)
}

// Limit returns the capacity.
func (h *History) Limit() int {
	return h.limit
}

// Clear removes every colour.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.colours = h.colours[:0]
}
