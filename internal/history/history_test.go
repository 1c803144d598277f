package history

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jmylchreest/nullpick/internal/colour"
)

func grey(v uint8) colour.RGB {
	return colour.RGB{R: v, G: v, B: v}
}

func TestNewDefaultsLimit(t *testing.T) {
	for _, limit := range []int{0, -3} {
		if got := New(limit).Limit(); got != DefaultLimit {
			t.Errorf("New(%d).Limit() = %d, want %d", limit, got, DefaultLimit)
		}
	}
	if got := New(4).Limit(); got != 4 {
		t.Errorf("New(4).Limit() = %d, want 4", got)
	}
}

func TestAddAndNewest(t *testing.T) {
	h := New(3)
	if h.Len() != 0 || len(h.Newest()) != 0 {
		t.Fatal("new history is not empty")
	}

	h.Add(grey(1))
	h.Add(grey(2))
	if diff := cmp.Diff([]colour.RGB{grey(2), grey(1)}, h.Newest()); diff != "" {
		t.Errorf("Newest() mismatch (-want +got):\n%s", diff)
	}

	h.Add(grey(3))
	h.Add(grey(4))
	h.Add(grey(5))
	if h.Len() != 3 {
		t.Errorf("Len() = %d, want 3", h.Len())
	}
	if diff := cmp.Diff([]colour.RGB{grey(5), grey(4), grey(3)}, h.Newest()); diff != "" {
		t.Errorf("Newest() after eviction mismatch (-want +got):\n%s", diff)
	}
}

func TestDuplicatesKept(t *testing.T) {
	h := New(2)
	h.Add(grey(7))
	h.Add(grey(7))
	if h.Len() != 2 {
		t.Errorf("Len() = %d, want 2", h.Len())
	}
}

func TestNewestIsACopy(t *testing.T) {
	h := New(2)
	h.Add(grey(1))
	got := h.Newest()
	got[0] = grey(99)
	if h.Newest()[0] != grey(1) {
		t.Error("modifying Newest() result changed the history")
	}
}

func TestClear(t *testing.T) {
	h := New(2)
	h.Add(grey(1))
	h.Clear()
	if h.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", h.Len())
	}
	h.Add(grey(2))
	if diff := cmp.Diff([]colour.RGB{grey(2)}, h.Newest()); diff != "" {
		t.Errorf("Newest() after Clear mismatch (-want +got):\n%s", diff)
	}
}

func TestConcurrentAdd(t *testing.T) {
	h := New(DefaultLimit)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(v uint8) {
			defer wg.Done()
			h.Add(grey(v))
		}(uint8(i))
	}
	wg.Wait()

	if h.Len() != DefaultLimit {
		t.Errorf("Len() = %d, want %d", h.Len(), DefaultLimit)
	}
}
