package dump

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCursorFollowsWindow(t *testing.T) {
	surface := newFakeSurface(4)
	m := NewHighlightManager(surface)
	m.SetWindow(32, 32)
	m.Cursor(40)
	if diff := cmp.Diff([]int{8}, surface.decorated(ClassCursor)); diff != "" {
		t.Fatalf("cursor slots mismatch (-want +got):\n%s", diff)
	}

	m.SetWindow(0, 32)
	if got := surface.decorated(ClassCursor); len(got) != 0 {
		t.Fatalf("cursor should be off-screen, still decorated %v", got)
	}
	if diff := cmp.Diff([]int{40}, m.offsets(ClassCursor)); diff != "" {
		t.Fatalf("cursor offset should be retained (-want +got):\n%s", diff)
	}

	m.SetWindow(32, 32)
	if diff := cmp.Diff([]int{8}, surface.decorated(ClassCursor)); diff != "" {
		t.Fatalf("cursor should reappear (-want +got):\n%s", diff)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	surface := newFakeSurface(4)
	m := NewHighlightManager(surface)
	m.SetWindow(0, 64)
	m.Highlight(10, 20, ClassSearch, false)
	calls := surface.decoCalls
	m.Reconcile()
	m.SetWindow(0, 64)
	if surface.decoCalls != calls {
		t.Fatalf("reconciling an unchanged window made %d extra surface calls", surface.decoCalls-calls)
	}
}

func TestOverlappingEntriesKeepSharedSlots(t *testing.T) {
	surface := newFakeSurface(4)
	m := NewHighlightManager(surface)
	m.SetWindow(0, 32)
	m.Highlight(0, 4, ClassSearch, false)
	m.Highlight(2, 4, ClassSearch, false)
	if diff := cmp.Diff([]int{0, 1, 2, 3, 4, 5}, surface.decorated(ClassSearch)); diff != "" {
		t.Fatalf("union mismatch (-want +got):\n%s", diff)
	}

	// Scrolling one row moves both entries off-screen; coming back restores
	// the union without leaving stray decorations behind.
	m.SetWindow(16, 16)
	if got := surface.decorated(ClassSearch); len(got) != 0 {
		t.Fatalf("expected no decorations, got %v", got)
	}
	m.SetWindow(0, 32)
	if diff := cmp.Diff([]int{0, 1, 2, 3, 4, 5}, surface.decorated(ClassSearch)); diff != "" {
		t.Fatalf("union mismatch after return (-want +got):\n%s", diff)
	}
}

func TestEntriesAreOrderIndependent(t *testing.T) {
	surface := newFakeSurface(4)
	m := NewHighlightManager(surface)
	m.SetWindow(16, 16)
	m.Highlight(16, 1, ClassFocused, false)
	m.Highlight(0, 1, ClassFocused, false)
	if diff := cmp.Diff([]int{0}, surface.decorated(ClassFocused)); diff != "" {
		t.Fatalf("window 16 mismatch (-want +got):\n%s", diff)
	}
	m.SetWindow(0, 32)
	if diff := cmp.Diff([]int{0, 16}, surface.decorated(ClassFocused)); diff != "" {
		t.Fatalf("window 0 mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveHighlightClearsOnlyThatClass(t *testing.T) {
	surface := newFakeSurface(4)
	m := NewHighlightManager(surface)
	m.SetWindow(0, 16)
	m.Highlight(0, 4, ClassSearch, false)
	m.Highlight(2, 1, ClassHighlighted, false)
	m.RemoveHighlight(ClassSearch)
	if got := surface.decorated(ClassSearch); len(got) != 0 {
		t.Fatalf("search decorations should be gone, got %v", got)
	}
	if diff := cmp.Diff([]int{2}, surface.decorated(ClassHighlighted)); diff != "" {
		t.Fatalf("other class changed (-want +got):\n%s", diff)
	}
	if m.entryCount(ClassSearch) != 0 {
		t.Fatalf("expected no search entries, got %d", m.entryCount(ClassSearch))
	}
}

func TestHighlightIgnoresEmptyRanges(t *testing.T) {
	m := NewHighlightManager(newFakeSurface(4))
	m.SetWindow(0, 16)
	m.Highlight(3, 0, ClassSearch, false)
	if m.entryCount(ClassSearch) != 0 {
		t.Fatalf("zero-length highlight should be ignored")
	}
}

func TestHighlightGrowsWithWindow(t *testing.T) {
	surface := newFakeSurface(4)
	m := NewHighlightManager(surface)
	m.Highlight(40, 1, ClassSearch, false)
	m.SetWindow(0, 32)
	if got := surface.decorated(ClassSearch); len(got) != 0 {
		t.Fatalf("offset 40 should be off-screen, got %v", got)
	}
	m.SetWindow(0, 64)
	if diff := cmp.Diff([]int{40}, surface.decorated(ClassSearch)); diff != "" {
		t.Fatalf("growing the window should reveal offset 40 (-want +got):\n%s", diff)
	}
	if !m.decorated(40, ClassSearch) {
		t.Fatalf("decorated should report slot 40")
	}
}

func TestHighlightAppendLeavesExistingEntries(t *testing.T) {
	surface := newFakeSurface(4)
	m := NewHighlightManager(surface)
	m.SetWindow(0, 64)
	for off := 0; off < 64; off += 2 {
		m.Highlight(off, 1, ClassSearch, false)
	}

	// Mark every existing entry as off-screen. Appending must neither
	// correct them nor touch their slots.
	c := m.classes[ClassSearch]
	for i := range c.entries {
		c.entries[i].lo, c.entries[i].hi = 0, 0
	}
	calls := surface.decoCalls
	m.Highlight(1, 1, ClassSearch, false)

	if got := surface.decoCalls - calls; got != 1 {
		t.Fatalf("appending one entry made %d surface calls, want 1", got)
	}
	for i, e := range c.entries[:len(c.entries)-1] {
		if e.lo != 0 || e.hi != 0 {
			t.Fatalf("entry %d was revisited: span [%d,%d)", i, e.lo, e.hi)
		}
	}
	if last := c.entries[len(c.entries)-1]; last.lo != 1 || last.hi != 2 {
		t.Fatalf("new entry span [%d,%d), want [1,2)", last.lo, last.hi)
	}
	if c.refs[0] != 1 {
		t.Fatalf("slot 0 refcount %d, want 1", c.refs[0])
	}
}
