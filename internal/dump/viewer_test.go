package dump

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestViewerSearchNavigatesMatches(t *testing.T) {
	data := bytes.Repeat([]byte("."), 512)
	copy(data[20:], "needle")
	copy(data[300:], "NEEDLE")
	v, surface, _ := newTestViewer(t, data, nil, 2)

	status := v.Search("needle")
	if diff := cmp.Diff(SearchStatus{Query: "needle", Index: 1, Total: 2}, status); diff != "" {
		t.Fatalf("status mismatch (-want +got):\n%s", diff)
	}
	if v.RowOffset() != 1 {
		t.Fatalf("expected window at row 1, got %d", v.RowOffset())
	}
	if diff := cmp.Diff([]int{4, 5, 6, 7, 8, 9}, surface.decorated(ClassSearch)); diff != "" {
		t.Fatalf("search slots mismatch (-want +got):\n%s", diff)
	}

	status = v.SearchForward()
	if status.Index != 2 || v.RowOffset() != 18 {
		t.Fatalf("expected match 2 at row 18, got index %d row %d", status.Index, v.RowOffset())
	}
	status = v.SearchForward()
	if status.Index != 1 || v.RowOffset() != 1 {
		t.Fatalf("expected wrap to match 1, got index %d row %d", status.Index, v.RowOffset())
	}
	status = v.SearchBackward()
	if status.Index != 2 {
		t.Fatalf("expected wrap back to match 2, got %d", status.Index)
	}
}

func TestViewerSearchCaseSensitive(t *testing.T) {
	data := []byte("needle NEEDLE")
	buf := NewBuffer(data)
	v := New(buf, nil, newFakeSurface(1), nil, Options{CaseSensitive: true})
	v.Fit()
	if got := v.Search("NEEDLE").Total; got != 1 {
		t.Fatalf("expected 1 case-sensitive match, got %d", got)
	}
	v.SetCaseSensitive(false)
	if got := v.Search("NEEDLE").Total; got != 2 {
		t.Fatalf("expected 2 case-insensitive matches, got %d", got)
	}
}

func TestViewerEmptySearchClears(t *testing.T) {
	labels := []Label{{Start: 0, Length: 2, Text: "needle"}}
	v, surface, decorator := newTestViewer(t, []byte("needle"), labels, 1)
	v.Search("needle")
	if diff := cmp.Diff([]int{0}, decorator.labels(ClassSearch)); diff != "" {
		t.Fatalf("label match mismatch (-want +got):\n%s", diff)
	}
	status := v.Search("")
	if status.Total != 0 || status.Index != 0 {
		t.Fatalf("expected 0/0 after clearing, got %+v", status)
	}
	if got := surface.decorated(ClassSearch); len(got) != 0 {
		t.Fatalf("search slots should be cleared, got %v", got)
	}
	if got := decorator.labels(ClassSearch); len(got) != 0 {
		t.Fatalf("label search marks should be cleared, got %v", got)
	}
}

func TestMouseOverByteMarksCoveringLabels(t *testing.T) {
	labels := []Label{
		{Start: 0, Length: 8, Text: "header"},
		{Start: 4, Length: 2, Text: "flags"},
		{Start: 10, Length: 4, Text: "body"},
	}
	v, surface, decorator := newTestViewer(t, sequentialBytes(32), labels, 2)

	v.MouseOverByte(5)
	if diff := cmp.Diff([]int{0, 1}, decorator.labels(ClassHighlighted)); diff != "" {
		t.Fatalf("hovered labels mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{5}, surface.decorated(ClassCursor)); diff != "" {
		t.Fatalf("cursor mismatch (-want +got):\n%s", diff)
	}

	v.MouseOverByte(11)
	if diff := cmp.Diff([]int{2}, decorator.labels(ClassHighlighted)); diff != "" {
		t.Fatalf("hovered labels mismatch (-want +got):\n%s", diff)
	}

	v.MouseOverByte(-1)
	if got := decorator.labels(ClassHighlighted); len(got) != 0 {
		t.Fatalf("leaving should clear label marks, got %v", got)
	}
	if got := surface.decorated(ClassCursor); len(got) != 0 {
		t.Fatalf("leaving should clear the cursor, got %v", got)
	}
}

func TestHoverLabelHighlightsRange(t *testing.T) {
	labels := []Label{{Start: 2, Length: 3, Text: "field"}}
	v, surface, _ := newTestViewer(t, sequentialBytes(32), labels, 2)
	v.HoverLabel(0)
	if diff := cmp.Diff([]int{2, 3, 4}, surface.decorated(ClassHighlighted)); diff != "" {
		t.Fatalf("hover range mismatch (-want +got):\n%s", diff)
	}
	v.UnhoverLabel()
	if got := surface.decorated(ClassHighlighted); len(got) != 0 {
		t.Fatalf("unhover should clear, got %v", got)
	}
}

func TestToggleFocusScrollsAndReleases(t *testing.T) {
	labels := []Label{
		{Start: 200, Length: 20, Text: "far"},
		{Start: 0, Length: 1, Text: "near"},
	}
	v, surface, decorator := newTestViewer(t, sequentialBytes(1024), labels, 2)

	if !v.ToggleFocus(0) {
		t.Fatalf("expected label 0 focused")
	}
	if v.RowOffset() != 12 {
		t.Fatalf("expected row 12, got %d", v.RowOffset())
	}
	if got := len(surface.decorated(ClassFocused)); got != 20 {
		t.Fatalf("expected 20 focused slots, got %d", got)
	}
	if diff := cmp.Diff([]int{0}, decorator.labels(ClassFocused)); diff != "" {
		t.Fatalf("focused label mismatch (-want +got):\n%s", diff)
	}

	if !v.ToggleFocus(1) {
		t.Fatalf("expected label 1 focused")
	}
	if diff := cmp.Diff([]int{1}, decorator.labels(ClassFocused)); diff != "" {
		t.Fatalf("focus should move to label 1 (-want +got):\n%s", diff)
	}
	if v.ToggleFocus(1) {
		t.Fatalf("toggling the focused label should release it")
	}
	if _, ok := v.Focused(); ok {
		t.Fatalf("expected no focus")
	}
	if got := surface.decorated(ClassFocused); len(got) != 0 {
		t.Fatalf("focus slots should be cleared, got %v", got)
	}
}

func TestJumpToSetsCursor(t *testing.T) {
	v, surface, _ := newTestViewer(t, sequentialBytes(1024), nil, 4)
	v.JumpTo(0x123)
	if v.RowOffset() != 0x12 {
		t.Fatalf("expected row 0x12, got %#x", v.RowOffset())
	}
	if diff := cmp.Diff([]int{3}, surface.decorated(ClassCursor)); diff != "" {
		t.Fatalf("cursor mismatch (-want +got):\n%s", diff)
	}
}

func TestViewerSearchWithManyMatches(t *testing.T) {
	v, surface, _ := newTestViewer(t, make([]byte, 4096), nil, 4)

	status := v.Search("00")
	if status.Total != 4096 || status.Index != 1 {
		t.Fatalf("expected 4096 matches at index 1, got %+v", status)
	}
	if got := v.highlights.entryCount(ClassSearch); got != 4096 {
		t.Fatalf("expected one entry per match, got %d", got)
	}
	if got := len(surface.decorated(ClassSearch)); got != v.SlotCount() {
		t.Fatalf("expected every visible slot decorated, got %d of %d", got, v.SlotCount())
	}

	v.ScrollToRow(100)
	if got := len(surface.decorated(ClassSearch)); got != v.SlotCount() {
		t.Fatalf("after scrolling expected %d decorated slots, got %d", v.SlotCount(), got)
	}
}
