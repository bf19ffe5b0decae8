package dump

// Options configures a Viewer.
type Options struct {
	// CacheCapacity bounds the label cache; 0 selects DefaultCacheCapacity.
	CacheCapacity int
	// CaseSensitive makes literal text search compare bytes exactly.
	CaseSensitive bool
}

// SearchStatus describes the position in the current match list. Index is
// 1-based and zero when there are no matches.
type SearchStatus struct {
	Query string
	Index int
	Total int
}

// Viewer is one independent viewer instance: a viewport over a buffer plus
// search state and label cross-highlighting.
type Viewer struct {
	*Viewport

	labels    *LabelSet
	search    *SearchIndex
	decorator LabelDecorator

	caseSensitive bool
	query         string
	matches       *Matches

	// labelClasses records which labels the host was told to decorate with
	// each class, so they can be undecorated later.
	labelClasses map[string][]int
	focused      int
}

// New creates a viewer. labels and decorator may be nil. The viewer renders
// nothing until Resize or Fit is called.
func New(buf *Buffer, labels *LabelSet, surface Surface, decorator LabelDecorator, opts Options) *Viewer {
	if labels == nil {
		labels = NewLabelSet(nil, buf.Len())
	}
	cache := NewLabelCache(labels, opts.CacheCapacity)
	return &Viewer{
		Viewport:      newViewport(buf, cache, surface),
		labels:        labels,
		search:        NewSearchIndex(buf, labels),
		decorator:     decorator,
		caseSensitive: opts.CaseSensitive,
		matches:       NewMatches(nil),
		labelClasses:  make(map[string][]int),
		focused:       -1,
	}
}

// Labels returns the label set.
func (v *Viewer) Labels() *LabelSet { return v.labels }

// SetCaseSensitive changes literal matching for subsequent searches.
func (v *Viewer) SetCaseSensitive(on bool) { v.caseSensitive = on }

// Search replaces the current search with query. Every match is highlighted
// with ClassSearch and the window scrolls to the first match. An empty query
// only clears the previous results.
func (v *Viewer) Search(query string) SearchStatus {
	v.highlights.RemoveHighlight(ClassSearch)
	v.decorateLabels(ClassSearch, nil)
	v.query = query
	v.matches = NewMatches(nil)
	if query == "" {
		return v.SearchStatus()
	}

	res := v.search.Search(query, v.caseSensitive)
	for _, sp := range res.Spans {
		v.highlights.Highlight(sp.Offset, sp.Length, ClassSearch, false)
	}
	v.decorateLabels(ClassSearch, res.Labels)
	v.matches = NewMatches(res.Offsets)
	if offset, ok := v.matches.Current(); ok {
		v.ScrollToByte(offset)
	}
	return v.SearchStatus()
}

// SearchForward moves to the next match, wrapping around.
func (v *Viewer) SearchForward() SearchStatus {
	if offset, ok := v.matches.Next(); ok {
		v.ScrollToByte(offset)
	}
	return v.SearchStatus()
}

// SearchBackward moves to the previous match, wrapping around.
func (v *Viewer) SearchBackward() SearchStatus {
	if offset, ok := v.matches.Prev(); ok {
		v.ScrollToByte(offset)
	}
	return v.SearchStatus()
}

// SearchStatus reports the current match position.
func (v *Viewer) SearchStatus() SearchStatus {
	return SearchStatus{Query: v.query, Index: v.matches.Index(), Total: v.matches.Len()}
}

// MouseOverByte puts the cursor on offset and marks the labels covering it.
// Offsets outside the buffer behave like MouseLeave.
func (v *Viewer) MouseOverByte(offset int) {
	if offset < 0 || offset >= v.buf.Len() {
		v.MouseLeave()
		return
	}
	v.highlights.Cursor(offset)
	v.decorateLabels(ClassHighlighted, v.cache.LabelsForByte(offset))
}

// MouseLeave removes the cursor and the label marks set by MouseOverByte.
func (v *Viewer) MouseLeave() {
	v.highlights.RemoveHighlight(ClassCursor)
	v.decorateLabels(ClassHighlighted, nil)
}

// HoverLabel highlights the byte range of label i.
func (v *Viewer) HoverLabel(i int) {
	if i < 0 || i >= v.labels.Len() {
		v.UnhoverLabel()
		return
	}
	l := v.labels.At(i)
	v.highlights.Highlight(l.Start, l.Length, ClassHighlighted, true)
}

// UnhoverLabel removes the highlight set by HoverLabel.
func (v *Viewer) UnhoverLabel() {
	v.highlights.RemoveHighlight(ClassHighlighted)
}

// ToggleFocus pins label i with ClassFocused and scrolls to it. Toggling the
// already focused label releases it. It reports whether a label is focused
// afterwards.
func (v *Viewer) ToggleFocus(i int) bool {
	if i < 0 || i >= v.labels.Len() {
		return v.focused >= 0
	}
	if i == v.focused {
		v.ClearFocus()
		return false
	}
	l := v.labels.At(i)
	v.focused = i
	v.highlights.Highlight(l.Start, l.Length, ClassFocused, true)
	v.decorateLabels(ClassFocused, []int{i})
	v.ScrollToByte(l.Start)
	return true
}

// ClearFocus releases the focused label, if any.
func (v *Viewer) ClearFocus() {
	v.focused = -1
	v.highlights.RemoveHighlight(ClassFocused)
	v.decorateLabels(ClassFocused, nil)
}

// Focused returns the focused label.
func (v *Viewer) Focused() (int, bool) {
	return v.focused, v.focused >= 0
}

// JumpTo scrolls to offset and puts the cursor there.
func (v *Viewer) JumpTo(offset int) {
	v.ScrollToByte(offset)
	if offset >= 0 && offset < v.buf.Len() {
		v.highlights.Cursor(offset)
	}
}

func (v *Viewer) decorateLabels(class string, labels []int) {
	if v.decorator != nil {
		for _, i := range v.labelClasses[class] {
			v.decorator.SetLabelDecoration(i, class, false)
		}
		for _, i := range labels {
			v.decorator.SetLabelDecoration(i, class, true)
		}
	}
	if len(labels) == 0 {
		delete(v.labelClasses, class)
		return
	}
	v.labelClasses[class] = append([]int(nil), labels...)
}
