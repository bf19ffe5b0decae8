package dump

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Label is a host-supplied annotation over the byte range [Start, Start+Length).
type Label struct {
	Start  int
	Length int
	Text   string
	// Depth is the nesting level of the label in the host's tree, used only
	// for presentation.
	Depth int
}

// End returns the exclusive end offset of the label.
func (l Label) End() int {
	return l.Start + l.Length
}

// Covers reports whether offset lies inside the label's range.
func (l Label) Covers(offset int) bool {
	return offset >= l.Start && offset < l.End()
}

// LabelSet is the immutable label index queried by the cache and search.
// Labels keep the order they were supplied in; indices into the set are the
// handles used everywhere else.
type LabelSet struct {
	labels  []Label
	byStart []int // label indices sorted by Start
	folded  []string
	caser   cases.Caser
}

// NewLabelSet indexes labels against a buffer of size n. Labels that start
// outside the buffer are kept but never cover anything; lengths running past
// the end are truncated.
func NewLabelSet(labels []Label, n int) *LabelSet {
	s := &LabelSet{
		labels: make([]Label, len(labels)),
		caser:  cases.Fold(),
	}
	copy(s.labels, labels)
	for i := range s.labels {
		l := &s.labels[i]
		if l.Start < 0 || l.Start > n {
			l.Length = 0
		}
		if l.Length < 0 {
			l.Length = 0
		}
		if l.Start >= 0 && l.End() > n {
			l.Length = n - l.Start
		}
	}

	s.byStart = make([]int, len(s.labels))
	for i := range s.byStart {
		s.byStart[i] = i
	}
	sort.SliceStable(s.byStart, func(a, b int) bool {
		return s.labels[s.byStart[a]].Start < s.labels[s.byStart[b]].Start
	})

	s.folded = make([]string, len(s.labels))
	for i, l := range s.labels {
		s.folded[i] = s.caser.String(l.Text)
	}
	return s
}

// Len returns the number of labels.
func (s *LabelSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.labels)
}

// At returns the label with index i.
func (s *LabelSet) At(i int) Label {
	return s.labels[i]
}

// Covering returns, in ascending index order, the labels whose range
// contains offset.
func (s *LabelSet) Covering(offset int) []int {
	if s.Len() == 0 {
		return nil
	}
	// Only labels starting at or before offset can cover it.
	limit := sort.Search(len(s.byStart), func(i int) bool {
		return s.labels[s.byStart[i]].Start > offset
	})
	var out []int
	for _, idx := range s.byStart[:limit] {
		if s.labels[idx].Covers(offset) {
			out = append(out, idx)
		}
	}
	sort.Ints(out)
	return out
}

// MatchText returns the labels whose text contains query, compared with
// Unicode case folding.
func (s *LabelSet) MatchText(query string) []int {
	if s.Len() == 0 || query == "" {
		return nil
	}
	needle := s.caser.String(query)
	var out []int
	for i, text := range s.folded {
		if strings.Contains(text, needle) {
			out = append(out, i)
		}
	}
	return out
}
