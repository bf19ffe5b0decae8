package dump

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
)

var hexQuery = regexp.MustCompile(`^(0[xX])?([0-9a-fA-F]+)$`)

// Span is a highlighted byte range produced by a search.
type Span struct {
	Offset int
	Length int
}

// SearchResult is the merged outcome of one query.
type SearchResult struct {
	// Offsets are the deduplicated match starts in ascending order.
	Offsets []int
	// Spans are the full ranges to highlight, one per match source.
	Spans []Span
	// Labels are the indices of labels whose text matched.
	Labels []int
}

// Empty reports whether nothing matched.
func (r SearchResult) Empty() bool {
	return len(r.Offsets) == 0
}

// SearchIndex runs queries against a buffer and its labels.
type SearchIndex struct {
	buf    *Buffer
	labels *LabelSet
}

// NewSearchIndex creates a search index. labels may be nil.
func NewSearchIndex(buf *Buffer, labels *LabelSet) *SearchIndex {
	return &SearchIndex{buf: buf, labels: labels}
}

// Search looks for query three ways and merges the results: as label text,
// as literal text (Latin-1 case-insensitive unless caseSensitive), and, when
// the query is a hex literal, as the exact byte sequence it spells. An empty
// query matches nothing.
func (s *SearchIndex) Search(query string, caseSensitive bool) SearchResult {
	var res SearchResult
	if query == "" {
		return res
	}
	seen := make(map[int]struct{})
	add := func(offset, length int) {
		res.Spans = append(res.Spans, Span{Offset: offset, Length: length})
		if _, ok := seen[offset]; !ok {
			seen[offset] = struct{}{}
			res.Offsets = append(res.Offsets, offset)
		}
	}

	for _, idx := range s.labels.MatchText(query) {
		l := s.labels.At(idx)
		res.Labels = append(res.Labels, idx)
		if l.Start >= 0 && l.Start < s.buf.Len() {
			add(l.Start, l.Length)
		}
	}

	literal := literalBytes(query)
	for _, offset := range kmpSearch(s.buf.bytes(), literal, !caseSensitive) {
		add(offset, len(literal))
	}

	if pattern, ok := decodeHexQuery(query); ok {
		for _, offset := range kmpSearch(s.buf.bytes(), pattern, false) {
			add(offset, len(pattern))
		}
	}

	sort.Ints(res.Offsets)
	return res
}

// literalBytes encodes query the way the dump displays bytes, one Latin-1
// character per byte. Queries with characters outside Latin-1 are searched
// as UTF-8.
func literalBytes(query string) []byte {
	if b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(query)); err == nil {
		return b
	}
	return []byte(query)
}

// decodeHexQuery interprets query as a hex literal with an optional 0x
// prefix. An odd digit count is padded with a leading zero nibble.
func decodeHexQuery(query string) ([]byte, bool) {
	m := hexQuery.FindStringSubmatch(query)
	if m == nil {
		return nil, false
	}
	digits := m[2]
	if len(digits)%2 == 1 {
		digits = "0" + digits
	}
	digits = strings.ToLower(digits)
	out := make([]byte, 0, len(digits)/2)
	for i := 0; i < len(digits); i += 2 {
		out = append(out, nibble(digits[i])<<4|nibble(digits[i+1]))
	}
	return out, true
}

func nibble(c byte) byte {
	if c >= 'a' {
		return c - 'a' + 10
	}
	return c - '0'
}

// Matches is the navigable list of match offsets of the last search.
type Matches struct {
	offsets []int
	current int
}

// NewMatches wraps ascending offsets; the first match is current.
func NewMatches(offsets []int) *Matches {
	return &Matches{offsets: offsets}
}

// Len returns the number of matches.
func (m *Matches) Len() int {
	if m == nil {
		return 0
	}
	return len(m.offsets)
}

// Current returns the current match offset.
func (m *Matches) Current() (int, bool) {
	if m.Len() == 0 {
		return 0, false
	}
	return m.offsets[m.current], true
}

// Index returns the 1-based index of the current match, or 0 with no matches.
func (m *Matches) Index() int {
	if m.Len() == 0 {
		return 0
	}
	return m.current + 1
}

// Next advances to the following match, wrapping to the first.
func (m *Matches) Next() (int, bool) {
	if m.Len() == 0 {
		return 0, false
	}
	m.current = (m.current + 1) % len(m.offsets)
	return m.offsets[m.current], true
}

// Prev moves to the preceding match, wrapping to the last.
func (m *Matches) Prev() (int, bool) {
	if m.Len() == 0 {
		return 0, false
	}
	m.current = (m.current - 1 + len(m.offsets)) % len(m.offsets)
	return m.offsets[m.current], true
}
