package dump

// Highlight classes used by the viewer. Hosts may use any other name.
const (
	ClassHighlighted = "highlighted"
	ClassCursor      = "cursor"
	ClassSearch      = "searchresult"
	ClassFocused     = "manually-focused"
)

// highlightEntry covers offsets [offset, offset+length). lo and hi record the
// slot span it was last rendered into; lo == hi means off-screen.
type highlightEntry struct {
	offset int
	length int
	lo, hi int
}

type highlightClass struct {
	entries []highlightEntry
	refs    []int  // entries currently mapped onto each slot
	shown   []bool // decoration state last sent to the surface
	touched []int
}

// HighlightManager tracks highlighted offsets per class and keeps slot
// decorations in sync with the window. Reconciliation only visits entries
// whose visible span changed and only calls the surface for slots whose
// membership in a class actually flipped.
type HighlightManager struct {
	surface     SlotDecorator
	classes     map[string]*highlightClass
	names       []string
	windowStart int
	slotCount   int
	allocated   int
}

// NewHighlightManager creates a manager that decorates slots on surface.
func NewHighlightManager(surface SlotDecorator) *HighlightManager {
	return &HighlightManager{
		surface: surface,
		classes: make(map[string]*highlightClass),
	}
}

// SetWindow moves the window to start at windowStart with slotCount visible
// slots and reconciles every class.
func (m *HighlightManager) SetWindow(windowStart, slotCount int) {
	m.windowStart = windowStart
	m.slotCount = slotCount
	m.grow(slotCount)
	m.Reconcile()
}

// Highlight marks length offsets starting at offset with class. With replace
// set, existing entries of the class are removed first. Entries already in
// the class are not revisited; they are in line with the current window.
func (m *HighlightManager) Highlight(offset, length int, class string, replace bool) {
	if replace {
		m.RemoveHighlight(class)
	}
	if length <= 0 {
		return
	}
	c := m.class(class)
	e := highlightEntry{offset: offset, length: length}
	e.lo, e.hi = m.visibleSpan(offset, length)
	m.retain(c, e.lo, e.hi)
	c.entries = append(c.entries, e)
	m.flush(class, c)
}

// Cursor highlights a single offset with the cursor class.
func (m *HighlightManager) Cursor(offset int) {
	m.Highlight(offset, 1, ClassCursor, true)
}

// RemoveHighlight clears every entry of class and undecorates its slots.
func (m *HighlightManager) RemoveHighlight(class string) {
	c, ok := m.classes[class]
	if !ok || len(c.entries) == 0 {
		return
	}
	for i := range c.entries {
		e := &c.entries[i]
		m.release(c, e.lo, e.hi)
		e.lo, e.hi = 0, 0
	}
	c.entries = c.entries[:0]
	m.flush(class, c)
}

// Reconcile brings every class in line with the current window.
func (m *HighlightManager) Reconcile() {
	for _, name := range m.names {
		m.reconcileClass(name, m.classes[name])
	}
}

// entryCount returns the number of entries in class.
func (m *HighlightManager) entryCount(class string) int {
	if c, ok := m.classes[class]; ok {
		return len(c.entries)
	}
	return 0
}

// offsets returns every highlighted offset of class in insertion order.
func (m *HighlightManager) offsets(class string) []int {
	c, ok := m.classes[class]
	if !ok {
		return nil
	}
	var out []int
	for _, e := range c.entries {
		for i := 0; i < e.length; i++ {
			out = append(out, e.offset+i)
		}
	}
	return out
}

// decorated reports whether slot currently carries class.
func (m *HighlightManager) decorated(slot int, class string) bool {
	c, ok := m.classes[class]
	if !ok || slot < 0 || slot >= len(c.shown) {
		return false
	}
	return c.shown[slot]
}

func (m *HighlightManager) class(name string) *highlightClass {
	c, ok := m.classes[name]
	if !ok {
		c = &highlightClass{
			refs:  make([]int, m.allocated),
			shown: make([]bool, m.allocated),
		}
		m.classes[name] = c
		m.names = append(m.names, name)
	}
	return c
}

func (m *HighlightManager) grow(n int) {
	if n <= m.allocated {
		return
	}
	m.allocated = n
	for _, c := range m.classes {
		c.refs = append(c.refs, make([]int, n-len(c.refs))...)
		c.shown = append(c.shown, make([]bool, n-len(c.shown))...)
	}
}

func (m *HighlightManager) reconcileClass(name string, c *highlightClass) {
	for i := range c.entries {
		e := &c.entries[i]
		lo, hi := m.visibleSpan(e.offset, e.length)
		if lo == e.lo && hi == e.hi {
			continue
		}
		m.release(c, e.lo, e.hi)
		m.retain(c, lo, hi)
		e.lo, e.hi = lo, hi
	}
	m.flush(name, c)
}

func (m *HighlightManager) visibleSpan(offset, length int) (int, int) {
	lo := offset - m.windowStart
	hi := lo + length
	if lo < 0 {
		lo = 0
	}
	if hi > m.slotCount {
		hi = m.slotCount
	}
	if lo >= hi {
		return 0, 0
	}
	return lo, hi
}

func (m *HighlightManager) retain(c *highlightClass, lo, hi int) {
	for s := lo; s < hi; s++ {
		c.refs[s]++
		c.touched = append(c.touched, s)
	}
}

func (m *HighlightManager) release(c *highlightClass, lo, hi int) {
	for s := lo; s < hi; s++ {
		c.refs[s]--
		c.touched = append(c.touched, s)
	}
}

// flush sends decoration changes for touched slots whose membership flipped.
func (m *HighlightManager) flush(name string, c *highlightClass) {
	for _, s := range c.touched {
		want := c.refs[s] > 0
		if want == c.shown[s] {
			continue
		}
		c.shown[s] = want
		if m.surface != nil {
			m.surface.SetSlotDecoration(s, name, want)
		}
	}
	c.touched = c.touched[:0]
}
