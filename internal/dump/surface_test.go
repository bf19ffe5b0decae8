package dump

import "sort"

type fakeSurface struct {
	allocated   int
	visibleRows int
	content     map[int]SlotContent
	decorations map[int]map[string]bool
	rowLabels   map[int]string
	readable    []ReadableLine
	lineDigits  int
	height      int
	decoCalls   int
}

func newFakeSurface(height int) *fakeSurface {
	return &fakeSurface{
		content:     make(map[int]SlotContent),
		decorations: make(map[int]map[string]bool),
		rowLabels:   make(map[int]string),
		height:      height,
	}
}

func (f *fakeSurface) AllocateSlots(n int) {
	if n < f.allocated {
		panic("slot pool shrank")
	}
	f.allocated = n
}

func (f *fakeSurface) SetVisibleRows(rows int) { f.visibleRows = rows }

func (f *fakeSurface) SetSlotContent(slot int, content SlotContent) {
	if slot >= f.allocated {
		panic("slot not allocated")
	}
	f.content[slot] = content
}

func (f *fakeSurface) SetSlotDecoration(slot int, class string, on bool) {
	f.decoCalls++
	set, ok := f.decorations[slot]
	if !ok {
		set = make(map[string]bool)
		f.decorations[slot] = set
	}
	if on {
		set[class] = true
	} else {
		delete(set, class)
	}
}

func (f *fakeSurface) SetRowLabel(row int, text string) { f.rowLabels[row] = text }

func (f *fakeSurface) SetReadableText(lines []ReadableLine, digits int) {
	f.readable = lines
	f.lineDigits = digits
}

func (f *fakeSurface) ViewportHeight() int { return f.height }
func (f *fakeSurface) CellHeight() int { return 1 }

func (f *fakeSurface) decorated(class string) []int {
	var out []int
	for slot, set := range f.decorations {
		if set[class] {
			out = append(out, slot)
		}
	}
	sort.Ints(out)
	return out
}

type fakeDecorator struct {
	classes map[int]map[string]bool
}

func newFakeDecorator() *fakeDecorator {
	return &fakeDecorator{classes: make(map[int]map[string]bool)}
}

func (d *fakeDecorator) SetLabelDecoration(label int, class string, on bool) {
	set, ok := d.classes[label]
	if !ok {
		set = make(map[string]bool)
		d.classes[label] = set
	}
	if on {
		set[class] = true
	} else {
		delete(set, class)
	}
}

func (d *fakeDecorator) labels(class string) []int {
	var out []int
	for label, set := range d.classes {
		if set[class] {
			out = append(out, label)
		}
	}
	sort.Ints(out)
	return out
}

func sequentialBytes(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}
