package state

import "unicode"

func isPromptWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func previousWordBoundary(runes []rune, pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}

	i := pos - 1
	for i >= 0 && !isPromptWordChar(runes[i]) {
		i--
	}
	for i >= 0 && isPromptWordChar(runes[i]) {
		i--
	}
	return i + 1
}

func nextWordBoundary(runes []rune, pos int) int {
	if pos >= len(runes) {
		return len(runes)
	}
	if pos < 0 {
		pos = 0
	}

	i := pos
	for i < len(runes) && !isPromptWordChar(runes[i]) {
		i++
	}
	for i < len(runes) && isPromptWordChar(runes[i]) {
		i++
	}
	return i
}

func (p *Prompt) clampedCursor(runes []rune) int {
	cursor := p.Cursor
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	return cursor
}

// Insert adds ch at the cursor.
func (p *Prompt) Insert(ch rune) {
	runes := []rune(p.Text)
	cursor := p.clampedCursor(runes)

	buffer := make([]rune, 0, len(runes)+1)
	buffer = append(buffer, runes[:cursor]...)
	buffer = append(buffer, ch)
	buffer = append(buffer, runes[cursor:]...)

	p.Text = string(buffer)
	p.Cursor = cursor + 1
}

// Backspace removes the rune before the cursor.
func (p *Prompt) Backspace() {
	runes := []rune(p.Text)
	cursor := p.clampedCursor(runes)
	if cursor == 0 {
		return
	}
	buffer := append([]rune{}, runes[:cursor-1]...)
	buffer = append(buffer, runes[cursor:]...)
	p.Text = string(buffer)
	p.Cursor = cursor - 1
}

// Delete removes the rune under the cursor.
func (p *Prompt) Delete() {
	runes := []rune(p.Text)
	cursor := p.clampedCursor(runes)
	if cursor >= len(runes) {
		return
	}
	buffer := append([]rune{}, runes[:cursor]...)
	buffer = append(buffer, runes[cursor+1:]...)
	p.Text = string(buffer)
	p.Cursor = cursor
}

// DeleteWord removes the word before the cursor.
func (p *Prompt) DeleteWord() {
	runes := []rune(p.Text)
	cursor := p.clampedCursor(runes)
	if cursor == 0 {
		return
	}
	start := previousWordBoundary(runes, cursor)
	buffer := append([]rune{}, runes[:start]...)
	buffer = append(buffer, runes[cursor:]...)
	p.Text = string(buffer)
	p.Cursor = start
}

// Move repositions the cursor.
func (p *Prompt) Move(direction string) {
	runes := []rune(p.Text)
	switch direction {
	case "left":
		if p.Cursor > 0 {
			p.Cursor--
		}
	case "right":
		if p.Cursor < len(runes) {
			p.Cursor++
		}
	case "word-left":
		p.Cursor = previousWordBoundary(runes, p.Cursor)
	case "word-right":
		p.Cursor = nextWordBoundary(runes, p.Cursor)
	case "home":
		p.Cursor = 0
	case "end":
		p.Cursor = len(runes)
	}
}

// Reset replaces the prompt text and puts the cursor at its end.
func (p *Prompt) Reset(text string) {
	p.Text = text
	p.Cursor = len([]rune(text))
}
