package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/trailofbits/polyfile/internal/dump"
)

// ClassStyle colors one highlight class. ColorDefault keeps the underlying
// color.
type ClassStyle struct {
	Fg tcell.Color
	Bg tcell.Color
}

func (c ClassStyle) apply(style tcell.Style) tcell.Style {
	if c.Fg != tcell.ColorDefault {
		style = style.Foreground(c.Fg)
	}
	if c.Bg != tcell.ColorDefault {
		style = style.Background(c.Bg)
	}
	return style
}

// ColorTheme defines application colors.
type ColorTheme struct {
	Background      tcell.Color
	Foreground      tcell.Color
	HeaderBg        tcell.Color
	HeaderFg        tcell.Color
	FooterBg        tcell.Color
	FooterFg        tcell.Color
	AddressFg       tcell.Color
	ControlFg       tcell.Color
	LineNumberFg    tcell.Color
	SeparatorFg     tcell.Color
	LabelFg         tcell.Color
	EmptyLabelFg    tcell.Color
	LabelSelectedBg tcell.Color
	LabelSelectedFg tcell.Color
	ErrorFg         tcell.Color

	Classes map[string]ClassStyle
	// order lists class names from lowest to highest precedence.
	order []string
}

// builtinClassOrder ranks the viewer's classes; later entries win.
var builtinClassOrder = []string{
	dump.ClassFocused,
	dump.ClassHighlighted,
	dump.ClassSearch,
	dump.ClassCursor,
}

// GetColorTheme returns the default color scheme.
func GetColorTheme() ColorTheme {
	t := ColorTheme{
		Background:      tcell.ColorDefault,
		Foreground:      tcell.ColorDefault,
		HeaderBg:        tcell.Color236,
		HeaderFg:        tcell.ColorWhite,
		FooterBg:        tcell.ColorDefault,
		FooterFg:        tcell.ColorDefault,
		AddressFg:       tcell.Color33,
		ControlFg:       tcell.Color244,
		LineNumberFg:    tcell.Color242,
		SeparatorFg:     tcell.Color240,
		LabelFg:         tcell.ColorDefault,
		EmptyLabelFg:    tcell.ColorLightSlateGray,
		LabelSelectedBg: tcell.Color33,
		LabelSelectedFg: tcell.ColorWhite,
		ErrorFg:         tcell.ColorRed,
		Classes: map[string]ClassStyle{
			dump.ClassCursor:      {Fg: tcell.GetColor("#ffffff"), Bg: tcell.GetColor("#005fff")},
			dump.ClassHighlighted: {Fg: tcell.ColorDefault, Bg: tcell.GetColor("#5f5f00")},
			dump.ClassSearch:      {Fg: tcell.GetColor("#000000"), Bg: tcell.GetColor("#ffaf00")},
			dump.ClassFocused:     {Fg: tcell.ColorDefault, Bg: tcell.GetColor("#870087")},
		},
	}
	t.order = classOrder(t.Classes)
	return t
}

// WithClassStyles returns a copy of t with classes overridden from "fg:bg"
// specs, as found in the [theme] config section.
func (t ColorTheme) WithClassStyles(specs map[string]string) (ColorTheme, error) {
	classes := make(map[string]ClassStyle, len(t.Classes)+len(specs))
	for name, style := range t.Classes {
		classes[name] = style
	}
	for name, spec := range specs {
		style, err := ParseClassStyle(spec)
		if err != nil {
			return t, fmt.Errorf("theme.%s: %w", name, err)
		}
		classes[name] = style
	}
	t.Classes = classes
	t.order = classOrder(classes)
	return t, nil
}

// ParseClassStyle parses "fg:bg" where either side may be empty. Colors are
// names or #rrggbb as understood by tcell.
func ParseClassStyle(spec string) (ClassStyle, error) {
	fgSpec, bgSpec, ok := strings.Cut(spec, ":")
	if !ok {
		return ClassStyle{}, fmt.Errorf("style %q is not fg:bg", spec)
	}
	fg, err := parseColor(fgSpec)
	if err != nil {
		return ClassStyle{}, err
	}
	bg, err := parseColor(bgSpec)
	if err != nil {
		return ClassStyle{}, err
	}
	return ClassStyle{Fg: fg, Bg: bg}, nil
}

func parseColor(spec string) (tcell.Color, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" || strings.EqualFold(spec, "default") {
		return tcell.ColorDefault, nil
	}
	c := tcell.GetColor(spec)
	if c == tcell.ColorDefault {
		return c, fmt.Errorf("unknown color %q", spec)
	}
	return c, nil
}

// classOrder puts unknown classes below the built-in ones, alphabetically.
func classOrder(classes map[string]ClassStyle) []string {
	builtin := make(map[string]bool, len(builtinClassOrder))
	for _, name := range builtinClassOrder {
		builtin[name] = true
	}
	var extra []string
	for name := range classes {
		if !builtin[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(extra, builtinClassOrder...)
}
