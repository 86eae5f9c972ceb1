// Package annotation holds the arrows and highlighted squares drawn on the
// active lesson.
package annotation

import "github.com/abhisek/grandmaster/internal/course"

// Model is an append-only set of annotations. Duplicates are allowed; the
// only way to clear it is Replace, used when a different lesson loads.
type Model struct {
	arrows     []course.Arrow
	highlights []course.Highlight
	onChange   func(arrows []course.Arrow, highlights []course.Highlight)
}

// New returns an empty model.
func New() *Model {
	return &Model{}
}

// OnChange registers fn to run after every AddArrow or AddHighlight. fn
// receives copies of the full sets.
func (m *Model) OnChange(fn func(arrows []course.Arrow, highlights []course.Highlight)) {
	m.onChange = fn
}

// AddArrow appends an arrow. An empty color uses the default arrow color.
func (m *Model) AddArrow(from, to, color string) {
	if color == "" {
		color = course.DefaultArrowColor
	}
	m.arrows = append(m.arrows, course.Arrow{From: from, To: to, Color: color})
	m.notify()
}

// AddHighlight appends a highlight. An empty color uses the default
// highlight color.
func (m *Model) AddHighlight(square, color string) {
	if color == "" {
		color = course.DefaultHighlightColor
	}
	m.highlights = append(m.highlights, course.Highlight{Square: square, Color: color})
	m.notify()
}

// Replace swaps both sets wholesale without notifying.
func (m *Model) Replace(arrows []course.Arrow, highlights []course.Highlight) {
	m.arrows = append([]course.Arrow{}, arrows...)
	m.highlights = append([]course.Highlight{}, highlights...)
}

func (m *Model) Arrows() []course.Arrow {
	return append([]course.Arrow{}, m.arrows...)
}

func (m *Model) Highlights() []course.Highlight {
	return append([]course.Highlight{}, m.highlights...)
}

// HighlightAt returns the color of the first highlight on square. Later
// highlights on the same square are kept but not shown.
func (m *Model) HighlightAt(square string) (string, bool) {
	for _, h := range m.highlights {
		if h.Square == square {
			return h.Color, true
		}
	}
	return "", false
}

func (m *Model) notify() {
	if m.onChange != nil {
		m.onChange(m.Arrows(), m.Highlights())
	}
}
