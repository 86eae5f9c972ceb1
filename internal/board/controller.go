// Package board translates pointer input on the board into moves and
// annotation edits.
package board

import (
	"github.com/abhisek/grandmaster/internal/course"
	"github.com/abhisek/grandmaster/internal/position"
)

// Button discriminates the two pointer buttons. Primary drives selection
// and moves; Secondary drives annotation drawing.
type Button int

const (
	Primary Button = iota
	Secondary
)

// Position is the read-only view of the board the controller needs.
type Position interface {
	PieceAt(square string) (position.Piece, bool)
	Turn() position.Color
	LegalDestinations(square string) []string
}

// Mover submits a move request. It reports whether the move was applied.
type Mover interface {
	MakeMove(from, to string, promotion position.PieceType) bool
}

// Annotator receives annotation gestures.
type Annotator interface {
	DrawArrow(from, to, color string)
	ToggleHighlight(square string)
}

// Controller is the selection and drag state machine for one board.
type Controller struct {
	pos       Position
	mover     Mover
	annotator Annotator

	// Editable lets any piece be selected and any square be a target.
	Editable bool

	selected  string
	targets   []string
	dragStart string
}

// NewController wires a controller to its collaborators.
func NewController(pos Position, mover Mover, annotator Annotator) *Controller {
	return &Controller{pos: pos, mover: mover, annotator: annotator}
}

// Click handles a completed click on square.
func (c *Controller) Click(square string, b Button) {
	if b != Primary || !position.IsSquare(square) {
		return
	}

	if c.selected == square {
		c.clearSelection()
		return
	}

	if p, ok := c.pos.PieceAt(square); ok && (c.Editable || p.Color == c.pos.Turn()) {
		c.selected = square
		c.targets = c.pos.LegalDestinations(square)
		return
	}

	if c.selected == "" {
		return
	}
	if c.Editable || c.IsTarget(square) {
		// The outcome does not matter: selection clears either way.
		c.mover.MakeMove(c.selected, square, position.Queen)
	}
	c.clearSelection()
}

// PointerDown latches square as the drag origin for a secondary press.
func (c *Controller) PointerDown(square string, b Button) {
	if b != Secondary || !position.IsSquare(square) {
		return
	}
	c.dragStart = square
}

// PointerUp completes a secondary drag: the same square toggles a
// highlight, a different square draws an arrow from the origin.
func (c *Controller) PointerUp(square string, b Button) {
	if b != Secondary {
		return
	}
	origin := c.dragStart
	c.dragStart = ""
	if origin == "" || !position.IsSquare(square) {
		return
	}
	if origin == square {
		c.annotator.ToggleHighlight(square)
		return
	}
	c.annotator.DrawArrow(origin, square, course.DefaultArrowColor)
}

// CancelDrag drops a latched drag origin, e.g. when the pointer leaves the
// board.
func (c *Controller) CancelDrag() {
	c.dragStart = ""
}

// Reset clears selection and drag state.
func (c *Controller) Reset() {
	c.clearSelection()
	c.dragStart = ""
}

// Selected returns the selected square, if any.
func (c *Controller) Selected() (string, bool) {
	return c.selected, c.selected != ""
}

// Targets returns the cached legal destinations of the selected piece.
func (c *Controller) Targets() []string {
	return append([]string{}, c.targets...)
}

// IsTarget reports whether square is a cached legal destination.
func (c *Controller) IsTarget(square string) bool {
	for _, t := range c.targets {
		if t == square {
			return true
		}
	}
	return false
}

// DragOrigin returns the latched drag origin, if any.
func (c *Controller) DragOrigin() (string, bool) {
	return c.dragStart, c.dragStart != ""
}

func (c *Controller) clearSelection() {
	c.selected = ""
	c.targets = nil
}
