// Package study is the board screen: play through lessons with the coach,
// or author them in the editor.
package study

import (
	"context"
	"strings"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grandmaster/internal/board"
	"github.com/abhisek/grandmaster/internal/course"
	"github.com/abhisek/grandmaster/internal/hint"
	"github.com/abhisek/grandmaster/internal/router"
	"github.com/abhisek/grandmaster/internal/screen"
	"github.com/abhisek/grandmaster/internal/ui/components"
	"github.com/abhisek/grandmaster/internal/ui/layout"
	"github.com/abhisek/grandmaster/internal/ui/theme"
	"github.com/abhisek/grandmaster/internal/workspace"
)

type focus int

const (
	focusBoard focus = iota
	focusOutline
)

type promptTarget int

const (
	promptRename promptTarget = iota
	promptDescription
)

// HintResultMsg carries a finished coach request back to the update loop.
// The root model resolves it through ResolveHint whichever screen is on
// top, so leaving the board never strands the request.
type HintResultMsg struct {
	Job  workspace.HintJob
	Hint *hint.Hint
}

// HintResolvedMsg reports an applied coach result to the active screen.
type HintResolvedMsg struct {
	Failed bool
}

// ResolveHint applies msg to ws and returns the message for the active
// screen.
func ResolveHint(ws *workspace.Workspace, msg HintResultMsg) HintResolvedMsg {
	accepted := ws.ResolveHint(msg.Job, msg.Hint)
	return HintResolvedMsg{Failed: accepted && msg.Hint == nil}
}

// entry is one row of the course outline.
type entry struct {
	kind      course.Kind
	id        string
	chapterID string
	title     string
}

// StudyScreen shows the board for the active course.
type StudyScreen struct {
	ctx context.Context
	ws  *workspace.Workspace

	cursorRow, cursorCol int
	focus                focus

	outline components.Menu
	entries []entry

	spinner spinner.Model

	prompt    *components.Prompt
	promptFor promptTarget
	promptID  string

	deleting *entry
	status   string
}

var _ screen.Screen = (*StudyScreen)(nil)
var _ screen.KeyHintProvider = (*StudyScreen)(nil)
var _ screen.InputCapturer = (*StudyScreen)(nil)

// New creates the board screen over ws.
func New(ctx context.Context, ws *workspace.Workspace) *StudyScreen {
	s := &StudyScreen{
		ctx:       ctx,
		ws:        ws,
		cursorRow: 6,
		cursorCol: 4,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.Accent)),
		),
	}
	s.syncOutline()
	return s
}

func (s *StudyScreen) Init() tea.Cmd {
	return nil
}

func (s *StudyScreen) Title() string {
	if c, ok := s.ws.ActiveCourse(); ok {
		return c.Title
	}
	return "Board"
}

// CapturingInput reports whether esc belongs to this screen: it closes a
// prompt or confirmation, or drops the selection and drag.
func (s *StudyScreen) CapturingInput() bool {
	if s.prompt != nil || s.deleting != nil {
		return true
	}
	_, selected := s.ws.Controller.Selected()
	_, dragging := s.ws.Controller.DragOrigin()
	return selected || dragging
}

func (s *StudyScreen) editing() bool {
	return s.ws.Mode() == workspace.ModeEdit
}

func (s *StudyScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.deleting != nil:
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	case s.prompt != nil:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	case s.focus == focusOutline && s.editing():
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Open"},
			{Key: "A", Description: "Add lesson"},
			{Key: "C", Description: "Add chapter"},
			{Key: "R", Description: "Rename"},
			{Key: "X", Description: "Delete"},
			{Key: "Tab", Description: "Board"},
		}
	case s.focus == focusOutline:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Open"},
			{Key: "Tab", Description: "Board"},
			{Key: "Esc", Description: "Library"},
		}
	case s.editing():
		return []layout.KeyHint{
			{Key: "Arrows", Description: "Cursor"},
			{Key: "Space", Description: "Select/Move"},
			{Key: "M", Description: "Arrow/Highlight"},
			{Key: "F", Description: "Free placement"},
			{Key: "D", Description: "Description"},
			{Key: "Tab", Description: "Outline"},
			{Key: "L", Description: "Learn"},
		}
	}
	return []layout.KeyHint{
		{Key: "Arrows", Description: "Cursor"},
		{Key: "Space", Description: "Select/Move"},
		{Key: "?", Description: "Coach"},
		{Key: "F", Description: "Finish"},
		{Key: "N", Description: "Next"},
		{Key: "R", Description: "Reset"},
		{Key: "Tab", Description: "Outline"},
		{Key: "E", Description: "Editor"},
	}
}

// syncOutline rebuilds the outline from the active course, keeping the
// cursor on the same entry when it still exists.
func (s *StudyScreen) syncOutline() {
	var prev string
	if s.outline.Selected >= 0 && s.outline.Selected < len(s.entries) {
		prev = s.entries[s.outline.Selected].id
	}

	s.entries = s.entries[:0]
	c, ok := s.ws.ActiveCourse()
	if ok {
		s.entries = append(s.entries, entry{kind: course.KindCourse, id: c.ID, title: c.Title})
		for _, ch := range c.Chapters {
			s.entries = append(s.entries, entry{kind: course.KindChapter, id: ch.ID, chapterID: ch.ID, title: ch.Title})
			for _, l := range ch.Lessons {
				s.entries = append(s.entries, entry{kind: course.KindLesson, id: l.ID, chapterID: ch.ID, title: l.Title})
			}
		}
	}

	items := make([]components.MenuItem, len(s.entries))
	for i, e := range s.entries {
		e := e
		items[i] = components.MenuItem{Label: e.title}
		if e.kind == course.KindLesson {
			items[i].Action = func() tea.Cmd {
				if s.ws.SelectLesson(e.id) {
					s.focus = focusBoard
					s.status = ""
				}
				return nil
			}
		}
	}
	s.outline = components.NewMenu(items)

	want := prev
	if want == "" {
		want = s.ws.Nav.ActiveLessonID()
	}
	for i, e := range s.entries {
		if e.id == want {
			s.outline.Selected = i
			break
		}
	}
}

func (s *StudyScreen) selectedEntry() (entry, bool) {
	if s.outline.Selected < 0 || s.outline.Selected >= len(s.entries) {
		return entry{}, false
	}
	return s.entries[s.outline.Selected], true
}

func (s *StudyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case HintResolvedMsg:
		if msg.Failed {
			s.status = "The coach could not answer. Try again."
		}
		return s, nil

	case spinner.TickMsg:
		if !s.ws.HintLoading() {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.MouseClickMsg:
		s.handleMouseDown(msg.Mouse())
		return s, nil

	case tea.MouseReleaseMsg:
		s.handleMouseUp(msg.Mouse())
		return s, nil
	}

	if s.prompt != nil {
		return s.updatePrompt(msg)
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	if s.deleting != nil {
		switch strings.ToLower(kmsg.String()) {
		case "y":
			s.ws.DeleteLesson(s.deleting.chapterID, s.deleting.id)
			s.deleting = nil
			s.syncOutline()
		case "n", "esc":
			s.deleting = nil
		}
		return s, nil
	}

	switch kmsg.String() {
	case "tab":
		if s.focus == focusBoard {
			s.focus = focusOutline
			s.syncOutline()
		} else {
			s.focus = focusBoard
		}
		return s, nil
	case "esc":
		s.ws.Controller.Reset()
		return s, nil
	case "L":
		s.ws.Learn()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "E":
		s.ws.Editor()
		s.syncOutline()
		return s, nil
	}

	if s.focus == focusOutline {
		return s.updateOutline(kmsg)
	}
	return s.updateBoard(kmsg)
}

func (s *StudyScreen) updateBoard(kmsg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	s.status = ""
	switch kmsg.String() {
	case "up", "k":
		s.moveCursor(-1, 0)
	case "down", "j":
		s.moveCursor(1, 0)
	case "left", "h":
		s.moveCursor(0, -1)
	case "right", "l":
		s.moveCursor(0, 1)
	case "enter", "space", " ":
		s.ws.Controller.Click(s.cursorSquare(), board.Primary)
	case "m":
		sq := s.cursorSquare()
		if _, dragging := s.ws.Controller.DragOrigin(); dragging {
			s.ws.Controller.PointerUp(sq, board.Secondary)
		} else {
			s.ws.Controller.PointerDown(sq, board.Secondary)
		}
	case "r":
		s.ws.Reset()
	case "f":
		if s.editing() {
			if s.ws.ToggleFreePlacement() {
				s.status = "Free placement on: pieces move anywhere."
			} else {
				s.status = "Free placement off."
			}
			return s, nil
		}
		if _, active := s.ws.ActiveLesson(); !active {
			s.status = "Pick a lesson from the outline first."
			return s, nil
		}
		if !s.ws.Finish() {
			s.status = "Lesson complete. That was the last lesson in this course."
		}
		s.syncOutline()
	case "n":
		if !s.ws.Next() {
			s.status = "No next lesson."
		}
		s.syncOutline()
	case "?":
		return s, s.askCoach()
	case "d":
		if !s.editing() {
			return s, nil
		}
		l, active := s.ws.ActiveLesson()
		if !active {
			s.status = "Pick a lesson to describe."
			return s, nil
		}
		return s, s.openPrompt(promptDescription, l.ID, "Description", l.Description)
	}
	return s, nil
}

func (s *StudyScreen) updateOutline(kmsg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	s.status = ""
	e, ok := s.selectedEntry()

	if s.editing() {
		switch kmsg.String() {
		case "a":
			if ok && e.kind != course.KindCourse {
				after := ""
				if e.kind == course.KindLesson {
					after = e.id
				}
				s.ws.AddLesson(e.chapterID, after)
				s.syncOutline()
			} else {
				s.status = "Select a chapter or lesson to add after."
			}
			return s, nil
		case "c":
			if _, added := s.ws.AddChapter(); added {
				s.syncOutline()
			}
			return s, nil
		case "R", "r":
			if ok {
				return s, s.openPrompt(promptRename, e.id, "Title", e.title)
			}
			return s, nil
		case "x":
			if ok && e.kind == course.KindLesson {
				s.deleting = &e
			}
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.outline, cmd = s.outline.Update(kmsg)
	return s, cmd
}

func (s *StudyScreen) openPrompt(target promptTarget, id, label, value string) tea.Cmd {
	p := components.NewPrompt(label, value, 200)
	s.prompt, s.promptFor, s.promptID = &p, target, id
	return p.Init()
}

func (s *StudyScreen) updatePrompt(msg tea.Msg) (screen.Screen, tea.Cmd) {
	p, res, cmd := s.prompt.Update(msg)
	s.prompt = &p
	switch res {
	case components.PromptSubmitted:
		switch s.promptFor {
		case promptRename:
			if v := p.Value(); v != "" {
				s.ws.Rename(s.promptID, v)
			}
		case promptDescription:
			s.ws.SetDescription(p.Value())
		}
		s.prompt = nil
		s.syncOutline()
	case components.PromptCancelled:
		s.prompt = nil
	}
	return s, cmd
}

// askCoach starts a hint request. The provider call runs in a command that
// yields a HintResultMsg.
func (s *StudyScreen) askCoach() tea.Cmd {
	job, ok := s.ws.BeginHint()
	if !ok {
		if !s.ws.HintLoading() {
			s.status = "The coach is unavailable here."
		}
		return nil
	}
	ws, ctx := s.ws, s.ctx
	return tea.Batch(s.spinner.Tick, func() tea.Msg {
		return HintResultMsg{Job: job, Hint: ws.RunHint(ctx, job)}
	})
}

func (s *StudyScreen) handleMouseDown(m tea.Mouse) {
	sq := squareAt(m.X, m.Y-layout.HeaderHeight)
	if sq == "" {
		return
	}
	s.focus = focusBoard
	switch m.Button {
	case tea.MouseLeft:
		s.ws.Controller.Click(sq, board.Primary)
	case tea.MouseRight:
		s.ws.Controller.PointerDown(sq, board.Secondary)
	}
}

func (s *StudyScreen) handleMouseUp(m tea.Mouse) {
	if m.Button != tea.MouseRight {
		return
	}
	sq := squareAt(m.X, m.Y-layout.HeaderHeight)
	if sq == "" {
		s.ws.Controller.CancelDrag()
		return
	}
	s.ws.Controller.PointerUp(sq, board.Secondary)
}
