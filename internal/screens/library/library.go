// Package library is the course list screen: open, create, rename and
// delete courses, with per-course progress.
package library

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grandmaster/internal/router"
	"github.com/abhisek/grandmaster/internal/screen"
	"github.com/abhisek/grandmaster/internal/screens/study"
	"github.com/abhisek/grandmaster/internal/ui/components"
	"github.com/abhisek/grandmaster/internal/ui/layout"
	"github.com/abhisek/grandmaster/internal/ui/theme"
	"github.com/abhisek/grandmaster/internal/workspace"
)

// LibraryScreen lists the courses in the library.
type LibraryScreen struct {
	ctx  context.Context
	ws   *workspace.Workspace
	menu components.Menu
	ids  []string

	prompt     *components.Prompt
	renamingID string
	deletingID string
}

var _ screen.Screen = (*LibraryScreen)(nil)
var _ screen.KeyHintProvider = (*LibraryScreen)(nil)
var _ screen.InputCapturer = (*LibraryScreen)(nil)

// New creates the library screen over ws.
func New(ctx context.Context, ws *workspace.Workspace) *LibraryScreen {
	s := &LibraryScreen{ctx: ctx, ws: ws}
	s.refresh()
	return s
}

func (s *LibraryScreen) Init() tea.Cmd {
	return nil
}

func (s *LibraryScreen) Title() string {
	return "Library"
}

func (s *LibraryScreen) CapturingInput() bool {
	return s.prompt != nil || s.deletingID != ""
}

func (s *LibraryScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.deletingID != "":
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	case s.prompt != nil:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Save"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "N", Description: "New"},
		{Key: "R", Description: "Rename"},
		{Key: "D", Description: "Delete"},
		{Key: "E", Description: "Editor"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// refresh rebuilds the menu from the library, keeping the cursor in range.
func (s *LibraryScreen) refresh() {
	selected := s.menu.Selected
	courses := s.ws.Library.Courses()
	items := make([]components.MenuItem, 0, len(courses))
	s.ids = s.ids[:0]
	for _, c := range courses {
		id := c.ID
		s.ids = append(s.ids, id)
		items = append(items, components.MenuItem{
			Label:  c.Title,
			Action: func() tea.Cmd { return s.open(id, false) },
		})
	}
	s.menu = components.NewMenu(items)
	if selected >= len(items) {
		selected = len(items) - 1
	}
	if selected > 0 {
		s.menu.Selected = selected
	}
}

func (s *LibraryScreen) selectedID() (string, bool) {
	if s.menu.Selected < 0 || s.menu.Selected >= len(s.ids) {
		return "", false
	}
	return s.ids[s.menu.Selected], true
}

// open shows a course on the board screen, in the editor when edit is set.
func (s *LibraryScreen) open(id string, edit bool) tea.Cmd {
	if !s.ws.OpenCourse(id) {
		return nil
	}
	if edit {
		s.ws.Editor()
	}
	next := study.New(s.ctx, s.ws)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *LibraryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	// Courses may have changed on the board screen.
	if len(s.ids) != len(s.ws.Library.Courses()) {
		s.refresh()
	}

	if s.prompt != nil {
		p, res, cmd := s.prompt.Update(msg)
		s.prompt = &p
		switch res {
		case components.PromptSubmitted:
			if v := p.Value(); v != "" {
				s.ws.Rename(s.renamingID, v)
			}
			s.prompt, s.renamingID = nil, ""
			s.refresh()
		case components.PromptCancelled:
			s.prompt, s.renamingID = nil, ""
		}
		return s, cmd
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	if s.deletingID != "" {
		switch strings.ToLower(kmsg.String()) {
		case "y":
			s.ws.DeleteCourse(s.deletingID, true)
			s.deletingID = ""
			s.refresh()
		case "n", "esc":
			s.deletingID = ""
		}
		return s, nil
	}

	switch kmsg.String() {
	case "n", "N":
		s.ws.CreateCourse()
		s.refresh()
		next := study.New(s.ctx, s.ws)
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	case "d", "D":
		if id, ok := s.selectedID(); ok {
			s.deletingID = id
		}
		return s, nil
	case "r", "R":
		if id, ok := s.selectedID(); ok {
			c, _ := s.ws.Library.Course(id)
			p := components.NewPrompt("Course title", c.Title, 80)
			s.prompt, s.renamingID = &p, id
			return s, p.Init()
		}
		return s, nil
	case "e", "E":
		if id, ok := s.selectedID(); ok {
			return s, s.open(id, true)
		}
		return s, nil
	case "l", "L":
		s.ws.Learn()
		return s, nil
	}

	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *LibraryScreen) View(width, height int) string {
	var b strings.Builder
	b.WriteString(components.ModeBar(s.ws.Mode() == workspace.ModeEdit))
	b.WriteString("\n\n")
	b.WriteString(theme.Title.Render("Courses"))
	b.WriteString("\n\n")

	cw := width - 8
	if cw > 90 {
		cw = 90
	}

	courses := s.ws.Library.Courses()
	if len(courses) == 0 {
		b.WriteString(theme.Hint.Render("No courses yet. Press N to create one."))
	}
	for i, c := range courses {
		done, total := s.ws.CourseProgress(c.ID)
		title := c.Title
		style := theme.Unselected
		marker := "  "
		if i == s.menu.Selected {
			style = theme.Selected
			marker = "▸ "
		}
		if c.ID == s.ws.Nav.CourseID() {
			title += "  (current)"
		}
		b.WriteString(style.Render(marker + title))
		b.WriteString("\n    ")
		b.WriteString(components.NewProgressBar("", done, total, cw-4).View())
		b.WriteString("\n")
	}

	switch {
	case s.deletingID != "":
		c, _ := s.ws.Library.Course(s.deletingID)
		b.WriteString("\n")
		b.WriteString(theme.Warning.Render(fmt.Sprintf("Delete course %q? This cannot be undone. [y/N]", c.Title)))
	case s.prompt != nil:
		b.WriteString("\n")
		b.WriteString(s.prompt.View())
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 4).
		Render(b.String())
}
