package study

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/grandmaster/internal/course"
	"github.com/abhisek/grandmaster/internal/position"
	"github.com/abhisek/grandmaster/internal/ui/components"
	"github.com/abhisek/grandmaster/internal/ui/layout"
	"github.com/abhisek/grandmaster/internal/ui/theme"
)

const boardWidth = boardLeft + 8*cellWidth

func (s *StudyScreen) View(width, height int) string {
	boardBlock := components.ModeBar(s.editing()) + "\n\n" + s.renderBoard()
	if line := s.renderFooterLine(); line != "" {
		boardBlock += "\n\n" + line
	}

	sideWidth := width - boardWidth - 4
	var body string
	if layout.IsCompactWidth(width) && sideWidth < 40 {
		body = lipgloss.JoinVertical(lipgloss.Left, boardBlock, "", s.renderSidebar(width-2))
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(boardWidth+4).Render(boardBlock),
			s.renderSidebar(sideWidth),
		)
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		MaxHeight(height).
		Render(body)
}

// renderFooterLine shows the prompt, confirmation or last status message.
func (s *StudyScreen) renderFooterLine() string {
	switch {
	case s.deleting != nil:
		return theme.Warning.Render(fmt.Sprintf("Delete lesson %q? [y/N]", s.deleting.title))
	case s.prompt != nil:
		return s.prompt.View()
	case s.status != "":
		return theme.Hint.Render(s.status)
	}
	if from, ok := s.ws.Controller.DragOrigin(); ok {
		return theme.Hint.Render("Annotating from " + from + ": press M on the same square to highlight, another to draw an arrow.")
	}
	return ""
}

func (s *StudyScreen) renderSidebar(width int) string {
	if width < 20 {
		width = 20
	}
	section := lipgloss.NewStyle().Width(width)
	var parts []string

	parts = append(parts, section.Render(s.renderLessonHeader()))
	parts = append(parts, section.Render(s.renderStatus()))
	if text, ok := s.ws.Description(); ok {
		parts = append(parts, section.Render(theme.Body.Render(text)))
	}
	if coach := s.renderCoach(); coach != "" {
		parts = append(parts, theme.Card.Width(width).Render(coach))
	}
	if moves := formatMoves(s.ws.Board.History()); moves != "" {
		parts = append(parts, section.Render(theme.Subtitle.Render("Moves: ")+theme.Body.Render(moves)))
	}
	if ann := s.renderAnnotations(); ann != "" {
		parts = append(parts, section.Render(ann))
	}
	parts = append(parts, section.Render(s.renderOutline()))

	return strings.Join(parts, "\n\n")
}

func (s *StudyScreen) renderLessonHeader() string {
	c, ok := s.ws.ActiveCourse()
	if !ok {
		return theme.Hint.Render("No course open.")
	}
	done, total := s.ws.CourseProgress(c.ID)
	head := theme.Title.Render(c.Title) + "\n" + components.NewProgressBar("", done, total, 30).View()
	if l, ok := s.ws.ActiveLesson(); ok {
		head += "\n" + theme.Selected.Render(l.Title)
		if s.ws.Progress.IsCompleted(l.ID) {
			head += " " + theme.Completed.Render("✓")
		}
	} else {
		head += "\n" + theme.Hint.Render("Pick a lesson from the outline (Tab).")
	}
	return head
}

func (s *StudyScreen) renderStatus() string {
	st := s.ws.Board.Status()
	turn := "White to move"
	if st.Turn == position.Black {
		turn = "Black to move"
	}
	line := theme.Body.Render(turn)
	switch {
	case st.IsCheckmate:
		line += "  " + theme.Warning.Render("Checkmate")
	case st.IsDraw:
		line += "  " + theme.Subtitle.Render("Draw")
	case st.IsCheck:
		line += "  " + theme.Warning.Render("Check")
	}
	if s.editing() {
		mode := "legal moves"
		if s.ws.FreePlacement() {
			mode = "free placement"
		}
		line += "\n" + theme.Subtitle.Render("Editing: "+mode)
	}
	return line
}

func (s *StudyScreen) renderCoach() string {
	if s.editing() {
		return ""
	}
	title := theme.Title.Render("Coach")
	switch {
	case s.ws.HintLoading():
		return title + "\n" + s.spinner.View() + " Thinking about this position..."
	case s.ws.Hint() != nil:
		h := s.ws.Hint()
		return title + "\n" +
			theme.Selected.Render("Best move: "+h.SuggestedMove) + "  " +
			theme.Subtitle.Render(h.Evaluation) + "\n" +
			theme.Body.Render(h.Reasoning)
	case s.ws.HintsAvailable():
		return title + "\n" + theme.Hint.Render("Press ? for a suggestion.")
	}
	return ""
}

func (s *StudyScreen) renderAnnotations() string {
	arrows := s.ws.Annotations.Arrows()
	highlights := s.ws.Annotations.Highlights()
	if len(arrows) == 0 && len(highlights) == 0 {
		return ""
	}
	var items []string
	for _, a := range arrows {
		c := theme.AnnotationColor(a.Color, theme.Accent)
		items = append(items, lipgloss.NewStyle().Foreground(c).Render(a.From+"→"+a.To))
	}
	for _, h := range highlights {
		c := theme.AnnotationColor(h.Color, theme.AnnotationColor(course.DefaultHighlightColor, theme.Error))
		items = append(items, lipgloss.NewStyle().Foreground(c).Render("■ "+h.Square))
	}
	return theme.Subtitle.Render("Marks: ") + strings.Join(items, "  ")
}

func (s *StudyScreen) renderOutline() string {
	var b strings.Builder
	b.WriteString(theme.Subtitle.Render("Outline"))
	active := s.ws.Nav.ActiveLessonID()
	for i, e := range s.entries {
		if e.kind == course.KindCourse {
			continue
		}
		b.WriteString("\n")
		cursor := "  "
		if s.focus == focusOutline && i == s.outline.Selected {
			cursor = "▸ "
		}
		switch e.kind {
		case course.KindChapter:
			b.WriteString(theme.Selected.Render(cursor + e.title))
		default:
			mark := "○"
			if s.ws.Progress.IsCompleted(e.id) {
				mark = theme.Completed.Render("✓")
			}
			style := theme.Unselected
			if e.id == active {
				style = theme.Selected
			}
			b.WriteString(cursor + "  " + mark + " " + style.Render(e.title))
		}
	}
	if s.focus == focusOutline && s.outline.Selected == 0 && len(s.entries) > 0 {
		b.WriteString("\n" + theme.Hint.Render("▸ course: "+s.entries[0].title))
	}
	return b.String()
}
