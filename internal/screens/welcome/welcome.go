// Package welcome is the splash shown at startup.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/grandmaster/internal/router"
	"github.com/abhisek/grandmaster/internal/screen"
	"github.com/abhisek/grandmaster/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	setupEnd     = 800 * time.Millisecond
	totalDur     = 2000 * time.Millisecond
)

type tickMsg time.Time

// WelcomeScreen sets up a back rank piece by piece, then shows the title.
// Any key replaces it with the screen built by next.
type WelcomeScreen struct {
	next         func() screen.Screen
	elapsed      time.Duration
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that hands over to the screen produced by next.
func New(next func() screen.Screen) *WelcomeScreen {
	return &WelcomeScreen{next: next}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.next()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

// piecesShown maps elapsed time onto the eight back rank pieces.
func (w *WelcomeScreen) piecesShown() int {
	return int(w.elapsed * time.Duration(len(backRank)) / setupEnd)
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{renderBackRank(w.piecesShown())}

	if w.elapsed >= setupEnd {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
				Render("Every master was once a beginner."),
		)
	}

	if w.elapsed >= totalDur {
		sections = append(sections,
			"",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("press any key to continue"),
		)
	}

	content := lipgloss.JoinVertical(lipgloss.Center, strings.Join(sections, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
