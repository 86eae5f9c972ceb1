package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/grandmaster/internal/router"
	"github.com/abhisek/grandmaster/internal/screen"
	"github.com/abhisek/grandmaster/internal/screens/library"
	"github.com/abhisek/grandmaster/internal/screens/study"
	"github.com/abhisek/grandmaster/internal/screens/welcome"
	"github.com/abhisek/grandmaster/internal/ui/layout"
	"github.com/abhisek/grandmaster/internal/workspace"
)

// Options holds the dependencies the TUI runs against.
type Options struct {
	Context   context.Context
	Workspace *workspace.Workspace
	Logger    *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	ws     *workspace.Workspace
	logger *zap.Logger
	width  int
	height int
}

// newAppModel creates a new AppModel starting on the splash screen, which
// hands over to the library.
func newAppModel(opts Options) AppModel {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return AppModel{
		router: router.New(welcome.New(func() screen.Screen {
			return library.New(ctx, opts.Workspace)
		})),
		ws:     opts.Workspace,
		logger: logger.Named("app"),
	}
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case study.HintResultMsg:
		// Resolved here so the request finishes even after the board closed.
		return m, m.router.Update(study.ResolveHint(m.ws, msg))

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
				break
			}
			if m.router.Depth() > 1 {
				m.ws.ShowLibrary()
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := m.ws.Mode().String() + " · " + m.ws.View().String()
	if m.ws.FreePlacement() {
		status += " · free"
	}
	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = p.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(m.height))
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	if opts.Workspace == nil {
		return fmt.Errorf("app: workspace is required")
	}
	m := newAppModel(opts)
	m.logger.Info("starting TUI")
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		m.logger.Error("program exited with error", zap.Error(err))
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
