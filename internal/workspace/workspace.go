// Package workspace holds the application state shared by every screen:
// the content library, progress, the active board and its annotations, and
// the mode/view the user is in. All methods run on the single UI goroutine.
package workspace

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/grandmaster/internal/annotation"
	"github.com/abhisek/grandmaster/internal/board"
	"github.com/abhisek/grandmaster/internal/course"
	"github.com/abhisek/grandmaster/internal/hint"
	"github.com/abhisek/grandmaster/internal/navigator"
	"github.com/abhisek/grandmaster/internal/position"
	"github.com/abhisek/grandmaster/internal/progress"
)

// DefaultDescription is shown for an active lesson without a description.
const DefaultDescription = "Complete the lesson goals to advance."

// Mode selects between studying lessons and authoring them.
type Mode int

const (
	ModePlay Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "play"
}

// View selects the sidebar content.
type View int

const (
	ViewLibrary View = iota
	ViewCourse
)

func (v View) String() string {
	if v == ViewCourse {
		return "course"
	}
	return "library"
}

// Slots is the persistent key/value store backing the library and progress.
type Slots interface {
	course.Slots
}

// Workspace is the application state.
type Workspace struct {
	Library     *course.Library
	Progress    *progress.Tracker
	Board       *position.Adapter
	Annotations *annotation.Model
	Nav         *navigator.Navigator
	Controller  *board.Controller

	hints     hint.Session
	requester *hint.Requester
	logger    *zap.Logger

	mode          Mode
	view          View
	freePlacement bool
}

// New wires a workspace around lib and tracker. requester may be nil, which
// disables hints.
func New(lib *course.Library, tracker *progress.Tracker, requester *hint.Requester, logger *zap.Logger) *Workspace {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := &Workspace{
		Library:     lib,
		Progress:    tracker,
		Board:       position.NewAdapter(nil),
		Annotations: annotation.New(),
		requester:   requester,
		logger:      logger.Named("workspace"),
	}
	w.Nav = navigator.New(lib, tracker, w)
	w.Controller = board.NewController(w.Board, w, w)
	w.Annotations.OnChange(w.syncAnnotations)
	return w
}

// Open loads the library and progress from slots and wires a workspace.
func Open(ctx context.Context, slots Slots, requester *hint.Requester, logger *zap.Logger) *Workspace {
	lib := course.OpenLibrary(ctx, slots, logger)
	tracker := progress.Open(ctx, slots, logger)
	return New(lib, tracker, requester, logger)
}

func (w *Workspace) Mode() Mode { return w.mode }
func (w *Workspace) View() View { return w.view }

// FreePlacement reports whether pieces move without legality checks.
func (w *Workspace) FreePlacement() bool {
	return w.mode == ModeEdit && w.freePlacement
}

// Learn switches to play mode and the library view.
func (w *Workspace) Learn() {
	w.setMode(ModePlay)
	w.view = ViewLibrary
}

// Editor switches to edit mode and the course view with free placement off.
// The active lesson is reloaded so the board mirrors its stored state.
func (w *Workspace) Editor() {
	w.setMode(ModeEdit)
	w.view = ViewCourse
	if l, ok := w.Nav.ActiveLesson(); ok {
		w.SwitchLesson(l)
	}
}

// ShowLibrary returns to the library view.
func (w *Workspace) ShowLibrary() { w.view = ViewLibrary }

// ToggleFreePlacement flips free placement. It only applies in edit mode.
func (w *Workspace) ToggleFreePlacement() bool {
	if w.mode != ModeEdit {
		return false
	}
	w.freePlacement = !w.freePlacement
	return w.freePlacement
}

func (w *Workspace) setMode(m Mode) {
	w.mode = m
	w.freePlacement = false
	w.Controller.Editable = m == ModeEdit
	w.Controller.Reset()
}

// OpenCourse makes id the active course and shows it.
func (w *Workspace) OpenCourse(id string) bool {
	if _, ok := w.Library.Course(id); !ok {
		return false
	}
	w.Nav.SetCourse(id)
	w.view = ViewCourse
	return true
}

// ActiveCourse returns the active course.
func (w *Workspace) ActiveCourse() (course.Course, bool) { return w.Nav.Course() }

// ActiveLesson returns the active lesson.
func (w *Workspace) ActiveLesson() (course.Lesson, bool) { return w.Nav.ActiveLesson() }

// CreateCourse adds an empty course, makes it active and opens it in the
// editor.
func (w *Workspace) CreateCourse() string {
	id := w.Library.CreateCourse()
	w.Nav.SetCourse(id)
	w.view = ViewCourse
	w.setMode(ModeEdit)
	return id
}

// DeleteCourse removes a course once the user confirmed. Deleting the active
// course returns to the library.
func (w *Workspace) DeleteCourse(id string, confirmed bool) bool {
	if !confirmed || !w.Library.DeleteCourse(id) {
		return false
	}
	if w.Nav.CourseID() == id {
		w.Nav.ClearCourse()
		w.view = ViewLibrary
	}
	return true
}

// AddChapter appends a chapter to the active course.
func (w *Workspace) AddChapter() (string, bool) {
	if w.Nav.CourseID() == "" {
		return "", false
	}
	return w.Library.AddChapter(w.Nav.CourseID())
}

// AddLesson inserts a lesson into a chapter of the active course and loads
// it onto the board.
func (w *Workspace) AddLesson(chapterID, afterLessonID string) (string, bool) {
	if !w.inActiveCourse(chapterID) {
		return "", false
	}
	id, ok := w.Library.AddLesson(chapterID, afterLessonID)
	if !ok {
		return "", false
	}
	if l, ok := w.Library.Lesson(id); ok {
		w.SwitchLesson(l)
	}
	return id, true
}

// DeleteLesson removes a lesson from a chapter of the active course. When it
// was active no lesson is active afterwards.
func (w *Workspace) DeleteLesson(chapterID, lessonID string) bool {
	if !w.inActiveCourse(chapterID) || !w.Library.DeleteLesson(chapterID, lessonID) {
		return false
	}
	if w.Nav.ActiveLessonID() == lessonID {
		w.Nav.ClearLesson()
	}
	return true
}

// Rename retitles the course, chapter or lesson identified by id.
func (w *Workspace) Rename(id, title string) bool {
	return w.Library.Rename(id, title)
}

// SetDescription edits the active lesson's description in edit mode.
func (w *Workspace) SetDescription(text string) bool {
	if w.mode != ModeEdit {
		return false
	}
	return w.updateActive(func(l *course.Lesson) { l.Description = text })
}

// Description returns the text shown for the active lesson. The boolean is
// false when no lesson is active.
func (w *Workspace) Description() (string, bool) {
	l, ok := w.Nav.ActiveLesson()
	if !ok {
		return "", false
	}
	if l.Description == "" {
		return DefaultDescription, true
	}
	return l.Description, true
}

// CourseProgress returns completed and total lesson counts for a course.
func (w *Workspace) CourseProgress(courseID string) (done, total int) {
	c, ok := w.Library.Course(courseID)
	if !ok {
		return 0, 0
	}
	lessons := c.Lessons()
	ids := make([]string, len(lessons))
	for i, l := range lessons {
		ids[i] = l.ID
	}
	return w.Progress.CountIn(ids), len(ids)
}

// SelectLesson loads a lesson of the active course.
func (w *Workspace) SelectLesson(id string) bool { return w.Nav.Select(id) }

// Next loads the following lesson.
func (w *Workspace) Next() bool { return w.Nav.Next() }

// Finish completes the active lesson and loads the following one.
func (w *Workspace) Finish() bool {
	if w.Nav.ActiveLessonID() == "" {
		return false
	}
	return w.Nav.Finish()
}

// SwitchLesson loads lesson onto the board and makes it active.
func (w *Workspace) SwitchLesson(l course.Lesson) {
	if err := w.Board.Load(l.FEN); err != nil {
		w.logger.Warn("lesson has an unreadable position, using the start position",
			zap.String("lesson", l.ID), zap.Error(err))
		w.Board.Reset()
	}
	w.Nav.SetActiveLesson(l.ID)
	w.Annotations.Replace(l.Arrows, l.Highlights)
	w.Controller.Reset()
	w.hints.Invalidate()
	if w.view == ViewLibrary {
		w.view = ViewCourse
	}
}

// MakeMove plays a move, or relocates a piece under free placement. In edit
// mode the active lesson's position follows the board.
func (w *Workspace) MakeMove(from, to string, promotion position.PieceType) bool {
	if w.FreePlacement() {
		if !w.Board.Relocate(from, to) {
			return false
		}
	} else if _, ok := w.Board.ApplyMove(from, to, promotion); !ok {
		return false
	}
	w.hints.Invalidate()
	w.syncFEN()
	return true
}

// Reset starts a new standard game on the board.
func (w *Workspace) Reset() {
	w.Board.Reset()
	w.Controller.Reset()
	w.hints.Invalidate()
	w.syncFEN()
}

// DrawArrow adds an arrow annotation.
func (w *Workspace) DrawArrow(from, to, color string) {
	w.Annotations.AddArrow(from, to, color)
}

// ToggleHighlight adds a highlight on square in the default color.
func (w *Workspace) ToggleHighlight(square string) {
	w.Annotations.AddHighlight(square, "")
}

// HintJob is one pending hint request.
type HintJob struct {
	Ticket  hint.Ticket
	FEN     string
	History []string
}

// HintsAvailable reports whether the coach can be asked right now.
func (w *Workspace) HintsAvailable() bool {
	return w.mode == ModePlay && w.requester.Available() &&
		!w.hints.Loading() && !w.Board.Status().IsGameOver
}

// BeginHint starts a hint request for the current position.
func (w *Workspace) BeginHint() (HintJob, bool) {
	if !w.HintsAvailable() {
		return HintJob{}, false
	}
	t, ok := w.hints.Begin()
	if !ok {
		return HintJob{}, false
	}
	return HintJob{Ticket: t, FEN: w.Board.FEN(), History: w.Board.SANHistory()}, true
}

// RunHint performs the request for job. It touches no workspace state and
// may run off the UI goroutine.
func (w *Workspace) RunHint(ctx context.Context, job HintJob) *hint.Hint {
	return w.requester.Request(ctx, job.FEN, job.History)
}

// ResolveHint applies the result of job. Stale results are dropped.
func (w *Workspace) ResolveHint(job HintJob, h *hint.Hint) bool {
	return w.hints.Resolve(job.Ticket, h)
}

// Hint returns the hint shown for the current position.
func (w *Workspace) Hint() *hint.Hint { return w.hints.Current() }

// HintLoading reports whether a hint request is in flight.
func (w *Workspace) HintLoading() bool { return w.hints.Loading() }

func (w *Workspace) syncFEN() {
	if w.mode != ModeEdit {
		return
	}
	fen := w.Board.FEN()
	w.updateActive(func(l *course.Lesson) { l.FEN = fen })
}

func (w *Workspace) syncAnnotations(arrows []course.Arrow, highlights []course.Highlight) {
	if w.mode != ModeEdit {
		return
	}
	w.updateActive(func(l *course.Lesson) {
		l.Arrows = arrows
		l.Highlights = highlights
	})
}

func (w *Workspace) updateActive(fn func(*course.Lesson)) bool {
	if _, ok := w.Nav.ActiveLesson(); !ok {
		return false
	}
	return w.Library.UpdateLesson(w.Nav.ActiveLessonID(), fn)
}

func (w *Workspace) inActiveCourse(chapterID string) bool {
	if w.Nav.CourseID() == "" {
		return false
	}
	owner, ok := w.Library.CourseOf(chapterID)
	return ok && owner == w.Nav.CourseID()
}
