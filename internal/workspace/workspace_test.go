package workspace

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/grandmaster/internal/board"
	"github.com/abhisek/grandmaster/internal/course"
	"github.com/abhisek/grandmaster/internal/hint"
	"github.com/abhisek/grandmaster/internal/llm"
	"github.com/abhisek/grandmaster/internal/position"
	"github.com/abhisek/grandmaster/internal/progress"
)

const (
	starterCourse  = "course-fundamentals"
	starterChapter = "chapter-opening-principles"
	starterLesson  = "lesson-control-the-center"
	afterE4        = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
)

type memSlots struct{ data map[string]string }

func (m *memSlots) Get(_ context.Context, key string) (string, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memSlots) Put(_ context.Context, key, value string) error {
	m.data[key] = value
	return nil
}

func newStarter(t *testing.T) *Workspace {
	t.Helper()
	return New(course.NewLibrary(course.Starter()), progress.NewTracker(), nil, nil)
}

func twoChapterCourse() course.Course {
	return course.Course{
		ID: "course-a", Title: "A",
		Chapters: []course.Chapter{
			{ID: "chapter-1", Title: "1", Lessons: []course.Lesson{
				{ID: "lesson-1", Title: "L1", FEN: position.StartFEN},
				{ID: "lesson-2", Title: "L2", FEN: afterE4, Description: "Answer e4."},
			}},
			{ID: "chapter-2", Title: "2", Lessons: []course.Lesson{
				{ID: "lesson-3", Title: "L3", FEN: position.StartFEN},
			}},
		},
	}
}

func TestSelectLessonLoadsBoard(t *testing.T) {
	w := newStarter(t)
	require.Equal(t, ModePlay, w.Mode())
	require.Equal(t, ViewLibrary, w.View())

	require.True(t, w.OpenCourse(starterCourse))
	require.True(t, w.SelectLesson(starterLesson))

	assert.Equal(t, ViewCourse, w.View())
	assert.Equal(t, afterE4, w.Board.FEN())
	assert.Equal(t, position.Black, w.Board.Turn())
	assert.Equal(t, []course.Arrow{{From: "e2", To: "e4", Color: "gold"}}, w.Annotations.Arrows())
	assert.Empty(t, w.Board.History())

	desc, ok := w.Description()
	assert.True(t, ok)
	assert.Equal(t, "Focus on the center squares to dominate the board early.", desc)
}

func TestSwitchLessonFromLibraryShowsCourse(t *testing.T) {
	w := newStarter(t)
	w.Nav.SetCourse(starterCourse)
	l, _ := w.Library.Lesson(starterLesson)
	w.SwitchLesson(l)
	assert.Equal(t, ViewCourse, w.View())
	assert.Equal(t, starterLesson, w.Nav.ActiveLessonID())
}

func TestPlayModeMoveDoesNotTouchLesson(t *testing.T) {
	w := newStarter(t)
	w.OpenCourse(starterCourse)
	w.SelectLesson(starterLesson)

	require.True(t, w.MakeMove("e7", "e5", ""))
	assert.Len(t, w.Board.History(), 1)

	l, _ := w.Library.Lesson(starterLesson)
	assert.Equal(t, afterE4, l.FEN)
}

func TestEditModeSyncsPositionAndAnnotations(t *testing.T) {
	w := newStarter(t)
	w.OpenCourse(starterCourse)
	w.SelectLesson(starterLesson)
	w.Editor()
	require.Equal(t, ModeEdit, w.Mode())
	require.True(t, w.Controller.Editable)

	require.True(t, w.MakeMove("e7", "e5", ""))
	l, _ := w.Library.Lesson(starterLesson)
	assert.Equal(t, w.Board.FEN(), l.FEN)
	assert.Equal(t, position.White, w.Board.Turn())

	// A secondary drag draws an arrow; a release on the origin highlights.
	w.Controller.PointerDown("d2", board.Secondary)
	w.Controller.PointerUp("d4", board.Secondary)
	w.Controller.PointerDown("d5", board.Secondary)
	w.Controller.PointerUp("d5", board.Secondary)

	l, _ = w.Library.Lesson(starterLesson)
	assert.Equal(t, w.Annotations.Arrows(), l.Arrows)
	assert.Equal(t, []course.Highlight{{Square: "d5", Color: course.DefaultHighlightColor}}, l.Highlights)
	assert.Equal(t, course.Arrow{From: "d2", To: "d4", Color: course.DefaultArrowColor}, l.Arrows[1])
}

func TestIllegalMoveChangesNothing(t *testing.T) {
	w := newStarter(t)
	w.OpenCourse(starterCourse)
	w.SelectLesson(starterLesson)
	w.Editor()

	assert.False(t, w.MakeMove("e7", "e3", ""))
	assert.Empty(t, w.Board.History())
	l, _ := w.Library.Lesson(starterLesson)
	assert.Equal(t, afterE4, l.FEN)
}

func TestFreePlacement(t *testing.T) {
	w := newStarter(t)
	assert.False(t, w.ToggleFreePlacement(), "free placement is edit-only")

	w.OpenCourse(starterCourse)
	w.SelectLesson(starterLesson)
	w.Editor()
	require.True(t, w.ToggleFreePlacement())
	require.True(t, w.FreePlacement())

	require.True(t, w.MakeMove("e1", "e5", ""))
	assert.Empty(t, w.Board.History(), "relocation adds no history")
	last, ok := w.Board.LastMove()
	require.True(t, ok)
	assert.Equal(t, position.LastMove{From: "e1", To: "e5"}, last)

	l, _ := w.Library.Lesson(starterLesson)
	assert.Equal(t, "rnbqkbnr/pppppppp/8/4K3/4P3/8/PPPP1PPP/RNBQ1BNR b kq - 0 1", l.FEN)

	w.Editor()
	assert.False(t, w.FreePlacement(), "entering the editor resets free placement")
}

func TestResetInEditModeSyncs(t *testing.T) {
	w := newStarter(t)
	w.OpenCourse(starterCourse)
	w.SelectLesson(starterLesson)
	w.Editor()
	w.Reset()

	l, _ := w.Library.Lesson(starterLesson)
	assert.Equal(t, position.StartFEN, l.FEN)
	assert.Empty(t, w.Board.History())
}

func TestDeleteActiveLessonClearsDescription(t *testing.T) {
	w := newStarter(t)
	w.OpenCourse(starterCourse)
	w.SelectLesson(starterLesson)
	w.Editor()

	require.True(t, w.DeleteLesson(starterChapter, starterLesson))
	assert.Equal(t, "", w.Nav.ActiveLessonID())
	_, ok := w.Description()
	assert.False(t, ok, "no lesson description after deleting the active lesson")
	_, ok = w.ActiveLesson()
	assert.False(t, ok)
}

func TestDeleteCourseNeedsConfirmation(t *testing.T) {
	w := newStarter(t)
	w.OpenCourse(starterCourse)

	assert.False(t, w.DeleteCourse(starterCourse, false))
	_, ok := w.Library.Course(starterCourse)
	assert.True(t, ok)
	assert.Equal(t, ViewCourse, w.View())

	assert.True(t, w.DeleteCourse(starterCourse, true))
	assert.Equal(t, ViewLibrary, w.View())
	assert.Equal(t, "", w.Nav.CourseID())
	assert.Empty(t, w.Library.Courses())
}

func TestDeleteInactiveCourseKeepsView(t *testing.T) {
	w := New(course.NewLibrary(append(course.Starter(), twoChapterCourse())), progress.NewTracker(), nil, nil)
	w.OpenCourse("course-a")
	require.True(t, w.DeleteCourse(starterCourse, true))
	assert.Equal(t, ViewCourse, w.View())
	assert.Equal(t, "course-a", w.Nav.CourseID())
}

func TestCreateCourseOpensEditor(t *testing.T) {
	w := newStarter(t)
	id := w.CreateCourse()

	assert.Equal(t, course.KindCourse, course.KindOf(id))
	assert.Equal(t, id, w.Nav.CourseID())
	assert.Equal(t, ModeEdit, w.Mode())
	assert.Equal(t, ViewCourse, w.View())

	chID, ok := w.AddChapter()
	require.True(t, ok)
	c, _ := w.ActiveCourse()
	assert.Equal(t, "1. New Chapter", c.Chapters[0].Title)

	lessonID, ok := w.AddLesson(chID, "")
	require.True(t, ok)
	assert.Equal(t, lessonID, w.Nav.ActiveLessonID())
	assert.Equal(t, position.StartFEN, w.Board.FEN())
	assert.Empty(t, w.Annotations.Arrows())
}

func TestAddLessonScopedToActiveCourse(t *testing.T) {
	w := New(course.NewLibrary(append(course.Starter(), twoChapterCourse())), progress.NewTracker(), nil, nil)
	w.OpenCourse("course-a")

	_, ok := w.AddLesson(starterChapter, "")
	assert.False(t, ok, "chapter of another course")
	assert.False(t, w.DeleteLesson(starterChapter, starterLesson))

	id, ok := w.AddLesson("chapter-1", "lesson-1")
	require.True(t, ok)
	ch, _ := w.Library.Chapter("chapter-1")
	assert.Equal(t, id, ch.Lessons[1].ID)
}

func TestAddChapterWithoutCourse(t *testing.T) {
	w := newStarter(t)
	_, ok := w.AddChapter()
	assert.False(t, ok)
}

func TestFinishAndNext(t *testing.T) {
	w := New(course.NewLibrary([]course.Course{twoChapterCourse()}), progress.NewTracker(), nil, nil)
	assert.False(t, w.Finish(), "nothing active")

	w.OpenCourse("course-a")
	w.SelectLesson("lesson-2")
	desc, _ := w.Description()
	assert.Equal(t, "Answer e4.", desc)

	require.True(t, w.Finish())
	assert.True(t, w.Progress.IsCompleted("lesson-2"))
	assert.Equal(t, "lesson-3", w.Nav.ActiveLessonID())

	desc, _ = w.Description()
	assert.Equal(t, DefaultDescription, desc)

	assert.False(t, w.Next(), "last lesson")
	assert.False(t, w.Finish())
	assert.True(t, w.Progress.IsCompleted("lesson-3"))

	done, total := w.CourseProgress("course-a")
	assert.Equal(t, 2, done)
	assert.Equal(t, 3, total)
}

func TestSetDescriptionEditOnly(t *testing.T) {
	w := newStarter(t)
	w.OpenCourse(starterCourse)
	w.SelectLesson(starterLesson)

	assert.False(t, w.SetDescription("nope"))
	w.Editor()
	assert.True(t, w.SetDescription("Take the center with pawns."))
	l, _ := w.Library.Lesson(starterLesson)
	assert.Equal(t, "Take the center with pawns.", l.Description)
}

func TestLearnReturnsToLibrary(t *testing.T) {
	w := newStarter(t)
	w.OpenCourse(starterCourse)
	w.Editor()
	w.Learn()
	assert.Equal(t, ModePlay, w.Mode())
	assert.Equal(t, ViewLibrary, w.View())
	assert.False(t, w.Controller.Editable)
}

func hintResponse(move string) llm.MockResponse {
	b, _ := json.Marshal(hint.Hint{SuggestedMove: move, Reasoning: "Central pawn.", Evaluation: "+0.2"})
	return llm.MockResponse{Content: b}
}

func TestHintFlow(t *testing.T) {
	mock := llm.NewMockProvider(hintResponse("e5"), hintResponse("Nf6"))
	w := New(course.NewLibrary(course.Starter()), progress.NewTracker(), hint.NewRequester(mock, hint.DefaultConfig(), nil), nil)
	w.OpenCourse(starterCourse)
	w.SelectLesson(starterLesson)

	job, ok := w.BeginHint()
	require.True(t, ok)
	assert.Equal(t, afterE4, job.FEN)
	assert.True(t, w.HintLoading())
	_, ok = w.BeginHint()
	assert.False(t, ok, "one request in flight")

	h := w.RunHint(context.Background(), job)
	require.NotNil(t, h)
	require.True(t, w.ResolveHint(job, h))
	assert.Equal(t, "e5", w.Hint().SuggestedMove)

	// A move made while a request is in flight discards its result.
	job, ok = w.BeginHint()
	require.True(t, ok)
	require.True(t, w.MakeMove("e7", "e5", ""))
	assert.Nil(t, w.Hint(), "a real move clears the shown hint")
	h = w.RunHint(context.Background(), job)
	assert.False(t, w.ResolveHint(job, h))
	assert.Nil(t, w.Hint())
	assert.False(t, w.HintLoading())
}

func TestHintsUnavailable(t *testing.T) {
	w := newStarter(t)
	_, ok := w.BeginHint()
	assert.False(t, ok, "no provider")

	mock := llm.NewMockProvider(hintResponse("e5"))
	w = New(course.NewLibrary(course.Starter()), progress.NewTracker(), hint.NewRequester(mock, hint.DefaultConfig(), nil), nil)
	w.Editor()
	_, ok = w.BeginHint()
	assert.False(t, ok, "edit mode")

	w.Learn()
	require.NoError(t, w.Board.Load("rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"))
	_, ok = w.BeginHint()
	assert.False(t, ok, "game over")
}

func TestOpenPersists(t *testing.T) {
	slots := &memSlots{data: map[string]string{}}
	ctx := context.Background()

	w := Open(ctx, slots, nil, nil)
	w.OpenCourse(starterCourse)
	w.SelectLesson(starterLesson)
	w.Editor()
	w.Rename(starterLesson, "Center Control")
	w.Learn()
	w.OpenCourse(starterCourse)
	w.SelectLesson(starterLesson)
	w.Finish()

	reopened := Open(ctx, slots, nil, nil)
	l, ok := reopened.Library.Lesson(starterLesson)
	require.True(t, ok)
	assert.Equal(t, "Center Control", l.Title)
	assert.True(t, reopened.Progress.IsCompleted(starterLesson))
}

func TestUnreadableLessonFallsBackToStart(t *testing.T) {
	c := twoChapterCourse()
	c.Chapters[0].Lessons[0].FEN = "not a fen"
	w := New(course.NewLibrary([]course.Course{c}), progress.NewTracker(), nil, nil)
	w.OpenCourse("course-a")
	require.True(t, w.SelectLesson("lesson-1"))
	assert.Equal(t, position.StartFEN, w.Board.FEN())
	assert.Equal(t, "lesson-1", w.Nav.ActiveLessonID())
}
