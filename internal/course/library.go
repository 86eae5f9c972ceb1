package course

import (
	"context"
	"fmt"

	"github.com/abhisek/grandmaster/internal/position"
	"go.uber.org/zap"
)

// Slots is the key/value storage the library persists to.
type Slots interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// Library is the in-memory course tree. Every successful mutation writes the
// whole collection back to its slot; lookups that miss are silent no-ops.
type Library struct {
	courses []Course
	slots   Slots
	logger  *zap.Logger
}

// NewLibrary creates an unpersisted library holding courses.
func NewLibrary(courses []Course) *Library {
	return &Library{courses: courses, logger: zap.NewNop()}
}

// OpenLibrary loads the course collection from slots. Absent or corrupt data
// falls back to the starter course.
func OpenLibrary(ctx context.Context, slots Slots, logger *zap.Logger) *Library {
	if logger == nil {
		logger = zap.NewNop()
	}
	l := &Library{slots: slots, logger: logger}

	raw, ok, err := slots.Get(ctx, SlotKey)
	switch {
	case err != nil:
		logger.Warn("reading courses failed, using starter course", zap.Error(err))
	case !ok:
		logger.Debug("no saved courses, using starter course")
	default:
		courses, err := Decode([]byte(raw))
		if err == nil {
			l.courses = courses
			return l
		}
		logger.Warn("saved courses are corrupt, using starter course", zap.Error(err))
	}

	l.courses = Starter()
	return l
}

// Courses returns a copy of the collection.
func (l *Library) Courses() []Course {
	out := make([]Course, len(l.courses))
	for i, c := range l.courses {
		out[i] = c.Clone()
	}
	return out
}

// Course looks up a course by id.
func (l *Library) Course(id string) (Course, bool) {
	if i := l.courseIndex(id); i >= 0 {
		return l.courses[i].Clone(), true
	}
	return Course{}, false
}

// Chapter looks up a chapter by id across all courses.
func (l *Library) Chapter(id string) (Chapter, bool) {
	if ci, chi := l.chapterIndex(id); ci >= 0 {
		return l.courses[ci].Chapters[chi].Clone(), true
	}
	return Chapter{}, false
}

// Lesson looks up a lesson by id across all courses.
func (l *Library) Lesson(id string) (Lesson, bool) {
	if ci, chi, li := l.lessonIndex(id); ci >= 0 {
		return l.courses[ci].Chapters[chi].Lessons[li].Clone(), true
	}
	return Lesson{}, false
}

// CourseOf returns the id of the course containing the chapter or lesson id.
func (l *Library) CourseOf(id string) (string, bool) {
	if ci, _ := l.chapterIndex(id); ci >= 0 {
		return l.courses[ci].ID, true
	}
	if ci, _, _ := l.lessonIndex(id); ci >= 0 {
		return l.courses[ci].ID, true
	}
	return "", false
}

// CreateCourse appends an empty course and returns its id.
func (l *Library) CreateCourse() string {
	id := NewID(KindCourse)
	l.courses = append(l.courses, Course{
		ID:       id,
		Title:    "Untitled Course",
		Chapters: []Chapter{},
	})
	l.persist()
	return id
}

// Import appends c with fresh ids throughout and returns the new course id.
func (l *Library) Import(c Course) string {
	c = c.Clone()
	c.ID = NewID(KindCourse)
	for i := range c.Chapters {
		c.Chapters[i].ID = NewID(KindChapter)
		for j := range c.Chapters[i].Lessons {
			c.Chapters[i].Lessons[j].ID = NewID(KindLesson)
		}
	}
	if c.Chapters == nil {
		c.Chapters = []Chapter{}
	}
	l.courses = append(l.courses, c)
	l.persist()
	return c.ID
}

// DeleteCourse removes the course. Confirmation is the caller's concern.
func (l *Library) DeleteCourse(id string) bool {
	i := l.courseIndex(id)
	if i < 0 {
		return false
	}
	l.courses = append(l.courses[:i], l.courses[i+1:]...)
	l.persist()
	return true
}

// AddChapter appends "<N>. New Chapter" to the course.
func (l *Library) AddChapter(courseID string) (string, bool) {
	i := l.courseIndex(courseID)
	if i < 0 {
		return "", false
	}
	c := &l.courses[i]
	id := NewID(KindChapter)
	c.Chapters = append(c.Chapters, Chapter{
		ID:      id,
		Title:   fmt.Sprintf("%d. New Chapter", len(c.Chapters)+1),
		Lessons: []Lesson{},
	})
	l.persist()
	return id, true
}

// AddLesson creates a lesson at the standard starting position. It is
// inserted right after afterLessonID when that lesson is in the chapter,
// otherwise appended.
func (l *Library) AddLesson(chapterID, afterLessonID string) (string, bool) {
	ci, chi := l.chapterIndex(chapterID)
	if ci < 0 {
		return "", false
	}
	ch := &l.courses[ci].Chapters[chi]

	lesson := Lesson{
		ID:         NewID(KindLesson),
		Title:      "New Lesson",
		FEN:        position.StartFEN,
		Arrows:     []Arrow{},
		Highlights: []Highlight{},
	}

	at := len(ch.Lessons)
	if afterLessonID != "" {
		for i, existing := range ch.Lessons {
			if existing.ID == afterLessonID {
				at = i + 1
				break
			}
		}
	}

	lessons := make([]Lesson, 0, len(ch.Lessons)+1)
	lessons = append(lessons, ch.Lessons[:at]...)
	lessons = append(lessons, lesson)
	lessons = append(lessons, ch.Lessons[at:]...)
	ch.Lessons = lessons

	l.persist()
	return lesson.ID, true
}

// DeleteLesson removes a lesson from its chapter.
func (l *Library) DeleteLesson(chapterID, lessonID string) bool {
	ci, chi := l.chapterIndex(chapterID)
	if ci < 0 {
		return false
	}
	ch := &l.courses[ci].Chapters[chi]
	for i, lesson := range ch.Lessons {
		if lesson.ID == lessonID {
			ch.Lessons = append(ch.Lessons[:i], ch.Lessons[i+1:]...)
			l.persist()
			return true
		}
	}
	return false
}

// Rename sets the title of the entity named by id. Kind-prefixed ids only
// match their own level; unscoped ids are matched against every level.
func (l *Library) Rename(id, title string) bool {
	changed := false
	for ci := range l.courses {
		c := &l.courses[ci]
		if c.ID == id && matches(id, KindCourse) {
			c.Title = title
			changed = true
		}
		for chi := range c.Chapters {
			ch := &c.Chapters[chi]
			if ch.ID == id && matches(id, KindChapter) {
				ch.Title = title
				changed = true
			}
			for li := range ch.Lessons {
				if ch.Lessons[li].ID == id && matches(id, KindLesson) {
					ch.Lessons[li].Title = title
					changed = true
				}
			}
		}
	}
	if changed {
		l.persist()
	}
	return changed
}

// UpdateLesson applies fn to the stored lesson and persists. The lesson id
// cannot be changed through fn.
func (l *Library) UpdateLesson(id string, fn func(*Lesson)) bool {
	ci, chi, li := l.lessonIndex(id)
	if ci < 0 {
		return false
	}
	lesson := &l.courses[ci].Chapters[chi].Lessons[li]
	fn(lesson)
	lesson.ID = id
	l.persist()
	return true
}

// LessonCount returns the number of lessons in the course.
func (l *Library) LessonCount(courseID string) int {
	c, ok := l.Course(courseID)
	if !ok {
		return 0
	}
	return len(c.Lessons())
}

func (l *Library) courseIndex(id string) int {
	if !matches(id, KindCourse) {
		return -1
	}
	for i, c := range l.courses {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (l *Library) chapterIndex(id string) (int, int) {
	if !matches(id, KindChapter) {
		return -1, -1
	}
	for ci, c := range l.courses {
		for chi, ch := range c.Chapters {
			if ch.ID == id {
				return ci, chi
			}
		}
	}
	return -1, -1
}

func (l *Library) lessonIndex(id string) (int, int, int) {
	if !matches(id, KindLesson) {
		return -1, -1, -1
	}
	for ci, c := range l.courses {
		for chi, ch := range c.Chapters {
			for li, lesson := range ch.Lessons {
				if lesson.ID == id {
					return ci, chi, li
				}
			}
		}
	}
	return -1, -1, -1
}

// persist writes the collection to its slot. Failures are logged and the
// in-memory state stays authoritative.
func (l *Library) persist() {
	if l.slots == nil {
		return
	}
	data, err := Encode(l.courses)
	if err != nil {
		l.logger.Error("encoding courses failed", zap.Error(err))
		return
	}
	if err := l.slots.Put(context.Background(), SlotKey, string(data)); err != nil {
		l.logger.Error("saving courses failed", zap.Error(err))
	}
}
