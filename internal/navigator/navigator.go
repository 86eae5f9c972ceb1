// Package navigator walks the flattened lesson sequence of the active
// course.
package navigator

import "github.com/abhisek/grandmaster/internal/course"

// Source resolves course content.
type Source interface {
	Course(id string) (course.Course, bool)
}

// Switcher loads a lesson onto the board and makes it active.
type Switcher interface {
	SwitchLesson(lesson course.Lesson)
}

// Completer records a completed lesson id.
type Completer interface {
	Complete(id string) bool
}

// Navigator tracks the active course and lesson. The lesson sequence and
// active index are recomputed from Source on every read.
type Navigator struct {
	source    Source
	completer Completer
	switcher  Switcher

	courseID string
	lessonID string
}

// New creates a navigator with nothing active.
func New(source Source, completer Completer, switcher Switcher) *Navigator {
	return &Navigator{source: source, completer: completer, switcher: switcher}
}

// SetSwitcher replaces the lesson switcher.
func (n *Navigator) SetSwitcher(s Switcher) { n.switcher = s }

func (n *Navigator) CourseID() string       { return n.courseID }
func (n *Navigator) ActiveLessonID() string { return n.lessonID }

// SetCourse makes id the active course. The active lesson is kept; it simply
// stops resolving when it belongs to another course.
func (n *Navigator) SetCourse(id string) { n.courseID = id }

// SetActiveLesson marks id as the active lesson without loading it.
func (n *Navigator) SetActiveLesson(id string) { n.lessonID = id }

// ClearCourse drops both the active course and lesson.
func (n *Navigator) ClearCourse() {
	n.courseID = ""
	n.lessonID = ""
}

// ClearLesson drops the active lesson.
func (n *Navigator) ClearLesson() { n.lessonID = "" }

// Course returns the active course.
func (n *Navigator) Course() (course.Course, bool) {
	if n.courseID == "" {
		return course.Course{}, false
	}
	return n.source.Course(n.courseID)
}

// Lessons returns the flattened lesson sequence of the active course.
func (n *Navigator) Lessons() []course.Lesson {
	c, ok := n.Course()
	if !ok {
		return nil
	}
	return c.Lessons()
}

// ActiveLesson returns the active lesson when it is part of the active
// course.
func (n *Navigator) ActiveLesson() (course.Lesson, bool) {
	lessons := n.Lessons()
	if i := indexOf(lessons, n.lessonID); i >= 0 {
		return lessons[i], true
	}
	return course.Lesson{}, false
}

// ActiveIndex returns the position of the active lesson in the flattened
// sequence, or -1.
func (n *Navigator) ActiveIndex() int {
	return indexOf(n.Lessons(), n.lessonID)
}

// HasNext reports whether Next would switch lessons.
func (n *Navigator) HasNext() bool {
	i := n.ActiveIndex()
	return i >= 0 && i < len(n.Lessons())-1
}

// Next switches to the following lesson. It does nothing at the last lesson
// or when no lesson is active.
func (n *Navigator) Next() bool {
	lessons := n.Lessons()
	i := indexOf(lessons, n.lessonID)
	if i < 0 || i >= len(lessons)-1 {
		return false
	}
	n.switchTo(lessons[i+1])
	return true
}

// Finish marks the active lesson completed, then moves to the next one.
func (n *Navigator) Finish() bool {
	if n.lessonID != "" {
		n.completer.Complete(n.lessonID)
	}
	return n.Next()
}

// Select switches to the lesson with id in the active course.
func (n *Navigator) Select(id string) bool {
	lessons := n.Lessons()
	i := indexOf(lessons, id)
	if i < 0 {
		return false
	}
	n.switchTo(lessons[i])
	return true
}

func (n *Navigator) switchTo(l course.Lesson) {
	if n.switcher != nil {
		n.switcher.SwitchLesson(l)
		return
	}
	n.lessonID = l.ID
}

func indexOf(lessons []course.Lesson, id string) int {
	if id == "" {
		return -1
	}
	for i, l := range lessons {
		if l.ID == id {
			return i
		}
	}
	return -1
}
