package course

// Default annotation colors used when a drawing does not name one.
const (
	DefaultArrowColor     = "#f59e0b"
	DefaultHighlightColor = "red"
)

// Arrow is a drawn arrow between two squares.
type Arrow struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Color string `json:"color" yaml:"color,omitempty"`
}

// Highlight is a colored square.
type Highlight struct {
	Square string `json:"square" yaml:"square"`
	Color  string `json:"color" yaml:"color,omitempty"`
}

// Lesson is one board position with its teaching annotations.
type Lesson struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	FEN         string      `json:"fen"`
	Description string      `json:"description"`
	Arrows      []Arrow     `json:"arrows"`
	Highlights  []Highlight `json:"highlights"`
}

// Chapter is an ordered group of lessons.
type Chapter struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Lessons []Lesson `json:"lessons"`
}

// Course is the top-level unit of curriculum content.
type Course struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Chapters []Chapter `json:"chapters"`
}

// Lessons returns the flattened lesson sequence: chapter order, then lesson
// order within each chapter.
func (c Course) Lessons() []Lesson {
	var out []Lesson
	for _, ch := range c.Chapters {
		out = append(out, ch.Lessons...)
	}
	return out
}

// Clone returns a deep copy of the lesson.
func (l Lesson) Clone() Lesson {
	out := l
	if l.Arrows != nil {
		out.Arrows = append([]Arrow{}, l.Arrows...)
	}
	if l.Highlights != nil {
		out.Highlights = append([]Highlight{}, l.Highlights...)
	}
	return out
}

// Clone returns a deep copy of the chapter.
func (ch Chapter) Clone() Chapter {
	out := ch
	if ch.Lessons != nil {
		out.Lessons = make([]Lesson, len(ch.Lessons))
		for i, l := range ch.Lessons {
			out.Lessons[i] = l.Clone()
		}
	}
	return out
}

// Clone returns a deep copy of the course.
func (c Course) Clone() Course {
	out := c
	if c.Chapters != nil {
		out.Chapters = make([]Chapter, len(c.Chapters))
		for i, ch := range c.Chapters {
			out.Chapters[i] = ch.Clone()
		}
	}
	return out
}
