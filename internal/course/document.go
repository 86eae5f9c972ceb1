package course

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// DocumentFormat is the version written into exported course documents.
// Documents with the same major version can be imported.
const DocumentFormat = "v1.0.0"

var (
	// ErrUnsupportedFormat is returned for documents from an incompatible
	// major format version.
	ErrUnsupportedFormat = errors.New("unsupported course document format")

	// ErrInvalidDocument is returned for documents that do not match the
	// course document schema.
	ErrInvalidDocument = errors.New("invalid course document")
)

// Document is the YAML form of a single course used for sharing curricula.
// Ids are not part of the document; imports receive fresh ones.
type Document struct {
	Format string    `yaml:"format" json:"format"`
	Course docCourse `yaml:"course" json:"course"`
}

type docCourse struct {
	Title    string       `yaml:"title" json:"title"`
	Chapters []docChapter `yaml:"chapters" json:"chapters"`
}

type docChapter struct {
	Title   string      `yaml:"title" json:"title"`
	Lessons []docLesson `yaml:"lessons" json:"lessons"`
}

type docLesson struct {
	Title       string      `yaml:"title" json:"title"`
	FEN         string      `yaml:"fen" json:"fen"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Arrows      []Arrow     `yaml:"arrows,omitempty" json:"arrows,omitempty"`
	Highlights  []Highlight `yaml:"highlights,omitempty" json:"highlights,omitempty"`
}

// ExportDocument renders c as a YAML course document.
func ExportDocument(c Course) ([]byte, error) {
	doc := Document{
		Format: DocumentFormat,
		Course: docCourse{Title: c.Title, Chapters: []docChapter{}},
	}
	for _, ch := range c.Chapters {
		dch := docChapter{Title: ch.Title, Lessons: []docLesson{}}
		for _, l := range ch.Lessons {
			dch.Lessons = append(dch.Lessons, docLesson{
				Title:       l.Title,
				FEN:         l.FEN,
				Description: l.Description,
				Arrows:      l.Arrows,
				Highlights:  l.Highlights,
			})
		}
		doc.Course.Chapters = append(doc.Course.Chapters, dch)
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal course document: %w", err)
	}
	return data, nil
}

// ImportDocument parses and validates a YAML course document. The returned
// course carries fresh kind-scoped ids.
func ImportDocument(data []byte) (Course, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Course{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	// Round-trip through JSON so the validator sees plain JSON values.
	jsonBytes, err := json.Marshal(raw)
	if err != nil {
		return Course{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	var parsed any
	if err := json.Unmarshal(jsonBytes, &parsed); err != nil {
		return Course{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	schema, err := documentSchema()
	if err != nil {
		return Course{}, err
	}
	if err := schema.Validate(parsed); err != nil {
		return Course{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}

	var doc Document
	if err := json.Unmarshal(jsonBytes, &doc); err != nil {
		return Course{}, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if !compatible(doc.Format) {
		return Course{}, fmt.Errorf("%w: %q (want %s)", ErrUnsupportedFormat, doc.Format, semver.Major(DocumentFormat))
	}

	c := Course{
		ID:       NewID(KindCourse),
		Title:    doc.Course.Title,
		Chapters: []Chapter{},
	}
	for _, dch := range doc.Course.Chapters {
		ch := Chapter{ID: NewID(KindChapter), Title: dch.Title, Lessons: []Lesson{}}
		for _, dl := range dch.Lessons {
			lesson := Lesson{
				ID:          NewID(KindLesson),
				Title:       dl.Title,
				FEN:         dl.FEN,
				Description: dl.Description,
				Arrows:      []Arrow{},
				Highlights:  []Highlight{},
			}
			for _, a := range dl.Arrows {
				if a.Color == "" {
					a.Color = DefaultArrowColor
				}
				lesson.Arrows = append(lesson.Arrows, a)
			}
			for _, h := range dl.Highlights {
				if h.Color == "" {
					h.Color = DefaultHighlightColor
				}
				lesson.Highlights = append(lesson.Highlights, h)
			}
			ch.Lessons = append(ch.Lessons, lesson)
		}
		c.Chapters = append(c.Chapters, ch)
	}
	return c, nil
}

func compatible(format string) bool {
	if !semver.IsValid(format) {
		return false
	}
	return semver.Major(format) == semver.Major(DocumentFormat)
}

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func documentSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		// The compiler expects parsed JSON values, not Go literals.
		defBytes, err := json.Marshal(documentSchemaDef)
		if err != nil {
			schemaErr = fmt.Errorf("marshal course document schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(defBytes, &def); err != nil {
			schemaErr = fmt.Errorf("parse course document schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const url = "schema://course-document.json"
		if err := c.AddResource(url, def); err != nil {
			schemaErr = fmt.Errorf("add course document schema: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(url)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile course document schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

var squareProp = map[string]any{
	"type":    "string",
	"pattern": "^[a-h][1-8]$",
}

var documentSchemaDef = map[string]any{
	"type":     "object",
	"required": []any{"format", "course"},
	"properties": map[string]any{
		"format": map[string]any{"type": "string"},
		"course": map[string]any{
			"type":     "object",
			"required": []any{"title", "chapters"},
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
				"chapters": map[string]any{
					"type": "array",
					"items": map[string]any{
						"type":     "object",
						"required": []any{"title", "lessons"},
						"properties": map[string]any{
							"title": map[string]any{"type": "string"},
							"lessons": map[string]any{
								"type":  "array",
								"items": lessonSchemaDef,
							},
						},
					},
				},
			},
		},
	},
}

var lessonSchemaDef = map[string]any{
	"type":     "object",
	"required": []any{"title", "fen"},
	"properties": map[string]any{
		"title":       map[string]any{"type": "string"},
		"fen":         map[string]any{"type": "string", "minLength": 1},
		"description": map[string]any{"type": "string"},
		"arrows": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"from", "to"},
				"properties": map[string]any{
					"from":  squareProp,
					"to":    squareProp,
					"color": map[string]any{"type": "string"},
				},
			},
		},
		"highlights": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"square"},
				"properties": map[string]any{
					"square": squareProp,
					"color":  map[string]any{"type": "string"},
				},
			},
		},
	},
}
