package course

import (
	"strings"

	"github.com/google/uuid"
)

// Kind identifies which level of the content tree an id belongs to.
type Kind string

const (
	KindCourse  Kind = "course"
	KindChapter Kind = "chapter"
	KindLesson  Kind = "lesson"

	// KindUnscoped marks ids without a kind prefix, such as ids written by
	// older versions of the course data.
	KindUnscoped Kind = ""
)

// NewID returns a fresh id of the given kind, e.g. "lesson-<uuid>".
func NewID(k Kind) string {
	return string(k) + "-" + uuid.NewString()
}

// KindOf recovers the kind from an id prefix.
func KindOf(id string) Kind {
	for _, k := range []Kind{KindCourse, KindChapter, KindLesson} {
		if strings.HasPrefix(id, string(k)+"-") {
			return k
		}
	}
	return KindUnscoped
}

// matches reports whether an id may refer to an entity of kind k.
func matches(id string, k Kind) bool {
	kind := KindOf(id)
	return kind == KindUnscoped || kind == k
}
