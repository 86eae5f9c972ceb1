package course

import (
	"encoding/json"
	"errors"
	"fmt"
)

// SlotKey is the storage slot holding the serialized course collection.
const SlotKey = "grandmaster_courses_v2"

var errEmptyCollection = errors.New("no course collection stored")

// Encode serializes the full course collection as one JSON blob.
func Encode(courses []Course) ([]byte, error) {
	if courses == nil {
		courses = []Course{}
	}
	data, err := json.Marshal(courses)
	if err != nil {
		return nil, fmt.Errorf("encode courses: %w", err)
	}
	return data, nil
}

// Decode parses a blob written by Encode. A JSON null is treated as no
// stored collection.
func Decode(data []byte) ([]Course, error) {
	var courses []Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}
	if courses == nil {
		return nil, errEmptyCollection
	}
	return courses, nil
}
