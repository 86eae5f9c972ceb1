package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/grandmaster/internal/course"
	"github.com/abhisek/grandmaster/internal/hint"
	"github.com/abhisek/grandmaster/internal/llm"
	"github.com/abhisek/grandmaster/internal/position"
	"github.com/abhisek/grandmaster/internal/store"
)

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := confirm(strings.NewReader(tt.input), ""); got != tt.want {
			t.Errorf("confirm(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestHintCourse(t *testing.T) {
	good, _ := json.Marshal(hint.Hint{SuggestedMove: "e4", Reasoning: "Center.", Evaluation: "+0.3"})
	mock := llm.NewMockProvider(
		llm.MockResponse{Content: good},
		llm.MockResponse{Content: good},
	)
	requester := hint.NewRequester(mock, hint.DefaultConfig(), nil)

	c := course.Course{ID: "course-x", Title: "X", Chapters: []course.Chapter{
		{ID: "chapter-1", Title: "1", Lessons: []course.Lesson{
			{ID: "lesson-1", Title: "One", FEN: position.StartFEN},
			{ID: "lesson-2", Title: "Two", FEN: position.StartFEN},
		}},
	}}

	if err := hintCourse(context.Background(), requester, c, 2, nil); err != nil {
		t.Fatalf("hintCourse: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Errorf("calls = %d, want one per lesson", mock.CallCount())
	}
}

func TestHintCourseReportsFailures(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"suggestedMove":""}`)})
	requester := hint.NewRequester(mock, hint.DefaultConfig(), nil)
	c := course.Course{ID: "course-x", Title: "X", Chapters: []course.Chapter{
		{ID: "chapter-1", Title: "1", Lessons: []course.Lesson{{ID: "lesson-1", Title: "One", FEN: position.StartFEN}}},
	}}

	err := hintCourse(context.Background(), requester, c, 1, nil)
	if err == nil || !strings.Contains(err.Error(), "1 of 1") {
		t.Errorf("err = %v", err)
	}
}

func TestAnswerOf(t *testing.T) {
	tests := []struct {
		name string
		ev   store.LLMEvent
		want string
	}{
		{
			name: "hint with evaluation",
			ev: store.LLMEvent{LLMRequestEventData: store.LLMRequestEventData{
				Success: true, ResponseBody: `{"suggestedMove":"Nf3","reasoning":"x","evaluation":"+0.2"}`,
			}},
			want: "Nf3 (+0.2)",
		},
		{
			name: "unparseable answer",
			ev:   store.LLMEvent{LLMRequestEventData: store.LLMRequestEventData{Success: true, ResponseBody: "sure!"}},
			want: "(no move)",
		},
		{
			name: "failed request",
			ev:   store.LLMEvent{LLMRequestEventData: store.LLMRequestEventData{ErrorMessage: "rate limited"}},
			want: "failed: rate limited",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := answerOf(tt.ev); got != tt.want {
				t.Errorf("answerOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrintEvents(t *testing.T) {
	var buf bytes.Buffer
	printEvents(&buf, nil)
	if !strings.Contains(buf.String(), "not been asked") {
		t.Errorf("empty list output = %q", buf.String())
	}

	buf.Reset()
	printEvents(&buf, []store.LLMEvent{{
		ID: 7, Timestamp: time.Now(),
		LLMRequestEventData: store.LLMRequestEventData{Model: "mock", Success: true, ResponseBody: `{"suggestedMove":"e4"}`},
	}})
	out := buf.String()
	for _, want := range []string{"7", "mock", "e4"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintUsage(t *testing.T) {
	var buf bytes.Buffer
	printUsage(&buf,
		[]store.LLMUsage{{Purpose: "hint", Calls: 2, InputTokens: 1_000_000, OutputTokens: 500_000}},
		[]store.LLMUsage{
			{Model: "gemini-3-pro-preview", Calls: 2, InputTokens: 1_000_000, OutputTokens: 500_000},
			{Model: "homebrew", Calls: 1},
		})
	out := buf.String()
	for _, want := range []string{"hint: 2 calls", "$8.00", "No pricing for: homebrew"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatCost(t *testing.T) {
	if got := formatCost(0.004); got != "$0.0040" {
		t.Errorf("formatCost(0.004) = %q", got)
	}
	if got := formatCost(1.5); got != "$1.50" {
		t.Errorf("formatCost(1.5) = %q", got)
	}
}
