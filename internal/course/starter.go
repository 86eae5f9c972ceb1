package course

// Starter returns the built-in course shown when no saved content exists.
func Starter() []Course {
	return []Course{
		{
			ID:    "course-fundamentals",
			Title: "Chess Fundamentals",
			Chapters: []Chapter{
				{
					ID:    "chapter-opening-principles",
					Title: "1. Opening Principles",
					Lessons: []Lesson{
						{
							ID:          "lesson-control-the-center",
							Title:       "1.1 Control the Center",
							FEN:         "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1",
							Description: "Focus on the center squares to dominate the board early.",
							Arrows:      []Arrow{{From: "e2", To: "e4", Color: "gold"}},
							Highlights:  []Highlight{},
						},
					},
				},
			},
		},
	}
}
