package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/abhisek/grandmaster/internal/course"
	"github.com/abhisek/grandmaster/internal/hint"
	"github.com/abhisek/grandmaster/internal/logging"
	"github.com/abhisek/grandmaster/internal/position"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var hintCmd = &cobra.Command{
	Use:   "hint",
	Short: "Ask the coach for the best move in a position or every lesson of a course",
	RunE: func(cmd *cobra.Command, args []string) error {
		fen, _ := cmd.Flags().GetString("fen")
		moves, _ := cmd.Flags().GetStringSlice("moves")
		courseID, _ := cmd.Flags().GetString("course")
		concurrency, _ := cmd.Flags().GetInt("concurrency")

		if (fen == "") == (courseID == "") {
			return errors.New("exactly one of --fen or --course is required")
		}

		ctx := cmd.Context()
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		requester, err := e.requester(ctx)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		if fen != "" {
			if err := position.NewAdapter(nil).Load(fen); err != nil {
				return err
			}
			h, err := requester.Fetch(ctx, fen, moves)
			if err != nil {
				return fmt.Errorf("request hint: %w", err)
			}
			printHint(h)
			return nil
		}

		ws := e.openWorkspace(ctx, requester)
		c, ok := ws.Library.Course(courseID)
		if !ok {
			return fmt.Errorf("course %q not found", courseID)
		}
		return hintCourse(ctx, requester, c, concurrency, e.logger)
	},
}

type lessonHint struct {
	hint *hint.Hint
	err  error
}

// hintCourse asks for a hint on the starting position of every lesson,
// at most concurrency requests at a time, and prints them in course order.
func hintCourse(ctx context.Context, requester *hint.Requester, c course.Course, concurrency int, logger *zap.Logger) error {
	lessons := c.Lessons()
	if len(lessons) == 0 {
		fmt.Println("Course has no lessons.")
		return nil
	}
	if concurrency < 1 {
		concurrency = 1
	}
	logger = logging.OrNop(logger)

	results := make([]lessonHint, len(lessons))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, l := range lessons {
		g.Go(func() error {
			h, err := requester.Fetch(gctx, l.FEN, nil)
			results[i] = lessonHint{hint: h, err: err}
			if err != nil {
				logger.Warn("lesson hint failed", zap.String("lesson", l.ID), zap.Error(err))
			}
			// Cancellation stops the remaining lessons; other failures do not.
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var failed int
	for i, l := range lessons {
		fmt.Println(strings.Repeat("─", 60))
		fmt.Printf("%s\n", l.Title)
		if r := results[i]; r.err != nil {
			failed++
			fmt.Printf("  error: %v\n", r.err)
			continue
		}
		printHint(results[i].hint)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d hints failed", failed, len(lessons))
	}
	return nil
}

func printHint(h *hint.Hint) {
	fmt.Printf("  Best move:  %s\n", h.SuggestedMove)
	fmt.Printf("  Evaluation: %s\n", h.Evaluation)
	fmt.Printf("  Reasoning:  %s\n", h.Reasoning)
}

func init() {
	hintCmd.Flags().String("fen", "", "Position in FEN")
	hintCmd.Flags().StringSlice("moves", nil, "Moves leading to the position, e.g. e4,e5")
	hintCmd.Flags().String("course", "", "Course id: hint every lesson's position")
	hintCmd.Flags().IntP("concurrency", "c", 4, "Parallel requests for --course")
}
