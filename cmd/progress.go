package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show completed lessons per course",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ws := e.openWorkspace(cmd.Context(), nil)
		fmt.Printf("Completed lessons: %d\n\n", ws.Progress.Len())

		for _, c := range ws.Library.Courses() {
			done, total := ws.CourseProgress(c.ID)
			fmt.Printf("%s  %d/%d\n", c.Title, done, total)
			for _, ch := range c.Chapters {
				fmt.Printf("  %s\n", ch.Title)
				for _, l := range ch.Lessons {
					mark := " "
					if ws.Progress.IsCompleted(l.ID) {
						mark = "✓"
					}
					fmt.Printf("    [%s] %s\n", mark, l.Title)
				}
			}
			fmt.Println(strings.Repeat("─", 40))
		}
		return nil
	},
}

var progressResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget every completed lesson",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ws := e.openWorkspace(cmd.Context(), nil)
		if !yes && !confirm(cmd.InOrStdin(), fmt.Sprintf("Forget %d completed lessons? [y/N] ", ws.Progress.Len())) {
			fmt.Println("Cancelled.")
			return nil
		}
		ws.Progress.Reset()
		fmt.Println("Progress cleared.")
		return nil
	},
}

func init() {
	progressResetCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")
	progressCmd.AddCommand(progressResetCmd)
}
