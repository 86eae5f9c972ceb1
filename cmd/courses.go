package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abhisek/grandmaster/internal/course"
	"github.com/spf13/cobra"
)

var coursesCmd = &cobra.Command{
	Use:   "courses",
	Short: "List, export, import and delete courses",
}

var coursesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courses with lesson progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ws := e.openWorkspace(cmd.Context(), nil)
		courses := ws.Library.Courses()
		if len(courses) == 0 {
			fmt.Println("No courses found.")
			return nil
		}

		fmt.Printf("%-44s  %-32s  %8s  %8s\n", "ID", "Title", "Chapters", "Done")
		fmt.Println(strings.Repeat("─", 100))
		for _, c := range courses {
			done, total := ws.CourseProgress(c.ID)
			fmt.Printf("%-44s  %-32s  %8d  %8s\n",
				c.ID, truncate(c.Title, 32), len(c.Chapters), fmt.Sprintf("%d/%d", done, total))
		}
		return nil
	},
}

var coursesExportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Write a course as a YAML document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("output")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ws := e.openWorkspace(cmd.Context(), nil)
		c, ok := ws.Library.Course(args[0])
		if !ok {
			return fmt.Errorf("course %q not found", args[0])
		}
		data, err := course.ExportDocument(c)
		if err != nil {
			return err
		}

		if out == "" || out == "-" {
			_, err = os.Stdout.Write(data)
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		fmt.Printf("Exported %q to %s\n", c.Title, out)
		return nil
	},
}

var coursesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Add a course from a YAML document (- reads stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if args[0] == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		c, err := course.ImportDocument(data)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ws := e.openWorkspace(cmd.Context(), nil)
		id := ws.Library.Import(c)
		fmt.Printf("Imported %q as %s (%d lessons)\n", c.Title, id, len(c.Lessons()))
		return nil
	},
}

var coursesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a course",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ws := e.openWorkspace(cmd.Context(), nil)
		c, ok := ws.Library.Course(args[0])
		if !ok {
			return fmt.Errorf("course %q not found", args[0])
		}

		confirmed := yes || confirm(cmd.InOrStdin(), fmt.Sprintf("Delete course %q? This cannot be undone. [y/N] ", c.Title))
		if !ws.DeleteCourse(c.ID, confirmed) {
			fmt.Println("Cancelled.")
			return nil
		}
		fmt.Printf("Deleted %q\n", c.Title)
		return nil
	},
}

// confirm asks a yes/no question on r and reports a yes.
func confirm(r io.Reader, question string) bool {
	fmt.Print(question)
	line, _ := bufio.NewReader(r).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func init() {
	coursesExportCmd.Flags().StringP("output", "o", "", "Write to file instead of stdout")
	coursesDeleteCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")

	coursesCmd.AddCommand(coursesListCmd)
	coursesCmd.AddCommand(coursesExportCmd)
	coursesCmd.AddCommand(coursesImportCmd)
	coursesCmd.AddCommand(coursesDeleteCmd)
}
