package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past lessons",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		lessons, err := s.EventRepo().LessonHistory(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query history: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(lessons) == 0 {
			fmt.Fprintln(out, "No lessons recorded yet.")
			return nil
		}

		fmt.Fprintf(out, "%-19s  %-8s  %-6s  %-8s  %-6s  %s\n",
			"Started", "Language", "Level", "Sections", "Errors", "Evaluated")
		fmt.Fprintln(out, strings.Repeat("\u2500", 72))
		for _, l := range lessons {
			evaluated := "-"
			if l.Evaluated {
				evaluated = "✓"
			}
			lang := l.Language
			if l.Custom {
				lang += "*"
			}
			fmt.Fprintf(out, "%-19s  %-8s  %-6s  %-8s  %-6d  %s\n",
				l.StartedAt.Local().Format("2006-01-02 15:04:05"),
				lang,
				l.Difficulty,
				fmt.Sprintf("%d/5", l.Sections),
				l.Failures,
				evaluated,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of lessons to show")
}
