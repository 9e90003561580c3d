package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/catalog"
	"github.com/abhisek/lingua/internal/lesson"
	"github.com/abhisek/lingua/internal/prompt"
)

var lessonCmd = &cobra.Command{
	Use:   "lesson",
	Short: "Run one lesson in the terminal without the UI",
	Long: `Run one lesson as plain text: the five sections are printed as they
arrive, then the three quiz questions are read from standard input and
the model's evaluation is printed.`,
	RunE: runLesson,
}

func init() {
	lessonCmd.Flags().StringP("language", "l", string(catalog.English), "Language, e.g. 영어 or en")
	lessonCmd.Flags().StringP("difficulty", "d", string(catalog.Beginner), "Difficulty, e.g. 초급 or beginner")
	lessonCmd.Flags().StringP("text", "t", "", "Study this sentence instead of the catalog one")
	lessonCmd.Flags().Bool("no-quiz", false, "Skip the quiz")
}

func runLesson(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	d, err := buildDeps(cmd)
	if err != nil {
		return err
	}
	defer d.Close()

	langVal, _ := cmd.Flags().GetString("language")
	diffVal, _ := cmd.Flags().GetString("difficulty")
	text, _ := cmd.Flags().GetString("text")
	noQuiz, _ := cmd.Flags().GetBool("no-quiz")

	lang, err := d.catalog.ParseLanguage(langVal)
	if err != nil {
		return err
	}
	diff, err := catalog.ParseDifficulty(diffVal)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	sess := lesson.NewSession()
	req := lesson.Request{Language: lang, Difficulty: diff, CustomText: text}

	if err := d.orch.Begin(ctx, sess, req); err != nil {
		return err
	}
	fmt.Fprintf(out, "── %s - %s 레벨 학습 ──\n\n", lang, diff)
	fmt.Fprintf(out, "원문: %s\n\n", sess.Sentence)

	for {
		o, ok := d.orch.NextSection(ctx, sess)
		if !ok {
			break
		}
		printOutcome(out, o)
	}

	if noQuiz {
		return nil
	}

	fmt.Fprintln(out, "── 퀴즈 ──")
	scanner := bufio.NewScanner(cmd.InOrStdin())
	for i, q := range lesson.Questions {
		fmt.Fprintf(out, "질문 %d: %s\n답변 %d: ", i+1, q, i+1)
		if !scanner.Scan() {
			fmt.Fprintln(out, "\n(input closed)")
			break
		}
		if err := d.orch.SetAnswer(ctx, sess, i, strings.TrimSpace(scanner.Text())); err != nil {
			return err
		}
	}
	fmt.Fprintln(out)

	if err := d.orch.Submit(ctx, sess); err != nil {
		return err
	}
	if b, ok := sess.BannerFor(prompt.Evaluation); ok {
		fmt.Fprintf(out, "⚠ %s\n", b.Message)
		return nil
	}
	fmt.Fprintf(out, "%s:\n%s\n", prompt.Title(prompt.Evaluation), sess.Evaluation)
	return nil
}

func printOutcome(w io.Writer, o lesson.Outcome) {
	switch {
	case o.Banner != nil:
		fmt.Fprintf(w, "⚠ %s\n\n", o.Banner.Message)
	case o.Section != nil:
		fmt.Fprintf(w, "%s:\n%s\n\n", o.Section.Title, o.Section.Text)
	}
}
