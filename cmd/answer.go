package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/skillpulse/skillpulse/internal/category"
	"github.com/skillpulse/skillpulse/internal/command"
	"github.com/skillpulse/skillpulse/internal/engine"
	"github.com/skillpulse/skillpulse/internal/ui/theme"
)

var answerCmd = &cobra.Command{
	Use:   "answer <user> <category> <difficulty> <selected 1-4> <correct 1-4>",
	Short: "Record a quiz answer",
	Args:  cobra.ExactArgs(5),
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := category.Parse(args[1])
		if err != nil {
			return err
		}
		diff, err := category.ParseDifficulty(args[2])
		if err != nil {
			return err
		}
		selected, err := command.AnswerIndex(args[3])
		if err != nil {
			return err
		}
		correct, err := command.AnswerIndex(args[4])
		if err != nil {
			return fmt.Errorf("correct %w", err)
		}
		quizID, _ := cmd.Flags().GetString("quiz")
		if quizID == "" {
			quizID = uuid.NewString()
		}

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		res, err := rt.engine.RecordAnswer(cmd.Context(), engine.AnswerInput{
			UserID:        args[0],
			QuizID:        quizID,
			Category:      cat,
			Difficulty:    diff,
			SelectedIndex: selected,
			CorrectIndex:  correct,
		})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(out, res)
		}

		if res.Correct {
			fmt.Fprintln(out, theme.Correct.Render("Correct!"))
		} else {
			fmt.Fprintln(out, theme.Incorrect.Render("Not quite."))
		}
		fmt.Fprintf(out, "%s  %s  (%d quizzes)\n",
			theme.Label.Render(cat.DisplayName()),
			theme.Bar(res.Stat.CorrectRate, 20),
			res.Stat.TotalQuizzes)
		for _, m := range res.Milestones {
			fmt.Fprintln(out, theme.Award.Render("★ "+m.Achievement))
		}
		return nil
	},
}

func init() {
	answerCmd.Flags().String("quiz", "", "Quiz ID (random if empty)")
}
