package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/flashcard-builder/internal/adapters/tui"
	"github.com/jsamuelsen/flashcard-builder/internal/app"
	"github.com/jsamuelsen/flashcard-builder/internal/domain"
)

func newQuizCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz FILE",
		Short: "Quiz yourself on a topic in the terminal",
		Long: `Run a self-graded quiz over one topic of a collection file.

Cards are shuffled. Type your recall attempt and press enter to reveal the
answer, then enter again for the next card. q (on an empty answer) or esc
quits. Without --topic the subject's topics are listed to pick from.

Examples:
  flashcards quiz flashcards.json --subject History
  flashcards quiz flashcards.json --subject Math --topic Algebra --seed 7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuiz(cmd, e, args[0])
		},
	}

	cmd.Flags().StringP("subject", "s", "", "Subject to study (required)")
	cmd.Flags().StringP("topic", "t", "", "Topic to study; omit to pick from a list")
	cmd.Flags().Uint64("seed", 0, "Shuffle seed; 0 uses quiz.seed from config")
	_ = cmd.MarkFlagRequired("subject")

	return cmd
}

func runQuiz(cmd *cobra.Command, e *env, path string) error {
	ctx := cmd.Context()
	subjectName, _ := cmd.Flags().GetString("subject")
	topic, _ := cmd.Flags().GetString("topic")
	seed, _ := cmd.Flags().GetUint64("seed")

	if seed == 0 {
		seed = e.cfg.Quiz.Seed
	}

	s, err := openSession(ctx, e, path)
	if err != nil {
		return err
	}

	subject, err := s.library.Subject(ctx, subjectName)
	if err != nil {
		return err
	}

	if _, err := s.nav.Home(ctx); err != nil {
		return err
	}

	quiz := app.NewQuizService(app.QuizServiceConfig{
		Navigator: s.nav,
		Store:     s.store,
		Shuffler:  domain.NewShuffler(seed),
		Logger:    e.logger,
	})

	model, err := tui.NewQuizModel(ctx, tui.Config{Quiz: quiz, Subject: subject, Topic: topic})
	if err != nil {
		return err
	}

	final, err := tui.Run(ctx, model,
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	if err != nil {
		return err
	}

	if final.Finished() {
		fmt.Fprintf(cmd.OutOrStdout(), "reviewed %d cards\n", final.Reviewed())
	}

	return final.Err()
}
