package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"quizzical-service/internal/app"
	"quizzical-service/internal/config"
	"quizzical-service/internal/domain"
)

// newFetchCmd builds a one-shot command that runs a quiz load through the
// full controller pipeline and prints the result.
func newFetchCmd(configPath *string) *cobra.Command {
	var (
		amount     int
		category   int
		difficulty string
		qType      string
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch one quiz and print the questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			comps := buildComponents(cfg)
			defer comps.cleanup()

			quizCfg := comps.defaults
			if amount > 0 {
				quizCfg.Amount = amount
			}
			if category > 0 {
				quizCfg.Category = category
			}
			if difficulty != "" {
				quizCfg.Difficulty = domain.Difficulty(difficulty)
			}
			if qType != "" {
				quizCfg.Type = domain.QuestionType(qType)
			}

			comps.controller.LoadQuiz(cmd.Context(), quizCfg)

			state := comps.controller.Snapshot()
			if state.Status == app.StatusError {
				return errors.New(state.Error)
			}

			for i, question := range state.Questions {
				fmt.Printf("%d. [%s/%s] %s\n", i+1, question.Category, question.Difficulty, question.Prompt)
				for j, option := range question.Options {
					fmt.Printf("   %c) %s\n", 'A'+j, option)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&amount, "amount", 0, "number of questions (default from config)")
	cmd.Flags().IntVar(&category, "category", 0, "trivia category id (default from config)")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "easy, medium or hard")
	cmd.Flags().StringVar(&qType, "type", "", "multiple or boolean")
	return cmd
}
