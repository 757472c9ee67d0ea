package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	askCollection string
	askLimit      int
	askModel      string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question from a collection's documents",
	Args:  cobra.ExactArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askCollection, "collection", "c", "", "collection to draw context from (required)")
	askCmd.Flags().IntVarP(&askLimit, "limit", "n", 5, "number of context chunks to retrieve")
	askCmd.Flags().StringVarP(&askModel, "model", "m", "", "override the answer model")
	askCmd.MarkFlagRequired("collection")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	rec, err := answerService.Answer(cmd.Context(), args[0], askCollection, askLimit, askModel)
	if err != nil {
		return fmt.Errorf("answer failed: %w", err)
	}

	cmd.Println(rec.Answer)

	if len(rec.Sources) > 0 {
		cmd.Println()
		cmd.Println("Sources:")
		for _, src := range rec.Sources {
			cmd.Printf("  - %s (%.3f)\n", src.Source, src.Score)
		}
	}
	return nil
}
