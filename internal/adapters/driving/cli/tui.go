package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/zioncloud/docqa/internal/adapters/driving/tui"
)

var (
	tuiCollection string
	tuiLimit      int
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive question-answering dashboard",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().StringVarP(&tuiCollection, "collection", "c", "", "collection to draw context from (required)")
	tuiCmd.Flags().IntVarP(&tuiLimit, "limit", "n", 5, "number of context chunks per question")
	tuiCmd.MarkFlagRequired("collection")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	if err := initServices(); err != nil {
		return err
	}
	if answerService == nil {
		return errors.New("answer service not configured")
	}

	return tui.Run(answerService, tuiCollection, tuiLimit)
}
