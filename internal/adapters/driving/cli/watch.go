package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zioncloud/docqa/internal/watcher"
)

var (
	watchCollection string
	watchExtensions []string
	watchDebounce   time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Ingest text files from a directory as they change",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchCollection, "collection", "c", "", "target collection (required)")
	watchCmd.Flags().StringSliceVar(&watchExtensions, "ext", nil, "file extensions to watch (default .txt,.md)")
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 0, "quiet period before ingesting a changed file")
	watchCmd.MarkFlagRequired("collection")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	w, err := watcher.New(ingestService, watcher.Config{
		Dir:        args[0],
		Collection: watchCollection,
		Extensions: watchExtensions,
		Debounce:   watchDebounce,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := w.Run(ctx); !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
