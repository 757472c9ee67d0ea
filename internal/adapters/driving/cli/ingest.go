package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var ingestCollection string

var ingestCmd = &cobra.Command{
	Use:   "ingest [file-or-url]",
	Short: "Ingest a text file or web page into a collection",
	Long: `Chunks the document, embeds every chunk and upserts one point per
chunk into the target collection. Arguments starting with http:// or
https:// are fetched as web pages; everything else is read as a local
text file.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVarP(&ingestCollection, "collection", "c", "", "target collection (required)")
	ingestCmd.MarkFlagRequired("collection")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := initServices(); err != nil {
		return err
	}
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	source := args[0]
	var (
		n   int
		err error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		n, err = ingestService.IngestURL(cmd.Context(), source, ingestCollection)
	} else {
		n, err = ingestService.IngestFile(cmd.Context(), source, ingestCollection)
	}
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %s into %s (%d points)\n", source, ingestCollection, n)
	return nil
}
