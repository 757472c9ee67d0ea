// Package cli implements the docqa command tree.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zioncloud/docqa/internal/adapters/driven/embedding/openai"
	"github.com/zioncloud/docqa/internal/adapters/driven/feedback/csvfile"
	"github.com/zioncloud/docqa/internal/adapters/driven/llm/groq"
	"github.com/zioncloud/docqa/internal/adapters/driven/loaders/textfile"
	"github.com/zioncloud/docqa/internal/adapters/driven/loaders/web"
	"github.com/zioncloud/docqa/internal/adapters/driven/storage/sqlite"
	"github.com/zioncloud/docqa/internal/adapters/driven/vectorstore/qdrant"
	"github.com/zioncloud/docqa/internal/chunker"
	"github.com/zioncloud/docqa/internal/config"
	"github.com/zioncloud/docqa/internal/core/ports/driven"
	"github.com/zioncloud/docqa/internal/core/ports/driving"
	"github.com/zioncloud/docqa/internal/core/services"
	"github.com/zioncloud/docqa/internal/logger"
)

// version is set by Execute.
var version = "dev"

var (
	verboseFlag bool
	configFlag  string
)

// Services used by the commands. Populated by initServices; tests
// inject fakes directly.
var (
	cfg               *config.Config
	collectionService driving.CollectionService
	ingestService     driving.IngestService
	retrievalService  driving.RetrievalService
	answerService     driving.AnswerService
	feedbackSink      driven.FeedbackSink
	historyStore      driven.AnswerStore
)

var rootCmd = &cobra.Command{
	Use:   "docqa",
	Short: "Document question answering over a vector store",
	Long: `docqa ingests text documents and web pages into a vector store
and answers questions about them using retrieval-augmented generation.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file (default ~/.docqa/config.toml)")
}

// Execute runs the command tree.
func Execute(v string) error {
	version = v
	return rootCmd.Execute()
}

// loadConfig reads configuration once.
func loadConfig() (*config.Config, error) {
	if cfg != nil {
		return cfg, nil
	}
	c, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}
	cfg = c
	return cfg, nil
}

// initServices wires the full pipeline. Services already present (set
// by tests) are kept.
func initServices() error {
	c, err := loadConfig()
	if err != nil {
		return err
	}

	if collectionService != nil && ingestService != nil &&
		retrievalService != nil && answerService != nil {
		return nil
	}

	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is not set")
	}

	embedder, err := openai.NewEmbeddingService(openai.Config{
		APIKey:  c.OpenAI.APIKey,
		BaseURL: c.OpenAI.BaseURL,
		Model:   c.OpenAI.Model,
	})
	if err != nil {
		return fmt.Errorf("embedding service: %w", err)
	}

	store, err := qdrant.NewStore(qdrant.Config{
		URL:    c.Qdrant.URL,
		APIKey: c.Qdrant.APIKey,
	})
	if err != nil {
		return fmt.Errorf("vector store: %w", err)
	}

	splitter := chunker.New(
		chunker.WithChunkSize(c.Chunking.Size),
		chunker.WithOverlap(c.Chunking.Overlap),
	)

	if collectionService == nil {
		collectionService = services.NewCollectionService(store, embedder)
	}
	if ingestService == nil {
		ingestService = services.NewIngestService(
			splitter, embedder, store,
			textfile.New(), web.New(web.Config{}),
		)
	}
	if retrievalService == nil {
		retrievalService = services.NewRetrievalService(embedder, store)
	}

	if historyStore == nil {
		history, err := sqlite.NewStore(c.DataDir)
		if err != nil {
			// History is best-effort; the pipeline works without it.
			logger.Warn("answer history disabled: %v", err)
		} else {
			historyStore = history
		}
	}

	if answerService == nil {
		if c.Groq.APIKey == "" {
			return fmt.Errorf("GROQ_API_KEY is not set")
		}
		llm, err := groq.NewLLMService(groq.Config{
			APIKey:  c.Groq.APIKey,
			BaseURL: c.Groq.BaseURL,
			Model:   c.Groq.Model,
		})
		if err != nil {
			return fmt.Errorf("llm service: %w", err)
		}
		answerService = services.NewAnswerService(retrievalService, llm, historyStore)
	}

	if feedbackSink == nil && c.FeedbackPath != "" {
		sink, err := csvfile.NewSink(c.FeedbackPath)
		if err != nil {
			logger.Warn("feedback recording disabled: %v", err)
		} else {
			feedbackSink = sink
		}
	}

	return nil
}
