// Package cli implements the docvault command line interface.
// Commands wire the driven adapters to the core services on demand:
// only the services a command actually needs are constructed and
// validated.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docvault-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/docvault-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docvault-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/docvault-cli/internal/chunker"
	"github.com/custodia-labs/docvault-cli/internal/core/domain"
	"github.com/custodia-labs/docvault-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docvault-cli/internal/core/ports/driving"
	"github.com/custodia-labs/docvault-cli/internal/core/services"
	"github.com/custodia-labs/docvault-cli/internal/logger"
)

// version is set via Execute at build time.
var version = "dev"

// Global flags.
var (
	verbose    bool
	configPath string
	dbPath     string
	docsDir    string
)

// Wired services. Left nil until a command needs them; tests inject
// fakes directly.
var (
	appSettings    domain.Settings
	settingsLoaded bool

	docStore      driven.DocumentStore
	promptStore   driven.PromptStore
	ingestService driving.IngestService
	searchService driving.SearchService
	chatService   driving.ChatService
)

var rootCmd = &cobra.Command{
	Use:   "docvault",
	Short: "Index local documents and ask questions about them",
	Long: `DocVault indexes a directory of .txt/.md documents into a local
SQLite database, one collection per document, and answers questions
over them using embedding similarity search and a language model.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.docvault/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database file (overrides config)")
	rootCmd.PersistentFlags().StringVar(&docsDir, "docs", "", "documents directory (overrides config)")
}

// Execute runs the root command.
func Execute(v string) error {
	version = v
	defer closeServices()
	return rootCmd.Execute()
}

// settings loads the configuration once and applies flag overrides.
func settings() (domain.Settings, error) {
	if settingsLoaded {
		return appSettings, nil
	}

	store, err := file.NewSettingsStore(configPath)
	if err != nil {
		return domain.Settings{}, err
	}
	loaded, err := store.Load()
	if err != nil {
		return domain.Settings{}, err
	}

	if dbPath != "" {
		loaded.Storage.DatabasePath = dbPath
	}
	if docsDir != "" {
		loaded.Storage.DocumentsDir = docsDir
	}

	appSettings = loaded
	settingsLoaded = true
	return appSettings, nil
}

// ensureStore opens the document store if no command (or test) has
// provided one yet.
func ensureStore() error {
	if docStore != nil {
		return nil
	}

	cfg, err := settings()
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(cfg.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("open document store: %w", err)
	}
	docStore = store
	return nil
}

// ensurePrompts initialises the prompt store. Failure is not fatal,
// services fall back to embedded prompts.
func ensurePrompts() {
	if promptStore != nil {
		return
	}
	store, err := file.NewPromptStore("")
	if err != nil {
		logger.Warn("Prompt store unavailable: %v", err)
		return
	}
	promptStore = store
}

// ensureIngest wires the ingest service, validating the embedding
// provider up front.
func ensureIngest() error {
	if ingestService != nil {
		return nil
	}
	if err := ensureStore(); err != nil {
		return err
	}

	cfg, err := settings()
	if err != nil {
		return err
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(cfg.Embedding)
	if err != nil {
		return err
	}

	splitter := chunker.New(
		chunker.WithChunkSize(cfg.Chunking.Size),
		chunker.WithOverlap(cfg.Chunking.Overlap()),
		chunker.WithSeparators(cfg.Chunking.Separators),
	)

	ingestService = services.NewIngester(docStore, embedder, splitter,
		services.WithEmbedRateLimit(cfg.Embedding.RateLimit))
	return nil
}

// ensureSearch wires the search service.
func ensureSearch() error {
	if searchService != nil {
		return nil
	}
	if err := ensureStore(); err != nil {
		return err
	}

	cfg, err := settings()
	if err != nil {
		return err
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(cfg.Embedding)
	if err != nil {
		return err
	}

	searchService = services.NewSearcher(docStore, embedder)
	return nil
}

// ensureChat wires the chat service on top of search.
func ensureChat() error {
	if chatService != nil {
		return nil
	}
	if err := ensureSearch(); err != nil {
		return err
	}

	cfg, err := settings()
	if err != nil {
		return err
	}

	completer, err := ai.CreateAndValidateCompletionService(cfg.Completion)
	if err != nil {
		return err
	}

	ensurePrompts()
	chatService = services.NewAssistant(searchService, completer, promptStore, cfg)
	return nil
}

// closeServices releases the document store after command execution.
func closeServices() {
	if docStore != nil {
		if err := docStore.Close(); err != nil {
			logger.Warn("Closing document store: %v", err)
		}
		docStore = nil
	}
}
