package domain

import "fmt"

// AIProvider identifies an AI service provider for embeddings or
// completions.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API (or a compatible
	// endpoint).
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// ChunkingSettings control how documents are split before embedding.
type ChunkingSettings struct {
	// Size is the target chunk size in characters.
	Size int `toml:"size"`

	// OverlapRatio is the fraction of Size carried over between
	// consecutive chunks.
	OverlapRatio float64 `toml:"overlap_ratio"`

	// Separators is the split priority list, most preferred first.
	// The empty string acts as the universal character-level fallback
	// and is appended automatically when missing.
	Separators []string `toml:"separators"`
}

// Overlap returns the overlap in characters.
func (c ChunkingSettings) Overlap() int {
	return int(float64(c.Size) * c.OverlapRatio)
}

// StorageSettings locate the database file and the document corpus.
type StorageSettings struct {
	// DatabasePath is the SQLite file holding every collection.
	DatabasePath string `toml:"database_path"`

	// DocumentsDir is the directory scanned for .txt/.md files.
	DocumentsDir string `toml:"documents_dir"`
}

// EmbeddingSettings select and configure the embedding provider.
type EmbeddingSettings struct {
	Provider AIProvider `toml:"provider"`
	Model    string     `toml:"model"`
	BaseURL  string     `toml:"base_url"`
	APIKey   string     `toml:"api_key"`

	// RateLimit caps embedding requests per second during ingestion.
	// Zero disables the cap.
	RateLimit float64 `toml:"rate_limit"`
}

// CompletionSettings select and configure the completion provider.
type CompletionSettings struct {
	Provider    AIProvider `toml:"provider"`
	Model       string     `toml:"model"`
	BaseURL     string     `toml:"base_url"`
	APIKey      string     `toml:"api_key"`
	Temperature float64    `toml:"temperature"`
}

// SearchSettings control retrieval behaviour.
type SearchSettings struct {
	// TopK is the number of chunks retrieved per question.
	TopK int `toml:"top_k"`
}

// Settings is the immutable application configuration, constructed
// once at startup and passed into component constructors. Components
// never reach into global state for their parameters.
type Settings struct {
	Chunking   ChunkingSettings   `toml:"chunking"`
	Storage    StorageSettings    `toml:"storage"`
	Embedding  EmbeddingSettings  `toml:"embedding"`
	Completion CompletionSettings `toml:"completion"`
	Search     SearchSettings     `toml:"search"`
}

// DefaultSettings returns the reference defaults.
func DefaultSettings() Settings {
	return Settings{
		Chunking: ChunkingSettings{
			Size:         1000,
			OverlapRatio: 0.2,
			Separators:   []string{"\n\n", "\n", ".", " ", ""},
		},
		Storage: StorageSettings{
			DatabasePath: "", // resolved to ~/.docvault/data/docvault.db
			DocumentsDir: "docs",
		},
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    "nomic-embed-text",
		},
		Completion: CompletionSettings{
			Provider:    AIProviderOllama,
			Model:       "mistral-nemo",
			Temperature: 0.3,
		},
		Search: SearchSettings{
			TopK: 3,
		},
	}
}

// Validate checks the settings for configuration errors.
func (s Settings) Validate() error {
	if s.Chunking.Size <= 0 {
		return fmt.Errorf("%w: chunk size must be positive", ErrInvalidInput)
	}
	if s.Chunking.OverlapRatio < 0 || s.Chunking.OverlapRatio >= 1 {
		return fmt.Errorf("%w: overlap ratio must be in [0, 1)", ErrInvalidInput)
	}
	if !s.Embedding.Provider.IsValid() {
		return fmt.Errorf("%w: unknown embedding provider %q", ErrInvalidInput, s.Embedding.Provider)
	}
	if !s.Completion.Provider.IsValid() {
		return fmt.Errorf("%w: unknown completion provider %q", ErrInvalidInput, s.Completion.Provider)
	}
	if s.Embedding.Provider.RequiresAPIKey() && s.Embedding.APIKey == "" {
		return fmt.Errorf("%w: embedding provider %s requires an API key", ErrInvalidInput, s.Embedding.Provider)
	}
	if s.Completion.Provider.RequiresAPIKey() && s.Completion.APIKey == "" {
		return fmt.Errorf("%w: completion provider %s requires an API key", ErrInvalidInput, s.Completion.Provider)
	}
	if s.Embedding.RateLimit < 0 {
		return fmt.Errorf("%w: embedding rate_limit must not be negative", ErrInvalidInput)
	}
	if s.Search.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive", ErrInvalidInput)
	}
	return nil
}
