package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"ecobot/internal/answer"
	"ecobot/internal/chunker"
	"ecobot/internal/config"
	"ecobot/internal/indexer"
	"ecobot/internal/keywords"
	"ecobot/internal/llm"
	"ecobot/internal/llm/groq"
	"ecobot/internal/rag"
	"ecobot/internal/retriever"
	"ecobot/internal/vectorstore"
	"ecobot/internal/vectorstore/chroma"
	"ecobot/internal/vectorstore/memory"
)

var (
	cfgPath string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ecobot",
	Short: "EcoBot, el asistente de estudio del curso de Economía",
	Long: `EcoBot responde preguntas sobre los materiales del curso de Integración
Regional usando búsqueda semántica sobre los documentos indexados.

Sin subcomando entra al chat interactivo.`,
	SilenceUsage: true,
	RunE:         runChat,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "ruta al archivo de configuración YAML")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "registro detallado")
}

// app bundles everything the subcommands need.
type app struct {
	cfg    *config.AppConfig
	client llm.Client
	store  vectorstore.Store
	system *rag.System
	logger *slog.Logger
}

func buildApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	logger := newLogger()

	client, err := groq.NewClient(groq.Config{
		BaseURL:   cfg.LLM.BaseURL,
		APIKeyEnv: cfg.LLM.APIKeyEnv,
		Timeout:   time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
	})
	if err != nil {
		return nil, err
	}

	store, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}

	ch, err := chunker.NewWindowChunker(cfg.Chunker.Size, cfg.Chunker.Overlap)
	if err != nil {
		return nil, fmt.Errorf("invalid chunker config: %w", err)
	}

	ix := indexer.New(store, ch, cfg.DocsDir, cfg.BaselinePath, logger)
	kw := keywords.New(client, cfg.LLM.KeywordModel, logger)
	ret := retriever.New(store, kw, logger)
	gen := answer.New(client, cfg.LLM.ChatModel)
	system := rag.New(ret, gen, store, ix, cfg.Retrieval.TopK, logger)

	return &app{cfg: cfg, client: client, store: store, system: system, logger: logger}, nil
}

func loadConfig() (*config.AppConfig, error) {
	if cfgPath != "" {
		return config.Load(cfgPath)
	}
	cfg, _, err := config.LoadDefault()
	return cfg, err
}

func buildStore(cfg *config.AppConfig) (vectorstore.Store, error) {
	switch cfg.Store.Type {
	case "chroma":
		return chroma.New(chroma.Config{
			URL:        cfg.Store.Chroma.URL,
			Collection: cfg.Store.Chroma.Collection,
			Timeout:    time.Duration(cfg.Store.Chroma.TimeoutSecs) * time.Second,
		}), nil
	case "memory":
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unknown store type %q (use chroma or memory)", cfg.Store.Type)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
