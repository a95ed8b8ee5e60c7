package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"ecobot/internal/diagnose"
	"ecobot/internal/llm"
	"ecobot/internal/llm/groq"
	"ecobot/internal/vectorstore"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Verifica credenciales, conexión al modelo y estado del índice",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Client and store may legitimately fail to build here; the doctor
	// reports that instead of aborting.
	var client llm.Client
	if c, err := groq.NewClient(groq.Config{
		BaseURL:   cfg.LLM.BaseURL,
		APIKeyEnv: cfg.LLM.APIKeyEnv,
		Timeout:   time.Duration(cfg.LLM.TimeoutSecs) * time.Second,
	}); err == nil {
		client = c
	}
	var store vectorstore.Store
	if s, err := buildStore(cfg); err == nil {
		if err := s.Ensure(context.Background()); err == nil {
			store = s
		}
	}

	d := diagnose.New(diagnose.Config{
		APIKeyEnv:    cfg.LLM.APIKeyEnv,
		DocsDir:      cfg.DocsDir,
		BaselinePath: cfg.BaselinePath,
		ChatModel:    cfg.LLM.ChatModel,
	}, client, store)

	checks := d.Run(context.Background())
	for _, c := range checks {
		mark := "✗"
		if c.OK {
			mark = "✓"
		}
		fmt.Printf("%s %s: %s\n", mark, c.Name, c.Detail)
	}

	passed, total := diagnose.Summary(checks)
	fmt.Printf("\n%d de %d verificaciones superadas.\n", passed, total)
	if passed < total {
		return fmt.Errorf("hay verificaciones fallidas")
	}
	return nil
}
