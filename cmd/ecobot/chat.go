package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ecobot/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat interactivo con los materiales del curso",
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if err := a.store.Ensure(ctx); err != nil {
		return fmt.Errorf("preparing collection: %w", err)
	}
	result, rebuilt, err := a.system.SyncIndex(ctx)
	if err != nil {
		return fmt.Errorf("syncing index: %w", err)
	}
	if rebuilt {
		fmt.Printf("Documentos actualizados: %d archivos, %d fragmentos indexados.\n", result.Documents, result.Fragments)
	}

	summary := ""
	if inv, err := a.system.Inventory(ctx); err == nil {
		summary = fmt.Sprintf("%d documentos indexados, %d fragmentos", len(inv.Documents), inv.Fragments)
	}

	p := tea.NewProgram(tui.NewChat(a.system, summary), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
