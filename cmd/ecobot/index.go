package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Reconstruye el índice de documentos desde cero",
	RunE:  runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if err := a.store.Ensure(ctx); err != nil {
		return fmt.Errorf("preparing collection: %w", err)
	}
	result, err := a.system.Rebuild(ctx)
	if err != nil {
		return err
	}

	for _, f := range result.PerFile {
		fmt.Printf("  %s: %d fragmentos\n", f.Name, f.Fragments)
	}
	fmt.Printf("Índice reconstruido: %d documentos, %d fragmentos.\n", result.Documents, result.Fragments)
	return nil
}
