package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"ecobot/internal/answer"
	"ecobot/internal/rag"
)

var askCmd = &cobra.Command{
	Use:   "ask [pregunta]",
	Short: "Hace una pregunta y responde por la salida estándar",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	ctx := context.Background()

	if err := a.store.Ensure(ctx); err != nil {
		return fmt.Errorf("preparing collection: %w", err)
	}
	if _, _, err := a.system.SyncIndex(ctx); err != nil {
		return fmt.Errorf("syncing index: %w", err)
	}

	question := strings.Join(args, " ")
	ans, err := a.system.Ask(ctx, question)
	if errors.Is(err, rag.ErrNoContext) {
		fmt.Println(answer.Refusal)
		return nil
	}
	if err != nil {
		return err
	}
	defer ans.Stream.Close()

	for {
		delta, err := ans.Stream.Recv()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading answer: %w", err)
		}
		fmt.Print(delta)
	}
	fmt.Println()

	if len(ans.Sources) > 0 {
		fmt.Println()
		fmt.Println("Fuentes:")
		seen := make(map[string]struct{})
		for _, ref := range ans.Sources {
			line := fmt.Sprintf("  - %s (fragmento %d/%d)", ref.SourceName, ref.Ordinal+1, ref.TotalFragments)
			if _, ok := seen[line]; ok {
				continue
			}
			seen[line] = struct{}{}
			fmt.Println(line)
		}
	}
	return nil
}
