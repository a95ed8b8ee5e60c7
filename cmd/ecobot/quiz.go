package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"ecobot/internal/quiz"
	"ecobot/internal/tui"
)

var quizQuestions int

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Genera un mini-quiz sobre los materiales del curso",
	RunE:  runQuiz,
}

func init() {
	quizCmd.Flags().IntVarP(&quizQuestions, "questions", "n", 0, "número de preguntas (0 usa la configuración)")
	rootCmd.AddCommand(quizCmd)
}

func runQuiz(cmd *cobra.Command, args []string) error {
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

	n := quizQuestions
	if n <= 0 {
		n = a.cfg.Quiz.Questions
	}

	fmt.Println("Generando preguntas...")
	gen := quiz.New(a.client, a.cfg.LLM.ChatModel, a.system, nil, a.logger)
	questions := gen.Generate(ctx, n)

	p := tea.NewProgram(tui.NewQuiz(questions))
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(tui.QuizModel); ok {
		correct, total := m.Score()
		fmt.Printf("Resultado: %d/%d aciertos.\n", correct, total)
	}
	return nil
}
