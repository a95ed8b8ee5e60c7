package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecobot/internal/quiz"
)

func key(s string) tea.KeyMsg {
	if s == "enter" {
		return tea.KeyMsg{Type: tea.KeyEnter}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m QuizModel, keys ...string) QuizModel {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		var ok bool
		m, ok = next.(QuizModel)
		require.True(t, ok)
	}
	return m
}

func twoQuestions() []quiz.Question {
	return []quiz.Question{
		{
			Text:        "¿Qué tratado creó la CEE?",
			Options:     []string{"A) Roma", "B) Maastricht", "C) Lisboa"},
			Answer:      0,
			Explanation: "El Tratado de Roma de 1957.",
		},
		{
			Text:    "¿Qué país abandonó la UE en 2020?",
			Options: []string{"A) Noruega", "B) Reino Unido"},
			Answer:  1,
		},
	}
}

func TestQuizCorrectAnswerScores(t *testing.T) {
	m := NewQuiz(twoQuestions())

	// First question: confirm the preselected correct option.
	m = press(t, m, "enter")
	assert.True(t, m.revealed)
	correct, total := m.Score()
	assert.Equal(t, 1, correct)
	assert.Equal(t, 2, total)

	// Advance, pick the wrong option on the second question.
	m = press(t, m, "enter", "enter")
	correct, _ = m.Score()
	assert.Equal(t, 1, correct)

	// Advancing past the last question finishes the quiz.
	m = press(t, m, "enter")
	assert.True(t, m.finished)
	assert.Contains(t, m.View(), "1 de 2")
}

func TestQuizCursorNavigation(t *testing.T) {
	m := NewQuiz(twoQuestions())

	m = press(t, m, "j", "j")
	assert.Equal(t, 2, m.cursor)
	// Bounded at the last option.
	m = press(t, m, "j")
	assert.Equal(t, 2, m.cursor)
	m = press(t, m, "k")
	assert.Equal(t, 1, m.cursor)
}

func TestQuizLockedAfterReveal(t *testing.T) {
	m := NewQuiz(twoQuestions())
	m = press(t, m, "enter")
	before := m.cursor
	m = press(t, m, "j")
	assert.Equal(t, before, m.cursor)
}

func TestQuizEmptyQuestions(t *testing.T) {
	m := NewQuiz(nil)
	assert.Contains(t, m.View(), "No hay preguntas")
}

func TestVerdictBands(t *testing.T) {
	assert.Contains(t, verdict(100), "Excelente")
	assert.Contains(t, verdict(60), "Bien hecho")
	assert.Contains(t, verdict(40), "buen camino")
	assert.Contains(t, verdict(0), "releer")
}

func TestDedupePreservesOrder(t *testing.T) {
	got := dedupe([]string{"a.txt (fragmento 1/2)", "b.txt (fragmento 1/1)", "a.txt (fragmento 1/2)"})
	assert.Equal(t, []string{"a.txt (fragmento 1/2)", "b.txt (fragmento 1/1)"}, got)
}
