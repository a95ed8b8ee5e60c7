package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ecobot/internal/quiz"
)

// QuizModel walks the user through a generated multiple-choice quiz.
type QuizModel struct {
	questions []quiz.Question
	index     int
	cursor    int
	score     int
	revealed  bool
	picked    int
	finished  bool
}

// NewQuiz creates the quiz model over pre-generated questions.
func NewQuiz(questions []quiz.Question) QuizModel {
	return QuizModel{questions: questions}
}

// Init is a no-op; the questions arrive ready.
func (m QuizModel) Init() tea.Cmd { return nil }

// Update handles option navigation, confirmation and advancing.
func (m QuizModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if key.Type == tea.KeyCtrlC || key.String() == "q" {
		return m, tea.Quit
	}
	if m.finished {
		if key.String() == "enter" {
			return m, tea.Quit
		}
		return m, nil
	}

	q := m.questions[m.index]
	switch key.String() {
	case "up", "k":
		if !m.revealed && m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if !m.revealed && m.cursor < len(q.Options)-1 {
			m.cursor++
		}
	case "enter":
		if !m.revealed {
			m.revealed = true
			m.picked = m.cursor
			if m.picked == q.Answer {
				m.score++
			}
			return m, nil
		}
		if m.index+1 >= len(m.questions) {
			m.finished = true
			return m, nil
		}
		m.index++
		m.cursor = 0
		m.revealed = false
	}
	return m, nil
}

// View renders the current question, or the final score.
func (m QuizModel) View() string {
	if len(m.questions) == 0 {
		return "No hay preguntas disponibles.\n"
	}
	if m.finished {
		return m.renderScore()
	}

	q := m.questions[m.index]
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("Mini-Quiz · Pregunta %d de %d", m.index+1, len(m.questions))))
	b.WriteString("\n\n")
	b.WriteString(q.Text + "\n\n")

	for i, opt := range q.Options {
		prefix := "  "
		line := opt
		if i == m.cursor && !m.revealed {
			prefix = "> "
		}
		if m.revealed {
			switch {
			case i == q.Answer:
				line = correctStyle.Render(opt)
			case i == m.picked:
				line = wrongStyle.Render(opt)
			}
		}
		b.WriteString(prefix + line + "\n")
	}
	b.WriteString("\n")

	if m.revealed {
		if m.picked == q.Answer {
			b.WriteString(correctStyle.Render("¡Correcto!") + "\n")
		} else {
			b.WriteString(wrongStyle.Render("Incorrecto.") + "\n")
		}
		if q.Explanation != "" {
			b.WriteString(sourceStyle.Render(q.Explanation) + "\n")
		}
		b.WriteString("\nEnter para continuar, q para salir.\n")
	} else {
		b.WriteString(sourceStyle.Render("↑/↓ para elegir, Enter para confirmar, q para salir.") + "\n")
	}
	return b.String()
}

func (m QuizModel) renderScore() string {
	total := len(m.questions)
	pct := 0
	if total > 0 {
		pct = m.score * 100 / total
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render("Resultado del quiz") + "\n\n")
	b.WriteString(fmt.Sprintf("Aciertos: %d de %d (%d%%)\n\n", m.score, total, pct))
	b.WriteString(verdict(pct) + "\n\n")
	b.WriteString("Enter para salir.\n")
	return b.String()
}

// Score reports the accumulated result; used after the program exits.
func (m QuizModel) Score() (correct, total int) {
	return m.score, len(m.questions)
}

func verdict(pct int) string {
	switch {
	case pct >= 80:
		return "¡Excelente! Dominas el material del curso."
	case pct >= 60:
		return "¡Bien hecho! Repasa los temas donde fallaste."
	case pct >= 40:
		return "Vas por buen camino, pero conviene repasar las unidades."
	default:
		return "Te recomiendo releer los materiales y volver a intentarlo."
	}
}

var (
	correctStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	wrongStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)
