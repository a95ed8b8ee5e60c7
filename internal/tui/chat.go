// Package tui contains the Bubble Tea models for the interactive chat and
// the mini-quiz.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"ecobot/internal/answer"
	"ecobot/internal/llm"
	"ecobot/internal/rag"
	"ecobot/internal/study"
)

// AskPort is the chat-facing subset of the RAG system.
type AskPort interface {
	Ask(ctx context.Context, question string) (*rag.Answer, error)
}

type answerStartMsg struct {
	ans *rag.Answer
}

type answerDeltaMsg struct {
	delta string
}

type answerDoneMsg struct{}

type answerErrMsg struct {
	err error
}

// ChatModel is the Bubble Tea model for the conversational interface.
type ChatModel struct {
	system   AskPort
	input    textinput.Model
	viewport viewport.Model
	summary  string
	status   string

	// transcript and current are plain strings: the model is copied by value
	// on every Update, so it must hold nothing that breaks when copied.
	transcript string
	current    string
	stream     llm.Stream
	sources    []string
	faqCursor  int
	busy       bool
	ready      bool
}

// NewChat creates the chat model with the welcome banner already rendered.
// summary is a one-line description of the indexed corpus shown under the
// header.
func NewChat(system AskPort, summary string) ChatModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Escribe tu pregunta y presiona Enter (Tab: pregunta frecuente)"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)

	m := ChatModel{system: system, input: ti, viewport: vp, summary: summary, status: "Listo."}
	m.transcript = welcomeBanner()
	return m
}

// Init initializes the model (text input cursor blink).
func (m ChatModel) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and streaming events.
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, ch := chatBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 3 + ih + 1 // header + summary + status + input frame + spacer
		vh := msg.Height - reserved - ch
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = vh
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			if m.busy {
				return m, nil
			}
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				return m, nil
			}
			m.input.SetValue("")
			m.busy = true
			m.status = "Buscando en los materiales del curso..."
			m.transcript += userStyle.Render("Tú: ") + q + "\n\n"
			m.current = ""
			m.sources = nil
			m.refresh()
			return m, askCmd(m.system, q)
		case "tab":
			if !m.busy && len(study.FrequentQuestions) > 0 {
				m.input.SetValue(study.FrequentQuestions[m.faqCursor])
				m.input.CursorEnd()
				m.faqCursor = (m.faqCursor + 1) % len(study.FrequentQuestions)
			}
			return m, nil
		case "ctrl+l":
			if !m.busy {
				m.transcript = welcomeBanner()
				m.status = "Conversación limpia."
				m.refresh()
			}
			return m, nil
		case "up":
			m.viewport.LineUp(1)
			return m, nil
		case "down":
			m.viewport.LineDown(1)
			return m, nil
		}

	case answerStartMsg:
		m.stream = msg.ans.Stream
		for _, ref := range msg.ans.Sources {
			m.sources = append(m.sources, fmt.Sprintf("%s (fragmento %d/%d)", ref.SourceName, ref.Ordinal+1, ref.TotalFragments))
		}
		m.status = "EcoBot está respondiendo..."
		m.transcript += botStyle.Render("EcoBot: ")
		return m, recvCmd(m.stream)

	case answerDeltaMsg:
		m.current += msg.delta
		m.transcript += msg.delta
		m.refresh()
		return m, recvCmd(m.stream)

	case answerDoneMsg:
		m.closeStream()
		m.transcript += "\n"
		if len(m.sources) > 0 && m.current != answer.Refusal {
			m.transcript += sourceStyle.Render("Fuentes: "+strings.Join(dedupe(m.sources), ", ")) + "\n"
		}
		m.transcript += "\n"
		m.busy = false
		m.status = "Listo. " + study.Motivational()
		m.refresh()
		return m, nil

	case answerErrMsg:
		m.closeStream()
		m.busy = false
		if errors.Is(msg.err, rag.ErrNoContext) {
			m.transcript += botStyle.Render("EcoBot: ") + answer.Refusal + "\n\n"
			m.status = "Listo."
		} else {
			m.status = "Error: " + msg.err.Error()
			m.transcript += "\n"
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m ChatModel) View() string {
	if !m.ready {
		return "Cargando..."
	}
	header := headerStyle.Render("EcoBot · Asistente del curso de Economía")
	summary := sourceStyle.Render(m.summary)
	chat := chatBoxStyle.Render(m.viewport.View())
	input := inputBoxStyle.Render(m.input.View())
	status := statusStyle.Render(m.status)
	return header + "\n" + summary + "\n" + chat + "\n" + input + "\n" + status
}

func (m *ChatModel) refresh() {
	m.viewport.SetContent(m.transcript)
	m.viewport.GotoBottom()
}

func (m *ChatModel) closeStream() {
	if m.stream != nil {
		_ = m.stream.Close()
		m.stream = nil
	}
}

func askCmd(system AskPort, question string) tea.Cmd {
	return func() tea.Msg {
		ans, err := system.Ask(context.Background(), question)
		if err != nil {
			return answerErrMsg{err: err}
		}
		return answerStartMsg{ans: ans}
	}
}

func recvCmd(stream llm.Stream) tea.Cmd {
	return func() tea.Msg {
		delta, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return answerDoneMsg{}
		}
		if err != nil {
			return answerErrMsg{err: err}
		}
		return answerDeltaMsg{delta: delta}
	}
}

func welcomeBanner() string {
	var b strings.Builder
	b.WriteString("¡Hola! Soy EcoBot, tu asistente para el curso de Economía.\n")
	b.WriteString("Pregunta sobre los materiales y te responderé citando las fuentes.\n\n")
	b.WriteString("Unidades del curso:\n")
	for _, u := range study.Units {
		b.WriteString("  " + u.Code + ": " + u.Title + "\n")
	}
	b.WriteString("\n")
	if msg, ok := study.NightOwl(time.Now()); ok {
		b.WriteString(sourceStyle.Render(msg) + "\n")
	}
	b.WriteString(sourceStyle.Render(study.Quote()) + "\n")
	b.WriteString(sourceStyle.Render(study.Tip()) + "\n\n")
	return b.String()
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}

var (
	headerStyle   = lipgloss.NewStyle().Bold(true)
	chatBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	sourceStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
