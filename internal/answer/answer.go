// Package answer builds the grounded prompt and streams the LLM completion.
package answer

import (
	"context"
	"fmt"
	"strings"

	"ecobot/internal/domain"
	"ecobot/internal/llm"
)

// Refusal is the exact sentence the model is instructed to emit when the
// answer is not present in the supplied context. Downstream consumers match
// it verbatim, so it must never be reworded.
const Refusal = "Lo siento, esa información específica no se encuentra en los materiales del curso consultados."

const systemInstruction = `Eres EcoBot, un asistente académico experto en la Integración Regional de Europa y América.
Tu objetivo es ayudar a estudiantes basándote EXCLUSIVAMENTE en el contexto proporcionado.

INSTRUCCIONES ESTRICTAS:
1. Usa SOLO la información del apartado [CONTEXTO] para responder.
2. Si la respuesta NO está en el contexto, di exactamente: "` + Refusal + `" y NO añadas información externa.
3. Estructura tu respuesta en formato Markdown (usa negritas para conceptos clave y listas para enumerar).
4. Sé didáctico, formal pero accesible.`

// Generator produces grounded, streamed answers.
type Generator struct {
	client llm.Client
	model  string
}

// New creates a generator using the given completion client and model.
func New(client llm.Client, model string) *Generator {
	return &Generator{client: client, model: model}
}

// Generate starts a streaming completion constrained to the given fragments.
// The returned stream is single-consume; the caller accumulates the deltas
// and must close it. A failure before the first delta surfaces as an error;
// no partial output is ever produced in that case.
func (g *Generator) Generate(ctx context.Context, question string, fragments []domain.RetrievedFragment) (llm.Stream, error) {
	texts := make([]string, len(fragments))
	for i, f := range fragments {
		texts[i] = f.Fragment.Text
	}
	return g.client.Stream(ctx, llm.Request{
		Model: g.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: systemInstruction},
			{Role: llm.RoleUser, Content: UserContent(question, texts)},
		},
		Temperature: 0.1,
		MaxTokens:   2000,
	})
}

// UserContent assembles the grounded user message: the fragment texts in
// ranked order separated by blank lines, then the question.
func UserContent(question string, contextTexts []string) string {
	return fmt.Sprintf("\n[CONTEXTO]\n%s\n\n[PREGUNTA]\n%s\n", strings.Join(contextTexts, "\n\n"), question)
}
