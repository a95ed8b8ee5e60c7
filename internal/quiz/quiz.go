// Package quiz generates multiple-choice study questions from retrieved
// course fragments.
package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"ecobot/internal/domain"
	"ecobot/internal/llm"
)

// Question is one multiple-choice quiz entry.
type Question struct {
	Text        string   `json:"pregunta"`
	Options     []string `json:"opciones"`
	Answer      int      `json:"respuesta_correcta"`
	Explanation string   `json:"explicacion"`
}

// seedQueries vary the retrieved context so consecutive quizzes cover
// different parts of the course.
var seedQueries = []string{
	"integración regional Europa instituciones Unión Europea",
	"América Latina Mercosur TLCAN integración económica",
	"tratados europeos Maastricht Roma Lisboa",
	"teorías integración regional supranacional intergubernamental",
	"Brexit consecuencias política europea comercio",
	"zonas libre comercio uniones aduaneras mercado común",
}

// fallbackQuestion is served when generation or parsing fails, so the quiz
// always has something to show.
var fallbackQuestion = Question{
	Text:        "¿En qué año se firmó el Tratado de Roma?",
	Options:     []string{"A) 1951", "B) 1957", "C) 1986", "D) 1992"},
	Answer:      1,
	Explanation: "El Tratado de Roma de 1957 creó la CEE.",
}

const promptTemplate = `Basándote en el siguiente contexto sobre Integración Regional en Europa y América, genera exactamente %d preguntas de opción múltiple ÚNICAS Y DIFERENTES en formato JSON.

IMPORTANTE: Genera preguntas VARIADAS y ORIGINALES. No repitas preguntas comunes. Usa este número como inspiración para variar: %d

CONTEXTO:
%s

Genera el JSON exactamente en este formato (sin markdown):
{
    "preguntas": [
        {
            "pregunta": "¿Pregunta sobre el tema?",
            "opciones": ["A) Opción 1", "B) Opción 2", "C) Opción 3", "D) Opción 4"],
            "respuesta_correcta": 0,
            "explicacion": "Breve explicación de por qué es correcta"
        }
    ]
}

Asegúrate de:
1. La respuesta correcta siempre es una de las opciones
2. respuesta_correcta es el índice (0, 1, 2 o 3)
3. Preguntas VARIADAS, CREATIVAS y educativas
4. Explicaciones claras y útiles
5. NO repetir las mismas preguntas típicas`

// Retriever is the slice of the RAG system the quiz needs.
type Retriever interface {
	Retrieve(ctx context.Context, query string, k int) []domain.RetrievedFragment
}

// Generator produces quiz questions from course context.
type Generator struct {
	client    llm.Client
	model     string
	retriever Retriever
	rand      *rand.Rand
	logger    *slog.Logger
}

// New creates a quiz generator. rng may be nil, in which case the package
// default source is used; tests pass a seeded one.
func New(client llm.Client, model string, r Retriever, rng *rand.Rand, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{client: client, model: model, retriever: r, rand: rng, logger: logger}
}

// Generate returns n quiz questions grounded in retrieved fragments. Any
// failure along the way degrades to the static fallback question; the quiz
// feature never propagates errors to the caller.
func (g *Generator) Generate(ctx context.Context, n int) []Question {
	if n <= 0 {
		n = 5
	}
	seed := seedQueries[g.intn(len(seedQueries))]
	fragments := g.retriever.Retrieve(ctx, seed, 5)
	if len(fragments) == 0 {
		g.logger.Warn("quiz generation found no context, serving fallback question")
		return []Question{fallbackQuestion}
	}

	var contextBlock strings.Builder
	for _, f := range fragments {
		contextBlock.WriteString(f.Fragment.Text)
		contextBlock.WriteString("\n\n")
	}

	prompt := fmt.Sprintf(promptTemplate, n, g.intn(1000)+1, contextBlock.String())
	resp, err := g.client.Complete(ctx, llm.Request{
		Model:       g.model,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Temperature: 1.2,
		MaxTokens:   2000,
	})
	if err != nil {
		g.logger.Warn("quiz generation failed, serving fallback question", "error", err)
		return []Question{fallbackQuestion}
	}

	questions, err := Parse(resp)
	if err != nil {
		g.logger.Warn("quiz response unparseable, serving fallback question", "error", err)
		return []Question{fallbackQuestion}
	}
	return questions
}

// Parse decodes the model's JSON, tolerating markdown code fences around it.
// Questions with malformed options or answer indexes are rejected.
func Parse(resp string) ([]Question, error) {
	cleaned := strings.TrimSpace(resp)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	var payload struct {
		Questions []Question `json:"preguntas"`
	}
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return nil, fmt.Errorf("decoding quiz JSON: %w", err)
	}
	if len(payload.Questions) == 0 {
		return nil, fmt.Errorf("quiz JSON holds no questions")
	}
	for i, q := range payload.Questions {
		if q.Text == "" || len(q.Options) < 2 {
			return nil, fmt.Errorf("question %d is malformed", i+1)
		}
		if q.Answer < 0 || q.Answer >= len(q.Options) {
			return nil, fmt.Errorf("question %d has answer index %d out of range", i+1, q.Answer)
		}
	}
	return payload.Questions, nil
}

func (g *Generator) intn(n int) int {
	if g.rand != nil {
		return g.rand.Intn(n)
	}
	return rand.Intn(n)
}
