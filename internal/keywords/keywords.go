// Package keywords reduces a user question to its salient terms, either via
// the LLM or, when that call fails, via deterministic stop-word filtering.
package keywords

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"ecobot/internal/llm"
)

const extractPrompt = `Extrae SOLO las palabras clave más importantes de la siguiente pregunta.
Ignora palabras como: qué, es, el, la, de, en, etc.
Enfócate en: nombres propios, términos técnicos, conceptos importantes.

Pregunta: %QUESTION%

Responde SOLO con las palabras clave separadas por comas, sin explicación adicional.
Ejemplo: "tratado, maastricht" o "brexit, consecuencias" o "mercosur"`

// stopwords a keyword can never be. Small on purpose: the fallback only has
// to strip the most common Spanish function words.
var stopwords = map[string]struct{}{
	"el": {}, "la": {}, "de": {}, "en": {}, "y": {}, "a": {},
	"los": {}, "las": {}, "qué": {}, "es": {}, "un": {}, "una": {},
}

var wordRe = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// Extractor asks the LLM for keywords and falls back to local filtering.
type Extractor struct {
	client llm.Client
	model  string
	logger *slog.Logger
}

// New creates an extractor using the given completion client and model.
func New(client llm.Client, model string, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{client: client, model: model, logger: logger}
}

// Extract returns the ordered, lower-cased keywords of the question. It never
// fails: any problem with the LLM path degrades to the local fallback, and
// the result may be empty.
func (e *Extractor) Extract(ctx context.Context, question string) []string {
	prompt := strings.ReplaceAll(extractPrompt, "%QUESTION%", question)
	resp, err := e.client.Complete(ctx, llm.Request{
		Model:       e.model,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: prompt}},
		Temperature: 0,
		MaxTokens:   50,
	})
	if err != nil {
		e.logger.Warn("keyword extraction fell back to stop-word filtering", "error", err)
		return Fallback(question)
	}
	keywords := parseCommaList(resp)
	if len(keywords) == 0 {
		return Fallback(question)
	}
	return keywords
}

// Fallback tokenizes the question locally, dropping stop-words and tokens of
// two characters or fewer. Deterministic, no network.
func Fallback(question string) []string {
	tokens := wordRe.FindAllString(strings.ToLower(question), -1)
	var keywords []string
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if len([]rune(tok)) <= 2 {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		keywords = append(keywords, tok)
	}
	return keywords
}

func parseCommaList(resp string) []string {
	var keywords []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(resp, ",") {
		kw := strings.ToLower(strings.TrimSpace(part))
		kw = strings.Trim(kw, `"`)
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		keywords = append(keywords, kw)
	}
	return keywords
}
