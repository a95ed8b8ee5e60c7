// Package diagnose verifies the deployment: credentials, LLM reachability,
// vector collection contents and the documents folder.
package diagnose

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ecobot/internal/corpus"
	"ecobot/internal/llm"
	"ecobot/internal/vectorstore"
)

// Check is the outcome of a single verification step.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Config names everything the doctor inspects.
type Config struct {
	APIKeyEnv    string
	DocsDir      string
	BaselinePath string
	ChatModel    string
}

// Doctor runs the checks. Client and store may be nil when construction
// already failed upstream; the corresponding checks then report that.
type Doctor struct {
	cfg    Config
	client llm.Client
	store  vectorstore.Store
}

// New creates a doctor for the given configuration.
func New(cfg Config, client llm.Client, store vectorstore.Store) *Doctor {
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "GROQ_API_KEY"
	}
	return &Doctor{cfg: cfg, client: client, store: store}
}

// Run executes all checks in order and returns their outcomes. It never
// aborts early: later checks still report even when earlier ones fail.
func (d *Doctor) Run(ctx context.Context) []Check {
	return []Check{
		d.checkAPIKey(),
		d.checkLLM(ctx),
		d.checkStore(ctx),
		d.checkDocuments(),
		d.checkBaseline(),
	}
}

// Summary counts the passed checks.
func Summary(checks []Check) (passed, total int) {
	for _, c := range checks {
		if c.OK {
			passed++
		}
	}
	return passed, len(checks)
}

func (d *Doctor) checkAPIKey() Check {
	key := os.Getenv(d.cfg.APIKeyEnv)
	if key == "" {
		return Check{Name: d.cfg.APIKeyEnv, Detail: "no está configurada"}
	}
	if !strings.HasPrefix(key, "gsk_") {
		return Check{
			Name: d.cfg.APIKeyEnv, OK: true,
			Detail: fmt.Sprintf("configurada (%d caracteres), pero no comienza con 'gsk_'", len(key)),
		}
	}
	return Check{Name: d.cfg.APIKeyEnv, OK: true, Detail: fmt.Sprintf("configurada (%d caracteres)", len(key))}
}

func (d *Doctor) checkLLM(ctx context.Context) Check {
	const name = "Conexión LLM"
	if d.client == nil {
		return Check{Name: name, Detail: "cliente no configurado"}
	}
	resp, err := d.client.Complete(ctx, llm.Request{
		Model:     d.cfg.ChatModel,
		Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Responde solo 'OK'"}},
		MaxTokens: 10,
	})
	if err != nil {
		return Check{Name: name, Detail: hintFor(err)}
	}
	return Check{Name: name, OK: true, Detail: "respuesta del modelo: " + strings.TrimSpace(resp)}
}

func (d *Doctor) checkStore(ctx context.Context) Check {
	const name = "Colección de vectores"
	if d.store == nil {
		return Check{Name: name, Detail: "almacén no configurado"}
	}
	count, err := d.store.Count(ctx)
	if err != nil {
		return Check{Name: name, Detail: err.Error()}
	}
	if count == 0 {
		return Check{Name: name, Detail: "vacía (0 fragmentos); ejecuta 'ecobot index'"}
	}
	detail := fmt.Sprintf("%d fragmentos", count)
	if sources, err := d.store.Sources(ctx); err == nil && len(sources) > 0 {
		sample := sources
		if len(sample) > 3 {
			sample = sample[:3]
		}
		detail += ", fuentes: " + strings.Join(sample, ", ")
	}
	return Check{Name: name, OK: true, Detail: detail}
}

func (d *Doctor) checkDocuments() Check {
	const name = "Documentos fuente"
	entries, err := os.ReadDir(d.cfg.DocsDir)
	if err != nil {
		return Check{Name: name, Detail: fmt.Sprintf("carpeta %s no accesible", d.cfg.DocsDir)}
	}
	var txt []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".txt") {
			txt = append(txt, e.Name())
		}
	}
	if len(txt) == 0 {
		return Check{Name: name, Detail: fmt.Sprintf("sin archivos .txt en %s", d.cfg.DocsDir)}
	}
	sample := txt
	if len(sample) > 3 {
		sample = sample[:3]
	}
	return Check{Name: name, OK: true, Detail: fmt.Sprintf("%d archivos .txt (%s)", len(txt), strings.Join(sample, ", "))}
}

func (d *Doctor) checkBaseline() Check {
	const name = "Huella del corpus"
	fp, err := corpus.LoadBaseline(d.cfg.BaselinePath)
	if err != nil {
		return Check{Name: name, Detail: err.Error()}
	}
	if fp == "" {
		return Check{Name: name, Detail: fmt.Sprintf("sin línea base en %s; el próximo arranque reindexa", filepath.Clean(d.cfg.BaselinePath))}
	}
	return Check{Name: name, OK: true, Detail: "línea base " + fp}
}

// hintFor augments common LLM failures with the likely cause.
func hintFor(err error) string {
	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "401") || strings.Contains(lower, "unauthorized"):
		return msg + " (la API key parece inválida)"
	case strings.Contains(lower, "429") || strings.Contains(lower, "too many"):
		return msg + " (límite de peticiones excedido)"
	case strings.Contains(lower, "timeout") || strings.Contains(lower, "deadline"):
		return msg + " (verifica tu conexión a internet)"
	}
	return msg
}
