package diagnose

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecobot/internal/corpus"
	"ecobot/internal/domain"
	"ecobot/internal/llm"
	"ecobot/internal/llm/llmtest"
	"ecobot/internal/vectorstore/memory"
)

func TestRunAllHealthy(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "gsk_abcdef")

	docs := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(docs, "unidad1.txt"), []byte("contenido"), 0o644))
	baseline := filepath.Join(t.TempDir(), ".doc_hash")
	require.NoError(t, corpus.SaveBaseline(baseline, "abc123"))

	store := memory.New()
	require.NoError(t, store.Add(context.Background(), []domain.Fragment{
		{ID: "unidad1_0", Text: "contenido", SourceName: "unidad1.txt"},
	}))

	client := &llmtest.Client{
		CompleteFunc: func(ctx context.Context, req llm.Request) (string, error) {
			return "OK", nil
		},
	}

	d := New(Config{DocsDir: docs, BaselinePath: baseline, ChatModel: "m"}, client, store)
	checks := d.Run(context.Background())

	passed, total := Summary(checks)
	assert.Equal(t, 5, total)
	assert.Equal(t, 5, passed)
}

func TestRunReportsFailuresWithoutAborting(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")

	client := &llmtest.Client{
		CompleteFunc: func(ctx context.Context, req llm.Request) (string, error) {
			return "", errors.New("401 Unauthorized")
		},
	}
	d := New(Config{
		DocsDir:      filepath.Join(t.TempDir(), "no-existe"),
		BaselinePath: filepath.Join(t.TempDir(), ".doc_hash"),
		ChatModel:    "m",
	}, client, memory.New())

	checks := d.Run(context.Background())
	require.Len(t, checks, 5)

	passed, _ := Summary(checks)
	assert.Zero(t, passed)

	// The LLM failure carries the invalid-key hint.
	assert.Contains(t, checks[1].Detail, "API key")
	// An empty store points at the index command.
	assert.Contains(t, checks[2].Detail, "ecobot index")
}

func TestCheckAPIKeyFormatWarning(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "sk-wrong-prefix")
	d := New(Config{}, nil, nil)
	check := d.checkAPIKey()
	assert.True(t, check.OK)
	assert.Contains(t, check.Detail, "gsk_")
}
