// Package rag wires retrieval and generation into the question-answering
// pipeline used by the CLI and the TUI.
package rag

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"ecobot/internal/answer"
	"ecobot/internal/domain"
	"ecobot/internal/indexer"
	"ecobot/internal/llm"
	"ecobot/internal/retriever"
	"ecobot/internal/vectorstore"
)

// ErrNoContext means retrieval produced nothing relevant. It is a normal,
// expected outcome: callers render it as "no relevant information found",
// distinct from an operational pipeline failure.
var ErrNoContext = errors.New("no relevant fragments found")

// Answer is one in-flight response: the delta stream plus the citations of
// the fragments grounding it. The stream is single-consume and must be
// closed by the caller.
type Answer struct {
	Stream  llm.Stream
	Sources []domain.SourceRef
}

// Inventory describes the indexed corpus for status reporting.
type Inventory struct {
	Fragments int
	Documents []string
}

// System is the request-scoped entry point of the pipeline. It holds no
// per-question state; every call receives its own context.
type System struct {
	retriever *retriever.Retriever
	generator *answer.Generator
	store     vectorstore.Store
	indexer   *indexer.Indexer
	topK      int
	logger    *slog.Logger
}

// New assembles the pipeline. topK is the number of fragments handed to the
// generator per question.
func New(r *retriever.Retriever, g *answer.Generator, store vectorstore.Store, ix *indexer.Indexer, topK int, logger *slog.Logger) *System {
	if topK <= 0 {
		topK = 10
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &System{retriever: r, generator: g, store: store, indexer: ix, topK: topK, logger: logger}
}

// Ask retrieves context for the question and starts a streamed, grounded
// answer. Returns ErrNoContext when nothing relevant is indexed.
func (s *System) Ask(ctx context.Context, question string) (*Answer, error) {
	fragments := s.retriever.Retrieve(ctx, question, s.topK)
	if len(fragments) == 0 {
		return nil, ErrNoContext
	}

	stream, err := s.generator.Generate(ctx, question, fragments)
	if err != nil {
		return nil, fmt.Errorf("starting answer generation: %w", err)
	}

	sources := make([]domain.SourceRef, len(fragments))
	for i, f := range fragments {
		sources[i] = f.Ref()
	}
	return &Answer{Stream: stream, Sources: sources}, nil
}

// Retrieve exposes raw ranked retrieval, used by the quiz generator.
func (s *System) Retrieve(ctx context.Context, query string, k int) []domain.RetrievedFragment {
	return s.retriever.Retrieve(ctx, query, k)
}

// SyncIndex rebuilds the collection when the documents folder changed since
// the last rebuild. Reports whether a rebuild happened.
func (s *System) SyncIndex(ctx context.Context) (indexer.Result, bool, error) {
	return s.indexer.RebuildIfChanged(ctx)
}

// Rebuild forces a full rebuild regardless of the fingerprint.
func (s *System) Rebuild(ctx context.Context) (indexer.Result, error) {
	return s.indexer.Rebuild(ctx)
}

// Inventory reports the fragment count and document names in the collection.
func (s *System) Inventory(ctx context.Context) (Inventory, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return Inventory{}, fmt.Errorf("counting fragments: %w", err)
	}
	docs, err := s.store.Sources(ctx)
	if err != nil {
		return Inventory{}, fmt.Errorf("listing documents: %w", err)
	}
	return Inventory{Fragments: count, Documents: docs}, nil
}
