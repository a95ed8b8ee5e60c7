// Package indexer rebuilds the vector collection from the documents folder.
package indexer

import (
	"context"
	"fmt"
	"log/slog"

	"ecobot/internal/chunker"
	"ecobot/internal/corpus"
	"ecobot/internal/vectorstore"
)

// FileStat reports how many fragments one document produced.
type FileStat struct {
	Name      string
	Fragments int
}

// Result summarizes one rebuild.
type Result struct {
	Documents int
	Fragments int
	PerFile   []FileStat
}

// Indexer owns the rebuild pipeline: reset the collection, re-chunk every
// document, re-add everything, then persist the corpus fingerprint.
type Indexer struct {
	store        vectorstore.Store
	chunker      *chunker.WindowChunker
	docsDir      string
	baselinePath string
	logger       *slog.Logger
}

// New creates an indexer for the given documents folder and baseline file.
func New(store vectorstore.Store, ch *chunker.WindowChunker, docsDir, baselinePath string, logger *slog.Logger) *Indexer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Indexer{store: store, chunker: ch, docsDir: docsDir, baselinePath: baselinePath, logger: logger}
}

// Rebuild replaces the whole collection. The fingerprint baseline is saved
// only after the rebuild succeeded, so an aborted rebuild is retried by the
// next change check.
func (ix *Indexer) Rebuild(ctx context.Context) (Result, error) {
	docs, err := corpus.LoadDocuments(ix.docsDir)
	if err != nil {
		return Result{}, err
	}
	if len(docs) == 0 {
		return Result{}, fmt.Errorf("no .txt documents found in %s", ix.docsDir)
	}

	if err := ix.store.Reset(ctx); err != nil {
		return Result{}, fmt.Errorf("resetting collection: %w", err)
	}

	result := Result{Documents: len(docs)}
	for _, doc := range docs {
		fragments := ix.chunker.Fragment(doc)
		if err := ix.store.Add(ctx, fragments); err != nil {
			return Result{}, fmt.Errorf("indexing %s: %w", doc.Name, err)
		}
		result.Fragments += len(fragments)
		result.PerFile = append(result.PerFile, FileStat{Name: doc.Name, Fragments: len(fragments)})
	}

	if fp, err := corpus.Fingerprint(ix.docsDir); err != nil {
		ix.logger.Warn("could not fingerprint corpus after rebuild", "error", err)
	} else if err := corpus.SaveBaseline(ix.baselinePath, fp); err != nil {
		ix.logger.Warn("could not persist fingerprint baseline", "error", err)
	}

	ix.logger.Debug("collection rebuilt", "documents", result.Documents, "fragments", result.Fragments)
	return result, nil
}

// RebuildIfChanged rebuilds only when the corpus fingerprint differs from the
// stored baseline. Fingerprinting failures count as changed, forcing a safe
// rebuild rather than silently serving a stale collection.
func (ix *Indexer) RebuildIfChanged(ctx context.Context) (Result, bool, error) {
	current, err := corpus.Fingerprint(ix.docsDir)
	if err != nil {
		ix.logger.Warn("corpus fingerprinting failed, assuming changed", "error", err)
		current = ""
	}
	stored, err := corpus.LoadBaseline(ix.baselinePath)
	if err != nil {
		ix.logger.Warn("could not read fingerprint baseline, assuming changed", "error", err)
		stored = ""
	}
	if !corpus.Changed(current, stored) {
		return Result{}, false, nil
	}
	result, err := ix.Rebuild(ctx)
	if err != nil {
		return Result{}, false, err
	}
	return result, true, nil
}
