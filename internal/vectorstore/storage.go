package vectorstore

import (
	"context"

	"ecobot/internal/domain"
)

// Store owns the persisted fragments and their embeddings for one corpus
// snapshot. Embedding computation is internal to the store; callers only ever
// see texts and cosine distances.
type Store interface {
	// Ensure creates the collection with cosine similarity if it does not
	// exist yet. Idempotent.
	Ensure(ctx context.Context) error
	// Reset deletes the collection (idempotent when absent) and recreates it
	// empty. Used by full rebuilds; there is no incremental update.
	Reset(ctx context.Context) error
	// Add stores the fragments as one batch. Ids must be unique within the
	// collection; a collision fails the whole batch.
	Add(ctx context.Context, fragments []domain.Fragment) error
	// Query returns up to k fragments nearest to the text, ascending cosine
	// distance. Fewer than k results only when the collection is smaller.
	Query(ctx context.Context, text string, k int) ([]domain.Match, error)
	// Count returns the number of stored fragments.
	Count(ctx context.Context) (int, error)
	// Sources returns the distinct document names present in the collection,
	// sorted, for inventory reporting.
	Sources(ctx context.Context) ([]string, error)
}
