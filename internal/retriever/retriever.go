// Package retriever implements two-stage retrieval: a wide semantic query
// against the vector store, reranked by keyword presence.
package retriever

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"ecobot/internal/domain"
	"ecobot/internal/vectorstore"
)

const (
	// overfetch widens the semantic query so reranking has candidates to
	// promote beyond the first k.
	overfetch = 5
	// keywordBoost is the distance reduction per matched keyword.
	keywordBoost = 0.3
)

// KeywordSource produces the salient terms of a question. It may not fail.
type KeywordSource interface {
	Extract(ctx context.Context, question string) []string
}

// Retriever combines semantic search and keyword boosting.
type Retriever struct {
	store    vectorstore.Store
	keywords KeywordSource
	logger   *slog.Logger
}

// New creates a retriever over the given store and keyword source.
func New(store vectorstore.Store, keywords KeywordSource, logger *slog.Logger) *Retriever {
	if logger == nil {
		logger = slog.Default()
	}
	return &Retriever{store: store, keywords: keywords, logger: logger}
}

// Retrieve returns up to k fragments ranked by combined score. A store
// failure is recovered as an empty result: the caller renders it as "no
// relevant information", while the operational cause goes to the log.
func (r *Retriever) Retrieve(ctx context.Context, question string, k int) []domain.RetrievedFragment {
	if k <= 0 {
		return nil
	}
	terms := r.keywords.Extract(ctx, question)

	matches, err := r.store.Query(ctx, question, k*overfetch)
	if err != nil {
		r.logger.Warn("vector store query failed, returning no results", "error", err)
		return nil
	}
	if len(matches) == 0 {
		return nil
	}

	ranked := Rerank(matches, terms)
	if k > len(ranked) {
		k = len(ranked)
	}
	return ranked[:k]
}

// Rerank scores each candidate as distance - keywordBoost*hits, where a
// keyword counts at most once however often it occurs, and stable-sorts by
// ascending score. Candidates with equal scores keep their semantic order.
func Rerank(matches []domain.Match, terms []string) []domain.RetrievedFragment {
	ranked := make([]domain.RetrievedFragment, len(matches))
	for i, m := range matches {
		text := strings.ToLower(m.Fragment.Text)
		hits := 0
		for _, term := range terms {
			if term != "" && strings.Contains(text, term) {
				hits++
			}
		}
		ranked[i] = domain.RetrievedFragment{
			Fragment:    m.Fragment,
			Distance:    m.Distance,
			KeywordHits: hits,
			Score:       m.Distance - keywordBoost*float64(hits),
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score < ranked[j].Score })
	return ranked
}
