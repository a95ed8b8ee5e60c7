// Package memory is a brute-force in-memory vectorstore.Store. It embeds
// texts itself with a bag-of-words model, so it behaves like the external
// engine (text in, cosine distance out) without any network dependency.
// Used by tests and offline runs.
package memory

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"

	"ecobot/internal/domain"
	"ecobot/internal/vectorstore"
)

// Store keeps fragments and their token counts in memory.
type Store struct {
	mu        sync.RWMutex
	fragments []domain.Fragment
	counts    []map[string]float64
	ids       map[string]struct{}
}

// New creates an empty in-memory store.
func New() *Store {
	return &Store{ids: make(map[string]struct{})}
}

var _ vectorstore.Store = (*Store)(nil)

var wordRe = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)

// Ensure is a no-op: the collection exists as soon as the store does.
func (s *Store) Ensure(ctx context.Context) error { return nil }

// Reset drops all stored fragments.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fragments = nil
	s.counts = nil
	s.ids = make(map[string]struct{})
	return nil
}

// Add embeds and stores the fragments. An id collision fails the whole batch
// before anything is stored.
func (s *Store) Add(ctx context.Context, fragments []domain.Fragment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[string]struct{}, len(fragments))
	for _, f := range fragments {
		if _, ok := s.ids[f.ID]; ok {
			return fmt.Errorf("fragment id %s already in collection", f.ID)
		}
		if _, ok := seen[f.ID]; ok {
			return fmt.Errorf("duplicate fragment id %s in batch", f.ID)
		}
		seen[f.ID] = struct{}{}
	}
	for _, f := range fragments {
		s.fragments = append(s.fragments, f)
		s.counts = append(s.counts, tokenCounts(f.Text))
		s.ids[f.ID] = struct{}{}
	}
	return nil
}

// Query embeds the text and returns the k nearest fragments by cosine
// distance, ascending. An empty collection yields an empty result.
func (s *Store) Query(ctx context.Context, text string, k int) ([]domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if k <= 0 || len(s.fragments) == 0 {
		return nil, nil
	}
	query := tokenCounts(text)
	matches := make([]domain.Match, len(s.fragments))
	for i := range s.fragments {
		matches[i] = domain.Match{
			Fragment: s.fragments[i],
			Distance: 1 - cosine(query, s.counts[i]),
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].Distance < matches[j].Distance })
	if k > len(matches) {
		k = len(matches)
	}
	return matches[:k], nil
}

// Count returns the number of stored fragments.
func (s *Store) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.fragments), nil
}

// Sources returns the distinct source names, sorted.
func (s *Store) Sources(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	for _, f := range s.fragments {
		seen[f.SourceName] = struct{}{}
	}
	sources := make([]string, 0, len(seen))
	for name := range seen {
		sources = append(sources, name)
	}
	sort.Strings(sources)
	return sources, nil
}

func tokenCounts(text string) map[string]float64 {
	tokens := wordRe.FindAllString(strings.ToLower(text), -1)
	counts := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		counts[t]++
	}
	return counts
}

func cosine(a, b map[string]float64) float64 {
	var dot float64
	for t, va := range a {
		if vb, ok := b[t]; ok {
			dot += va * vb
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (norm(a) * norm(b))
}

func norm(v map[string]float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
