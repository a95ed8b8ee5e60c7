package retriever

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecobot/internal/domain"
	"ecobot/internal/vectorstore"
)

type staticKeywords []string

func (s staticKeywords) Extract(ctx context.Context, question string) []string { return s }

// fakeStore scripts Query and records the requested k.
type fakeStore struct {
	vectorstore.Store
	matches []domain.Match
	err     error
	lastK   int
}

func (f *fakeStore) Query(ctx context.Context, text string, k int) ([]domain.Match, error) {
	f.lastK = k
	if f.err != nil {
		return nil, f.err
	}
	if k > len(f.matches) {
		k = len(f.matches)
	}
	return f.matches[:k], nil
}

func TestRerankBoostReordersCandidates(t *testing.T) {
	matches := []domain.Match{
		{Fragment: domain.Fragment{ID: "c1", Text: "nada relevante aquí"}, Distance: 0.1},
		{Fragment: domain.Fragment{ID: "c2", Text: "habla del mercosur"}, Distance: 0.2},
		{Fragment: domain.Fragment{ID: "c3", Text: "mercosur y tratado juntos"}, Distance: 0.3},
	}

	ranked := Rerank(matches, []string{"mercosur", "tratado"})
	require.Len(t, ranked, 3)

	// distances [0.1 0.2 0.3], hits [0 1 2], scores [0.1 -0.1 -0.3]
	assert.Equal(t, "c3", ranked[0].Fragment.ID)
	assert.Equal(t, "c2", ranked[1].Fragment.ID)
	assert.Equal(t, "c1", ranked[2].Fragment.ID)
	assert.InDelta(t, -0.3, ranked[0].Score, 1e-9)
	assert.InDelta(t, -0.1, ranked[1].Score, 1e-9)
	assert.InDelta(t, 0.1, ranked[2].Score, 1e-9)
	assert.Equal(t, 2, ranked[0].KeywordHits)
}

func TestRerankKeywordCountsPresenceNotFrequency(t *testing.T) {
	matches := []domain.Match{
		{Fragment: domain.Fragment{ID: "c1", Text: "mercosur mercosur mercosur"}, Distance: 0.5},
	}
	ranked := Rerank(matches, []string{"mercosur"})
	assert.Equal(t, 1, ranked[0].KeywordHits)
	assert.InDelta(t, 0.2, ranked[0].Score, 1e-9)
}

func TestRerankIsCaseInsensitive(t *testing.T) {
	matches := []domain.Match{
		{Fragment: domain.Fragment{ID: "c1", Text: "El MERCOSUR se fundó en 1991."}, Distance: 0.4},
	}
	ranked := Rerank(matches, []string{"mercosur"})
	assert.Equal(t, 1, ranked[0].KeywordHits)
}

func TestRerankStability(t *testing.T) {
	// Equal scores keep the original semantic-distance order.
	matches := []domain.Match{
		{Fragment: domain.Fragment{ID: "c1", Text: "sin términos"}, Distance: 0.2},
		{Fragment: domain.Fragment{ID: "c2", Text: "también sin términos"}, Distance: 0.2},
		{Fragment: domain.Fragment{ID: "c3", Text: "igual que los otros"}, Distance: 0.2},
	}
	ranked := Rerank(matches, []string{"mercosur"})
	assert.Equal(t, "c1", ranked[0].Fragment.ID)
	assert.Equal(t, "c2", ranked[1].Fragment.ID)
	assert.Equal(t, "c3", ranked[2].Fragment.ID)
}

func TestRetrieveOverfetchesByFive(t *testing.T) {
	store := &fakeStore{}
	r := New(store, staticKeywords{}, nil)
	r.Retrieve(context.Background(), "pregunta", 4)
	assert.Equal(t, 20, store.lastK)
}

func TestRetrieveTruncatesToK(t *testing.T) {
	store := &fakeStore{matches: []domain.Match{
		{Fragment: domain.Fragment{ID: "a"}, Distance: 0.1},
		{Fragment: domain.Fragment{ID: "b"}, Distance: 0.2},
		{Fragment: domain.Fragment{ID: "c"}, Distance: 0.3},
	}}
	r := New(store, staticKeywords{}, nil)

	got := r.Retrieve(context.Background(), "pregunta", 2)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Fragment.ID)
}

func TestRetrieveKBeyondAvailable(t *testing.T) {
	store := &fakeStore{matches: []domain.Match{
		{Fragment: domain.Fragment{ID: "a"}, Distance: 0.1},
	}}
	r := New(store, staticKeywords{}, nil)
	assert.Len(t, r.Retrieve(context.Background(), "pregunta", 10), 1)
}

func TestRetrieveEmptyStore(t *testing.T) {
	r := New(&fakeStore{}, staticKeywords{}, nil)
	assert.Empty(t, r.Retrieve(context.Background(), "pregunta", 5))
}

func TestRetrieveStoreFailureReturnsNoResults(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	r := New(store, staticKeywords{"mercosur"}, nil)
	assert.Empty(t, r.Retrieve(context.Background(), "pregunta", 5))
}
