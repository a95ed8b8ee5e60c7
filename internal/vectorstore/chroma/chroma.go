// Package chroma is a minimal REST adapter to a Chroma vector server.
// The server computes embeddings itself; this client only moves texts,
// metadata and distances.
package chroma

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"ecobot/internal/domain"
	"ecobot/internal/vectorstore"
)

// Store is a vectorstore.Store backed by a Chroma server collection.
type Store struct {
	url        string
	collection string
	client     *http.Client

	// collection id as assigned by the server, cached after Ensure
	id string
}

// Config contains connection details for a Chroma server.
type Config struct {
	URL        string
	Collection string
	Timeout    time.Duration
}

// New creates a Chroma store client. The collection is not touched until
// Ensure or Reset is called.
func New(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Store{
		url:        cfg.URL,
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

var _ vectorstore.Store = (*Store)(nil)

// Ensure gets or creates the collection with cosine similarity.
func (s *Store) Ensure(ctx context.Context) error {
	body := map[string]any{
		"name":          s.collection,
		"metadata":      map[string]any{"hnsw:space": "cosine"},
		"get_or_create": true,
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := s.postJSON(ctx, s.url+"/api/v1/collections", body, &resp); err != nil {
		return fmt.Errorf("ensuring collection %s: %w", s.collection, err)
	}
	s.id = resp.ID
	return nil
}

// Reset drops the collection by name and recreates it empty. Deleting a
// collection that does not exist is not an error.
func (s *Store) Reset(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/api/v1/collections/%s", s.url, s.collection), nil)
	if err != nil {
		return err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("deleting collection %s: %w", s.collection, err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode >= 300 && resp.StatusCode != http.StatusNotFound {
		return fmt.Errorf("deleting collection %s: %s", s.collection, resp.Status)
	}
	s.id = ""
	return s.Ensure(ctx)
}

// Add stores the fragments in one batch. The server embeds the texts and
// rejects the whole batch on id collision.
func (s *Store) Add(ctx context.Context, fragments []domain.Fragment) error {
	if len(fragments) == 0 {
		return nil
	}
	if err := s.ensureID(ctx); err != nil {
		return err
	}
	ids := make([]string, len(fragments))
	docs := make([]string, len(fragments))
	metas := make([]map[string]any, len(fragments))
	for i, f := range fragments {
		ids[i] = f.ID
		docs[i] = f.Text
		metas[i] = map[string]any{
			"source":       f.SourceName,
			"chunk":        f.Ordinal,
			"total_chunks": f.TotalFragments,
		}
	}
	body := map[string]any{"ids": ids, "documents": docs, "metadatas": metas}
	url := fmt.Sprintf("%s/api/v1/collections/%s/add", s.url, s.id)
	if err := s.postJSON(ctx, url, body, nil); err != nil {
		return fmt.Errorf("adding %d fragments: %w", len(fragments), err)
	}
	return nil
}

// Query returns the k nearest fragments by cosine distance, ascending.
func (s *Store) Query(ctx context.Context, text string, k int) ([]domain.Match, error) {
	if err := s.ensureID(ctx); err != nil {
		return nil, err
	}
	body := map[string]any{
		"query_texts": []string{text},
		"n_results":   k,
		"include":     []string{"documents", "metadatas", "distances"},
	}
	var resp struct {
		IDs       [][]string         `json:"ids"`
		Documents [][]string         `json:"documents"`
		Metadatas [][]map[string]any `json:"metadatas"`
		Distances [][]float64        `json:"distances"`
	}
	url := fmt.Sprintf("%s/api/v1/collections/%s/query", s.url, s.id)
	if err := s.postJSON(ctx, url, body, &resp); err != nil {
		return nil, fmt.Errorf("querying collection: %w", err)
	}
	if len(resp.IDs) == 0 {
		return nil, nil
	}

	matches := make([]domain.Match, 0, len(resp.IDs[0]))
	for i := range resp.IDs[0] {
		f := domain.Fragment{ID: resp.IDs[0][i]}
		if len(resp.Documents) > 0 && i < len(resp.Documents[0]) {
			f.Text = resp.Documents[0][i]
		}
		if len(resp.Metadatas) > 0 && i < len(resp.Metadatas[0]) {
			meta := resp.Metadatas[0][i]
			if v, ok := meta["source"].(string); ok {
				f.SourceName = v
			}
			if v, ok := meta["chunk"].(float64); ok {
				f.Ordinal = int(v)
			}
			if v, ok := meta["total_chunks"].(float64); ok {
				f.TotalFragments = int(v)
			}
		}
		var dist float64
		if len(resp.Distances) > 0 && i < len(resp.Distances[0]) {
			dist = resp.Distances[0][i]
		}
		matches = append(matches, domain.Match{Fragment: f, Distance: dist})
	}
	return matches, nil
}

// Count returns the number of fragments in the collection.
func (s *Store) Count(ctx context.Context) (int, error) {
	if err := s.ensureID(ctx); err != nil {
		return 0, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/v1/collections/%s/count", s.url, s.id), nil)
	if err != nil {
		return 0, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("counting fragments: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return 0, fmt.Errorf("counting fragments: %s", resp.Status)
	}
	var count int
	if err := json.NewDecoder(resp.Body).Decode(&count); err != nil {
		return 0, fmt.Errorf("decoding count: %w", err)
	}
	return count, nil
}

// Sources lists the distinct document names recorded in fragment metadata.
func (s *Store) Sources(ctx context.Context) ([]string, error) {
	if err := s.ensureID(ctx); err != nil {
		return nil, err
	}
	body := map[string]any{"include": []string{"metadatas"}}
	var resp struct {
		Metadatas []map[string]any `json:"metadatas"`
	}
	url := fmt.Sprintf("%s/api/v1/collections/%s/get", s.url, s.id)
	if err := s.postJSON(ctx, url, body, &resp); err != nil {
		return nil, fmt.Errorf("listing metadata: %w", err)
	}
	seen := make(map[string]struct{})
	for _, meta := range resp.Metadatas {
		if v, ok := meta["source"].(string); ok {
			seen[v] = struct{}{}
		}
	}
	sources := make([]string, 0, len(seen))
	for name := range seen {
		sources = append(sources, name)
	}
	sort.Strings(sources)
	return sources, nil
}

func (s *Store) ensureID(ctx context.Context) error {
	if s.id != "" {
		return nil
	}
	return s.Ensure(ctx)
}

func (s *Store) postJSON(ctx context.Context, url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("chroma POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
