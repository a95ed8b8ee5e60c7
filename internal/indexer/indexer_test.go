package indexer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecobot/internal/chunker"
	"ecobot/internal/vectorstore/memory"
)

func newTestIndexer(t *testing.T, docsDir string) (*Indexer, *memory.Store) {
	t.Helper()
	ch, err := chunker.NewWindowChunker(1000, 200)
	require.NoError(t, err)
	store := memory.New()
	baseline := filepath.Join(t.TempDir(), ".doc_hash")
	return New(store, ch, docsDir, baseline, nil), store
}

func writeDoc(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestRebuild(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "roma.txt", "Tratado de Roma 1957 creó la CEE.")
	writeDoc(t, dir, "mercosur.txt", "El Mercosur se fundó en 1991.")
	ix, store := newTestIndexer(t, dir)

	result, err := ix.Rebuild(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, result.Documents)
	assert.Equal(t, 2, result.Fragments)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	sources, err := store.Sources(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"mercosur.txt", "roma.txt"}, sources)
}

func TestRebuildEmptyFolder(t *testing.T) {
	ix, _ := newTestIndexer(t, t.TempDir())
	_, err := ix.Rebuild(context.Background())
	assert.Error(t, err)
}

func TestRebuildReplacesCollection(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "roma.txt", "Tratado de Roma 1957 creó la CEE.")
	ix, store := newTestIndexer(t, dir)

	// Rebuilding twice must not collide on fragment ids: the collection is
	// replaced, never appended to.
	_, err := ix.Rebuild(context.Background())
	require.NoError(t, err)
	_, err = ix.Rebuild(context.Background())
	require.NoError(t, err)

	count, err := store.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRebuildIfChanged(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "roma.txt", "Tratado de Roma 1957 creó la CEE.")
	ix, _ := newTestIndexer(t, dir)
	ctx := context.Background()

	// First run: no baseline yet, must rebuild.
	_, rebuilt, err := ix.RebuildIfChanged(ctx)
	require.NoError(t, err)
	assert.True(t, rebuilt)

	// Unchanged corpus: no rebuild.
	_, rebuilt, err = ix.RebuildIfChanged(ctx)
	require.NoError(t, err)
	assert.False(t, rebuilt)

	// Touching a file changes the fingerprint and forces a rebuild.
	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "roma.txt"), later, later))
	_, rebuilt, err = ix.RebuildIfChanged(ctx)
	require.NoError(t, err)
	assert.True(t, rebuilt)
}

func TestRebuildIfChangedMissingFolder(t *testing.T) {
	ix, _ := newTestIndexer(t, filepath.Join(t.TempDir(), "no-existe"))

	// Fingerprinting fails, so the indexer assumes a change; the rebuild then
	// reports the underlying problem instead of silently skipping.
	_, _, err := ix.RebuildIfChanged(context.Background())
	assert.Error(t, err)
}

func TestEndToEndMercosurRanking(t *testing.T) {
	dir := t.TempDir()
	writeDoc(t, dir, "roma.txt", "Tratado de Roma 1957 creó la CEE.")
	writeDoc(t, dir, "mercosur.txt", "El Mercosur se fundó en 1991.")
	ix, store := newTestIndexer(t, dir)

	_, err := ix.Rebuild(context.Background())
	require.NoError(t, err)

	matches, err := store.Query(context.Background(), "¿Cuándo se fundó el Mercosur?", 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "mercosur.txt", matches[0].Fragment.SourceName)
}
