package corpus

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFingerprintDeterminism(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "unidad1.txt", "Tratado de Roma 1957 creó la CEE.")
	writeFile(t, dir, "unidad2.txt", "El Mercosur se fundó en 1991.")

	first, err := Fingerprint(dir)
	require.NoError(t, err)
	second, err := Fingerprint(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Len(t, first, 32)
}

func TestFingerprintChangesOnAdd(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "unidad1.txt", "contenido")
	before, err := Fingerprint(dir)
	require.NoError(t, err)

	writeFile(t, dir, "unidad2.txt", "más contenido")
	after, err := Fingerprint(dir)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestFingerprintChangesOnRemove(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "unidad1.txt", "contenido")
	path := writeFile(t, dir, "unidad2.txt", "más contenido")
	before, err := Fingerprint(dir)
	require.NoError(t, err)

	require.NoError(t, os.Remove(path))
	after, err := Fingerprint(dir)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestFingerprintChangesOnTouch(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "unidad1.txt", "contenido")
	before, err := Fingerprint(dir)
	require.NoError(t, err)

	later := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))
	after, err := Fingerprint(dir)
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestFingerprintIgnoresOtherExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "unidad1.txt", "contenido")
	before, err := Fingerprint(dir)
	require.NoError(t, err)

	writeFile(t, dir, "apuntes.pdf", "binario")
	after, err := Fingerprint(dir)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFingerprintMissingFolder(t *testing.T) {
	_, err := Fingerprint(filepath.Join(t.TempDir(), "no-existe"))
	assert.Error(t, err)
}

func TestBaselineRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", ".doc_hash")

	stored, err := LoadBaseline(path)
	require.NoError(t, err)
	assert.Empty(t, stored)

	require.NoError(t, SaveBaseline(path, "abc123"))
	stored, err = LoadBaseline(path)
	require.NoError(t, err)
	assert.Equal(t, "abc123", stored)
}

func TestChanged(t *testing.T) {
	assert.False(t, Changed("a", "a"))
	assert.True(t, Changed("a", "b"))
	// Absent values fail safe toward "changed".
	assert.True(t, Changed("", "a"))
	assert.True(t, Changed("a", ""))
	assert.True(t, Changed("", ""))
}

func TestLoadDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "unidad2.txt", "El Mercosur se fundó en 1991.")
	writeFile(t, dir, "unidad1.txt", "Tratado de Roma 1957 creó la CEE.")
	writeFile(t, dir, "notas.md", "ignorado")

	docs, err := LoadDocuments(dir)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "unidad1.txt", docs[0].Name)
	assert.Equal(t, "unidad2.txt", docs[1].Name)
	assert.Equal(t, "El Mercosur se fundó en 1991.", docs[1].Content)
	assert.Equal(t, int64(len("El Mercosur se fundó en 1991.")), docs[1].SizeBytes)
}

func TestLoadDocumentsMissingFolder(t *testing.T) {
	_, err := LoadDocuments(filepath.Join(t.TempDir(), "no-existe"))
	assert.Error(t, err)
}
