package chunker

import (
	"fmt"
	"strconv"
	"strings"

	"ecobot/internal/domain"
)

// WindowChunker splits text into fixed-size overlapping character windows.
// It deliberately ignores word and sentence boundaries: fragments are plain
// slices of the source text, which keeps indexing deterministic and cheap.
type WindowChunker struct {
	size    int
	overlap int
}

// NewWindowChunker creates a chunker with the given window size and overlap,
// both measured in characters. Overlap must be positive and smaller than size.
func NewWindowChunker(size, overlap int) (*WindowChunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap <= 0 || overlap >= size {
		return nil, fmt.Errorf("overlap must be in (0, %d), got %d", size, overlap)
	}
	return &WindowChunker{size: size, overlap: overlap}, nil
}

// Split returns the ordered windows of text. Consecutive windows share exactly
// the configured overlap, except possibly the last one, which may be shorter.
// Empty input yields no windows.
func (c *WindowChunker) Split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	step := c.size - c.overlap
	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// Fragment splits a document and wraps each window as a domain.Fragment with
// its id, ordinal and source metadata. Fragment ids are "<stem>_<ordinal>",
// unique within one rebuild of the collection.
func (c *WindowChunker) Fragment(doc domain.Document) []domain.Fragment {
	chunks := c.Split(doc.Content)
	stem := strings.TrimSuffix(doc.Name, ".txt")
	fragments := make([]domain.Fragment, len(chunks))
	for i, text := range chunks {
		fragments[i] = domain.Fragment{
			ID:             stem + "_" + strconv.Itoa(i),
			Text:           text,
			SourceName:     doc.Name,
			Ordinal:        i,
			TotalFragments: len(chunks),
		}
	}
	return fragments
}
