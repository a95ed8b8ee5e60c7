package domain

import "time"

// Document is a single course text file as read from the documents folder.
// It is immutable for the duration of one indexing run.
type Document struct {
	Name       string
	Content    string
	SizeBytes  int64
	ModifiedAt time.Time
}

// Fragment is a contiguous slice of a document's content, the unit stored in
// and retrieved from the vector collection.
type Fragment struct {
	ID             string
	Text           string
	SourceName     string
	Ordinal        int
	TotalFragments int
}

// Match is a fragment returned by a vector store query together with its
// cosine distance to the query (0 means identical).
type Match struct {
	Fragment Fragment
	Distance float64
}

// RetrievedFragment is a reranked candidate: the raw semantic distance, the
// number of extracted keywords present in the text, and the combined score
// (lower is better).
type RetrievedFragment struct {
	Fragment    Fragment
	Distance    float64
	KeywordHits int
	Score       float64
}

// SourceRef identifies where a retrieved fragment came from, for citation.
type SourceRef struct {
	SourceName     string
	Ordinal        int
	TotalFragments int
}

// Ref returns the citation reference for a retrieved fragment.
func (r RetrievedFragment) Ref() SourceRef {
	return SourceRef{
		SourceName:     r.Fragment.SourceName,
		Ordinal:        r.Fragment.Ordinal,
		TotalFragments: r.Fragment.TotalFragments,
	}
}
