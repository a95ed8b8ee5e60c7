// Package llm defines the completion boundary shared by the keyword
// extractor, the answer generator and the quiz generator.
package llm

import "context"

// Chat roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one entry of a chat completion conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request describes a single chat completion call.
type Request struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

// Client issues chat completions against an LLM provider.
type Client interface {
	// Complete performs a non-streaming completion and returns the full text.
	Complete(ctx context.Context, req Request) (string, error)
	// Stream starts a streaming completion. The returned stream yields text
	// deltas in order and must be closed by the caller.
	Stream(ctx context.Context, req Request) (Stream, error)
}

// Stream is a single-consume sequence of incremental text deltas. Recv
// returns io.EOF when the completion is finished. Close may be called at any
// time to abandon the stream without leaking the underlying connection.
type Stream interface {
	Recv() (string, error)
	Close() error
}
