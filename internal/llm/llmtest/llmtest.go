// Package llmtest provides scripted llm.Client doubles for tests.
package llmtest

import (
	"context"
	"errors"
	"io"

	"ecobot/internal/llm"
)

// Client is a scripted llm.Client. Unset hooks fail the call.
type Client struct {
	CompleteFunc func(ctx context.Context, req llm.Request) (string, error)
	StreamFunc   func(ctx context.Context, req llm.Request) (llm.Stream, error)

	// LastRequest records the most recent request, streaming or not.
	LastRequest llm.Request
}

func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	c.LastRequest = req
	if c.CompleteFunc == nil {
		return "", errors.New("llmtest: Complete not scripted")
	}
	return c.CompleteFunc(ctx, req)
}

func (c *Client) Stream(ctx context.Context, req llm.Request) (llm.Stream, error) {
	c.LastRequest = req
	if c.StreamFunc == nil {
		return nil, errors.New("llmtest: Stream not scripted")
	}
	return c.StreamFunc(ctx, req)
}

// Stream yields the given deltas in order, then io.EOF (or Err if set).
type Stream struct {
	Deltas []string
	Err    error
	Closed bool

	next int
}

// NewStream builds a stream over the given deltas.
func NewStream(deltas ...string) *Stream {
	return &Stream{Deltas: deltas}
}

func (s *Stream) Recv() (string, error) {
	if s.next >= len(s.Deltas) {
		if s.Err != nil {
			return "", s.Err
		}
		return "", io.EOF
	}
	d := s.Deltas[s.next]
	s.next++
	return d, nil
}

func (s *Stream) Close() error {
	s.Closed = true
	return nil
}
