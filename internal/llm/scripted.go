package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// Reply is one canned Scripted outcome.
type Reply struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// Scripted is a deterministic Provider that plays replies in order and
// records requests. Replies are validated against the request schema like
// a real provider's output.
type Scripted struct {
	mu       sync.Mutex
	replies  []Reply
	requests []Request
}

func NewScripted(replies ...Reply) *Scripted {
	return &Scripted{replies: replies}
}

func (s *Scripted) ModelID() string { return "scripted" }

func (s *Scripted) Generate(_ context.Context, req Request) (*Response, error) {
	s.mu.Lock()
	s.requests = append(s.requests, req)
	if len(s.replies) == 0 {
		s.mu.Unlock()
		return nil, &Error{Kind: KindUnavailable}
	}
	r := s.replies[0]
	s.replies = s.replies[1:]
	s.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	return complete(req, r.Content, r.Usage, "scripted", StopEnd)
}

// Requests returns a copy of the requests seen so far.
func (s *Scripted) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}
