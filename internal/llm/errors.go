package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind classifies provider failures for retry decisions.
type Kind int

const (
	// KindUnavailable is a network failure or 5xx.
	KindUnavailable Kind = iota

	// KindRateLimit is a 429.
	KindRateLimit

	// KindInvalid is output that is not JSON or fails the schema.
	KindInvalid

	// KindTruncated is structured output cut off at MaxTokens.
	KindTruncated

	// KindRejected is a 4xx other than 429: bad key, bad model, bad request.
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindRateLimit:
		return "rate limited"
	case KindInvalid:
		return "invalid response"
	case KindTruncated:
		return "response truncated at max tokens"
	case KindRejected:
		return "request rejected"
	default:
		return "provider unavailable"
	}
}

// Error is returned by every provider.
type Error struct {
	Kind Kind
	Err  error

	// RetryAfter is the provider's hint for KindRateLimit, if any.
	RetryAfter time.Duration

	// Content is the offending output for KindInvalid and KindTruncated.
	Content json.RawMessage
}

func (e *Error) Error() string {
	if e.Err == nil {
		return "llm: " + e.Kind.String()
	}
	return fmt.Sprintf("llm: %s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err. Errors not produced by a provider count
// as KindUnavailable.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnavailable
}

// fromStatus maps an HTTP status from an SDK error to an *Error.
func fromStatus(status int, err error) error {
	switch {
	case status == http.StatusTooManyRequests:
		return &Error{Kind: KindRateLimit, Err: err}
	case status >= 500 || status == 0:
		return &Error{Kind: KindUnavailable, Err: err}
	case status >= 400:
		return &Error{Kind: KindRejected, Err: err}
	default:
		return &Error{Kind: KindUnavailable, Err: err}
	}
}
