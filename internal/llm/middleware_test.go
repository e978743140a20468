package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/quizdeck/internal/store"
)

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond, Multiplier: 2}
}

var okReply = Reply{Content: json.RawMessage(`{"ok":true}`)}

func TestRetry_SucceedsFirstAttempt(t *testing.T) {
	s := NewScripted(okReply)
	resp, err := WithRetry(s, fastRetry(), nil).Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Fatalf("content = %s", resp.Content)
	}
	if n := len(s.Requests()); n != 1 {
		t.Fatalf("calls = %d, want 1", n)
	}
}

func TestRetry_UnavailableThenSuccess(t *testing.T) {
	s := NewScripted(Reply{Err: &Error{Kind: KindUnavailable, Err: errors.New("down")}}, okReply)
	if _, err := WithRetry(s, fastRetry(), nil).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n := len(s.Requests()); n != 2 {
		t.Fatalf("calls = %d, want 2", n)
	}
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	down := Reply{Err: &Error{Kind: KindRateLimit}}
	s := NewScripted(down, down, down, okReply)
	_, err := WithRetry(s, fastRetry(), nil).Generate(context.Background(), Request{})
	if KindOf(err) != KindRateLimit {
		t.Fatalf("err = %v, want rate limit", err)
	}
	if n := len(s.Requests()); n != 3 {
		t.Fatalf("calls = %d, want 3", n)
	}
}

func TestRetry_NonRetryableKinds(t *testing.T) {
	for _, kind := range []Kind{KindTruncated, KindRejected} {
		t.Run(kind.String(), func(t *testing.T) {
			s := NewScripted(Reply{Err: &Error{Kind: kind}}, okReply)
			_, err := WithRetry(s, fastRetry(), nil).Generate(context.Background(), Request{})
			if KindOf(err) != kind {
				t.Fatalf("err = %v, want %v", err, kind)
			}
			if n := len(s.Requests()); n != 1 {
				t.Fatalf("calls = %d, want 1", n)
			}
		})
	}
}

func TestRetry_InvalidRetriedOnce(t *testing.T) {
	bad := Reply{Err: &Error{Kind: KindInvalid}}
	s := NewScripted(bad, bad, okReply)
	_, err := WithRetry(s, fastRetry(), nil).Generate(context.Background(), Request{})
	if KindOf(err) != KindInvalid {
		t.Fatalf("err = %v, want invalid", err)
	}
	if n := len(s.Requests()); n != 2 {
		t.Fatalf("calls = %d, want 2", n)
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewScripted(Reply{Err: &Error{Kind: KindUnavailable}}, okReply)
	if _, err := WithRetry(s, fastRetry(), nil).Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error")
	}
	if n := len(s.Requests()); n != 1 {
		t.Fatalf("calls = %d, want 1", n)
	}
}

func TestRetry_HonoursRetryAfter(t *testing.T) {
	r := &retrier{cfg: fastRetry()}
	got := r.backoff(0, fmt.Errorf("wrapped: %w", &Error{Kind: KindRateLimit, RetryAfter: 7 * time.Second}))
	if got != 7*time.Second {
		t.Fatalf("backoff = %v, want 7s", got)
	}
	got = r.backoff(5, &Error{Kind: KindUnavailable})
	if got > 6*time.Millisecond {
		t.Fatalf("backoff = %v, want capped near MaxWait", got)
	}
}

func TestRecorder_AppendsEvents(t *testing.T) {
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	defer st.Close()
	repo := st.EventRepo()

	s := NewScripted(
		Reply{Content: json.RawMessage(`{"ok":true}`), Usage: Usage{InputTokens: 10, OutputTokens: 4}},
		Reply{Err: &Error{Kind: KindRejected, Err: errors.New("bad key")}},
	)
	p := WithRecorder(s, "scripted", repo, nil)
	ctx := WithPurpose(context.Background(), PurposeDraft)

	if _, err := p.Generate(ctx, UserPrompt("be brief", "hello")); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := p.Generate(ctx, UserPrompt("be brief", "again")); err == nil {
		t.Fatal("second call should fail")
	}

	events, err := repo.QueryLLMEvents(ctx, store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}
	failed, ok := events[0], events[1]
	if !ok.Success || ok.InputTokens != 10 || ok.OutputTokens != 4 || ok.Purpose != PurposeDraft {
		t.Errorf("success event = %+v", ok.LLMRequestEventData)
	}
	if !strings.Contains(ok.RequestBody, "[system]\nbe brief") || !strings.Contains(ok.RequestBody, "hello") {
		t.Errorf("request body = %q", ok.RequestBody)
	}
	if failed.Success || !strings.Contains(failed.ErrorMessage, "bad key") {
		t.Errorf("failure event = %+v", failed.LLMRequestEventData)
	}
}

func TestRecorder_NilRepo(t *testing.T) {
	p := WithRecorder(NewScripted(okReply), "scripted", nil, nil)
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

type slowProvider struct{}

func (slowProvider) ModelID() string { return "slow" }

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestTimeout(t *testing.T) {
	p := WithTimeout(slowProvider{}, 5*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if WithTimeout(slowProvider{}, 0) != (slowProvider{}) {
		t.Fatal("zero timeout should return the provider unchanged")
	}
}
