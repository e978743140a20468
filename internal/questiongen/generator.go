// Package questiongen drafts new multiple-choice questions for a module with
// an LLM. Drafts are written for review and never enter the catalog directly.
package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/llm"
	"github.com/abhisek/quizdeck/internal/logger"
)

// MaxCount caps one request.
const MaxCount = 20

var ErrBadCount = fmt.Errorf("count must be between 1 and %d", MaxCount)

// Config controls generation.
type Config struct {
	MaxTokens   int
	Temperature float64

	// MaxExisting is how many existing questions are listed in the prompt.
	MaxExisting int
}

func DefaultConfig() Config {
	return Config{MaxTokens: 4096, Temperature: 0.7, MaxExisting: 40}
}

// Input is one drafting request.
type Input struct {
	Module *catalog.Module
	Topic  string

	// Block pins every draft to one block. Empty lets the model choose.
	Block string
	Count int
}

// Rejection is a draft dropped by validation.
type Rejection struct {
	Question string
	Reason   string
}

// Result holds accepted drafts and the reasons others were dropped.
type Result struct {
	Questions []catalog.Question
	Rejected  []Rejection
	Usage     llm.Usage
}

// Generator drafts questions through an llm.Provider.
type Generator struct {
	provider llm.Provider
	cfg      Config
	log      *logger.Logger
}

func New(provider llm.Provider, cfg Config, log *logger.Logger) *Generator {
	if log == nil {
		log = logger.Nop()
	}
	return &Generator{provider: provider, cfg: cfg, log: log}
}

// Draft asks the model for in.Count questions and keeps those that pass
// structural validation and do not duplicate an existing or earlier draft.
func (g *Generator) Draft(ctx context.Context, in Input) (*Result, error) {
	if in.Module == nil {
		return nil, errors.New("module is required")
	}
	if in.Count < 1 || in.Count > MaxCount {
		return nil, ErrBadCount
	}

	req := llm.UserPrompt(systemPrompt, buildUserMessage(in, g.cfg))
	req.Schema = DraftSchema
	req.MaxTokens = g.cfg.MaxTokens
	req.Temperature = g.cfg.Temperature

	resp, err := g.provider.Generate(llm.WithPurpose(ctx, llm.PurposeDraft), req)
	if err != nil {
		return nil, fmt.Errorf("generate drafts: %w", err)
	}

	var out draftOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse drafts: %w", err)
	}

	res := &Result{Usage: resp.Usage}
	seen := newDedup(in.Module.Questions)
	for _, d := range out.Questions {
		q := toQuestion(in, d)
		if reason := check(q, seen); reason != "" {
			res.Rejected = append(res.Rejected, Rejection{Question: q.Question, Reason: reason})
			continue
		}
		seen.add(q.Question)
		res.Questions = append(res.Questions, q)
	}

	g.log.Info("questions drafted", "module", in.Module.ID,
		"requested", in.Count, "accepted", len(res.Questions), "rejected", len(res.Rejected))
	return res, nil
}

func toQuestion(in Input, d draftQuestion) catalog.Question {
	block := d.Block
	if in.Block != "" {
		block = in.Block
	}
	opts := make([]string, len(d.Options))
	for i, o := range d.Options {
		opts[i] = strings.TrimSpace(o)
	}
	return catalog.Question{
		ID:            draftID(in.Module.ID),
		Block:         strings.TrimSpace(block),
		Question:      strings.TrimSpace(d.Question),
		Options:       opts,
		CorrectAnswer: d.CorrectIndex,
		Explanation:   strings.TrimSpace(d.Explanation),
	}
}

// draftID is "<module>-draft-<8 hex>", distinct from hand-written IDs.
func draftID(moduleID string) string {
	return moduleID + "-draft-" + uuid.NewString()[:8]
}
