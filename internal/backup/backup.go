// Package backup exports learner progress to a JSON file and imports it
// back after validation and sanitization.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/abhisek/quizdeck/internal/stats"
	"github.com/abhisek/quizdeck/internal/store"
	"github.com/abhisek/quizdeck/internal/streak"
)

// Version is the newest export format this build reads and writes.
const Version = 1

// MaxFileSize caps import files.
const MaxFileSize = 5 << 20

// exportedAtLayout matches the millisecond UTC form used in export files.
const exportedAtLayout = "2006-01-02T15:04:05.000Z"

// Envelope is the export file.
type Envelope struct {
	Version    int            `json:"version"`
	ExportedAt string         `json:"exportedAt"`
	Stats      stats.Map      `json:"stats"`
	Bookmarks  []string       `json:"bookmarks"`
	Streak     *streak.Streak `json:"streak"`
}

// Gather snapshots the learner's progress.
func Gather(ctx context.Context, l *store.Learner, now time.Time) Envelope {
	return Envelope{
		Version:    Version,
		ExportedAt: now.UTC().Format(exportedAtLayout),
		Stats:      l.Stats(ctx),
		Bookmarks:  l.Bookmarks(ctx),
		Streak:     l.Streak(ctx),
	}
}

// Validate checks the shape of decoded JSON before it is sanitized.
// Absent or null stats and bookmarks are accepted.
func Validate(raw any) error {
	obj, ok := raw.(map[string]any)
	if !ok || obj == nil {
		return invalid(ErrNotObject, "")
	}

	v, ok := obj["version"].(float64)
	if !ok {
		return invalid(ErrUnknownFormat, "missing numeric version")
	}
	if v > Version {
		return invalid(ErrNewerVersion, fmt.Sprintf("version %v, supported %d", v, Version))
	}

	if s, present := obj["stats"]; present && s != nil {
		if _, ok := s.(map[string]any); !ok {
			return invalid(ErrBadStats, "")
		}
	}
	if b, present := obj["bookmarks"]; present && b != nil {
		if _, ok := b.([]any); !ok {
			return invalid(ErrBadBookmarks, "")
		}
	}
	return nil
}

// Sanitize builds an Envelope from validated JSON. Stats go through
// stats.Sanitize, bookmarks keep only non-empty unique strings and the
// streak is clamped by streak.Sanitize.
func Sanitize(raw map[string]any, now time.Time) Envelope {
	env := Envelope{
		Version:   stats.NonNegativeInt(raw["version"]),
		Stats:     stats.Map{},
		Bookmarks: []string{},
	}
	if at, ok := raw["exportedAt"].(string); ok {
		env.ExportedAt = at
	}
	if s, ok := raw["stats"].(map[string]any); ok {
		env.Stats = stats.Sanitize(s)
	}
	if b, ok := raw["bookmarks"].([]any); ok {
		seen := make(map[string]bool, len(b))
		for _, v := range b {
			id, ok := v.(string)
			if !ok || id == "" || seen[id] {
				continue
			}
			seen[id] = true
			env.Bookmarks = append(env.Bookmarks, id)
		}
	}
	if s, ok := raw["streak"].(map[string]any); ok {
		st := streak.Sanitize(s, now)
		env.Streak = &st
	}
	return env
}

// Apply replaces the learner's progress with env. A nil streak removes the
// stored one. It reports whether every write succeeded.
func Apply(ctx context.Context, l *store.Learner, env Envelope) bool {
	ok := l.SaveStats(ctx, env.Stats)
	ok = l.SaveBookmarks(ctx, env.Bookmarks) && ok
	if env.Streak != nil {
		ok = l.SaveStreak(ctx, *env.Streak) && ok
	} else {
		ok = l.RemoveStreak(ctx) && ok
	}
	return ok
}

// ReadFile loads and validates an export file. Size and extension are
// checked before the file is parsed.
func ReadFile(path string) (map[string]any, error) {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return nil, invalid(ErrNotJSONFile, filepath.Base(path))
	}

	fi, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat import file: %w", err)
	}
	if fi.Size() > MaxFileSize {
		return nil, invalid(ErrFileTooLarge, fmt.Sprintf("%d bytes, limit %d", fi.Size(), MaxFileSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}

	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, invalid(ErrInvalidJSON, err.Error())
	}
	if err := Validate(raw); err != nil {
		return nil, err
	}
	return raw.(map[string]any), nil
}

// Import reads path, sanitizes it and applies it to the learner.
func Import(ctx context.Context, l *store.Learner, path string, now time.Time) (Envelope, error) {
	raw, err := ReadFile(path)
	if err != nil {
		return Envelope{}, err
	}
	env := Sanitize(raw, now)
	if !Apply(ctx, l, env) {
		return env, fmt.Errorf("save imported progress")
	}
	return env, nil
}

// FileName is the export file name for a given day.
func FileName(now time.Time) string {
	return "quiz-progress-" + now.Format("2006-01-02") + ".json"
}

// WriteFile writes env as indented JSON into dir and returns the path.
func WriteFile(dir string, env Envelope, now time.Time) (string, error) {
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, FileName(now))
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}
	return path, nil
}
