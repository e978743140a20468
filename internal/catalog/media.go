package catalog

import "strings"

// MediaType identifies the kind of attachment rendered under a question.
type MediaType string

const (
	MediaImage MediaType = "image"
	MediaCode  MediaType = "code"
)

// maxAltLen caps image alt text, in runes.
const maxAltLen = 500

// Media is an optional question attachment.
type Media struct {
	Type     MediaType `json:"type" yaml:"type"`
	Src      string    `json:"src,omitempty" yaml:"src,omitempty"`
	Alt      string    `json:"alt,omitempty" yaml:"alt,omitempty"`
	Content  string    `json:"content,omitempty" yaml:"content,omitempty"`
	Language string    `json:"language,omitempty" yaml:"language,omitempty"`
}

// Allowed reports whether t is on the media allow-list.
func (t MediaType) Allowed() bool {
	return t == MediaImage || t == MediaCode
}

// SafeMedia returns a sanitized copy of the question's media, or nil when
// there is nothing renderable: missing media, a type outside the allow-list,
// or an image whose source fails sanitization.
func (q Question) SafeMedia() *Media {
	m := q.Media
	if m == nil || !m.Type.Allowed() {
		return nil
	}
	switch m.Type {
	case MediaImage:
		src, ok := SanitizeImageSrc(m.Src)
		if !ok {
			return nil
		}
		alt := m.Alt
		if r := []rune(alt); len(r) > maxAltLen {
			alt = string(r[:maxAltLen])
		}
		return &Media{Type: MediaImage, Src: src, Alt: alt}
	default:
		return &Media{Type: MediaCode, Content: m.Content, Language: m.Language}
	}
}

// SanitizeImageSrc accepts data:image/ URIs and relative paths only.
// Control characters are stripped first so they cannot hide a scheme.
// Any scheme (a colon before the first slash) and protocol-relative
// "//" URLs are rejected.
func SanitizeImageSrc(src string) (string, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return -1
		}
		return r
	}, src)
	if cleaned == "" {
		return "", false
	}

	lower := strings.TrimSpace(strings.ToLower(cleaned))
	if strings.HasPrefix(lower, "data:image/") {
		return cleaned, true
	}

	colon := strings.Index(lower, ":")
	slash := strings.Index(lower, "/")
	if colon != -1 && (slash == -1 || colon < slash) {
		return "", false
	}
	if strings.HasPrefix(lower, "//") {
		return "", false
	}
	return cleaned, true
}
