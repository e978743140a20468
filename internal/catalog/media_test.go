package catalog

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeImageSrc(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		want   string
		wantOK bool
	}{
		{"relative path", "images/diagram.png", "images/diagram.png", true},
		{"dot relative", "./img/a.svg", "./img/a.svg", true},
		{"data uri", "data:image/png;base64,AAAA", "data:image/png;base64,AAAA", true},
		{"data uri upper", "DATA:IMAGE/gif;base64,R0", "DATA:IMAGE/gif;base64,R0", true},
		{"empty", "", "", false},
		{"only control chars", "\x01\x02", "", false},
		{"javascript", "javascript:alert(1)", "", false},
		{"javascript hidden by tab", "java\tscript:alert(1)", "", false},
		{"https", "https://example.com/a.png", "", false},
		{"protocol relative", "//evil.example/a.png", "", false},
		{"data non-image", "data:text/html,<b>x</b>", "", false},
		{"colon after slash", "img/a:b.png", "img/a:b.png", true},
		{"newline stripped", "img/\na.png", "img/a.png", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SanitizeImageSrc(tt.src)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("SanitizeImageSrc(%q) = (%q, %v), want (%q, %v)", tt.src, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestSafeMedia(t *testing.T) {
	longAlt := strings.Repeat("a", 600)
	tests := []struct {
		name  string
		media *Media
		want  *Media
	}{
		{"nil", nil, nil},
		{"unknown type", &Media{Type: "video", Src: "a.mp4"}, nil},
		{"bad image src", &Media{Type: MediaImage, Src: "https://x/a.png"}, nil},
		{"image", &Media{Type: MediaImage, Src: "a.png", Alt: "A"}, &Media{Type: MediaImage, Src: "a.png", Alt: "A"}},
		{"code", &Media{Type: MediaCode, Content: "ls -la", Language: "sh"}, &Media{Type: MediaCode, Content: "ls -la", Language: "sh"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Question{Media: tt.media}.SafeMedia()
			if (got == nil) != (tt.want == nil) {
				t.Fatalf("SafeMedia = %+v, want %+v", got, tt.want)
			}
			if got != nil && *got != *tt.want {
				t.Errorf("SafeMedia = %+v, want %+v", *got, *tt.want)
			}
		})
	}

	got := Question{Media: &Media{Type: MediaImage, Src: "a.png", Alt: longAlt}}.SafeMedia()
	if len(got.Alt) != maxAltLen {
		t.Errorf("alt length = %d, want %d", len(got.Alt), maxAltLen)
	}

	wide := Question{Media: &Media{Type: MediaImage, Src: "a.png", Alt: strings.Repeat("é", 600)}}.SafeMedia()
	if !utf8.ValidString(wide.Alt) {
		t.Errorf("truncated alt is not valid UTF-8: %q", wide.Alt)
	}
	if n := utf8.RuneCountInString(wide.Alt); n != maxAltLen {
		t.Errorf("alt runes = %d, want %d", n, maxAltLen)
	}
}
