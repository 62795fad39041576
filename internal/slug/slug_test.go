package slug_test

import (
	"strings"
	"testing"

	"github.com/jonesrussell/content-manager/internal/slug"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "simple title",
			title: "Hello World",
			want:  "hello-world",
		},
		{
			name:  "mixed case and punctuation",
			title: "Go 1.22: What's New?",
			want:  "go-122-whats-new",
		},
		{
			name:  "leading and trailing whitespace",
			title: "  spaced out  ",
			want:  "spaced-out",
		},
		{
			name:  "whitespace runs collapse",
			title: "a   lot\tof\n\nspace",
			want:  "a-lot-of-space",
		},
		{
			name:  "existing hyphens kept, runs collapsed",
			title: "pre-existing -- hyphens",
			want:  "pre-existing-hyphens",
		},
		{
			name:  "fully invalid title yields empty slug",
			title: "!!! ??? ***",
			want:  "",
		},
		{
			name:  "empty title",
			title: "",
			want:  "",
		},
		{
			name:  "unicode stripped",
			title: "Café au lait",
			want:  "caf-au-lait",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := slug.Derive(tt.title); got != tt.want {
				t.Errorf("Derive(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestDerive_Truncation(t *testing.T) {
	long := strings.Repeat("word ", 30)
	got := slug.Derive(long)

	if len(got) > 50 {
		t.Errorf("Derive() length = %d, want <= 50", len(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Errorf("Derive() = %q, want no trailing hyphen after truncation", got)
	}
}

func TestDerive_IdempotentOverOwnOutput(t *testing.T) {
	titles := []string{
		"Hello World",
		"Go 1.22: What's New?",
		"pre-existing -- hyphens",
		"Café au lait",
		"!!! ??? ***",
		strings.Repeat("word ", 30), // truncated at 50
	}

	for _, title := range titles {
		once := slug.Derive(title)
		if twice := slug.Derive(once); twice != once {
			t.Errorf("Derive(Derive(%q)) = %q, want %q", title, twice, once)
		}
	}
}

func TestDerive_Deterministic(t *testing.T) {
	title := "The Same Title Every Time"
	first := slug.Derive(title)
	for range 5 {
		if got := slug.Derive(title); got != first {
			t.Fatalf("Derive(%q) not deterministic: %q != %q", title, got, first)
		}
	}
}
