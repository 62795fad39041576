package models_test

import (
	"testing"

	"github.com/jonesrussell/content-manager/internal/models"
)

func TestContentBlock_Validate(t *testing.T) {
	tests := []struct {
		name    string
		block   models.ContentBlock
		wantErr bool
	}{
		{
			name:  "valid heading",
			block: models.ContentBlock{Type: models.BlockHeading, Level: 2, Text: "Overview"},
		},
		{
			name:    "heading without text",
			block:   models.ContentBlock{Type: models.BlockHeading, Level: 2},
			wantErr: true,
		},
		{
			name:    "heading level zero",
			block:   models.ContentBlock{Type: models.BlockHeading, Text: "Overview"},
			wantErr: true,
		},
		{
			name:    "heading level seven",
			block:   models.ContentBlock{Type: models.BlockHeading, Level: 7, Text: "Overview"},
			wantErr: true,
		},
		{
			name:    "heading carrying items",
			block:   models.ContentBlock{Type: models.BlockHeading, Level: 1, Text: "x", Items: []string{"a"}},
			wantErr: true,
		},
		{
			name:  "valid paragraph",
			block: models.ContentBlock{Type: models.BlockParagraph, Text: "Some prose."},
		},
		{
			name:    "paragraph with blank text",
			block:   models.ContentBlock{Type: models.BlockParagraph, Text: "   "},
			wantErr: true,
		},
		{
			name:    "paragraph carrying level",
			block:   models.ContentBlock{Type: models.BlockParagraph, Level: 2, Text: "x"},
			wantErr: true,
		},
		{
			name:  "valid list",
			block: models.ContentBlock{Type: models.BlockList, Items: []string{"one", "two"}},
		},
		{
			name:    "empty list",
			block:   models.ContentBlock{Type: models.BlockList},
			wantErr: true,
		},
		{
			name:    "list with blank item",
			block:   models.ContentBlock{Type: models.BlockList, Items: []string{"one", " "}},
			wantErr: true,
		},
		{
			name:    "list carrying text",
			block:   models.ContentBlock{Type: models.BlockList, Items: []string{"one"}, Text: "x"},
			wantErr: true,
		},
		{
			name:  "valid code without language",
			block: models.ContentBlock{Type: models.BlockCode, Text: "fmt.Println()"},
		},
		{
			name:  "valid code with language",
			block: models.ContentBlock{Type: models.BlockCode, Language: "go", Text: "fmt.Println()"},
		},
		{
			name:    "code without text",
			block:   models.ContentBlock{Type: models.BlockCode, Language: "go"},
			wantErr: true,
		},
		{
			name:    "unknown type",
			block:   models.ContentBlock{Type: "video", Text: "x"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.block.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestContentBlock_PlainText(t *testing.T) {
	tests := []struct {
		name  string
		block models.ContentBlock
		want  string
	}{
		{
			name:  "heading",
			block: models.ContentBlock{Type: models.BlockHeading, Level: 1, Text: "Title"},
			want:  "Title",
		},
		{
			name:  "paragraph",
			block: models.ContentBlock{Type: models.BlockParagraph, Text: "body text"},
			want:  "body text",
		},
		{
			name:  "list joins items",
			block: models.ContentBlock{Type: models.BlockList, Items: []string{"alpha", "beta"}},
			want:  "alpha beta",
		},
		{
			name:  "code",
			block: models.ContentBlock{Type: models.BlockCode, Language: "go", Text: "x := 1"},
			want:  "x := 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.block.PlainText(); got != tt.want {
				t.Errorf("PlainText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContentBlock_Words(t *testing.T) {
	block := models.ContentBlock{Type: models.BlockList, Items: []string{"one two", "three"}}
	if got := block.Words(); got != 3 {
		t.Errorf("Words() = %d, want 3", got)
	}
}
