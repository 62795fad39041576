package models

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/content-manager/internal/apperrors"
)

// BlockType tags a content block variant. The tag fully determines which
// fields of ContentBlock may be populated.
type BlockType string

const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockList      BlockType = "list"
	BlockCode      BlockType = "code"
)

const (
	minHeadingLevel = 1
	maxHeadingLevel = 6
)

// ContentBlock is one typed unit of an article body. It is a tagged union:
// heading uses Level+Text, paragraph uses Text, list uses Items, code uses
// Language+Text. Validate rejects blocks that populate fields outside their
// tag, so a stored block can always be rendered by switching on Type alone.
type ContentBlock struct {
	Type     BlockType `json:"type"`
	Level    int       `json:"level,omitempty"`
	Text     string    `json:"text,omitempty"`
	Items    []string  `json:"items,omitempty"`
	Language string    `json:"language,omitempty"`
}

// Validate checks that the block carries exactly the fields its tag
// requires: required fields non-empty, foreign fields empty.
func (b ContentBlock) Validate() error {
	switch b.Type {
	case BlockHeading:
		if strings.TrimSpace(b.Text) == "" {
			return apperrors.Validation("text", "heading text is required")
		}
		if b.Level < minHeadingLevel || b.Level > maxHeadingLevel {
			return apperrors.Validation("level", fmt.Sprintf("heading level must be between %d and %d", minHeadingLevel, maxHeadingLevel))
		}
		if len(b.Items) > 0 || b.Language != "" {
			return apperrors.Validation("type", "heading block must not carry items or language")
		}
	case BlockParagraph:
		if strings.TrimSpace(b.Text) == "" {
			return apperrors.Validation("text", "paragraph text is required")
		}
		if b.Level != 0 || len(b.Items) > 0 || b.Language != "" {
			return apperrors.Validation("type", "paragraph block must not carry level, items, or language")
		}
	case BlockList:
		if len(b.Items) == 0 {
			return apperrors.Validation("items", "list requires at least one item")
		}
		for i, item := range b.Items {
			if strings.TrimSpace(item) == "" {
				return apperrors.Validation("items", fmt.Sprintf("list item %d is empty", i))
			}
		}
		if b.Level != 0 || b.Text != "" || b.Language != "" {
			return apperrors.Validation("type", "list block must not carry level, text, or language")
		}
	case BlockCode:
		if b.Text == "" {
			return apperrors.Validation("text", "code text is required")
		}
		if b.Level != 0 || len(b.Items) > 0 {
			return apperrors.Validation("type", "code block must not carry level or items")
		}
	default:
		return apperrors.Validation("type", fmt.Sprintf("unknown block type %q", b.Type))
	}
	return nil
}

// PlainText returns the textual content of the block for search and word
// counting. The switch is exhaustive over the block tags; a new tag must be
// handled here before it can be rendered anywhere.
func (b ContentBlock) PlainText() string {
	switch b.Type {
	case BlockHeading, BlockParagraph, BlockCode:
		return b.Text
	case BlockList:
		return strings.Join(b.Items, " ")
	default:
		return ""
	}
}

// Words counts whitespace-delimited tokens in the block's textual content.
func (b ContentBlock) Words() int {
	return len(strings.Fields(b.PlainText()))
}
