package models

import (
	"fmt"
	"strings"

	"github.com/jonesrussell/content-manager/internal/apperrors"
)

// ArticleStatus is the closed publication state of an article.
type ArticleStatus string

const (
	ArticleDraft     ArticleStatus = "draft"
	ArticlePublished ArticleStatus = "published"
)

// Valid reports whether the status is one of the known values.
func (s ArticleStatus) Valid() bool {
	return s == ArticleDraft || s == ArticlePublished
}

// wordsPerMinute is the reading speed used to derive reading time.
const wordsPerMinute = 200

// MoveDirection selects where MoveBlock shifts a block.
type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

// Article is a long-form post whose body is an ordered sequence of typed
// content blocks. ReadingTime is derived, never authored; it is recomputed on
// every mutation of the title, excerpt, or block sequence.
type Article struct {
	Meta
	Excerpt     string         `json:"excerpt"`
	Author      string         `json:"author"`
	Category    string         `json:"category"`
	Tags        []string       `json:"tags,omitempty"`
	Content     []ContentBlock `json:"content,omitempty"`
	Status      ArticleStatus  `json:"status"`
	ViewCount   int            `json:"view_count"`
	LikeCount   int            `json:"like_count"`
	ReadingTime int            `json:"reading_time"`
}

// WordCount sums whitespace-delimited tokens across the title, excerpt, and
// every block's textual content, including each list item.
func (a *Article) WordCount() int {
	count := len(strings.Fields(a.Title)) + len(strings.Fields(a.Excerpt))
	for _, block := range a.Content {
		count += block.Words()
	}
	return count
}

// RecomputeReadingTime refreshes the derived reading time from the current
// title, excerpt, and content. Stale reading time is a correctness bug, so
// every structural mutation routes through here.
func (a *Article) RecomputeReadingTime() {
	words := a.WordCount()
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	a.ReadingTime = minutes
}

// AppendBlock validates the block and appends it to the body. An invalid
// block is rejected, never silently dropped.
func (a *Article) AppendBlock(block ContentBlock) error {
	if err := block.Validate(); err != nil {
		return err
	}
	a.Content = append(a.Content, block)
	a.RecomputeReadingTime()
	return nil
}

// RemoveBlock deletes the block at index.
func (a *Article) RemoveBlock(index int) error {
	if index < 0 || index >= len(a.Content) {
		return apperrors.Validation("index", fmt.Sprintf("block index %d out of range", index))
	}
	a.Content = append(a.Content[:index], a.Content[index+1:]...)
	a.RecomputeReadingTime()
	return nil
}

// MoveBlock swaps the block at index with its neighbor in the given
// direction. Moving the first block up or the last block down is a no-op,
// not an error.
func (a *Article) MoveBlock(index int, dir MoveDirection) error {
	if index < 0 || index >= len(a.Content) {
		return apperrors.Validation("index", fmt.Sprintf("block index %d out of range", index))
	}

	switch dir {
	case MoveUp:
		if index == 0 {
			return nil
		}
		a.Content[index-1], a.Content[index] = a.Content[index], a.Content[index-1]
	case MoveDown:
		if index == len(a.Content)-1 {
			return nil
		}
		a.Content[index], a.Content[index+1] = a.Content[index+1], a.Content[index]
	default:
		return apperrors.Validation("direction", fmt.Sprintf("unknown move direction %q", dir))
	}

	a.RecomputeReadingTime()
	return nil
}
