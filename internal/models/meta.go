// Package models defines the content entities managed by content-manager.
package models

import "time"

// Meta holds the fields shared by every content record. The id is assigned
// once at creation and never changes; the slug is re-derived from the title
// whenever the title changes; updated_at is rewritten on every mutation.
type Meta struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug,omitempty"`
	Title     string    `json:"title"`
	Featured  bool      `json:"featured,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordMeta exposes the embedded Meta for generic code.
func (m *Meta) RecordMeta() *Meta { return m }

// RecordOf constrains a pointer to an entity struct that embeds Meta.
// The repository, resolver, and store layers are parameterized over it so
// one implementation serves every collection.
type RecordOf[T any] interface {
	*T
	RecordMeta() *Meta
}
