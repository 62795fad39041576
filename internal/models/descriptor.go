package models

import "strings"

// Sort keys shared across listing surfaces. Each descriptor enables the
// subset that makes sense for its collection.
const (
	SortLatest      = "Latest"
	SortOldest      = "Oldest"
	SortTitle       = "Title"
	SortMostPopular = "Most Popular"
	SortMostLiked   = "Most Liked"
)

// FacetAll is the sentinel facet value that disables filtering on a facet.
const FacetAll = "All"

// Descriptor statically declares how a collection is stored and queried:
// its storage names, whether records carry a slug, which text fields take
// part in substring search, which fields may be used as facets, and which
// sort keys are available. Filtering against a field that is not declared
// here is an error at the query layer, never a silent mismatch.
type Descriptor[T any] struct {
	Collection string
	HasSlug    bool
	SearchText func(*T) []string
	Facets     map[string]func(*T) string
	Less       map[string]func(a, b *T) bool
}

func latest[T any, PT RecordOf[T]](a, b *T) bool {
	return PT(a).RecordMeta().CreatedAt.After(PT(b).RecordMeta().CreatedAt)
}

func oldest[T any, PT RecordOf[T]](a, b *T) bool {
	return PT(a).RecordMeta().CreatedAt.Before(PT(b).RecordMeta().CreatedAt)
}

func byTitle[T any, PT RecordOf[T]](a, b *T) bool {
	return strings.ToLower(PT(a).RecordMeta().Title) < strings.ToLower(PT(b).RecordMeta().Title)
}

// ArticleDescriptor declares the articles collection.
var ArticleDescriptor = &Descriptor[Article]{
	Collection: "articles",
	HasSlug:    true,
	SearchText: func(a *Article) []string {
		fields := []string{a.Title, a.Excerpt, a.Author}
		return append(fields, a.Tags...)
	},
	Facets: map[string]func(*Article) string{
		"category": func(a *Article) string { return a.Category },
		"status":   func(a *Article) string { return string(a.Status) },
	},
	Less: map[string]func(a, b *Article) bool{
		SortLatest:      latest[Article, *Article],
		SortOldest:      oldest[Article, *Article],
		SortTitle:       byTitle[Article, *Article],
		SortMostPopular: func(a, b *Article) bool { return a.ViewCount > b.ViewCount },
		SortMostLiked:   func(a, b *Article) bool { return a.LikeCount > b.LikeCount },
	},
}

// PortfolioDescriptor declares the portfolio collection.
var PortfolioDescriptor = &Descriptor[PortfolioEntry]{
	Collection: "portfolio",
	HasSlug:    true,
	SearchText: func(p *PortfolioEntry) []string {
		fields := []string{p.Title, p.Description}
		return append(fields, p.Tech...)
	},
	Facets: map[string]func(*PortfolioEntry) string{
		"status": func(p *PortfolioEntry) string { return string(p.Status) },
	},
	Less: map[string]func(a, b *PortfolioEntry) bool{
		SortLatest: latest[PortfolioEntry, *PortfolioEntry],
		SortOldest: oldest[PortfolioEntry, *PortfolioEntry],
		SortTitle:  byTitle[PortfolioEntry, *PortfolioEntry],
	},
}

// CredentialDescriptor declares the credentials collection.
var CredentialDescriptor = &Descriptor[Credential]{
	Collection: "credentials",
	HasSlug:    true,
	SearchText: func(c *Credential) []string {
		fields := []string{c.Title, c.Issuer, c.Description}
		return append(fields, c.Skills...)
	},
	Facets: map[string]func(*Credential) string{
		"issuer": func(c *Credential) string { return c.Issuer },
		"status": func(c *Credential) string { return string(c.Status) },
	},
	Less: map[string]func(a, b *Credential) bool{
		SortLatest: latest[Credential, *Credential],
		SortOldest: oldest[Credential, *Credential],
		SortTitle:  byTitle[Credential, *Credential],
	},
}

// ServiceDescriptor declares the services collection.
var ServiceDescriptor = &Descriptor[ServiceListing]{
	Collection: "services",
	HasSlug:    true,
	SearchText: func(s *ServiceListing) []string {
		fields := []string{s.Title, s.Description}
		return append(fields, s.Deliverables...)
	},
	Facets: map[string]func(*ServiceListing) string{
		"category": func(s *ServiceListing) string { return s.Category },
		"status":   func(s *ServiceListing) string { return string(s.Status) },
	},
	Less: map[string]func(a, b *ServiceListing) bool{
		SortLatest: latest[ServiceListing, *ServiceListing],
		SortOldest: oldest[ServiceListing, *ServiceListing],
		SortTitle:  byTitle[ServiceListing, *ServiceListing],
	},
}

// ProfileDescriptor declares the singleton profile collection. It has no
// slug and is never listed, so search, facets, and sorting stay empty.
var ProfileDescriptor = &Descriptor[Profile]{
	Collection: "profile",
	HasSlug:    false,
}
