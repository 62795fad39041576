// Package query filters and sorts materialized collections in memory. It is
// shared by every listing surface so search, facets, featured filtering, and
// sort order behave identically across entity types.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonesrussell/content-manager/internal/apperrors"
	"github.com/jonesrussell/content-manager/internal/models"
)

// Options selects a subset and an order of a collection. Every predicate
// composes with a logical AND. The zero value is the identity query.
type Options struct {
	Search       string
	Facets       map[string]string
	SortKey      string
	FeaturedOnly bool
}

// Apply runs the query over an already-materialized collection and returns a
// new slice. Facet keys and sort keys must be declared on the collection's
// descriptor; an undeclared key is an error, not a silent non-match. Sorting
// is stable, so ties keep the input order, and an empty query returns the
// items unchanged.
func Apply[T any, PT models.RecordOf[T]](items []T, desc *models.Descriptor[T], opts Options) ([]T, error) {
	// Keys are validated before values, so "All" on an undeclared key is
	// still an error rather than a silently disabled facet.
	for key := range opts.Facets {
		if _, ok := desc.Facets[key]; !ok {
			return nil, apperrors.Validation("facets", fmt.Sprintf("facet %q is not declared for %s", key, desc.Collection))
		}
	}

	var less func(a, b *T) bool
	if opts.SortKey != "" {
		declared, ok := desc.Less[opts.SortKey]
		if !ok {
			return nil, apperrors.Validation("sort", fmt.Sprintf("sort key %q is not declared for %s", opts.SortKey, desc.Collection))
		}
		less = declared
	}

	search := strings.ToLower(strings.TrimSpace(opts.Search))

	result := make([]T, 0, len(items))
	for i := range items {
		item := &items[i]
		if opts.FeaturedOnly && !PT(item).RecordMeta().Featured {
			continue
		}
		if !matchesFacets(item, desc, opts.Facets) {
			continue
		}
		if search != "" && !matchesSearch(item, desc, search) {
			continue
		}
		result = append(result, items[i])
	}

	if less != nil {
		sort.SliceStable(result, func(i, j int) bool {
			return less(&result[i], &result[j])
		})
	}

	return result, nil
}

// matchesSearch does case-insensitive substring matching against the title
// and the declared secondary text and tag fields. Matching is substring, not
// tokenized.
func matchesSearch[T any](item *T, desc *models.Descriptor[T], search string) bool {
	if desc.SearchText == nil {
		return false
	}
	for _, field := range desc.SearchText(item) {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// matchesFacets applies exact string equality per facet. The "All" sentinel
// disables a facet.
func matchesFacets[T any](item *T, desc *models.Descriptor[T], facets map[string]string) bool {
	for key, want := range facets {
		if want == models.FacetAll || want == "" {
			continue
		}
		if desc.Facets[key](item) != want {
			return false
		}
	}
	return true
}
