// Package digest composes the consolidation stages into one pipeline so
// both reporters process their pools the same way.
package digest

import (
	"github.com/tlandry-heckleandcode/ai-news/lib/categorize"
	"github.com/tlandry-heckleandcode/ai-news/lib/filters"
	"github.com/tlandry-heckleandcode/ai-news/lib/trending"
	"github.com/tlandry-heckleandcode/ai-news/lib/types"
)

// Options selects the stages. A nil Matcher skips categorization, a nil
// Relevance hook skips filtering, a Limit of zero or less keeps
// everything.
type Options struct {
	Threshold float64
	Matcher   *categorize.Matcher
	Relevance func([]types.Item) []types.Item
	Limit     int
}

// Consolidate runs deduplication, categorization, score ordering, the
// optional relevance hook, then the final cut. Stage order is fixed: the
// relevance hook sees items best-first so a truncated pool still holds
// the strongest candidates.
func Consolidate(items []types.Item, opts Options) []types.Item {
	out := filters.Deduplicate(items, opts.Threshold)

	if opts.Matcher != nil {
		opts.Matcher.CategorizeItems(out)
	}

	trending.SortByScore(out)

	if opts.Relevance != nil {
		out = opts.Relevance(out)
	}

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out
}
