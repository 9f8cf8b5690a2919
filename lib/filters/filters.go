package filters

import (
	"strings"
	"unicode"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/tlandry-heckleandcode/ai-news/lib/types"
)

// DefaultThreshold is the similarity ratio above which two titles are
// considered the same story.
const DefaultThreshold = 0.8

var fillerWords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true,
	"was": true, "were": true, "be": true, "been": true, "to": true,
	"of": true, "and": true, "or": true, "for": true, "in": true,
	"on": true, "at": true, "by": true, "with": true, "about": true,
	"how": true, "what": true, "why": true, "when": true, "where": true,
	"this": true, "that": true, "these": true, "those": true,
	"it": true, "its": true, "new": true, "just": true, "now": true,
	"here": true, "heres": true,
}

// NormalizeTitle lowercases, maps punctuation to spaces, drops filler words
// and collapses whitespace. Returns "" for titles with no content words.
func NormalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	var kept []string
	for _, w := range strings.Fields(b.String()) {
		if !fillerWords[w] {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}

// Similarity scores two titles in [0,1] using the Ratcliff/Obershelp ratio
// over their normalized forms. Either side normalizing to nothing scores 0,
// never a match.
func Similarity(a, b string) float64 {
	return ratio(NormalizeTitle(a), NormalizeTitle(b))
}

func ratio(na, nb string) float64 {
	if na == "" || nb == "" {
		return 0
	}
	m := difflib.NewMatcher(strings.Split(na, ""), strings.Split(nb, ""))
	return m.Ratio()
}

// Deduplicate merges near-duplicate stories. Items are scanned in order;
// each unconsumed item seeds a group and pulls in every later unconsumed
// item whose title is within threshold of the seed's. Membership is checked
// against the seed only, not transitively. The representative is the
// highest-scoring member (earliest wins ties) and picks up the other
// members' distinct sources as AlsoOn, in input order. Output keeps group
// discovery order; no item is ever dropped. A threshold of zero or less
// means DefaultThreshold.
func Deduplicate(items []types.Item, threshold float64) []types.Item {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if len(items) <= 1 {
		return items
	}

	norm := make([]string, len(items))
	for i := range items {
		norm[i] = NormalizeTitle(items[i].Title)
	}

	used := make([]bool, len(items))
	var out []types.Item
	for i := range items {
		if used[i] {
			continue
		}
		used[i] = true
		group := []int{i}
		for j := i + 1; j < len(items); j++ {
			if used[j] {
				continue
			}
			if ratio(norm[i], norm[j]) >= threshold {
				used[j] = true
				group = append(group, j)
			}
		}
		out = append(out, merge(items, group))
	}
	return out
}

// merge picks the representative and collects AlsoOn sources.
func merge(items []types.Item, group []int) types.Item {
	best := group[0]
	for _, idx := range group[1:] {
		if items[idx].Score > items[best].Score {
			best = idx
		}
	}
	rep := items[best]

	if len(group) > 1 {
		seen := make(map[string]bool)
		var also []string
		for _, idx := range group {
			if idx == best {
				continue
			}
			src := items[idx].Source
			if src == "" || src == rep.Source || seen[src] {
				continue
			}
			seen[src] = true
			also = append(also, src)
		}
		if len(also) > 0 {
			rep.AlsoOn = also
		}
	}
	return rep
}

// MatchesAny reports whether text contains any of the keywords,
// case-insensitively. An empty keyword list matches nothing.
func MatchesAny(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
