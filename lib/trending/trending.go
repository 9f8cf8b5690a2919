// Package trending ranks items by recency and engagement. All functions
// take the reference time explicitly so scores are reproducible.
package trending

import (
	"sort"
	"strings"
	"time"

	"github.com/tlandry-heckleandcode/ai-news/lib/types"
)

// WindowHours is the horizon past which article scores floor at zero.
const WindowHours = 168

type authority struct {
	name       string
	multiplier float64
}

// Outlets that tend to carry stories first or most reliably. Matched by
// case-insensitive substring against the item source, first hit wins.
var authoritySources = []authority{
	{"techcrunch", 1.5},
	{"the verge", 1.4},
	{"wired", 1.4},
	{"ars technica", 1.4},
	{"engadget", 1.3},
	{"venturebeat", 1.3},
	{"zdnet", 1.2},
	{"cnet", 1.2},
	{"forbes", 1.2},
	{"bloomberg", 1.3},
	{"reuters", 1.3},
	{"bbc", 1.2},
	{"new york times", 1.3},
	{"washington post", 1.3},
	{"hacker news", 1.2},
	{"dev.to", 1.1},
	{"medium", 1.0},
}

// AuthorityMultiplier looks up the boost for a source name, 1.0 when
// unknown.
func AuthorityMultiplier(source string) float64 {
	lower := strings.ToLower(source)
	for _, a := range authoritySources {
		if strings.Contains(lower, a.name) {
			return a.multiplier
		}
	}
	return 1.0
}

// ArticleScore decays linearly over the window and boosts known outlets.
// Items without a publish time score 0.
func ArticleScore(it types.Item, now time.Time) float64 {
	if it.Published.IsZero() {
		return 0
	}
	remaining := WindowHours - now.Sub(it.Published).Hours()
	if remaining < 0 {
		remaining = 0
	}
	return remaining * AuthorityMultiplier(it.Source)
}

// VideoScore weighs engagement counts and decays 10% per day with a 0.3
// floor, so old-but-viral videos never zero out. A missing publish time
// counts as a week old.
func VideoScore(it types.Item, now time.Time) float64 {
	var views, likes, comments int64
	if it.Stats != nil {
		views, likes, comments = it.Stats.Views, it.Stats.Likes, it.Stats.Comments
	}
	engagement := float64(views + likes*10 + comments*5)

	daysOld := 7
	if !it.Published.IsZero() {
		daysOld = int(now.Sub(it.Published).Hours() / 24)
	}
	recency := 1.0 - 0.1*float64(daysOld)
	if recency < 0.3 {
		recency = 0.3
	}
	return engagement * recency
}

// SortByScore orders items descending by score. Stable, so equal scores
// keep their input order.
func SortByScore(items []types.Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}
