package types

import "time"

// ItemType records where an item came from. It only drives display choices
// and category hints, never dedup or scoring.
type ItemType string

const (
	TypeArticle     ItemType = "article"
	TypeVideo       ItemType = "video"
	TypeDiscussion  ItemType = "discussion"
	TypeRelease     ItemType = "release"
	TypeBlog        ItemType = "blog"
	TypeReddit      ItemType = "reddit"
	TypeOfficial    ItemType = "official"
	TypeLegal       ItemType = "legal"
	TypeExpertVideo ItemType = "expert_video"
)

// Tier buckets for the policy digest.
const (
	TierOfficial  = 1
	TierCommunity = 2
	TierLegal     = 3
	TierExpert    = 4
)

// VideoStats carries platform engagement counts for video items.
type VideoStats struct {
	Views    int64
	Likes    int64
	Comments int64
}

// Item is the unit every fetcher emits and every pipeline stage consumes.
// Title is the only field later stages may assume non-empty. A zero
// Published means the publish time could not be determined; such items sort
// as infinitely old. Score carries whatever comparable number the source
// had (trending score, HN points, upvotes), 0 when unknown.
type Item struct {
	Title     string
	Summary   string
	URL       string
	Source    string
	Published time.Time
	Type      ItemType
	Score     float64
	Category  string
	AlsoOn    []string

	Stats      *VideoStats
	Channel    string
	Author     string
	Thumbnail  string
	Tier       int
	ID         string
	SearchTerm string
	Prerelease bool
}

// HoursAgo returns whole hours since publication, 0 when the publish time
// is unknown or in the future.
func (it Item) HoursAgo(now time.Time) int {
	if it.Published.IsZero() {
		return 0
	}
	h := int(now.Sub(it.Published).Hours())
	if h < 0 {
		return 0
	}
	return h
}

// DaysAgo returns whole days since publication, 0 when unknown.
func (it Item) DaysAgo(now time.Time) int {
	return it.HoursAgo(now) / 24
}
