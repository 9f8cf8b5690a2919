package hackernews

import (
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/tlandry-heckleandcode/ai-news/lib/sanitize"
	"github.com/tlandry-heckleandcode/ai-news/lib/types"
	"github.com/tlandry-heckleandcode/ai-news/lib/web"
)

// Algolia's HN search API, no key needed.
const defaultBaseURL = "https://hn.algolia.com/api/v1"

const userAgent = "AI-News-Reporter/1.0"

var DefaultSearchTerms = []string{
	"Cursor AI",
	"Claude Code",
	"Claude AI",
	"Anthropic",
	"AI coding",
	"vibe coding",
}

// Options for the Hacker News fetcher.
type Options struct {
	SearchTerms []string
	DaysBack    int
	MinPoints   int
	MaxResults  int
	TopN        int
	BaseURL     string
	Timeout     time.Duration
	Now         func() time.Time
}

type Fetcher struct {
	opts Options
}

func New(opts Options) *Fetcher {
	if len(opts.SearchTerms) == 0 {
		opts.SearchTerms = DefaultSearchTerms
	}
	if opts.DaysBack == 0 {
		opts.DaysBack = 1
	}
	if opts.MinPoints == 0 {
		opts.MinPoints = 10
	}
	if opts.MaxResults == 0 {
		opts.MaxResults = 20
	}
	if opts.TopN == 0 {
		opts.TopN = 3
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Fetcher{opts: opts}
}

type searchResponse struct {
	Hits []struct {
		ObjectID    string `json:"objectID"`
		Title       string `json:"title"`
		URL         string `json:"url"`
		Points      int64  `json:"points"`
		NumComments int64  `json:"num_comments"`
		Author      string `json:"author"`
		CreatedAtI  int64  `json:"created_at_i"`
	} `json:"hits"`
}

// Search returns stories for one term. The point and age floors are
// pushed down into the API's numericFilters so low-signal posts never
// leave Algolia.
func (f *Fetcher) Search(term string) ([]types.Item, error) {
	cutoff := f.opts.Now().UTC().AddDate(0, 0, -f.opts.DaysBack).Unix()

	params := url.Values{}
	params.Set("query", term)
	params.Set("tags", "story")
	params.Set("numericFilters", fmt.Sprintf("created_at_i>%d,points>%d", cutoff, f.opts.MinPoints))
	params.Set("hitsPerPage", strconv.Itoa(f.opts.MaxResults))

	body, err := web.Get(f.opts.BaseURL+"/search?"+params.Encode(), web.Options{UserAgent: userAgent, Timeout: f.opts.Timeout})
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	var items []types.Item
	for _, hit := range resp.Hits {
		item_url := hit.URL
		if item_url == "" {
			// Ask HN and Show HN posts have no external link.
			item_url = "https://news.ycombinator.com/item?id=" + hit.ObjectID
		}

		var published time.Time
		if hit.CreatedAtI > 0 {
			published = time.Unix(hit.CreatedAtI, 0).UTC()
		}

		items = append(items, types.Item{
			ID:         hit.ObjectID,
			Title:      sanitize.Title(hit.Title),
			URL:        item_url,
			Published:  published,
			Author:     hit.Author,
			Score:      float64(hit.Points),
			Stats:      &types.VideoStats{Comments: hit.NumComments},
			Source:     "Hacker News",
			SearchTerm: term,
			Type:       types.TypeDiscussion,
		})
	}
	return items, nil
}

// Fetch runs every search term, dedupes by story id, and returns the
// top N stories by points.
func (f *Fetcher) Fetch() ([]types.Item, error) {
	var all []types.Item
	seen_ids := make(map[string]bool)

	for _, term := range f.opts.SearchTerms {
		items, err := f.Search(term)
		if err != nil {
			log.Printf("HN query %q failed: %v", term, err)
			continue
		}
		for _, item := range items {
			if seen_ids[item.ID] {
				continue
			}
			seen_ids[item.ID] = true
			all = append(all, item)
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Score > all[j].Score
	})

	if len(all) > f.opts.TopN {
		all = all[:f.opts.TopN]
	}
	return all, nil
}
