package youtube

import (
	"encoding/json"
	"fmt"
	"html"
	"log"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tlandry-heckleandcode/ai-news/lib/trending"
	"github.com/tlandry-heckleandcode/ai-news/lib/types"
	"github.com/tlandry-heckleandcode/ai-news/lib/web"
)

const defaultBaseURL = "https://www.googleapis.com/youtube/v3"

// statsBatchSize is the API limit on ids per videos.list call.
const statsBatchSize = 50

var DefaultSearchTerms = []string{
	"Cursor AI",
	"Claude Code",
	"Google Antigravity AI",
}

// Options for the YouTube Data API fetcher.
type Options struct {
	APIKey      string
	SearchTerms []string
	DaysBack    int
	MaxPerTerm  int
	TopN        int
	BaseURL     string
	Timeout     time.Duration
	Now         func() time.Time
}

type Fetcher struct {
	opts Options
}

func New(opts Options) (*Fetcher, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("YouTube API key is required, set YOUTUBE_API_KEY")
	}
	if len(opts.SearchTerms) == 0 {
		opts.SearchTerms = DefaultSearchTerms
	}
	if opts.DaysBack == 0 {
		opts.DaysBack = 1
	}
	if opts.MaxPerTerm == 0 {
		opts.MaxPerTerm = 10
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
	return &Fetcher{opts: opts}, nil
}

type searchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			PublishedAt  string `json:"publishedAt"`
			Description  string `json:"description"`
			Thumbnails   map[string]struct {
				URL string `json:"url"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// The statistics endpoint serializes counts as strings.
type statsResponse struct {
	Items []struct {
		ID         string `json:"id"`
		Statistics struct {
			ViewCount    string `json:"viewCount"`
			LikeCount    string `json:"likeCount"`
			CommentCount string `json:"commentCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// Search returns videos matching one term, newest window first by view
// count as the API orders them.
func (f *Fetcher) Search(term string) ([]types.Item, error) {
	published_after := f.opts.Now().UTC().AddDate(0, 0, -f.opts.DaysBack).Format(time.RFC3339)

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("type", "video")
	params.Set("order", "viewCount")
	params.Set("relevanceLanguage", "en")
	params.Set("q", term)
	params.Set("publishedAfter", published_after)
	params.Set("maxResults", strconv.Itoa(f.opts.MaxPerTerm))
	params.Set("key", f.opts.APIKey)

	body, err := web.Get(f.opts.BaseURL+"/search?"+params.Encode(), web.Options{Timeout: f.opts.Timeout})
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	var items []types.Item
	for _, v := range resp.Items {
		if v.ID.VideoID == "" {
			continue
		}
		published, _ := time.Parse(time.RFC3339, v.Snippet.PublishedAt)

		thumbnail := v.Snippet.Thumbnails["medium"].URL
		if thumbnail == "" {
			thumbnail = v.Snippet.Thumbnails["default"].URL
		}

		items = append(items, types.Item{
			ID:         v.ID.VideoID,
			Title:      html.UnescapeString(v.Snippet.Title),
			Channel:    v.Snippet.ChannelTitle,
			URL:        "https://www.youtube.com/watch?v=" + v.ID.VideoID,
			Published:  published.UTC(),
			Summary:    v.Snippet.Description,
			Thumbnail:  thumbnail,
			Source:     "YouTube",
			SearchTerm: term,
			Type:       types.TypeVideo,
		})
	}
	return items, nil
}

// videoStats fetches view counts for the given ids, batched at the API
// limit. Any batch failure drops the whole lookup, videos then score
// zero rather than wrong.
func (f *Fetcher) videoStats(ids []string) map[string]types.VideoStats {
	stats := make(map[string]types.VideoStats)

	for start := 0; start < len(ids); start += statsBatchSize {
		end := start + statsBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		params := url.Values{}
		params.Set("part", "statistics")
		params.Set("id", strings.Join(ids[start:end], ","))
		params.Set("key", f.opts.APIKey)

		body, err := web.Get(f.opts.BaseURL+"/videos?"+params.Encode(), web.Options{Timeout: f.opts.Timeout})
		if err != nil {
			log.Printf("YouTube statistics request failed: %v", err)
			return map[string]types.VideoStats{}
		}

		var resp statsResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			log.Printf("YouTube statistics parse failed: %v", err)
			return map[string]types.VideoStats{}
		}

		for _, item := range resp.Items {
			stats[item.ID] = types.VideoStats{
				Views:    atoi(item.Statistics.ViewCount),
				Likes:    atoi(item.Statistics.LikeCount),
				Comments: atoi(item.Statistics.CommentCount),
			}
		}
	}
	return stats
}

// Fetch runs every search term, dedupes by video id, pulls statistics,
// scores, and returns the top N videos.
func (f *Fetcher) Fetch() ([]types.Item, error) {
	var all []types.Item
	seen_ids := make(map[string]bool)

	for _, term := range f.opts.SearchTerms {
		items, err := f.Search(term)
		if err != nil {
			log.Printf("YouTube query %q failed: %v", term, err)
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

	if len(all) == 0 {
		return nil, nil
	}

	ids := make([]string, len(all))
	for i, item := range all {
		ids[i] = item.ID
	}
	stats := f.videoStats(ids)

	now := f.opts.Now().UTC()
	for i := range all {
		if s, ok := stats[all[i].ID]; ok {
			stat := s
			all[i].Stats = &stat
		}
		all[i].Score = trending.VideoScore(all[i], now)
	}
	trending.SortByScore(all)

	if len(all) > f.opts.TopN {
		all = all[:f.opts.TopN]
	}
	return all, nil
}

func atoi(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}
