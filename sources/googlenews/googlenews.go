package googlenews

import (
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/tlandry-heckleandcode/ai-news/lib/feed"
	"github.com/tlandry-heckleandcode/ai-news/lib/preview"
	"github.com/tlandry-heckleandcode/ai-news/lib/sanitize"
	"github.com/tlandry-heckleandcode/ai-news/lib/trending"
	"github.com/tlandry-heckleandcode/ai-news/lib/types"
	"github.com/tlandry-heckleandcode/ai-news/lib/web"
)

const defaultBaseURL = "https://news.google.com/rss/search"

// Google News serves a stripped-down feed to unknown agents.
const browserUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

var DefaultSearchTerms = []string{
	"Cursor AI",
	"Claude Code",
	"Google Antigravity AI",
}

// Options for the Google News fetcher.
type Options struct {
	SearchTerms []string
	DaysBack    int
	MaxPerTerm  int
	TopN        int
	FetchImages bool
	BaseURL     string
	UserAgent   string
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
	if opts.MaxPerTerm == 0 {
		opts.MaxPerTerm = 10
	}
	if opts.TopN == 0 {
		opts.TopN = 3
	}
	if opts.BaseURL == "" {
		opts.BaseURL = defaultBaseURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = browserUA
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Fetcher{opts: opts}
}

// Search fetches articles for one term. Entries older than the lookback
// window are skipped, undated entries are kept and score zero later.
func (f *Fetcher) Search(term string) ([]types.Item, error) {
	search_url := fmt.Sprintf("%s?q=%s&hl=en-US&gl=US&ceid=US:en", f.opts.BaseURL, url.QueryEscape(term))
	log.Printf("Fetching Google News for query: %s", term)

	body, err := web.Get(search_url, web.Options{UserAgent: f.opts.UserAgent, Timeout: f.opts.Timeout})
	if err != nil {
		return nil, err
	}

	parsed, err := feed.Parse(body)
	if err != nil {
		return nil, err
	}

	cutoff := f.opts.Now().UTC().AddDate(0, 0, -f.opts.DaysBack)

	var items []types.Item
	scanned := 0
	for _, entry := range parsed.Entries {
		// Scan extra entries so the date filter still leaves enough.
		if scanned >= f.opts.MaxPerTerm*2 {
			break
		}
		scanned++

		published, _ := entry.PublishedTime()
		if !published.IsZero() && published.Before(cutoff) {
			continue
		}

		title, source := splitSource(entry.Title)
		items = append(items, types.Item{
			Title:      title,
			Source:     source,
			URL:        entry.Link,
			Published:  published,
			Summary:    sanitize.Description(entry.BestSummary(), 500),
			SearchTerm: term,
			Type:       types.TypeArticle,
		})

		if len(items) >= f.opts.MaxPerTerm {
			break
		}
	}
	return items, nil
}

// Fetch runs every search term, dedupes by URL, scores, and returns the
// top N articles. Thumbnails are fetched only for the articles that make
// the cut.
func (f *Fetcher) Fetch() ([]types.Item, error) {
	var all []types.Item
	seen_urls := make(map[string]bool)

	for _, term := range f.opts.SearchTerms {
		items, err := f.Search(term)
		if err != nil {
			log.Printf("Google News query %q failed: %v", term, err)
			continue
		}
		for _, item := range items {
			if item.URL == "" || seen_urls[item.URL] {
				continue
			}
			seen_urls[item.URL] = true
			all = append(all, item)
		}
	}

	if len(all) == 0 {
		return nil, nil
	}

	now := f.opts.Now().UTC()
	for i := range all {
		all[i].Score = trending.ArticleScore(all[i], now)
	}
	trending.SortByScore(all)

	if len(all) > f.opts.TopN {
		all = all[:f.opts.TopN]
	}

	if f.opts.FetchImages {
		for i := range all {
			all[i].Thumbnail = preview.FetchImage(all[i].URL, preview.Options{
				UserAgent: f.opts.UserAgent,
				Timeout:   5 * time.Second,
			})
		}
	}

	return all, nil
}

// splitSource pulls the publisher out of a Google News title, which
// arrives as "Article Title - Source Name".
func splitSource(title string) (string, string) {
	if idx := strings.LastIndex(title, " - "); idx >= 0 {
		return strings.TrimSpace(title[:idx]), strings.TrimSpace(title[idx+3:])
	}
	return strings.TrimSpace(title), "Unknown"
}
