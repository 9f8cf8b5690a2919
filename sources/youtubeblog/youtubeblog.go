package youtubeblog

import (
	"log"
	"sort"
	"time"

	"github.com/tlandry-heckleandcode/ai-news/lib/feed"
	"github.com/tlandry-heckleandcode/ai-news/lib/filters"
	"github.com/tlandry-heckleandcode/ai-news/lib/sanitize"
	"github.com/tlandry-heckleandcode/ai-news/lib/types"
	"github.com/tlandry-heckleandcode/ai-news/lib/web"
)

const userAgent = "YouTube-Policy-Monitor/1.0"

// Source is one official YouTube feed.
type Source struct {
	Name string
	URL  string
}

var DefaultSources = []Source{
	{Name: "YouTube Blog", URL: "https://www.blog.youtube/rss/"},
}

// The blog mixes product marketing with policy posts, these keywords
// keep the policy-relevant ones.
var DefaultKeywords = []string{
	"policy", "guidelines", "monetization", "terms", "community",
	"copyright", "strike", "update", "change", "new", "rules",
	"enforcement", "restriction", "age", "partner", "creator",
}

// Options for the official YouTube source fetcher.
type Options struct {
	Sources         []Source
	Keywords        []string
	NoKeywordFilter bool
	DaysBack        int
	MaxPerSource    int
	TopN            int
	UserAgent       string
	Timeout         time.Duration
	Now             func() time.Time
}

type Fetcher struct {
	opts Options
}

func New(opts Options) *Fetcher {
	if len(opts.Sources) == 0 {
		opts.Sources = DefaultSources
	}
	if len(opts.Keywords) == 0 {
		opts.Keywords = DefaultKeywords
	}
	if opts.DaysBack == 0 {
		opts.DaysBack = 1
	}
	if opts.TopN == 0 {
		opts.TopN = 5
	}
	if opts.MaxPerSource == 0 {
		opts.MaxPerSource = opts.TopN
	}
	if opts.UserAgent == "" {
		opts.UserAgent = userAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Fetcher{opts: opts}
}

// Posts fetches recent entries from one official feed, keyword-filtered
// unless disabled.
func (f *Fetcher) Posts(src Source) ([]types.Item, error) {
	body, err := web.Get(src.URL, web.Options{UserAgent: f.opts.UserAgent, Timeout: f.opts.Timeout})
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
		if scanned >= f.opts.MaxPerSource*3 {
			break
		}
		scanned++

		published, _ := entry.PublishedTime()
		if !published.IsZero() && published.Before(cutoff) {
			continue
		}

		title := sanitize.Title(entry.Title)
		summary := sanitize.Description(entry.BestSummary(), 500)

		if !f.opts.NoKeywordFilter && !filters.MatchesAny(title+" "+summary, f.opts.Keywords) {
			continue
		}

		items = append(items, types.Item{
			Title:     title,
			Summary:   summary,
			URL:       entry.Link,
			Source:    src.Name,
			Published: published,
			Type:      types.TypeOfficial,
			Tier:      types.TierOfficial,
		})

		if len(items) >= f.opts.MaxPerSource {
			break
		}
	}
	return items, nil
}

// Fetch combines every official source, newest first, capped at top N.
func (f *Fetcher) Fetch() ([]types.Item, error) {
	var all []types.Item
	for _, src := range f.opts.Sources {
		items, err := f.Posts(src)
		if err != nil {
			log.Printf("Official source %s failed: %v", src.Name, err)
			continue
		}
		all = append(all, items...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Published.After(all[j].Published)
	})

	if len(all) > f.opts.TopN {
		all = all[:f.opts.TopN]
	}
	return all, nil
}
