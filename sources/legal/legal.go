package legal

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

// Source is one legal or policy analysis feed.
type Source struct {
	Name string
	URL  string
}

var DefaultSources = []Source{
	{Name: "IAPP Daily", URL: "https://iapp.org/feeds/daily_dashboard"},
	{Name: "Lawfare", URL: "https://www.lawfaremedia.org/feeds/lawfare-news"},
	{Name: "Tech Policy Press", URL: "https://www.techpolicy.press/feed/"},
	{Name: "EFF", URL: "https://www.eff.org/rss/updates.xml"},
}

// PlatformKeywords narrow broad legal feeds down to platform and
// creator-economy coverage.
var PlatformKeywords = []string{
	"youtube", "google", "platform", "content moderation", "creator",
	"monetization", "copyright", "dmca", "section 230", "dsa",
	"digital services", "ai act", "algorithm", "recommendation",
	"social media", "online safety", "child safety", "coppa",
	"privacy", "data protection", "terms of service", "community guidelines",
}

// Options for the legal analysis fetcher.
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
		opts.Keywords = PlatformKeywords
	}
	if opts.DaysBack == 0 {
		opts.DaysBack = 1
	}
	if opts.TopN == 0 {
		opts.TopN = 3
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

// Posts fetches recent entries from one legal feed. These feeds cover
// far more than platforms, so the scan window is five times the cap.
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
		if scanned >= f.opts.MaxPerSource*5 {
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
			Author:    entry.Author,
			Published: published,
			Type:      types.TypeLegal,
			Tier:      types.TierLegal,
		})

		if len(items) >= f.opts.MaxPerSource {
			break
		}
	}
	return items, nil
}

// Fetch combines every legal source, newest first, capped at top N.
func (f *Fetcher) Fetch() ([]types.Item, error) {
	var all []types.Item
	for _, src := range f.opts.Sources {
		items, err := f.Posts(src)
		if err != nil {
			log.Printf("Legal source %s failed: %v", src.Name, err)
			continue
		}
		log.Printf("Fetched %d posts from %s", len(items), src.Name)
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
