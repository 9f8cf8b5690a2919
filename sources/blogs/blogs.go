package blogs

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/tlandry-heckleandcode/ai-news/lib/feed"
	"github.com/tlandry-heckleandcode/ai-news/lib/preview"
	"github.com/tlandry-heckleandcode/ai-news/lib/sanitize"
	"github.com/tlandry-heckleandcode/ai-news/lib/types"
	"github.com/tlandry-heckleandcode/ai-news/lib/web"
)

const userAgent = "AI-News-Reporter/1.0"

// Blog is one monitored feed. Order matters for deterministic fetching,
// so the set is a slice rather than a map.
type Blog struct {
	Name string
	URL  string
}

// Cursor and Anthropic have no public RSS feeds as of Feb 2026. Add them
// through OFFICIAL_BLOGS when they appear.
var DefaultBlogs = []Blog{
	{Name: "OpenAI", URL: "https://openai.com/news/rss.xml"},
	{Name: "Google AI", URL: "https://blog.google/technology/ai/rss/"},
}

// Parse reads an OFFICIAL_BLOGS value, "Name1=url1,Name2=url2". Entries
// without an equals sign are dropped.
func Parse(raw string) []Blog {
	var out []Blog
	for _, part := range strings.Split(raw, ",") {
		name, feed_url, ok := strings.Cut(part, "=")
		if !ok {
			continue
		}
		name = strings.TrimSpace(name)
		feed_url = strings.TrimSpace(feed_url)
		if name == "" || feed_url == "" {
			continue
		}
		out = append(out, Blog{Name: name, URL: feed_url})
	}
	return out
}

// Options for the official blog fetcher.
type Options struct {
	Blogs      []Blog
	DaysBack   int
	MaxPerBlog int
	TopN       int
	UserAgent  string
	Timeout    time.Duration
	Now        func() time.Time
}

type Fetcher struct {
	opts Options
}

func New(opts Options) *Fetcher {
	if len(opts.Blogs) == 0 {
		opts.Blogs = DefaultBlogs
	}
	if opts.DaysBack == 0 {
		opts.DaysBack = 7
	}
	if opts.TopN == 0 {
		opts.TopN = 3
	}
	if opts.MaxPerBlog == 0 {
		opts.MaxPerBlog = opts.TopN
	}
	if opts.UserAgent == "" {
		opts.UserAgent = userAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Fetcher{opts: opts}
}

// Posts fetches recent entries from one blog feed.
func (f *Fetcher) Posts(blog Blog) ([]types.Item, error) {
	body, err := web.Get(blog.URL, web.Options{UserAgent: f.opts.UserAgent, Timeout: f.opts.Timeout})
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
		if scanned >= f.opts.MaxPerBlog*2 {
			break
		}
		scanned++

		published, _ := entry.PublishedTime()
		if !published.IsZero() && published.Before(cutoff) {
			continue
		}

		title := sanitize.Title(entry.Title)
		if title == "" && entry.Link != "" {
			// Some feeds ship untitled entries; pull the page title.
			title = sanitize.Title(preview.ExtractTitle(entry.Link, preview.Options{
				UserAgent: f.opts.UserAgent,
				Timeout:   f.opts.Timeout,
			}))
		}

		items = append(items, types.Item{
			Title:     title,
			Summary:   sanitize.Description(entry.BestSummary(), 500),
			URL:       entry.Link,
			Source:    blog.Name,
			Published: published,
			Type:      types.TypeBlog,
		})

		if len(items) >= f.opts.MaxPerBlog {
			break
		}
	}
	return items, nil
}

// Fetch combines every monitored blog, newest first, capped at top N.
func (f *Fetcher) Fetch() ([]types.Item, error) {
	var all []types.Item
	for _, blog := range f.opts.Blogs {
		items, err := f.Posts(blog)
		if err != nil {
			log.Printf("Blog %s failed: %v", blog.Name, err)
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
