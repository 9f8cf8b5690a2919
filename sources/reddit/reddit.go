package reddit

import (
	"log"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/tlandry-heckleandcode/ai-news/lib/feed"
	"github.com/tlandry-heckleandcode/ai-news/lib/filters"
	"github.com/tlandry-heckleandcode/ai-news/lib/sanitize"
	"github.com/tlandry-heckleandcode/ai-news/lib/types"
	"github.com/tlandry-heckleandcode/ai-news/lib/web"
)

const userAgent = "YouTube-Policy-Monitor/1.0 (RSS Reader)"

// Subreddit is one monitored community feed.
type Subreddit struct {
	Name string
	URL  string
}

var DefaultSubreddits = []Subreddit{
	{Name: "r/PartneredYouTube", URL: "https://www.reddit.com/r/PartneredYouTube/new.rss"},
	{Name: "r/NewTubers", URL: "https://www.reddit.com/r/NewTubers/new.rss"},
	{Name: "r/youtubers", URL: "https://www.reddit.com/r/youtubers/new.rss"},
}

var DefaultKeywords = []string{
	"policy", "demonetized", "demonetization", "shadowban", "shadowbanned",
	"guidelines", "strike", "removed", "banned", "terminated",
	"suspended", "appeal", "monetization", "adsense", "copyright",
	"claim", "content id", "community guidelines", "tos", "terms",
}

// Reddit's Atom feeds bury upvotes inside the rendered content.
var pointsRe = regexp.MustCompile(`(\d+)\s+points?`)

// Parse reads a POLICY_SUBREDDITS value of bare subreddit names and
// expands each into its new.rss feed.
func Parse(raw string) []Subreddit {
	var out []Subreddit
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		out = append(out, Subreddit{
			Name: "r/" + name,
			URL:  "https://www.reddit.com/r/" + name + "/new.rss",
		})
	}
	return out
}

// Options for the Reddit policy fetcher.
type Options struct {
	Subreddits      []Subreddit
	Keywords        []string
	NoKeywordFilter bool
	DaysBack        int
	MaxPerSub       int
	TopN            int
	UserAgent       string
	Timeout         time.Duration
	Now             func() time.Time
}

type Fetcher struct {
	opts Options
}

func New(opts Options) *Fetcher {
	if len(opts.Subreddits) == 0 {
		opts.Subreddits = DefaultSubreddits
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
	if opts.MaxPerSub == 0 {
		opts.MaxPerSub = opts.TopN
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

// Posts fetches recent entries from one subreddit, keyword-filtered
// unless disabled. Scans three times the cap since the filter discards
// most of a new.rss page.
func (f *Fetcher) Posts(sub Subreddit) ([]types.Item, error) {
	body, err := web.Get(sub.URL, web.Options{UserAgent: f.opts.UserAgent, Timeout: f.opts.Timeout})
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
		if scanned >= f.opts.MaxPerSub*3 {
			break
		}
		scanned++

		published, _ := entry.PublishedTime()
		if !published.IsZero() && published.Before(cutoff) {
			continue
		}

		title := sanitize.Title(entry.Title)

		// Reddit puts the post body in content, not summary.
		raw_content := entry.Content
		if raw_content == "" {
			raw_content = entry.Summary
		}
		summary := sanitize.Description(raw_content, 300)

		if !f.opts.NoKeywordFilter && !filters.MatchesAny(title+" "+summary, f.opts.Keywords) {
			continue
		}

		author := strings.TrimPrefix(entry.Author, "/u/")

		items = append(items, types.Item{
			Title:     title,
			Summary:   summary,
			URL:       entry.Link,
			Source:    sub.Name,
			Author:    author,
			Score:     float64(extractScore(entry.Content)),
			Published: published,
			Type:      types.TypeReddit,
			Tier:      types.TierCommunity,
		})

		if len(items) >= f.opts.MaxPerSub {
			break
		}
	}
	return items, nil
}

// Fetch combines every subreddit, newest first with score as tiebreak,
// capped at top N.
func (f *Fetcher) Fetch() ([]types.Item, error) {
	var all []types.Item
	for _, sub := range f.opts.Subreddits {
		items, err := f.Posts(sub)
		if err != nil {
			log.Printf("Subreddit %s failed: %v", sub.Name, err)
			continue
		}
		log.Printf("Fetched %d posts from %s", len(items), sub.Name)
		all = append(all, items...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		if !all[i].Published.Equal(all[j].Published) {
			return all[i].Published.After(all[j].Published)
		}
		return all[i].Score > all[j].Score
	})

	if len(all) > f.opts.TopN {
		all = all[:f.opts.TopN]
	}
	return all, nil
}

func extractScore(content string) int {
	match := pointsRe.FindStringSubmatch(content)
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return n
}
