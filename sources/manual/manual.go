// Package manual documents policy sources that have no feed or API and
// so cannot be fetched automatically. They surface in reports as a
// reminder footer, and the checker verifies they are still online.
package manual

import (
	"time"

	"github.com/tlandry-heckleandcode/ai-news/lib/types"
	"github.com/tlandry-heckleandcode/ai-news/lib/web"
)

const userAgent = "YouTube-Policy-Monitor/1.0"

// Source is one page worth checking by hand.
type Source struct {
	Name        string
	URL         string
	Description string
	Value       string
	Challenge   string
}

// DefaultSources in display order.
var DefaultSources = []Source{
	{
		Name:        "Policy Updates",
		URL:         "https://www.youtube.com/policy/updates",
		Description: "Official YouTube policy updates page",
		Value:       "High - canonical source for policy changes",
		Challenge:   "No RSS feed, requires scraping",
	},
	{
		Name:        "Help Center Policy Log",
		URL:         "https://support.google.com/youtube/answer/10008196",
		Description: "Comprehensive changelog organized by policy category",
		Value:       "High - structured historical record of all policy updates",
		Challenge:   "No RSS feed, HTML structure may change",
	},
	{
		Name:        "Help Community",
		URL:         "https://support.google.com/youtube/community",
		Description: "User-reported issues and enforcement patterns",
		Value:       "Medium - early warning for enforcement changes",
		Challenge:   "No RSS/API, noisy signal-to-noise ratio",
	},
	{
		Name:        "TeamYouTube X",
		URL:         "https://twitter.com/TeamYouTube",
		Description: "Official YouTube support account on X/Twitter",
		Value:       "High - fast clarifications on policy changes",
		Challenge:   "X API requires paid access",
	},
}

// URLs lists every manual source address.
func URLs() []string {
	urls := make([]string, 0, len(DefaultSources))
	for _, s := range DefaultSources {
		urls = append(urls, s.URL)
	}
	return urls
}

// ReminderText is the one-line footer for reports.
func ReminderText() string {
	return "Manual checks: Policy Updates page, Help Center changelog"
}

type Options struct {
	Sources   []Source
	UserAgent string
	Timeout   time.Duration
}

type Fetcher struct {
	opts Options
}

func New(opts Options) *Fetcher {
	if len(opts.Sources) == 0 {
		opts.Sources = DefaultSources
	}
	if opts.UserAgent == "" {
		opts.UserAgent = userAgent
	}
	if opts.Timeout == 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Fetcher{opts: opts}
}

// Fetch exists for interface parity with the real fetchers. Nothing can
// be pulled automatically, so it always returns an empty result.
func (f *Fetcher) Fetch() ([]types.Item, error) {
	return nil, nil
}

// CheckAvailable probes each source and reports which respond.
func (f *Fetcher) CheckAvailable() map[string]bool {
	results := make(map[string]bool, len(f.opts.Sources))
	for _, s := range f.opts.Sources {
		results[s.Name] = web.Reachable(s.URL, f.opts.UserAgent, f.opts.Timeout)
	}
	return results
}
