package expertchannels

import (
	"log"
	"sort"
	"strings"
	"time"

	"github.com/tlandry-heckleandcode/ai-news/lib/feed"
	"github.com/tlandry-heckleandcode/ai-news/lib/sanitize"
	"github.com/tlandry-heckleandcode/ai-news/lib/types"
	"github.com/tlandry-heckleandcode/ai-news/lib/web"
)

const userAgent = "YouTube-Policy-Monitor/1.0"

// Channel RSS needs no API key.
const feedURLFormat = "https://www.youtube.com/feeds/videos.xml?channel_id="

// Channel is one monitored expert channel.
type Channel struct {
	Name string
	ID   string
}

var DefaultChannels = []Channel{
	{Name: "Creator Insider", ID: "UCGg-UqjRgzhYDPJMr-9HXCg"}, // YouTube employees
	{Name: "Hoeg Law", ID: "UCi5RTzzeCFurWTPLm8usDkQ"},        // lawyer commentary on platform terms
}

// Parse reads a POLICY_EXPERT_CHANNELS value, entries are either bare
// channel ids or "Name=id".
func Parse(raw string) []Channel {
	var out []Channel
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if name, id, ok := strings.Cut(part, "="); ok {
			name = strings.TrimSpace(name)
			id = strings.TrimSpace(id)
			if name != "" && id != "" {
				out = append(out, Channel{Name: name, ID: id})
			}
			continue
		}
		out = append(out, Channel{Name: part, ID: part})
	}
	return out
}

// Options for the expert channel fetcher.
type Options struct {
	Channels      []Channel
	DaysBack      int
	MaxPerChannel int
	TopN          int
	BaseURL       string
	UserAgent     string
	Timeout       time.Duration
	Now           func() time.Time
}

type Fetcher struct {
	opts Options
}

func New(opts Options) *Fetcher {
	if len(opts.Channels) == 0 {
		opts.Channels = DefaultChannels
	}
	if opts.DaysBack == 0 {
		opts.DaysBack = 1
	}
	if opts.MaxPerChannel == 0 {
		opts.MaxPerChannel = 5
	}
	if opts.TopN == 0 {
		opts.TopN = 3
	}
	if opts.BaseURL == "" {
		opts.BaseURL = feedURLFormat
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

// Videos fetches recent uploads from one channel feed.
func (f *Fetcher) Videos(ch Channel) ([]types.Item, error) {
	body, err := web.Get(f.opts.BaseURL+ch.ID, web.Options{UserAgent: f.opts.UserAgent, Timeout: f.opts.Timeout})
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
		if scanned >= f.opts.MaxPerChannel*2 {
			break
		}
		scanned++

		published, _ := entry.PublishedTime()
		if !published.IsZero() && published.Before(cutoff) {
			continue
		}

		video_id := videoID(entry.Link)
		thumbnail := ""
		if video_id != "" {
			thumbnail = "https://i.ytimg.com/vi/" + video_id + "/mqdefault.jpg"
		}

		channel_name := entry.Author
		if channel_name == "" {
			channel_name = ch.Name
		}

		items = append(items, types.Item{
			Title:     sanitize.Title(entry.Title),
			Summary:   sanitize.Description(entry.BestSummary(), 300),
			URL:       entry.Link,
			ID:        video_id,
			Thumbnail: thumbnail,
			Source:    ch.Name,
			Channel:   channel_name,
			Published: published,
			Type:      types.TypeExpertVideo,
			Tier:      types.TierExpert,
		})

		if len(items) >= f.opts.MaxPerChannel {
			break
		}
	}
	return items, nil
}

// Fetch combines every channel, newest first, capped at top N.
func (f *Fetcher) Fetch() ([]types.Item, error) {
	var all []types.Item
	for _, ch := range f.opts.Channels {
		items, err := f.Videos(ch)
		if err != nil {
			log.Printf("Expert channel %s failed: %v", ch.Name, err)
			continue
		}
		log.Printf("Fetched %d videos from %s", len(items), ch.Name)
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

// videoID pulls the v parameter out of a watch link.
func videoID(link string) string {
	_, after, ok := strings.Cut(link, "watch?v=")
	if !ok {
		return ""
	}
	id, _, _ := strings.Cut(after, "&")
	return id
}
