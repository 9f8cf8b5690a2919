package github

import (
	"encoding/json"
	"errors"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/tlandry-heckleandcode/ai-news/lib/sanitize"
	"github.com/tlandry-heckleandcode/ai-news/lib/types"
	"github.com/tlandry-heckleandcode/ai-news/lib/web"
)

const defaultBaseURL = "https://api.github.com"

const userAgent = "AI-News-Reporter/1.0"

var DefaultRepos = []string{
	"getcursor/cursor",
}

// Options for the GitHub release fetcher. Token is optional, it only
// raises the rate limit from 60 to 5000 requests an hour.
type Options struct {
	Repos      []string
	Token      string
	DaysBack   int
	MaxResults int
	TopN       int
	BaseURL    string
	Timeout    time.Duration
	Now        func() time.Time
}

type Fetcher struct {
	opts Options
}

func New(opts Options) *Fetcher {
	if len(opts.Repos) == 0 {
		opts.Repos = DefaultRepos
	}
	if opts.DaysBack == 0 {
		opts.DaysBack = 7
	}
	if opts.MaxResults == 0 {
		opts.MaxResults = 10
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

type release struct {
	TagName     string `json:"tag_name"`
	Name        string `json:"name"`
	Body        string `json:"body"`
	HTMLURL     string `json:"html_url"`
	PublishedAt string `json:"published_at"`
	Prerelease  bool   `json:"prerelease"`
}

// Releases fetches recent releases for one "owner/repo". An unknown repo
// logs and returns nothing rather than failing the run.
func (f *Fetcher) Releases(repo string) ([]types.Item, error) {
	headers := map[string]string{"Accept": "application/vnd.github+json"}
	if f.opts.Token != "" {
		headers["Authorization"] = "Bearer " + f.opts.Token
	}

	release_url := f.opts.BaseURL + "/repos/" + repo + "/releases?per_page=" + strconv.Itoa(f.opts.MaxResults)
	body, err := web.Get(release_url, web.Options{
		UserAgent: userAgent,
		Timeout:   f.opts.Timeout,
		Headers:   headers,
	})
	if err != nil {
		var status *web.StatusError
		if errors.As(err, &status) && status.Code == 404 {
			log.Printf("GitHub repo not found: %s", repo)
			return nil, nil
		}
		return nil, err
	}

	var releases []release
	if err := json.Unmarshal(body, &releases); err != nil {
		return nil, err
	}

	cutoff := f.opts.Now().UTC().AddDate(0, 0, -f.opts.DaysBack)

	var items []types.Item
	for _, rel := range releases {
		if rel.PublishedAt == "" {
			continue
		}
		published, err := time.Parse(time.RFC3339, rel.PublishedAt)
		if err != nil {
			continue
		}
		published = published.UTC()
		if published.Before(cutoff) {
			continue
		}

		name := rel.Name
		if name == "" {
			name = rel.TagName
		}

		items = append(items, types.Item{
			ID:         rel.TagName,
			Title:      sanitize.Title(name),
			Summary:    sanitize.ReleaseNotes(rel.Body),
			URL:        rel.HTMLURL,
			Published:  published,
			Source:     repo,
			Prerelease: rel.Prerelease,
			Type:       types.TypeRelease,
		})
	}
	return items, nil
}

// Fetch collects releases across every monitored repo, newest first,
// capped at top N.
func (f *Fetcher) Fetch() ([]types.Item, error) {
	var all []types.Item
	for _, repo := range f.opts.Repos {
		items, err := f.Releases(repo)
		if err != nil {
			log.Printf("GitHub releases for %s failed: %v", repo, err)
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

