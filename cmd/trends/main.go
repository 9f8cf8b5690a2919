// AI Trends Reporter. Fetches trending YouTube videos and news articles
// about AI coding tools, consolidates them into one ranked digest per
// pool, and posts the report to Slack.
//
// Usage:
//
//	trends             run the full report
//	trends --test      send a test message to the webhook
//	trends --dry-run   fetch and print without sending
//	trends --videos    only fetch videos
//	trends --articles  only fetch articles
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tlandry-heckleandcode/ai-news/lib/categorize"
	"github.com/tlandry-heckleandcode/ai-news/lib/config"
	"github.com/tlandry-heckleandcode/ai-news/lib/digest"
	"github.com/tlandry-heckleandcode/ai-news/lib/filters"
	"github.com/tlandry-heckleandcode/ai-news/lib/llm"
	"github.com/tlandry-heckleandcode/ai-news/lib/logger"
	"github.com/tlandry-heckleandcode/ai-news/lib/slack"
	"github.com/tlandry-heckleandcode/ai-news/lib/types"
	"github.com/tlandry-heckleandcode/ai-news/sources/blogs"
	"github.com/tlandry-heckleandcode/ai-news/sources/github"
	"github.com/tlandry-heckleandcode/ai-news/sources/googlenews"
	"github.com/tlandry-heckleandcode/ai-news/sources/hackernews"
	"github.com/tlandry-heckleandcode/ai-news/sources/youtube"
)

var runLog *logger.Logger

var printer = message.NewPrinter(language.English)

type runConfig struct {
	searchTerms []string
	maxPerTerm  int
	daysBack    int
	topN        int
	poolSize    int
	threshold   float64
	llmOpts     llm.Options
}

func loadConfig() runConfig {
	return runConfig{
		searchTerms: config.GetList("SEARCH_TERMS", googlenews.DefaultSearchTerms),
		maxPerTerm:  config.GetInt("MAX_RESULTS_PER_TERM", 10),
		daysBack:    config.GetInt("DAYS_LOOKBACK", 7),
		topN:        3,
		poolSize:    config.GetInt("FETCH_POOL_SIZE", 10),
		threshold:   config.GetFloat("DEDUP_THRESHOLD", filters.DefaultThreshold),
		llmOpts: llm.Options{
			Enabled:  config.GetBool("LLM_FILTER_ENABLED", true),
			APIKey:   config.Get("OPENAI_API_KEY", ""),
			BaseURL:  config.Get("OPENAI_BASE_URL", ""),
			MinScore: config.GetInt("LLM_MIN_SCORE", 7),
			Timeout:  time.Duration(config.GetInt("LLM_TIMEOUT_SECONDS", 10)) * time.Second,
		},
	}
}

// fetchN is the per-source cap. With the relevance filter on, each source
// hands over a larger candidate pool and the filter plus final cut narrow
// it back down.
func (c runConfig) fetchN() int {
	if c.llmOpts.Enabled {
		return c.poolSize
	}
	return c.topN
}

func fetchVideos(cfg runConfig) []types.Item {
	fetcher, err := youtube.New(youtube.Options{
		APIKey:      config.Get("YOUTUBE_API_KEY", ""),
		SearchTerms: cfg.searchTerms,
		DaysBack:    cfg.daysBack,
		MaxPerTerm:  cfg.maxPerTerm,
		TopN:        cfg.fetchN(),
	})
	if err != nil {
		runLog.Error("YouTube API error: %v", err)
		return nil
	}

	videos, err := fetcher.Fetch()
	if err != nil {
		runLog.Error("Error fetching videos: %v", err)
		return nil
	}
	runLog.Info("Found %d trending videos", len(videos))
	return videos
}

func fetchArticles(cfg runConfig) []types.Item {
	n := cfg.fetchN()
	var pool []types.Item

	collect := func(name string, items []types.Item, err error) {
		if err != nil {
			runLog.Error("Error fetching %s: %v", name, err)
			return
		}
		runLog.Info("Found %d items from %s", len(items), name)
		pool = append(pool, items...)
	}

	news := googlenews.New(googlenews.Options{
		SearchTerms: cfg.searchTerms,
		DaysBack:    cfg.daysBack,
		MaxPerTerm:  cfg.maxPerTerm,
		TopN:        n,
		FetchImages: true,
	})
	items, err := news.Fetch()
	collect("Google News", items, err)

	hn := hackernews.New(hackernews.Options{
		SearchTerms: config.GetList("HN_SEARCH_TERMS", hackernews.DefaultSearchTerms),
		DaysBack:    cfg.daysBack,
		MinPoints:   config.GetInt("HN_MIN_SCORE", 10),
		TopN:        n,
	})
	items, err = hn.Fetch()
	collect("Hacker News", items, err)

	releases := github.New(github.Options{
		Repos:    config.GetList("GITHUB_REPOS", github.DefaultRepos),
		Token:    config.Get("GITHUB_TOKEN", ""),
		DaysBack: cfg.daysBack,
		TopN:     n,
	})
	items, err = releases.Fetch()
	collect("GitHub releases", items, err)

	official := blogs.New(blogs.Options{
		Blogs:    blogs.Parse(config.Get("OFFICIAL_BLOGS", "")),
		DaysBack: cfg.daysBack,
		TopN:     n,
	})
	items, err = official.Fetch()
	collect("official blogs", items, err)

	return pool
}

func consolidate(items []types.Item, label string, matcher *categorize.Matcher, cfg runConfig) []types.Item {
	return digest.Consolidate(items, digest.Options{
		Threshold: cfg.threshold,
		Matcher:   matcher,
		Relevance: func(in []types.Item) []types.Item {
			return llm.FilterByRelevance(in, label, cfg.llmOpts)
		},
		Limit: cfg.topN,
	})
}

func printResults(videos, articles []types.Item) {
	rule := strings.Repeat("=", 60)
	sub := strings.Repeat("-", 40)
	now := time.Now()

	fmt.Println("\n" + rule)
	fmt.Println("AI TRENDS REPORT")
	fmt.Println(rule)

	fmt.Println("\nTRENDING YOUTUBE VIDEOS (Last 7 Days)")
	fmt.Println(sub)
	if len(videos) == 0 {
		fmt.Println("No trending videos found.")
	}
	for i, v := range videos {
		var views int64
		if v.Stats != nil {
			views = v.Stats.Views
		}
		fmt.Printf("\n%d. %s\n", i+1, v.Title)
		fmt.Printf("   Channel: %s\n", v.Channel)
		fmt.Printf("   Views: %s | %d days ago\n", printer.Sprintf("%d", views), v.DaysAgo(now))
		fmt.Printf("   URL: %s\n", v.URL)
	}

	fmt.Println("\n\nTRENDING ARTICLES (Last 7 Days)")
	fmt.Println(sub)
	if len(articles) == 0 {
		fmt.Println("No trending articles found.")
	}
	for i, a := range articles {
		fmt.Printf("\n%d. %s\n", i+1, a.Title)
		fmt.Printf("   Source: %s\n", a.Source)
		if len(a.AlsoOn) > 0 {
			fmt.Printf("   Also on: %s\n", strings.Join(a.AlsoOn, ", "))
		}
		fmt.Printf("   Published: %d hours ago\n", a.HoursAgo(now))
		fmt.Printf("   URL: %s\n", a.URL)
	}

	fmt.Println("\n" + rule)
}

func newReporter() (*slack.Reporter, error) {
	return slack.New(slack.Options{WebhookURL: config.Get("SLACK_WEBHOOK_URL", "")})
}

func main() {
	test := flag.Bool("test", false, "send a test message to Slack")
	dryRun := flag.Bool("dry-run", false, "fetch data but print to console instead of sending")
	videosOnly := flag.Bool("videos", false, "only fetch videos")
	articlesOnly := flag.Bool("articles", false, "only fetch articles")
	flag.Parse()

	config.LoadEnv()

	var err error
	runLog, err = logger.New("TRENDS", config.LogOpts("logs/trends.log"))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	runLog.Info("Starting AI Trends Reporter")

	if *test {
		reporter, err := newReporter()
		if err != nil {
			runLog.Error("Slack configuration error: %v, set SLACK_WEBHOOK_URL", err)
			os.Exit(1)
		}
		if err := reporter.SendTest("AI Trends Reporter"); err != nil {
			runLog.Error("Test message failed: %v", err)
			os.Exit(1)
		}
		runLog.Info("Test message sent")
		return
	}

	cfg := loadConfig()
	runLog.Info("Search terms: %s", strings.Join(cfg.searchTerms, ", "))
	runLog.Info("Looking back: %d days", cfg.daysBack)

	fetchVideosFlag := !*articlesOnly || *videosOnly
	fetchArticlesFlag := !*videosOnly || *articlesOnly

	matcher := categorize.ContentMatcher()
	var videos, articles []types.Item

	if fetchVideosFlag {
		runLog.Info("Fetching YouTube videos")
		videos = consolidate(fetchVideos(cfg), "videos", matcher, cfg)
	}
	if fetchArticlesFlag {
		runLog.Info("Fetching news articles")
		articles = consolidate(fetchArticles(cfg), "articles", matcher, cfg)
	}

	if *dryRun {
		printResults(videos, articles)
		fmt.Println("\n[Dry run - report not sent to Slack]")
		runLog.Info("Done")
		return
	}

	runLog.Info("Sending report to Slack")
	reporter, err := newReporter()
	if err == nil {
		err = reporter.SendTrends(videos, articles, cfg.searchTerms)
	}
	if err != nil {
		runLog.Error("Failed to send report: %v", err)
		printResults(videos, articles)
		os.Exit(1)
	}

	runLog.Info("Report sent successfully")
	runLog.Info("Done")
}
