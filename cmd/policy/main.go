// YouTube Policy Intelligence Monitor. Fetches policy-related content
// from official YouTube sources, community discussions, legal analysis,
// and expert channels, then sends a 4-tier report to Slack.
//
// Usage:
//
//	policy                  run the full report
//	policy --test           send a test message to the webhook
//	policy --dry-run        fetch and print without sending
//	policy --official       only fetch official sources (Tier 1)
//	policy --community      only fetch community sources (Tier 2)
//	policy --legal          only fetch legal sources (Tier 3)
//	policy --experts        only fetch expert channels (Tier 4)
//	policy --no-filter      skip keyword filtering
//	policy --check-sources  probe the manual sources and exit
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/tlandry-heckleandcode/ai-news/lib/categorize"
	"github.com/tlandry-heckleandcode/ai-news/lib/config"
	"github.com/tlandry-heckleandcode/ai-news/lib/digest"
	"github.com/tlandry-heckleandcode/ai-news/lib/filters"
	"github.com/tlandry-heckleandcode/ai-news/lib/logger"
	"github.com/tlandry-heckleandcode/ai-news/lib/slack"
	"github.com/tlandry-heckleandcode/ai-news/lib/types"
	"github.com/tlandry-heckleandcode/ai-news/sources/expertchannels"
	"github.com/tlandry-heckleandcode/ai-news/sources/legal"
	"github.com/tlandry-heckleandcode/ai-news/sources/manual"
	"github.com/tlandry-heckleandcode/ai-news/sources/reddit"
	"github.com/tlandry-heckleandcode/ai-news/sources/youtubeblog"
)

var runLog *logger.Logger

var policyMatcher = categorize.PolicyMatcher()

type runConfig struct {
	daysBack     int
	topOfficial  int
	topCommunity int
	topLegal     int
	topExperts   int
	threshold    float64
	noFilter     bool
}

func loadConfig(noFilter bool) runConfig {
	return runConfig{
		daysBack:     config.GetInt("POLICY_DAYS_LOOKBACK", 1),
		topOfficial:  config.GetInt("POLICY_TOP_OFFICIAL", 5),
		topCommunity: config.GetInt("POLICY_TOP_COMMUNITY", 5),
		topLegal:     config.GetInt("POLICY_TOP_LEGAL", 3),
		topExperts:   config.GetInt("POLICY_TOP_EXPERTS", 3),
		threshold:    config.GetFloat("DEDUP_THRESHOLD", filters.DefaultThreshold),
		noFilter:     noFilter,
	}
}

// consolidateTier dedupes, categorizes, and caps one tier pool.
func consolidateTier(items []types.Item, limit int, cfg runConfig) []types.Item {
	return digest.Consolidate(items, digest.Options{
		Threshold: cfg.threshold,
		Matcher:   policyMatcher,
		Limit:     limit,
	})
}

func fetchOfficial(cfg runConfig) []types.Item {
	fetcher := youtubeblog.New(youtubeblog.Options{
		Keywords:        config.GetList("POLICY_KEYWORDS", nil),
		DaysBack:        cfg.daysBack,
		TopN:            cfg.topOfficial,
		NoKeywordFilter: cfg.noFilter,
	})
	posts, err := fetcher.Fetch()
	if err != nil {
		runLog.Error("Error fetching official sources: %v", err)
		return nil
	}
	runLog.Info("Found %d official policy updates", len(posts))
	return posts
}

func fetchCommunity(cfg runConfig) []types.Item {
	fetcher := reddit.New(reddit.Options{
		Subreddits:      reddit.Parse(config.Get("POLICY_SUBREDDITS", "")),
		Keywords:        config.GetList("POLICY_KEYWORDS", nil),
		DaysBack:        cfg.daysBack,
		TopN:            cfg.topCommunity,
		NoKeywordFilter: cfg.noFilter,
	})
	posts, err := fetcher.Fetch()
	if err != nil {
		runLog.Error("Error fetching community sources: %v", err)
		return nil
	}
	runLog.Info("Found %d community discussions", len(posts))
	return posts
}

func fetchLegal(cfg runConfig) []types.Item {
	fetcher := legal.New(legal.Options{
		DaysBack:        cfg.daysBack,
		TopN:            cfg.topLegal,
		NoKeywordFilter: cfg.noFilter,
	})
	posts, err := fetcher.Fetch()
	if err != nil {
		runLog.Error("Error fetching legal sources: %v", err)
		return nil
	}
	runLog.Info("Found %d legal/policy analysis posts", len(posts))
	return posts
}

func fetchExperts(cfg runConfig) []types.Item {
	fetcher := expertchannels.New(expertchannels.Options{
		Channels: expertchannels.Parse(config.Get("POLICY_EXPERT_CHANNELS", "")),
		DaysBack: cfg.daysBack,
		TopN:     cfg.topExperts,
	})
	videos, err := fetcher.Fetch()
	if err != nil {
		runLog.Error("Error fetching expert channels: %v", err)
		return nil
	}
	runLog.Info("Found %d expert videos", len(videos))
	return videos
}

func categoryTag(category string) string {
	if category == "" {
		return ""
	}
	return fmt.Sprintf("%s [%s] ", policyMatcher.Emoji(category), category)
}

func printTier(items []types.Item, sourceLabel, emptyLine string, withAuthor bool) {
	now := time.Now()
	if len(items) == 0 {
		fmt.Println(emptyLine)
		return
	}
	for i, it := range items {
		fmt.Printf("\n%d. %s%s\n", i+1, categoryTag(it.Category), it.Title)
		if withAuthor {
			author := it.Author
			if author == "" {
				author = "unknown"
			}
			fmt.Printf("   %s: %s by u/%s\n", sourceLabel, it.Source, author)
			fmt.Printf("   Posted: %d hours ago\n", it.HoursAgo(now))
		} else {
			fmt.Printf("   %s: %s\n", sourceLabel, it.Source)
			fmt.Printf("   Published: %d hours ago\n", it.HoursAgo(now))
		}
		fmt.Printf("   URL: %s\n", it.URL)
	}
}

func printResults(official, community, legalPosts, experts []types.Item) {
	rule := strings.Repeat("=", 60)
	sub := strings.Repeat("-", 40)

	fmt.Println("\n" + rule)
	fmt.Println("YOUTUBE POLICY INTELLIGENCE REPORT")
	fmt.Println(rule)

	fmt.Println("\n\U0001F534 TIER 1: OFFICIAL UPDATES")
	fmt.Println(sub)
	printTier(official, "Source", "No official updates found.", false)

	fmt.Println("\n\n\U0001F7E0 TIER 2: COMMUNITY SIGNALS")
	fmt.Println(sub)
	printTier(community, "Source", "No community discussions found.", true)

	fmt.Println("\n\n\U0001F535 TIER 3: LEGAL ANALYSIS")
	fmt.Println(sub)
	printTier(legalPosts, "Source", "No legal analysis found.", false)

	fmt.Println("\n\n\U0001F7E3 TIER 4: EXPERT COMMENTARY")
	fmt.Println(sub)
	printTier(experts, "Channel", "No expert videos found.", false)

	fmt.Println("\n" + rule)
	fmt.Println("REMINDER: Check manual sources for additional updates")
	for _, url := range manual.URLs()[:2] {
		fmt.Printf("  - %s\n", url)
	}
	fmt.Println(rule)
}

func checkSources() {
	rule := strings.Repeat("=", 60)
	fmt.Println(rule)
	fmt.Println("MANUAL POLICY SOURCES")
	fmt.Println(rule)
	fmt.Print("\nThese sources require manual monitoring:\n\n")

	for _, s := range manual.DefaultSources {
		fmt.Printf("\U0001F4CC %s\n", s.Name)
		fmt.Printf("   URL: %s\n", s.URL)
		fmt.Printf("   Value: %s\n", s.Value)
		fmt.Printf("   Challenge: %s\n\n", s.Challenge)
	}

	fmt.Println(strings.Repeat("-", 60))
	fmt.Println("Checking source availability...")
	availability := manual.New(manual.Options{}).CheckAvailable()
	for _, s := range manual.DefaultSources {
		status := "❌ Not accessible"
		if availability[s.Name] {
			status = "✅ Accessible"
		}
		fmt.Printf("  %s: %s\n", s.Name, status)
	}

	fmt.Println("\n" + rule)
	fmt.Println("REMINDER: Check these sources manually for policy updates")
	fmt.Println(rule)
}

func newReporter() (*slack.Reporter, error) {
	return slack.New(slack.Options{WebhookURL: config.Get("SLACK_WEBHOOK_URL_POLICY", "")})
}

func main() {
	test := flag.Bool("test", false, "send a test message to Slack")
	dryRun := flag.Bool("dry-run", false, "fetch data but print to console instead of sending")
	officialOnly := flag.Bool("official", false, "only fetch official sources (Tier 1)")
	communityOnly := flag.Bool("community", false, "only fetch community sources (Tier 2)")
	legalOnly := flag.Bool("legal", false, "only fetch legal sources (Tier 3)")
	expertsOnly := flag.Bool("experts", false, "only fetch expert channels (Tier 4)")
	noFilter := flag.Bool("no-filter", false, "skip keyword filtering (fetch all content)")
	checkAvailability := flag.Bool("check-sources", false, "probe the manual sources and exit")
	flag.Parse()

	config.LoadEnv()

	var err error
	runLog, err = logger.New("POLICY", config.LogOpts("logs/policy.log"))
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	runLog.Info("Starting YouTube Policy Intelligence Monitor")

	if *checkAvailability {
		checkSources()
		return
	}

	if *test {
		reporter, err := newReporter()
		if err != nil {
			runLog.Error("Slack configuration error: %v, set SLACK_WEBHOOK_URL_POLICY", err)
			os.Exit(1)
		}
		if err := reporter.SendTest("YouTube Policy Intelligence"); err != nil {
			runLog.Error("Test message failed: %v", err)
			os.Exit(1)
		}
		runLog.Info("Test message sent")
		return
	}

	cfg := loadConfig(*noFilter)
	runLog.Info("Looking back: %d days", cfg.daysBack)
	runLog.Info("Display limits: %d official, %d community, %d legal, %d experts",
		cfg.topOfficial, cfg.topCommunity, cfg.topLegal, cfg.topExperts)

	fetchAll := !(*officialOnly || *communityOnly || *legalOnly || *expertsOnly)

	var official, community, legalPosts, experts []types.Item

	if fetchAll || *officialOnly {
		runLog.Info("Fetching official YouTube sources (Tier 1)")
		official = consolidateTier(fetchOfficial(cfg), cfg.topOfficial, cfg)
	}
	if fetchAll || *communityOnly {
		runLog.Info("Fetching community discussions (Tier 2)")
		community = consolidateTier(fetchCommunity(cfg), cfg.topCommunity, cfg)
	}
	if fetchAll || *legalOnly {
		runLog.Info("Fetching legal/policy analysis (Tier 3)")
		legalPosts = consolidateTier(fetchLegal(cfg), cfg.topLegal, cfg)
	}
	if fetchAll || *expertsOnly {
		runLog.Info("Fetching expert channels (Tier 4)")
		experts = consolidateTier(fetchExperts(cfg), cfg.topExperts, cfg)
	}

	if *dryRun {
		printResults(official, community, legalPosts, experts)
		fmt.Println("\n[Dry run - report not sent to Slack]")
		runLog.Info("Done")
		return
	}

	runLog.Info("Sending report to Slack")
	reporter, err := newReporter()
	if err == nil {
		err = reporter.SendPolicy(official, community, legalPosts, experts, manual.ReminderText())
	}
	if err != nil {
		runLog.Error("Failed to send policy report: %v", err)
		printResults(official, community, legalPosts, experts)
		os.Exit(1)
	}

	runLog.Info("Policy report sent successfully")
	runLog.Info("Done")
}
