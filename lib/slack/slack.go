// Package slack builds Block Kit payloads for the two reports and posts
// them to incoming webhooks. Every interpolated value passes through
// EscapeMrkdwn or SafeURL first, feed titles are hostile input.
package slack

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tlandry-heckleandcode/ai-news/lib/categorize"
	"github.com/tlandry-heckleandcode/ai-news/lib/types"
)

// Payload is the webhook message body.
type Payload struct {
	Blocks []Block `json:"blocks"`
}

// Block is one Block Kit block. Only the fields for its Type are set.
type Block struct {
	Type      string `json:"type"`
	Text      *Text  `json:"text,omitempty"`
	Elements  []Text `json:"elements,omitempty"`
	Accessory *Image `json:"accessory,omitempty"`
}

type Text struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

type Image struct {
	Type     string `json:"type"`
	ImageURL string `json:"image_url"`
	AltText  string `json:"alt_text"`
}

func headerBlock(text string) Block {
	return Block{Type: "header", Text: &Text{Type: "plain_text", Text: text, Emoji: true}}
}

func sectionBlock(mrkdwn string) Block {
	return Block{Type: "section", Text: &Text{Type: "mrkdwn", Text: mrkdwn}}
}

func contextBlock(texts ...string) Block {
	b := Block{Type: "context"}
	for _, t := range texts {
		b.Elements = append(b.Elements, Text{Type: "mrkdwn", Text: t})
	}
	return b
}

func dividerBlock() Block {
	return Block{Type: "divider"}
}

// EscapeMrkdwn neutralizes mrkdwn control characters so a crafted title
// cannot inject formatting or fake links. Truncation happens before
// escaping so an escape sequence is never cut in half. maxLen 0 means no
// limit, measured in runes.
func EscapeMrkdwn(text string, maxLen int) string {
	if text == "" {
		return ""
	}
	if maxLen > 0 {
		runes := []rune(text)
		if len(runes) > maxLen {
			text = string(runes[:maxLen-3]) + "..."
		}
	}
	// Ampersand first, otherwise the entity escapes get double-escaped.
	text = strings.ReplaceAll(text, "&", "&amp;")
	text = strings.ReplaceAll(text, "<", "&lt;")
	text = strings.ReplaceAll(text, ">", "&gt;")
	text = strings.ReplaceAll(text, "*", `\*`)
	text = strings.ReplaceAll(text, "_", `\_`)
	text = strings.ReplaceAll(text, "~", `\~`)
	text = strings.ReplaceAll(text, "`", "\\`")
	return text
}

// SafeURL passes through http(s) addresses and drops everything else, so
// javascript: and data: schemes never reach a link block.
func SafeURL(url string) string {
	if strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "http://") {
		return url
	}
	return ""
}

// altText truncates a plain-text image description. No escaping, alt text
// is not mrkdwn.
func altText(title, fallback string) string {
	if title == "" {
		return fallback
	}
	runes := []rune(title)
	if len(runes) > 75 {
		runes = runes[:75]
	}
	return string(runes)
}

func videoAge(days int) string {
	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

func articleAge(hours int) string {
	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		return fmt.Sprintf("%d hours ago", hours)
	case hours < 48:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", hours/24)
	}
}

func policyAge(hours int) string {
	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		return fmt.Sprintf("%dh ago", hours)
	case hours < 48:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", hours/24)
	}
}

var englishPrinter = message.NewPrinter(language.English)

// commaGrouped renders 1234567 as "1,234,567".
func commaGrouped(n int64) string {
	return englishPrinter.Sprintf("%d", n)
}

type tierConfig struct {
	name  string
	emoji string
}

var tiers = map[int]tierConfig{
	types.TierOfficial:  {"Official Updates", ":red_circle:"},
	types.TierCommunity: {"Community Signals", ":large_orange_circle:"},
	types.TierLegal:     {"Legal Analysis", ":large_blue_circle:"},
	types.TierExpert:    {"Expert Commentary", ":large_purple_circle:"},
}

// The policy report tags each item with its category glyph.
var policyEmoji = categorize.PolicyMatcher()

// Options for a Reporter. WebhookURL is required.
type Options struct {
	WebhookURL string
	Timeout    time.Duration
	Now        func() time.Time
}

// Reporter posts reports to one incoming webhook.
type Reporter struct {
	webhook string
	client  *http.Client
	now     func() time.Time
}

func New(opts Options) (*Reporter, error) {
	if opts.WebhookURL == "" {
		return nil, errors.New("slack webhook URL is required")
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Reporter{
		webhook: opts.WebhookURL,
		client:  &http.Client{Timeout: opts.Timeout},
		now:     opts.Now,
	}, nil
}

func (r *Reporter) formatVideo(video types.Item, index int) string {
	var views int64
	if video.Stats != nil {
		views = video.Stats.Views
	}

	title := EscapeMrkdwn(video.Title, 200)
	channel := EscapeMrkdwn(video.Channel, 100)
	url := SafeURL(video.URL)

	lines := []string{
		fmt.Sprintf("*%d. %s*", index, title),
		fmt.Sprintf("   Channel: %s", channel),
		fmt.Sprintf("   Views: %s | Published: %s", commaGrouped(views), videoAge(video.DaysAgo(r.now()))),
	}
	if url != "" {
		lines = append(lines, fmt.Sprintf("   <%s|Watch on YouTube>", url))
	}
	return strings.Join(lines, "\n")
}

func (r *Reporter) formatArticle(article types.Item, index int) string {
	title := EscapeMrkdwn(article.Title, 200)
	source := EscapeMrkdwn(article.Source, 100)
	summary := EscapeMrkdwn(article.Summary, 500)
	url := SafeURL(article.URL)

	lines := []string{fmt.Sprintf("*%d. %s*", index, title)}
	if summary != "" {
		lines = append(lines, fmt.Sprintf("   _%s_", summary))
	}
	lines = append(lines, fmt.Sprintf("   Source: %s", source))
	if len(article.AlsoOn) > 0 {
		lines = append(lines, fmt.Sprintf("   Also on: %s", EscapeMrkdwn(strings.Join(article.AlsoOn, ", "), 100)))
	}
	lines = append(lines, fmt.Sprintf("   Published: %s", articleAge(article.HoursAgo(r.now()))))
	if url != "" {
		lines = append(lines, fmt.Sprintf("   <%s|Read Article>", url))
	}
	return strings.Join(lines, "\n")
}

func (r *Reporter) itemSection(text string, it types.Item, fallbackAlt string) Block {
	section := sectionBlock(text)
	if thumb := SafeURL(it.Thumbnail); thumb != "" {
		section.Accessory = &Image{
			Type:     "image",
			ImageURL: thumb,
			AltText:  altText(it.Title, fallbackAlt),
		}
	}
	return section
}

// BuildTrendsReport assembles the daily trends message.
func (r *Reporter) BuildTrendsReport(videos, articles []types.Item, searchTerms []string) Payload {
	now := r.now()
	blocks := []Block{
		headerBlock("AI Trends Report - " + now.Format("Monday, January 02, 2006")),
		sectionBlock("Good morning! Here's your daily roundup of trending AI content."),
		dividerBlock(),
	}

	blocks = append(blocks, sectionBlock("*:tv: TRENDING YOUTUBE VIDEOS (Last 24 Hours)*"))
	if len(videos) == 0 {
		blocks = append(blocks, sectionBlock("_No new trending videos found in the last 24 hours._"))
	}
	for i, video := range videos {
		blocks = append(blocks, r.itemSection(r.formatVideo(video, i+1), video, "Video thumbnail"))
	}

	blocks = append(blocks, dividerBlock())

	blocks = append(blocks, sectionBlock("*:newspaper: TRENDING ARTICLES (Last 24 Hours)*"))
	if len(articles) == 0 {
		blocks = append(blocks, sectionBlock("_No new trending articles found in the last 24 hours._"))
	}
	for i, article := range articles {
		blocks = append(blocks, r.itemSection(r.formatArticle(article, i+1), article, "Article thumbnail"))
	}

	blocks = append(blocks, dividerBlock())
	blocks = append(blocks, contextBlock(fmt.Sprintf(
		"Report generated at %s | Search terms: %s",
		now.Format("03:04 PM"), strings.Join(searchTerms, ", "),
	)))

	return Payload{Blocks: blocks}
}

// SendTrends builds and posts the trends report.
func (r *Reporter) SendTrends(videos, articles []types.Item, searchTerms []string) error {
	return r.Send(r.BuildTrendsReport(videos, articles, searchTerms))
}

func (r *Reporter) policyItemBlocks(it types.Item, index, tier int) []Block {
	title := EscapeMrkdwn(it.Title, 200)
	source := EscapeMrkdwn(it.Source, 100)
	summary := EscapeMrkdwn(it.Summary, 300)
	url := SafeURL(it.URL)

	tag := ""
	if it.Category != "" {
		tag = fmt.Sprintf("%s [%s] ", policyEmoji.Emoji(it.Category), it.Category)
	}

	text := fmt.Sprintf("*%d. %s%s*", index, tag, title)
	if summary != "" {
		text += fmt.Sprintf("\n_%s_", summary)
	}
	if url != "" {
		text += fmt.Sprintf("\n<%s|:link: View>", url)
	}

	section := sectionBlock(text)
	// Only expert commentary carries video thumbnails.
	if thumb := SafeURL(it.Thumbnail); thumb != "" && tier == types.TierExpert {
		section.Accessory = &Image{Type: "image", ImageURL: thumb, AltText: altText(it.Title, "Video thumbnail")}
	}

	contexts := []string{fmt.Sprintf(":globe_with_meridians: %s", source)}
	if it.Author != "" && tier == types.TierCommunity {
		contexts = append(contexts, fmt.Sprintf(":bust_in_silhouette: u/%s", EscapeMrkdwn(it.Author, 50)))
	}
	contexts = append(contexts, fmt.Sprintf(":clock1: %s", policyAge(it.HoursAgo(r.now()))))

	return []Block{section, contextBlock(contexts...)}
}

func (r *Reporter) tierSection(items []types.Item, tier int) []Block {
	conf := tiers[tier]
	blocks := []Block{headerBlock(fmt.Sprintf("%s Tier %d: %s", conf.emoji, tier, conf.name))}
	for i, it := range items {
		blocks = append(blocks, r.policyItemBlocks(it, i+1, tier)...)
	}
	return append(blocks, dividerBlock())
}

// BuildPolicyReport assembles the 4-tier policy message. Empty tiers are
// skipped entirely; a run with nothing at all collapses to a single
// all-clear line. reminder goes into the footer next to the timestamp.
func (r *Reporter) BuildPolicyReport(official, community, legal, experts []types.Item, reminder string) Payload {
	now := r.now()
	blocks := []Block{
		headerBlock(":shield: YouTube Policy Intelligence - " + now.Format("Monday, January 02, 2006")),
		contextBlock("Daily monitoring of YouTube policy changes, community signals, and expert analysis."),
		dividerBlock(),
	}

	total := len(official) + len(community) + len(legal) + len(experts)
	if total == 0 {
		blocks = append(blocks, sectionBlock(":white_check_mark: *No policy updates detected in the last 24 hours.*\n\nAll quiet on the policy front. Manual sources may still have updates."))
		blocks = append(blocks, dividerBlock())
	} else {
		for _, t := range []struct {
			items []types.Item
			tier  int
		}{
			{official, types.TierOfficial},
			{community, types.TierCommunity},
			{legal, types.TierLegal},
			{experts, types.TierExpert},
		} {
			if len(t.items) > 0 {
				blocks = append(blocks, r.tierSection(t.items, t.tier)...)
			}
		}
	}

	footer := "Report generated at " + now.Format("03:04 PM")
	if reminder != "" {
		footer += " | " + reminder
	}
	blocks = append(blocks, contextBlock(footer))

	return Payload{Blocks: blocks}
}

// SendPolicy builds and posts the policy report.
func (r *Reporter) SendPolicy(official, community, legal, experts []types.Item, reminder string) error {
	return r.Send(r.BuildPolicyReport(official, community, legal, experts, reminder))
}

// SendTest posts a fixed message so a new webhook can be verified.
func (r *Reporter) SendTest(app string) error {
	text := fmt.Sprintf(":white_check_mark: *%s - Test Message*\n\nYour Slack integration is working correctly!", app)
	return r.Send(Payload{Blocks: []Block{sectionBlock(text)}})
}

// Send posts a payload to the webhook. Anything but a 200 is an error.
func (r *Reporter) Send(p Payload) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshaling slack payload: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, r.webhook, bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("building slack request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending to slack: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("slack returned status %d: %s", resp.StatusCode, body)
	}
	return nil
}
