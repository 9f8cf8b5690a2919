package slack

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tlandry-heckleandcode/ai-news/lib/types"
)

func fixedNow() time.Time {
	return time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
}

func testReporter(t *testing.T, url string) *Reporter {
	t.Helper()
	r, err := New(Options{WebhookURL: url, Now: fixedNow})
	if err != nil {
		t.Fatal(err)
	}
	return r
}

// allText flattens every text fragment in a payload for contains checks.
func allText(p Payload) string {
	var sb strings.Builder
	for _, b := range p.Blocks {
		if b.Text != nil {
			sb.WriteString(b.Text.Text)
			sb.WriteString("\n")
		}
		for _, e := range b.Elements {
			sb.WriteString(e.Text)
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func TestEscapeMrkdwn(t *testing.T) {
	cases := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"plain title", 0, "plain title"},
		{"<script>", 0, "&lt;script&gt;"},
		{"A & B", 0, "A &amp; B"},
		{"&lt;", 0, "&amp;lt;"},
		{"*bold* _it_ ~st~ `code`", 0, `\*bold\* \_it\_ \~st\~ ` + "\\`code\\`"},
		{"abcdefghij", 8, "abcde..."},
		{"short", 8, "short"},
		{"", 100, ""},
	}
	for _, c := range cases {
		if got := EscapeMrkdwn(c.in, c.maxLen); got != c.want {
			t.Errorf("EscapeMrkdwn(%q, %d) = %q, want %q", c.in, c.maxLen, got, c.want)
		}
	}
}

func TestSafeURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://example.com/a", "https://example.com/a"},
		{"http://example.com", "http://example.com"},
		{"javascript:alert(1)", ""},
		{"ftp://example.com", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := SafeURL(c.in); got != c.want {
			t.Errorf("SafeURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestAgeWording(t *testing.T) {
	if got := videoAge(0); got != "Today" {
		t.Errorf("videoAge(0) = %q", got)
	}
	if got := videoAge(1); got != "1 day ago" {
		t.Errorf("videoAge(1) = %q", got)
	}
	if got := videoAge(5); got != "5 days ago" {
		t.Errorf("videoAge(5) = %q", got)
	}

	if got := articleAge(0); got != "Just now" {
		t.Errorf("articleAge(0) = %q", got)
	}
	if got := articleAge(6); got != "6 hours ago" {
		t.Errorf("articleAge(6) = %q", got)
	}
	if got := articleAge(30); got != "1 day ago" {
		t.Errorf("articleAge(30) = %q", got)
	}
	if got := articleAge(72); got != "3 days ago" {
		t.Errorf("articleAge(72) = %q", got)
	}

	if got := policyAge(6); got != "6h ago" {
		t.Errorf("policyAge(6) = %q", got)
	}
	if got := policyAge(72); got != "3 days ago" {
		t.Errorf("policyAge(72) = %q", got)
	}
}

func TestCommaGrouped(t *testing.T) {
	if got := commaGrouped(1234567); got != "1,234,567" {
		t.Errorf("commaGrouped(1234567) = %q", got)
	}
	if got := commaGrouped(0); got != "0" {
		t.Errorf("commaGrouped(0) = %q", got)
	}
}

func TestNew_RequiresWebhook(t *testing.T) {
	if _, err := New(Options{}); err == nil {
		t.Fatal("expected an error without a webhook URL")
	}
}

func TestBuildTrendsReport(t *testing.T) {
	r := testReporter(t, "https://hooks.example.com/x")

	videos := []types.Item{{
		Title:     "Cursor AI: The Future of Coding",
		Channel:   "Tech Channel",
		URL:       "https://youtube.com/watch?v=example1",
		Thumbnail: "https://i.ytimg.com/vi/example1/mqdefault.jpg",
		Stats:     &types.VideoStats{Views: 50000, Likes: 2500, Comments: 300},
		Published: time.Date(2026, 2, 8, 12, 0, 0, 0, time.UTC),
	}}
	articles := []types.Item{{
		Title:     "Cursor AI Raises $100M in Series B",
		Source:    "TechCrunch",
		Summary:   "Big round for the AI editor.",
		URL:       "https://techcrunch.com/example",
		AlsoOn:    []string{"The Verge"},
		Published: time.Date(2026, 2, 10, 6, 0, 0, 0, time.UTC),
	}}

	p := r.BuildTrendsReport(videos, articles, []string{"Cursor AI", "Claude Code"})

	if p.Blocks[0].Type != "header" || p.Blocks[0].Text.Text != "AI Trends Report - Tuesday, February 10, 2026" {
		t.Errorf("header = %+v", p.Blocks[0])
	}

	text := allText(p)
	for _, want := range []string{
		"*:tv: TRENDING YOUTUBE VIDEOS (Last 24 Hours)*",
		"Views: 50,000 | Published: 2 days ago",
		"<https://youtube.com/watch?v=example1|Watch on YouTube>",
		"*:newspaper: TRENDING ARTICLES (Last 24 Hours)*",
		"_Big round for the AI editor._",
		"Also on: The Verge",
		"Published: 6 hours ago",
		"<https://techcrunch.com/example|Read Article>",
		"Report generated at 12:00 PM | Search terms: Cursor AI, Claude Code",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report is missing %q", want)
		}
	}

	var thumb *Image
	for _, b := range p.Blocks {
		if b.Accessory != nil {
			thumb = b.Accessory
		}
	}
	if thumb == nil || thumb.ImageURL != "https://i.ytimg.com/vi/example1/mqdefault.jpg" {
		t.Errorf("thumbnail accessory = %+v", thumb)
	}
	if thumb != nil && thumb.AltText != "Cursor AI: The Future of Coding" {
		t.Errorf("alt text = %q", thumb.AltText)
	}
}

func TestBuildTrendsReport_EmptyStates(t *testing.T) {
	r := testReporter(t, "https://hooks.example.com/x")
	text := allText(r.BuildTrendsReport(nil, nil, []string{"Cursor AI"}))
	if !strings.Contains(text, "_No new trending videos found in the last 24 hours._") {
		t.Error("missing the empty video state")
	}
	if !strings.Contains(text, "_No new trending articles found in the last 24 hours._") {
		t.Error("missing the empty article state")
	}
}

func TestBuildPolicyReport(t *testing.T) {
	r := testReporter(t, "https://hooks.example.com/x")

	official := []types.Item{{
		Title:     "Updates to Partner Program monetization policies",
		Source:    "YouTube Blog",
		URL:       "https://blog.youtube/example",
		Summary:   "New guidelines for AI-generated content monetization.",
		Category:  "MONETIZATION",
		Published: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
	}}
	community := []types.Item{{
		Title:     "Channel demonetized without warning - anyone else?",
		Source:    "r/PartneredYouTube",
		Author:    "creator123",
		Category:  "MONETIZATION",
		Published: time.Date(2026, 2, 10, 6, 0, 0, 0, time.UTC),
	}}
	experts := []types.Item{{
		Title:     "New policy explained",
		Source:    "Creator Insider",
		Thumbnail: "https://i.ytimg.com/vi/example/mqdefault.jpg",
		Category:  "CONTENT_GUIDELINES",
		Published: time.Date(2026, 2, 10, 4, 0, 0, 0, time.UTC),
	}}

	p := r.BuildPolicyReport(official, community, nil, experts, "Manual checks: Policy Updates page")

	if p.Blocks[0].Text.Text != ":shield: YouTube Policy Intelligence - Tuesday, February 10, 2026" {
		t.Errorf("header = %q", p.Blocks[0].Text.Text)
	}

	text := allText(p)
	for _, want := range []string{
		":red_circle: Tier 1: Official Updates",
		":moneybag: [MONETIZATION]",
		":large_orange_circle: Tier 2: Community Signals",
		":bust_in_silhouette: u/creator123",
		":large_purple_circle: Tier 4: Expert Commentary",
		":globe_with_meridians: YouTube Blog",
		":clock1: 12h ago",
		"Manual checks: Policy Updates page",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("report is missing %q", want)
		}
	}
	if strings.Contains(text, "Tier 3") {
		t.Error("empty legal tier should be skipped")
	}

	var thumbs int
	for _, b := range p.Blocks {
		if b.Accessory != nil {
			thumbs++
		}
	}
	if thumbs != 1 {
		t.Errorf("got %d thumbnails, want 1 (expert tier only)", thumbs)
	}
}

func TestBuildPolicyReport_AllQuiet(t *testing.T) {
	r := testReporter(t, "https://hooks.example.com/x")
	text := allText(r.BuildPolicyReport(nil, nil, nil, nil, "Manual checks: Policy Updates page"))
	if !strings.Contains(text, ":white_check_mark: *No policy updates detected in the last 24 hours.*") {
		t.Error("missing the all-clear line")
	}
	if strings.Contains(text, "Tier 1") {
		t.Error("tier sections should not appear on a quiet day")
	}
}

func TestSend(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	r := testReporter(t, srv.URL)
	if err := r.SendTest("AI Trends Reporter"); err != nil {
		t.Fatal(err)
	}

	var p Payload
	if err := json.Unmarshal(gotBody, &p); err != nil {
		t.Fatal(err)
	}
	if len(p.Blocks) != 1 || !strings.Contains(p.Blocks[0].Text.Text, "AI Trends Reporter - Test Message") {
		t.Errorf("payload = %s", gotBody)
	}
}

func TestSend_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid_payload", http.StatusBadRequest)
	}))
	defer srv.Close()

	r := testReporter(t, srv.URL)
	err := r.Send(Payload{Blocks: []Block{dividerBlock()}})
	if err == nil || !strings.Contains(err.Error(), "400") {
		t.Fatalf("err = %v", err)
	}
}
