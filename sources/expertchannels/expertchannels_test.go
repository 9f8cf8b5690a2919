package expertchannels

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func fixedNow() time.Time {
	return time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
}

func channelDoc(entries string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns:media="http://search.yahoo.com/mrss/" xmlns="http://www.w3.org/2005/Atom">
  <title>Channel uploads</title>
%s
</feed>`, entries)
}

const freshEntries = `  <entry>
    <title>This Week At YouTube: Monetization Tweaks</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=abc123XYZ_-&amp;feature=share"/>
    <author><name>Creator Insider Team</name></author>
    <published>2026-02-10T08:00:00+00:00</published>
    <media:group>
      <media:description>New policy rundown for creators.</media:description>
    </media:group>
  </entry>
  <entry>
    <title>Shorts update</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=midvid0001"/>
    <published>2026-02-10T06:00:00+00:00</published>
  </entry>
  <entry>
    <title>Old upload</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=stale000001"/>
    <author><name>Creator Insider Team</name></author>
    <published>2026-02-05T10:00:00+00:00</published>
  </entry>`

func feedServer(t *testing.T, docs map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "YouTube-Policy-Monitor/1.0" {
			t.Errorf("User-Agent = %q", got)
		}
		doc, ok := docs[r.URL.Query().Get("channel_id")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, doc)
	}))
}

func TestParse(t *testing.T) {
	channels := Parse("UCabc, Hoeg Law = UCdef ,, =nope")
	if len(channels) != 2 {
		t.Fatalf("parsed %d channels, want 2", len(channels))
	}
	if channels[0].Name != "UCabc" || channels[0].ID != "UCabc" {
		t.Errorf("bare id parsed as %+v", channels[0])
	}
	if channels[1].Name != "Hoeg Law" || channels[1].ID != "UCdef" {
		t.Errorf("named channel parsed as %+v", channels[1])
	}
}

func TestVideos(t *testing.T) {
	srv := feedServer(t, map[string]string{"UC1": channelDoc(freshEntries)})
	defer srv.Close()

	f := New(Options{
		Channels: []Channel{{Name: "Creator Insider", ID: "UC1"}},
		BaseURL:  srv.URL + "/feeds/videos.xml?channel_id=",
		Now:      fixedNow,
	})

	items, err := f.Videos(Channel{Name: "Creator Insider", ID: "UC1"})
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2 (stale upload filtered)", len(items))
	}

	first := items[0]
	if first.ID != "abc123XYZ_-" {
		t.Errorf("video id = %q", first.ID)
	}
	if first.Thumbnail != "https://i.ytimg.com/vi/abc123XYZ_-/mqdefault.jpg" {
		t.Errorf("thumbnail = %q", first.Thumbnail)
	}
	if first.Summary != "New policy rundown for creators." {
		t.Errorf("summary = %q", first.Summary)
	}
	if first.Channel != "Creator Insider Team" {
		t.Errorf("channel = %q, want the entry author", first.Channel)
	}
	if first.Source != "Creator Insider" {
		t.Errorf("source = %q", first.Source)
	}
	if first.Tier != 4 || first.Type != "expert_video" {
		t.Errorf("tier/type = %d/%s", first.Tier, first.Type)
	}

	second := items[1]
	if second.ID != "midvid0001" {
		t.Errorf("video id = %q", second.ID)
	}
	if second.Channel != "Creator Insider" {
		t.Errorf("channel = %q, want the channel name fallback", second.Channel)
	}
}

func TestFetch_NewestFirstAndCap(t *testing.T) {
	laterEntry := `  <entry>
    <title>Breaking policy news</title>
    <link rel="alternate" href="https://www.youtube.com/watch?v=newest00001"/>
    <author><name>Hoeg Law</name></author>
    <published>2026-02-10T09:00:00+00:00</published>
  </entry>`

	srv := feedServer(t, map[string]string{
		"UC1": channelDoc(freshEntries),
		"UC2": channelDoc(laterEntry),
	})
	defer srv.Close()

	f := New(Options{
		Channels: []Channel{
			{Name: "Creator Insider", ID: "UC1"},
			{Name: "Hoeg Law", ID: "UC2"},
			{Name: "Gone", ID: "UC404"},
		},
		TopN:    2,
		BaseURL: srv.URL + "/feeds/videos.xml?channel_id=",
		Now:     fixedNow,
	})

	items, err := f.Fetch()
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ID != "newest00001" || items[1].ID != "abc123XYZ_-" {
		t.Errorf("order = %q, %q", items[0].ID, items[1].ID)
	}
}

func TestVideoID(t *testing.T) {
	cases := []struct {
		link string
		want string
	}{
		{"https://www.youtube.com/watch?v=abc&t=30s", "abc"},
		{"https://www.youtube.com/watch?v=abc", "abc"},
		{"https://www.youtube.com/shorts/xyz", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := videoID(c.link); got != c.want {
			t.Errorf("videoID(%q) = %q, want %q", c.link, got, c.want)
		}
	}
}
