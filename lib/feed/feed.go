// Package feed parses RSS 2.0 and Atom documents into one entry shape.
// Fields that a given feed does not carry stay empty; accessors resolve
// the usual fallbacks so callers never probe raw XML.
package feed

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// Entry is one feed item. Every field is optional except that useful
// entries normally carry a Title and a Link.
type Entry struct {
	Title            string
	Link             string
	Summary          string
	Description      string
	Content          string
	Author           string
	Published        string
	Updated          string
	MediaDescription string
}

type Feed struct {
	Entries []Entry
}

type rss struct {
	XMLName xml.Name `xml:"rss"`
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Encoded     string `xml:"encoded"`
	PubDate     string `xml:"pubDate"`
	Creator     string `xml:"creator"`
	Author      string `xml:"author"`
}

type atom struct {
	XMLName xml.Name    `xml:"feed"`
	Entries []atomEntry `xml:"entry"`
}

type atomEntry struct {
	Title     string     `xml:"title"`
	Links     []atomLink `xml:"link"`
	Summary   string     `xml:"summary"`
	Content   string     `xml:"content"`
	Published string     `xml:"published"`
	Updated   string     `xml:"updated"`
	Author    struct {
		Name string `xml:"name"`
	} `xml:"author"`
	Media struct {
		Description string `xml:"description"`
	} `xml:"group"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
}

// Parse reads an RSS 2.0 or Atom document.
func Parse(data []byte) (*Feed, error) {
	var r rss
	if err := xml.Unmarshal(data, &r); err == nil {
		f := &Feed{}
		for _, it := range r.Channel.Items {
			author := it.Creator
			if author == "" {
				author = it.Author
			}
			f.Entries = append(f.Entries, Entry{
				Title:       it.Title,
				Link:        it.Link,
				Description: it.Description,
				Content:     it.Encoded,
				Author:      author,
				Published:   it.PubDate,
			})
		}
		return f, nil
	}

	var a atom
	if err := xml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("document is neither rss nor atom: %w", err)
	}
	f := &Feed{}
	for _, e := range a.Entries {
		f.Entries = append(f.Entries, Entry{
			Title:            e.Title,
			Link:             pickLink(e.Links),
			Summary:          e.Summary,
			Content:          e.Content,
			Author:           e.Author.Name,
			Published:        e.Published,
			Updated:          e.Updated,
			MediaDescription: e.Media.Description,
		})
	}
	return f, nil
}

// pickLink prefers the alternate link, then any href.
func pickLink(links []atomLink) string {
	for _, l := range links {
		if l.Rel == "alternate" || l.Rel == "" {
			if l.Href != "" {
				return l.Href
			}
		}
	}
	for _, l := range links {
		if l.Href != "" {
			return l.Href
		}
	}
	return ""
}

// The date shapes seen across Google News, Reddit, YouTube, GitHub and the
// various blog feeds.
var dateFormats = []string{
	time.RFC1123,  // Mon, 02 Jan 2006 15:04:05 MST
	time.RFC1123Z, // Mon, 02 Jan 2006 15:04:05 -0700
	time.RFC3339,  // 2006-01-02T15:04:05Z07:00
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate tries every known feed date format. Failure reports ok=false,
// never an error; callers treat such items as having no publish time.
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

// PublishedTime resolves the entry timestamp, preferring published over
// updated.
func (e Entry) PublishedTime() (time.Time, bool) {
	if t, ok := ParseDate(e.Published); ok {
		return t, true
	}
	return ParseDate(e.Updated)
}

// BestSummary returns the first usable description text.
func (e Entry) BestSummary() string {
	for _, s := range []string{e.Summary, e.Description, e.MediaDescription, e.Content} {
		if strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}
