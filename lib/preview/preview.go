package preview

import (
	"bytes"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/tlandry-heckleandcode/ai-news/lib/web"
)

// Options for preview fetches.
type Options struct {
	UserAgent string
	Timeout   time.Duration
}

// FetchImage returns the og:image URL of an article page, or "" when
// there is none. Failures stay silent: preview images are optional.
// Google News links are skipped outright, they bounce through JavaScript
// and their og:image belongs to Google rather than the article.
func FetchImage(article_url string, opts Options) string {
	if article_url == "" || strings.Contains(article_url, "news.google.com") {
		return ""
	}

	resolved_url := web.ResolveURL(article_url, opts.UserAgent, opts.Timeout)
	if strings.Contains(resolved_url, "news.google.com") {
		return ""
	}

	body, err := web.Get(resolved_url, web.Options{UserAgent: opts.UserAgent, Timeout: opts.Timeout})
	if err != nil {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return ogImage(doc)
}

// ogImage scans meta tags for property="og:image", attribute order and
// case both vary in the wild.
func ogImage(doc *goquery.Document) string {
	image_url := ""
	doc.Find("meta").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		prop, _ := s.Attr("property")
		if !strings.EqualFold(prop, "og:image") {
			return true
		}
		if content, ok := s.Attr("content"); ok && content != "" {
			image_url = content
			return false
		}
		return true
	})
	return image_url
}

// ExtractTitle fetches a page and returns its <title> text, "" on any
// failure.
func ExtractTitle(page_url string, opts Options) string {
	body, err := web.Get(page_url, web.Options{UserAgent: opts.UserAgent, Timeout: opts.Timeout})
	if err != nil {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").Text())
}
