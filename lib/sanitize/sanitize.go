// Package sanitize normalizes fetched text before display: HTML and URL
// stripping, markdown flattening for release notes, length caps.
package sanitize

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	spaceRe      = regexp.MustCompile(`\s+`)
	urlRe        = regexp.MustCompile(`https?://\S+`)
	mdHeaderRe   = regexp.MustCompile(`(?m)^#+\s*`)
	mdLinkRe     = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	mdBoldRe     = regexp.MustCompile(`\*{1,2}(.+?)\*{1,2}`)
	mdItalicRe   = regexp.MustCompile(`_{1,2}(.+?)_{1,2}`)
	mdCodeFence  = regexp.MustCompile("```[^`]*```")
	mdInlineCode = regexp.MustCompile("`([^`]+)`")
	mdBulletRe   = regexp.MustCompile(`(?m)^\s*[-*+]\s*`)
)

// CleanHTML strips tags, decodes entities and collapses whitespace.
// Script and style bodies are dropped entirely.
func CleanHTML(text string) string {
	if text == "" {
		return ""
	}
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(text))
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			break
		}
		switch tt {
		case html.StartTagToken:
			token := z.Token()
			if token.Data == "script" || token.Data == "style" {
				skipBlock(z, token.Data)
			}
		case html.TextToken:
			b.WriteString(z.Token().Data)
			b.WriteByte(' ')
		}
	}
	return strings.TrimSpace(spaceRe.ReplaceAllString(b.String(), " "))
}

// skipBlock consumes tokens until the matching close tag, minding nesting.
func skipBlock(z *html.Tokenizer, tagName string) {
	depth := 1
	for depth > 0 {
		switch z.Next() {
		case html.ErrorToken:
			return
		case html.StartTagToken:
			if z.Token().Data == tagName {
				depth++
			}
		case html.EndTagToken:
			if z.Token().Data == tagName {
				depth--
			}
		}
	}
}

// StripURLs removes bare links from free text.
func StripURLs(text string) string {
	if text == "" {
		return ""
	}
	text = urlRe.ReplaceAllString(text, "")
	return strings.TrimSpace(spaceRe.ReplaceAllString(text, " "))
}

// Truncate caps text at max characters, ellipsis included.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return strings.TrimRight(string(runes[:max-3]), " \t\n") + "..."
}

// Title cleans a fetched title down to displayable text.
func Title(text string) string {
	return Truncate(StripURLs(CleanHTML(text)), 200)
}

// Description cleans summary text to at most max characters.
func Description(text string, max int) string {
	return Truncate(StripURLs(CleanHTML(text)), max)
}

// ReleaseNotes flattens markdown release bodies to plain text: headers,
// links, emphasis, code and bullets go, then the usual HTML/URL cleanup.
func ReleaseNotes(text string) string {
	if text == "" {
		return ""
	}
	text = mdHeaderRe.ReplaceAllString(text, "")
	text = mdLinkRe.ReplaceAllString(text, "$1")
	text = mdBoldRe.ReplaceAllString(text, "$1")
	text = mdItalicRe.ReplaceAllString(text, "$1")
	text = mdCodeFence.ReplaceAllString(text, "")
	text = mdInlineCode.ReplaceAllString(text, "$1")
	text = mdBulletRe.ReplaceAllString(text, "")
	text = StripURLs(CleanHTML(text))
	return Truncate(text, 1000)
}
