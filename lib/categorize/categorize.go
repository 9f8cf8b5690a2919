// Package categorize assigns category labels from ordered keyword rules.
// Two rule tables share one matcher: the general content taxonomy and the
// policy taxonomy. Tables are plain data handed to the constructor, so
// tests can swap them.
package categorize

import (
	"regexp"
	"strings"

	"github.com/tlandry-heckleandcode/ai-news/lib/types"
)

// Category is one rule table entry. Lower Priority wins when several
// categories match. An entry with no patterns is the fallback.
type Category struct {
	Name     string
	Patterns []string
	Priority int
	Emoji    string
}

// ContentCategories is the general content-type taxonomy.
var ContentCategories = []Category{
	{
		Name: "RELEASE",
		Patterns: []string{
			`\brelease\b`, `\bv\d+\.`, `\bversion\s*\d`, `\bchangelog\b`,
			`\bupdate\b`, `\blaunched?\b`, `\bannounce`, `\bnew\s+feature`,
			`\bwhat'?s\s+new\b`, `\bintroduc`,
		},
		Priority: 1,
		Emoji:    ":rocket:",
	},
	{
		Name: "TUTORIAL",
		Patterns: []string{
			`\bhow\s+to\b`, `\bguide\b`, `\btutorial\b`, `\bgetting\s+started\b`,
			`\bwalkthrough\b`, `\bstep[\s-]by[\s-]step\b`, `\blearn\b`,
			`\bbeginners?\b`, `\bintro(duction)?\s+to\b`,
		},
		Priority: 2,
		Emoji:    ":books:",
	},
	{
		Name: "WORKFLOW",
		Patterns: []string{
			`\bworkflow\b`, `\bautomation?\b`, `\bproductivity\b`, `\btips?\b`,
			`\bsetup\b`, `\bconfigur`, `\bintegrat`, `\bpipeline\b`,
			`\bbest\s+practices?\b`, `\boptimiz`,
		},
		Priority: 3,
		Emoji:    ":gear:",
	},
	{
		Name: "COMPARISON",
		Patterns: []string{
			`\bvs\.?\b`, `\bversus\b`, `\bcompare`, `\balternative`,
			`\bbetter\s+than\b`, `\bor\b.*\bwhich\b`,
		},
		Priority: 4,
		Emoji:    ":scales:",
	},
	{
		Name: "DISCUSSION",
		Patterns: []string{
			`\bthoughts?\b`, `\bopinion\b`, `\bdiscuss`, `\bexperience\b`,
			`\breview\b`, `\bimpression`, `\bama\b`, `\bask\s`,
		},
		Priority: 5,
		Emoji:    ":speech_balloon:",
	},
	{
		Name:     "NEWS",
		Priority: 99,
		Emoji:    ":newspaper:",
	},
}

// contentHints map an item's type to a category when no keyword matched.
var contentHints = map[string]string{
	"release":    "RELEASE",
	"discussion": "DISCUSSION",
	"post":       "DISCUSSION",
}

// PolicyCategories is the policy/compliance taxonomy.
var PolicyCategories = []Category{
	{
		Name: "MONETIZATION",
		Patterns: []string{
			`\bdemonetiz`, `\badsense\b`, `\brevenue\b`, `\bcpm\b`,
			`\bypp\b`, `\bpartner\s*program`, `\bmonetiz`, `\bads?\s+policy`,
			`\bad\s+suitab`, `\badvertiser`, `\bearnings?\b`, `\bpayment`,
		},
		Priority: 1,
		Emoji:    ":moneybag:",
	},
	{
		Name: "CONTENT_GUIDELINES",
		Patterns: []string{
			`\bcommunity\s+guidelines?\b`, `\bstrike\b`, `\bremoved?\b`,
			`\bviolat`, `\brestrict`, `\bage[\s-]restrict`, `\bsuspend`,
			`\bterminat`, `\bban(ned)?\b`, `\bappeal\b`, `\bwarning\b`,
		},
		Priority: 2,
		Emoji:    ":shield:",
	},
	{
		Name: "COPYRIGHT",
		Patterns: []string{
			`\bcopyright\b`, `\bdmca\b`, `\bcontent\s*id\b`, `\bclaim\b`,
			`\btakedown\b`, `\bfair\s+use\b`, `\blicens`, `\bmusic\s+policy`,
		},
		Priority: 3,
		Emoji:    ":copyright:",
	},
	{
		Name: "ALGORITHM",
		Patterns: []string{
			`\balgorithm\b`, `\bshadowban`, `\bimpressions?\b`, `\breach\b`,
			`\brecommend`, `\bdiscover`, `\bvisibility\b`, `\bsuppressed?\b`,
			`\bviews?\s+drop`, `\btrending\b`,
		},
		Priority: 4,
		Emoji:    ":bar_chart:",
	},
	{
		Name: "TERMS_OF_SERVICE",
		Patterns: []string{
			`\btos\b`, `\bterms\s+of\s+service\b`, `\bpolicy\s+update`,
			`\bpolicy\s+change`, `\bnew\s+policy`, `\brules?\s+change`,
			`\bguidelines?\s+update`,
		},
		Priority: 5,
		Emoji:    ":scroll:",
	},
	{
		Name: "API_CHANGES",
		Patterns: []string{
			`\bapi\b`, `\bdeveloper\b`, `\bquota\b`, `\bendpoint`,
			`\bdeprecated?\b`, `\brate\s+limit`, `\boauth\b`, `\bsdk\b`,
		},
		Priority: 6,
		Emoji:    ":wrench:",
	},
	{
		Name: "AI_POLICY",
		Patterns: []string{
			`\bai[\s-]generat`, `\bsynthetic\b`, `\bdeepfake\b`,
			`\bartificial\s+intelligen`, `\bmachine\s+learn`, `\bgenerat.*\s+content`,
			`\bdream\s*track`, `\bai\s+disclos`, `\bai\s+label`,
		},
		Priority: 7,
		Emoji:    ":robot_face:",
	},
	{
		Name:     "GENERAL",
		Priority: 99,
		Emoji:    ":mega:",
	},
}

type rule struct {
	name     string
	priority int
	emoji    string
	patterns []*regexp.Regexp
}

// Matcher evaluates one rule table. summaryMax > 0 appends that many
// characters of the summary to the matched text.
type Matcher struct {
	rules      []rule
	hints      map[string]string
	fallback   rule
	summaryMax int
}

// NewMatcher compiles a rule table. The entry without patterns becomes the
// fallback; hints may be nil.
func NewMatcher(categories []Category, hints map[string]string, summaryMax int) *Matcher {
	m := &Matcher{hints: hints, summaryMax: summaryMax}
	for _, c := range categories {
		r := rule{name: c.Name, priority: c.Priority, emoji: c.Emoji}
		for _, p := range c.Patterns {
			r.patterns = append(r.patterns, regexp.MustCompile(`(?i)`+p))
		}
		if len(r.patterns) == 0 {
			m.fallback = r
			continue
		}
		m.rules = append(m.rules, r)
	}
	return m
}

// ContentMatcher builds the general taxonomy matcher (title only, type
// hints active).
func ContentMatcher() *Matcher {
	return NewMatcher(ContentCategories, contentHints, 0)
}

// PolicyMatcher builds the policy taxonomy matcher (title plus the first
// 500 characters of the summary, no hints).
func PolicyMatcher() *Matcher {
	return NewMatcher(PolicyCategories, nil, 500)
}

// Categorize returns the category for a title. The summary joins the
// matched text only when the matcher was built with a summary window; the
// hint is consulted only when no pattern matched. Never returns "".
func (m *Matcher) Categorize(title, summary string, hint types.ItemType) string {
	if title == "" {
		return m.fallback.name
	}

	text := strings.ToLower(title)
	if m.summaryMax > 0 && summary != "" {
		lower := []rune(strings.ToLower(summary))
		if len(lower) > m.summaryMax {
			lower = lower[:m.summaryMax]
		}
		text += " " + string(lower)
	}

	best := ""
	bestPriority := 0
	for _, r := range m.rules {
		for _, p := range r.patterns {
			if p.MatchString(text) {
				if best == "" || r.priority < bestPriority {
					best = r.name
					bestPriority = r.priority
				}
				break
			}
		}
	}
	if best != "" {
		return best
	}

	if hint != "" && m.hints != nil {
		if cat, ok := m.hints[strings.ToLower(string(hint))]; ok {
			return cat
		}
	}
	return m.fallback.name
}

// CategorizeItems sets Category on every item in place.
func (m *Matcher) CategorizeItems(items []types.Item) {
	for i := range items {
		items[i].Category = m.Categorize(items[i].Title, items[i].Summary, items[i].Type)
	}
}

// Emoji returns the display glyph for a category name, the fallback glyph
// when unknown.
func (m *Matcher) Emoji(category string) string {
	for _, r := range m.rules {
		if r.name == category {
			return r.emoji
		}
	}
	return m.fallback.emoji
}
