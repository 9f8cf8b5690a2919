package llm

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/tlandry-heckleandcode/ai-news/lib/types"
)

// https://openai.com/api/pricing/
var GPT4_o_mini string = "gpt-4o-mini"

// readerPersona describes who the digest is for. Sent verbatim with every
// relevance request.
const readerPersona = `You are filtering content for a senior software developer who:
- Uses AI coding tools like Cursor, Claude Code, and GitHub Copilot
- Wants to stay current on updates, new features, and releases
- Is interested in workflows, automations, and productivity tips
- Prefers technical content over marketing or beginner tutorials
- Cares about AI agent capabilities and local LLM developments`

// noneSentinel is the reply meaning "nothing qualifies". Distinct from an
// unparseable reply, which falls back to keeping everything.
const noneSentinel = "NONE"

// Options control one relevance pass.
type Options struct {
	Enabled  bool
	APIKey   string
	BaseURL  string // optional endpoint override (proxies, tests)
	Model    string
	MinScore int
	Timeout  time.Duration
}

func (o Options) withDefaults() Options {
	if o.Model == "" {
		o.Model = GPT4_o_mini
	}
	if o.MinScore == 0 {
		o.MinScore = 7
	}
	if o.Timeout == 0 {
		o.Timeout = 10 * time.Second
	}
	return o
}

// FilterByRelevance asks the model which titles matter to the reader and
// keeps those, in their original input order. Disabled filter, missing
// key, transport errors and unparseable replies all return the input
// unchanged; only an explicit NONE reply produces an empty result. One
// call, no retries.
func FilterByRelevance(items []types.Item, contentType string, opts Options) []types.Item {
	if !opts.Enabled {
		log.Printf("LLM filtering disabled, keeping all %d items", len(items))
		return items
	}
	if len(items) == 0 {
		return items
	}
	opts = opts.withDefaults()
	if opts.APIKey == "" {
		log.Printf("No OpenAI API key set, skipping relevance filtering")
		return items
	}

	reply, err := fetchAnswer(openAIRequest{
		prompt: buildPrompt(items, contentType, opts.MinScore),
		opts:   opts,
	})
	if err != nil {
		log.Printf("Relevance call failed, keeping all %d items: %v", len(items), err)
		return items
	}

	keep, none := parseReply(reply, len(items))
	if none {
		log.Printf("Model scored no %s at %d or higher", contentType, opts.MinScore)
		return []types.Item{}
	}
	if len(keep) == 0 {
		log.Printf("Could not parse relevance reply %q, keeping all %d items", reply, len(items))
		return items
	}

	out := make([]types.Item, 0, len(keep))
	for i, it := range items {
		if keep[i] {
			out = append(out, it)
		}
	}
	log.Printf("Relevance filter kept %d of %d %s", len(out), len(items), contentType)
	return out
}

type openAIRequest struct {
	prompt string
	opts   Options
}

func fetchAnswer(req openAIRequest) (string, error) {
	cfg := openai.DefaultConfig(req.opts.APIKey)
	if req.opts.BaseURL != "" {
		cfg.BaseURL = req.opts.BaseURL
	}
	client := openai.NewClientWithConfig(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), req.opts.Timeout)
	defer cancel()

	resp, err := client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: req.opts.Model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: req.prompt,
				},
			},
			MaxTokens: 100,
		},
	)
	if err != nil {
		log.Printf("ChatCompletion error: %v\n", err)
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("completion came back with no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// buildPrompt numbers the titles 1-based and asks for a comma-separated
// index list back.
func buildPrompt(items []types.Item, contentType string, minScore int) string {
	var titles strings.Builder
	for i, it := range items {
		title := it.Title
		if title == "" {
			title = "Untitled"
		}
		fmt.Fprintf(&titles, "%d. %s\n", i+1, title)
	}

	return fmt.Sprintf(`%s

Score each of these %s from 1-10 for relevance to this developer:

%s
Return ONLY the numbers of items scoring %d or higher, as a comma-separated list.
If none score high enough, return %q.
Example response: 1,3,5,8`, readerPersona, contentType, titles.String(), minScore, noneSentinel)
}

// parseReply maps a comma-separated 1-based reply onto input positions.
// none is true only for the explicit sentinel. An unparseable reply
// yields an empty set; the caller treats that as "keep everything".
func parseReply(reply string, n int) (keep map[int]bool, none bool) {
	trimmed := strings.TrimSpace(reply)
	if strings.EqualFold(trimmed, noneSentinel) {
		return nil, true
	}

	keep = make(map[int]bool)
	cleaned := strings.ReplaceAll(trimmed, " ", "")
	for _, part := range strings.Split(cleaned, ",") {
		v, err := strconv.Atoi(part)
		if err != nil {
			continue
		}
		if idx := v - 1; idx >= 0 && idx < n {
			keep[idx] = true
		}
	}
	return keep, false
}
