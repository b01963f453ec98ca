// Package insights turns a child's recent records into a caregiver-facing
// markdown summary using the Gemini API. Responses are cached by prompt so
// repeating the same question within the TTL does not burn quota.
package insights

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"google.golang.org/genai"

	"github.com/nestlog/nestlog/pkg/events"
	"github.com/nestlog/nestlog/pkg/timeline"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash-lite"

// ErrNoAPIKey is returned by Summarize when the client has no key.
var ErrNoAPIKey = errors.New("no Gemini API key configured")

// Cache stores raw API responses keyed by model and prompt.
type Cache interface {
	Response(key string) (string, bool)
	SetResponse(key, response string)
}

// Request is one insights question: a child, a window, the categories
// the caregiver selected, and the records already narrowed to the window.
type Request struct {
	Child      events.Child
	RangeDays  int
	Categories []events.Category

	Sleep     []events.Sleep
	Feed      []events.Feed
	Diaper    []events.Diaper
	Activity  []events.Activity
	Milestone []events.Milestone
	Weight    []events.Weight
}

// NewRequest narrows each selected category's records to the last
// rangeDays using the same window rules the charts use, so the model
// reasons over exactly the data the caregiver is looking at.
func NewRequest(child events.Child, rangeDays int, categories []events.Category,
	sleep []events.Sleep, feed []events.Feed, diaper []events.Diaper,
	activity []events.Activity, milestone []events.Milestone, weight []events.Weight,
) Request {
	req := Request{Child: child, RangeDays: rangeDays, Categories: categories}
	for _, cat := range categories {
		switch cat {
		case events.CategorySleep:
			req.Sleep = timeline.FilterSleep(sleep, rangeDays)
		case events.CategoryFeed:
			req.Feed = timeline.FilterFeeds(feed, rangeDays)
		case events.CategoryDiaper:
			req.Diaper = timeline.FilterDiapers(diaper, rangeDays)
		case events.CategoryActivity:
			req.Activity = timeline.FilterActivities(activity, rangeDays)
		case events.CategoryMilestone:
			req.Milestone = timeline.FilterMilestones(milestone, rangeDays)
		case events.CategoryWeight:
			req.Weight = timeline.FilterWeights(weight, rangeDays)
		}
	}
	return req
}

// Client calls the Gemini API.
type Client struct {
	apiKey string
	model  string
	logger *slog.Logger
	cache  Cache
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the default model name.
func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithCache attaches a response cache.
func WithCache(cache Cache) Option {
	return func(c *Client) { c.cache = cache }
}

// NewClient creates an insights client.
func NewClient(apiKey string, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{apiKey: apiKey, model: DefaultModel, logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Summarize asks the model for a markdown summary of the request's data.
func (c *Client) Summarize(ctx context.Context, req Request) (string, error) {
	return c.summarizeAt(ctx, req, time.Now())
}

func (c *Client) summarizeAt(ctx context.Context, req Request, now time.Time) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoAPIKey
	}
	if len(req.Categories) == 0 {
		return "", errors.New("no categories selected")
	}

	prompt, err := userPrompt(req, now)
	if err != nil {
		return "", err
	}

	cacheKey := fmt.Sprintf("genai:%s:%s", c.model, prompt)
	if c.cache != nil {
		if cached, ok := c.cache.Response(cacheKey); ok {
			c.logger.Debug("insights cache hit", "child", req.Child.ID)
			return cached, nil
		}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend: genai.BackendGeminiAPI,
		APIKey:  c.apiKey,
	})
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	contents := []*genai.Content{
		{Role: "user", Parts: []*genai.Part{{Text: prompt}}},
	}
	temperature := float32(0.3)
	config := &genai.GenerateContentConfig{
		Temperature:       &temperature,
		MaxOutputTokens:   4000,
		SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: systemPrompt}}},
	}

	var resp *genai.GenerateContentResponse
	err = retry.Do(
		func() error {
			var callErr error
			resp, callErr = client.Models.GenerateContent(ctx, c.model, contents, config)
			return callErr
		},
		retry.Context(ctx),
		retry.Attempts(4),
		retry.Delay(time.Second),
		retry.MaxDelay(time.Minute),
		retry.DelayType(retry.FullJitterBackoffDelay),
		retry.RetryIf(isTransient),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Debug("retrying Gemini call", "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return "", fmt.Errorf("gemini call: %w", err)
	}

	text, err := extractText(resp)
	if err != nil {
		return "", err
	}
	text = StripThink(text)

	if c.cache != nil {
		c.cache.SetResponse(cacheKey, text)
	}
	c.logger.Debug("insights generated", "child", req.Child.ID, "chars", len(text))
	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errors.New("empty response from Gemini API")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", errors.New("no content in Gemini response")
	}
	text := strings.TrimSpace(candidate.Content.Parts[0].Text)
	if text == "" {
		return "", errors.New("empty text in Gemini response")
	}
	return text, nil
}

func isTransient(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, indicator := range []string{
		"rate limit", "quota", "timeout", "deadline", "unavailable",
		"internal server error", "502", "503", "504",
	} {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}

var thinkBlock = regexp.MustCompile(`(?s)<think>.*?</think>`)

// StripThink removes chain-of-thought blocks some models prepend to
// their answer.
func StripThink(s string) string {
	return strings.TrimSpace(thinkBlock.ReplaceAllString(s, ""))
}
