// Package openai adapts the external chat-completion service for vibe
// translation. Requests are constrained to JSON-object responses and every
// payload is validated at the boundary before it reaches the core.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ewilliams-labs/vibecraft/internal/core/domain"
	"github.com/ewilliams-labs/vibecraft/internal/core/ports"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-3.5-turbo"
	requestTimeout = 30 * time.Second
	temperature    = 0.2
)

var yearRangePattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

// Client talks to an OpenAI-compatible chat-completions endpoint.
type Client struct {
	http  *resty.Client
	model string
}

var (
	_ ports.SpecTranslator  = (*Client)(nil)
	_ ports.StrategyPlanner = (*Client)(nil)
)

// NewClient constructs a Client. baseURL may be empty to use the public API.
func NewClient(apiKey, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetAuthToken(apiKey).
		SetTimeout(requestTimeout).
		SetHeader("Content-Type", "application/json")
	return &Client{http: httpClient, model: defaultModel}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// TranslateSpec performs one full translation round trip: completion call,
// JSON parse, and schema validation.
func (c *Client) TranslateSpec(ctx context.Context, vibe string, hints map[string]any) (domain.PlaylistSpec, error) {
	content, err := c.complete(ctx, []chatMessage{
		{Role: "system", Content: specSystemPrompt},
		{Role: "user", Content: specUserPrompt(vibe, hints)},
	})
	if err != nil {
		return domain.PlaylistSpec{}, err
	}

	spec, err := domain.ParseSpec([]byte(content))
	if err != nil {
		return domain.PlaylistSpec{}, fmt.Errorf("openai: invalid spec payload: %w", err)
	}
	return spec, nil
}

// strategyPayload mirrors domain.SearchStrategy with pointer fields so that
// missing required members are detectable.
type strategyPayload struct {
	SearchKeywords *[]string `json:"searchKeywords"`
	GenrePriority  *[]string `json:"genrePriority"`
	YearRange      string    `json:"yearRange"`
	Rationale      string    `json:"rationale"`
}

// PlanStrategy performs a single planning round trip. Any error here is
// recoverable: the caller substitutes domain.FallbackStrategy.
func (c *Client) PlanStrategy(ctx context.Context, vibe string, spec domain.PlaylistSpec) (domain.SearchStrategy, error) {
	content, err := c.complete(ctx, []chatMessage{
		{Role: "system", Content: strategySystemPrompt},
		{Role: "user", Content: strategyUserPrompt(vibe, spec)},
	})
	if err != nil {
		return domain.SearchStrategy{}, err
	}

	var payload strategyPayload
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return domain.SearchStrategy{}, fmt.Errorf("openai: decode strategy: %w", err)
	}
	if payload.SearchKeywords == nil || payload.GenrePriority == nil {
		return domain.SearchStrategy{}, fmt.Errorf("openai: strategy payload missing required fields")
	}

	strategy := domain.SearchStrategy{
		SearchKeywords: *payload.SearchKeywords,
		GenrePriority:  *payload.GenrePriority,
		Rationale:      payload.Rationale,
	}
	if yearRangePattern.MatchString(payload.YearRange) {
		strategy.YearRange = payload.YearRange
	}
	return strategy, nil
}

func (c *Client) complete(ctx context.Context, messages []chatMessage) (string, error) {
	payload := chatRequest{
		Model:          c.model,
		Messages:       messages,
		Temperature:    temperature,
		ResponseFormat: responseFormat{Type: "json_object"},
	}

	var parsed chatResponse
	var errBody apiError
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&parsed).
		SetError(&errBody).
		Post("/chat/completions")
	if err != nil {
		return "", fmt.Errorf("openai: request failed: %w", err)
	}
	if resp.IsError() {
		if errBody.Error.Message != "" {
			return "", fmt.Errorf("openai: %s", errBody.Error.Message)
		}
		return "", fmt.Errorf("openai: unexpected status %d", resp.StatusCode())
	}

	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("openai: empty completion")
	}
	return parsed.Choices[0].Message.Content, nil
}
