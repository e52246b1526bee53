package gemini

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/white/lead-management/internal/models"
	"go.uber.org/zap"
)

// FallbackSuggestion is returned as the only element whenever the external
// service fails. Callers always get at least one renderable line.
const FallbackSuggestion = "Unable to generate suggestions right now. Please try again."

// generateContent request/response wire types, first candidate / first part
// is the only content consumed.

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Role  string `json:"role"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Client calls the Generative Language API for follow-up suggestions.
type Client struct {
	httpClient *resty.Client
	apiKey     string
	model      string
	logger     *zap.Logger
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

// NewClient creates a Gemini client.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if cfg.Model == "" {
		cfg.Model = "gemini-2.0-flash"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{
		httpClient: client,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		logger:     logger,
	}
}

// Suggest produces up to a handful of short follow-up suggestions for the
// lead. The service is asked for exactly three single-line bullet points, but
// the count is advisory: callers must not assume three come back. Suggest
// never returns an error; every failure degrades to a one-element fallback.
func (c *Client) Suggest(ctx context.Context, lead *models.Lead) []string {
	prompt := BuildPrompt(lead)

	request := generateRequest{
		Contents: []content{
			{Role: "user", Parts: []part{{Text: prompt}}},
		},
	}

	var response generateResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("key", c.apiKey).
		SetBody(request).
		SetResult(&response).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", c.model))

	if err != nil {
		c.logger.Error("Gemini API call failed",
			zap.String("lead_id", lead.ID.Hex()),
			zap.Error(err),
		)
		return []string{FallbackSuggestion}
	}
	if resp.IsError() {
		c.logger.Error("Gemini API returned an error status",
			zap.String("lead_id", lead.ID.Hex()),
			zap.Int("status", resp.StatusCode()),
		)
		return []string{FallbackSuggestion}
	}

	text := candidateText(response)
	if text == "" {
		c.logger.Warn("Gemini response carried no candidate text",
			zap.String("lead_id", lead.ID.Hex()),
		)
		return []string{FallbackSuggestion}
	}

	suggestions := ParseSuggestions(text)
	if len(suggestions) == 0 {
		return []string{FallbackSuggestion}
	}
	return suggestions
}

func candidateText(response generateResponse) string {
	if len(response.Candidates) == 0 {
		return ""
	}
	parts := response.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}

// BuildPrompt renders the lead snapshot into the suggestion prompt. The output
// is deterministic for a given lead: same fields and conversation, same prompt.
func BuildPrompt(lead *models.Lead) string {
	var b strings.Builder

	b.WriteString("You are a sales assistant AI. Based on the following lead's details, ")
	b.WriteString("suggest 3 short and actionable follow-up steps to increase engagement ")
	b.WriteString("and improve conversion. Suggestions should be smart, human-like, and context-aware.\n\n")

	b.WriteString("Lead Details:\n")
	fmt.Fprintf(&b, "Name: %s\n", lead.Name)
	fmt.Fprintf(&b, "Company: %s\n", lead.Company)
	fmt.Fprintf(&b, "Status: %s\n", lead.Status)
	fmt.Fprintf(&b, "Priority: %s\n", lead.Priority)
	fmt.Fprintf(&b, "Source: %s\n", orNA(lead.Source))
	fmt.Fprintf(&b, "Last Contact: %s\n", formatTimestamp(lead.LastContact))
	fmt.Fprintf(&b, "Notes: %s\n", orNA(lead.Notes))

	b.WriteString("\nRecent Messages:\n")
	for _, entry := range lead.Conversation {
		fmt.Fprintf(&b, "- (%s): %s\n", formatTimestamp(entry.Timestamp), entry.Message)
	}

	b.WriteString("\nGenerate follow-up suggestions just three small points. ")
	b.WriteString("Make each suggestion of one small line with bullets and no bold characters. ")
	b.WriteString("Do not include any other text or explanation.")

	return b.String()
}

var listMarker = regexp.MustCompile(`^(\d+\.\s*|[-*\x{2022}]\s*)`)

// ParseSuggestions splits free-form model output into clean suggestion lines:
// one per line, leading enumeration and bullet markers stripped, blanks dropped.
func ParseSuggestions(text string) []string {
	lines := strings.Split(text, "\n")

	suggestions := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		line = listMarker.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		suggestions = append(suggestions, line)
	}
	return suggestions
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format("1/2/2006, 3:04:05 PM")
}
