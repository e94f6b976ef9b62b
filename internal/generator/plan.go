package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// MinPlanDays and MaxPlanDays bound the length of a content plan.
	MinPlanDays = 7
	MaxPlanDays = 30

	planTemperature = 0.8
)

// Idea is a single day's entry in a generated content plan.
type Idea struct {
	Day          int    `json:"day"`
	Type         string `json:"type"`
	Idea         string `json:"idea"`
	CaptionDraft string `json:"caption_draft"`
	Audience     string `json:"audience"`
	BestTime     string `json:"best_time"`
	Hashtags     string `json:"hashtags"`
}

// PlanRequest describes a content plan to generate.
type PlanRequest struct {
	Niche           string
	Days            int
	IncludeSeasonal bool
	IncludePPV      bool
}

// GeneratePlan asks the model for an N-day content plan.
func (c *Client) GeneratePlan(ctx context.Context, req PlanRequest) ([]Idea, error) {
	if strings.TrimSpace(req.Niche) == "" {
		return nil, fmt.Errorf("niche is required")
	}

	days := req.Days
	if days < MinPlanDays {
		days = MinPlanDays
	}
	if days > MaxPlanDays {
		days = MaxPlanDays
	}

	prompt := PlanPrompt(req.Niche, days, req.IncludeSeasonal, req.IncludePPV, time.Now())

	response, err := c.Complete(ctx, prompt, planMaxTokens, planTemperature)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}

	ideas, err := ParsePlan(response)
	if err != nil {
		return nil, fmt.Errorf("parse plan response: %w", err)
	}

	return ideas, nil
}

// ParsePlan decodes the model's response into ideas. Models sometimes wrap
// the array in markdown code fences or surrounding prose despite being told
// not to, so both are tolerated.
func ParsePlan(response string) ([]Idea, error) {
	content := strings.TrimSpace(response)

	// Strip a leading ```json / ``` fence and its closing fence.
	if strings.HasPrefix(content, "```") {
		if idx := strings.Index(content, "\n"); idx != -1 {
			content = content[idx+1:]
		}
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
		content = strings.TrimSpace(content)
	}

	var ideas []Idea
	if err := json.Unmarshal([]byte(content), &ideas); err != nil {
		// Try to extract a JSON array from a response that contains other text
		extracted, extractErr := extractJSONArray(content)
		if extractErr != nil {
			return nil, extractErr
		}
		if err := json.Unmarshal([]byte(extracted), &ideas); err != nil {
			return nil, fmt.Errorf("parse extracted JSON: %w", err)
		}
	}

	return ideas, nil
}

// extractJSONArray finds the first balanced JSON array in a response that
// may contain other text.
func extractJSONArray(response string) (string, error) {
	start := strings.IndexByte(response, '[')
	if start == -1 {
		return "", fmt.Errorf("no JSON array found in response")
	}

	depth := 0
	for i := start; i < len(response); i++ {
		switch response[i] {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return response[start : i+1], nil
			}
		}
	}

	return "", fmt.Errorf("malformed JSON array in response")
}
