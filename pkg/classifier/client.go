package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotConfigured = errors.New("classifier not configured")
	ErrUnavailable   = errors.New("classifier unavailable")
	ErrMalformed     = errors.New("malformed classifier response")
)

type Score struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

type Classifier interface {
	Classify(ctx context.Context, text string) ([]Score, error)
	Name() string
}

const classifyPrompt = `You are a financial news sentiment classifier. You will receive a news headline followed by its summary.

Classify the overall market sentiment of the text for investors.

Rules:
1. Use exactly three labels: positive, negative, neutral
2. Give each label a probability between 0 and 1
3. The probabilities must sum to 1
4. Judge the facts, not the tone of the writing

Output as JSON only, no other text:
{
  "scores": [
    {"label": "positive", "score": 0.0},
    {"label": "negative", "score": 0.0},
    {"label": "neutral", "score": 0.0}
  ]
}`

func cleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	// Some model responses include extra prose around JSON.
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start >= 0 && end > start {
		content = content[start : end+1]
	}
	return content
}

// parseModelScores reads the {"scores": [...]} object the chat models are
// prompted to return.
func parseModelScores(content string) ([]Score, error) {
	content = cleanJSONResponse(content)

	var parsed struct {
		Scores []Score `json:"scores"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return nil, fmt.Errorf("%w: %v, content: %s", ErrMalformed, err, content)
	}
	if len(parsed.Scores) == 0 {
		return nil, fmt.Errorf("%w: no scores, content: %s", ErrMalformed, content)
	}
	return parsed.Scores, nil
}
