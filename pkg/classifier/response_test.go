package classifier

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain JSON unchanged",
			input: `{"scores":[]}`,
			want:  `{"scores":[]}`,
		},
		{
			name:  "strips json fenced block",
			input: "```json\n{\"scores\":[]}\n```",
			want:  `{"scores":[]}`,
		},
		{
			name:  "strips plain fenced block",
			input: "```\n{\"scores\":[]}\n```",
			want:  `{"scores":[]}`,
		},
		{
			name:  "drops prose around the object",
			input: "Here is the result: {\"scores\":[]} Hope it helps",
			want:  `{"scores":[]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cleanJSONResponse(tt.input)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseModelScores(t *testing.T) {
	scores, err := parseModelScores("```json\n{\"scores\":[{\"label\":\"positive\",\"score\":0.7},{\"label\":\"neutral\",\"score\":0.3}]}\n```")

	assert.Equal(t, nil, err)
	assert.Equal(t, []Score{{Label: "positive", Score: 0.7}, {Label: "neutral", Score: 0.3}}, scores)
}

func TestParseModelScores_Malformed(t *testing.T) {
	inputs := []string{"", "not json", `{"scores":[]}`, `{"other":1}`}

	for _, in := range inputs {
		_, err := parseModelScores(in)
		assert.Equal(t, true, errors.Is(err, ErrMalformed))
	}
}

func TestParseInferenceScores(t *testing.T) {
	nested, err := parseInferenceScores([]byte(`[[{"label":"negative","score":0.85},{"label":"positive","score":0.15}]]`))
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(nested))
	assert.Equal(t, "negative", nested[0].Label)

	flat, err := parseInferenceScores([]byte(`[{"label":"중립","score":0.6}]`))
	assert.Equal(t, nil, err)
	assert.Equal(t, []Score{{Label: "중립", Score: 0.6}}, flat)
}

func TestParseInferenceScores_Malformed(t *testing.T) {
	inputs := []string{`[]`, `[[]]`, `{"error":"Model is overloaded"}`, `oops`}

	for _, in := range inputs {
		_, err := parseInferenceScores([]byte(in))
		assert.Equal(t, true, errors.Is(err, ErrMalformed))
	}
}

func TestNew_MissingKeys(t *testing.T) {
	for _, provider := range []string{ProviderOpenAI, ProviderAnthropic, ProviderGemini} {
		c, err := New(context.Background(), Options{Provider: provider})
		assert.Equal(t, nil, c)
		assert.Equal(t, true, errors.Is(err, ErrNotConfigured))
	}

	_, err := New(context.Background(), Options{Provider: "bert"})
	assert.NotEqual(t, nil, err)
}

func TestNew_DefaultsToHuggingFace(t *testing.T) {
	c, err := New(context.Background(), Options{})
	assert.Equal(t, nil, err)
	assert.Equal(t, "huggingface", c.Name())
}
