package classifier

import (
	"context"
	"fmt"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
	ProviderAnthropic   = "anthropic"
	ProviderGemini      = "gemini"
)

type Options struct {
	Provider         string
	HuggingFaceKey   string
	HuggingFaceModel string
	OpenAIKey        string
	AnthropicKey     string
	GeminiKey        string
}

// New builds the classifier for opts.Provider. A provider without its API
// key yields ErrNotConfigured, except Hugging Face which reports that per
// call.
func New(ctx context.Context, opts Options) (Classifier, error) {
	switch opts.Provider {
	case "", ProviderHuggingFace:
		return NewHuggingFaceClient(opts.HuggingFaceKey, opts.HuggingFaceModel), nil
	case ProviderOpenAI:
		if opts.OpenAIKey == "" {
			return nil, fmt.Errorf("%w: OPENAI_API_KEY is empty", ErrNotConfigured)
		}
		return NewOpenAIClient(opts.OpenAIKey), nil
	case ProviderAnthropic:
		if opts.AnthropicKey == "" {
			return nil, fmt.Errorf("%w: ANTHROPIC_API_KEY is empty", ErrNotConfigured)
		}
		return NewAnthropicClient(opts.AnthropicKey), nil
	case ProviderGemini:
		if opts.GeminiKey == "" {
			return nil, fmt.Errorf("%w: GEMINI_API_KEY is empty", ErrNotConfigured)
		}
		c, err := NewGeminiClient(ctx, opts.GeminiKey)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	return nil, fmt.Errorf("unknown classifier provider %q", opts.Provider)
}
