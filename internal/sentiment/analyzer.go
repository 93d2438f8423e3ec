package sentiment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"novatrend/internal/model"
	"novatrend/pkg/classifier"
)

const MaxTextChars = 512

// Assessment is the grade of one text. Err is set when the classifier could
// not be used; Grade and Confidence then hold the fallback values.
type Assessment struct {
	Grade      model.Grade
	Confidence float64
	Label      string
	Err        error
}

func (a Assessment) Degraded() bool {
	return a.Err != nil
}

var fallback = Assessment{Grade: model.GradeGood, Confidence: 0.5}

// Fallback is the assessment given when classification fails for reason.
func Fallback(reason error) Assessment {
	a := fallback
	a.Err = reason
	return a
}

// FromScore is the assessment of a successful classification.
func FromScore(label string, score float64) Assessment {
	return Assessment{
		Grade:      MapGrade(label, score),
		Confidence: roundConfidence(score),
		Label:      label,
	}
}

// Reason names the failure class of err for logs and metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, classifier.ErrNotConfigured):
		return "not_configured"
	case errors.Is(err, classifier.ErrMalformed):
		return "malformed"
	default:
		return "unavailable"
	}
}

// Analyzer grades free text with an injected classifier. It is safe for
// concurrent use when the classifier is.
type Analyzer struct {
	classifier classifier.Classifier
	timeout    time.Duration
}

// NewAnalyzer accepts a nil classifier; every text is then graded with the
// fallback.
func NewAnalyzer(c classifier.Classifier, timeout time.Duration) *Analyzer {
	return &Analyzer{classifier: c, timeout: timeout}
}

func (a *Analyzer) Assess(ctx context.Context, text string) Assessment {
	scores, err := a.classify(ctx, text)
	if err != nil {
		return Fallback(err)
	}

	top, _ := Top(scores)
	return FromScore(top.Label, top.Score)
}

func (a *Analyzer) classify(ctx context.Context, text string) ([]classifier.Score, error) {
	if a == nil || a.classifier == nil {
		return nil, classifier.ErrNotConfigured
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	scores, err := a.classifier.Classify(ctx, Truncate(text, MaxTextChars))
	if err != nil {
		if errors.Is(err, classifier.ErrNotConfigured) || errors.Is(err, classifier.ErrMalformed) {
			return nil, err
		}
		if errors.Is(err, classifier.ErrUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", classifier.ErrUnavailable, err)
	}

	if len(scores) == 0 {
		return nil, fmt.Errorf("%w: no scores", classifier.ErrMalformed)
	}
	for _, s := range scores {
		if math.IsNaN(s.Score) || s.Score < 0 || s.Score > 1 {
			return nil, fmt.Errorf("%w: score %v for label %q", classifier.ErrMalformed, s.Score, s.Label)
		}
	}

	return scores, nil
}

// Truncate cuts text to at most max characters.
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
