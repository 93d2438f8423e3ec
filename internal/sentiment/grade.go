// Package sentiment turns classifier output into the four-level news grade
// and builds the records served to API consumers.
package sentiment

import (
	"math"
	"strings"

	"novatrend/internal/model"
	"novatrend/pkg/classifier"
)

const (
	strongScore  = 0.8
	neutralScore = 0.6
)

var (
	positiveLabels = []string{"positive", "긍정"}
	negativeLabels = []string{"negative", "부정"}
)

func hasAny(label string, words []string) bool {
	for _, w := range words {
		if strings.Contains(label, w) {
			return true
		}
	}
	return false
}

// MapGrade maps a classifier label and its probability to a grade.
// Neutral and unknown labels lean to good: they become bad only at a score
// of 0.6 or below.
func MapGrade(label string, score float64) model.Grade {
	label = strings.ToLower(label)

	switch {
	case hasAny(label, positiveLabels):
		if score > strongScore {
			return model.GradeBigGood
		}
		return model.GradeGood
	case hasAny(label, negativeLabels):
		if score > strongScore {
			return model.GradeBigBad
		}
		return model.GradeBad
	default:
		if score > neutralScore {
			return model.GradeGood
		}
		return model.GradeBad
	}
}

// Top returns the highest-scoring entry. The first of equal maxima wins.
func Top(scores []classifier.Score) (classifier.Score, bool) {
	if len(scores) == 0 {
		return classifier.Score{}, false
	}
	top := scores[0]
	for _, s := range scores[1:] {
		if s.Score > top.Score {
			top = s
		}
	}
	return top, true
}

func roundConfidence(score float64) float64 {
	return math.Round(score*10000) / 10000
}
