package sentiment

import (
	"time"

	"github.com/google/uuid"

	"novatrend/internal/model"
)

const idLength = 8

var newID = func() string {
	return uuid.NewString()[:idLength]
}

// Text is what gets classified for a record.
func Text(r model.RawRecord) string {
	return r.Title + " " + r.Description
}

// Normalize builds the served records from the survivors of deduplication
// and their assessments, which must be index-aligned. IDs are unique within
// the returned slice.
func Normalize(records []model.RawRecord, assessments []Assessment, region model.Region, now time.Time) []model.AnalyzedRecord {
	seen := make(map[string]struct{}, len(records))
	out := make([]model.AnalyzedRecord, len(records))

	for i, r := range records {
		id := newID()
		for {
			if _, dup := seen[id]; !dup {
				break
			}
			id = newID()
		}
		seen[id] = struct{}{}

		publishedAt := r.PublishedAt
		if publishedAt.IsZero() {
			publishedAt = now
		}

		source := r.Source
		if source == "" {
			source = model.UnknownSource
		}

		out[i] = model.AnalyzedRecord{
			ID:          id,
			Headline:    r.Title,
			Summary:     r.Description,
			Source:      source,
			URL:         r.Link,
			Grade:       assessments[i].Grade,
			Confidence:  assessments[i].Confidence,
			PublishedAt: publishedAt,
			Region:      region,
			Keywords:    []string{r.Query},
		}
	}

	return out
}
