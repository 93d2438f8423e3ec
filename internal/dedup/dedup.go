// Package dedup collapses near-duplicate news records within one fetch batch.
//
// Records are clustered single-linkage with a greedy first-match policy: a
// candidate belongs to the first kept record it is similar enough to, even
// when a later kept record would be a closer match. Within a cluster the
// record with the highest confidence survives; on equal confidence the
// earlier record stays.
package dedup

import (
	"strings"

	"novatrend/internal/model"
)

const DefaultThreshold = 0.4

// Field selects the text a record is compared on.
type Field func(model.RawRecord) string

func Title(r model.RawRecord) string       { return r.Title }
func Description(r model.RawRecord) string { return r.Description }

type tokenSet map[string]struct{}

func tokenize(text string) tokenSet {
	words := strings.Fields(strings.ToLower(text))
	set := make(tokenSet, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func jaccard(a, b tokenSet) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	inter := 0
	for w := range small {
		if _, ok := large[w]; ok {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	return float64(inter) / float64(union)
}

// Similarity is the Jaccard index of the lower-cased, whitespace-separated
// word sets of a and b. It is 0 when either text has no words.
func Similarity(a, b string) float64 {
	return jaccard(tokenize(a), tokenize(b))
}

// Deduplicate compares records by title. See DeduplicateBy.
func Deduplicate(records []model.RawRecord, threshold float64) []model.RawRecord {
	return DeduplicateBy(records, threshold, Title)
}

type entry struct {
	record model.RawRecord
	tokens tokenSet
}

// DeduplicateBy returns the subset of records in which no two have a field
// similarity at or above threshold. threshold must lie in (0, 1); other
// values are not corrected.
//
// Output order is arrival order, except that a record which beats an
// existing cluster representative is moved to the end of the output.
// The input slice is not modified.
//
// A record that beats the first member it matches is compared again with
// the remaining members instead of stopping at that first match. If it then
// loses, the member it displaced is gone too: with A similar to C, C similar
// to B and A not similar to B, a C that outranks A but not B leaves only B.
func DeduplicateBy(records []model.RawRecord, threshold float64, field Field) []model.RawRecord {
	kept := make([]entry, 0, len(records))
	for _, r := range records {
		kept = insert(kept, entry{record: r, tokens: tokenize(field(r))}, threshold)
	}

	out := make([]model.RawRecord, len(kept))
	for i, e := range kept {
		out[i] = e.record
	}
	return out
}

// insert adds candidate to kept. A winning candidate replaces the member it
// matched and is then checked again against the rest, so it may in turn
// displace or lose to another member.
func insert(kept []entry, candidate entry, threshold float64) []entry {
	for {
		idx := firstMatch(kept, candidate.tokens, threshold)
		if idx < 0 {
			return append(kept, candidate)
		}
		if candidate.record.Confidence <= kept[idx].record.Confidence {
			return kept
		}
		kept = append(kept[:idx], kept[idx+1:]...)
	}
}

func firstMatch(kept []entry, tokens tokenSet, threshold float64) int {
	for i, e := range kept {
		if jaccard(tokens, e.tokens) >= threshold {
			return i
		}
	}
	return -1
}
