// Package diff computes word-level multiset deltas between two text
// snapshots. It is deliberately not a positional diff: words are compared
// by occurrence count only, so reordering text produces no delta.
package diff

import "strings"

// Fields splits a snapshot into words: maximal runs of non-whitespace
// characters, compared byte-for-byte. No case folding, no punctuation
// stripping. An empty or whitespace-only snapshot yields no words.
func Fields(s string) []string {
	return strings.Fields(s)
}

// Words returns the words that occur more often in newWords than in
// oldWords (added) and the reverse (removed), each repeated once per unit
// of excess. Added follows first-appearance order in the new sequence,
// removed first-appearance order in the old sequence. Both lists are empty
// exactly when the two sequences carry the same multiset of words.
func Words(oldWords, newWords []string) (added, removed []string) {
	oldCount := countWords(oldWords)
	newCount := countWords(newWords)

	added = excess(newWords, newCount, oldCount)
	removed = excess(oldWords, oldCount, newCount)
	return added, removed
}

func countWords(words []string) map[string]int {
	counts := make(map[string]int, len(words))
	for _, w := range words {
		counts[w]++
	}
	return counts
}

// excess walks words in order, visiting each distinct word once, and emits
// it (have[w] - other[w]) times when it occurs more often in have.
func excess(words []string, have, other map[string]int) []string {
	result := make([]string, 0)
	seen := make(map[string]struct{}, len(have))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		for i := other[w]; i < have[w]; i++ {
			result = append(result, w)
		}
	}
	return result
}
