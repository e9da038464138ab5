package naming

import "strings"

// minSuggestScore is the similarity below which no suggestion is offered.
const minSuggestScore = 0.5

// Suggest returns the candidate closest to word, or "" when none is similar enough.
// Comparison is case-insensitive; ties keep the earliest candidate.
func Suggest(word string, candidates []string) string {
	word = strings.ToLower(word)

	best := ""
	bestScore := 0.0

	for _, c := range candidates {
		score := LevenshteinNormalized(word, strings.ToLower(c))
		if score > bestScore {
			best, bestScore = c, score
		}
	}

	if bestScore < minSuggestScore {
		return ""
	}

	return best
}
