package errors

import "fmt"

// maxSuggestionDistance is the largest edit distance still worth suggesting.
const maxSuggestionDistance = 2

// SuggestValue returns "Did you mean 'X'?" for the closest candidate, or "" when no
// candidate is within a couple of edits. Ties resolve to the first candidate in order,
// so callers should pass a sorted slice for stable output.
func SuggestValue(value string, candidates []string) string {
	if value == "" || len(candidates) == 0 {
		return ""
	}

	minDistance := maxSuggestionDistance + 1
	var bestMatch string

	for _, candidate := range candidates {
		dist := levenshteinDistance(value, candidate)
		if dist < minDistance {
			minDistance = dist
			bestMatch = candidate
		}
	}

	if bestMatch == "" {
		return ""
	}
	return fmt.Sprintf("Did you mean '%s'?", bestMatch)
}

// SuggestField suggests the closest column name for a header that is missing a
// schema column, e.g. "Start date" for "Start Date".
func SuggestField(field string, header []string) string {
	return SuggestValue(field, header)
}

// levenshteinDistance computes the edit distance between two strings.
func levenshteinDistance(s1, s2 string) int {
	if s1 == s2 {
		return 0
	}

	len1 := len(s1)
	len2 := len(s2)

	matrix := make([][]int, len1+1)
	for i := range matrix {
		matrix[i] = make([]int, len2+1)
	}

	for i := 0; i <= len1; i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len2; j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len1; i++ {
		for j := 1; j <= len2; j++ {
			cost := 1
			if s1[i-1] == s2[j-1] {
				cost = 0
			}

			matrix[i][j] = min(
				matrix[i-1][j]+1,      // Deletion
				matrix[i][j-1]+1,      // Insertion
				matrix[i-1][j-1]+cost, // Substitution
			)
		}
	}

	return matrix[len1][len2]
}
