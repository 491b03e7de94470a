// Package slug provides URL-friendly slug generation from post and category
// titles, including deterministic collision resolution against an existing
// slug set.
package slug

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	// nonWord matches anything that is not a word character or whitespace.
	nonWord = regexp.MustCompile(`[^\w\s]`)
	// whitespaceRun matches one or more consecutive whitespace characters.
	whitespaceRun = regexp.MustCompile(`\s+`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Generate creates a URL-friendly base slug from the given string.
// Example: "Healthy Snacks!" → "healthy-snacks"
//
// The result may be empty (e.g. for all-punctuation input); callers must
// treat an empty base as a validation error rather than persisting it.
func Generate(s string) string {
	result := nonWord.ReplaceAllString(s, "")
	result = whitespaceRun.ReplaceAllString(strings.TrimSpace(result), "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return strings.ToLower(result)
}

// MakeUnique returns base if no existing slug matches it, otherwise the
// first free candidate in the sequence base-2, base-3, … The exists callback
// is the only side channel; MakeUnique itself is pure and deterministic for
// a fixed existing-slug set.
func MakeUnique(base string, exists func(string) (bool, error)) (string, error) {
	taken, err := exists(base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}

	for counter := 2; ; counter++ {
		candidate := fmt.Sprintf("%s-%d", base, counter)
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}
