package service

import (
	"regexp"
	"sort"
	"strings"
)

// wordRe matches runs of 4 or more letters; shorter tokens never qualify
// as keywords.
var wordRe = regexp.MustCompile(`[A-Za-z]{4,}`)

// KeywordExtractor produces a crude topical summary of a text as its most
// frequent qualifying words.
type KeywordExtractor struct{}

// NewKeywordExtractor creates a new KeywordExtractor.
func NewKeywordExtractor() *KeywordExtractor {
	return &KeywordExtractor{}
}

// TopWords returns up to n words ranked by descending frequency, ties broken
// by first occurrence in the text. Tokens are lower-cased. The result is
// deterministic for identical input and empty when no token qualifies.
func (k *KeywordExtractor) TopWords(text string, n int) []string {
	if n <= 0 {
		return []string{}
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, match := range wordRe.FindAllString(text, -1) {
		word := strings.ToLower(match)
		if _, ok := firstSeen[word]; !ok {
			firstSeen[word] = i
		}
		counts[word]++
	}

	words := make([]string, 0, len(counts))
	for word := range counts {
		words = append(words, word)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return firstSeen[words[i]] < firstSeen[words[j]]
	})

	if len(words) > n {
		words = words[:n]
	}
	return words
}
