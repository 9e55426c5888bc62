package nlp

import (
	"regexp"
	"sort"
	"strings"
)

var phraseDelimiters = regexp.MustCompile(`[,.;:!?()\[\]"\n\t]+`)

// Phrase is a RAKE candidate with its score
type Phrase struct {
	Text  string
	Score float64
}

// RankPhrases scores candidate phrases with RAKE: text is split on punctuation
// and stopwords, each word scores degree/frequency, a phrase sums its words.
// Ties keep first-appearance order.
func RankPhrases(text string) []Phrase {
	var candidates [][]string
	for _, chunk := range phraseDelimiters.Split(strings.ToLower(text), -1) {
		var current []string
		for _, w := range Words(chunk) {
			if IsStopword(w) {
				if len(current) > 0 {
					candidates = append(candidates, current)
				}
				current = nil
				continue
			}
			current = append(current, w)
		}
		if len(current) > 0 {
			candidates = append(candidates, current)
		}
	}

	freq := map[string]float64{}
	degree := map[string]float64{}
	for _, c := range candidates {
		for _, w := range c {
			freq[w]++
			degree[w] += float64(len(c))
		}
	}

	seen := map[string]bool{}
	var out []Phrase
	for _, c := range candidates {
		key := strings.Join(c, " ")
		if seen[key] {
			continue
		}
		seen[key] = true
		score := 0.0
		for _, w := range c {
			score += degree[w] / freq[w]
		}
		out = append(out, Phrase{Text: key, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	return out
}

// TopPhrases returns the n best phrase texts
func TopPhrases(text string, n int) []string {
	ranked := RankPhrases(text)
	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}
	out := make([]string, 0, len(ranked))
	for _, p := range ranked {
		out = append(out, p.Text)
	}
	return out
}
