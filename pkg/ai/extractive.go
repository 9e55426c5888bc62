package ai

import (
	"context"
	"sort"
	"strings"

	"github.com/Samadhi-12/MinuteMe/pkg/nlp"
)

// ExtractiveSummarizer picks the highest scoring sentences by word frequency.
// Used when no LLM key is configured.
type ExtractiveSummarizer struct {
	MaxSentences int
}

// NewExtractiveSummarizer keeps at most n sentences
func NewExtractiveSummarizer(n int) *ExtractiveSummarizer {
	if n <= 0 {
		n = 3
	}
	return &ExtractiveSummarizer{MaxSentences: n}
}

// Summarize returns the chosen sentences in their original order
func (s *ExtractiveSummarizer) Summarize(_ context.Context, text string) (string, error) {
	sentences := nlp.SplitSentences(text)
	if len(sentences) <= s.MaxSentences {
		return strings.Join(sentences, " "), nil
	}

	freq := map[string]int{}
	for _, w := range nlp.Words(strings.ToLower(text)) {
		if !nlp.IsStopword(w) {
			freq[w]++
		}
	}

	type scored struct {
		idx   int
		score float64
	}
	ranked := make([]scored, 0, len(sentences))
	for i, sent := range sentences {
		words := nlp.Words(strings.ToLower(sent))
		if len(words) == 0 {
			continue
		}
		total := 0
		for _, w := range words {
			total += freq[w]
		}
		ranked = append(ranked, scored{idx: i, score: float64(total) / float64(len(words))})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > s.MaxSentences {
		ranked = ranked[:s.MaxSentences]
	}
	sort.Slice(ranked, func(i, j int) bool { return ranked[i].idx < ranked[j].idx })

	out := make([]string, 0, len(ranked))
	for _, r := range ranked {
		out = append(out, sentences[r.idx])
	}
	return strings.Join(out, " "), nil
}
