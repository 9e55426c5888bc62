// Package minutes turns a transcript into a structured minutes record.
package minutes

import (
	"context"
	"strings"
	"time"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/pkg/nlp"
)

// MaxSummaryTokens is the input budget of the summarizer. Longer text keeps
// its first MaxSummaryTokens words.
const MaxSummaryTokens = 1024

// DefaultNextMeetingOffset is used when the transcript names no follow-up date
const DefaultNextMeetingOffset = 7 * 24 * time.Hour

// Sentences are tested against decision keywords first. A sentence that
// matches is never also reported as a future discussion point.
var (
	DecisionKeywords = []string{
		"we will", "agreed to", "agreed", "the decision is", "decided",
		"approved", "resolved", "conclusion",
	}
	FutureKeywords = []string{
		"next meeting", "discuss later", "follow up", "follow-up", "revisit",
		"future discussion", "next time", "table this", "next week",
	}
	nextMeetingKeywords = []string{
		"next meeting", "meet again", "reconvene", "follow-up meeting",
		"follow up meeting", "next sync", "catch up again",
	}
)

// Summarizer produces an abstractive summary
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Generator builds minutes drafts
type Generator struct {
	summarizer Summarizer
	now        func() time.Time
}

// NewGenerator creates a generator backed by summarizer
func NewGenerator(summarizer Summarizer) *Generator {
	return &Generator{summarizer: summarizer, now: time.Now}
}

// Generate builds a draft from raw transcript text. Empty text is a ValidationError.
func (g *Generator) Generate(ctx context.Context, transcript string) (entities.MinutesDraft, error) {
	text := nlp.CleanTranscript(transcript)
	if text == "" {
		return entities.MinutesDraft{}, entities.NewValidation("transcript", entities.ErrEmptyTranscript.Error())
	}

	input, _ := nlp.TruncateWords(text, MaxSummaryTokens)
	summary, err := g.summarizer.Summarize(ctx, input)
	if err != nil {
		return entities.MinutesDraft{}, entities.NewExternal(entities.ServiceSummarizer, err)
	}

	draft := entities.MinutesDraft{
		Summary:                strings.TrimSpace(summary),
		Decisions:              []string{},
		FutureDiscussionPoints: []string{},
	}
	sentences := nlp.SplitSentences(text)
	for _, s := range sentences {
		switch {
		case nlp.ContainsAny(s, DecisionKeywords):
			draft.Decisions = append(draft.Decisions, s)
		case nlp.ContainsAny(s, FutureKeywords):
			draft.FutureDiscussionPoints = append(draft.FutureDiscussionPoints, s)
		}
	}

	today := g.now()
	if date, ok := nextMeetingDate(sentences, today); ok {
		draft.NextMeetingDate = date
	} else {
		draft.NextMeetingDate = today.Add(DefaultNextMeetingOffset).Format(entities.DateLayout)
		draft.NextMeetingDefaulted = true
	}
	return draft, nil
}

func nextMeetingDate(sentences []string, ref time.Time) (string, bool) {
	for _, s := range sentences {
		if !nlp.ContainsAny(s, nextMeetingKeywords) {
			continue
		}
		if m, ok := nlp.FindDate(s, ref); ok {
			return m.Formatted(), true
		}
	}
	return "", false
}
