package agenda

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/Samadhi-12/MinuteMe/pkg/nlp"
)

// DefaultMeetingName is used when the topics carry too little text to name
const DefaultMeetingName = "General Meeting"

const minNameableChars = 20

// Namer derives a meeting name from its topics
type Namer interface {
	Name(ctx context.Context, topics []string) string
}

// KeywordNamer joins the top RAKE phrases across all topics
type KeywordNamer struct {
	Phrases int
}

// Name returns up to Phrases title-cased phrases joined with " & "
func (n KeywordNamer) Name(_ context.Context, topics []string) string {
	text := strings.Join(topics, ". ")
	if len(strings.TrimSpace(text)) < minNameableChars {
		return DefaultMeetingName
	}
	count := n.Phrases
	if count <= 0 {
		count = 2
	}
	phrases := nlp.TopPhrases(text, count)
	if len(phrases) == 0 {
		return DefaultMeetingName
	}
	for i, p := range phrases {
		phrases[i] = nlp.TitleCase(p)
	}
	return strings.Join(phrases, " & ")
}

// Titler writes a one-line title for a set of topics
type Titler interface {
	Title(ctx context.Context, topics []string) (string, error)
}

// SummaryNamer asks a model for a title and falls back to keywords
type SummaryNamer struct {
	model    Titler
	fallback KeywordNamer
	logger   *zap.Logger
}

// NewSummaryNamer wraps a titler
func NewSummaryNamer(model Titler, logger *zap.Logger) *SummaryNamer {
	return &SummaryNamer{model: model, fallback: KeywordNamer{Phrases: 2}, logger: logger}
}

// Name returns the model title or the keyword name
func (n *SummaryNamer) Name(ctx context.Context, topics []string) string {
	if len(strings.TrimSpace(strings.Join(topics, " "))) < minNameableChars {
		return DefaultMeetingName
	}
	title, err := n.model.Title(ctx, topics)
	if err == nil && title != "" {
		return title
	}
	if n.logger != nil {
		n.logger.Warn("⚠️ Title generation failed, using keywords", zap.Error(err))
	}
	return n.fallback.Name(ctx, topics)
}
