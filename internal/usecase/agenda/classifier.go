// Package agenda plans prioritized, time-boxed agendas.
package agenda

import (
	"context"

	"go.uber.org/zap"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/pkg/nlp"
)

// Classifier assigns a priority to a topic
type Classifier interface {
	Classify(ctx context.Context, topic string) entities.Priority
}

// PriorityRule maps whole-word keywords to a priority
type PriorityRule struct {
	Priority entities.Priority
	Keywords []string
}

// PriorityRules is evaluated in order; the first rule with a matching word wins
// and a topic matching none is info.
var PriorityRules = []PriorityRule{
	{
		Priority: entities.PriorityUrgent,
		Keywords: []string{"deploy", "deployment", "bug", "bugs", "critical", "urgent", "outage", "hotfix", "blocker"},
	},
	{
		Priority: entities.PriorityDiscussion,
		Keywords: []string{"plan", "planning", "roadmap", "strategy", "strategic", "design", "budget", "budgeting"},
	},
}

// KeywordClassifier is the reference classifier: a pure function of topic text
type KeywordClassifier struct{}

// Classify applies PriorityRules
func (KeywordClassifier) Classify(_ context.Context, topic string) entities.Priority {
	return AssignPriority(topic)
}

// AssignPriority applies PriorityRules to topic
func AssignPriority(topic string) entities.Priority {
	for _, r := range PriorityRules {
		if nlp.ContainsWord(topic, r.Keywords) {
			return r.Priority
		}
	}
	return entities.PriorityInfo
}

// LabelClassifier picks one label out of a fixed set
type LabelClassifier interface {
	Classify(ctx context.Context, text string, labels []string) (string, error)
}

// Zero-shot labels and the priority each collapses to
const (
	LabelUrgent     = "urgent issue"
	LabelDiscussion = "strategic discussion"
	LabelInfo       = "general information"
)

var labelPriority = map[string]entities.Priority{
	LabelUrgent:     entities.PriorityUrgent,
	LabelDiscussion: entities.PriorityDiscussion,
	LabelInfo:       entities.PriorityInfo,
}

// ZeroShotClassifier asks a model for a label and falls back to the keyword
// table when the model fails
type ZeroShotClassifier struct {
	model  LabelClassifier
	logger *zap.Logger
}

// NewZeroShotClassifier wraps a label classifier
func NewZeroShotClassifier(model LabelClassifier, logger *zap.Logger) *ZeroShotClassifier {
	return &ZeroShotClassifier{model: model, logger: logger}
}

// Classify returns the collapsed priority of the model's label
func (z *ZeroShotClassifier) Classify(ctx context.Context, topic string) entities.Priority {
	label, err := z.model.Classify(ctx, topic, []string{LabelUrgent, LabelDiscussion, LabelInfo})
	if err == nil {
		if p, ok := labelPriority[label]; ok {
			return p
		}
	}
	if z.logger != nil {
		z.logger.Warn("⚠️ Zero-shot classification failed, using keyword rules",
			zap.String("topic", topic),
			zap.Error(err),
		)
	}
	return AssignPriority(topic)
}
