package agenda

import (
	"context"
	"fmt"
	"strings"
	"time"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/domain/repositories"
	"github.com/Samadhi-12/MinuteMe/pkg/nlp"
)

// Used when a user without any minutes asks for an agenda
var (
	FallbackTopics = []string{
		"Social Media Campaign Review",
		"Q4 Advertising Budget",
	}
	FallbackDiscussionPoints = []string{
		"Analyze recent email marketing performance",
		"Plan upcoming influencer collaborations",
		"Evaluate content strategy effectiveness",
	}
)

// duplicateRatio is the fuzzy score at which two topics count as the same
const duplicateRatio = 90

// Input is an explicit agenda request
type Input struct {
	MeetingName      string
	MeetingDate      string
	Topics           []string
	DiscussionPoints []string
}

// ItemInput replaces one agenda item on update
type ItemInput struct {
	Topic    string
	Priority entities.Priority
}

// UpdateInput holds the fields a PATCH may change
type UpdateInput struct {
	MeetingName *string
	MeetingDate *string
	Items       []ItemInput
}

// Service plans and stores agendas
type Service struct {
	agendas    repositories.AgendaRepository
	minutes    repositories.MinutesRepository
	classifier Classifier
	namer      Namer
	logger     *zap.Logger
	now        func() time.Time
}

// NewService creates an agenda service
func NewService(
	agendas repositories.AgendaRepository,
	minutes repositories.MinutesRepository,
	classifier Classifier,
	namer Namer,
	logger *zap.Logger,
) *Service {
	if classifier == nil {
		classifier = KeywordClassifier{}
	}
	if namer == nil {
		namer = KeywordNamer{Phrases: 2}
	}
	return &Service{
		agendas:    agendas,
		minutes:    minutes,
		classifier: classifier,
		namer:      namer,
		logger:     logger,
		now:        time.Now,
	}
}

// SetClock overrides the time source
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) today() string {
	return s.now().Format(entities.DateLayout)
}

// Plan builds an agenda without storing it
func (s *Service) Plan(ctx context.Context, in Input) *entities.Agenda {
	combined := dedupe(append(append([]string{}, in.Topics...), in.DiscussionPoints...))

	items := make([]entities.AgendaItem, 0, len(combined))
	for _, topic := range combined {
		p := s.classifier.Classify(ctx, topic)
		items = append(items, entities.AgendaItem{
			Topic:                canonicalPhrase(topic),
			Source:               topic,
			Priority:             p,
			TimeAllocatedMinutes: entities.AllocateTime(p),
		})
	}

	name := strings.TrimSpace(in.MeetingName)
	if name == "" {
		name = s.namer.Name(ctx, combined)
	}
	date := in.MeetingDate
	if date == "" {
		date = s.today()
	}

	now := s.now().UTC()
	return &entities.Agenda{
		MeetingName:      name,
		MeetingDate:      date,
		Items:            datatypes.JSONSlice[entities.AgendaItem](items),
		Topics:           datatypes.JSONSlice[string](nonNil(in.Topics)),
		DiscussionPoints: datatypes.JSONSlice[string](nonNil(in.DiscussionPoints)),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Generate plans and stores an agenda. A nil input derives topics from the
// user's latest minutes, or from the fallback set when there are none.
func (s *Service) Generate(ctx context.Context, userID string, in *Input) (*entities.Agenda, error) {
	var sourceMinutes string
	if in == nil {
		derived, minutesID, err := s.fromLatestMinutes(ctx, userID)
		if err != nil {
			return nil, err
		}
		in, sourceMinutes = derived, minutesID
	}
	return s.create(ctx, userID, *in, sourceMinutes)
}

// HandleRequest serves an AgendaGenerationRequested transition
func (s *Service) HandleRequest(ctx context.Context, req entities.AgendaGenerationRequested) (*entities.Agenda, error) {
	return s.create(ctx, req.UserID, Input{
		MeetingDate:      req.MeetingDate,
		Topics:           req.Topics,
		DiscussionPoints: req.DiscussionPoints,
	}, req.SourceMinutesID)
}

func (s *Service) create(ctx context.Context, userID string, in Input, sourceMinutes string) (*entities.Agenda, error) {
	if len(in.Topics) == 0 && len(in.DiscussionPoints) == 0 {
		return nil, entities.NewValidation("topics", "at least one topic or discussion point is required")
	}
	if in.MeetingDate != "" {
		if _, err := time.Parse(entities.DateLayout, in.MeetingDate); err != nil {
			return nil, entities.NewValidation("meeting_date", "must be YYYY-MM-DD")
		}
	}

	a := s.Plan(ctx, in)
	a.UserID = userID
	a.SourceMinutesID = sourceMinutes
	if err := s.agendas.CreateNext(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to save agenda: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("🗓️ Agenda created",
			zap.String("user_id", userID),
			zap.String("agenda_id", a.ID),
			zap.Int("items", len(a.Items)),
			zap.Int("total_minutes", a.TotalMinutes()),
		)
	}
	return a, nil
}

func (s *Service) fromLatestMinutes(ctx context.Context, userID string) (*Input, string, error) {
	latest, err := s.minutes.GetLatest(ctx, userID)
	if err != nil {
		return nil, "", err
	}
	if latest == nil {
		if s.logger != nil {
			s.logger.Info("ℹ️ No minutes found, using fallback agenda topics", zap.String("user_id", userID))
		}
		return &Input{
			MeetingDate:      s.today(),
			Topics:           FallbackTopics,
			DiscussionPoints: FallbackDiscussionPoints,
		}, "", nil
	}
	date := latest.NextMeetingDate
	if date == "" {
		date = s.today()
	}
	return &Input{
		MeetingDate:      date,
		Topics:           latest.FutureDiscussionPoints,
		DiscussionPoints: []string{},
	}, latest.ID, nil
}

// Get returns one agenda of a user
func (s *Service) Get(ctx context.Context, userID, id string) (*entities.Agenda, error) {
	a, err := s.agendas.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, entities.NewNotFound("agenda", id)
	}
	return a, nil
}

// List returns every agenda of a user
func (s *Service) List(ctx context.Context, userID string) ([]*entities.Agenda, error) {
	return s.agendas.ListByUser(ctx, userID)
}

// Update renames, redates or replaces the items of an agenda.
// Time boxes are always recomputed from priority.
func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) (*entities.Agenda, error) {
	a, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if in.MeetingName != nil {
		a.MeetingName = strings.TrimSpace(*in.MeetingName)
	}
	if in.MeetingDate != nil {
		if _, err := time.Parse(entities.DateLayout, *in.MeetingDate); err != nil {
			return nil, entities.NewValidation("meeting_date", "must be YYYY-MM-DD")
		}
		a.MeetingDate = *in.MeetingDate
	}
	if in.Items != nil {
		items := make([]entities.AgendaItem, 0, len(in.Items))
		for i, it := range in.Items {
			topic := strings.TrimSpace(it.Topic)
			if topic == "" {
				return nil, entities.NewValidation(fmt.Sprintf("items[%d].topic", i), "is required")
			}
			p := it.Priority
			if p == "" {
				p = s.classifier.Classify(ctx, topic)
			}
			if !p.IsValid() {
				return nil, entities.NewValidation(fmt.Sprintf("items[%d].priority", i), "must be urgent, discussion or info")
			}
			items = append(items, entities.AgendaItem{
				Topic:                topic,
				Priority:             p,
				TimeAllocatedMinutes: entities.AllocateTime(p),
			})
		}
		a.Items = items
	}
	a.UpdatedAt = s.now().UTC()
	if err := s.agendas.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes an agenda
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	ok, err := s.agendas.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if !ok {
		return entities.NewNotFound("agenda", id)
	}
	return nil
}

// canonicalPhrase returns the top RAKE phrase of topic, title-cased
func canonicalPhrase(topic string) string {
	if phrases := nlp.TopPhrases(topic, 1); len(phrases) > 0 {
		return nlp.TitleCase(phrases[0])
	}
	return strings.TrimSpace(topic)
}

// dedupe drops blank topics and near-duplicates of an earlier topic
func dedupe(topics []string) []string {
	out := make([]string, 0, len(topics))
	var seen []string
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		dup := false
		for _, s := range seen {
			if fuzzy.Ratio(key, s) >= duplicateRatio {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		seen = append(seen, key)
		out = append(out, t)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
