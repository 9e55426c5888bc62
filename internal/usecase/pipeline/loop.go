package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// AgendaPlanner is the agenda stage as seen by the loop closer
type AgendaPlanner interface {
	HandleRequest(ctx context.Context, req entities.AgendaGenerationRequested) (*entities.Agenda, error)
}

// LoopCloser turns finalized minutes into the next meeting's agenda
type LoopCloser struct {
	agendas AgendaPlanner
	logger  *zap.Logger
}

// NewLoopCloser creates a loop closer
func NewLoopCloser(agendas AgendaPlanner, logger *zap.Logger) *LoopCloser {
	return &LoopCloser{agendas: agendas, logger: logger}
}

// MinutesFinalized plans the follow-up agenda. It returns nil without error
// when no follow-up meeting is planned or there is nothing to put on it.
func (l *LoopCloser) MinutesFinalized(ctx context.Context, ev entities.MinutesFinalized) (*entities.Agenda, error) {
	req, ok := ev.NextAgenda()
	if !ok {
		return nil, nil
	}
	if len(req.Topics) == 0 {
		if l.logger != nil {
			l.logger.Info("ℹ️ No future discussion points, next agenda skipped",
				zap.String("user_id", ev.UserID),
				zap.String("minutes_id", ev.MinutesID),
			)
		}
		return nil, nil
	}

	a, err := l.agendas.HandleRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	if l.logger != nil {
		l.logger.Info("🔁 Next agenda generated",
			zap.String("user_id", ev.UserID),
			zap.String("minutes_id", ev.MinutesID),
			zap.String("agenda_id", a.ID),
			zap.String("meeting_date", a.MeetingDate),
		)
	}
	return a, nil
}
