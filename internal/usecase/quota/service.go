// Package quota enforces the monthly tier limits.
package quota

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/internal/domain/repositories"
	"github.com/Samadhi-12/MinuteMe/internal/infrastructure/metrics"
	"github.com/Samadhi-12/MinuteMe/pkg/config"
)

// Service checks and consumes monthly usage counters
type Service struct {
	usage   repositories.UsageRepository
	limits  config.QuotaConfig
	metrics *metrics.Metrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewService creates a quota service
func NewService(usage repositories.UsageRepository, limits config.QuotaConfig, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{
		usage:   usage,
		limits:  limits,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// Limit returns the monthly allowance of kind for tier, Unlimited for premium
func (s *Service) Limit(tier entities.Tier, kind entities.QuotaKind) int {
	if tier == entities.TierPremium {
		return entities.Unlimited
	}
	switch kind {
	case entities.QuotaMeeting:
		return s.limits.FreeMeetings
	case entities.QuotaAutomation:
		return s.limits.FreeAutomations
	case entities.QuotaTranscription:
		return s.limits.FreeTranscriptions
	}
	return entities.Unlimited
}

func status(kind entities.QuotaKind, limit, used int) entities.QuotaStatus {
	st := entities.QuotaStatus{Kind: kind, Limit: limit, Used: used, Remaining: entities.Unlimited}
	if limit != entities.Unlimited {
		st.Remaining = limit - used
		if st.Remaining < 0 {
			st.Remaining = 0
		}
		st.Exceeded = used >= limit
	}
	return st
}

// Check reads the current usage without consuming
func (s *Service) Check(ctx context.Context, id entities.Identity, kind entities.QuotaKind) (entities.QuotaStatus, error) {
	used, err := s.usage.Get(ctx, id.UserID, kind, entities.UsagePeriod(s.now()))
	if err != nil {
		return entities.QuotaStatus{}, err
	}
	return status(kind, s.Limit(id.Tier, kind), used), nil
}

// All returns the status of every metered kind
func (s *Service) All(ctx context.Context, id entities.Identity) ([]entities.QuotaStatus, error) {
	out := make([]entities.QuotaStatus, 0, len(entities.MeteredKinds))
	for _, kind := range entities.MeteredKinds {
		st, err := s.Check(ctx, id, kind)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, nil
}

// Consume atomically takes one unit of kind or fails with QuotaExceededError
func (s *Service) Consume(ctx context.Context, id entities.Identity, kind entities.QuotaKind) (entities.QuotaStatus, error) {
	period := entities.UsagePeriod(s.now())
	limit := s.Limit(id.Tier, kind)

	if limit == entities.Unlimited {
		used, err := s.usage.Increment(ctx, id.UserID, kind, period)
		if err != nil {
			return entities.QuotaStatus{}, err
		}
		return status(kind, limit, used), nil
	}

	used, ok, err := s.usage.IncrementIfBelow(ctx, id.UserID, kind, period, limit)
	if err != nil {
		return entities.QuotaStatus{}, err
	}
	if !ok {
		s.metrics.QuotaDeniedFor(string(kind))
		if s.logger != nil {
			s.logger.Info("🚫 Quota exceeded",
				zap.String("user_id", id.UserID),
				zap.String("kind", string(kind)),
				zap.Int("used", used),
				zap.Int("limit", limit),
			)
		}
		return status(kind, limit, used), &entities.QuotaExceededError{Kind: kind, Limit: limit, Used: used}
	}
	return status(kind, limit, used), nil
}

// Release returns a unit taken by Consume when the work it paid for never started
func (s *Service) Release(ctx context.Context, id entities.Identity, kind entities.QuotaKind) error {
	if err := s.usage.Decrement(ctx, id.UserID, kind, entities.UsagePeriod(s.now())); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.Info("↩️ Quota released",
			zap.String("user_id", id.UserID),
			zap.String("kind", string(kind)),
		)
	}
	return nil
}

// MaxVideoDuration is the longest media a tier may transcribe, zero for no cap
func (s *Service) MaxVideoDuration(tier entities.Tier) time.Duration {
	if tier == entities.TierPremium {
		return 0
	}
	return s.limits.FreeMaxVideo
}

// HistoryLimit is how many minutes records a tier may list, zero for all
func (s *Service) HistoryLimit(tier entities.Tier) int {
	if tier == entities.TierPremium {
		return 0
	}
	return s.limits.FreeMinutesHistory
}

// RequirePremium fails with TierRequiredError for free users
func (s *Service) RequirePremium(id entities.Identity, feature string) error {
	if id.IsPremium() {
		return nil
	}
	return &entities.TierRequiredError{Feature: feature, Tier: id.Tier}
}
