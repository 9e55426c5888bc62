package quota

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samadhi-12/MinuteMe/internal/adapter/repository/memory"
	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
	"github.com/Samadhi-12/MinuteMe/pkg/config"
)

var freeLimits = config.QuotaConfig{
	FreeMeetings:       5,
	FreeAutomations:    5,
	FreeTranscriptions: 5,
	FreeMaxVideo:       15 * time.Minute,
	FreeMinutesHistory: 3,
}

func newService(t *testing.T) *Service {
	t.Helper()
	repos := memory.New()
	return NewService(repos.Usage, freeLimits, nil, nil)
}

func consumeN(t *testing.T, s *Service, id entities.Identity, kind entities.QuotaKind, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := s.Consume(context.Background(), id, kind)
		require.NoError(t, err)
	}
}

func TestCheckAtBoundary(t *testing.T) {
	ctx := context.Background()
	free := entities.Identity{UserID: "u1", Tier: entities.TierFree}

	s := newService(t)
	consumeN(t, s, free, entities.QuotaAutomation, 4)
	st, err := s.Check(ctx, free, entities.QuotaAutomation)
	require.NoError(t, err)
	assert.False(t, st.Exceeded)
	assert.Equal(t, 1, st.Remaining)

	consumeN(t, s, free, entities.QuotaAutomation, 1)
	st, err = s.Check(ctx, free, entities.QuotaAutomation)
	require.NoError(t, err)
	assert.True(t, st.Exceeded)
	assert.Equal(t, 0, st.Remaining)
	assert.Equal(t, 5, st.Used)
}

func TestConsumeRefusesSixth(t *testing.T) {
	s := newService(t)
	free := entities.Identity{UserID: "u1", Tier: entities.TierFree}
	consumeN(t, s, free, entities.QuotaMeeting, 5)

	_, err := s.Consume(context.Background(), free, entities.QuotaMeeting)
	var qe *entities.QuotaExceededError
	require.True(t, errors.As(err, &qe))
	assert.Equal(t, 5, qe.Limit)
	assert.Equal(t, 5, qe.Used)
	assert.Contains(t, qe.Error(), "5 of 5")
}

func TestPremiumIsUnlimited(t *testing.T) {
	s := newService(t)
	premium := entities.Identity{UserID: "p1", Tier: entities.TierPremium}
	consumeN(t, s, premium, entities.QuotaTranscription, 12)

	st, err := s.Check(context.Background(), premium, entities.QuotaTranscription)
	require.NoError(t, err)
	assert.Equal(t, entities.Unlimited, st.Limit)
	assert.Equal(t, 12, st.Used)
	assert.False(t, st.Exceeded)
	assert.Zero(t, s.MaxVideoDuration(entities.TierPremium))
	assert.Zero(t, s.HistoryLimit(entities.TierPremium))
}

func TestCountersResetEachMonth(t *testing.T) {
	s := newService(t)
	free := entities.Identity{UserID: "u1", Tier: entities.TierFree}
	s.now = func() time.Time { return time.Date(2026, 9, 30, 12, 0, 0, 0, time.UTC) }
	consumeN(t, s, free, entities.QuotaAutomation, 5)

	s.now = func() time.Time { return time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC) }
	st, err := s.Check(context.Background(), free, entities.QuotaAutomation)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Used)
}

func TestAllAndTierHelpers(t *testing.T) {
	s := newService(t)
	free := entities.Identity{UserID: "u1", Tier: entities.TierFree}
	all, err := s.All(context.Background(), free)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	assert.Equal(t, 15*time.Minute, s.MaxVideoDuration(entities.TierFree))
	assert.Equal(t, 3, s.HistoryLimit(entities.TierFree))

	var tr *entities.TierRequiredError
	assert.True(t, errors.As(s.RequirePremium(free, "calendar"), &tr))
	assert.NoError(t, s.RequirePremium(entities.Identity{Tier: entities.TierPremium}, "calendar"))
}

func TestReleaseGivesUnitBack(t *testing.T) {
	ctx := context.Background()
	s := newService(t)
	free := entities.Identity{UserID: "u1", Tier: entities.TierFree}
	consumeN(t, s, free, entities.QuotaAutomation, 5)

	require.NoError(t, s.Release(ctx, free, entities.QuotaAutomation))
	st, err := s.Check(ctx, free, entities.QuotaAutomation)
	require.NoError(t, err)
	assert.Equal(t, 4, st.Used)
	assert.False(t, st.Exceeded)

	// never below zero
	other := entities.Identity{UserID: "u2", Tier: entities.TierFree}
	require.NoError(t, s.Release(ctx, other, entities.QuotaAutomation))
	st, err = s.Check(ctx, other, entities.QuotaAutomation)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Used)
}
