package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

func TestAgendaCreateNextNumbersPerUser(t *testing.T) {
	ctx := context.Background()
	repo := NewAgendaRepository()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.CreateNext(ctx, &entities.Agenda{UserID: "alice"}))
	}
	other := &entities.Agenda{UserID: "bob"}
	require.NoError(t, repo.CreateNext(ctx, other))

	assert.Equal(t, "1", other.ID)
	list, err := repo.ListByUser(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "3", list[0].ID)

	// a gap left by a delete does not produce a duplicate id
	deleted, err := repo.Delete(ctx, "alice", "1")
	require.NoError(t, err)
	assert.True(t, deleted)
	next := &entities.Agenda{UserID: "alice"}
	require.NoError(t, repo.CreateNext(ctx, next))
	assert.Equal(t, "4", next.ID)
}

func TestAgendaIDsNeverReusedAfterDeletes(t *testing.T) {
	ctx := context.Background()
	repo := NewAgendaRepository()

	for i := 0; i < 10; i++ {
		require.NoError(t, repo.CreateNext(ctx, &entities.Agenda{UserID: "alice"}))
	}
	for _, id := range []string{"1", "2", "3", "4", "5", "10"} {
		deleted, err := repo.Delete(ctx, "alice", id)
		require.NoError(t, err)
		require.True(t, deleted)
	}

	next := &entities.Agenda{UserID: "alice"}
	require.NoError(t, repo.CreateNext(ctx, next))
	assert.Equal(t, "11", next.ID)

	count, err := repo.CountByUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)
}

func TestUsageIncrementIfBelowIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := NewUsageRepository()

	var wg sync.WaitGroup
	var mu sync.Mutex
	granted := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok, err := repo.IncrementIfBelow(ctx, "alice", entities.QuotaAutomation, "2026-10", 5)
			assert.NoError(t, err)
			if ok {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, granted)
	used, err := repo.Get(ctx, "alice", entities.QuotaAutomation, "2026-10")
	require.NoError(t, err)
	assert.Equal(t, 5, used)
}

func TestReadsAreUserScoped(t *testing.T) {
	ctx := context.Background()
	repos := New()

	m := entities.NewMinutes("alice", "", "", "2026-10-14", entities.MinutesDraft{Summary: "s"})
	require.NoError(t, repos.Minutes.Create(ctx, m))

	got, err := repos.Minutes.GetByID(ctx, "bob", m.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repos.Minutes.GetByID(ctx, "alice", m.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "s", got.Summary)
}

func TestUserEnsureKeepsRoleAndTier(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	_, err := repo.Ensure(ctx, &entities.User{ID: "u1", Email: "a@example.com"})
	require.NoError(t, err)
	require.NoError(t, repo.UpdateTier(ctx, "u1", entities.TierPremium))

	u, err := repo.Ensure(ctx, &entities.User{ID: "u1", Tier: entities.TierFree, Name: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, entities.TierPremium, u.Tier)
	assert.Equal(t, entities.RoleUser, u.Role)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "a@example.com", u.Email)
}

func TestNotificationsNewestFirstAndMarkAllRead(t *testing.T) {
	ctx := context.Background()
	repo := NewNotificationRepository()

	first := entities.NewNotification("alice", entities.NotificationInfo, "first", "")
	second := entities.NewNotification("alice", entities.NotificationInfo, "second", "")
	second.CreatedAt = first.CreatedAt
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	list, err := repo.ListByUser(ctx, "alice", 20)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Message)

	n, err := repo.MarkAllRead(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	n, err = repo.MarkAllRead(ctx, "alice")
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}
