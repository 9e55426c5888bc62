package notification

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Samadhi-12/MinuteMe/internal/adapter/repository/memory"
	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

func TestListCapsAtTwenty(t *testing.T) {
	ctx := context.Background()
	s := NewService(memory.New().Notifications, nil)
	for i := 0; i < 25; i++ {
		s.Notify(ctx, "u1", entities.NotificationInfo, fmt.Sprintf("m%d", i), "")
	}
	s.Notify(ctx, "u2", entities.NotificationInfo, "other", "")

	list, err := s.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, list, ListLimit)
	for _, n := range list {
		assert.Equal(t, "u1", n.UserID)
	}
}

func TestMarkRead(t *testing.T) {
	ctx := context.Background()
	s := NewService(memory.New().Notifications, nil)
	s.Notify(ctx, "u1", entities.NotificationSuccess, MsgAutomationComplete, "m1")

	list, err := s.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)

	require.NoError(t, s.MarkRead(ctx, "u1", list[0].ID))

	var nf *entities.NotFoundError
	assert.True(t, errors.As(s.MarkRead(ctx, "u2", list[0].ID), &nf))
}

func TestFailedMessage(t *testing.T) {
	assert.Equal(t, "❌ Automation failed. Reason: minutes not found", FailedMessage("minutes not found"))
}
