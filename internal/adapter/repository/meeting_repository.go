package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// MeetingRepository persists meetings in postgres
type MeetingRepository struct {
	db *gorm.DB
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db *gorm.DB) *MeetingRepository {
	return &MeetingRepository{db: db}
}

func (r *MeetingRepository) Create(ctx context.Context, m *entities.Meeting) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("failed to create meeting: %w", err)
	}
	return nil
}

func (r *MeetingRepository) GetByID(ctx context.Context, userID, id string) (*entities.Meeting, error) {
	var m entities.Meeting
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}
	return &m, nil
}

func (r *MeetingRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Meeting, error) {
	var out []*entities.Meeting
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("meeting_date ASC").
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	return out, nil
}

func (r *MeetingRepository) Update(ctx context.Context, m *entities.Meeting) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ? AND user_id = ?", m.ID, m.UserID).
		Select("meeting_name", "meeting_date", "agenda_id", "status", "automation_used", "calendar_event_ids", "updated_at").
		Updates(m)
	if res.Error != nil {
		return fmt.Errorf("failed to update meeting: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.NewNotFound("meeting", m.ID)
	}
	return nil
}

// UpdateStatus also flags automation_used when the meeting enters processing
func (r *MeetingRepository) UpdateStatus(ctx context.Context, userID, id string, status entities.MeetingStatus) (bool, error) {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if status == entities.MeetingProcessing {
		updates["automation_used"] = true
	}
	res := r.db.WithContext(ctx).
		Model(&entities.Meeting{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)
	if res.Error != nil {
		return false, fmt.Errorf("failed to update meeting status: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *MeetingRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Meeting{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete meeting: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
