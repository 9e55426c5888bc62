package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"

	"github.com/Samadhi-12/MinuteMe/internal/domain/entities"
)

// Ids come from a per-user counter so deleted numbers are never handed out again
const nextAgendaIDSQL = `
INSERT INTO agenda_sequences (user_id, last_id, updated_at)
VALUES (?, 1, NOW())
ON CONFLICT (user_id)
DO UPDATE SET last_id = agenda_sequences.last_id + 1, updated_at = NOW()
RETURNING last_id`

// AgendaRepository persists agendas keyed by (user_id, id)
type AgendaRepository struct {
	db *gorm.DB
}

// NewAgendaRepository creates a new agenda repository
func NewAgendaRepository(db *gorm.DB) *AgendaRepository {
	return &AgendaRepository{db: db}
}

// CreateNext takes the user's next sequence number and inserts the agenda in
// the same transaction.
func (r *AgendaRepository) CreateNext(ctx context.Context, a *entities.Agenda) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []int64
		if err := tx.Raw(nextAgendaIDSQL, a.UserID).Scan(&ids).Error; err != nil {
			return fmt.Errorf("failed to allocate agenda id: %w", err)
		}
		if len(ids) == 0 {
			return errors.New("agenda sequence returned no row")
		}
		a.ID = strconv.FormatInt(ids[0], 10)
		if err := tx.Create(a).Error; err != nil {
			return fmt.Errorf("failed to create agenda: %w", err)
		}
		return nil
	})
}

func (r *AgendaRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entities.Agenda{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count agendas: %w", err)
	}
	return count, nil
}

func (r *AgendaRepository) GetByID(ctx context.Context, userID, id string) (*entities.Agenda, error) {
	var a entities.Agenda
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get agenda: %w", err)
	}
	return &a, nil
}

func (r *AgendaRepository) ListByUser(ctx context.Context, userID string) ([]*entities.Agenda, error) {
	var out []*entities.Agenda
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list agendas: %w", err)
	}
	return out, nil
}

func (r *AgendaRepository) Update(ctx context.Context, a *entities.Agenda) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Agenda{}).
		Where("id = ? AND user_id = ?", a.ID, a.UserID).
		Select("meeting_name", "meeting_date", "items", "topics", "discussion_points", "updated_at").
		Updates(a)
	if res.Error != nil {
		return fmt.Errorf("failed to update agenda: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.NewNotFound("agenda", a.ID)
	}
	return nil
}

func (r *AgendaRepository) Delete(ctx context.Context, userID, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Agenda{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete agenda: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
