// Package repository holds the postgres (GORM) implementations of the domain repositories.
package repository

import (
	"gorm.io/gorm"

	"github.com/Samadhi-12/MinuteMe/internal/domain/repositories"
)

// New wires every postgres repository onto one connection
func New(db *gorm.DB) *repositories.Repositories {
	return &repositories.Repositories{
		Users:         NewUserRepository(db),
		Transcripts:   NewTranscriptRepository(db),
		Minutes:       NewMinutesRepository(db),
		Agendas:       NewAgendaRepository(db),
		ActionItems:   NewActionItemRepository(db),
		Meetings:      NewMeetingRepository(db),
		Notifications: NewNotificationRepository(db),
		Usage:         NewUsageRepository(db),
	}
}
