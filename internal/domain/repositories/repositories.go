package repositories

// Repositories bundles one backend's implementation of every collection
type Repositories struct {
	Users         UserRepository
	Transcripts   TranscriptRepository
	Minutes       MinutesRepository
	Agendas       AgendaRepository
	ActionItems   ActionItemRepository
	Meetings      MeetingRepository
	Notifications NotificationRepository
	Usage         UsageRepository
}
