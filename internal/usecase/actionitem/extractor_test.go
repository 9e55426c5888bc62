package actionitem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-10-14 is a Wednesday
var ref = time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)

func TestConjunctionRule(t *testing.T) {
	assert.Empty(t, Extract("John will the budget.", ref), "no action verb")
	assert.Empty(t, Extract("John prepared the budget report.", ref), "no modal")
	assert.Empty(t, Extract("The budget will grow next quarter.", ref), "no owner")

	got := Extract("John will prepare the budget report.", ref)
	require.Len(t, got, 1)
	assert.Equal(t, "John", got[0].Owner)
	assert.Equal(t, "Prepare the budget report", got[0].Task)
	assert.Empty(t, got[0].Deadline)
}

func TestOwnerDetection(t *testing.T) {
	tests := []struct {
		sentence string
		owner    string
	}{
		{"We will ship the beta.", "Team"},
		{"I should email the vendor.", "Speaker"},
		{"You need to update the wiki.", "Attendee"},
		{"The team must fix the login flow.", "Team"},
		{"Mary Jane has to book the venue.", "Mary Jane"},
		{"John and Mary will draft the proposal.", "John and Mary"},
		{"After the sync, Priya will review the contract.", "Priya"},
		{"Next, Omar should migrate the database.", "Omar"},
	}
	for _, tt := range tests {
		t.Run(tt.sentence, func(t *testing.T) {
			got := Extract(tt.sentence, ref)
			require.Len(t, got, 1)
			assert.Equal(t, tt.owner, got[0].Owner)
		})
	}
}

func TestDenylist(t *testing.T) {
	for _, s := range []string{
		"We will have a retro on Friday.",
		"We will focus on onboarding.",
		"There will be cake.",
		"Everyone should attend the demo.",
		"John will not attend.",
	} {
		assert.Empty(t, Extract(s, ref), s)
	}
}

func TestDeadlineIsStrippedFromTask(t *testing.T) {
	got := Extract("Sarah will send the slides by Friday. Tom should also call the client tomorrow.", ref)
	require.Len(t, got, 2)
	assert.Equal(t, "Send the slides", got[0].Task)
	assert.Equal(t, "2026-10-16", got[0].Deadline)
	assert.Equal(t, "Call the client", got[1].Task)
	assert.Equal(t, "2026-10-15", got[1].Deadline)
}

func TestNearDuplicatesCollapse(t *testing.T) {
	got := Extract("John will prepare the budget report. John will prepare the budget reports.", ref)
	assert.Len(t, got, 1)
}

func TestScheduleBackToBack(t *testing.T) {
	day := time.Date(2026, 10, 21, 0, 0, 0, 0, time.UTC)
	slots, end := ScheduleBackToBack(day, 9, []int{20, 15, 10})
	require.Len(t, slots, 3)
	assert.Equal(t, "09:00", slots[0].Start.Format("15:04"))
	assert.Equal(t, "09:20", slots[1].Start.Format("15:04"))
	assert.Equal(t, "09:35", slots[2].Start.Format("15:04"))
	assert.Equal(t, "09:45", end.Format("15:04"))

	// no reordering by duration
	slots, _ = ScheduleBackToBack(day, 9, []int{10, 20, 15})
	assert.Equal(t, "09:10", slots[1].Start.Format("15:04"))
	assert.Equal(t, "09:30", slots[2].Start.Format("15:04"))
}
