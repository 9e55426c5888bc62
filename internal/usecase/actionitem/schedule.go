package actionitem

import "time"

// Slot is one scheduled block
type Slot struct {
	Start time.Time
	End   time.Time
}

// ScheduleBackToBack places blocks of the given minutes one after another
// from startHour on day, in input order. It returns the slots and the cursor
// after the last block.
func ScheduleBackToBack(day time.Time, startHour int, durations []int) ([]Slot, time.Time) {
	y, m, d := day.Date()
	cursor := time.Date(y, m, d, startHour, 0, 0, 0, day.Location())
	slots := make([]Slot, 0, len(durations))
	for _, mins := range durations {
		end := cursor.Add(time.Duration(mins) * time.Minute)
		slots = append(slots, Slot{Start: cursor, End: end})
		cursor = end
	}
	return slots, cursor
}
