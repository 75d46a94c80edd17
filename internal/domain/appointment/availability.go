package appointment

import "time"

type AvailabilityInput struct {
	Date       time.Time
	ServiceIDs []uint
}

// StudioDay describes the bookable window of one day in the studio timezone.
type StudioDay struct {
	Open  time.Time
	Close time.Time
	Step  time.Duration
}

type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// FreeSlots lists the starts in day, step apart, where an interval of
// duration fits before closing without overlapping any of busy.
// Starts before notBefore are skipped.
func FreeSlots(day StudioDay, duration time.Duration, busy []Interval, notBefore time.Time) []TimeSlot {
	slots := []TimeSlot{}
	if duration <= 0 || day.Step <= 0 {
		return slots
	}

	for cur := day.Open; !cur.Add(duration).After(day.Close); cur = cur.Add(day.Step) {
		if cur.Before(notBefore) {
			continue
		}

		cand := Interval{Start: cur, End: cur.Add(duration)}
		free := true
		for _, b := range busy {
			if cand.Overlaps(b) {
				free = false
				break
			}
		}

		if free {
			slots = append(slots, TimeSlot{Start: cand.Start, End: cand.End})
		}
	}

	return slots
}
