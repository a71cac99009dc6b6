package brew

import "time"

// Milestone is one placed stage of a fermentation schedule.
type Milestone struct {
	Name  string
	TempF float64
	Start time.Time
	End   time.Time
}

// PlaceSchedule converts an ordered fermentation schedule into absolute
// milestones by working backward from the serve time: the last step ends at
// serveAt, each earlier step ends where the next begins. The returned slice
// is in chronological (start-to-end) order. An empty schedule yields nil.
func PlaceSchedule(steps []FermentationStep, serveAt time.Time) []Milestone {
	if len(steps) == 0 {
		return nil
	}

	placed := make([]Milestone, len(steps))
	end := serveAt
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		start := end.Add(-time.Duration(step.DurationDays * 24 * float64(time.Hour)))
		placed[i] = Milestone{
			Name:  step.Name,
			TempF: step.TempF,
			Start: start,
			End:   end,
		}
		end = start
	}
	return placed
}
