package dough

import "time"

// Timeline is the set of absolute milestones for one bake, derived backward
// from the bake time.
type Timeline struct {
	Mix       time.Time
	ColdStart time.Time
	Ball      time.Time
	Bake      time.Time
}

// PlanTimeline places the mix, refrigerate, and ball milestones by walking
// backward from the bake time: balling happens a fixed lead before the bake,
// the cold ferment ends at balling, and the room ferment ends where the cold
// ferment begins.
func PlanTimeline(bakeAt time.Time, ballingLeadHours, coldHours, roomHours float64) Timeline {
	ball := bakeAt.Add(-hours(ballingLeadHours))
	coldStart := ball.Add(-hours(coldHours))
	mix := coldStart.Add(-hours(roomHours))

	return Timeline{
		Mix:       mix,
		ColdStart: coldStart,
		Ball:      ball,
		Bake:      bakeAt,
	}
}

func hours(h float64) time.Duration {
	return time.Duration(h * float64(time.Hour))
}
