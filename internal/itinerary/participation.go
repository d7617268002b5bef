package itinerary

// Activity participation. Activities have no capacity limit; any
// authenticated user may opt in or out.

// ToggleActivity joins the activity when userID is absent and leaves it
// otherwise. Returns whether the user is a participant afterwards.
func ToggleActivity(a *ScheduledActivity, userID string) bool {
	for i, id := range a.Participants {
		if id == userID {
			a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
			return false
		}
	}
	a.Participants = append(a.Participants, userID)
	return true
}

// JoinAllActivities adds userID to every scheduled activity across every
// leg, returning how many activities changed. Zero means the user had
// already joined everything.
func JoinAllActivities(d *Document, userID string) int {
	changed := 0
	forEachActivity(d, func(a *ScheduledActivity) {
		for _, id := range a.Participants {
			if id == userID {
				return
			}
		}
		a.Participants = append(a.Participants, userID)
		changed++
	})
	return changed
}

// LeaveAllActivities removes userID everywhere, returning how many
// activities changed.
func LeaveAllActivities(d *Document, userID string) int {
	changed := 0
	forEachActivity(d, func(a *ScheduledActivity) {
		for i, id := range a.Participants {
			if id == userID {
				a.Participants = append(a.Participants[:i], a.Participants[i+1:]...)
				changed++
				return
			}
		}
	})
	return changed
}

func forEachActivity(d *Document, fn func(*ScheduledActivity)) {
	for li := range d.Legs {
		for di := range d.Legs[li].Schedule {
			day := &d.Legs[li].Schedule[di]
			for ai := range day.Activities {
				fn(&day.Activities[ai])
			}
		}
	}
}
