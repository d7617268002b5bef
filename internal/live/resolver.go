// Package live derives "the trip is happening right now" from wall-clock
// time: whether the trip is live and which activity is current or next.
// Pure read-only projection; the clock is injected for testability.
package live

import (
	"time"

	"backend-tripnest/internal/itinerary"
)

const dateLayout = "2006-01-02"

type Status struct {
	Live    bool                         `json:"live"`
	Date    string                       `json:"date,omitempty"`
	Current *itinerary.ScheduledActivity `json:"current,omitempty"`
	Next    *itinerary.ScheduledActivity `json:"next,omitempty"`
}

// IsLive reports whether now falls within [startOfDay(start), endOfDay(end)].
// Either trip date missing means the trip is never live.
func IsLive(trip itinerary.Trip, now time.Time) bool {
	if trip.StartDate == "" || trip.EndDate == "" {
		return false
	}
	start, err := time.ParseInLocation(dateLayout, trip.StartDate, now.Location())
	if err != nil {
		return false
	}
	end, err := time.ParseInLocation(dateLayout, trip.EndDate, now.Location())
	if err != nil {
		return false
	}
	endOfDay := end.Add(24*time.Hour - time.Nanosecond)
	return !now.Before(start) && !now.After(endOfDay)
}

// Resolve computes the full live status. When the trip is live, today's
// schedule (first matching day across legs) yields the current activity
// (last one at or before now) and the next (first one strictly after).
// Both absent is a normal outcome: nothing started yet, or nothing remains.
func Resolve(trip itinerary.Trip, doc itinerary.Document, now time.Time) Status {
	if !IsLive(trip, now) {
		return Status{}
	}

	status := Status{Live: true, Date: now.Format(dateLayout)}
	day := todaySchedule(doc, status.Date)
	if day == nil {
		return status
	}

	day.SortActivities()
	clock := now.Format("15:04")
	for i := range day.Activities {
		a := day.Activities[i]
		if a.Time <= clock {
			status.Current = &day.Activities[i]
		} else {
			status.Next = &day.Activities[i]
			break
		}
	}
	return status
}

// todaySchedule finds the first leg schedule matching today's date. Dates
// are unique within a leg, but two legs can share a date; first match wins.
func todaySchedule(doc itinerary.Document, today string) *itinerary.DailySchedule {
	for li := range doc.Legs {
		if day, ok := doc.Legs[li].Day(today); ok {
			return day
		}
	}
	return nil
}
