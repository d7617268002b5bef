package itinerary

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// NormalizeDate accepts a plain calendar date or an RFC3339 timestamp and
// returns the YYYY-MM-DD form. Any time component is dropped.
func NormalizeDate(s string) (string, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t.Format(dateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(dateLayout), nil
	}
	return "", fmt.Errorf("%w: bad date %q", ErrValidation, s)
}

// ValidateClock checks an HH:MM 24-hour time-of-day string. Valid values
// sort correctly as plain strings.
func ValidateClock(s string) error {
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("%w: bad time %q", ErrValidation, s)
	}
	return nil
}

// ActivityRef addresses one scheduled activity. The stable ID is preferred;
// Position indexes into the day's time-sorted list and exists only for
// legacy callers whose indexes can go stale under concurrent edits.
type ActivityRef struct {
	ID       string `json:"id,omitempty"`
	Position int    `json:"position"`
}

func (d *Document) Leg(i int) (*Leg, error) {
	if i < 0 || i >= len(d.Legs) {
		return nil, fmt.Errorf("%w: leg %d", ErrNotFound, i)
	}
	return &d.Legs[i], nil
}

// Day returns the leg's schedule entry matching the calendar date, if any.
func (l *Leg) Day(date string) (*DailySchedule, bool) {
	norm, err := NormalizeDate(date)
	if err != nil {
		return nil, false
	}
	for i := range l.Schedule {
		if got, err := NormalizeDate(l.Schedule[i].Date); err == nil && got == norm {
			return &l.Schedule[i], true
		}
	}
	return nil, false
}

// SortActivities re-sorts a day ascending by time. Position-addressed
// operations index into this order, so it runs before every lookup.
func (ds *DailySchedule) SortActivities() {
	sort.SliceStable(ds.Activities, func(i, j int) bool {
		return ds.Activities[i].Time < ds.Activities[j].Time
	})
}

// Activity resolves a ref within a leg's day, preferring the stable ID.
func (l *Leg) Activity(date string, ref ActivityRef) (*ScheduledActivity, error) {
	day, ok := l.Day(date)
	if !ok {
		return nil, fmt.Errorf("%w: no schedule for %s", ErrNotFound, date)
	}
	day.SortActivities()
	if ref.ID != "" {
		for i := range day.Activities {
			if day.Activities[i].ID == ref.ID {
				return &day.Activities[i], nil
			}
		}
		return nil, fmt.Errorf("%w: activity %s", ErrNotFound, ref.ID)
	}
	if ref.Position < 0 || ref.Position >= len(day.Activities) {
		return nil, fmt.Errorf("%w: activity position %d", ErrNotFound, ref.Position)
	}
	return &day.Activities[ref.Position], nil
}

// AddLeg appends a leg after validating its dates.
func (d *Document) AddLeg(leg Leg) error {
	if leg.Name == "" {
		return fmt.Errorf("%w: leg name required", ErrValidation)
	}
	if err := normalizeLegDates(&leg); err != nil {
		return err
	}
	d.Legs = append(d.Legs, leg)
	return nil
}

// UpdateLeg patches leg metadata, leaving schedule and lodging intact.
// Omitted fields keep their current values.
func (d *Document) UpdateLeg(i int, patch Leg) error {
	leg, err := d.Leg(i)
	if err != nil {
		return err
	}
	if err := normalizeLegDates(&patch); err != nil {
		return err
	}
	if patch.Name != "" {
		leg.Name = patch.Name
	}
	if patch.StartDate != "" {
		leg.StartDate = patch.StartDate
	}
	if patch.EndDate != "" {
		leg.EndDate = patch.EndDate
	}
	if patch.Categories != nil {
		leg.Categories = patch.Categories
	}
	return nil
}

// RemoveLeg is unconditional list removal; there is no soft delete.
func (d *Document) RemoveLeg(i int) error {
	if _, err := d.Leg(i); err != nil {
		return err
	}
	d.Legs = append(d.Legs[:i], d.Legs[i+1:]...)
	return nil
}

// AddActivity inserts an activity into the leg's day, creating the day if
// absent. Days stay unique by date; the day stays sorted by time. A fresh
// stable ID is assigned when the caller supplies none.
func (d *Document) AddActivity(legIdx int, date string, a ScheduledActivity) (*ScheduledActivity, error) {
	leg, err := d.Leg(legIdx)
	if err != nil {
		return nil, err
	}
	norm, err := NormalizeDate(date)
	if err != nil {
		return nil, err
	}
	if a.Description == "" {
		return nil, fmt.Errorf("%w: activity description required", ErrValidation)
	}
	if err := ValidateClock(a.Time); err != nil {
		return nil, err
	}
	if a.EstimatedCost < 0 {
		return nil, fmt.Errorf("%w: estimated cost must be non-negative", ErrValidation)
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	day, ok := leg.Day(norm)
	if !ok {
		leg.Schedule = append(leg.Schedule, DailySchedule{Date: norm})
		day = &leg.Schedule[len(leg.Schedule)-1]
	}
	day.Activities = append(day.Activities, a)
	day.SortActivities()
	for i := range day.Activities {
		if day.Activities[i].ID == a.ID {
			return &day.Activities[i], nil
		}
	}
	return nil, fmt.Errorf("%w: activity %s", ErrNotFound, a.ID)
}

// ActivityPatch carries the editable activity fields. The cost is a
// pointer so an explicit zero is distinguishable from an omitted field.
type ActivityPatch struct {
	Time          string   `json:"time"`
	Description   string   `json:"description"`
	LocationName  string   `json:"location_name"`
	VenmoLink     string   `json:"venmo_link"`
	EstimatedCost *float64 `json:"estimated_cost"`
}

// UpdateActivity patches the addressed activity, re-sorting the day when its
// time changes.
func (d *Document) UpdateActivity(legIdx int, date string, ref ActivityRef, patch ActivityPatch) error {
	leg, err := d.Leg(legIdx)
	if err != nil {
		return err
	}
	act, err := leg.Activity(date, ref)
	if err != nil {
		return err
	}
	if patch.Time != "" {
		if err := ValidateClock(patch.Time); err != nil {
			return err
		}
		act.Time = patch.Time
	}
	if patch.Description != "" {
		act.Description = patch.Description
	}
	if patch.LocationName != "" {
		act.LocationName = patch.LocationName
	}
	if patch.VenmoLink != "" {
		act.VenmoLink = patch.VenmoLink
	}
	if patch.EstimatedCost != nil {
		if *patch.EstimatedCost < 0 {
			return fmt.Errorf("%w: estimated cost must be non-negative", ErrValidation)
		}
		act.EstimatedCost = *patch.EstimatedCost
	}
	if day, ok := leg.Day(date); ok {
		day.SortActivities()
	}
	return nil
}

// RemoveActivity deletes the addressed activity; an emptied day is dropped
// from the leg's schedule.
func (d *Document) RemoveActivity(legIdx int, date string, ref ActivityRef) error {
	leg, err := d.Leg(legIdx)
	if err != nil {
		return err
	}
	act, err := leg.Activity(date, ref)
	if err != nil {
		return err
	}
	day, _ := leg.Day(date)
	for i := range day.Activities {
		if day.Activities[i].ID == act.ID {
			day.Activities = append(day.Activities[:i], day.Activities[i+1:]...)
			break
		}
	}
	if len(day.Activities) == 0 {
		for i := range leg.Schedule {
			if &leg.Schedule[i] == day {
				leg.Schedule = append(leg.Schedule[:i], leg.Schedule[i+1:]...)
				break
			}
		}
	}
	return nil
}

// AddPhoto appends a photo URL to the addressed activity.
func (d *Document) AddPhoto(legIdx int, date string, ref ActivityRef, url string) error {
	if url == "" {
		return fmt.Errorf("%w: photo url required", ErrValidation)
	}
	leg, err := d.Leg(legIdx)
	if err != nil {
		return err
	}
	act, err := leg.Activity(date, ref)
	if err != nil {
		return err
	}
	act.Photos = append(act.Photos, url)
	return nil
}

// Lodging finds a lodging by its leg-unique ID.
func (l *Leg) Lodging(id string) (*Lodging, error) {
	for i := range l.Lodgings {
		if l.Lodgings[i].ID == id {
			return &l.Lodgings[i], nil
		}
	}
	return nil, fmt.Errorf("%w: lodging %s", ErrNotFound, id)
}

// AddLodging validates and appends a lodging option proposed by its host.
func (d *Document) AddLodging(legIdx int, lodging Lodging) (*Lodging, error) {
	leg, err := d.Leg(legIdx)
	if err != nil {
		return nil, err
	}
	switch lodging.Type {
	case LodgingHotel, LodgingAirbnb, LodgingOther, LodgingCustom:
	default:
		return nil, fmt.Errorf("%w: bad lodging type %q", ErrValidation, lodging.Type)
	}
	if lodging.Name == "" {
		return nil, fmt.Errorf("%w: lodging name required", ErrValidation)
	}
	if lodging.TotalBedrooms < 0 || lodging.TotalCost < 0 || lodging.CostPerPersonNight < 0 {
		return nil, fmt.Errorf("%w: lodging amounts must be non-negative", ErrValidation)
	}
	if lodging.ID == "" {
		lodging.ID = uuid.NewString()
	}
	lodging.AvailableBedrooms = lodging.TotalBedrooms
	lodging.GuestIDs = nil
	leg.Lodgings = append(leg.Lodgings, lodging)
	return &leg.Lodgings[len(leg.Lodgings)-1], nil
}

// RemoveLodging drops a lodging option from a leg.
func (d *Document) RemoveLodging(legIdx int, lodgingID string) error {
	leg, err := d.Leg(legIdx)
	if err != nil {
		return err
	}
	for i := range leg.Lodgings {
		if leg.Lodgings[i].ID == lodgingID {
			leg.Lodgings = append(leg.Lodgings[:i], leg.Lodgings[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: lodging %s", ErrNotFound, lodgingID)
}

// Participant finds the trip-level participant entry for a user.
func (d *Document) Participant(userID string) (*Participant, bool) {
	for i := range d.Participants {
		if d.Participants[i].UserID == userID {
			return &d.Participants[i], true
		}
	}
	return nil, false
}

// SetParticipant records or updates a user's trip-level participation.
// New entries default to flying.
func (d *Document) SetParticipant(p Participant) error {
	switch p.Status {
	case StatusGoing, StatusDeclined:
	default:
		return fmt.Errorf("%w: bad status %q", ErrValidation, p.Status)
	}
	for _, field := range []string{p.ArrivalDate, p.DepartureDate} {
		if field == "" {
			continue
		}
		if _, err := NormalizeDate(field); err != nil {
			return err
		}
	}
	if existing, ok := d.Participant(p.UserID); ok {
		existing.Status = p.Status
		existing.Guests = p.Guests
		existing.ArrivalDate = p.ArrivalDate
		existing.DepartureDate = p.DepartureDate
		return nil
	}
	p.IsFlying = true
	d.Participants = append(d.Participants, p)
	return nil
}

// SetFlying flips a participant's is_flying flag, creating their entry when
// missing.
func (d *Document) SetFlying(userID string, flying bool) {
	if p, ok := d.Participant(userID); ok {
		p.IsFlying = flying
		return
	}
	d.Participants = append(d.Participants, Participant{UserID: userID, Status: StatusGoing, IsFlying: flying})
}

func normalizeLegDates(leg *Leg) error {
	if leg.StartDate != "" {
		norm, err := NormalizeDate(leg.StartDate)
		if err != nil {
			return err
		}
		leg.StartDate = norm
	}
	if leg.EndDate != "" {
		norm, err := NormalizeDate(leg.EndDate)
		if err != nil {
			return err
		}
		leg.EndDate = norm
	}
	return nil
}
