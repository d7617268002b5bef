// Package cost derives per-person cost estimates from a trip's itinerary
// document. Everything here is a pure projection; nothing mutates the
// document.
package cost

import (
	"time"

	"backend-tripnest/internal/itinerary"
)

// FlightEstimate is the answer from the external flight-price collaborator.
// Available is false when no price could be obtained, which contributes
// zero rather than failing the estimate.
type FlightEstimate struct {
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency,omitempty"`
	Available bool    `json:"available"`
}

// Estimate is the combined per-person picture for one requesting user.
type Estimate struct {
	Flight              float64 `json:"flight"`
	FlightAvailable     bool    `json:"flight_available"`
	LodgingPerPerson    float64 `json:"lodging_per_person"`
	ActivitiesPersonal  float64 `json:"activities_personal"`
	ActivitiesPotential float64 `json:"activities_potential"`
	Total               float64 `json:"total"`
}

// Nights counts whole nights between two calendar dates. Either date
// missing or unparsable, or end before start, counts as zero.
func Nights(startDate, endDate string) int {
	if startDate == "" || endDate == "" {
		return 0
	}
	start, err := time.Parse("2006-01-02", startDate)
	if err != nil {
		return 0
	}
	end, err := time.Parse("2006-01-02", endDate)
	if err != nil {
		return 0
	}
	n := int(end.Sub(start).Hours() / 24)
	if n < 0 {
		return 0
	}
	return n
}

// LegLodgingPerPerson sums the per-person share of every lodging option in
// one leg. Hotels price per person per night against the leg's dates; the
// flat-cost types split the whole-stay cost across the trip's estimated
// head count.
func LegLodgingPerPerson(trip itinerary.Trip, leg itinerary.Leg) float64 {
	heads := trip.EstimatedParticipants
	if heads <= 0 {
		heads = 1
	}
	total := 0.0
	for _, l := range leg.Lodgings {
		if l.Type == itinerary.LodgingHotel {
			total += l.CostPerPersonNight * float64(Nights(leg.StartDate, leg.EndDate))
		} else {
			total += l.TotalCost / float64(heads)
		}
	}
	return total
}

// LodgingPerPerson is the trip-wide lodging estimate per person.
func LodgingPerPerson(trip itinerary.Trip, doc itinerary.Document) float64 {
	total := 0.0
	for _, leg := range doc.Legs {
		total += LegLodgingPerPerson(trip, leg)
	}
	return total
}

// ActivityPotential sums every activity's estimated cost regardless of who
// joined: the cost of participating in everything.
func ActivityPotential(doc itinerary.Document) float64 {
	total := 0.0
	eachActivity(doc, func(a itinerary.ScheduledActivity) {
		total += a.EstimatedCost
	})
	return total
}

// ActivityPersonal sums estimated costs only for activities the user has
// joined.
func ActivityPersonal(doc itinerary.Document, userID string) float64 {
	total := 0.0
	eachActivity(doc, func(a itinerary.ScheduledActivity) {
		for _, id := range a.Participants {
			if id == userID {
				total += a.EstimatedCost
				return
			}
		}
	})
	return total
}

// Build combines the three cost sources for one requesting user. An empty
// userID means no user context (an invitation estimate): activities fall
// back to the full potential and the flight price is included outright,
// since is_flying defaults to true. An all-zero estimate is a valid "no
// cost data yet" answer.
func Build(trip itinerary.Trip, doc itinerary.Document, userID string, flight FlightEstimate) Estimate {
	est := Estimate{
		FlightAvailable:     flight.Available,
		LodgingPerPerson:    LodgingPerPerson(trip, doc),
		ActivitiesPotential: ActivityPotential(doc),
	}

	flying := true
	if userID != "" {
		est.ActivitiesPersonal = ActivityPersonal(doc, userID)
		if p, ok := doc.Participant(userID); ok {
			flying = p.IsFlying
		}
	}
	if flight.Available && flying {
		est.Flight = flight.Amount
	}

	activities := est.ActivitiesPotential
	if userID != "" {
		activities = est.ActivitiesPersonal
	}
	est.Total = est.Flight + est.LodgingPerPerson + activities
	return est
}

func eachActivity(doc itinerary.Document, fn func(itinerary.ScheduledActivity)) {
	for _, leg := range doc.Legs {
		for _, day := range leg.Schedule {
			for _, a := range day.Activities {
				fn(a)
			}
		}
	}
}
