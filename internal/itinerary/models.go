package itinerary

import "time"

const (
	LodgingHotel  = "hotel"
	LodgingAirbnb = "airbnb"
	LodgingOther  = "other"
	LodgingCustom = "custom"
)

const (
	StatusGoing    = "going"
	StatusDeclined = "declined"
)

// Trip is the row-level trip metadata; the nested itinerary document is
// stored alongside it as JSONB.
type Trip struct {
	ID                    string    `json:"id"`
	Name                  string    `json:"name"`
	OwnerID               string    `json:"owner_id"`
	StartDate             string    `json:"start_date,omitempty"`
	EndDate               string    `json:"end_date,omitempty"`
	EstimatedParticipants int       `json:"estimated_participants"`
	AirportCode           string    `json:"destination_airport_code,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

// Document is one trip's full itinerary: legs with daily schedules and
// lodging options, plus the trip-level participant list. It is read and
// written as a whole.
type Document struct {
	Legs         []Leg         `json:"legs"`
	Participants []Participant `json:"participants"`
}

type Leg struct {
	Name       string          `json:"name"`
	StartDate  string          `json:"start_date,omitempty"`
	EndDate    string          `json:"end_date,omitempty"`
	Categories []string        `json:"categories,omitempty"`
	Schedule   []DailySchedule `json:"schedule,omitempty"`
	Lodgings   []Lodging       `json:"lodgings,omitempty"`
}

// DailySchedule holds one day's activities. Days are unique by date within
// a leg; activities are kept sorted ascending by time.
type DailySchedule struct {
	Date       string              `json:"date"`
	Activities []ScheduledActivity `json:"activities"`
}

type ScheduledActivity struct {
	ID            string   `json:"id"`
	Time          string   `json:"time"` // HH:MM, 24-hour
	Description   string   `json:"description"`
	LocationName  string   `json:"location_name,omitempty"`
	EstimatedCost float64  `json:"estimated_cost,omitempty"` // per participating person
	VenmoLink     string   `json:"venmo_link,omitempty"`
	Participants  []string `json:"participants,omitempty"`
	Photos        []string `json:"photos,omitempty"`
}

type Lodging struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Address            string   `json:"address,omitempty"`
	Type               string   `json:"type"`
	HostID             string   `json:"host_id"`
	TotalCost          float64  `json:"total_cost,omitempty"`                // whole-stay cost, non-hotel types
	CostPerPersonNight float64  `json:"estimated_cost_per_person,omitempty"` // hotel type
	TotalBedrooms      int      `json:"total_bedrooms"`
	AvailableBedrooms  int      `json:"available_bedrooms"`
	GuestIDs           []string `json:"guest_ids,omitempty"`
	Booked             bool     `json:"booked"`
}

type Participant struct {
	UserID        string           `json:"user_id"`
	Status        string           `json:"status"`
	Guests        []CompanionGuest `json:"guests,omitempty"`
	IsFlying      bool             `json:"is_flying"`
	ArrivalDate   string           `json:"arrival_date,omitempty"`
	DepartureDate string           `json:"departure_date,omitempty"`
}

// CompanionGuest is a named companion not tied to a user account.
type CompanionGuest struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}
