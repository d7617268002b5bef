package trip

// CreateRequest is the payload for creating a trip. The itinerary document
// starts empty and lives and dies with the trip row.
type CreateRequest struct {
	Name                  string `json:"name"`
	OwnerID               string `json:"owner_id"`
	StartDate             string `json:"start_date"`
	EndDate               string `json:"end_date"`
	EstimatedParticipants int    `json:"estimated_participants"`
	AirportCode           string `json:"destination_airport_code"`
}

// UpdateRequest patches trip metadata; zero values leave fields unchanged.
type UpdateRequest struct {
	Name                  string `json:"name"`
	StartDate             string `json:"start_date"`
	EndDate               string `json:"end_date"`
	EstimatedParticipants int    `json:"estimated_participants"`
	AirportCode           string `json:"destination_airport_code"`
}
