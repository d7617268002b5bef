package trip

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"backend-tripnest/internal/db"
	"backend-tripnest/internal/itinerary"

	"github.com/google/uuid"
)

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

// Create inserts a trip with an empty itinerary document at version 1.
func (s *Service) Create(ctx context.Context, req CreateRequest) (itinerary.Trip, error) {
	trip := itinerary.Trip{
		ID:                    uuid.NewString(),
		Name:                  req.Name,
		OwnerID:               req.OwnerID,
		StartDate:             req.StartDate,
		EndDate:               req.EndDate,
		EstimatedParticipants: req.EstimatedParticipants,
		AirportCode:           req.AirportCode,
	}
	if trip.EstimatedParticipants <= 0 {
		trip.EstimatedParticipants = 1
	}

	emptyDoc, _ := json.Marshal(itinerary.Document{})

	row := s.db.QueryRow(ctx, `
		INSERT INTO trips (id, name, owner_id, start_date, end_date, estimated_participants, destination_airport, itinerary, version)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,1)
		RETURNING created_at
	`, trip.ID, trip.Name, trip.OwnerID, dateArg(trip.StartDate), dateArg(trip.EndDate),
		trip.EstimatedParticipants, textArg(trip.AirportCode), emptyDoc)
	if err := row.Scan(&trip.CreatedAt); err != nil {
		return itinerary.Trip{}, err
	}
	return trip, nil
}

func (s *Service) Get(ctx context.Context, id string) (itinerary.Trip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, name, owner_id, start_date, end_date, estimated_participants, COALESCE(destination_airport,''), created_at
		FROM trips WHERE id=$1
	`, id)
	var trip itinerary.Trip
	var start, end *time.Time
	if err := row.Scan(&trip.ID, &trip.Name, &trip.OwnerID, &start, &end,
		&trip.EstimatedParticipants, &trip.AirportCode, &trip.CreatedAt); err != nil {
		return itinerary.Trip{}, err
	}
	trip.StartDate = dateString(start)
	trip.EndDate = dateString(end)
	return trip, nil
}

func (s *Service) Update(ctx context.Context, id string, patch UpdateRequest) (itinerary.Trip, error) {
	trip, err := s.Get(ctx, id)
	if err != nil {
		return itinerary.Trip{}, err
	}
	if patch.Name != "" {
		trip.Name = patch.Name
	}
	if patch.StartDate != "" {
		trip.StartDate = patch.StartDate
	}
	if patch.EndDate != "" {
		trip.EndDate = patch.EndDate
	}
	if patch.EstimatedParticipants > 0 {
		trip.EstimatedParticipants = patch.EstimatedParticipants
	}
	if patch.AirportCode != "" {
		if len(patch.AirportCode) != 3 {
			return itinerary.Trip{}, fmt.Errorf("%w: airport code must be 3 letters", itinerary.ErrValidation)
		}
		trip.AirportCode = patch.AirportCode
	}

	_, err = s.db.Exec(ctx, `
		UPDATE trips
		SET name=$2, start_date=$3, end_date=$4, estimated_participants=$5, destination_airport=$6
		WHERE id=$1
	`, trip.ID, trip.Name, dateArg(trip.StartDate), dateArg(trip.EndDate),
		trip.EstimatedParticipants, textArg(trip.AirportCode))
	if err != nil {
		return itinerary.Trip{}, err
	}
	return trip, nil
}

// Delete removes the trip and, with it, the itinerary document.
func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM trips WHERE id=$1`, id)
	return err
}

// Participants reads the trip-level participant list out of the document.
func (s *Service) Participants(ctx context.Context, id string) ([]itinerary.Participant, error) {
	var raw []byte
	if err := s.db.QueryRow(ctx, `SELECT itinerary FROM trips WHERE id=$1`, id).Scan(&raw); err != nil {
		return nil, err
	}
	var doc itinerary.Document
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
	}
	return doc.Participants, nil
}

func dateArg(s string) any {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return t
}

func dateString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func textArg(s string) any {
	if s == "" {
		return nil
	}
	return s
}
