package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"backend-tripnest/internal/db"
)

// Store reads and writes one trip's itinerary document as a whole. Every
// load returns the row version; every write is a compare-and-swap against
// that version, which is what closes the lost-update window described in
// the concurrency model.
type Store struct {
	db db.Querier
}

func NewStore(q db.Querier) *Store {
	return &Store{db: q}
}

// Load fetches the trip metadata, its itinerary document and the current
// version token.
func (s *Store) Load(ctx context.Context, tripID string) (Trip, Document, int64, error) {
	row := s.db.QueryRow(ctx, `
		SELECT name, owner_id, start_date, end_date, estimated_participants,
		       COALESCE(destination_airport,''), itinerary, version, created_at
		FROM trips WHERE id=$1
	`, tripID)

	trip := Trip{ID: tripID}
	var start, end *time.Time
	var raw []byte
	var version int64
	if err := row.Scan(&trip.Name, &trip.OwnerID, &start, &end, &trip.EstimatedParticipants,
		&trip.AirportCode, &raw, &version, &trip.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Trip{}, Document{}, 0, fmt.Errorf("%w: trip %s", ErrNotFound, tripID)
		}
		return Trip{}, Document{}, 0, fmt.Errorf("load trip %s: %w", tripID, err)
	}
	if start != nil {
		trip.StartDate = start.Format(dateLayout)
	}
	if end != nil {
		trip.EndDate = end.Format(dateLayout)
	}

	var doc Document
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &doc); err != nil {
			return Trip{}, Document{}, 0, fmt.Errorf("decode itinerary for trip %s: %w", tripID, err)
		}
	}
	return trip, doc, version, nil
}

// Write persists the document conditioned on the version token being
// unchanged since load. A zero-row update means another writer got there
// first.
func (s *Store) Write(ctx context.Context, tripID string, doc Document, expectedVersion int64) (int64, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("encode itinerary for trip %s: %w", tripID, err)
	}

	tag, err := s.db.Exec(ctx, `
		UPDATE trips
		SET itinerary=$2, version=version+1, updated_at=now()
		WHERE id=$1 AND version=$3
	`, tripID, raw, expectedVersion)
	if err != nil {
		return 0, err
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrConflict
	}
	return expectedVersion + 1, nil
}
