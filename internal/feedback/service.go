package feedback

import (
	"context"
	"errors"

	"backend-tripnest/internal/db"

	"github.com/google/uuid"
)

var ErrAdminRequired = errors.New("admin required")

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

func (s *Service) Create(ctx context.Context, input Entry) (Entry, error) {
	input.ID = uuid.NewString()
	if input.Category == "" {
		input.Category = "general"
	}
	row := s.db.QueryRow(ctx, `
		INSERT INTO feedback (id, user_id, content, category)
		VALUES ($1,$2,$3,$4)
		RETURNING created_at
	`, input.ID, input.UserID, input.Content, input.Category)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Entry{}, err
	}
	return input, nil
}

// List returns visible entries, newest first. Admins also see hidden ones.
func (s *Service) List(ctx context.Context, includeHidden bool) ([]Entry, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, user_id, content, category, hidden, created_at
		FROM feedback
		WHERE hidden = false OR $1
		ORDER BY created_at DESC
	`, includeHidden)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Content, &e.Category, &e.Hidden, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// SetHidden is the moderation action; only admins may call it.
func (s *Service) SetHidden(ctx context.Context, actorID, entryID string, hidden bool) error {
	admin, err := s.isAdmin(ctx, actorID)
	if err != nil {
		return err
	}
	if !admin {
		return ErrAdminRequired
	}
	_, err = s.db.Exec(ctx, `UPDATE feedback SET hidden=$2 WHERE id=$1`, entryID, hidden)
	return err
}

func (s *Service) isAdmin(ctx context.Context, userID string) (bool, error) {
	var admin bool
	err := s.db.QueryRow(ctx, `SELECT COALESCE(is_admin,false) FROM users WHERE id=$1`, userID).Scan(&admin)
	if err != nil {
		return false, err
	}
	return admin, nil
}
