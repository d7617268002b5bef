package roles

import (
	"context"

	"backend-tripnest/internal/db"
)

// Role is the caller's capability set for one trip. Host and participant
// checks live in the itinerary document itself and are evaluated against
// the loaded document by the mutation gateway.
type Role struct {
	UserID  string `json:"user_id"`
	IsOwner bool   `json:"is_owner"`
	IsAdmin bool   `json:"is_admin"`
}

// Resolver answers "what may this user do to this trip". Mutations declare
// their required predicate against the resolved role instead of re-deriving
// owner/admin checks inline.
type Resolver interface {
	Resolve(ctx context.Context, userID, tripID string) (Role, error)
}

type Service struct {
	db db.Querier
}

func NewService(q db.Querier) *Service {
	return &Service{db: q}
}

func (s *Service) Resolve(ctx context.Context, userID, tripID string) (Role, error) {
	role := Role{UserID: userID}
	err := s.db.QueryRow(ctx, `
		SELECT t.owner_id = $1,
		       COALESCE((SELECT is_admin FROM users WHERE id = $1), false)
		FROM trips t WHERE t.id = $2
	`, userID, tripID).Scan(&role.IsOwner, &role.IsAdmin)
	if err != nil {
		return Role{}, err
	}
	return role, nil
}
