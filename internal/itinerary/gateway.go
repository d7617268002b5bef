package itinerary

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"backend-tripnest/internal/roles"
)

// writeAttempts bounds the optimistic-concurrency retry loop. Contention
// beyond this surfaces as ErrConflict for the caller to retry.
const writeAttempts = 3

// Access is the context a mutation's authorization predicate sees: the
// caller's resolved role plus the freshly loaded trip and document, so
// host and participant checks read the same state the mutation will edit.
type Access struct {
	Role roles.Role
	Trip *Trip
	Doc  *Document
}

// Predicate decides whether the caller may run a given mutation.
type Predicate func(Access) bool

// OwnerOrAdmin gates structural edits: schedule, legs, capacity overrides.
func OwnerOrAdmin(a Access) bool {
	return a.Role.IsOwner || a.Role.IsAdmin
}

// Authenticated gates self-service mutations: joining lodging or
// activities, one's own participation and flying flag.
func Authenticated(a Access) bool {
	return a.Role.UserID != ""
}

// LodgingHost additionally admits the participant who proposed the lodging.
func LodgingHost(legIdx int, lodgingID string) Predicate {
	return func(a Access) bool {
		if OwnerOrAdmin(a) {
			return true
		}
		leg, err := a.Doc.Leg(legIdx)
		if err != nil {
			return false
		}
		l, err := leg.Lodging(lodgingID)
		if err != nil {
			return false
		}
		return l.HostID != "" && l.HostID == a.Role.UserID
	}
}

// Mutate applies one change to the loaded document. It reports whether
// anything changed (unchanged documents are not written back) and an
// optional informational note.
type Mutate func(trip *Trip, doc *Document) (changed bool, note string, err error)

// Gateway runs every itinerary mutation: authorize, load, apply against the
// in-memory copy, then commit conditioned on the version token. On a
// version mismatch the mutation is re-applied against the newly loaded
// document up to the retry budget.
type Gateway struct {
	store *Store
	roles roles.Resolver

	// OnCommit, when set, observes every successful write. The live
	// status hub uses it to push updates to subscribers.
	OnCommit func(tripID string, trip Trip, doc Document)
}

func NewGateway(store *Store, resolver roles.Resolver) *Gateway {
	return &Gateway{store: store, roles: resolver}
}

func (g *Gateway) Apply(ctx context.Context, tripID, userID string, allowed Predicate, mutate Mutate) (Result, error) {
	role, err := g.roles.Resolve(ctx, userID, tripID)
	if errors.Is(err, pgx.ErrNoRows) {
		return Result{}, fmt.Errorf("%w: trip %s", ErrNotFound, tripID)
	}
	if err != nil {
		return Result{}, err
	}

	for attempt := 0; attempt < writeAttempts; attempt++ {
		trip, doc, version, err := g.store.Load(ctx, tripID)
		if err != nil {
			return Result{}, err
		}

		if !allowed(Access{Role: role, Trip: &trip, Doc: &doc}) {
			return Result{}, ErrUnauthorized
		}

		changed, note, err := mutate(&trip, &doc)
		if err != nil {
			return Result{}, err
		}
		if !changed {
			return Result{Changed: false, Note: note, Version: version}, nil
		}

		newVersion, err := g.store.Write(ctx, tripID, doc, version)
		if errors.Is(err, ErrConflict) {
			continue
		}
		if err != nil {
			return Result{}, err
		}

		if g.OnCommit != nil {
			g.OnCommit(tripID, trip, doc)
		}
		return Result{Changed: true, Note: note, Version: newVersion}, nil
	}
	return Result{}, ErrConflict
}

// Read loads the document without mutating; pure projections (cost
// estimates, live status) run on the returned copy.
func (g *Gateway) Read(ctx context.Context, tripID string) (Trip, Document, int64, error) {
	return g.store.Load(ctx, tripID)
}
