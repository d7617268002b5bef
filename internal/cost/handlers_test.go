package cost

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"

	"backend-tripnest/internal/flight"
	"backend-tripnest/internal/itinerary"
	"backend-tripnest/internal/roles"
)

type stubResolver struct{}

func (stubResolver) Resolve(_ context.Context, userID, _ string) (roles.Role, error) {
	return roles.Role{UserID: userID}, nil
}

type fakeFlights struct {
	est flight.Estimate
	err error
}

func (f fakeFlights) Estimate(context.Context, itinerary.Trip) (flight.Estimate, error) {
	return f.est, f.err
}

func itineraryRows(doc itinerary.Document) *pgxmock.Rows {
	raw, _ := json.Marshal(doc)
	return pgxmock.NewRows([]string{"name", "owner_id", "start_date", "end_date", "estimated_participants", "destination_airport", "itinerary", "version", "created_at"}).
		AddRow("Bend Trip", "owner-1", (*time.Time)(nil), (*time.Time)(nil), 3, "RDM", raw, int64(1), time.Now())
}

func newCostApp(t *testing.T, flights flight.Estimator) (pgxmock.PgxPoolIface, *fiber.App) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	t.Cleanup(mock.Close)

	gw := itinerary.NewGateway(itinerary.NewStore(mock), stubResolver{})
	app := fiber.New()
	RegisterRoutes(app.Group("/trips"), NewService(gw, flights), func(c *fiber.Ctx) error {
		c.Locals("user_id", "u1")
		return c.Next()
	})
	return mock, app
}

func TestEstimateRoute(t *testing.T) {
	_, doc := estimateDoc()
	mock, app := newCostApp(t, fakeFlights{est: flight.Estimate{Amount: 250, Currency: "USD"}})

	mock.ExpectQuery(`SELECT name, owner_id, start_date, end_date, estimated_participants`).
		WithArgs("trip-1").
		WillReturnRows(itineraryRows(doc))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/trips/trip-1/estimate", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("estimate: %v %d", err, resp.StatusCode)
	}

	var est Estimate
	raw, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(raw, &est); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if est.Flight != 250 || !est.FlightAvailable {
		t.Fatalf("unexpected estimate: %+v", est)
	}
	if est.ActivitiesPersonal != 20 {
		t.Fatalf("unexpected personal activities: %+v", est)
	}
}

func TestEstimateRouteFlightUnavailable(t *testing.T) {
	_, doc := estimateDoc()
	mock, app := newCostApp(t, fakeFlights{err: flight.ErrUnavailable})

	mock.ExpectQuery(`SELECT name, owner_id, start_date, end_date, estimated_participants`).
		WithArgs("trip-1").
		WillReturnRows(itineraryRows(doc))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/trips/trip-1/estimate", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("estimate: %v", err)
	}

	var est Estimate
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &est)
	if est.Flight != 0 || est.FlightAvailable {
		t.Fatalf("unavailable flight should not fail the estimate: %+v", est)
	}
}

func TestPotentialEstimateRoute(t *testing.T) {
	_, doc := estimateDoc()
	mock, app := newCostApp(t, fakeFlights{est: flight.Estimate{Amount: 250}})

	mock.ExpectQuery(`SELECT name, owner_id, start_date, end_date, estimated_participants`).
		WithArgs("trip-1").
		WillReturnRows(itineraryRows(doc))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/trips/trip-1/estimate/potential", nil))
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("potential: %v", err)
	}

	var est Estimate
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &est)
	if est.ActivitiesPersonal != 0 || est.ActivitiesPotential != 70 {
		t.Fatalf("unexpected potential estimate: %+v", est)
	}
}

func TestEstimateRouteTripNotFound(t *testing.T) {
	mock, app := newCostApp(t, fakeFlights{})

	mock.ExpectQuery(`SELECT name, owner_id, start_date, end_date, estimated_participants`).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/trips/missing/estimate", nil))
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}
