package cost

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"backend-tripnest/internal/flight"
	"backend-tripnest/internal/itinerary"
)

type Service struct {
	gateway *itinerary.Gateway
	flights flight.Estimator
}

func NewService(gw *itinerary.Gateway, flights flight.Estimator) *Service {
	return &Service{gateway: gw, flights: flights}
}

// Personal computes the requesting user's estimate; an empty userID yields
// the no-context variant used for invitation emails.
func (s *Service) Personal(c *fiber.Ctx, tripID, userID string) (Estimate, error) {
	trip, doc, _, err := s.gateway.Read(c.Context(), tripID)
	if err != nil {
		return Estimate{}, err
	}

	fl := FlightEstimate{}
	if est, err := s.flights.Estimate(c.Context(), trip); err == nil {
		fl = FlightEstimate{Amount: est.Amount, Currency: est.Currency, Available: true}
	}
	return Build(trip, doc, userID, fl), nil
}

func RegisterRoutes(r fiber.Router, svc *Service, authMiddleware fiber.Handler) {
	r.Get("/:id/estimate", authMiddleware, func(c *fiber.Ctx) error {
		uid, _ := c.Locals("user_id").(string)
		est, err := svc.Personal(c, c.Params("id"), uid)
		if err != nil {
			return costError(err)
		}
		return c.JSON(est)
	})

	// No-user-context variant: what joining everything would cost. Used
	// when estimating for someone not yet on the trip.
	r.Get("/:id/estimate/potential", func(c *fiber.Ctx) error {
		est, err := svc.Personal(c, c.Params("id"), "")
		if err != nil {
			return costError(err)
		}
		return c.JSON(est)
	})
}

func costError(err error) error {
	if errors.Is(err, itinerary.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}
	return fiber.NewError(fiber.StatusInternalServerError, err.Error())
}
