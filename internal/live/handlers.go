package live

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"backend-tripnest/internal/itinerary"
)

type Service struct {
	gateway *itinerary.Gateway
	hub     *Hub
	now     func() time.Time
}

func NewService(gw *itinerary.Gateway, hub *Hub, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	s := &Service{gateway: gw, hub: hub, now: now}

	// Every committed itinerary write refreshes subscribers' live view.
	if gw != nil {
		gw.OnCommit = func(tripID string, trip itinerary.Trip, doc itinerary.Document) {
			s.Publish(tripID, trip, doc)
		}
	}
	return s
}

func (s *Service) Status(tripID string, trip itinerary.Trip, doc itinerary.Document) Status {
	return Resolve(trip, doc, s.now())
}

// Publish pushes the trip's current live status to hub subscribers.
func (s *Service) Publish(tripID string, trip itinerary.Trip, doc itinerary.Document) {
	if s.hub == nil {
		return
	}
	payload, err := json.Marshal(s.Status(tripID, trip, doc))
	if err != nil {
		return
	}
	s.hub.Broadcast(tripID, payload)
}

func RegisterRoutes(r fiber.Router, svc *Service) {
	r.Get("/:id/live", func(c *fiber.Ctx) error {
		tripID := c.Params("id")
		trip, doc, _, err := svc.gateway.Read(c.Context(), tripID)
		if err != nil {
			if errors.Is(err, itinerary.ErrNotFound) {
				return fiber.NewError(fiber.StatusNotFound, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(svc.Status(tripID, trip, doc))
	})
}

// RegisterStream mounts the websocket endpoint for live-status pushes.
func RegisterStream(r fiber.Router, hub *Hub) {
	r.Get("/ws/:tripID", websocket.New(func(c *websocket.Conn) {
		tripID := c.Params("tripID")
		client := hub.Register(tripID)
		defer hub.Unregister(client)

		done := make(chan struct{})
		go func() {
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					break
				}
			}
			close(done)
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
		<-done
	}))
}
