package trip

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"backend-tripnest/internal/itinerary"
	"backend-tripnest/internal/roles"
)

func RegisterRoutes(r fiber.Router, svc *Service, resolver roles.Resolver, authMiddleware fiber.Handler) {
	r.Post("/", authMiddleware, func(c *fiber.Ctx) error {
		var req CreateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if req.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "name required")
		}
		req.OwnerID, _ = c.Locals("user_id").(string)
		trip, err := svc.Create(c.Context(), req)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.Status(fiber.StatusCreated).JSON(trip)
	})

	r.Get("/:id", func(c *fiber.Ctx) error {
		trip, err := svc.Get(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "trip not found")
		}
		return c.JSON(trip)
	})

	r.Put("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := requireOwnerOrAdmin(c, resolver); err != nil {
			return err
		}
		var req UpdateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		trip, err := svc.Update(c.Context(), c.Params("id"), req)
		if err != nil {
			if errors.Is(err, itinerary.ErrValidation) {
				return fiber.NewError(fiber.StatusBadRequest, err.Error())
			}
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.JSON(trip)
	})

	r.Delete("/:id", authMiddleware, func(c *fiber.Ctx) error {
		if err := requireOwnerOrAdmin(c, resolver); err != nil {
			return err
		}
		if err := svc.Delete(c.Context(), c.Params("id")); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, err.Error())
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	r.Get("/:id/participants", func(c *fiber.Ctx) error {
		participants, err := svc.Participants(c.Context(), c.Params("id"))
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "trip not found")
		}
		return c.JSON(participants)
	})
}

func requireOwnerOrAdmin(c *fiber.Ctx, resolver roles.Resolver) error {
	uid, _ := c.Locals("user_id").(string)
	role, err := resolver.Resolve(c.Context(), uid, c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "trip not found")
	}
	if !role.IsOwner && !role.IsAdmin {
		return fiber.NewError(fiber.StatusForbidden, "owner or admin required")
	}
	return nil
}
