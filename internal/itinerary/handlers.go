package itinerary

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(r fiber.Router, gw *Gateway, authMiddleware fiber.Handler) {
	r.Get("/:id/itinerary", func(c *fiber.Ctx) error {
		trip, doc, version, err := gw.Read(c.Context(), c.Params("id"))
		if err != nil {
			return httpError(err)
		}
		return c.JSON(fiber.Map{"trip": trip, "itinerary": doc, "version": version})
	})

	r.Post("/:id/itinerary/legs", authMiddleware, func(c *fiber.Ctx) error {
		var leg Leg
		if err := c.BodyParser(&leg); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		res, err := gw.Apply(c.Context(), c.Params("id"), userID(c), OwnerOrAdmin,
			func(_ *Trip, doc *Document) (bool, string, error) {
				if err := doc.AddLeg(leg); err != nil {
					return false, "", err
				}
				return true, "", nil
			})
		return respond(c, res, err)
	})

	r.Put("/:id/itinerary/legs/:leg", authMiddleware, func(c *fiber.Ctx) error {
		legIdx, err := legIndex(c)
		if err != nil {
			return err
		}
		var patch Leg
		if err := c.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		res, err := gw.Apply(c.Context(), c.Params("id"), userID(c), OwnerOrAdmin,
			func(_ *Trip, doc *Document) (bool, string, error) {
				if err := doc.UpdateLeg(legIdx, patch); err != nil {
					return false, "", err
				}
				return true, "", nil
			})
		return respond(c, res, err)
	})

	r.Delete("/:id/itinerary/legs/:leg", authMiddleware, func(c *fiber.Ctx) error {
		legIdx, err := legIndex(c)
		if err != nil {
			return err
		}
		res, err := gw.Apply(c.Context(), c.Params("id"), userID(c), OwnerOrAdmin,
			func(_ *Trip, doc *Document) (bool, string, error) {
				if err := doc.RemoveLeg(legIdx); err != nil {
					return false, "", err
				}
				return true, "", nil
			})
		return respond(c, res, err)
	})

	r.Post("/:id/itinerary/legs/:leg/days/:date/activities", authMiddleware, func(c *fiber.Ctx) error {
		legIdx, err := legIndex(c)
		if err != nil {
			return err
		}
		var activity ScheduledActivity
		if err := c.BodyParser(&activity); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		date := c.Params("date")
		res, err := gw.Apply(c.Context(), c.Params("id"), userID(c), OwnerOrAdmin,
			func(_ *Trip, doc *Document) (bool, string, error) {
				if _, err := doc.AddActivity(legIdx, date, activity); err != nil {
					return false, "", err
				}
				return true, "", nil
			})
		return respond(c, res, err)
	})

	r.Put("/:id/itinerary/legs/:leg/days/:date/activities/:activity", authMiddleware, func(c *fiber.Ctx) error {
		legIdx, err := legIndex(c)
		if err != nil {
			return err
		}
		var patch ActivityPatch
		if err := c.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		date, ref := c.Params("date"), parseRef(c.Params("activity"))
		res, err := gw.Apply(c.Context(), c.Params("id"), userID(c), OwnerOrAdmin,
			func(_ *Trip, doc *Document) (bool, string, error) {
				if err := doc.UpdateActivity(legIdx, date, ref, patch); err != nil {
					return false, "", err
				}
				return true, "", nil
			})
		return respond(c, res, err)
	})

	r.Delete("/:id/itinerary/legs/:leg/days/:date/activities/:activity", authMiddleware, func(c *fiber.Ctx) error {
		legIdx, err := legIndex(c)
		if err != nil {
			return err
		}
		date, ref := c.Params("date"), parseRef(c.Params("activity"))
		res, err := gw.Apply(c.Context(), c.Params("id"), userID(c), OwnerOrAdmin,
			func(_ *Trip, doc *Document) (bool, string, error) {
				if err := doc.RemoveActivity(legIdx, date, ref); err != nil {
					return false, "", err
				}
				return true, "", nil
			})
		return respond(c, res, err)
	})

	r.Post("/:id/itinerary/legs/:leg/days/:date/activities/:activity/toggle", authMiddleware, func(c *fiber.Ctx) error {
		legIdx, err := legIndex(c)
		if err != nil {
			return err
		}
		date, ref, uid := c.Params("date"), parseRef(c.Params("activity")), userID(c)
		res, err := gw.Apply(c.Context(), c.Params("id"), uid, Authenticated,
			func(_ *Trip, doc *Document) (bool, string, error) {
				leg, err := doc.Leg(legIdx)
				if err != nil {
					return false, "", err
				}
				act, err := leg.Activity(date, ref)
				if err != nil {
					return false, "", err
				}
				if ToggleActivity(act, uid) {
					return true, "joined", nil
				}
				return true, "left", nil
			})
		return respond(c, res, err)
	})

	r.Post("/:id/itinerary/legs/:leg/days/:date/activities/:activity/photos", authMiddleware, func(c *fiber.Ctx) error {
		legIdx, err := legIndex(c)
		if err != nil {
			return err
		}
		var body struct {
			URL string `json:"url"`
		}
		if err := c.BodyParser(&body); err != nil || body.URL == "" {
			return fiber.NewError(fiber.StatusBadRequest, "url required")
		}
		date, ref := c.Params("date"), parseRef(c.Params("activity"))
		res, err := gw.Apply(c.Context(), c.Params("id"), userID(c), Authenticated,
			func(_ *Trip, doc *Document) (bool, string, error) {
				if err := doc.AddPhoto(legIdx, date, ref, body.URL); err != nil {
					return false, "", err
				}
				return true, "", nil
			})
		return respond(c, res, err)
	})

	r.Post("/:id/itinerary/join-all", authMiddleware, func(c *fiber.Ctx) error {
		uid := userID(c)
		res, err := gw.Apply(c.Context(), c.Params("id"), uid, Authenticated,
			func(_ *Trip, doc *Document) (bool, string, error) {
				if JoinAllActivities(doc, uid) == 0 {
					return false, "already joined all activities", nil
				}
				return true, "", nil
			})
		return respond(c, res, err)
	})

	r.Post("/:id/itinerary/leave-all", authMiddleware, func(c *fiber.Ctx) error {
		uid := userID(c)
		res, err := gw.Apply(c.Context(), c.Params("id"), uid, Authenticated,
			func(_ *Trip, doc *Document) (bool, string, error) {
				if LeaveAllActivities(doc, uid) == 0 {
					return false, "already left all activities", nil
				}
				return true, "", nil
			})
		return respond(c, res, err)
	})

	r.Post("/:id/itinerary/legs/:leg/lodgings", authMiddleware, func(c *fiber.Ctx) error {
		legIdx, err := legIndex(c)
		if err != nil {
			return err
		}
		var lodging Lodging
		if err := c.BodyParser(&lodging); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		uid := userID(c)
		lodging.HostID = uid
		res, err := gw.Apply(c.Context(), c.Params("id"), uid, Authenticated,
			func(_ *Trip, doc *Document) (bool, string, error) {
				if _, err := doc.AddLodging(legIdx, lodging); err != nil {
					return false, "", err
				}
				return true, "", nil
			})
		return respond(c, res, err)
	})

	r.Put("/:id/itinerary/legs/:leg/lodgings/:lodging", authMiddleware, func(c *fiber.Ctx) error {
		legIdx, err := legIndex(c)
		if err != nil {
			return err
		}
		var patch struct {
			Name               string   `json:"name"`
			Address            string   `json:"address"`
			TotalCost          *float64 `json:"total_cost"`
			CostPerPersonNight *float64 `json:"estimated_cost_per_person"`
			TotalBedrooms      *int     `json:"total_bedrooms"`
			AvailableBedrooms  *int     `json:"available_bedrooms"`
			Booked             *bool    `json:"booked"`
		}
		if err := c.BodyParser(&patch); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		lodgingID := c.Params("lodging")
		res, err := gw.Apply(c.Context(), c.Params("id"), userID(c), LodgingHost(legIdx, lodgingID),
			func(_ *Trip, doc *Document) (bool, string, error) {
				leg, err := doc.Leg(legIdx)
				if err != nil {
					return false, "", err
				}
				l, err := leg.Lodging(lodgingID)
				if err != nil {
					return false, "", err
				}
				if patch.Name != "" {
					l.Name = patch.Name
				}
				if patch.Address != "" {
					l.Address = patch.Address
				}
				if patch.TotalCost != nil {
					if *patch.TotalCost < 0 {
						return false, "", ErrValidation
					}
					l.TotalCost = *patch.TotalCost
				}
				if patch.CostPerPersonNight != nil {
					if *patch.CostPerPersonNight < 0 {
						return false, "", ErrValidation
					}
					l.CostPerPersonNight = *patch.CostPerPersonNight
				}
				if patch.Booked != nil {
					l.Booked = *patch.Booked
				}
				if patch.TotalBedrooms != nil || patch.AvailableBedrooms != nil {
					total, available := l.TotalBedrooms, l.AvailableBedrooms
					if patch.TotalBedrooms != nil {
						total = *patch.TotalBedrooms
					}
					if patch.AvailableBedrooms != nil {
						available = *patch.AvailableBedrooms
					}
					SetLodgingCapacity(l, total, available)
				}
				return true, "", nil
			})
		return respond(c, res, err)
	})

	r.Delete("/:id/itinerary/legs/:leg/lodgings/:lodging", authMiddleware, func(c *fiber.Ctx) error {
		legIdx, err := legIndex(c)
		if err != nil {
			return err
		}
		lodgingID := c.Params("lodging")
		res, err := gw.Apply(c.Context(), c.Params("id"), userID(c), LodgingHost(legIdx, lodgingID),
			func(_ *Trip, doc *Document) (bool, string, error) {
				if err := doc.RemoveLodging(legIdx, lodgingID); err != nil {
					return false, "", err
				}
				return true, "", nil
			})
		return respond(c, res, err)
	})

	r.Post("/:id/itinerary/legs/:leg/lodgings/:lodging/join", authMiddleware, func(c *fiber.Ctx) error {
		legIdx, err := legIndex(c)
		if err != nil {
			return err
		}
		lodgingID, uid := c.Params("lodging"), userID(c)
		res, err := gw.Apply(c.Context(), c.Params("id"), uid, Authenticated,
			func(_ *Trip, doc *Document) (bool, string, error) {
				leg, err := doc.Leg(legIdx)
				if err != nil {
					return false, "", err
				}
				l, err := leg.Lodging(lodgingID)
				if err != nil {
					return false, "", err
				}
				joined, err := JoinLodging(l, uid)
				if err != nil {
					return false, "", err
				}
				if !joined {
					return false, "already staying here", nil
				}
				return true, "", nil
			})
		return respond(c, res, err)
	})

	r.Post("/:id/itinerary/legs/:leg/lodgings/:lodging/leave", authMiddleware, func(c *fiber.Ctx) error {
		legIdx, err := legIndex(c)
		if err != nil {
			return err
		}
		lodgingID, uid := c.Params("lodging"), userID(c)
		res, err := gw.Apply(c.Context(), c.Params("id"), uid, Authenticated,
			func(_ *Trip, doc *Document) (bool, string, error) {
				leg, err := doc.Leg(legIdx)
				if err != nil {
					return false, "", err
				}
				l, err := leg.Lodging(lodgingID)
				if err != nil {
					return false, "", err
				}
				if !LeaveLodging(l, uid) {
					return false, "not a guest here", nil
				}
				return true, "", nil
			})
		return respond(c, res, err)
	})

	r.Put("/:id/itinerary/participation", authMiddleware, func(c *fiber.Ctx) error {
		var p Participant
		if err := c.BodyParser(&p); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		uid := userID(c)
		p.UserID = uid
		res, err := gw.Apply(c.Context(), c.Params("id"), uid, Authenticated,
			func(_ *Trip, doc *Document) (bool, string, error) {
				if err := doc.SetParticipant(p); err != nil {
					return false, "", err
				}
				return true, "", nil
			})
		return respond(c, res, err)
	})

	r.Put("/:id/itinerary/flying", authMiddleware, func(c *fiber.Ctx) error {
		var body struct {
			IsFlying bool `json:"is_flying"`
		}
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		uid := userID(c)
		res, err := gw.Apply(c.Context(), c.Params("id"), uid, Authenticated,
			func(_ *Trip, doc *Document) (bool, string, error) {
				doc.SetFlying(uid, body.IsFlying)
				return true, "", nil
			})
		return respond(c, res, err)
	})
}

func userID(c *fiber.Ctx) string {
	uid, _ := c.Locals("user_id").(string)
	return uid
}

func legIndex(c *fiber.Ctx) (int, error) {
	idx, err := strconv.Atoi(c.Params("leg"))
	if err != nil || idx < 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "bad leg index")
	}
	return idx, nil
}

// parseRef treats a purely numeric path segment as a legacy position index
// and anything else as a stable activity ID.
func parseRef(s string) ActivityRef {
	if n, err := strconv.Atoi(s); err == nil {
		return ActivityRef{Position: n}
	}
	return ActivityRef{ID: s}
}

func respond(c *fiber.Ctx, res Result, err error) error {
	if err != nil {
		return httpError(err)
	}
	return c.JSON(res)
}

func httpError(err error) error {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ErrNoCapacity):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, ErrConflict):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, ErrValidation):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
}
