package controllers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

func HandleHealth(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "ok"})
}

// TransitionTotals reads the per-day pipeline transition tallies.
type TransitionTotals interface {
	Totals(ctx context.Context, day time.Time) (map[string]int64, error)
}

// HandleOutcomeTotals returns today's tallies, or the day given as ?day=YYYY-MM-DD.
func HandleOutcomeTotals(totals TransitionTotals) fiber.Handler {
	return func(c *fiber.Ctx) error {
		day := time.Now().UTC()
		if raw := c.Query("day"); raw != "" {
			parsed, err := time.Parse(time.DateOnly, raw)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid_day"})
			}
			day = parsed
		}

		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		counts, err := totals.Totals(ctx, day)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "counter_unavailable"})
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"day":         day.Format(time.DateOnly),
			"transitions": counts,
		})
	}
}
