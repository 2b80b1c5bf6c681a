package ratelimit

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"

	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/cache"
)

// limiterDatabase keeps limiter keys apart from the counters in DB 0.
const limiterDatabase = 2

// NewRedisStorage creates the shared storage for limiter hits so limits hold
// across several shop instances.
func NewRedisStorage(opts cache.Options) fiber.Storage {
	return redis.New(redis.Config{
		Host:     opts.Host,
		Port:     opts.Port,
		Password: opts.Password,
		Database: limiterDatabase,
		Reset:    false,
	})
}

// New limits each client IP to max requests per window. A nil storage keeps
// the hits in process memory.
func New(storage fiber.Storage, max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		Storage:    storage,
		KeyGenerator: func(c *fiber.Ctx) string {
			return "checkout:" + c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error":   "rate_limited",
				"message": "Too many requests, please try again later",
			})
		},
	})
}
