package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Options describes the cache server connection.
type Options struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (o Options) Addr() string {
	return fmt.Sprintf("%s:%d", o.Host, o.Port)
}

// SetupCache initializes the shared Redis client. A failed ping is logged, not
// fatal, so the shop keeps serving webhooks while the cache is down.
func SetupCache(opts Options) *redis.Client {
	client = redis.NewClient(&redis.Options{
		Addr:     opts.Addr(),
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	pong, err := client.Ping(ctx).Result()
	if err != nil {
		log.Warnf("Could not connect to cache at %s: %v", opts.Addr(), err)
	} else {
		log.Infof("Successfully connected to cache: %s", pong)
	}
	return client
}

// GetClient returns the shared client, or nil when SetupCache was not called.
func GetClient() *redis.Client {
	return client
}
