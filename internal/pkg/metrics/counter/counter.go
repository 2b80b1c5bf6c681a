package counter

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/redis/go-redis/v9"

	"github.com/ManuelReschke/SurpriseArtwork/internal/pkg/fulfillment"
)

const (
	transitionsKeyPrefix = "webhook:counters:"
	retention            = 30 * 24 * time.Hour
	writeTimeout         = 500 * time.Millisecond
)

// Reporter tallies pipeline transitions per UTC day in a Redis hash, one
// field per transition.
type Reporter struct {
	rdb redis.Cmdable
	now func() time.Time
}

func NewReporter(rdb redis.Cmdable) *Reporter {
	return &Reporter{rdb: rdb, now: time.Now}
}

// DayKey returns the hash key holding the tallies of the given day.
func DayKey(day time.Time) string {
	return transitionsKeyPrefix + day.UTC().Format("2006-01-02")
}

func (r *Reporter) Report(rep fulfillment.Report) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	key := DayKey(r.now())
	pipe := r.rdb.TxPipeline()
	pipe.HIncrBy(ctx, key, string(rep.Transition), 1)
	pipe.Expire(ctx, key, retention)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warnf("failed to count webhook transition %s: %v", rep.Transition, err)
	}
}

// Totals returns the tallies recorded for day.
func (r *Reporter) Totals(ctx context.Context, day time.Time) (map[string]int64, error) {
	data, err := r.rdb.HGetAll(ctx, DayKey(day)).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(data))
	for k, v := range data {
		n, perr := strconv.ParseInt(v, 10, 64)
		if perr != nil {
			continue
		}
		out[k] = n
	}
	return out, nil
}
