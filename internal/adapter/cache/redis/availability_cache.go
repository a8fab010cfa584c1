package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/srgjo27/launch_booking/internal/core/domain"
)

// AvailabilityCache stores the free venue IDs of a date and slot as a JSON
// list under venues:available:<date>:<slot>.
type AvailabilityCache struct {
	client goredis.Cmdable
	ttl    time.Duration
}

func NewAvailabilityCache(client goredis.Cmdable, ttl time.Duration) *AvailabilityCache {
	return &AvailabilityCache{client: client, ttl: ttl}
}

func Key(date domain.Date, slot string) string {
	return fmt.Sprintf("venues:available:%s:%s", date, slot)
}

// GetAvailableVenues reports a miss as ok == false with a nil error.
func (c *AvailabilityCache) GetAvailableVenues(ctx context.Context, date domain.Date, slot string) ([]string, bool, error) {
	key := Key(date, slot)

	raw, err := c.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", key, err)
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return ids, true, nil
}

func (c *AvailabilityCache) SetAvailableVenues(ctx context.Context, date domain.Date, slot string, venueIDs []string) error {
	key := Key(date, slot)

	if venueIDs == nil {
		venueIDs = []string{}
	}
	data, err := json.Marshal(venueIDs)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, string(data), c.ttl).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (c *AvailabilityCache) Invalidate(ctx context.Context, date domain.Date, slot string) error {
	key := Key(date, slot)
	if err := c.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}
