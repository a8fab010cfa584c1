package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/launch_booking/internal/adapter/cache/redis"
	"github.com/srgjo27/launch_booking/internal/core/domain"
)

var launchDate = domain.NewDate(2025, 10, 1)

func TestKey(t *testing.T) {
	assert.Equal(t, "venues:available:2025-10-01:Morning", redis.Key(launchDate, "Morning"))
}

func TestGetAvailableVenues_Hit(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := redis.NewAvailabilityCache(db, time.Minute)

	mockRedis.ExpectGet("venues:available:2025-10-01:Morning").SetVal(`["V001","V003"]`)

	ids, ok, err := cache.GetAvailableVenues(context.Background(), launchDate, "Morning")

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"V001", "V003"}, ids)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestGetAvailableVenues_Miss(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := redis.NewAvailabilityCache(db, time.Minute)

	mockRedis.ExpectGet("venues:available:2025-10-01:Evening").RedisNil()

	ids, ok, err := cache.GetAvailableVenues(context.Background(), launchDate, "Evening")

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, ids)
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestGetAvailableVenues_Errors(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := redis.NewAvailabilityCache(db, time.Minute)

	mockRedis.ExpectGet("venues:available:2025-10-01:Morning").SetErr(errors.New("connection refused"))
	mockRedis.ExpectGet("venues:available:2025-10-01:Afternoon").SetVal("not json")

	_, ok, err := cache.GetAvailableVenues(context.Background(), launchDate, "Morning")
	assert.ErrorContains(t, err, "connection refused")
	assert.False(t, ok)

	_, ok, err = cache.GetAvailableVenues(context.Background(), launchDate, "Afternoon")
	assert.ErrorContains(t, err, "decode venues:available:2025-10-01:Afternoon")
	assert.False(t, ok)

	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestSetAvailableVenues(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := redis.NewAvailabilityCache(db, 5*time.Minute)

	mockRedis.ExpectSet("venues:available:2025-10-01:Morning", `["V002","V004"]`, 5*time.Minute).SetVal("OK")
	mockRedis.ExpectSet("venues:available:2025-10-01:Evening", `[]`, 5*time.Minute).SetVal("OK")

	require.NoError(t, cache.SetAvailableVenues(context.Background(), launchDate, "Morning", []string{"V002", "V004"}))
	require.NoError(t, cache.SetAvailableVenues(context.Background(), launchDate, "Evening", nil))
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}

func TestInvalidate(t *testing.T) {
	db, mockRedis := redismock.NewClientMock()
	cache := redis.NewAvailabilityCache(db, time.Minute)

	mockRedis.ExpectDel("venues:available:2025-10-01:Morning").SetVal(1)
	mockRedis.ExpectDel("venues:available:2025-10-01:Evening").SetErr(errors.New("timeout"))

	require.NoError(t, cache.Invalidate(context.Background(), launchDate, "Morning"))
	assert.ErrorContains(t, cache.Invalidate(context.Background(), launchDate, "Evening"), "timeout")
	assert.NoError(t, mockRedis.ExpectationsWereMet())
}
