package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roomly/infras/otel/mocks"
	"roomly/shared/cache"
)

type cachedRoom struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func TestRedisCache_Save(t *testing.T) {
	db, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(db, mocks.NewOtel())

	mock.ExpectSet("room:get:1", []byte(`{"id":1,"name":"Sea view"}`), 60*time.Second).SetVal("OK")

	err := redisCache.Save(context.Background(), "room:get:1", cachedRoom{ID: 1, Name: "Sea view"}, 60)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_SaveError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(db, mocks.NewOtel())

	mock.ExpectSet("limiter:1", []byte("3"), 10*time.Second).SetErr(errors.New("redis down"))

	err := redisCache.Save(context.Background(), "limiter:1", "3", 10)
	assert.Error(t, err)
}

func TestRedisCache_Get(t *testing.T) {
	db, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(db, mocks.NewOtel())

	mock.ExpectGet("room:get:1").SetVal(`{"id":1,"name":"Sea view"}`)

	var room cachedRoom
	err := redisCache.Get(context.Background(), "room:get:1", &room)
	require.NoError(t, err)
	assert.Equal(t, cachedRoom{ID: 1, Name: "Sea view"}, room)

	mock.ExpectGet("raw").SetVal("plain")

	var raw string
	err = redisCache.Get(context.Background(), "raw", &raw)
	require.NoError(t, err)
	assert.Equal(t, "plain", raw)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_GetMiss(t *testing.T) {
	db, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(db, mocks.NewOtel())

	mock.ExpectGet("room:get:404").RedisNil()

	var room cachedRoom
	err := redisCache.Get(context.Background(), "room:get:404", &room)
	assert.ErrorIs(t, err, cache.Nil)
}

func TestRedisCache_GetInvalidJSON(t *testing.T) {
	db, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(db, mocks.NewOtel())

	mock.ExpectGet("room:get:1").SetVal("not-json")

	var room cachedRoom
	err := redisCache.Get(context.Background(), "room:get:1", &room)
	assert.Error(t, err)
}

func TestRedisCache_Delete(t *testing.T) {
	db, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(db, mocks.NewOtel())

	mock.ExpectDel("room:get:1").SetVal(1)

	assert.NoError(t, redisCache.Delete(context.Background(), "room:get:1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Clear(t *testing.T) {
	db, mock := redismock.NewClientMock()
	redisCache := cache.NewRedisCache(db, mocks.NewOtel())

	mock.ExpectScan(0, "room:gets:*", 100).SetVal([]string{"room:gets:a", "room:gets:b"}, 7)
	mock.ExpectDel("room:gets:a", "room:gets:b").SetVal(2)
	mock.ExpectScan(7, "room:gets:*", 100).SetVal([]string{}, 0)

	assert.NoError(t, redisCache.Clear(context.Background(), "room:gets:*"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisCache_Increment(t *testing.T) {
	t.Run("first hit opens the window", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		redisCache := cache.NewRedisCache(db, mocks.NewOtel())

		mock.ExpectIncr("limiter:1.2.3.4").SetVal(1)
		mock.ExpectExpire("limiter:1.2.3.4", 30*time.Second).SetVal(true)

		count, err := redisCache.Increment(context.Background(), "limiter:1.2.3.4", 30)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("later hits keep the window", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		redisCache := cache.NewRedisCache(db, mocks.NewOtel())

		mock.ExpectIncr("limiter:1.2.3.4").SetVal(4)

		count, err := redisCache.Increment(context.Background(), "limiter:1.2.3.4", 30)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("redis down", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		redisCache := cache.NewRedisCache(db, mocks.NewOtel())

		mock.ExpectIncr("limiter:1.2.3.4").SetErr(errors.New("redis down"))

		_, err := redisCache.Increment(context.Background(), "limiter:1.2.3.4", 30)
		assert.Error(t, err)
	})
}
