package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formpdf/pkg/testsupport"
)

type fakeRedis struct {
	data    map[string]string
	ttls    map[string]time.Duration
	failGet error
	closed  bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	val, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(val, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		f.data[key] = string(v)
	case string:
		f.data[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, key := range keys {
		if _, ok := f.data[key]; ok {
			delete(f.data, key)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

func TestRedis_KeyLayoutAndTTL(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	s := newRedisWithClient(client, "formpdf", 10*time.Minute)

	require.NoError(t, s.Save(ctx, "abc", testsupport.ValidRecord()))

	assert.Contains(t, client.data, "formpdf_record:abc")
	assert.Equal(t, 10*time.Minute, client.ttls["formpdf_record:abc"])
	assert.JSONEq(t, `{
		"name": "John Doe",
		"email": "johndoe@gmail.com",
		"phone": "(220) 222-20002",
		"position": "Junior Front end Developer",
		"description": "Built internal dashboards and maintained the design system."
	}`, client.data["formpdf_record:abc"])
}

func TestRedis_LoadAndDelete(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	s := newRedisWithClient(client, "formpdf", time.Minute)

	_, ok, err := s.Load(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok, "redis.Nil maps to not found")

	require.NoError(t, s.Save(ctx, "abc", testsupport.MinimalRecord()))
	rec, ok, err := s.Load(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, testsupport.MinimalRecord(), rec)

	require.NoError(t, s.Delete(ctx, "abc"))
	_, ok, err = s.Load(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, Close(s))
	assert.True(t, client.closed)
}

func TestRedis_Errors(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	s := newRedisWithClient(client, "formpdf", time.Minute)

	client.failGet = errors.New("connection refused")
	_, _, err := s.Load(ctx, "abc")
	assert.ErrorContains(t, err, "connection refused")

	client.failGet = nil
	client.data["formpdf_record:bad"] = "{not json"
	_, _, err = s.Load(ctx, "bad")
	assert.ErrorContains(t, err, "decode record")
}
