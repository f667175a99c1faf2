// Copyright (c) 2026 Inkwell CMS. All rights reserved.

package redis

import (
	stdctx "context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCacheMiss is returned by [GetJSON] when the key is absent or expired.
var ErrCacheMiss = errors.New("redis: cache miss")

// GetJSON reads a key and unmarshals its JSON value into target.
//
// A missing key returns [ErrCacheMiss]. Any other failure is a transport
// error; callers treat the cache as best-effort and fall back to the store.
func GetJSON(context stdctx.Context, client *redis.Client, key string, target interface{}) error {
	raw, err := client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		return err
	}
	return json.Unmarshal(raw, target)
}

// SetJSON marshals value as JSON and stores it under key with the given TTL.
func SetJSON(context stdctx.Context, client *redis.Client, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Set(context, key, raw, ttl).Err()
}

// Invalidate removes the given keys. Missing keys are not an error.
func Invalidate(context stdctx.Context, client *redis.Client, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return client.Del(context, keys...).Err()
}
