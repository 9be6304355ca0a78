package utils

import (
	"context"
	"encoding/json"

	"github.com/go-redis/redis/v8"
)

// AuthSession is the cached resolution of a bearer token to an account.
type AuthSession struct {
	AccountID string `json:"accountId"`
	Role      string `json:"role"`
}

func authSessionKey(token string) string {
	return AuthCachePrefix + HashToken(token)
}

// CacheAuthSession stores the token resolution so repeat requests skip the
// account lookup. Failures are ignored; the cache is an optimization only.
func CacheAuthSession(ctx context.Context, token string, session AuthSession) {
	data, err := json.Marshal(session)
	if err != nil {
		return
	}
	if err := GetCacheClient().Set(ctx, authSessionKey(token), data, AuthCacheTTL).Err(); err != nil {
		GetLogger().Sugar().Debugf("failed to cache auth session: %v", err)
	}
}

// GetCachedAuthSession returns the cached resolution for a token, or nil on
// a miss or any cache error.
func GetCachedAuthSession(ctx context.Context, token string) *AuthSession {
	data, err := GetCacheClient().Get(ctx, authSessionKey(token)).Result()
	if err != nil {
		if err != redis.Nil {
			GetLogger().Sugar().Debugf("auth session cache lookup failed: %v", err)
		}
		return nil
	}
	var session AuthSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil
	}
	return &session
}
