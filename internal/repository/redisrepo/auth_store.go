package redisrepo

import (
	"context"
	"errors"
	"time"

	"jobsite-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	resetTokenKeyPrefix = "pwreset:"
	blacklistKeyPrefix  = "rtblock:"
)

type authStore struct {
	client *redis.Client
}

// NewAuthTokenStore stores single-use password-reset tokens and the
// refresh-token blacklist in Redis. TTLs bound every entry, so nothing
// needs explicit cleanup.
func NewAuthTokenStore(client *redis.Client) domain.AuthTokenStore {
	return &authStore{client: client}
}

func (s *authStore) SaveResetToken(ctx context.Context, userUID uuid.UUID, tok string, ttl time.Duration) error {
	return s.client.Set(ctx, resetTokenKeyPrefix+userUID.String(), tok, ttl).Err()
}

// ConsumeResetToken compares and deletes in one round trip so a token can
// be redeemed at most once even under concurrent confirmation attempts.
func (s *authStore) ConsumeResetToken(ctx context.Context, userUID uuid.UUID, tok string) (bool, error) {
	const script = `
if redis.call('GET', KEYS[1]) == ARGV[1] then
    redis.call('DEL', KEYS[1])
    return 1
end
return 0`
	res, err := s.client.Eval(ctx, script, []string{resetTokenKeyPrefix + userUID.String()}, tok).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return res == 1, nil
}

func (s *authStore) BlacklistRefreshToken(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, blacklistKeyPrefix+tokenID, "1", ttl).Err()
}

func (s *authStore) IsRefreshTokenBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, blacklistKeyPrefix+tokenID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
