package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revocationKeyPrefix = "auth:revoked:"

// RevocationStore tracks revoked token IDs in Redis. Entries expire together
// with the token they blacklist, so the set never needs manual cleanup, and
// the state is shared across server instances and survives restarts.
type RevocationStore struct {
	client *redis.Client
}

func NewRevocationStore(client *redis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

func revocationKey(tokenID string) string {
	return revocationKeyPrefix + tokenID
}

// Revoke blacklists a token ID for ttl, the remaining token lifetime.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	return s.client.Set(ctx, revocationKey(tokenID), "1", ttl).Err()
}

// IsRevoked reports whether the token ID is blacklisted. A Redis failure is
// returned to the caller rather than silently treating the token as valid.
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revocationKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
