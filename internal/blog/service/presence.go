package service

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPresenceTTL is how long a heartbeat keeps a user "online".
const DefaultPresenceTTL = 5 * time.Minute

// PresenceService tracks which users are active, backed by a Redis TTL
// store. The nil-client degraded mode reports everyone offline so requests
// never fail on a missing Redis.
type PresenceService struct {
	Client *redis.Client
	TTL    time.Duration
}

func presenceKey(userID string) string { return "presence:" + userID }

// Touch records a heartbeat for userID, resetting its TTL.
func (s *PresenceService) Touch(ctx context.Context, userID string) error {
	if s.Client == nil || userID == "" {
		return nil
	}
	return s.Client.Set(ctx, presenceKey(userID),
		time.Now().UTC().Format(time.RFC3339), s.ttl()).Err()
}

// Online reports whether userID has a live heartbeat.
func (s *PresenceService) Online(ctx context.Context, userID string) (bool, error) {
	if s.Client == nil {
		return false, nil
	}
	n, err := s.Client.Exists(ctx, presenceKey(userID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// LastActive returns the most recent heartbeat time for userID. The second
// return is false when the user is offline.
func (s *PresenceService) LastActive(ctx context.Context, userID string) (time.Time, bool, error) {
	if s.Client == nil {
		return time.Time{}, false, nil
	}
	raw, err := s.Client.Get(ctx, presenceKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, err
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false, err
	}
	return t, true, nil
}

// Snapshot returns the last-active time for every listed user that is
// currently online.
func (s *PresenceService) Snapshot(ctx context.Context, userIDs []string) (map[string]time.Time, error) {
	out := make(map[string]time.Time, len(userIDs))
	if s.Client == nil || len(userIDs) == 0 {
		return out, nil
	}

	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = presenceKey(id)
	}
	vals, err := s.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			continue
		}
		out[userIDs[i]] = t
	}
	return out, nil
}

func (s *PresenceService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultPresenceTTL
}
