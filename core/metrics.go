package core

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis keys for the login counters.
const (
	loginSuccessKey    = "logins:success"
	loginFailureKey    = "logins:failure"
	loginByRolePrefix  = "logins:role:"
	activeSessionsKey  = "sessions:active"
	metricsWriteWindow = 3 * time.Second
)

// RedisCounter is the subset of go-redis used by the metrics service.
type RedisCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// NewRedisClient returns a configured go-redis client from URL (e.g., redis://localhost:6379/0).
func NewRedisClient(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		return nil, errors.New("empty redis url")
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}

// LoginMetrics accumulates login counters in Redis. It is optional: a nil
// *LoginMetrics is safe to call and does nothing, so the login flow never
// depends on Redis being reachable.
type LoginMetrics struct {
	redis RedisCounter
}

func NewLoginMetrics(redis RedisCounter) *LoginMetrics {
	return &LoginMetrics{redis: redis}
}

// MetricsSnapshot is the aggregate the admin endpoint serves.
type MetricsSnapshot struct {
	LoginsSuccess  int64            `json:"logins_success"`
	LoginsFailure  int64            `json:"logins_failure"`
	LoginsByRole   map[string]int64 `json:"logins_by_role"`
	ActiveSessions int64            `json:"active_sessions"`
}

// RecordSuccess bumps the success counter and the per-role counter.
func (m *LoginMetrics) RecordSuccess(ctx context.Context, role string) {
	if m == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, metricsWriteWindow)
	defer cancel()
	_ = m.redis.Incr(ctx, loginSuccessKey).Err()
	_ = m.redis.Incr(ctx, loginByRolePrefix+role).Err()
}

// RecordFailure bumps the failure counter.
func (m *LoginMetrics) RecordFailure(ctx context.Context) {
	if m == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, metricsWriteWindow)
	defer cancel()
	_ = m.redis.Incr(ctx, loginFailureKey).Err()
}

// RecordActiveSessions overwrites the live session gauge.
func (m *LoginMetrics) RecordActiveSessions(ctx context.Context, n int) {
	if m == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, metricsWriteWindow)
	defer cancel()
	_ = m.redis.Set(ctx, activeSessionsKey, n, 0).Err()
}

// Snapshot reads the counters back. Missing keys read as zero.
func (m *LoginMetrics) Snapshot(ctx context.Context) (MetricsSnapshot, error) {
	snap := MetricsSnapshot{LoginsByRole: make(map[string]int64)}

	var err error
	if snap.LoginsSuccess, err = m.readInt(ctx, loginSuccessKey); err != nil {
		return MetricsSnapshot{}, err
	}
	if snap.LoginsFailure, err = m.readInt(ctx, loginFailureKey); err != nil {
		return MetricsSnapshot{}, err
	}
	if snap.ActiveSessions, err = m.readInt(ctx, activeSessionsKey); err != nil {
		return MetricsSnapshot{}, err
	}
	for _, role := range []string{RoleAdmin, RoleSupervisor, RoleUsuario} {
		v, err := m.readInt(ctx, loginByRolePrefix+role)
		if err != nil {
			return MetricsSnapshot{}, err
		}
		snap.LoginsByRole[role] = v
	}
	return snap, nil
}

func (m *LoginMetrics) readInt(ctx context.Context, key string) (int64, error) {
	v, err := m.redis.Get(ctx, key).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, err
	}
	return v, nil
}
