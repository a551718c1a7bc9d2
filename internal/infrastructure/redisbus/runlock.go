package redisbus

import (
	"context"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/punto-venta-api/internal/application/consolidation"
	"github.com/jhoicas/punto-venta-api/internal/domain"
)

const (
	consolidationLockKey = "lock:consolidation"
	consolidationLockTTL = 5 * time.Minute
)

var _ consolidation.RunLock = (*RunLock)(nil)

// RunLock garantiza a lo sumo una corrida de consolidación a la vez entre
// todas las instancias, con un lock distribuido en Redis.
type RunLock struct {
	locker *redislock.Client
}

// NewRunLock construye el run-lock sobre el cliente Redis.
func NewRunLock(client *redis.Client) *RunLock {
	return &RunLock{locker: redislock.New(client)}
}

// Obtain adquiere el lock o falla con domain.ErrConflict si otra corrida lo tiene.
// El TTL cubre la corrida completa; la función devuelta lo libera antes.
func (l *RunLock) Obtain(ctx context.Context) (func(), error) {
	lock, err := l.locker.Obtain(ctx, consolidationLockKey, consolidationLockTTL, nil)
	if err == redislock.ErrNotObtained {
		return nil, fmt.Errorf("%w: hay una consolidación en curso", domain.ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("obtener run-lock: %w", err)
	}
	return func() {
		_ = lock.Release(context.WithoutCancel(ctx))
	}, nil
}
