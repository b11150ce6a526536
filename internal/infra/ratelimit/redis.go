package ratelimit

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	"github.com/openlumen/walletd/internal/usecase"
)

// faucetWindow is how long an address stays throttled after a granted
// test-fund request.
const faucetWindow = time.Minute

// RedisFaucetLimiter allows one test-fund request per address per window.
// The first INCR on a key creates it; the expiry is attached in the same
// pipeline so a crash between the two cannot leave a key stuck forever.
type RedisFaucetLimiter struct {
	rdb *redis.Client
}

func NewRedisFaucetLimiter(rdb *redis.Client) *RedisFaucetLimiter {
	return &RedisFaucetLimiter{rdb: rdb}
}

func (l *RedisFaucetLimiter) Allow(ctx context.Context, publicKey string) (bool, error) {
	key := "faucet:" + publicKey

	pipe := l.rdb.TxPipeline()
	count := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, faucetWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, errors.Wrap(err, "failed to check faucet throttle")
	}

	return count.Val() == 1, nil
}

var _ usecase.FaucetLimiter = (*RedisFaucetLimiter)(nil)
