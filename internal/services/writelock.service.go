package services

import (
	"context"
	"server/internal/logger"
	. "server/internal/models"
	"time"
)

// WriteLockService serializes every write-handling sequence behind one
// store-wide lock. The lock is coarse on purpose: write volume is
// human-paced form submissions, and full serialization makes the
// matcher-then-write sequence atomic against other writers.
type WriteLockService struct {
	sem     chan struct{}
	timeout time.Duration
	log     logger.Logger
}

func NewWriteLockService(timeout time.Duration) *WriteLockService {
	return &WriteLockService{
		sem:     make(chan struct{}, 1),
		timeout: timeout,
		log:     logger.New("WriteLockService"),
	}
}

// Execute acquires the lock, blocking up to the configured timeout, runs fn,
// and releases on every exit path. On timeout fn never runs and
// ErrLockTimeout is returned.
func (s *WriteLockService) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	timer := time.NewTimer(s.timeout)
	defer timer.Stop()

	select {
	case s.sem <- struct{}{}:
	case <-timer.C:
		s.log.Function("Execute").Warn("write lock acquisition timed out", "timeout", s.timeout)
		return ErrLockTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-s.sem }()

	return fn(ctx)
}
