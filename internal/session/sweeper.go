package session

import (
	"context"
	"log"
	"time"
)

// StartSweeper runs CleanupExpired in a loop until ctx is cancelled.
// One pass runs immediately so a restart clears stale rows right away.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}

	go func() {
		s.sweepOnce()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.sweepOnce()
			}
		}
	}()
}

func (s *Store) sweepOnce() {
	n, err := s.CleanupExpired()
	if err != nil {
		log.Printf("session sweep: %v", err)
		return
	}
	if n > 0 {
		log.Printf("session sweep: removed %d expired session(s)", n)
	}
}
