package bookings

import (
	"context"
	"time"

	"cinebook/pkg/logger"
)

// ExpiryJob periodically moves active bookings for started shows to
// expired. The database sweep is a single UPDATE, so overlapping runs
// are harmless.
type ExpiryJob struct {
	service  Service
	interval time.Duration
	done     chan struct{}
	log      *logger.Logger
}

func NewExpiryJob(service Service, interval time.Duration) *ExpiryJob {
	if interval <= 0 {
		interval = time.Minute
	}

	return &ExpiryJob{
		service:  service,
		interval: interval,
		done:     make(chan struct{}),
		log:      logger.GetDefault(),
	}
}

// Start runs the sweep loop in a goroutine until Stop is called or the
// context is cancelled. One sweep runs immediately on start so a
// restarted server catches up without waiting a full interval.
func (j *ExpiryJob) Start(ctx context.Context) {
	j.log.Info("starting booking expiry job", "interval", j.interval.String())

	go func() {
		j.sweep(ctx)

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				j.sweep(ctx)
			case <-j.done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (j *ExpiryJob) Stop() {
	close(j.done)
	j.log.Info("booking expiry job stopped")
}

func (j *ExpiryJob) sweep(ctx context.Context) {
	if _, err := j.service.ExpireDue(ctx, time.Now()); err != nil {
		j.log.Error("booking expiry sweep failed", "error", err)
	}
}
