// Package scheduler runs the periodic background jobs: currently the
// invitation-expiry sweep.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"roomies-go/internal/metrics"
	"roomies-go/pkg/logger"
)

type InvitationExpirer interface {
	ExpireOverdue(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron *cron.Cron
	log  logger.Logger
}

func New(invitations InvitationExpirer, sweepInterval time.Duration, log logger.Logger) (*Scheduler, error) {
	c := cron.New()

	_, err := c.AddFunc("@every "+sweepInterval.String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		expired, err := invitations.ExpireOverdue(ctx)
		if err != nil {
			log.InternalError("scheduler: invitation expiry sweep failed", err)
			return
		}
		metrics.ObserveInvitationsExpired(expired)
		if expired > 0 {
			log.Info("scheduler: invitations expired", "count", expired)
		}
	})
	if err != nil {
		return nil, err
	}

	return &Scheduler{cron: c, log: log}, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
