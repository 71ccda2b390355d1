package cron

import (
	"context"
	"time"

	"github.com/laundrycare/lce/internal/logger"
	"github.com/laundrycare/lce/internal/service"
	"github.com/robfig/cron/v3"
)

// renewalTimeout bounds one full renewal sweep.
const renewalTimeout = 10 * time.Minute

// RenewalScheduler runs the daily subscription renewal sweep.
type RenewalScheduler struct {
	cron                *cron.Cron
	subscriptionService service.SubscriptionService
	logger              *logger.Logger
}

func NewRenewalScheduler(
	subscriptionService service.SubscriptionService,
	logger *logger.Logger,
) *RenewalScheduler {
	return &RenewalScheduler{
		cron:                cron.New(),
		subscriptionService: subscriptionService,
		logger:              logger,
	}
}

// Setup registers the renewal job. Runs daily at 02:00 server time so
// renewals land before the morning pickup window.
func (s *RenewalScheduler) Setup() error {
	_, err := s.cron.AddFunc("0 2 * * *", s.runRenewals)
	return err
}

func (s *RenewalScheduler) runRenewals() {
	ctx, cancel := context.WithTimeout(context.Background(), renewalTimeout)
	defer cancel()

	s.logger.Infow("starting subscription renewal sweep")

	count, err := s.subscriptionService.ProcessDueRenewals(ctx)
	if err != nil {
		s.logger.Errorw("subscription renewal sweep failed", "error", err)
		return
	}

	s.logger.Infow("completed subscription renewal sweep", "renewed", count)
}

func (s *RenewalScheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *RenewalScheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
