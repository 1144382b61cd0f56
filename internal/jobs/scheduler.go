//go:generate go run go.uber.org/mock/mockgen -source=./scheduler.go -destination=./mocks/scheduler_mock.go -package=mocks
package jobs

import (
	"context"
	"fmt"
	"hotel/config"
	"hotel/infras/otel"
	"hotel/shared/constant"
	"hotel/shared/timezone"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// RecurringExpenses is the part of the expense ledger the scheduler drives.
type RecurringExpenses interface {
	GenerateRecurring(ctx context.Context, today time.Time) (int, error)
}

// Scheduler runs the periodic maintenance jobs of the application.
type Scheduler struct {
	cron     *cron.Cron
	cfg      *config.Config
	expenses RecurringExpenses
	otel     otel.Otel
}

func New(cfg *config.Config, expenses RecurringExpenses, otel otel.Otel) *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(timezone.GetLocation()),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger), cron.Recover(cron.DefaultLogger)),
		),
		cfg:      cfg,
		expenses: expenses,
		otel:     otel,
	}
}

// Start registers the jobs and starts the scheduler. It does nothing when jobs are disabled.
func (s *Scheduler) Start() error {
	if !s.cfg.Jobs.Enable {
		log.Info().Msg("scheduled jobs disabled")

		return nil
	}

	if _, err := s.cron.AddFunc(s.cfg.Jobs.RecurringExpenseSpec, s.GenerateRecurringExpenses); err != nil {
		return fmt.Errorf("failed to schedule recurring expenses: %w", err)
	}

	s.cron.Start()

	log.Info().Str("spec", s.cfg.Jobs.RecurringExpenseSpec).Msg("scheduled jobs started")

	return nil
}

// Stop waits for running jobs until ctx expires.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
		log.Info().Msg("scheduled jobs stopped")
	case <-ctx.Done():
		log.Warn().Msg("scheduled jobs still running at shutdown")
	}
}

// GenerateRecurringExpenses materialises the recurring expenses due today.
func (s *Scheduler) GenerateRecurringExpenses() {
	ctx, scope := s.otel.NewScope(context.Background(), constant.OtelJobScopeName, constant.OtelJobScopeName+".GenerateRecurringExpenses")
	defer scope.End()

	ctx = context.WithValue(ctx, constant.ContextKeyUserID, constant.SystemUser)

	created, err := s.expenses.GenerateRecurring(ctx, timezone.Today())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to generate recurring expenses")

		return
	}

	log.Info().Int("created", created).Msg("recurring expenses generated")
}
