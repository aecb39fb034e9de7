package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/rdvdesk/core/internal/export"
	"github.com/rdvdesk/core/internal/intake"
	"github.com/rdvdesk/core/internal/model"
)

// ActorSweeper is recorded on transitions made by the no-show sweep.
const ActorSweeper = "no-show-sweeper"

// sweepTimeout bounds one scheduled run.
const sweepTimeout = time.Minute

// Sweeper flags appointments still SCHEDULED or RESCHEDULED once their start
// plus Grace has passed.
type Sweeper struct {
	flow *Workflow
	cal  export.Calendar
	// Grace after the start before an appointment counts as missed.
	Grace time.Duration
	now   func() time.Time
	log   zerolog.Logger

	cron *cron.Cron
}

// NewSweeper uses cal to turn a record's date and time into an instant, so
// the sweep and the calendar export agree on the zone.
func NewSweeper(flow *Workflow, cal export.Calendar, grace time.Duration, log zerolog.Logger) *Sweeper {
	return &Sweeper{
		flow:  flow,
		cal:   cal,
		Grace: grace,
		now:   time.Now,
		log:   log,
	}
}

func (s *Sweeper) location() *time.Location {
	if s.cal.Location != nil {
		return s.cal.Location
	}
	return time.Local
}

// Sweep runs one pass and returns how many appointments were flagged.
// Records whose date or time does not parse, or whose transition fails, are
// logged and skipped. Only a failed lookup or a done ctx ends the pass early.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	now := s.now()
	today := now.In(s.location()).Format(intake.DateLayout)

	due, err := s.flow.repo.ListDue(ctx,
		[]model.AppointmentStatus{model.StatusScheduled, model.StatusRescheduled},
		today,
	)
	if err != nil {
		return 0, fmt.Errorf("sweep: %w", err)
	}

	flagged := 0
	for _, a := range due {
		start, err := s.cal.Start(a)
		if err != nil {
			s.log.Warn().Err(err).Str("appointment_id", a.ID.String()).Msg("skip unparseable appointment")
			continue
		}
		if !now.After(start.Add(s.Grace)) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return flagged, fmt.Errorf("sweep: %w", err)
		}
		if _, err := s.flow.MarkNoShow(ctx, a.ID.String(), ActorSweeper); err != nil {
			s.log.Error().Err(err).Str("appointment_id", a.ID.String()).Msg("mark no-show failed")
			continue
		}
		flagged++
	}
	return flagged, nil
}

// Start schedules Sweep on spec (standard 5-field cron) in the calendar's
// zone. An empty spec leaves the sweeper idle.
func (s *Sweeper) Start(spec string) error {
	if spec == "" {
		s.log.Info().Msg("no-show sweep disabled")
		return nil
	}

	c := cron.New(cron.WithLocation(s.location()))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
		defer cancel()

		n, err := s.Sweep(ctx)
		if err != nil {
			s.log.Error().Err(err).Msg("no-show sweep failed")
			return
		}
		if n > 0 {
			s.log.Info().Int("flagged", n).Msg("no-show sweep")
		}
	})
	if err != nil {
		return fmt.Errorf("no-show cron %q: %w", spec, err)
	}

	s.cron = c
	c.Start()
	s.log.Info().Str("spec", spec).Msg("no-show sweep scheduled")
	return nil
}

// Stop halts the schedule and returns a context done once a running sweep
// has finished.
func (s *Sweeper) Stop() context.Context {
	if s.cron == nil {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	return s.cron.Stop()
}
