// Package workflow applies the status transitions decided outside the
// record core: advisor confirmation, client reschedule or cancellation and
// no-show detection.
package workflow

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rdvdesk/core/internal/intake"
	"github.com/rdvdesk/core/internal/model"
	"github.com/rdvdesk/core/internal/repository"
)

// Actor recorded for transitions made by the service itself.
const ActorSystem = "system"

type Workflow struct {
	repo repository.AppointmentRepository
	log  zerolog.Logger
}

func New(repo repository.AppointmentRepository, log zerolog.Logger) *Workflow {
	return &Workflow{repo: repo, log: log}
}

// SetStatus moves the appointment to status. Any status may follow any
// other; the only rule is that the value is one of the five.
func (w *Workflow) SetStatus(ctx context.Context, id string, status model.AppointmentStatus, actor string) (*model.Appointment, error) {
	if actor == "" {
		actor = ActorSystem
	}
	if !status.Valid() {
		return nil, fmt.Errorf("set status: %w: %q", model.ErrUnknownStatus, status)
	}

	a, err := w.repo.UpdateStatus(ctx, id, status, actor)
	if err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}
	w.log.Info().
		Str("appointment_id", id).
		Str("status", string(status)).
		Str("actor", actor).
		Msg("status changed")
	return a, nil
}

func (w *Workflow) MarkNoShow(ctx context.Context, id, actor string) (*model.Appointment, error) {
	return w.SetStatus(ctx, id, model.StatusNoShow, actor)
}

// Reschedule moves the appointment to a new date and time and flags it
// RESCHEDULED.
func (w *Workflow) Reschedule(ctx context.Context, id, date, tod, actor string) (*model.Appointment, error) {
	if actor == "" {
		actor = ActorSystem
	}
	if err := intake.ValidateSlot(date, tod); err != nil {
		return nil, err
	}

	a, err := w.repo.Reschedule(ctx, id, date, tod, actor)
	if err != nil {
		return nil, fmt.Errorf("reschedule: %w", err)
	}
	w.log.Info().
		Str("appointment_id", id).
		Str("date", date).
		Str("time", tod).
		Str("actor", actor).
		Msg("appointment rescheduled")
	return a, nil
}
