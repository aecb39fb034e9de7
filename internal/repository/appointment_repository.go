package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rdvdesk/core/internal/filter"
	"github.com/rdvdesk/core/internal/model"
)

type AppointmentRepository interface {
	// Список записей по запросу фильтра, всегда по возрастанию даты.
	List(ctx context.Context, q filter.Query) ([]model.Appointment, error)
	// Получить запись по ID.
	GetByID(ctx context.Context, id string) (*model.Appointment, error)
	// Сохранить новую запись; ID и отметки времени проставляет хранилище.
	Insert(ctx context.Context, a *model.Appointment) error
	// Агрегированные счётчики по статусам.
	StatsRollup(ctx context.Context) (model.StatsRollup, error)
	// Сменить статус (подтверждение, отмена, неявка).
	UpdateStatus(ctx context.Context, id string, status model.AppointmentStatus, actor string) (*model.Appointment, error)
	// Перенести запись на другую дату/время; статус становится RESCHEDULED.
	Reschedule(ctx context.Context, id, date, tod, actor string) (*model.Appointment, error)
	// Записи в одном из статусов с датой не позже onOrBefore (YYYY-MM-DD).
	ListDue(ctx context.Context, statuses []model.AppointmentStatus, onOrBefore string) ([]model.Appointment, error)
	// Журнал событий записи, от старых к новым.
	Events(ctx context.Context, id string) ([]model.Event, error)
}

// Реализация на GORM.
type GormAppointmentRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

func byDate(tx *gorm.DB) *gorm.DB {
	return tx.
		Order(clause.OrderByColumn{Column: clause.Column{Name: filter.OrderColumn}}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "time"}})
}

func (r *GormAppointmentRepository) List(ctx context.Context, q filter.Query) ([]model.Appointment, error) {
	tx := r.db.WithContext(ctx).Model(&model.Appointment{})
	if len(q.Equals) > 0 {
		where := make(map[string]any, len(q.Equals))
		for col, v := range q.Equals {
			where[col] = v
		}
		tx = tx.Where(where)
	}

	var out []model.Appointment
	if err := byDate(tx).Find(&out).Error; err != nil {
		return nil, storeErr("list appointments", err)
	}
	return q.Refine(out), nil
}

func (r *GormAppointmentRepository) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, storeErr("get appointment", fmt.Errorf("%w: invalid id %q", ErrNotFound, id))
	}
	var a model.Appointment
	if err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error; err != nil {
		return nil, storeErr("get appointment", err)
	}
	return &a, nil
}

func (r *GormAppointmentRepository) Insert(ctx context.Context, a *model.Appointment) error {
	now := r.now()
	a.CreatedAt = now
	a.UpdatedAt = now

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		return tx.Create(newEvent(a.ID, model.EventTypeAppointmentCreated, now, map[string]any{
			"status": a.Status,
		})).Error
	})
	return storeErr("insert appointment", err)
}

func (r *GormAppointmentRepository) StatsRollup(ctx context.Context) (model.StatsRollup, error) {
	var out model.StatsRollup
	err := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Select(`COUNT(*) AS total_appointments,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS confirmed,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS rescheduled,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS no_shows,
			COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS cancelled`,
			model.StatusConfirmed, model.StatusRescheduled, model.StatusNoShow, model.StatusCancelled,
		).
		Scan(&out).Error
	if err != nil {
		return model.StatsRollup{}, storeErr("stats rollup", err)
	}
	return out, nil
}

func (r *GormAppointmentRepository) UpdateStatus(
	ctx context.Context,
	id string,
	status model.AppointmentStatus,
	actor string,
) (*model.Appointment, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", model.ErrUnknownStatus, status)
	}
	return r.mutate(ctx, "update status", id, func(a *model.Appointment) (map[string]any, *model.Event) {
		now := r.now()
		ev := newEvent(a.ID, model.EventTypeAppointmentStatus, now, map[string]any{
			"from":  a.Status,
			"to":    status,
			"actor": actor,
		})
		return map[string]any{"status": status, "updated_at": now}, ev
	})
}

func (r *GormAppointmentRepository) Reschedule(
	ctx context.Context,
	id, date, tod, actor string,
) (*model.Appointment, error) {
	return r.mutate(ctx, "reschedule", id, func(a *model.Appointment) (map[string]any, *model.Event) {
		now := r.now()
		ev := newEvent(a.ID, model.EventTypeAppointmentRescheduled, now, map[string]any{
			"from":  map[string]string{"date": a.Date, "time": a.Time},
			"to":    map[string]string{"date": date, "time": tod},
			"actor": actor,
		})
		return map[string]any{
			"date":       date,
			"time":       tod,
			"status":     model.StatusRescheduled,
			"updated_at": now,
		}, ev
	})
}

// mutate loads the record, applies the update built by fn and writes the
// audit event in one transaction, then returns the fresh row.
func (r *GormAppointmentRepository) mutate(
	ctx context.Context,
	op, id string,
	fn func(a *model.Appointment) (map[string]any, *model.Event),
) (*model.Appointment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, storeErr(op, fmt.Errorf("%w: invalid id %q", ErrNotFound, id))
	}

	var out model.Appointment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur model.Appointment
		if err := tx.First(&cur, "id = ?", id).Error; err != nil {
			return err
		}

		update, ev := fn(&cur)
		if err := tx.Model(&model.Appointment{}).Where("id = ?", id).Updates(update).Error; err != nil {
			return err
		}
		if err := tx.Create(ev).Error; err != nil {
			return err
		}
		return tx.First(&out, "id = ?", id).Error
	})
	if err != nil {
		return nil, storeErr(op, err)
	}
	return &out, nil
}

func (r *GormAppointmentRepository) ListDue(
	ctx context.Context,
	statuses []model.AppointmentStatus,
	onOrBefore string,
) ([]model.Appointment, error) {
	var out []model.Appointment
	tx := r.db.WithContext(ctx).
		Model(&model.Appointment{}).
		Where("status IN ?", statuses).
		Where(clause.Lte{Column: clause.Column{Name: "date"}, Value: onOrBefore})
	if err := byDate(tx).Find(&out).Error; err != nil {
		return nil, storeErr("list due appointments", err)
	}
	return out, nil
}

func (r *GormAppointmentRepository) Events(ctx context.Context, id string) ([]model.Event, error) {
	var out []model.Event
	err := r.db.WithContext(ctx).
		Where("appointment_id = ?", id).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, storeErr("list events", err)
	}
	return out, nil
}

func newEvent(appointmentID uuid.UUID, typ model.EventType, at time.Time, details map[string]any) *model.Event {
	// map of strings and statuses always marshals
	raw, _ := json.Marshal(details)
	return &model.Event{
		EventType:     typ,
		CreatedAt:     at,
		AppointmentID: appointmentID,
		Details:       datatypes.JSON(raw),
	}
}
