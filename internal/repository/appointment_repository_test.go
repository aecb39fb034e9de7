package repository

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/rdvdesk/core/internal/db"
	"github.com/rdvdesk/core/internal/filter"
	"github.com/rdvdesk/core/internal/model"
)

func newTestRepo(t *testing.T) (*GormAppointmentRepository, *gorm.DB) {
	t.Helper()

	gdb, err := db.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := model.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewGormAppointmentRepository(gdb), gdb
}

func seed(t *testing.T, r *GormAppointmentRepository, recs ...model.Appointment) []model.Appointment {
	t.Helper()
	out := make([]model.Appointment, 0, len(recs))
	for i := range recs {
		a := recs[i]
		if err := r.Insert(context.Background(), &a); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
		out = append(out, a)
	}
	return out
}

func appt(name, date, tod, advisor, subject string, status model.AppointmentStatus) model.Appointment {
	return model.Appointment{
		FirstName: name,
		Phone:     "+33 6 12 34 56 78",
		Date:      date,
		Time:      tod,
		Advisor:   advisor,
		Subject:   subject,
		Status:    status,
	}
}

func TestInsert_AssignsIDAndDefaults(t *testing.T) {
	r, _ := newTestRepo(t)

	a := model.Appointment{FirstName: "Marie", Phone: "0612", Date: "2025-03-10", Time: "14:30", Subject: "Bilan"}
	if err := r.Insert(context.Background(), &a); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if a.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatal("id not assigned")
	}
	if a.Status != model.StatusScheduled || a.Language != model.LanguageFR {
		t.Fatalf("defaults: status=%q lang=%q", a.Status, a.Language)
	}

	got, err := r.GetByID(context.Background(), a.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FirstName != "Marie" || got.CreatedAt.IsZero() || got.UpdatedAt.Before(got.CreatedAt) {
		t.Fatalf("unexpected row: %+v", got)
	}

	events, err := r.Events(context.Background(), a.ID.String())
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 1 || events[0].EventType != model.EventTypeAppointmentCreated {
		t.Fatalf("events=%+v", events)
	}
}

func TestInsert_RejectsUnknownStatus(t *testing.T) {
	r, _ := newTestRepo(t)

	a := appt("X", "2025-03-10", "10:00", "", "s", "PENDING")
	err := r.Insert(context.Background(), &a)
	if !errors.Is(err, model.ErrUnknownStatus) {
		t.Fatalf("err=%v, want ErrUnknownStatus", err)
	}
	var se *StoreError
	if !errors.As(err, &se) {
		t.Fatalf("err=%T, want *StoreError", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	r, _ := newTestRepo(t)

	for _, id := range []string{"not-a-uuid", "3f1c2b9e-8a4d-4c1e-9d55-0b6f2a7e1c10"} {
		_, err := r.GetByID(context.Background(), id)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("id %q: err=%v, want ErrNotFound", id, err)
		}
	}
}

func TestList_FiltersAndOrders(t *testing.T) {
	r, _ := newTestRepo(t)
	seed(t, r,
		appt("Zoé", "2025-03-12", "09:00", "Alice", "Retraite", model.StatusConfirmed),
		appt("Marc", "2025-03-10", "15:00", "Alice", "Succession", model.StatusScheduled),
		appt("Anne", "2025-03-10", "09:30", "Bob", "Budget", model.StatusConfirmed),
	)

	all, err := r.List(context.Background(), filter.Translate(nil))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := []string{"Anne", "Marc", "Zoé"}
	if len(all) != len(want) {
		t.Fatalf("len=%d", len(all))
	}
	for i, a := range all {
		if a.FirstName != want[i] {
			t.Fatalf("order[%d]=%s, want %s", i, a.FirstName, want[i])
		}
	}

	got, err := r.List(context.Background(), filter.Translate(&filter.Criteria{
		Status:  string(model.StatusConfirmed),
		Advisor: "Alice",
	}))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].FirstName != "Zoé" {
		t.Fatalf("facet filter: %+v", got)
	}

	got, err = r.List(context.Background(), filter.Translate(&filter.Criteria{Search: "SUCC"}))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].FirstName != "Marc" {
		t.Fatalf("search: %+v", got)
	}

	got, err = r.List(context.Background(), filter.Translate(&filter.Criteria{Date: "2025-01-01"}))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected empty, got %d", len(got))
	}
}

func TestStatsRollup(t *testing.T) {
	r, _ := newTestRepo(t)

	empty, err := r.StatsRollup(context.Background())
	if err != nil {
		t.Fatalf("rollup: %v", err)
	}
	if empty != (model.StatsRollup{}) {
		t.Fatalf("empty rollup=%+v", empty)
	}

	seed(t, r,
		appt("a", "2025-03-10", "09:00", "", "s", model.StatusConfirmed),
		appt("b", "2025-03-10", "10:00", "", "s", model.StatusConfirmed),
		appt("c", "2025-03-10", "11:00", "", "s", model.StatusRescheduled),
		appt("d", "2025-03-10", "12:00", "", "s", model.StatusNoShow),
		appt("e", "2025-03-10", "13:00", "", "s", model.StatusCancelled),
		appt("f", "2025-03-10", "14:00", "", "s", model.StatusScheduled),
	)

	got, err := r.StatsRollup(context.Background())
	if err != nil {
		t.Fatalf("rollup: %v", err)
	}
	want := model.StatsRollup{TotalAppointments: 6, Confirmed: 2, Rescheduled: 1, NoShows: 1, Cancelled: 1}
	if got != want {
		t.Fatalf("rollup=%+v, want %+v", got, want)
	}
}

func TestUpdateStatus(t *testing.T) {
	r, _ := newTestRepo(t)
	recs := seed(t, r, appt("a", "2025-03-10", "09:00", "", "s", model.StatusScheduled))
	id := recs[0].ID.String()

	got, err := r.UpdateStatus(context.Background(), id, model.StatusConfirmed, "advisor")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Status != model.StatusConfirmed {
		t.Fatalf("status=%q", got.Status)
	}
	if got.UpdatedAt.Before(got.CreatedAt) {
		t.Fatalf("updatedAt %v before createdAt %v", got.UpdatedAt, got.CreatedAt)
	}

	events, err := r.Events(context.Background(), id)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 2 || events[1].EventType != model.EventTypeAppointmentStatus {
		t.Fatalf("events=%+v", events)
	}
	var details map[string]string
	if err := json.Unmarshal(events[1].Details, &details); err != nil {
		t.Fatalf("details: %v", err)
	}
	if details["from"] != "SCHEDULED" || details["to"] != "CONFIRMED" || details["actor"] != "advisor" {
		t.Fatalf("details=%v", details)
	}

	if _, err := r.UpdateStatus(context.Background(), id, "DONE", "x"); !errors.Is(err, model.ErrUnknownStatus) {
		t.Fatalf("err=%v, want ErrUnknownStatus", err)
	}
	if _, err := r.UpdateStatus(context.Background(), "3f1c2b9e-8a4d-4c1e-9d55-0b6f2a7e1c10", model.StatusCancelled, "x"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err=%v, want ErrNotFound", err)
	}
}

func TestReschedule(t *testing.T) {
	r, _ := newTestRepo(t)
	recs := seed(t, r, appt("a", "2025-03-10", "09:00", "", "s", model.StatusConfirmed))

	got, err := r.Reschedule(context.Background(), recs[0].ID.String(), "2025-03-17", "11:00", "client")
	if err != nil {
		t.Fatalf("reschedule: %v", err)
	}
	if got.Date != "2025-03-17" || got.Time != "11:00" || got.Status != model.StatusRescheduled {
		t.Fatalf("row=%+v", got)
	}
}

func TestListDue(t *testing.T) {
	r, _ := newTestRepo(t)
	seed(t, r,
		appt("past-scheduled", "2025-03-09", "09:00", "", "s", model.StatusScheduled),
		appt("past-confirmed", "2025-03-09", "10:00", "", "s", model.StatusConfirmed),
		appt("today-rescheduled", "2025-03-10", "08:00", "", "s", model.StatusRescheduled),
		appt("future", "2025-03-11", "09:00", "", "s", model.StatusScheduled),
	)

	got, err := r.ListDue(context.Background(),
		[]model.AppointmentStatus{model.StatusScheduled, model.StatusRescheduled}, "2025-03-10")
	if err != nil {
		t.Fatalf("list due: %v", err)
	}
	if len(got) != 2 || got[0].FirstName != "past-scheduled" || got[1].FirstName != "today-rescheduled" {
		t.Fatalf("due=%+v", got)
	}
}

func TestAfterFind_RejectsCorruptStatus(t *testing.T) {
	r, gdb := newTestRepo(t)
	recs := seed(t, r, appt("a", "2025-03-10", "09:00", "", "s", model.StatusScheduled))

	if err := gdb.Exec("UPDATE appointments SET status = ? WHERE id = ?", "PENDING", recs[0].ID).Error; err != nil {
		t.Fatalf("corrupt: %v", err)
	}

	_, err := r.List(context.Background(), filter.Translate(nil))
	if !errors.Is(err, model.ErrUnknownStatus) {
		t.Fatalf("err=%v, want ErrUnknownStatus", err)
	}
}
