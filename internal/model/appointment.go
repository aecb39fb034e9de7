package model

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentStatus is driven by external workflows (confirmation, reschedule,
// no-show detection); the core only guarantees the value is one of five.
type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "SCHEDULED"
	StatusConfirmed   AppointmentStatus = "CONFIRMED"
	StatusRescheduled AppointmentStatus = "RESCHEDULED"
	StatusNoShow      AppointmentStatus = "NO_SHOW"
	StatusCancelled   AppointmentStatus = "CANCELLED"
)

// ErrUnknownStatus marks a status value outside the closed set. It is a
// data-integrity error, never a valid state.
var ErrUnknownStatus = errors.New("unknown appointment status")

// Statuses returns every status in declaration order.
func Statuses() []AppointmentStatus {
	return []AppointmentStatus{
		StatusScheduled,
		StatusConfirmed,
		StatusRescheduled,
		StatusNoShow,
		StatusCancelled,
	}
}

func (s AppointmentStatus) Valid() bool {
	return slices.Contains(Statuses(), s)
}

// ParseStatus returns the status for an exact literal.
func ParseStatus(v string) (AppointmentStatus, error) {
	s := AppointmentStatus(v)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, v)
	}
	return s, nil
}

// Language of the client; FR is the default.
type Language string

const (
	LanguageFR Language = "FR"
	LanguageEN Language = "EN"
)

var ErrUnknownLanguage = errors.New("unknown language")

func (l Language) Valid() bool {
	return l == LanguageFR || l == LanguageEN
}

// ParseLanguage maps "" to FR and rejects anything but FR/EN.
func ParseLanguage(v string) (Language, error) {
	if v == "" {
		return LanguageFR, nil
	}
	l := Language(v)
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, v)
	}
	return l, nil
}

// appointments
type Appointment struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	FirstName string `gorm:"type:varchar(255);not null"`
	Phone     string `gorm:"type:varchar(32);not null"`
	Email     string `gorm:"type:varchar(255)"`

	// Calendar date as YYYY-MM-DD and time of day as HH:MM[:SS]. Kept as
	// text: the store does not guarantee they parse, export checks that.
	Date string `gorm:"type:varchar(10);not null;index"`
	Time string `gorm:"type:varchar(8);not null"`

	Location string `gorm:"type:text"`
	// Optional link (visio, map) preferred over Location in calendar files.
	LocationLink string `gorm:"type:text"`
	Advisor      string `gorm:"type:varchar(255);index"`
	Subject      string `gorm:"type:text;not null"`

	Language Language          `gorm:"type:varchar(2);not null;default:'FR'"`
	Status   AppointmentStatus `gorm:"type:varchar(16);not null;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// BeforeCreate assigns the id and defaults the store is responsible for.
func (a *Appointment) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.Status == "" {
		a.Status = StatusScheduled
	}
	if a.Language == "" {
		a.Language = LanguageFR
	}
	if !a.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownStatus, a.Status)
	}
	return nil
}

// AfterFind rejects rows whose status escaped the closed set.
func (a *Appointment) AfterFind(_ *gorm.DB) error {
	if !a.Status.Valid() {
		return fmt.Errorf("appointment %s: %w: %q", a.ID, ErrUnknownStatus, a.Status)
	}
	return nil
}

// DistinctAdvisors returns the distinct non-empty advisors of records in
// first-seen order.
func DistinctAdvisors(records []Appointment) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0)
	for _, a := range records {
		if a.Advisor == "" {
			continue
		}
		if _, ok := seen[a.Advisor]; ok {
			continue
		}
		seen[a.Advisor] = struct{}{}
		out = append(out, a.Advisor)
	}
	return out
}

// StatsRollup is the precomputed counter row maintained by the store.
type StatsRollup struct {
	TotalAppointments int64 `gorm:"column:total_appointments"`
	Confirmed         int64 `gorm:"column:confirmed"`
	Rescheduled       int64 `gorm:"column:rescheduled"`
	NoShows           int64 `gorm:"column:no_shows"`
	Cancelled         int64 `gorm:"column:cancelled"`
}
