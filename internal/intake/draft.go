// Package intake holds the in-progress appointment draft collected over the
// multi-step intake form and its staged validation.
package intake

import (
	"strings"
	"time"

	"github.com/rdvdesk/core/internal/model"
)

// Field keys used in ValidationError.Fields.
const (
	FieldFirstName = "firstName"
	FieldPhone     = "phone"
	FieldEmail     = "email"
	FieldDate      = "date"
	FieldTime      = "time"
	FieldSubject   = "subject"
	FieldLanguage  = "language"
)

// DateLayout is the calendar date format of drafts and records.
const DateLayout = "2006-01-02"

// Step of the intake form.
type Step int

const (
	StepContact  Step = 1 // firstName, phone, email, language
	StepSchedule Step = 2 // date, time, subject
)

// Draft is a partially filled appointment. Every field is optional until
// Build is called.
type Draft struct {
	FirstName    string `json:"firstName" validate:"required,notblank"`
	Phone        string `json:"phone" validate:"required,notblank,phone"`
	Email        string `json:"email,omitempty" validate:"omitempty,contact_email"`
	Date         string `json:"date" validate:"required,date_ymd"`
	Time         string `json:"time" validate:"required,time_of_day"`
	Location     string `json:"location,omitempty"`
	LocationLink string `json:"locationLink,omitempty"`
	Advisor      string `json:"advisor,omitempty"`
	Subject      string `json:"subject" validate:"required,notblank"`
	Language     string `json:"language,omitempty" validate:"omitempty,oneof=FR EN"`
}

// Struct fields collected at each step.
var stepFields = map[Step][]string{
	StepContact:  {"FirstName", "Phone", "Email", "Language"},
	StepSchedule: {"Date", "Time", "Subject"},
}

// ValidateStep checks only the fields collected at step.
func (d Draft) ValidateStep(step Step) error {
	names, ok := stepFields[step]
	if !ok {
		return nil
	}
	fields := map[string]string{}
	if err := collect(validate.StructPartial(d, names...), fields); err != nil {
		return err
	}
	return newValidationError(fields)
}

// Validate checks every field of the draft and reports all offending
// fields at once.
func (d Draft) Validate() error {
	fields := map[string]string{}
	if err := collect(validate.Struct(d), fields); err != nil {
		return err
	}
	return newValidationError(fields)
}

// ValidateAt runs Validate and CheckNotPast together so a new booking gets
// every field error in one answer.
func (d Draft) ValidateAt(now time.Time, loc *time.Location) error {
	fields := map[string]string{}
	if err := d.Validate(); err != nil {
		ve, ok := AsValidationError(err)
		if !ok {
			return err
		}
		fields = ve.Fields
	}
	if _, bad := fields[FieldDate]; !bad {
		if ve, ok := AsValidationError(d.CheckNotPast(now, loc)); ok {
			for k, v := range ve.Fields {
				fields[k] = v
			}
		}
	}
	return newValidationError(fields)
}

// CheckNotPast enforces the intake rule that a new appointment cannot be
// booked on a day before today in loc. Stored records carry no such rule.
func (d Draft) CheckNotPast(now time.Time, loc *time.Location) error {
	if loc == nil {
		loc = time.Local
	}
	day, err := time.ParseInLocation(DateLayout, d.Date, loc)
	if err != nil {
		return newValidationError(map[string]string{FieldDate: "invalid date"})
	}
	y, m, dd := now.In(loc).Date()
	today := time.Date(y, m, dd, 0, 0, 0, 0, loc)
	if day.Before(today) {
		return newValidationError(map[string]string{FieldDate: "date must not be in the past"})
	}
	return nil
}

// Build validates the draft and converts it into an unsaved record with
// status SCHEDULED. The id and timestamps are left to the store.
func (d Draft) Build() (model.Appointment, error) {
	if err := d.Validate(); err != nil {
		return model.Appointment{}, err
	}
	lang, _ := model.ParseLanguage(d.Language)

	return model.Appointment{
		FirstName:    strings.TrimSpace(d.FirstName),
		Phone:        strings.TrimSpace(d.Phone),
		Email:        strings.TrimSpace(d.Email),
		Date:         d.Date,
		Time:         d.Time,
		Location:     strings.TrimSpace(d.Location),
		LocationLink: strings.TrimSpace(d.LocationLink),
		Advisor:      strings.TrimSpace(d.Advisor),
		Subject:      strings.TrimSpace(d.Subject),
		Language:     lang,
		Status:       model.StatusScheduled,
	}, nil
}

type slot struct {
	Date string `json:"date" validate:"required,date_ymd"`
	Time string `json:"time" validate:"required,time_of_day"`
}

// ValidateSlot checks that date and time are well formed, for callers that
// move an existing appointment rather than fill a draft.
func ValidateSlot(date, tod string) error {
	fields := map[string]string{}
	if err := collect(validate.Struct(slot{Date: date, Time: tod}), fields); err != nil {
		return err
	}
	return newValidationError(fields)
}
