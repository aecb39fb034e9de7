package intake

import (
	"errors"
	"testing"
	"time"

	"github.com/rdvdesk/core/internal/model"
)

func validDraft() Draft {
	return Draft{
		FirstName: "Camille",
		Phone:     "+33 (0)6 12-34-56-78",
		Email:     "camille@example.fr",
		Date:      "2025-03-10",
		Time:      "14:30",
		Location:  "Agence Lyon",
		Advisor:   "Alice",
		Subject:   "Ouverture de compte",
		Language:  "FR",
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	return ve.Fields
}

func TestValidate_OK(t *testing.T) {
	if err := validDraft().Validate(); err != nil {
		t.Fatalf("expected valid draft, got %v", err)
	}
}

func TestValidate_OnlyFirstNameMissing(t *testing.T) {
	d := Draft{FirstName: "", Phone: "555", Date: "2025-01-01", Time: "10:00", Subject: "x"}

	fields := fieldsOf(t, d.Validate())
	if len(fields) != 1 {
		t.Fatalf("expected exactly one field error, got %v", fields)
	}
	if _, ok := fields[FieldFirstName]; !ok {
		t.Fatalf("expected error on %s, got %v", FieldFirstName, fields)
	}
}

func TestValidate_ReportsEveryField(t *testing.T) {
	d := Draft{Phone: "abc", Email: "not-an-email", Subject: "   ", Language: "DE"}

	fields := fieldsOf(t, d.Validate())
	for _, k := range []string{FieldFirstName, FieldPhone, FieldEmail, FieldDate, FieldTime, FieldSubject, FieldLanguage} {
		if _, ok := fields[k]; !ok {
			t.Errorf("expected error on %s, got %v", k, fields)
		}
	}
}

func TestValidate_Phone(t *testing.T) {
	tests := []struct {
		phone string
		ok    bool
	}{
		{"555", true},
		{"+33 6 12 34 56 78", true},
		{"(514) 555-0199", true},
		{"", false},
		{"   ", false},
		{"06.12.34.56.78", false},
		{"call me", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			d := validDraft()
			d.Phone = tt.phone
			err := d.ValidateStep(StepContact)
			if tt.ok && err != nil {
				t.Fatalf("expected valid phone, got %v", err)
			}
			if !tt.ok {
				if _, ok := fieldsOf(t, err)[FieldPhone]; !ok {
					t.Fatalf("expected phone error")
				}
			}
		})
	}
}

func TestValidate_EmailOptional(t *testing.T) {
	d := validDraft()
	d.Email = ""
	if err := d.Validate(); err != nil {
		t.Fatalf("empty email must be accepted, got %v", err)
	}

	d.Email = "a@b"
	if _, ok := fieldsOf(t, d.Validate())[FieldEmail]; !ok {
		t.Fatalf("expected email error for %q", d.Email)
	}
}

func TestValidateStep_OnlyChecksStepFields(t *testing.T) {
	d := Draft{FirstName: "Camille", Phone: "555"}

	if err := d.ValidateStep(StepContact); err != nil {
		t.Fatalf("contact step should pass, got %v", err)
	}

	fields := fieldsOf(t, d.ValidateStep(StepSchedule))
	if len(fields) != 3 {
		t.Fatalf("expected date/time/subject errors, got %v", fields)
	}
}

func TestValidate_RepeatableWithoutMutation(t *testing.T) {
	d := Draft{FirstName: "  ", Phone: "555"}
	before := d

	first := fieldsOf(t, d.Validate())
	second := fieldsOf(t, d.Validate())
	if len(first) != len(second) {
		t.Fatalf("validation not stable: %v vs %v", first, second)
	}
	if d != before {
		t.Fatalf("draft mutated by validation: %+v", d)
	}
}

func TestCheckNotPast(t *testing.T) {
	loc := time.UTC
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, loc)

	d := validDraft()
	d.Date = "2025-03-10"
	if err := d.CheckNotPast(now, loc); err != nil {
		t.Fatalf("today must be accepted, got %v", err)
	}

	d.Date = "2025-03-09"
	if _, ok := fieldsOf(t, d.CheckNotPast(now, loc))[FieldDate]; !ok {
		t.Fatalf("expected date error for yesterday")
	}

	d.Date = "10/03/2025"
	if _, ok := fieldsOf(t, d.CheckNotPast(now, loc))[FieldDate]; !ok {
		t.Fatalf("expected date error for unparseable date")
	}
}

func TestBuild(t *testing.T) {
	d := validDraft()
	d.Language = ""
	d.FirstName = "  Camille "

	a, err := d.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if a.Status != model.StatusScheduled {
		t.Fatalf("status = %s, want SCHEDULED", a.Status)
	}
	if a.Language != model.LanguageFR {
		t.Fatalf("language = %s, want FR", a.Language)
	}
	if a.FirstName != "Camille" {
		t.Fatalf("first name = %q", a.FirstName)
	}
}

func TestBuild_Invalid(t *testing.T) {
	_, err := Draft{}.Build()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
}

func TestValidationError_Message(t *testing.T) {
	err := &ValidationError{Fields: map[string]string{"phone": "b", "date": "a"}}
	want := "validation failed: date: a; phone: b"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestValidateSlot(t *testing.T) {
	if err := ValidateSlot("2025-03-10", "14:30"); err != nil {
		t.Fatalf("valid slot: %v", err)
	}
	if err := ValidateSlot("2025-03-10", "14:30:15"); err != nil {
		t.Fatalf("valid slot with seconds: %v", err)
	}

	err := ValidateSlot("10/03/2025", "25:99")
	ve, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if _, ok := ve.Fields[FieldDate]; !ok {
		t.Fatalf("date not reported: %v", ve.Fields)
	}
	if _, ok := ve.Fields[FieldTime]; !ok {
		t.Fatalf("time not reported: %v", ve.Fields)
	}
}

func TestValidate_MalformedDateAndTime(t *testing.T) {
	d := validDraft()
	d.Date = "10/03/2025"
	d.Time = "25:99"

	fields := fieldsOf(t, d.Validate())
	if fields[FieldDate] != "date must be YYYY-MM-DD" || fields[FieldTime] != "time must be HH:MM or HH:MM:SS" {
		t.Fatalf("fields=%v", fields)
	}

	fields = fieldsOf(t, d.ValidateStep(StepSchedule))
	if len(fields) != 2 {
		t.Fatalf("schedule step: %v", fields)
	}
}

func TestValidate_TimeWithSeconds(t *testing.T) {
	d := validDraft()
	d.Time = "14:30:00"
	if err := d.Validate(); err != nil {
		t.Fatalf("HH:MM:SS must be accepted, got %v", err)
	}
}

func TestValidateAt_MergesPastDate(t *testing.T) {
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	d := validDraft()
	d.FirstName = ""
	d.Date = "2025-03-01"

	fields := fieldsOf(t, d.ValidateAt(now, time.UTC))
	if len(fields) != 2 {
		t.Fatalf("expected firstName and date errors together, got %v", fields)
	}
	if fields[FieldDate] != "date must not be in the past" {
		t.Fatalf("date message=%q", fields[FieldDate])
	}

	d = validDraft()
	d.Date = "2025-13-40"
	fields = fieldsOf(t, d.ValidateAt(now, time.UTC))
	if fields[FieldDate] != "date must be YYYY-MM-DD" {
		t.Fatalf("format error must win over past check: %v", fields)
	}

	if err := validDraft().ValidateAt(now, time.UTC); err != nil {
		t.Fatalf("valid draft on its day: %v", err)
	}
}

func TestValidate_Messages(t *testing.T) {
	d := Draft{Phone: "abc", Email: "x@y", Language: "DE", Subject: "   "}
	fields := fieldsOf(t, d.Validate())

	want := map[string]string{
		FieldFirstName: "first name is required",
		FieldPhone:     "invalid phone number",
		FieldEmail:     "invalid email",
		FieldDate:      "date is required",
		FieldTime:      "time is required",
		FieldSubject:   "subject is required",
		FieldLanguage:  "language must be FR or EN",
	}
	for k, v := range want {
		if fields[k] != v {
			t.Errorf("%s: got %q, want %q", k, fields[k], v)
		}
	}
}
