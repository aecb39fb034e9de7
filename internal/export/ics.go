package export

import (
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/rdvdesk/core/internal/model"
)

const (
	CalendarContentType = "text/calendar"
	CalendarExtension   = "ics"

	DefaultEventDuration = time.Hour
	DefaultProductID     = "-//rdvdesk//Appointment Core//FR"
	DefaultUIDDomain     = "rdvdesk"

	dateLayout = "2006-01-02"
)

var timeLayouts = []string{"15:04", "15:04:05"}

// CalendarFilename suggests the download name for a record's calendar file.
func CalendarFilename(id string) string {
	return "appointment_" + id + "." + CalendarExtension
}

// Calendar renders single-event calendar documents.
type Calendar struct {
	// Location is the zone date+time are expressed in. Nil means time.Local.
	Location *time.Location
	// Duration of the event; DefaultEventDuration when zero.
	Duration  time.Duration
	ProductID string
	UIDDomain string
	// Now stamps DTSTAMP; time.Now when nil.
	Now func() time.Time
}

// Start combines the record's date and time in c.Location.
func (c Calendar) Start(a model.Appointment) (time.Time, error) {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}

	day, err := time.Parse(dateLayout, strings.TrimSpace(a.Date))
	if err != nil {
		return time.Time{}, &FormatError{ID: a.ID.String(), Field: "date", Value: a.Date, Err: err}
	}

	var (
		tod     time.Time
		lastErr error
	)
	for _, layout := range timeLayouts {
		tod, lastErr = time.Parse(layout, strings.TrimSpace(a.Time))
		if lastErr == nil {
			break
		}
	}
	if lastErr != nil {
		return time.Time{}, &FormatError{ID: a.ID.String(), Field: "time", Value: a.Time, Err: lastErr}
	}

	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), tod.Second(), 0, loc), nil
}

// Event renders a as a complete VCALENDAR holding one VEVENT. link, or the
// record's LocationLink when link is empty, takes precedence over Location.
func (c Calendar) Event(a model.Appointment, link string) (string, error) {
	start, err := c.Start(a)
	if err != nil {
		return "", err
	}
	end := start.Add(c.duration())

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(c.productID())

	ev := cal.AddEvent(c.uid(a))
	ev.SetDtStampTime(c.now())
	if !a.CreatedAt.IsZero() {
		ev.SetCreatedTime(a.CreatedAt)
	}
	if !a.UpdatedAt.IsZero() {
		ev.SetModifiedAt(a.UpdatedAt)
	}
	ev.SetStartAt(start)
	ev.SetEndAt(end)
	ev.SetSummary(a.Subject)

	if link == "" {
		link = a.LocationLink
	}
	if where := firstNonEmpty(link, a.Location); where != "" {
		ev.SetLocation(where)
	}
	ev.SetDescription(describe(a, start, end))
	ev.SetStatus(eventStatus(a.Status))

	return cal.Serialize(), nil
}

func (c Calendar) duration() time.Duration {
	if c.Duration > 0 {
		return c.Duration
	}
	return DefaultEventDuration
}

func (c Calendar) productID() string {
	if c.ProductID != "" {
		return c.ProductID
	}
	return DefaultProductID
}

func (c Calendar) uid(a model.Appointment) string {
	domain := c.UIDDomain
	if domain == "" {
		domain = DefaultUIDDomain
	}
	return fmt.Sprintf("%s@%s", a.ID, domain)
}

func (c Calendar) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func describe(a model.Appointment, start, end time.Time) string {
	lines := []string{FormatSlot(start, end, a.Language)}
	if a.Advisor != "" {
		if a.Language == model.LanguageEN {
			lines = append(lines, "Advisor: "+a.Advisor)
		} else {
			lines = append(lines, "Conseiller : "+a.Advisor)
		}
	}
	lines = append(lines, StatusLabel(a.Status, a.Language))
	return strings.Join(lines, "\n")
}

func eventStatus(s model.AppointmentStatus) ical.ObjectStatus {
	switch s {
	case model.StatusConfirmed, model.StatusRescheduled:
		return ical.ObjectStatusConfirmed
	case model.StatusCancelled:
		return ical.ObjectStatusCancelled
	default:
		return ical.ObjectStatusTentative
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
