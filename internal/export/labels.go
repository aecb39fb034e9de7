package export

import (
	"fmt"
	"time"

	"github.com/rdvdesk/core/internal/model"
)

var frWeekdays = map[time.Weekday]string{
	time.Monday:    "Lundi",
	time.Tuesday:   "Mardi",
	time.Wednesday: "Mercredi",
	time.Thursday:  "Jeudi",
	time.Friday:    "Vendredi",
	time.Saturday:  "Samedi",
	time.Sunday:    "Dimanche",
}

var statusLabels = map[model.Language]map[model.AppointmentStatus]string{
	model.LanguageFR: {
		model.StatusScheduled:   "Planifié",
		model.StatusConfirmed:   "Confirmé",
		model.StatusRescheduled: "Reprogrammé",
		model.StatusNoShow:      "Absent",
		model.StatusCancelled:   "Annulé",
	},
	model.LanguageEN: {
		model.StatusScheduled:   "Scheduled",
		model.StatusConfirmed:   "Confirmed",
		model.StatusRescheduled: "Rescheduled",
		model.StatusNoShow:      "No-show",
		model.StatusCancelled:   "Cancelled",
	},
}

// StatusLabel returns the display label of s in lang (FR when lang is
// unknown, the raw literal when s is).
func StatusLabel(s model.AppointmentStatus, lang model.Language) string {
	labels, ok := statusLabels[lang]
	if !ok {
		labels = statusLabels[model.LanguageFR]
	}
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// FormatSlot renders a slot as "Lundi, 10.03.2025, 14:30–15:30" (FR) or
// "Monday, Mar 10 2025, 14:30–15:30" (EN), in the zone of start.
func FormatSlot(start, end time.Time, lang model.Language) string {
	if lang == model.LanguageEN {
		return fmt.Sprintf("%s, %s, %s–%s",
			start.Weekday().String(), start.Format("Jan 2 2006"), start.Format("15:04"), end.Format("15:04"))
	}
	return fmt.Sprintf("%s, %s, %s–%s",
		frWeekdays[start.Weekday()], start.Format("02.01.2006"), start.Format("15:04"), end.Format("15:04"))
}
