// Package export renders appointment records into the two downloadable
// artifacts: the semicolon report and the calendar file.
package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"time"

	"github.com/rdvdesk/core/internal/model"
)

const (
	TabularFilename    = "appointments.csv"
	TabularContentType = "text/csv"

	// Separator is part of the compatibility contract of the report.
	Separator = ";"
)

// TabularHeader is the fixed column order of the report.
var TabularHeader = []string{
	"firstName",
	"phone",
	"email",
	"date",
	"time",
	"location",
	"advisor",
	"subject",
	"status",
	"language",
	"createdAt",
	"updatedAt",
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func tabularRow(a model.Appointment) []string {
	return []string{
		a.FirstName,
		a.Phone,
		a.Email,
		a.Date,
		a.Time,
		a.Location,
		a.Advisor,
		a.Subject,
		string(a.Status),
		string(a.Language),
		formatTimestamp(a.CreatedAt),
		formatTimestamp(a.UpdatedAt),
	}
}

// Tabular joins header and records with ";" and "\n", in input order.
// Values are written verbatim: a value holding ";" or a newline breaks the
// row (use TabularQuoted when that matters).
func Tabular(records []model.Appointment) string {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(TabularHeader, Separator))
	for _, a := range records {
		lines = append(lines, strings.Join(tabularRow(a), Separator))
	}
	return strings.Join(lines, "\n")
}

// TabularQuoted keeps the same columns and separator but quotes values
// that contain the separator, quotes or newlines.
func TabularQuoted(records []model.Appointment) (string, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(TabularHeader); err != nil {
		return "", err
	}
	for _, a := range records {
		if err := w.Write(tabularRow(a)); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}
