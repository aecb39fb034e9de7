// Package stats produces the five reporting counters shown on the
// dashboard, either from the store rollup or from a raw record set.
package stats

import "github.com/rdvdesk/core/internal/model"

// Snapshot is the reporting view of the counters.
type Snapshot struct {
	Total       int `json:"total"`
	Confirmed   int `json:"confirmed"`
	Rescheduled int `json:"rescheduled"`
	NoShow      int `json:"noShow"`
	// Pending carries the rollup's cancelled counter. The name is kept as
	// the dashboard reads it; see DESIGN.md.
	Pending int `json:"pending"`
}

// FromRollup renames the store rollup fields, no computation.
func FromRollup(r model.StatsRollup) Snapshot {
	return Snapshot{
		Total:       nonNegative(r.TotalAppointments),
		Confirmed:   nonNegative(r.Confirmed),
		Rescheduled: nonNegative(r.Rescheduled),
		NoShow:      nonNegative(r.NoShows),
		Pending:     nonNegative(r.Cancelled),
	}
}

// FromRecords counts statuses of records. CANCELLED goes to Pending,
// SCHEDULED is only part of Total.
func FromRecords(records []model.Appointment) Snapshot {
	return FromRollup(Rollup(records))
}

// Rollup computes the store-shaped rollup from records, for stores that do
// not maintain live counters.
func Rollup(records []model.Appointment) model.StatsRollup {
	r := model.StatsRollup{TotalAppointments: int64(len(records))}
	for _, a := range records {
		switch a.Status {
		case model.StatusConfirmed:
			r.Confirmed++
		case model.StatusRescheduled:
			r.Rescheduled++
		case model.StatusNoShow:
			r.NoShows++
		case model.StatusCancelled:
			r.Cancelled++
		}
	}
	return r
}

func nonNegative(v int64) int {
	if v < 0 {
		return 0
	}
	return int(v)
}
