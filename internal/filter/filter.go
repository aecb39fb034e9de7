// Package filter turns sparse user criteria into an equality query for the
// store plus a free-text predicate applied to the returned records.
package filter

import (
	"strings"

	"github.com/rdvdesk/core/internal/model"
)

// Store columns of the structured facets.
const (
	ColumnStatus  = "status"
	ColumnDate    = "date"
	ColumnAdvisor = "advisor"
)

// OrderColumn is the only ordering the store is asked for, ascending.
const OrderColumn = ColumnDate

// Criteria is what the presentation shell sends. Empty fields mean
// "no constraint".
type Criteria struct {
	Status  string `json:"status,omitempty"`
	Date    string `json:"date,omitempty"`
	Advisor string `json:"advisor,omitempty"`
	Search  string `json:"search,omitempty"`
}

// Query is the translated form of Criteria.
type Query struct {
	// Equals is a conjunction of exact matches, column -> value.
	Equals map[string]string
	// Search is the lower-cased free-text term, applied after the fetch.
	Search string
}

// Translate builds the query for c. A nil and an empty Criteria produce
// the same unconstrained query.
func Translate(c *Criteria) Query {
	q := Query{Equals: map[string]string{}}
	if c == nil {
		return q
	}
	if c.Status != "" {
		q.Equals[ColumnStatus] = c.Status
	}
	if c.Date != "" {
		q.Equals[ColumnDate] = c.Date
	}
	if c.Advisor != "" {
		q.Equals[ColumnAdvisor] = c.Advisor
	}
	q.Search = strings.ToLower(strings.TrimSpace(c.Search))
	return q
}

// Match applies the free-text term: a case-insensitive substring of
// FirstName or Subject. No other field is searched.
func (q Query) Match(a model.Appointment) bool {
	if q.Search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.FirstName), q.Search) ||
		strings.Contains(strings.ToLower(a.Subject), q.Search)
}

// MatchFacets checks the equality conjunction against a record in memory.
func (q Query) MatchFacets(a model.Appointment) bool {
	for col, v := range q.Equals {
		switch col {
		case ColumnStatus:
			if string(a.Status) != v {
				return false
			}
		case ColumnDate:
			if a.Date != v {
				return false
			}
		case ColumnAdvisor:
			if a.Advisor != v {
				return false
			}
		}
	}
	return true
}

// Refine keeps the records accepted by Match, preserving order.
func (q Query) Refine(records []model.Appointment) []model.Appointment {
	if q.Search == "" {
		return records
	}
	out := make([]model.Appointment, 0, len(records))
	for _, a := range records {
		if q.Match(a) {
			out = append(out, a)
		}
	}
	return out
}

// Apply filters an already loaded record set with the same semantics as
// the store query. Input order is preserved.
func Apply(records []model.Appointment, c *Criteria) []model.Appointment {
	q := Translate(c)
	out := make([]model.Appointment, 0, len(records))
	for _, a := range records {
		if q.MatchFacets(a) && q.Match(a) {
			out = append(out, a)
		}
	}
	return out
}
