// Package appointmentpb is the wire surface of the appointment service.
// Messages travel as JSON through the codec registered in codec.go.
package appointmentpb

import "encoding/json"

// Appointment is the wire form of a stored record. Timestamps are RFC3339 UTC.
type Appointment struct {
	Id           string `json:"id"`
	FirstName    string `json:"firstName"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Location     string `json:"location,omitempty"`
	LocationLink string `json:"locationLink,omitempty"`
	Advisor      string `json:"advisor,omitempty"`
	Subject      string `json:"subject"`
	Language     string `json:"language"`
	Status       string `json:"status"`
	CreatedAt    string `json:"createdAt"`
	UpdatedAt    string `json:"updatedAt"`
}

// Draft is an in-progress intake form.
type Draft struct {
	FirstName    string `json:"firstName"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Location     string `json:"location,omitempty"`
	LocationLink string `json:"locationLink,omitempty"`
	Advisor      string `json:"advisor,omitempty"`
	Subject      string `json:"subject"`
	Language     string `json:"language,omitempty"`
}

// Filter mirrors the dashboard controls; empty fields are unconstrained.
type Filter struct {
	Status  string `json:"status,omitempty"`
	Date    string `json:"date,omitempty"`
	Advisor string `json:"advisor,omitempty"`
	Search  string `json:"search,omitempty"`
}

func (f *Filter) GetStatus() string {
	if f == nil {
		return ""
	}
	return f.Status
}

func (f *Filter) GetDate() string {
	if f == nil {
		return ""
	}
	return f.Date
}

func (f *Filter) GetAdvisor() string {
	if f == nil {
		return ""
	}
	return f.Advisor
}

func (f *Filter) GetSearch() string {
	if f == nil {
		return ""
	}
	return f.Search
}

type ListAppointmentsRequest struct {
	Filter   *Filter `json:"filter,omitempty"`
	Page     int32   `json:"page,omitempty"`
	PageSize int32   `json:"pageSize,omitempty"`
}

func (r *ListAppointmentsRequest) GetFilter() *Filter {
	if r == nil {
		return nil
	}
	return r.Filter
}

func (r *ListAppointmentsRequest) GetPage() int32 {
	if r == nil {
		return 0
	}
	return r.Page
}

func (r *ListAppointmentsRequest) GetPageSize() int32 {
	if r == nil {
		return 0
	}
	return r.PageSize
}

type ListAppointmentsResponse struct {
	Appointments []*Appointment `json:"appointments"`
	TotalCount   int32          `json:"totalCount"`
	Page         int32          `json:"page"`
	PageSize     int32          `json:"pageSize"`
	HasNext      bool           `json:"hasNext"`
}

type GetStatsResponse struct {
	Total       int64 `json:"total"`
	Confirmed   int64 `json:"confirmed"`
	Rescheduled int64 `json:"rescheduled"`
	NoShow      int64 `json:"noShow"`
	Pending     int64 `json:"pending"`
}

type ListAdvisorsResponse struct {
	Advisors []string `json:"advisors"`
}

type CreateAppointmentRequest struct {
	Draft *Draft `json:"draft"`
}

func (r *CreateAppointmentRequest) GetDraft() *Draft {
	if r == nil {
		return nil
	}
	return r.Draft
}

type CreateAppointmentResponse struct {
	Appointment *Appointment `json:"appointment"`
}

// ValidateDraftRequest checks one intake step, or the whole draft when
// Step is 0.
type ValidateDraftRequest struct {
	Draft *Draft `json:"draft"`
	Step  int32  `json:"step,omitempty"`
}

func (r *ValidateDraftRequest) GetDraft() *Draft {
	if r == nil {
		return nil
	}
	return r.Draft
}

func (r *ValidateDraftRequest) GetStep() int32 {
	if r == nil {
		return 0
	}
	return r.Step
}

type ValidateDraftResponse struct {
	Valid  bool              `json:"valid"`
	Fields map[string]string `json:"fields,omitempty"`
}

type ExportCalendarRequest struct {
	Id string `json:"id"`
	// Link overrides the stored location link when set.
	Link string `json:"link,omitempty"`
}

func (r *ExportCalendarRequest) GetId() string {
	if r == nil {
		return ""
	}
	return r.Id
}

func (r *ExportCalendarRequest) GetLink() string {
	if r == nil {
		return ""
	}
	return r.Link
}

type ExportReportRequest struct {
	Filter *Filter `json:"filter,omitempty"`
	// Quoted switches to RFC 4180 quoting of values.
	Quoted bool `json:"quoted,omitempty"`
}

func (r *ExportReportRequest) GetFilter() *Filter {
	if r == nil {
		return nil
	}
	return r.Filter
}

func (r *ExportReportRequest) GetQuoted() bool {
	if r == nil {
		return false
	}
	return r.Quoted
}

// ExportResponse carries a downloadable artifact.
type ExportResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}

type UpdateStatusRequest struct {
	Id     string `json:"id"`
	Status string `json:"status"`
	Actor  string `json:"actor,omitempty"`
}

func (r *UpdateStatusRequest) GetId() string {
	if r == nil {
		return ""
	}
	return r.Id
}

func (r *UpdateStatusRequest) GetStatus() string {
	if r == nil {
		return ""
	}
	return r.Status
}

func (r *UpdateStatusRequest) GetActor() string {
	if r == nil {
		return ""
	}
	return r.Actor
}

type RescheduleRequest struct {
	Id    string `json:"id"`
	Date  string `json:"date"`
	Time  string `json:"time"`
	Actor string `json:"actor,omitempty"`
}

func (r *RescheduleRequest) GetId() string {
	if r == nil {
		return ""
	}
	return r.Id
}

type ListEventsRequest struct {
	Id string `json:"id"`
}

func (r *ListEventsRequest) GetId() string {
	if r == nil {
		return ""
	}
	return r.Id
}

// AuditEvent is one entry of an appointment's change log.
type AuditEvent struct {
	Id        string          `json:"id"`
	Type      string          `json:"type"`
	CreatedAt string          `json:"createdAt"`
	Details   json.RawMessage `json:"details,omitempty"`
}

type ListEventsResponse struct {
	Events []*AuditEvent `json:"events"`
}

type AppointmentResponse struct {
	Appointment *Appointment `json:"appointment"`
}
