package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"

	appointmentpb "github.com/rdvdesk/core/internal/api/appointment/v1"
	"github.com/rdvdesk/core/internal/export"
	"github.com/rdvdesk/core/internal/filter"
	"github.com/rdvdesk/core/internal/intake"
	"github.com/rdvdesk/core/internal/model"
	"github.com/rdvdesk/core/internal/pagination"
	"github.com/rdvdesk/core/internal/repository"
	"github.com/rdvdesk/core/internal/stats"
	"github.com/rdvdesk/core/internal/workflow"
)

// AppointmentService реализует RPC поверх хранилища записей.
type AppointmentService struct {
	appointmentpb.UnimplementedAppointmentServiceServer

	repo     repository.AppointmentRepository
	flow     *workflow.Workflow
	calendar export.Calendar
	pageSize int
	now      func() time.Time
	log      zerolog.Logger
}

func NewAppointmentService(
	repo repository.AppointmentRepository,
	flow *workflow.Workflow,
	calendar export.Calendar,
	pageSize int,
	log zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:     repo,
		flow:     flow,
		calendar: calendar,
		pageSize: pageSize,
		now:      time.Now,
		log:      log,
	}
}

func criteriaFrom(f *appointmentpb.Filter) *filter.Criteria {
	if f == nil {
		return nil
	}
	return &filter.Criteria{
		Status:  f.GetStatus(),
		Date:    f.GetDate(),
		Advisor: f.GetAdvisor(),
		Search:  f.GetSearch(),
	}
}

// ListAppointments отдаёт отфильтрованный список по возрастанию даты, постранично.
func (s *AppointmentService) ListAppointments(
	ctx context.Context,
	req *appointmentpb.ListAppointmentsRequest,
) (*appointmentpb.ListAppointmentsResponse, error) {
	records, err := s.repo.List(ctx, filter.Translate(criteriaFrom(req.GetFilter())))
	if err != nil {
		return nil, toStatus("list appointments", err)
	}

	page := pagination.Paginate(records, int(req.GetPage()), int(req.GetPageSize()), s.pageSize)

	resp := &appointmentpb.ListAppointmentsResponse{
		Appointments: make([]*appointmentpb.Appointment, 0, len(page.Items)),
		TotalCount:   int32(page.Total),
		Page:         int32(page.Page),
		PageSize:     int32(page.PageSize),
		HasNext:      page.HasNext,
	}
	for _, a := range page.Items {
		resp.Appointments = append(resp.Appointments, mapAppointment(a))
	}
	return resp, nil
}

// GetStats отдаёт счётчики для панели.
func (s *AppointmentService) GetStats(ctx context.Context, _ *emptypb.Empty) (*appointmentpb.GetStatsResponse, error) {
	rollup, err := s.repo.StatsRollup(ctx)
	if err != nil {
		return nil, toStatus("stats", err)
	}
	snap := stats.FromRollup(rollup)
	return &appointmentpb.GetStatsResponse{
		Total:       int64(snap.Total),
		Confirmed:   int64(snap.Confirmed),
		Rescheduled: int64(snap.Rescheduled),
		NoShow:      int64(snap.NoShow),
		Pending:     int64(snap.Pending),
	}, nil
}

// ListAdvisors отдаёт варианты для фильтра по консультанту.
func (s *AppointmentService) ListAdvisors(ctx context.Context, _ *emptypb.Empty) (*appointmentpb.ListAdvisorsResponse, error) {
	records, err := s.repo.List(ctx, filter.Translate(nil))
	if err != nil {
		return nil, toStatus("list advisors", err)
	}
	return &appointmentpb.ListAdvisorsResponse{Advisors: model.DistinctAdvisors(records)}, nil
}

// CreateAppointment сохраняет запись с финального шага формы.
func (s *AppointmentService) CreateAppointment(
	ctx context.Context,
	req *appointmentpb.CreateAppointmentRequest,
) (*appointmentpb.CreateAppointmentResponse, error) {
	if req.GetDraft() == nil {
		return nil, status.Error(codes.InvalidArgument, "draft is required")
	}
	d := draftFrom(req.GetDraft())

	if err := d.ValidateAt(s.now(), s.calendar.Location); err != nil {
		return nil, toStatus("create appointment", err)
	}
	a, err := d.Build()
	if err != nil {
		return nil, toStatus("create appointment", err)
	}

	if err := s.repo.Insert(ctx, &a); err != nil {
		return nil, toStatus("create appointment", err)
	}
	s.log.Info().Str("appointment_id", a.ID.String()).Str("date", a.Date).Msg("appointment created")

	return &appointmentpb.CreateAppointmentResponse{Appointment: mapAppointment(a)}, nil
}

// ValidateDraft проверяет шаг формы (или всю форму при step=0) без записи.
func (s *AppointmentService) ValidateDraft(
	_ context.Context,
	req *appointmentpb.ValidateDraftRequest,
) (*appointmentpb.ValidateDraftResponse, error) {
	if req.GetDraft() == nil {
		return nil, status.Error(codes.InvalidArgument, "draft is required")
	}
	d := draftFrom(req.GetDraft())

	var err error
	switch step := intake.Step(req.GetStep()); step {
	case 0:
		err = d.ValidateAt(s.now(), s.calendar.Location)
	case intake.StepContact, intake.StepSchedule:
		err = d.ValidateStep(step)
	default:
		return nil, status.Errorf(codes.InvalidArgument, "unknown step %d", step)
	}

	if err == nil {
		return &appointmentpb.ValidateDraftResponse{Valid: true}, nil
	}
	ve, ok := intake.AsValidationError(err)
	if !ok {
		return nil, toStatus("validate draft", err)
	}
	return &appointmentpb.ValidateDraftResponse{Valid: false, Fields: ve.Fields}, nil
}

// CalendarFile renders the calendar document of one appointment.
func (s *AppointmentService) CalendarFile(ctx context.Context, id, link string) (string, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return s.calendar.Event(*a, link)
}

// Report renders the tabular export of the records matching c.
func (s *AppointmentService) Report(ctx context.Context, c *filter.Criteria, quoted bool) (string, error) {
	records, err := s.repo.List(ctx, filter.Translate(c))
	if err != nil {
		return "", err
	}
	if quoted {
		return export.TabularQuoted(records)
	}
	return export.Tabular(records), nil
}

func (s *AppointmentService) ExportCalendar(
	ctx context.Context,
	req *appointmentpb.ExportCalendarRequest,
) (*appointmentpb.ExportResponse, error) {
	if req.GetId() == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	body, err := s.CalendarFile(ctx, req.GetId(), req.GetLink())
	if err != nil {
		return nil, toStatus("export calendar", err)
	}
	return &appointmentpb.ExportResponse{
		Filename:    export.CalendarFilename(req.GetId()),
		ContentType: export.CalendarContentType,
		Content:     body,
	}, nil
}

func (s *AppointmentService) ExportReport(
	ctx context.Context,
	req *appointmentpb.ExportReportRequest,
) (*appointmentpb.ExportResponse, error) {
	body, err := s.Report(ctx, criteriaFrom(req.GetFilter()), req.GetQuoted())
	if err != nil {
		return nil, toStatus("export report", err)
	}
	return &appointmentpb.ExportResponse{
		Filename:    export.TabularFilename,
		ContentType: export.TabularContentType,
		Content:     body,
	}, nil
}

// UpdateStatus применяет внешний переход статуса (подтверждение, отмена, неявка).
func (s *AppointmentService) UpdateStatus(
	ctx context.Context,
	req *appointmentpb.UpdateStatusRequest,
) (*appointmentpb.AppointmentResponse, error) {
	if req.GetId() == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}
	st, err := model.ParseStatus(req.GetStatus())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	a, err := s.flow.SetStatus(ctx, req.GetId(), st, req.GetActor())
	if err != nil {
		return nil, toStatus("update status", err)
	}
	return &appointmentpb.AppointmentResponse{Appointment: mapAppointment(*a)}, nil
}

func (s *AppointmentService) Reschedule(
	ctx context.Context,
	req *appointmentpb.RescheduleRequest,
) (*appointmentpb.AppointmentResponse, error) {
	if req.GetId() == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	a, err := s.flow.Reschedule(ctx, req.GetId(), req.Date, req.Time, req.Actor)
	if err != nil {
		return nil, toStatus("reschedule", err)
	}
	return &appointmentpb.AppointmentResponse{Appointment: mapAppointment(*a)}, nil
}

// ListEvents отдаёт журнал изменений записи, от старых событий к новым.
func (s *AppointmentService) ListEvents(
	ctx context.Context,
	req *appointmentpb.ListEventsRequest,
) (*appointmentpb.ListEventsResponse, error) {
	if req.GetId() == "" {
		return nil, status.Error(codes.InvalidArgument, "id is required")
	}

	if _, err := s.repo.GetByID(ctx, req.GetId()); err != nil {
		return nil, toStatus("list events", err)
	}
	events, err := s.repo.Events(ctx, req.GetId())
	if err != nil {
		return nil, toStatus("list events", err)
	}

	resp := &appointmentpb.ListEventsResponse{Events: make([]*appointmentpb.AuditEvent, 0, len(events))}
	for _, e := range events {
		resp.Events = append(resp.Events, &appointmentpb.AuditEvent{
			Id:        e.ID.String(),
			Type:      string(e.EventType),
			CreatedAt: formatTime(e.CreatedAt),
			Details:   json.RawMessage(e.Details),
		})
	}
	return resp, nil
}

func draftFrom(d *appointmentpb.Draft) intake.Draft {
	return intake.Draft{
		FirstName:    d.FirstName,
		Phone:        d.Phone,
		Email:        d.Email,
		Date:         d.Date,
		Time:         d.Time,
		Location:     d.Location,
		LocationLink: d.LocationLink,
		Advisor:      d.Advisor,
		Subject:      d.Subject,
		Language:     d.Language,
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func mapAppointment(a model.Appointment) *appointmentpb.Appointment {
	return &appointmentpb.Appointment{
		Id:           a.ID.String(),
		FirstName:    a.FirstName,
		Phone:        a.Phone,
		Email:        a.Email,
		Date:         a.Date,
		Time:         a.Time,
		Location:     a.Location,
		LocationLink: a.LocationLink,
		Advisor:      a.Advisor,
		Subject:      a.Subject,
		Language:     string(a.Language),
		Status:       string(a.Status),
		CreatedAt:    formatTime(a.CreatedAt),
		UpdatedAt:    formatTime(a.UpdatedAt),
	}
}
