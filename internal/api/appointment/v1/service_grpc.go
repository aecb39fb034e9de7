package appointmentpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
)

const ServiceName = "rdvdesk.appointment.v1.AppointmentService"

const (
	AppointmentService_ListAppointments_FullMethodName  = "/" + ServiceName + "/ListAppointments"
	AppointmentService_GetStats_FullMethodName          = "/" + ServiceName + "/GetStats"
	AppointmentService_ListAdvisors_FullMethodName      = "/" + ServiceName + "/ListAdvisors"
	AppointmentService_CreateAppointment_FullMethodName = "/" + ServiceName + "/CreateAppointment"
	AppointmentService_ValidateDraft_FullMethodName     = "/" + ServiceName + "/ValidateDraft"
	AppointmentService_ExportCalendar_FullMethodName    = "/" + ServiceName + "/ExportCalendar"
	AppointmentService_ExportReport_FullMethodName      = "/" + ServiceName + "/ExportReport"
	AppointmentService_UpdateStatus_FullMethodName      = "/" + ServiceName + "/UpdateStatus"
	AppointmentService_Reschedule_FullMethodName        = "/" + ServiceName + "/Reschedule"
	AppointmentService_ListEvents_FullMethodName        = "/" + ServiceName + "/ListEvents"
)

type AppointmentServiceServer interface {
	ListAppointments(context.Context, *ListAppointmentsRequest) (*ListAppointmentsResponse, error)
	GetStats(context.Context, *emptypb.Empty) (*GetStatsResponse, error)
	ListAdvisors(context.Context, *emptypb.Empty) (*ListAdvisorsResponse, error)
	CreateAppointment(context.Context, *CreateAppointmentRequest) (*CreateAppointmentResponse, error)
	ValidateDraft(context.Context, *ValidateDraftRequest) (*ValidateDraftResponse, error)
	ExportCalendar(context.Context, *ExportCalendarRequest) (*ExportResponse, error)
	ExportReport(context.Context, *ExportReportRequest) (*ExportResponse, error)
	UpdateStatus(context.Context, *UpdateStatusRequest) (*AppointmentResponse, error)
	Reschedule(context.Context, *RescheduleRequest) (*AppointmentResponse, error)
	ListEvents(context.Context, *ListEventsRequest) (*ListEventsResponse, error)
	mustEmbedUnimplementedAppointmentServiceServer()
}

// UnimplementedAppointmentServiceServer must be embedded by implementations.
type UnimplementedAppointmentServiceServer struct{}

func (UnimplementedAppointmentServiceServer) ListAppointments(context.Context, *ListAppointmentsRequest) (*ListAppointmentsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAppointments not implemented")
}
func (UnimplementedAppointmentServiceServer) GetStats(context.Context, *emptypb.Empty) (*GetStatsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetStats not implemented")
}
func (UnimplementedAppointmentServiceServer) ListAdvisors(context.Context, *emptypb.Empty) (*ListAdvisorsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListAdvisors not implemented")
}
func (UnimplementedAppointmentServiceServer) CreateAppointment(context.Context, *CreateAppointmentRequest) (*CreateAppointmentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateAppointment not implemented")
}
func (UnimplementedAppointmentServiceServer) ValidateDraft(context.Context, *ValidateDraftRequest) (*ValidateDraftResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ValidateDraft not implemented")
}
func (UnimplementedAppointmentServiceServer) ExportCalendar(context.Context, *ExportCalendarRequest) (*ExportResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ExportCalendar not implemented")
}
func (UnimplementedAppointmentServiceServer) ExportReport(context.Context, *ExportReportRequest) (*ExportResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ExportReport not implemented")
}
func (UnimplementedAppointmentServiceServer) UpdateStatus(context.Context, *UpdateStatusRequest) (*AppointmentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateStatus not implemented")
}
func (UnimplementedAppointmentServiceServer) Reschedule(context.Context, *RescheduleRequest) (*AppointmentResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Reschedule not implemented")
}
func (UnimplementedAppointmentServiceServer) ListEvents(context.Context, *ListEventsRequest) (*ListEventsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEvents not implemented")
}
func (UnimplementedAppointmentServiceServer) mustEmbedUnimplementedAppointmentServiceServer() {}

func RegisterAppointmentServiceServer(s grpc.ServiceRegistrar, srv AppointmentServiceServer) {
	s.RegisterService(&AppointmentService_ServiceDesc, srv)
}

// unary builds a method handler that decodes Req and dispatches through the
// server interceptor chain.
func unary[Req any, Resp any](
	fullMethod string,
	call func(AppointmentServiceServer, context.Context, *Req) (*Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(AppointmentServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(AppointmentServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// AppointmentService_ServiceDesc has no compiled .proto behind it, so
// Metadata stays empty and reflection lists the service name only.
// Clients must send the "json" content-subtype (application/grpc+json);
// the client below does this on every call.
var AppointmentService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AppointmentServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListAppointments",
			Handler:    unary(AppointmentService_ListAppointments_FullMethodName, AppointmentServiceServer.ListAppointments),
		},
		{
			MethodName: "GetStats",
			Handler:    unary(AppointmentService_GetStats_FullMethodName, AppointmentServiceServer.GetStats),
		},
		{
			MethodName: "ListAdvisors",
			Handler:    unary(AppointmentService_ListAdvisors_FullMethodName, AppointmentServiceServer.ListAdvisors),
		},
		{
			MethodName: "CreateAppointment",
			Handler:    unary(AppointmentService_CreateAppointment_FullMethodName, AppointmentServiceServer.CreateAppointment),
		},
		{
			MethodName: "ValidateDraft",
			Handler:    unary(AppointmentService_ValidateDraft_FullMethodName, AppointmentServiceServer.ValidateDraft),
		},
		{
			MethodName: "ExportCalendar",
			Handler:    unary(AppointmentService_ExportCalendar_FullMethodName, AppointmentServiceServer.ExportCalendar),
		},
		{
			MethodName: "ExportReport",
			Handler:    unary(AppointmentService_ExportReport_FullMethodName, AppointmentServiceServer.ExportReport),
		},
		{
			MethodName: "UpdateStatus",
			Handler:    unary(AppointmentService_UpdateStatus_FullMethodName, AppointmentServiceServer.UpdateStatus),
		},
		{
			MethodName: "Reschedule",
			Handler:    unary(AppointmentService_Reschedule_FullMethodName, AppointmentServiceServer.Reschedule),
		},
		{
			MethodName: "ListEvents",
			Handler:    unary(AppointmentService_ListEvents_FullMethodName, AppointmentServiceServer.ListEvents),
		},
	},
	Streams:     []grpc.StreamDesc{},
}

type AppointmentServiceClient interface {
	ListAppointments(ctx context.Context, in *ListAppointmentsRequest, opts ...grpc.CallOption) (*ListAppointmentsResponse, error)
	GetStats(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*GetStatsResponse, error)
	ListAdvisors(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListAdvisorsResponse, error)
	CreateAppointment(ctx context.Context, in *CreateAppointmentRequest, opts ...grpc.CallOption) (*CreateAppointmentResponse, error)
	ValidateDraft(ctx context.Context, in *ValidateDraftRequest, opts ...grpc.CallOption) (*ValidateDraftResponse, error)
	ExportCalendar(ctx context.Context, in *ExportCalendarRequest, opts ...grpc.CallOption) (*ExportResponse, error)
	ExportReport(ctx context.Context, in *ExportReportRequest, opts ...grpc.CallOption) (*ExportResponse, error)
	UpdateStatus(ctx context.Context, in *UpdateStatusRequest, opts ...grpc.CallOption) (*AppointmentResponse, error)
	Reschedule(ctx context.Context, in *RescheduleRequest, opts ...grpc.CallOption) (*AppointmentResponse, error)
	ListEvents(ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption) (*ListEventsResponse, error)
}

type appointmentServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAppointmentServiceClient returns a client that always speaks the JSON codec.
func NewAppointmentServiceClient(cc grpc.ClientConnInterface) AppointmentServiceClient {
	return &appointmentServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *appointmentServiceClient) ListAppointments(ctx context.Context, in *ListAppointmentsRequest, opts ...grpc.CallOption) (*ListAppointmentsResponse, error) {
	return invoke[ListAppointmentsResponse](ctx, c.cc, AppointmentService_ListAppointments_FullMethodName, in, opts)
}

func (c *appointmentServiceClient) GetStats(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*GetStatsResponse, error) {
	return invoke[GetStatsResponse](ctx, c.cc, AppointmentService_GetStats_FullMethodName, in, opts)
}

func (c *appointmentServiceClient) ListAdvisors(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*ListAdvisorsResponse, error) {
	return invoke[ListAdvisorsResponse](ctx, c.cc, AppointmentService_ListAdvisors_FullMethodName, in, opts)
}

func (c *appointmentServiceClient) CreateAppointment(ctx context.Context, in *CreateAppointmentRequest, opts ...grpc.CallOption) (*CreateAppointmentResponse, error) {
	return invoke[CreateAppointmentResponse](ctx, c.cc, AppointmentService_CreateAppointment_FullMethodName, in, opts)
}

func (c *appointmentServiceClient) ValidateDraft(ctx context.Context, in *ValidateDraftRequest, opts ...grpc.CallOption) (*ValidateDraftResponse, error) {
	return invoke[ValidateDraftResponse](ctx, c.cc, AppointmentService_ValidateDraft_FullMethodName, in, opts)
}

func (c *appointmentServiceClient) ExportCalendar(ctx context.Context, in *ExportCalendarRequest, opts ...grpc.CallOption) (*ExportResponse, error) {
	return invoke[ExportResponse](ctx, c.cc, AppointmentService_ExportCalendar_FullMethodName, in, opts)
}

func (c *appointmentServiceClient) ExportReport(ctx context.Context, in *ExportReportRequest, opts ...grpc.CallOption) (*ExportResponse, error) {
	return invoke[ExportResponse](ctx, c.cc, AppointmentService_ExportReport_FullMethodName, in, opts)
}

func (c *appointmentServiceClient) UpdateStatus(ctx context.Context, in *UpdateStatusRequest, opts ...grpc.CallOption) (*AppointmentResponse, error) {
	return invoke[AppointmentResponse](ctx, c.cc, AppointmentService_UpdateStatus_FullMethodName, in, opts)
}

func (c *appointmentServiceClient) Reschedule(ctx context.Context, in *RescheduleRequest, opts ...grpc.CallOption) (*AppointmentResponse, error) {
	return invoke[AppointmentResponse](ctx, c.cc, AppointmentService_Reschedule_FullMethodName, in, opts)
}

func (c *appointmentServiceClient) ListEvents(ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption) (*ListEventsResponse, error) {
	return invoke[ListEventsResponse](ctx, c.cc, AppointmentService_ListEvents_FullMethodName, in, opts)
}
