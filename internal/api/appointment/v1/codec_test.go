package appointmentpb

import (
	"testing"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/types/known/emptypb"
)

func TestCodecRegistered(t *testing.T) {
	if c := encoding.GetCodec(CodecName); c == nil {
		t.Fatal("json codec not registered")
	}
}

func TestCodec_PlainMessage(t *testing.T) {
	c := Codec{}
	in := &ValidateDraftResponse{Valid: false, Fields: map[string]string{"phone": "invalid phone number"}}

	b, err := c.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out ValidateDraftResponse
	if err := c.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if out.Fields["phone"] != "invalid phone number" {
		t.Fatalf("out=%+v", out)
	}
}

func TestCodec_ProtoMessage(t *testing.T) {
	c := Codec{}
	b, err := c.Marshal(&emptypb.Empty{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "{}" {
		t.Fatalf("empty encoded as %q", b)
	}
	if err := c.Unmarshal(nil, &emptypb.Empty{}); err != nil {
		t.Fatalf("unmarshal empty body: %v", err)
	}
}

func TestNilGetters(t *testing.T) {
	var req *ListAppointmentsRequest
	if req.GetFilter().GetStatus() != "" || req.GetPage() != 0 {
		t.Fatal("nil request getters must return zero values")
	}
}

func TestServiceDesc_NoDescriptorAdvertised(t *testing.T) {
	if AppointmentService_ServiceDesc.Metadata != nil {
		t.Fatalf("metadata=%v, no descriptor file is registered", AppointmentService_ServiceDesc.Metadata)
	}
	if len(AppointmentService_ServiceDesc.Methods) != 10 {
		t.Fatalf("methods=%d", len(AppointmentService_ServiceDesc.Methods))
	}
}
