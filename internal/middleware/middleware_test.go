package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
)

func peerCtx(addr string) context.Context {
	tcp, _ := net.ResolveTCPAddr("tcp", addr)
	return peer.NewContext(context.Background(), &peer.Peer{Addr: tcp})
}

func okHandler(context.Context, any) (any, error) { return "ok", nil }

func TestRateLimit_PerPeer(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	icpt := RateLimit(rl)
	info := &grpc.UnaryServerInfo{FullMethod: "/svc/M"}

	a := peerCtx("10.0.0.1:1000")
	for i := 0; i < 2; i++ {
		if _, err := icpt(a, nil, info, okHandler); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	// another port of the same host shares the bucket
	_, err := icpt(peerCtx("10.0.0.1:2000"), nil, info, okHandler)
	if status.Code(err) != codes.ResourceExhausted {
		t.Fatalf("code=%v, want ResourceExhausted", status.Code(err))
	}

	if _, err := icpt(peerCtx("10.0.0.2:1000"), nil, info, okHandler); err != nil {
		t.Fatalf("other peer throttled: %v", err)
	}
}

func TestRateLimit_Evict(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.Allow("a")
	rl.evict(time.Now().Add(staleAfter + time.Second))
	if len(rl.clients) != 0 {
		t.Fatalf("stale peer kept: %d", len(rl.clients))
	}
}

func TestPeerHost_Unknown(t *testing.T) {
	if got := peerHost(context.Background()); got != unknownPeer {
		t.Fatalf("peerHost=%q", got)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	icpt := Logging(zerolog.New(&buf))
	info := &grpc.UnaryServerInfo{FullMethod: "/svc/Fail"}

	_, err := icpt(peerCtx("10.0.0.1:1"), nil, info, func(context.Context, any) (any, error) {
		return nil, status.Error(codes.Internal, "boom")
	})
	if status.Code(err) != codes.Internal {
		t.Fatalf("error not passed through: %v", err)
	}

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("unmarshal %q: %v", buf.String(), err)
	}
	if line["level"] != "error" || line["method"] != "/svc/Fail" || line["code"] != "Internal" || line["peer"] != "10.0.0.1" {
		t.Fatalf("line=%v", line)
	}
}
