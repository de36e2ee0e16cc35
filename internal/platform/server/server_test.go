package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/ogurasousui/timecard-audit/internal/adapters/grpc/handler"
	"github.com/ogurasousui/timecard-audit/internal/core/audit"
	"github.com/ogurasousui/timecard-audit/internal/core/timecard"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func startServer(t *testing.T) *handler.AuditClient {
	t.Helper()

	lis := bufconn.Listen(1 << 20)
	svc := audit.NewService(audit.DefaultRules(), timecard.IdentityByID, nil, nil)
	srv := New("bufconn", svc, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	conn, err := grpc.NewClient("passthrough:///bufconn",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("grpc.NewClient: %v", err)
	}

	t.Cleanup(func() {
		_ = conn.Close()
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Serve returned error: %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("server did not stop")
		}
	})

	return handler.NewAuditClient(conn)
}

func TestServer_AuditRoundTrip(t *testing.T) {
	t.Parallel()

	client := startServer(t)

	rows := make([]any, 0, 7)
	start := time.Date(2024, time.January, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 7; i++ {
		s := start.AddDate(0, 0, i)
		rows = append(rows, map[string]any{
			"id":       "E1",
			"start":    s.Format(time.RFC3339),
			"end":      s.Add(8 * time.Hour).Format(time.RFC3339),
			"duration": "8:00",
		})
	}
	req, err := structpb.NewStruct(map[string]any{"rows": rows})
	if err != nil {
		t.Fatalf("NewStruct: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	resp, err := client.Audit(ctx, req)
	if err != nil {
		t.Fatalf("Audit returned error: %v", err)
	}

	sections := resp.AsMap()["sections"].([]any)
	consecutive := sections[0].(map[string]any)
	ids := consecutive["identities"].([]any)
	if len(ids) != 1 || ids[0] != "E1" {
		t.Fatalf("expected E1 in consecutive-days section, got %v", ids)
	}
	if resp.AsMap()["run_id"] == "" {
		t.Fatal("expected run id in response")
	}
}

func TestServer_AuditInvalidArgument(t *testing.T) {
	t.Parallel()

	client := startServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := client.Audit(ctx, &structpb.Struct{})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}
