package handler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ogurasousui/timecard-audit/internal/core/audit"
	"github.com/ogurasousui/timecard-audit/internal/core/timecard"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// AuditGrpcHandler は AuditService の gRPC 実装です。
type AuditGrpcHandler struct {
	svc audit.UseCase
}

var _ AuditServiceServer = (*AuditGrpcHandler)(nil)

// NewAuditGrpcHandler は AuditGrpcHandler を生成します。
func NewAuditGrpcHandler(svc audit.UseCase) *AuditGrpcHandler {
	return &AuditGrpcHandler{svc: svc}
}

// Audit はリクエストの行を監査し、セクションと診断情報を返します。
//
// リクエスト: {"identity": "id"|"name", "rows": [{"row", "id", "name", "start", "end", "duration"}]}
// タイムスタンプは RFC3339 形式です。
func (h *AuditGrpcHandler) Audit(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if req == nil {
		return nil, status.Error(codes.InvalidArgument, "request is required")
	}

	in := audit.AuditInput{}
	fields := req.GetFields()

	if v, ok := fields["identity"]; ok {
		strategy, err := timecard.ParseIdentityStrategy(v.GetStringValue())
		if err != nil {
			return nil, toStatusError(err)
		}
		in.Strategy = strategy
	}

	rowsValue, ok := fields["rows"]
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "rows is required")
	}
	list := rowsValue.GetListValue()
	if list == nil {
		return nil, status.Error(codes.InvalidArgument, "rows must be a list")
	}

	for i, item := range list.GetValues() {
		rowStruct := item.GetStructValue()
		if rowStruct == nil {
			return nil, status.Error(codes.InvalidArgument, fmt.Sprintf("rows[%d] must be an object", i))
		}
		in.Rows = append(in.Rows, toDomainRow(i+1, rowStruct))
	}

	report, err := h.svc.Audit(ctx, in)
	if err != nil {
		return nil, toStatusError(err)
	}

	resp, err := structpb.NewStruct(toResponseMap(report))
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return resp, nil
}

func toDomainRow(defaultNumber int, s *structpb.Struct) timecard.Row {
	f := s.GetFields()
	row := timecard.Row{
		Number:   defaultNumber,
		ID:       stringField(f, "id"),
		Name:     stringField(f, "name"),
		Duration: stringField(f, "duration"),
	}
	if v, ok := f["row"]; ok {
		if n := int(v.GetNumberValue()); n > 0 {
			row.Number = n
		}
	}

	start, err := parseTimestampField(f, "start")
	if err != nil {
		row.Err = err
		return row
	}
	end, err := parseTimestampField(f, "end")
	if err != nil {
		row.Err = err
		return row
	}
	row.Start, row.End = start, end
	return row
}

func stringField(f map[string]*structpb.Value, key string) string {
	v, ok := f[key]
	if !ok {
		return ""
	}
	if _, isNumber := v.GetKind().(*structpb.Value_NumberValue); isNumber {
		return fmt.Sprintf("%v", v.GetNumberValue())
	}
	return v.GetStringValue()
}

func parseTimestampField(f map[string]*structpb.Value, key string) (time.Time, error) {
	raw := strings.TrimSpace(stringField(f, key))
	if raw == "" {
		return time.Time{}, fmt.Errorf("%s: %w", key, timecard.ErrMissingTimestamp)
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s %q: %w", key, raw, timecard.ErrInvalidTimestamp)
	}
	return t, nil
}

func toResponseMap(r *audit.Report) map[string]any {
	sections := make([]any, 0, len(r.Sections))
	for _, s := range r.Sections {
		identities := make([]any, 0, len(s.Identities))
		for _, id := range s.Identities {
			identities = append(identities, id)
		}
		sections = append(sections, map[string]any{
			"rule":       string(s.Rule),
			"title":      s.Title,
			"identities": identities,
		})
	}

	diagnostics := make([]any, 0, len(r.Diagnostics))
	for _, d := range r.Diagnostics {
		diagnostics = append(diagnostics, map[string]any{
			"row":    d.Row,
			"reason": d.Reason,
		})
	}

	return map[string]any{
		"run_id":      r.RunID,
		"identity":    string(r.Strategy),
		"label":       r.Strategy.Label(),
		"rows":        r.Rows,
		"employees":   r.Employees,
		"sections":    sections,
		"diagnostics": diagnostics,
	}
}
