package handler

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	AuditServiceName = "timecard.v1.AuditService"
	AuditFullMethod  = "/" + AuditServiceName + "/Audit"
)

// AuditServiceServer は AuditService のサーバー側インターフェースです。
// メッセージは structpb.Struct で表現するため、コード生成を必要としません。
type AuditServiceServer interface {
	Audit(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// AuditServiceDesc は grpc.Server に登録するサービス定義です。
var AuditServiceDesc = grpc.ServiceDesc{
	ServiceName: AuditServiceName,
	HandlerType: (*AuditServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Audit",
			Handler:    auditMethodHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "timecard/v1/audit.proto",
}

// RegisterAuditServiceServer は srv に AuditService を登録します。
func RegisterAuditServiceServer(s grpc.ServiceRegistrar, srv AuditServiceServer) {
	s.RegisterService(&AuditServiceDesc, srv)
}

func auditMethodHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AuditServiceServer).Audit(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: AuditFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(AuditServiceServer).Audit(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// AuditClient は AuditService のクライアントです。
type AuditClient struct {
	cc grpc.ClientConnInterface
}

// NewAuditClient は AuditClient を生成します。
func NewAuditClient(cc grpc.ClientConnInterface) *AuditClient {
	return &AuditClient{cc: cc}
}

// Audit は AuditService/Audit を呼び出します。
func (c *AuditClient) Audit(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, AuditFullMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
