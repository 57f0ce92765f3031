package notes

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// The relay speaks only well-known protobuf types, so its service
// description is declared by hand instead of being generated:
//
//	service NoteRelay {
//	  rpc Test(google.protobuf.Empty) returns (google.protobuf.Struct);
//	  rpc WriteNote(google.protobuf.StringValue) returns (google.protobuf.Value);
//	}
const (
	ServiceName = "flomo.relay.v1.NoteRelay"

	TestFullMethod      = "/" + ServiceName + "/Test"
	WriteNoteFullMethod = "/" + ServiceName + "/WriteNote"
)

type NoteRelayServer interface {
	Test(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	WriteNote(context.Context, *wrapperspb.StringValue) (*structpb.Value, error)
}

var NoteRelayServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NoteRelayServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Test",
			Handler:    _NoteRelay_Test_Handler,
		},
		{
			MethodName: "WriteNote",
			Handler:    _NoteRelay_WriteNote_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "flomo/relay/v1/relay.proto",
}

func _NoteRelay_Test_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NoteRelayServer).Test(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: TestFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(NoteRelayServer).Test(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func _NoteRelay_WriteNote_Handler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(wrapperspb.StringValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(NoteRelayServer).WriteNote(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: WriteNoteFullMethod,
	}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(NoteRelayServer).WriteNote(ctx, req.(*wrapperspb.StringValue))
	}
	return interceptor(ctx, in, info, handler)
}

// Client calls the relay over an established gRPC connection.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) Test(ctx context.Context, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, TestFullMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) WriteNote(ctx context.Context, content string, opts ...grpc.CallOption) (*structpb.Value, error) {
	out := new(structpb.Value)
	if err := c.cc.Invoke(ctx, WriteNoteFullMethod, wrapperspb.String(content), out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

// ErrorPayload extracts the Flomo error payload attached to a relay error.
func ErrorPayload(err error) (*structpb.Struct, bool) {
	st, ok := status.FromError(err)
	if !ok {
		return nil, false
	}

	for _, d := range st.Details() {
		if payload, ok := d.(*structpb.Struct); ok {
			return payload, true
		}
	}

	return nil, false
}
