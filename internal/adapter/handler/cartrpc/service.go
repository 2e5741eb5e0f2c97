package cartrpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "fitgear.cart.v1.CartService"

type CartServiceServer interface {
	GetCart(context.Context, *GetCartRequest) (*CartResponse, error)
	AddLine(context.Context, *AddLineRequest) (*CartResponse, error)
	RemoveLine(context.Context, *RemoveLineRequest) (*CartResponse, error)
	SetQuantityDelta(context.Context, *SetQuantityDeltaRequest) (*CartResponse, error)
}

// UnimplementedCartServiceServer can be embedded to keep servers forward
// compatible.
type UnimplementedCartServiceServer struct{}

func (UnimplementedCartServiceServer) GetCart(context.Context, *GetCartRequest) (*CartResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetCart not implemented")
}

func (UnimplementedCartServiceServer) AddLine(context.Context, *AddLineRequest) (*CartResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method AddLine not implemented")
}

func (UnimplementedCartServiceServer) RemoveLine(context.Context, *RemoveLineRequest) (*CartResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method RemoveLine not implemented")
}

func (UnimplementedCartServiceServer) SetQuantityDelta(context.Context, *SetQuantityDeltaRequest) (*CartResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SetQuantityDelta not implemented")
}

func RegisterCartServiceServer(s grpc.ServiceRegistrar, srv CartServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*CartServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "GetCart",
			Handler: unaryHandler("GetCart", func(s CartServiceServer, ctx context.Context, in *GetCartRequest) (*CartResponse, error) {
				return s.GetCart(ctx, in)
			}),
		},
		{
			MethodName: "AddLine",
			Handler: unaryHandler("AddLine", func(s CartServiceServer, ctx context.Context, in *AddLineRequest) (*CartResponse, error) {
				return s.AddLine(ctx, in)
			}),
		},
		{
			MethodName: "RemoveLine",
			Handler: unaryHandler("RemoveLine", func(s CartServiceServer, ctx context.Context, in *RemoveLineRequest) (*CartResponse, error) {
				return s.RemoveLine(ctx, in)
			}),
		},
		{
			MethodName: "SetQuantityDelta",
			Handler: unaryHandler("SetQuantityDelta", func(s CartServiceServer, ctx context.Context, in *SetQuantityDeltaRequest) (*CartResponse, error) {
				return s.SetQuantityDelta(ctx, in)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fitgear/cart/v1/cart.proto",
}

func unaryHandler[Req any](method string, call func(CartServiceServer, context.Context, *Req) (*CartResponse, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CartServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: "/" + ServiceName + "/" + method,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CartServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

type CartServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewCartServiceClient(cc grpc.ClientConnInterface) *CartServiceClient {
	return &CartServiceClient{cc: cc}
}

func (c *CartServiceClient) GetCart(ctx context.Context, in *GetCartRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	return c.invoke(ctx, "GetCart", in, opts)
}

func (c *CartServiceClient) AddLine(ctx context.Context, in *AddLineRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	return c.invoke(ctx, "AddLine", in, opts)
}

func (c *CartServiceClient) RemoveLine(ctx context.Context, in *RemoveLineRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	return c.invoke(ctx, "RemoveLine", in, opts)
}

func (c *CartServiceClient) SetQuantityDelta(ctx context.Context, in *SetQuantityDeltaRequest, opts ...grpc.CallOption) (*CartResponse, error) {
	return c.invoke(ctx, "SetQuantityDelta", in, opts)
}

func (c *CartServiceClient) invoke(ctx context.Context, method string, in any, opts []grpc.CallOption) (*CartResponse, error) {
	out := new(CartResponse)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := c.cc.Invoke(ctx, "/"+ServiceName+"/"+method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
