// Package reviewrpc is the gRPC contract of the review service: message
// types, the service descriptor and a client. Messages travel as JSON.
package reviewrpc

import (
	"context"

	"google.golang.org/grpc"
)

const ServiceName = "vendorrisk.review.ReviewService"

const (
	SubmitMethod       = "Submit"
	ListMethod         = "List"
	GetMethod          = "Get"
	UpdateStatusMethod = "UpdateStatus"
	DocumentURLMethod  = "DocumentURL"
)

// FullMethod returns the "/service/method" path used on the wire.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

// ReviewServer is implemented by the server side of the review service.
type ReviewServer interface {
	Submit(context.Context, *SubmitRequest) (*SubmitResponse, error)
	List(context.Context, *ListRequest) (*ListResponse, error)
	Get(context.Context, *GetRequest) (*GetResponse, error)
	UpdateStatus(context.Context, *UpdateStatusRequest) (*UpdateStatusResponse, error)
	DocumentURL(context.Context, *DocumentURLRequest) (*DocumentURLResponse, error)
}

func unary[Req, Resp any](method string, call func(ReviewServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(ReviewServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: FullMethod(method)}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(srv.(ReviewServer), ctx, req.(*Req))
			})
		},
	}
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*ReviewServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(SubmitMethod, ReviewServer.Submit),
		unary(ListMethod, ReviewServer.List),
		unary(GetMethod, ReviewServer.Get),
		unary(UpdateStatusMethod, ReviewServer.UpdateStatus),
		unary(DocumentURLMethod, ReviewServer.DocumentURL),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "vendorrisk/review",
}

func RegisterReviewServer(s grpc.ServiceRegistrar, srv ReviewServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// ReviewClient calls the review service over an established connection.
type ReviewClient struct {
	cc grpc.ClientConnInterface
}

func NewReviewClient(cc grpc.ClientConnInterface) *ReviewClient {
	return &ReviewClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, FullMethod(method), in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ReviewClient) Submit(ctx context.Context, in *SubmitRequest, opts ...grpc.CallOption) (*SubmitResponse, error) {
	return invoke[SubmitResponse](ctx, c.cc, SubmitMethod, in, opts)
}

func (c *ReviewClient) List(ctx context.Context, in *ListRequest, opts ...grpc.CallOption) (*ListResponse, error) {
	return invoke[ListResponse](ctx, c.cc, ListMethod, in, opts)
}

func (c *ReviewClient) Get(ctx context.Context, in *GetRequest, opts ...grpc.CallOption) (*GetResponse, error) {
	return invoke[GetResponse](ctx, c.cc, GetMethod, in, opts)
}

func (c *ReviewClient) UpdateStatus(ctx context.Context, in *UpdateStatusRequest, opts ...grpc.CallOption) (*UpdateStatusResponse, error) {
	return invoke[UpdateStatusResponse](ctx, c.cc, UpdateStatusMethod, in, opts)
}

func (c *ReviewClient) DocumentURL(ctx context.Context, in *DocumentURLRequest, opts ...grpc.CallOption) (*DocumentURLResponse, error) {
	return invoke[DocumentURLResponse](ctx, c.cc, DocumentURLMethod, in, opts)
}
