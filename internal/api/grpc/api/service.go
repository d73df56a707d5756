package api

import (
	"context"

	"google.golang.org/grpc"
)

const (
	ServiceName = "courseauth.v1.Verification"

	StartVerificationMethod = "/" + ServiceName + "/StartVerification"
	VerifyTokenMethod       = "/" + ServiceName + "/VerifyToken"
	EmailStatusMethod       = "/" + ServiceName + "/EmailStatus"
	WhoAmIMethod            = "/" + ServiceName + "/WhoAmI"
	LogoutMethod            = "/" + ServiceName + "/Logout"
	ListEventsMethod        = "/" + ServiceName + "/ListEvents"
)

// VerificationServer is the server API of the verification service.
type VerificationServer interface {
	StartVerification(ctx context.Context, req *StartVerificationRequest) (*StartVerificationResponse, error)
	VerifyToken(ctx context.Context, req *VerifyTokenRequest) (*VerifyTokenResponse, error)
	EmailStatus(ctx context.Context, req *EmailStatusRequest) (*EmailStatusResponse, error)
	WhoAmI(ctx context.Context, req *WhoAmIRequest) (*WhoAmIResponse, error)
	Logout(ctx context.Context, req *LogoutRequest) (*LogoutResponse, error)
	ListEvents(ctx context.Context, req *ListEventsRequest) (*ListEventsResponse, error)
}

func RegisterVerificationServer(s grpc.ServiceRegistrar, srv VerificationServer) {
	s.RegisterService(&VerificationServiceDesc, srv)
}

var VerificationServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*VerificationServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "StartVerification",
			Handler: unaryHandler(StartVerificationMethod, func(s VerificationServer, ctx context.Context, req *StartVerificationRequest) (*StartVerificationResponse, error) {
				return s.StartVerification(ctx, req)
			}),
		},
		{
			MethodName: "VerifyToken",
			Handler: unaryHandler(VerifyTokenMethod, func(s VerificationServer, ctx context.Context, req *VerifyTokenRequest) (*VerifyTokenResponse, error) {
				return s.VerifyToken(ctx, req)
			}),
		},
		{
			MethodName: "EmailStatus",
			Handler: unaryHandler(EmailStatusMethod, func(s VerificationServer, ctx context.Context, req *EmailStatusRequest) (*EmailStatusResponse, error) {
				return s.EmailStatus(ctx, req)
			}),
		},
		{
			MethodName: "WhoAmI",
			Handler: unaryHandler(WhoAmIMethod, func(s VerificationServer, ctx context.Context, req *WhoAmIRequest) (*WhoAmIResponse, error) {
				return s.WhoAmI(ctx, req)
			}),
		},
		{
			MethodName: "Logout",
			Handler: unaryHandler(LogoutMethod, func(s VerificationServer, ctx context.Context, req *LogoutRequest) (*LogoutResponse, error) {
				return s.Logout(ctx, req)
			}),
		},
		{
			MethodName: "ListEvents",
			Handler: unaryHandler(ListEventsMethod, func(s VerificationServer, ctx context.Context, req *ListEventsRequest) (*ListEventsResponse, error) {
				return s.ListEvents(ctx, req)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "courseauth/v1/verification",
}

func unaryHandler[Req, Resp any](fullMethod string, call func(VerificationServer, context.Context, *Req) (*Resp, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(VerificationServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{
			Server:     srv,
			FullMethod: fullMethod,
		}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(VerificationServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// VerificationClient calls the verification service over conn using the
// JSON codec.
type VerificationClient struct {
	cc grpc.ClientConnInterface
}

func NewVerificationClient(cc grpc.ClientConnInterface) *VerificationClient {
	return &VerificationClient{cc: cc}
}

func (c *VerificationClient) StartVerification(ctx context.Context, in *StartVerificationRequest, opts ...grpc.CallOption) (*StartVerificationResponse, error) {
	out := new(StartVerificationResponse)
	if err := c.invoke(ctx, StartVerificationMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VerificationClient) VerifyToken(ctx context.Context, in *VerifyTokenRequest, opts ...grpc.CallOption) (*VerifyTokenResponse, error) {
	out := new(VerifyTokenResponse)
	if err := c.invoke(ctx, VerifyTokenMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VerificationClient) EmailStatus(ctx context.Context, in *EmailStatusRequest, opts ...grpc.CallOption) (*EmailStatusResponse, error) {
	out := new(EmailStatusResponse)
	if err := c.invoke(ctx, EmailStatusMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VerificationClient) WhoAmI(ctx context.Context, in *WhoAmIRequest, opts ...grpc.CallOption) (*WhoAmIResponse, error) {
	out := new(WhoAmIResponse)
	if err := c.invoke(ctx, WhoAmIMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VerificationClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	out := new(LogoutResponse)
	if err := c.invoke(ctx, LogoutMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VerificationClient) ListEvents(ctx context.Context, in *ListEventsRequest, opts ...grpc.CallOption) (*ListEventsResponse, error) {
	out := new(ListEventsResponse)
	if err := c.invoke(ctx, ListEventsMethod, in, out, opts); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *VerificationClient) invoke(ctx context.Context, method string, in, out any, opts []grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, method, in, out, opts...)
}
