package grpc

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/status"
)

func (s *GRPCServer) loggingInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	started := time.Now()
	resp, err := handler(ctx, req)

	code := status.Code(err)
	args := []any{"method", info.FullMethod, "code", code.String(), "duration", time.Since(started).String()}
	if err != nil {
		s.logger.Warn(ctx, "rpc failed", append(args, "error", err.Error())...)
	} else {
		s.logger.Info(ctx, "rpc", args...)
	}

	return resp, err
}

// timeoutInterceptor bounds every call by the configured request timeout.
func (s *GRPCServer) timeoutInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if s.requestTimeout <= 0 {
		return handler(ctx, req)
	}

	ctx, cancel := context.WithTimeout(ctx, s.requestTimeout)
	defer cancel()

	return handler(ctx, req)
}
