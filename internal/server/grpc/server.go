package grpc

import (
	"context"
	"net"
	"time"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
	"github.com/dmitrijs2005/vendorrisk/internal/logging"
	"github.com/dmitrijs2005/vendorrisk/internal/reviewrpc"
	"github.com/dmitrijs2005/vendorrisk/internal/server/services"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// AssessmentService is the part of services.AssessmentService the RPC
// layer depends on.
type AssessmentService interface {
	Submit(ctx context.Context, form assessment.IntakeForm) (*services.SubmitResult, error)
	List(ctx context.Context, f assessment.Filter, sort assessment.SortState) ([]*assessment.Assessment, error)
	Get(ctx context.Context, id string) (*assessment.Assessment, error)
	UpdateStatus(ctx context.Context, id string, u assessment.StatusUpdate) (*assessment.Assessment, error)
	DocumentURL(ctx context.Context, id, name string) (string, error)
}

type GRPCServer struct {
	address        string
	assessments    AssessmentService
	logger         logging.Logger
	requestTimeout time.Duration
}

func NewGRPCServer(a string, l logging.Logger, as AssessmentService, requestTimeout time.Duration) *GRPCServer {
	return &GRPCServer{
		address:        a,
		logger:         l.With("module", "grpc_server"),
		assessments:    as,
		requestTimeout: requestTimeout,
	}
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is cancelled.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {

	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.loggingInterceptor, s.timeoutInterceptor))

	reviewrpc.RegisterReviewServer(srv, s)

	hs := health.NewServer()
	hs.SetServingStatus(reviewrpc.ServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(srv, hs)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		hs.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
