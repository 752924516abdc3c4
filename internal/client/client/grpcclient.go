package client

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
	"github.com/dmitrijs2005/vendorrisk/internal/common"
	"github.com/dmitrijs2005/vendorrisk/internal/reviewrpc"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"
)

const pingTimeout = 2 * time.Second

type GRPCClient struct {
	endpointURL string
	conn        *grpc.ClientConn
	review      *reviewrpc.ReviewClient
	health      healthpb.HealthClient
}

// NewReviewClientService dials endpointURL. The connection is lazy: an
// unreachable server surfaces as ErrUnavailable on the first call.
func NewReviewClientService(endpointURL string, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL}
	if err := c.InitGRPCClient(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *GRPCClient) InitGRPCClient(opts ...grpc.DialOption) error {
	opts = append([]grpc.DialOption{grpc.WithTransportCredentials(insecure.NewCredentials())}, opts...)

	conn, err := grpc.NewClient(s.endpointURL, opts...)
	if err != nil {
		return err
	}
	s.conn = conn
	s.review = reviewrpc.NewReviewClient(conn)
	s.health = healthpb.NewHealthClient(conn)
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

// Ping asks the standard health service whether the review service is up.
func (s *GRPCClient) Ping(ctx context.Context) error {

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	resp, err := s.health.Check(ctx, &healthpb.HealthCheckRequest{Service: reviewrpc.ServiceName})
	if err != nil {
		return s.mapError(err)
	}

	if resp.GetStatus() != healthpb.HealthCheckResponse_SERVING {
		return ErrUnavailable
	}

	return nil
}

// List fetches the records matching f. Sorting stays on the client.
func (s *GRPCClient) List(ctx context.Context, f assessment.Filter) ([]*assessment.Assessment, error) {

	req := &reviewrpc.ListRequest{Search: f.Search, Status: f.StatusLabel()}

	resp, err := s.review.List(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	for _, a := range resp.Assessments {
		a.Normalize()
	}
	return resp.Assessments, nil
}

func (s *GRPCClient) Get(ctx context.Context, id string) (*assessment.Assessment, error) {

	resp, err := s.review.Get(ctx, &reviewrpc.GetRequest{ID: id})
	if err != nil {
		return nil, s.mapError(err)
	}

	resp.Assessment.Normalize()
	return resp.Assessment, nil
}

func (s *GRPCClient) Update(ctx context.Context, id string, u assessment.StatusUpdate) (*assessment.Assessment, error) {

	req := &reviewrpc.UpdateStatusRequest{ID: id, Status: u.Status.String(), ReviewerNotes: u.ReviewerNotes}

	resp, err := s.review.UpdateStatus(ctx, req)
	if err != nil {
		return nil, s.mapError(err)
	}

	resp.Assessment.Normalize()
	return resp.Assessment, nil
}

func (s *GRPCClient) Submit(ctx context.Context, form assessment.IntakeForm) (*reviewrpc.SubmitResponse, error) {

	resp, err := s.review.Submit(ctx, &reviewrpc.SubmitRequest{Form: form})
	if err != nil {
		return nil, s.mapError(err)
	}

	return resp, nil
}

// DocumentURL returns a short-lived download link for one attached document.
func (s *GRPCClient) DocumentURL(ctx context.Context, id, name string) (string, error) {

	resp, err := s.review.DocumentURL(ctx, &reviewrpc.DocumentURLRequest{ID: id, Name: name})
	if err != nil {
		return "", s.mapError(err)
	}

	return resp.URL, nil
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	case codes.NotFound:
		return fmt.Errorf("%w: %s", common.ErrorNotFound, st.Message())
	case codes.InvalidArgument:
		if verr, ok := reviewrpc.ParseValidationMessage(st.Message()); ok {
			return verr
		}
		return fmt.Errorf("%w: %s", common.ErrorInvalidRequest, st.Message())
	case codes.FailedPrecondition:
		return common.ErrorDocumentStoreDisabled
	case codes.Canceled:
		return context.Canceled
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
