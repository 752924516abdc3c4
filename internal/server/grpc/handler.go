package grpc

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/vendorrisk/internal/assessment"
	"github.com/dmitrijs2005/vendorrisk/internal/common"
	"github.com/dmitrijs2005/vendorrisk/internal/reviewrpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// toStatus maps service errors to gRPC status codes.
func toStatus(err error) error {
	var verr *assessment.ValidationError

	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, reviewrpc.ValidationMessage(verr))
	case errors.Is(err, common.ErrorNotFound), errors.Is(err, common.ErrorDocumentNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, common.ErrorInvalidStatus),
		errors.Is(err, common.ErrorInvalidColumn),
		errors.Is(err, common.ErrorInvalidRequest):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, common.ErrorDocumentStoreDisabled):
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	default:
		return status.Error(codes.Internal, "internal error")
	}
}

func (s *GRPCServer) Submit(ctx context.Context, req *reviewrpc.SubmitRequest) (*reviewrpc.SubmitResponse, error) {

	result, err := s.assessments.Submit(ctx, req.Form)
	if err != nil {
		if !errors.Is(err, common.ErrorValidation) {
			s.logger.Error(ctx, "submit failed", "error", err.Error())
		}
		return nil, toStatus(err)
	}

	uploads := make([]reviewrpc.Upload, 0, len(result.Uploads))
	for _, u := range result.Uploads {
		uploads = append(uploads, reviewrpc.Upload{Name: u.Name, URL: u.URL})
	}

	return &reviewrpc.SubmitResponse{Assessment: result.Assessment, Uploads: uploads, Replayed: result.Replayed}, nil
}

func (s *GRPCServer) List(ctx context.Context, req *reviewrpc.ListRequest) (*reviewrpc.ListResponse, error) {

	f, sort, err := assessment.ParseQuery(req.Search, req.Status, req.Sort, req.Order)
	if err != nil {
		return nil, toStatus(err)
	}

	list, err := s.assessments.List(ctx, f, sort)
	if err != nil {
		s.logger.Error(ctx, "list failed", "error", err.Error())
		return nil, toStatus(err)
	}

	return &reviewrpc.ListResponse{Assessments: list, Total: len(list)}, nil
}

func (s *GRPCServer) Get(ctx context.Context, req *reviewrpc.GetRequest) (*reviewrpc.GetResponse, error) {

	a, err := s.assessments.Get(ctx, req.ID)
	if err != nil {
		return nil, toStatus(err)
	}

	return &reviewrpc.GetResponse{Assessment: a, Badge: a.Status.Badge()}, nil
}

func (s *GRPCServer) UpdateStatus(ctx context.Context, req *reviewrpc.UpdateStatusRequest) (*reviewrpc.UpdateStatusResponse, error) {

	st, err := assessment.ParseStatus(req.Status)
	if err != nil {
		return nil, toStatus(err)
	}

	a, err := s.assessments.UpdateStatus(ctx, req.ID, assessment.StatusUpdate{Status: st, ReviewerNotes: req.ReviewerNotes})
	if err != nil {
		return nil, toStatus(err)
	}

	return &reviewrpc.UpdateStatusResponse{Assessment: a}, nil
}

func (s *GRPCServer) DocumentURL(ctx context.Context, req *reviewrpc.DocumentURLRequest) (*reviewrpc.DocumentURLResponse, error) {

	url, err := s.assessments.DocumentURL(ctx, req.ID, req.Name)
	if err != nil {
		return nil, toStatus(err)
	}

	return &reviewrpc.DocumentURLResponse{URL: url}, nil
}
