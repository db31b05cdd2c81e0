package receiver

import (
	"context"
	"errors"
	"iter"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	pb "github.com/crossplatform/resourcesvc/api/crossplatform/v1"
	"github.com/crossplatform/resourcesvc/pkg/types"
)

// Service is the dispatcher surface the receiver depends on.
type Service interface {
	Get(id int32) (types.Resource, error)
	Save(r *types.Resource) error
	GetList() iter.Seq[types.Resource]
	Ping() bool
}

// Receiver implements pb.CrossPlatformServiceServer.
type Receiver struct {
	pb.UnimplementedCrossPlatformServiceServer
	svc Service
}

// New creates a Receiver that serves calls from svc.
func New(svc Service) *Receiver {
	return &Receiver{svc: svc}
}

func (r *Receiver) Get(_ context.Context, req *pb.GetRequest) (*pb.Resource, error) {
	res, err := r.svc.Get(req.Id)
	if err != nil {
		return nil, toStatus(err)
	}
	return toProto(res), nil
}

func (r *Receiver) Save(_ context.Context, req *pb.SaveRequest) (*pb.SaveResponse, error) {
	if err := r.svc.Save(fromProto(req.Resource)); err != nil {
		return nil, toStatus(err)
	}
	return &pb.SaveResponse{}, nil
}

func (r *Receiver) GetList(_ context.Context, _ *pb.GetListRequest) (*pb.GetListResponse, error) {
	out := make([]*pb.Resource, 0)
	for res := range r.svc.GetList() {
		out = append(out, toProto(res))
	}
	return &pb.GetListResponse{Resources: out}, nil
}

func (r *Receiver) Ping(_ context.Context, _ *pb.PingRequest) (*pb.PingResponse, error) {
	return &pb.PingResponse{Ok: r.svc.Ping()}, nil
}

// toStatus maps a dispatcher failure to a gRPC status error.
func toStatus(err error) error {
	switch {
	case errors.Is(err, types.ErrInvalidArgument):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, types.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

func toProto(r types.Resource) *pb.Resource {
	return &pb.Resource{Id: r.ID, Payload: r.Payload}
}

// fromProto returns nil for a nil message so the validator can reject it.
func fromProto(r *pb.Resource) *types.Resource {
	if r == nil {
		return nil
	}
	return &types.Resource{ID: r.Id, Payload: r.Payload}
}
