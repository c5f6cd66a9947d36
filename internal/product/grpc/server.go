// Package grpc exposes the catalog over gRPC.
package grpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"

	perrors "github.com/abgdnv/gocatalog/internal/product/errors"
	"github.com/abgdnv/gocatalog/internal/product/service"
	"github.com/abgdnv/gocatalog/internal/product/validation"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var _ CatalogServer = (*Server)(nil)

type Server struct {
	service service.ProductService
	logger  *slog.Logger
}

func NewServer(service service.ProductService, logger *slog.Logger) *Server {
	return &Server{
		service: service,
		logger:  logger.With("component", "grpc"),
	}
}

func (s *Server) CreateProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	candidate, err := toCandidate(req)
	if err != nil {
		return nil, err
	}
	created, err := s.service.Create(ctx, candidate)
	if err != nil {
		return nil, s.toStatus(ctx, "service.Create failed", err)
	}
	return toStruct(created)
}

func (s *Server) GetProduct(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.Struct, error) {
	found, err := s.service.Get(ctx, req.GetValue())
	if err != nil {
		return nil, s.toStatus(ctx, "service.Get failed", err)
	}
	return toStruct(found)
}

func (s *Server) ListProducts(ctx context.Context, _ *emptypb.Empty) (*structpb.ListValue, error) {
	list, err := s.service.ListAll(ctx)
	if err != nil {
		return nil, s.toStatus(ctx, "service.ListAll failed", err)
	}
	values := make([]*structpb.Value, 0, len(list))
	for i := range list {
		st, err := toStruct(&list[i])
		if err != nil {
			return nil, err
		}
		values = append(values, structpb.NewStructValue(st))
	}
	return &structpb.ListValue{Values: values}, nil
}

// UpdateProduct expects the product id in the "id" field next to the product fields.
func (s *Server) UpdateProduct(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	id, err := idField(req)
	if err != nil {
		return nil, err
	}
	candidate, err := toCandidate(req)
	if err != nil {
		return nil, err
	}
	updated, err := s.service.Update(ctx, id, candidate)
	if err != nil {
		return nil, s.toStatus(ctx, "service.Update failed", err)
	}
	return toStruct(updated)
}

func (s *Server) DeleteProduct(ctx context.Context, req *wrapperspb.Int64Value) (*emptypb.Empty, error) {
	if err := s.service.Delete(ctx, req.GetValue()); err != nil {
		return nil, s.toStatus(ctx, "service.Delete failed", err)
	}
	return &emptypb.Empty{}, nil
}

// toStatus maps service failures to gRPC codes. Validation reasons and
// not-found messages are passed to the caller verbatim.
func (s *Server) toStatus(ctx context.Context, msg string, err error) error {
	switch {
	case errors.Is(err, perrors.ErrInvalidProduct):
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, perrors.ErrProductNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		s.logger.ErrorContext(ctx, msg, slog.Any("error", err))
		return status.Error(codes.Internal, "internal server error")
	}
}

func toCandidate(req *structpb.Struct) (validation.Candidate, error) {
	var candidate validation.Candidate
	data, err := protojson.Marshal(req)
	if err != nil {
		return candidate, status.Errorf(codes.InvalidArgument, "invalid product: %v", err)
	}
	if err := json.Unmarshal(data, &candidate); err != nil {
		return candidate, status.Errorf(codes.InvalidArgument, "invalid product: %v", err)
	}
	return candidate, nil
}

func idField(req *structpb.Struct) (int64, error) {
	v, ok := req.GetFields()["id"]
	if !ok {
		return 0, status.Error(codes.InvalidArgument, "product id is required")
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) ||
		n.NumberValue < math.MinInt64 || n.NumberValue >= math.MaxInt64 {
		return 0, status.Errorf(codes.InvalidArgument, "invalid product id: %v", v.AsInterface())
	}
	return int64(n.NumberValue), nil
}

func toStruct(dto *service.ProductDto) (*structpb.Struct, error) {
	data, err := json.Marshal(dto)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encoding product: %v", err)
	}
	st := &structpb.Struct{}
	if err := protojson.Unmarshal(data, st); err != nil {
		return nil, status.Errorf(codes.Internal, "encoding product: %v", err)
	}
	return st, nil
}

// fromStruct decodes a product returned by the server.
func fromStruct(st *structpb.Struct) (*service.ProductDto, error) {
	data, err := protojson.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("decoding product: %w", err)
	}
	var dto service.ProductDto
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("decoding product: %w", err)
	}
	return &dto, nil
}
