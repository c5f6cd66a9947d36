package grpc

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/abgdnv/gocatalog/internal/product/service"
	"github.com/abgdnv/gocatalog/internal/product/validation"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Client calls catalog.v1.CatalogService over conn.
// Failures are returned as gRPC status errors.
type Client struct {
	conn grpc.ClientConnInterface
}

func NewClient(conn grpc.ClientConnInterface) *Client {
	return &Client{conn: conn}
}

// Dial creates a connection to target whose unary calls each get at most timeout.
func Dial(target string, timeout time.Duration, opts ...grpc.DialOption) (*grpc.ClientConn, error) {
	opts = append(opts, grpc.WithChainUnaryInterceptor(UnaryClientTimeoutInterceptor(timeout)))
	conn, err := grpc.NewClient(target, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog client: %w", err)
	}
	return conn, nil
}

// UnaryClientTimeoutInterceptor returns a unary client interceptor that applies a timeout to the context of the call.
func UnaryClientTimeoutInterceptor(timeout time.Duration) grpc.UnaryClientInterceptor {
	return func(ctx context.Context, method string, req, reply any, cc *grpc.ClientConn, invoker grpc.UnaryInvoker, opts ...grpc.CallOption) error {
		callCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return invoker(callCtx, method, req, reply, cc, opts...)
	}
}

func (c *Client) Create(ctx context.Context, candidate validation.Candidate, opts ...grpc.CallOption) (*service.ProductDto, error) {
	req, err := candidateStruct(candidate)
	if err != nil {
		return nil, err
	}
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, createProductMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return fromStruct(out)
}

func (c *Client) Get(ctx context.Context, id int64, opts ...grpc.CallOption) (*service.ProductDto, error) {
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, getProductMethod, wrapperspb.Int64(id), out, opts...); err != nil {
		return nil, err
	}
	return fromStruct(out)
}

func (c *Client) ListAll(ctx context.Context, opts ...grpc.CallOption) ([]service.ProductDto, error) {
	out := new(structpb.ListValue)
	if err := c.conn.Invoke(ctx, listProductsMethod, &emptypb.Empty{}, out, opts...); err != nil {
		return nil, err
	}
	list := make([]service.ProductDto, 0, len(out.GetValues()))
	for _, v := range out.GetValues() {
		dto, err := fromStruct(v.GetStructValue())
		if err != nil {
			return nil, err
		}
		list = append(list, *dto)
	}
	return list, nil
}

func (c *Client) Update(ctx context.Context, id int64, candidate validation.Candidate, opts ...grpc.CallOption) (*service.ProductDto, error) {
	req, err := candidateStruct(candidate)
	if err != nil {
		return nil, err
	}
	req.Fields["id"] = structpb.NewNumberValue(float64(id))
	out := new(structpb.Struct)
	if err := c.conn.Invoke(ctx, updateProductMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return fromStruct(out)
}

func (c *Client) Delete(ctx context.Context, id int64, opts ...grpc.CallOption) error {
	return c.conn.Invoke(ctx, deleteProductMethod, wrapperspb.Int64(id), new(emptypb.Empty), opts...)
}

func candidateStruct(candidate validation.Candidate) (*structpb.Struct, error) {
	data, err := json.Marshal(candidate)
	if err != nil {
		return nil, fmt.Errorf("encoding candidate: %w", err)
	}
	st := &structpb.Struct{}
	if err := protojson.Unmarshal(data, st); err != nil {
		return nil, fmt.Errorf("encoding candidate: %w", err)
	}
	if st.Fields == nil {
		st.Fields = map[string]*structpb.Value{}
	}
	return st, nil
}
