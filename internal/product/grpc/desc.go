package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const serviceName = "catalog.v1.CatalogService"

const (
	createProductMethod = "/" + serviceName + "/CreateProduct"
	getProductMethod    = "/" + serviceName + "/GetProduct"
	listProductsMethod  = "/" + serviceName + "/ListProducts"
	updateProductMethod = "/" + serviceName + "/UpdateProduct"
	deleteProductMethod = "/" + serviceName + "/DeleteProduct"
)

// CatalogServer is the server API for the catalog.v1.CatalogService service.
// Products travel as google.protobuf.Struct with the same fields as the REST API.
type CatalogServer interface {
	CreateProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetProduct(context.Context, *wrapperspb.Int64Value) (*structpb.Struct, error)
	ListProducts(context.Context, *emptypb.Empty) (*structpb.ListValue, error)
	UpdateProduct(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteProduct(context.Context, *wrapperspb.Int64Value) (*emptypb.Empty, error)
}

// RegisterCatalogServer registers srv with s.
func RegisterCatalogServer(s grpc.ServiceRegistrar, srv CatalogServer) {
	s.RegisterService(&ServiceDesc, srv)
}

// unary adapts a typed method to the grpc.MethodDesc handler shape.
func unary[Req any, Resp any](method string, newReq func() Req, call func(CatalogServer, context.Context, Req) (Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := newReq()
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(CatalogServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: method}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(CatalogServer), ctx, req.(Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// ServiceDesc is the grpc.ServiceDesc for catalog.v1.CatalogService.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*CatalogServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "CreateProduct",
			Handler: unary(createProductMethod, func() *structpb.Struct { return new(structpb.Struct) },
				CatalogServer.CreateProduct),
		},
		{
			MethodName: "GetProduct",
			Handler: unary(getProductMethod, func() *wrapperspb.Int64Value { return new(wrapperspb.Int64Value) },
				CatalogServer.GetProduct),
		},
		{
			MethodName: "ListProducts",
			Handler: unary(listProductsMethod, func() *emptypb.Empty { return new(emptypb.Empty) },
				CatalogServer.ListProducts),
		},
		{
			MethodName: "UpdateProduct",
			Handler: unary(updateProductMethod, func() *structpb.Struct { return new(structpb.Struct) },
				CatalogServer.UpdateProduct),
		},
		{
			MethodName: "DeleteProduct",
			Handler: unary(deleteProductMethod, func() *wrapperspb.Int64Value { return new(wrapperspb.Int64Value) },
				CatalogServer.DeleteProduct),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog/v1/catalog.proto",
}
