package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/reflection"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Leganyst/service-provider-api/internal/api"
	"github.com/Leganyst/service-provider-api/internal/caller"
	"github.com/Leganyst/service-provider-api/internal/listing"
	"github.com/Leganyst/service-provider-api/internal/repository"
)

// DirectoryServiceName — полное имя gRPC-сервиса каталога.
const DirectoryServiceName = "serviceprovider.v1.ServiceProviderService"

// DirectoryServiceServer — gRPC-поверхность каталога. Сообщения —
// google.protobuf.Struct с теми же полями, что и JSON-тела HTTP API.
type DirectoryServiceServer interface {
	CreateServiceProvider(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	GetServiceProvider(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	UpdateServiceProvider(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	DeleteServiceProvider(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	AddReview(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	ListServiceProviders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
	RecommendServiceProviders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

type DirectoryService struct {
	providers *ProviderService
}

func NewDirectoryService(providers *ProviderService) *DirectoryService {
	return &DirectoryService{providers: providers}
}

type idRequest struct {
	ID string `json:"id"`
}

type updateRequest struct {
	ID string `json:"id"`
	api.ServiceProviderCreate
}

type reviewRequest struct {
	ID string `json:"id"`
	api.ReviewCreate
}

func (s *DirectoryService) CreateServiceProvider(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	owner, err := callerFromMetadata(ctx)
	if err != nil {
		return nil, err
	}

	var body api.ServiceProviderCreate
	if err := decodeStruct(req, &body); err != nil {
		return nil, err
	}
	in, err := body.ToInput()
	if err != nil {
		return nil, toStatus(err)
	}

	p, err := s.providers.Create(ctx, owner, in)
	if err != nil {
		return nil, toStatus(err)
	}
	return encodeStruct(api.NewServiceProvider(p))
}

func (s *DirectoryService) GetServiceProvider(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body idRequest
	if err := decodeStruct(req, &body); err != nil {
		return nil, err
	}
	id, err := parseID(body.ID)
	if err != nil {
		return nil, err
	}

	p, err := s.providers.Get(ctx, id)
	if err != nil {
		return nil, toStatus(err)
	}
	return encodeStruct(api.NewServiceProvider(p))
}

func (s *DirectoryService) UpdateServiceProvider(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	owner, err := callerFromMetadata(ctx)
	if err != nil {
		return nil, err
	}

	var body updateRequest
	if err := decodeStruct(req, &body); err != nil {
		return nil, err
	}
	id, err := parseID(body.ID)
	if err != nil {
		return nil, err
	}
	in, err := body.ToInput()
	if err != nil {
		return nil, toStatus(err)
	}

	p, err := s.providers.Update(ctx, owner, id, in)
	if err != nil {
		return nil, toStatus(err)
	}
	return encodeStruct(api.NewServiceProvider(p))
}

func (s *DirectoryService) DeleteServiceProvider(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	owner, err := callerFromMetadata(ctx)
	if err != nil {
		return nil, err
	}

	var body idRequest
	if err := decodeStruct(req, &body); err != nil {
		return nil, err
	}
	id, err := parseID(body.ID)
	if err != nil {
		return nil, err
	}

	if err := s.providers.Delete(ctx, owner, id); err != nil {
		return nil, toStatus(err)
	}
	return &structpb.Struct{Fields: map[string]*structpb.Value{}}, nil
}

func (s *DirectoryService) AddReview(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	author, err := callerFromMetadata(ctx)
	if err != nil {
		return nil, err
	}

	var body reviewRequest
	if err := decodeStruct(req, &body); err != nil {
		return nil, err
	}
	id, err := parseID(body.ID)
	if err != nil {
		return nil, err
	}
	if body.Rating == nil {
		return nil, status.Error(codes.InvalidArgument, "rating is required")
	}

	review, err := s.providers.AddReview(ctx, author, id, *body.Rating)
	if err != nil {
		return nil, toStatus(err)
	}
	return encodeStruct(api.NewReview(review))
}

func (s *DirectoryService) ListServiceProviders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body api.FilterRequest
	if err := decodeStruct(req, &body); err != nil {
		return nil, err
	}
	f, err := body.ToFilter()
	if err != nil {
		return nil, toStatus(err)
	}

	page, err := s.providers.List(ctx, f)
	if err != nil {
		return nil, toStatus(err)
	}
	return encodeStruct(api.NewServiceProvidersList(page))
}

func (s *DirectoryService) RecommendServiceProviders(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var body api.RecommendRequest
	if err := decodeStruct(req, &body); err != nil {
		return nil, err
	}
	r, err := body.ToRecommendation()
	if err != nil {
		return nil, toStatus(err)
	}

	page, err := s.providers.Recommend(ctx, r)
	if err != nil {
		return nil, toStatus(err)
	}
	return encodeStruct(api.NewServiceProvidersList(page))
}

// RegisterDirectoryService регистрирует каталог, health и reflection на сервере.
func RegisterDirectoryService(s *grpc.Server, srv DirectoryServiceServer) *health.Server {
	s.RegisterService(&directoryServiceDesc, srv)

	hs := health.NewServer()
	hs.SetServingStatus(DirectoryServiceName, healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(s, hs)

	reflection.Register(s)
	return hs
}

func callerFromMetadata(ctx context.Context) (uuid.UUID, error) {
	md, _ := metadata.FromIncomingContext(ctx)
	values := md.Get(caller.HeaderKey)
	if len(values) == 0 {
		return uuid.Nil, status.Error(codes.InvalidArgument, caller.ErrMissingCaller.Error())
	}
	id, err := caller.ParseID(values[0])
	if err != nil {
		return uuid.Nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return id, nil
}

func parseID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, status.Error(codes.InvalidArgument, "id is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, status.Error(codes.InvalidArgument, "id must be a uuid")
	}
	return id, nil
}

func toStatus(err error) error {
	var verr *listing.ValidationError
	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Error())
	case errors.Is(err, repository.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	default:
		return status.Error(codes.Internal, err.Error())
	}
}

// decodeStruct переводит Struct в JSON-схему через protojson.
func decodeStruct(in *structpb.Struct, out any) error {
	if in == nil {
		in = &structpb.Struct{}
	}
	raw, err := protojson.Marshal(in)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "decode request: %v", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return status.Errorf(codes.InvalidArgument, "decode request: %v", err)
	}
	return nil
}

func encodeStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

func unaryHandler(
	method string,
	call func(srv DirectoryServiceServer, ctx context.Context, req *structpb.Struct) (*structpb.Struct, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: method,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(DirectoryServiceServer), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + DirectoryServiceName + "/" + method,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(DirectoryServiceServer), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var directoryServiceDesc = grpc.ServiceDesc{
	ServiceName: DirectoryServiceName,
	HandlerType: (*DirectoryServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryHandler("CreateServiceProvider", DirectoryServiceServer.CreateServiceProvider),
		unaryHandler("GetServiceProvider", DirectoryServiceServer.GetServiceProvider),
		unaryHandler("UpdateServiceProvider", DirectoryServiceServer.UpdateServiceProvider),
		unaryHandler("DeleteServiceProvider", DirectoryServiceServer.DeleteServiceProvider),
		unaryHandler("AddReview", DirectoryServiceServer.AddReview),
		unaryHandler("ListServiceProviders", DirectoryServiceServer.ListServiceProviders),
		unaryHandler("RecommendServiceProviders", DirectoryServiceServer.RecommendServiceProviders),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "serviceprovider/v1/service_provider.proto",
}
