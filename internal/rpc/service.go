package rpc

import (
	"context"
	"time"

	"github.com/go-sod/attrition/internal/logging"
	"github.com/go-sod/attrition/internal/pipeline"
	"github.com/go-sod/attrition/internal/predict"
	"github.com/go-sod/attrition/internal/record"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	ServiceName   = "attrition.v1.Attrition"
	PredictMethod = "/" + ServiceName + "/Predict"
)

// AttritionServer predicts attrition for one record. Requests and responses
// are google.protobuf.Struct values with the same keys as the HTTP API.
type AttritionServer interface {
	Predict(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AttritionServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Predict",
			Handler:    predictHandler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "attrition/v1/attrition.proto",
}

func predictHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AttritionServer).Predict(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: PredictMethod,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AttritionServer).Predict(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

type Predictor interface {
	Predict(ctx context.Context, e record.Employee) (*pipeline.Prediction, error)
}

type service struct {
	predictor Predictor
}

func NewService(p Predictor) AttritionServer {
	return &service{predictor: p}
}

func (s *service) Predict(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	e, err := record.Decode(in.AsMap())
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	prediction, err := s.predictor.Predict(ctx, e)
	if err != nil {
		if pipeline.IsInvalidInput(err) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Errorf(codes.Internal, "predict: %v", err)
	}
	item := predict.NewItem(prediction)
	out, err := structpb.NewStruct(map[string]interface{}{
		"id":            item.ID,
		"label":         item.Label,
		"class":         item.Class,
		"probabilities": []interface{}{item.Probabilities[0], item.Probabilities[1]},
		"probability":   item.Probability,
		"summary":       item.Summary,
		"createdAt":     item.CreatedAt.Format(time.RFC3339Nano),
	})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

// NewServer returns a grpc server with the attrition service registered.
func NewServer(p Predictor, opts ...grpc.ServerOption) *grpc.Server {
	opts = append(opts, grpc.ChainUnaryInterceptor(logUnary))
	srv := grpc.NewServer(opts...)
	srv.RegisterService(&ServiceDesc, NewService(p))
	return srv
}

func logUnary(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()
	resp, err := handler(ctx, req)
	if err != nil {
		logger.Debugf("grpc %s failed after %s: %v", info.FullMethod, time.Since(start), err)
		return resp, err
	}
	logger.Debugf("grpc %s done in %s", info.FullMethod, time.Since(start))
	return resp, nil
}
