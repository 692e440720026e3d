// Code generated by protoc-gen-go-grpc. DO NOT EDIT.
// versions:
// - protoc-gen-go-grpc v1.6.2
// - protoc             (unknown)
// source: grading.proto

package apiv1

import (
	context "context"
	grpc "google.golang.org/grpc"
	codes "google.golang.org/grpc/codes"
	status "google.golang.org/grpc/status"
)

// This is a compile-time assertion to ensure that this generated file
// is compatible with the grpc package it is being compiled against.
// Requires gRPC-Go v1.64.0 or later.
const _ = grpc.SupportPackageIsVersion9

const (
	GradingPipeline_EnqueueGradingJob_FullMethodName   = "/grading.v1.GradingPipeline/EnqueueGradingJob"
	GradingPipeline_ProcessQueueBatch_FullMethodName   = "/grading.v1.GradingPipeline/ProcessQueueBatch"
	GradingPipeline_GetSessionComposite_FullMethodName = "/grading.v1.GradingPipeline/GetSessionComposite"
	GradingPipeline_TransitionSession_FullMethodName   = "/grading.v1.GradingPipeline/TransitionSession"
	GradingPipeline_GetSessionReport_FullMethodName    = "/grading.v1.GradingPipeline/GetSessionReport"
)

// GradingPipelineClient is the client API for GradingPipeline service.
//
// For semantics around ctx use and closing/ending streaming RPCs, please refer to https://pkg.go.dev/google.golang.org/grpc/?tab=doc#ClientConn.NewStream.
//
// GradingPipeline exposes the call grading workflow: enqueueing jobs,
// driving the worker batch, and reading session results.
type GradingPipelineClient interface {
	EnqueueGradingJob(ctx context.Context, in *EnqueueGradingJobRequest, opts ...grpc.CallOption) (*EnqueueGradingJobResponse, error)
	ProcessQueueBatch(ctx context.Context, in *ProcessQueueBatchRequest, opts ...grpc.CallOption) (*ProcessQueueBatchResponse, error)
	GetSessionComposite(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*SessionCompositeResponse, error)
	TransitionSession(ctx context.Context, in *TransitionSessionRequest, opts ...grpc.CallOption) (*TransitionSessionResponse, error)
	GetSessionReport(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*SessionReportResponse, error)
}

type gradingPipelineClient struct {
	cc grpc.ClientConnInterface
}

func NewGradingPipelineClient(cc grpc.ClientConnInterface) GradingPipelineClient {
	return &gradingPipelineClient{cc}
}

func (c *gradingPipelineClient) EnqueueGradingJob(ctx context.Context, in *EnqueueGradingJobRequest, opts ...grpc.CallOption) (*EnqueueGradingJobResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(EnqueueGradingJobResponse)
	err := c.cc.Invoke(ctx, GradingPipeline_EnqueueGradingJob_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gradingPipelineClient) ProcessQueueBatch(ctx context.Context, in *ProcessQueueBatchRequest, opts ...grpc.CallOption) (*ProcessQueueBatchResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(ProcessQueueBatchResponse)
	err := c.cc.Invoke(ctx, GradingPipeline_ProcessQueueBatch_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gradingPipelineClient) GetSessionComposite(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*SessionCompositeResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(SessionCompositeResponse)
	err := c.cc.Invoke(ctx, GradingPipeline_GetSessionComposite_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gradingPipelineClient) TransitionSession(ctx context.Context, in *TransitionSessionRequest, opts ...grpc.CallOption) (*TransitionSessionResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(TransitionSessionResponse)
	err := c.cc.Invoke(ctx, GradingPipeline_TransitionSession_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (c *gradingPipelineClient) GetSessionReport(ctx context.Context, in *SessionRequest, opts ...grpc.CallOption) (*SessionReportResponse, error) {
	cOpts := append([]grpc.CallOption{grpc.StaticMethod()}, opts...)
	out := new(SessionReportResponse)
	err := c.cc.Invoke(ctx, GradingPipeline_GetSessionReport_FullMethodName, in, out, cOpts...)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// GradingPipelineServer is the server API for GradingPipeline service.
// All implementations must embed UnimplementedGradingPipelineServer
// for forward compatibility.
//
// GradingPipeline exposes the call grading workflow: enqueueing jobs,
// driving the worker batch, and reading session results.
type GradingPipelineServer interface {
	EnqueueGradingJob(context.Context, *EnqueueGradingJobRequest) (*EnqueueGradingJobResponse, error)
	ProcessQueueBatch(context.Context, *ProcessQueueBatchRequest) (*ProcessQueueBatchResponse, error)
	GetSessionComposite(context.Context, *SessionRequest) (*SessionCompositeResponse, error)
	TransitionSession(context.Context, *TransitionSessionRequest) (*TransitionSessionResponse, error)
	GetSessionReport(context.Context, *SessionRequest) (*SessionReportResponse, error)
	mustEmbedUnimplementedGradingPipelineServer()
}

// UnimplementedGradingPipelineServer must be embedded to have
// forward compatible implementations.
//
// NOTE: this should be embedded by value instead of pointer to avoid a nil
// pointer dereference when methods are called.
type UnimplementedGradingPipelineServer struct{}

func (UnimplementedGradingPipelineServer) EnqueueGradingJob(context.Context, *EnqueueGradingJobRequest) (*EnqueueGradingJobResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method EnqueueGradingJob not implemented")
}
func (UnimplementedGradingPipelineServer) ProcessQueueBatch(context.Context, *ProcessQueueBatchRequest) (*ProcessQueueBatchResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ProcessQueueBatch not implemented")
}
func (UnimplementedGradingPipelineServer) GetSessionComposite(context.Context, *SessionRequest) (*SessionCompositeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSessionComposite not implemented")
}
func (UnimplementedGradingPipelineServer) TransitionSession(context.Context, *TransitionSessionRequest) (*TransitionSessionResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method TransitionSession not implemented")
}
func (UnimplementedGradingPipelineServer) GetSessionReport(context.Context, *SessionRequest) (*SessionReportResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSessionReport not implemented")
}
func (UnimplementedGradingPipelineServer) mustEmbedUnimplementedGradingPipelineServer() {}
func (UnimplementedGradingPipelineServer) testEmbeddedByValue()                         {}

// UnsafeGradingPipelineServer may be embedded to opt out of forward compatibility for this service.
// Use of this interface is not recommended, as added methods to GradingPipelineServer will
// result in compilation errors.
type UnsafeGradingPipelineServer interface {
	mustEmbedUnimplementedGradingPipelineServer()
}

func RegisterGradingPipelineServer(s grpc.ServiceRegistrar, srv GradingPipelineServer) {
	// If the following call panics, it indicates UnimplementedGradingPipelineServer was
	// embedded by pointer and is nil.  This will cause panics if an
	// unimplemented method is ever invoked, so we test this at initialization
	// time to prevent it from happening at runtime later due to I/O.
	if t, ok := srv.(interface{ testEmbeddedByValue() }); ok {
		t.testEmbeddedByValue()
	}
	s.RegisterService(&GradingPipeline_ServiceDesc, srv)
}

func _GradingPipeline_EnqueueGradingJob_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(EnqueueGradingJobRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GradingPipelineServer).EnqueueGradingJob(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GradingPipeline_EnqueueGradingJob_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GradingPipelineServer).EnqueueGradingJob(ctx, req.(*EnqueueGradingJobRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _GradingPipeline_ProcessQueueBatch_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(ProcessQueueBatchRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GradingPipelineServer).ProcessQueueBatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GradingPipeline_ProcessQueueBatch_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GradingPipelineServer).ProcessQueueBatch(ctx, req.(*ProcessQueueBatchRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _GradingPipeline_GetSessionComposite_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SessionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GradingPipelineServer).GetSessionComposite(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GradingPipeline_GetSessionComposite_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GradingPipelineServer).GetSessionComposite(ctx, req.(*SessionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _GradingPipeline_TransitionSession_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(TransitionSessionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GradingPipelineServer).TransitionSession(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GradingPipeline_TransitionSession_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GradingPipelineServer).TransitionSession(ctx, req.(*TransitionSessionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

func _GradingPipeline_GetSessionReport_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(SessionRequest)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(GradingPipelineServer).GetSessionReport(ctx, in)
	}
	info := &grpc.UnaryServerInfo{
		Server:     srv,
		FullMethod: GradingPipeline_GetSessionReport_FullMethodName,
	}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(GradingPipelineServer).GetSessionReport(ctx, req.(*SessionRequest))
	}
	return interceptor(ctx, in, info, handler)
}

// GradingPipeline_ServiceDesc is the grpc.ServiceDesc for GradingPipeline service.
// It's only intended for direct use with grpc.RegisterService,
// and not to be introspected or modified (even as a copy)
var GradingPipeline_ServiceDesc = grpc.ServiceDesc{
	ServiceName: "grading.v1.GradingPipeline",
	HandlerType: (*GradingPipelineServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "EnqueueGradingJob",
			Handler:    _GradingPipeline_EnqueueGradingJob_Handler,
		},
		{
			MethodName: "ProcessQueueBatch",
			Handler:    _GradingPipeline_ProcessQueueBatch_Handler,
		},
		{
			MethodName: "GetSessionComposite",
			Handler:    _GradingPipeline_GetSessionComposite_Handler,
		},
		{
			MethodName: "TransitionSession",
			Handler:    _GradingPipeline_TransitionSession_Handler,
		},
		{
			MethodName: "GetSessionReport",
			Handler:    _GradingPipeline_GetSessionReport_Handler,
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "grading.proto",
}
