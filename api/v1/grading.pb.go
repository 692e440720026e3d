// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.12
// 	protoc        (unknown)
// source: grading.proto

package apiv1

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
	timestamppb "google.golang.org/protobuf/types/known/timestamppb"
	reflect "reflect"
	sync "sync"
	unsafe "unsafe"
)

const (
	// Verify that this generated code is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that runtime/protoimpl is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

type EnqueueGradingJobRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	CallId        string                 `protobuf:"bytes,1,opt,name=call_id,json=callId,proto3" json:"call_id,omitempty"`
	Priority      int32                  `protobuf:"varint,2,opt,name=priority,proto3" json:"priority,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *EnqueueGradingJobRequest) Reset() {
	*x = EnqueueGradingJobRequest{}
	mi := &file_grading_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *EnqueueGradingJobRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*EnqueueGradingJobRequest) ProtoMessage() {}

func (x *EnqueueGradingJobRequest) ProtoReflect() protoreflect.Message {
	mi := &file_grading_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use EnqueueGradingJobRequest.ProtoReflect.Descriptor instead.
func (*EnqueueGradingJobRequest) Descriptor() ([]byte, []int) {
	return file_grading_proto_rawDescGZIP(), []int{0}
}

func (x *EnqueueGradingJobRequest) GetCallId() string {
	if x != nil {
		return x.CallId
	}
	return ""
}

func (x *EnqueueGradingJobRequest) GetPriority() int32 {
	if x != nil {
		return x.Priority
	}
	return 0
}

type EnqueueGradingJobResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	QueueItemId   string                 `protobuf:"bytes,1,opt,name=queue_item_id,json=queueItemId,proto3" json:"queue_item_id,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *EnqueueGradingJobResponse) Reset() {
	*x = EnqueueGradingJobResponse{}
	mi := &file_grading_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *EnqueueGradingJobResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*EnqueueGradingJobResponse) ProtoMessage() {}

func (x *EnqueueGradingJobResponse) ProtoReflect() protoreflect.Message {
	mi := &file_grading_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use EnqueueGradingJobResponse.ProtoReflect.Descriptor instead.
func (*EnqueueGradingJobResponse) Descriptor() ([]byte, []int) {
	return file_grading_proto_rawDescGZIP(), []int{1}
}

func (x *EnqueueGradingJobResponse) GetQueueItemId() string {
	if x != nil {
		return x.QueueItemId
	}
	return ""
}

type ProcessQueueBatchRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	MaxItems      int32                  `protobuf:"varint,1,opt,name=max_items,json=maxItems,proto3" json:"max_items,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *ProcessQueueBatchRequest) Reset() {
	*x = ProcessQueueBatchRequest{}
	mi := &file_grading_proto_msgTypes[2]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *ProcessQueueBatchRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ProcessQueueBatchRequest) ProtoMessage() {}

func (x *ProcessQueueBatchRequest) ProtoReflect() protoreflect.Message {
	mi := &file_grading_proto_msgTypes[2]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use ProcessQueueBatchRequest.ProtoReflect.Descriptor instead.
func (*ProcessQueueBatchRequest) Descriptor() ([]byte, []int) {
	return file_grading_proto_rawDescGZIP(), []int{2}
}

func (x *ProcessQueueBatchRequest) GetMaxItems() int32 {
	if x != nil {
		return x.MaxItems
	}
	return 0
}

type ProcessQueueBatchResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Processed     int32                  `protobuf:"varint,1,opt,name=processed,proto3" json:"processed,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *ProcessQueueBatchResponse) Reset() {
	*x = ProcessQueueBatchResponse{}
	mi := &file_grading_proto_msgTypes[3]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *ProcessQueueBatchResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ProcessQueueBatchResponse) ProtoMessage() {}

func (x *ProcessQueueBatchResponse) ProtoReflect() protoreflect.Message {
	mi := &file_grading_proto_msgTypes[3]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use ProcessQueueBatchResponse.ProtoReflect.Descriptor instead.
func (*ProcessQueueBatchResponse) Descriptor() ([]byte, []int) {
	return file_grading_proto_rawDescGZIP(), []int{3}
}

func (x *ProcessQueueBatchResponse) GetProcessed() int32 {
	if x != nil {
		return x.Processed
	}
	return 0
}

type SessionRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	SessionId     string                 `protobuf:"bytes,1,opt,name=session_id,json=sessionId,proto3" json:"session_id,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *SessionRequest) Reset() {
	*x = SessionRequest{}
	mi := &file_grading_proto_msgTypes[4]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *SessionRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*SessionRequest) ProtoMessage() {}

func (x *SessionRequest) ProtoReflect() protoreflect.Message {
	mi := &file_grading_proto_msgTypes[4]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use SessionRequest.ProtoReflect.Descriptor instead.
func (*SessionRequest) Descriptor() ([]byte, []int) {
	return file_grading_proto_rawDescGZIP(), []int{4}
}

func (x *SessionRequest) GetSessionId() string {
	if x != nil {
		return x.SessionId
	}
	return ""
}

type SessionCompositeResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Percentage    float64                `protobuf:"fixed64,1,opt,name=percentage,proto3" json:"percentage,omitempty"`
	Pass          bool                   `protobuf:"varint,2,opt,name=pass,proto3" json:"pass,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *SessionCompositeResponse) Reset() {
	*x = SessionCompositeResponse{}
	mi := &file_grading_proto_msgTypes[5]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *SessionCompositeResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*SessionCompositeResponse) ProtoMessage() {}

func (x *SessionCompositeResponse) ProtoReflect() protoreflect.Message {
	mi := &file_grading_proto_msgTypes[5]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use SessionCompositeResponse.ProtoReflect.Descriptor instead.
func (*SessionCompositeResponse) Descriptor() ([]byte, []int) {
	return file_grading_proto_rawDescGZIP(), []int{5}
}

func (x *SessionCompositeResponse) GetPercentage() float64 {
	if x != nil {
		return x.Percentage
	}
	return 0
}

func (x *SessionCompositeResponse) GetPass() bool {
	if x != nil {
		return x.Pass
	}
	return false
}

type TransitionSessionRequest struct {
	state     protoimpl.MessageState `protogen:"open.v1"`
	SessionId string                 `protobuf:"bytes,1,opt,name=session_id,json=sessionId,proto3" json:"session_id,omitempty"`
	// One of: start, complete, cancel, review, dispute.
	Action        string `protobuf:"bytes,2,opt,name=action,proto3" json:"action,omitempty"`
	Actor         string `protobuf:"bytes,3,opt,name=actor,proto3" json:"actor,omitempty"`
	Reason        string `protobuf:"bytes,4,opt,name=reason,proto3" json:"reason,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *TransitionSessionRequest) Reset() {
	*x = TransitionSessionRequest{}
	mi := &file_grading_proto_msgTypes[6]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *TransitionSessionRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*TransitionSessionRequest) ProtoMessage() {}

func (x *TransitionSessionRequest) ProtoReflect() protoreflect.Message {
	mi := &file_grading_proto_msgTypes[6]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use TransitionSessionRequest.ProtoReflect.Descriptor instead.
func (*TransitionSessionRequest) Descriptor() ([]byte, []int) {
	return file_grading_proto_rawDescGZIP(), []int{6}
}

func (x *TransitionSessionRequest) GetSessionId() string {
	if x != nil {
		return x.SessionId
	}
	return ""
}

func (x *TransitionSessionRequest) GetAction() string {
	if x != nil {
		return x.Action
	}
	return ""
}

func (x *TransitionSessionRequest) GetActor() string {
	if x != nil {
		return x.Actor
	}
	return ""
}

func (x *TransitionSessionRequest) GetReason() string {
	if x != nil {
		return x.Reason
	}
	return ""
}

type TransitionSessionResponse struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	Status        string                 `protobuf:"bytes,1,opt,name=status,proto3" json:"status,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *TransitionSessionResponse) Reset() {
	*x = TransitionSessionResponse{}
	mi := &file_grading_proto_msgTypes[7]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *TransitionSessionResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*TransitionSessionResponse) ProtoMessage() {}

func (x *TransitionSessionResponse) ProtoReflect() protoreflect.Message {
	mi := &file_grading_proto_msgTypes[7]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use TransitionSessionResponse.ProtoReflect.Descriptor instead.
func (*TransitionSessionResponse) Descriptor() ([]byte, []int) {
	return file_grading_proto_rawDescGZIP(), []int{7}
}

func (x *TransitionSessionResponse) GetStatus() string {
	if x != nil {
		return x.Status
	}
	return ""
}

type SessionReportResponse struct {
	state              protoimpl.MessageState `protogen:"open.v1"`
	SessionId          string                 `protobuf:"bytes,1,opt,name=session_id,json=sessionId,proto3" json:"session_id,omitempty"`
	CompositeScore     float64                `protobuf:"fixed64,2,opt,name=composite_score,json=compositeScore,proto3" json:"composite_score,omitempty"`
	Pass               bool                   `protobuf:"varint,3,opt,name=pass,proto3" json:"pass,omitempty"`
	Summary            string                 `protobuf:"bytes,4,opt,name=summary,proto3" json:"summary,omitempty"`
	Strengths          []string               `protobuf:"bytes,5,rep,name=strengths,proto3" json:"strengths,omitempty"`
	Improvements       []string               `protobuf:"bytes,6,rep,name=improvements,proto3" json:"improvements,omitempty"`
	Objections         []string               `protobuf:"bytes,7,rep,name=objections,proto3" json:"objections,omitempty"`
	Sentiment          string                 `protobuf:"bytes,8,opt,name=sentiment,proto3" json:"sentiment,omitempty"`
	TalkRatio          string                 `protobuf:"bytes,9,opt,name=talk_ratio,json=talkRatio,proto3" json:"talk_ratio,omitempty"`
	CompetitorMentions []string               `protobuf:"bytes,10,rep,name=competitor_mentions,json=competitorMentions,proto3" json:"competitor_mentions,omitempty"`
	ModelUsed          string                 `protobuf:"bytes,11,opt,name=model_used,json=modelUsed,proto3" json:"model_used,omitempty"`
	ProcessingTimeMs   int64                  `protobuf:"varint,12,opt,name=processing_time_ms,json=processingTimeMs,proto3" json:"processing_time_ms,omitempty"`
	TokensUsed         int64                  `protobuf:"varint,13,opt,name=tokens_used,json=tokensUsed,proto3" json:"tokens_used,omitempty"`
	CreatedAt          *timestamppb.Timestamp `protobuf:"bytes,14,opt,name=created_at,json=createdAt,proto3" json:"created_at,omitempty"`
	unknownFields      protoimpl.UnknownFields
	sizeCache          protoimpl.SizeCache
}

func (x *SessionReportResponse) Reset() {
	*x = SessionReportResponse{}
	mi := &file_grading_proto_msgTypes[8]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *SessionReportResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*SessionReportResponse) ProtoMessage() {}

func (x *SessionReportResponse) ProtoReflect() protoreflect.Message {
	mi := &file_grading_proto_msgTypes[8]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use SessionReportResponse.ProtoReflect.Descriptor instead.
func (*SessionReportResponse) Descriptor() ([]byte, []int) {
	return file_grading_proto_rawDescGZIP(), []int{8}
}

func (x *SessionReportResponse) GetSessionId() string {
	if x != nil {
		return x.SessionId
	}
	return ""
}

func (x *SessionReportResponse) GetCompositeScore() float64 {
	if x != nil {
		return x.CompositeScore
	}
	return 0
}

func (x *SessionReportResponse) GetPass() bool {
	if x != nil {
		return x.Pass
	}
	return false
}

func (x *SessionReportResponse) GetSummary() string {
	if x != nil {
		return x.Summary
	}
	return ""
}

func (x *SessionReportResponse) GetStrengths() []string {
	if x != nil {
		return x.Strengths
	}
	return nil
}

func (x *SessionReportResponse) GetImprovements() []string {
	if x != nil {
		return x.Improvements
	}
	return nil
}

func (x *SessionReportResponse) GetObjections() []string {
	if x != nil {
		return x.Objections
	}
	return nil
}

func (x *SessionReportResponse) GetSentiment() string {
	if x != nil {
		return x.Sentiment
	}
	return ""
}

func (x *SessionReportResponse) GetTalkRatio() string {
	if x != nil {
		return x.TalkRatio
	}
	return ""
}

func (x *SessionReportResponse) GetCompetitorMentions() []string {
	if x != nil {
		return x.CompetitorMentions
	}
	return nil
}

func (x *SessionReportResponse) GetModelUsed() string {
	if x != nil {
		return x.ModelUsed
	}
	return ""
}

func (x *SessionReportResponse) GetProcessingTimeMs() int64 {
	if x != nil {
		return x.ProcessingTimeMs
	}
	return 0
}

func (x *SessionReportResponse) GetTokensUsed() int64 {
	if x != nil {
		return x.TokensUsed
	}
	return 0
}

func (x *SessionReportResponse) GetCreatedAt() *timestamppb.Timestamp {
	if x != nil {
		return x.CreatedAt
	}
	return nil
}

var File_grading_proto protoreflect.FileDescriptor

const file_grading_proto_rawDesc = "" +
	"\n" +
	"\rgrading.proto\x12\n" +
	"grading.v1\x1a\x1fgoogle/protobuf/timestamp.proto\"O\n" +
	"\x18EnqueueGradingJobRequest\x12\x17\n" +
	"\acall_id\x18\x01 \x01(\tR\x06callId\x12\x1a\n" +
	"\bpriority\x18\x02 \x01(\x05R\bpriority\"?\n" +
	"\x19EnqueueGradingJobResponse\x12\"\n" +
	"\rqueue_item_id\x18\x01 \x01(\tR\vqueueItemId\"7\n" +
	"\x18ProcessQueueBatchRequest\x12\x1b\n" +
	"\tmax_items\x18\x01 \x01(\x05R\bmaxItems\"9\n" +
	"\x19ProcessQueueBatchResponse\x12\x1c\n" +
	"\tprocessed\x18\x01 \x01(\x05R\tprocessed\"/\n" +
	"\x0eSessionRequest\x12\x1d\n" +
	"\n" +
	"session_id\x18\x01 \x01(\tR\tsessionId\"N\n" +
	"\x18SessionCompositeResponse\x12\x1e\n" +
	"\n" +
	"percentage\x18\x01 \x01(\x01R\n" +
	"percentage\x12\x12\n" +
	"\x04pass\x18\x02 \x01(\bR\x04pass\"\x7f\n" +
	"\x18TransitionSessionRequest\x12\x1d\n" +
	"\n" +
	"session_id\x18\x01 \x01(\tR\tsessionId\x12\x16\n" +
	"\x06action\x18\x02 \x01(\tR\x06action\x12\x14\n" +
	"\x05actor\x18\x03 \x01(\tR\x05actor\x12\x16\n" +
	"\x06reason\x18\x04 \x01(\tR\x06reason\"3\n" +
	"\x19TransitionSessionResponse\x12\x16\n" +
	"\x06status\x18\x01 \x01(\tR\x06status\"\x86\x04\n" +
	"\x15SessionReportResponse\x12\x1d\n" +
	"\n" +
	"session_id\x18\x01 \x01(\tR\tsessionId\x12'\n" +
	"\x0fcomposite_score\x18\x02 \x01(\x01R\x0ecompositeScore\x12\x12\n" +
	"\x04pass\x18\x03 \x01(\bR\x04pass\x12\x18\n" +
	"\asummary\x18\x04 \x01(\tR\asummary\x12\x1c\n" +
	"\tstrengths\x18\x05 \x03(\tR\tstrengths\x12\"\n" +
	"\fimprovements\x18\x06 \x03(\tR\fimprovements\x12\x1e\n" +
	"\n" +
	"objections\x18\a \x03(\tR\n" +
	"objections\x12\x1c\n" +
	"\tsentiment\x18\b \x01(\tR\tsentiment\x12\x1d\n" +
	"\n" +
	"talk_ratio\x18\t \x01(\tR\ttalkRatio\x12/\n" +
	"\x13competitor_mentions\x18\n" +
	" \x03(\tR\x12competitorMentions\x12\x1d\n" +
	"\n" +
	"model_used\x18\v \x01(\tR\tmodelUsed\x12,\n" +
	"\x12processing_time_ms\x18\f \x01(\x03R\x10processingTimeMs\x12\x1f\n" +
	"\vtokens_used\x18\r \x01(\x03R\n" +
	"tokensUsed\x129\n" +
	"\n" +
	"created_at\x18\x0e \x01(\v2\x1a.google.protobuf.TimestampR\tcreatedAt2\xe3\x03\n" +
	"\x0fGradingPipeline\x12`\n" +
	"\x11EnqueueGradingJob\x12$.grading.v1.EnqueueGradingJobRequest\x1a%.grading.v1.EnqueueGradingJobResponse\x12`\n" +
	"\x11ProcessQueueBatch\x12$.grading.v1.ProcessQueueBatchRequest\x1a%.grading.v1.ProcessQueueBatchResponse\x12W\n" +
	"\x13GetSessionComposite\x12\x1a.grading.v1.SessionRequest\x1a$.grading.v1.SessionCompositeResponse\x12`\n" +
	"\x11TransitionSession\x12$.grading.v1.TransitionSessionRequest\x1a%.grading.v1.TransitionSessionResponse\x12Q\n" +
	"\x10GetSessionReport\x12\x1a.grading.v1.SessionRequest\x1a!.grading.v1.SessionReportResponseB2Z0github.com/coachlens/grading-server/api/v1;apiv1b\x06proto3"

var (
	file_grading_proto_rawDescOnce sync.Once
	file_grading_proto_rawDescData []byte
)

func file_grading_proto_rawDescGZIP() []byte {
	file_grading_proto_rawDescOnce.Do(func() {
		file_grading_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_grading_proto_rawDesc), len(file_grading_proto_rawDesc)))
	})
	return file_grading_proto_rawDescData
}

var file_grading_proto_msgTypes = make([]protoimpl.MessageInfo, 9)
var file_grading_proto_goTypes = []any{
	(*EnqueueGradingJobRequest)(nil),  // 0: grading.v1.EnqueueGradingJobRequest
	(*EnqueueGradingJobResponse)(nil), // 1: grading.v1.EnqueueGradingJobResponse
	(*ProcessQueueBatchRequest)(nil),  // 2: grading.v1.ProcessQueueBatchRequest
	(*ProcessQueueBatchResponse)(nil), // 3: grading.v1.ProcessQueueBatchResponse
	(*SessionRequest)(nil),            // 4: grading.v1.SessionRequest
	(*SessionCompositeResponse)(nil),  // 5: grading.v1.SessionCompositeResponse
	(*TransitionSessionRequest)(nil),  // 6: grading.v1.TransitionSessionRequest
	(*TransitionSessionResponse)(nil), // 7: grading.v1.TransitionSessionResponse
	(*SessionReportResponse)(nil),     // 8: grading.v1.SessionReportResponse
	(*timestamppb.Timestamp)(nil),     // 9: google.protobuf.Timestamp
}
var file_grading_proto_depIdxs = []int32{
	9, // 0: grading.v1.SessionReportResponse.created_at:type_name -> google.protobuf.Timestamp
	0, // 1: grading.v1.GradingPipeline.EnqueueGradingJob:input_type -> grading.v1.EnqueueGradingJobRequest
	2, // 2: grading.v1.GradingPipeline.ProcessQueueBatch:input_type -> grading.v1.ProcessQueueBatchRequest
	4, // 3: grading.v1.GradingPipeline.GetSessionComposite:input_type -> grading.v1.SessionRequest
	6, // 4: grading.v1.GradingPipeline.TransitionSession:input_type -> grading.v1.TransitionSessionRequest
	4, // 5: grading.v1.GradingPipeline.GetSessionReport:input_type -> grading.v1.SessionRequest
	1, // 6: grading.v1.GradingPipeline.EnqueueGradingJob:output_type -> grading.v1.EnqueueGradingJobResponse
	3, // 7: grading.v1.GradingPipeline.ProcessQueueBatch:output_type -> grading.v1.ProcessQueueBatchResponse
	5, // 8: grading.v1.GradingPipeline.GetSessionComposite:output_type -> grading.v1.SessionCompositeResponse
	7, // 9: grading.v1.GradingPipeline.TransitionSession:output_type -> grading.v1.TransitionSessionResponse
	8, // 10: grading.v1.GradingPipeline.GetSessionReport:output_type -> grading.v1.SessionReportResponse
	6, // [6:11] is the sub-list for method output_type
	1, // [1:6] is the sub-list for method input_type
	1, // [1:1] is the sub-list for extension type_name
	1, // [1:1] is the sub-list for extension extendee
	0, // [0:1] is the sub-list for field type_name
}

func init() { file_grading_proto_init() }
func file_grading_proto_init() {
	if File_grading_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_grading_proto_rawDesc), len(file_grading_proto_rawDesc)),
			NumEnums:      0,
			NumMessages:   9,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_grading_proto_goTypes,
		DependencyIndexes: file_grading_proto_depIdxs,
		MessageInfos:      file_grading_proto_msgTypes,
	}.Build()
	File_grading_proto = out.File
	file_grading_proto_goTypes = nil
	file_grading_proto_depIdxs = nil
}
