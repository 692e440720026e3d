package grpc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	pb "github.com/coachlens/grading-server/api/v1"
	"github.com/coachlens/grading-server/internal/repository/models"
	"github.com/coachlens/grading-server/internal/service"
)

const (
	defaultCacheDuration = 5 * time.Minute
	defaultGRPCTimeout   = 30 * time.Second
)

type CacheKeyType string

const (
	cacheKeySessionComposite CacheKeyType = "grpc:session_composite"
	cacheKeySessionReport    CacheKeyType = "grpc:session_report"
)

type GRPCHandlers struct {
	pb.UnimplementedGradingPipelineServer
	queue    QueueService
	sessions SessionService
	cache    Cacher
	logger   *zap.Logger
	sfGroup  singleflight.Group
	cacheTTL time.Duration
}

// NewGRPCHandlers initializes the gRPC handlers.
func NewGRPCHandlers(queue QueueService, sessions SessionService, cache Cacher, logger *zap.Logger, ttl time.Duration) *GRPCHandlers {
	if queue == nil {
		panic("nil QueueService provided to NewGRPCHandlers")
	}
	if sessions == nil {
		panic("nil SessionService provided to NewGRPCHandlers")
	}
	if ttl <= 0 {
		ttl = defaultCacheDuration
	}
	return &GRPCHandlers{
		queue:    queue,
		sessions: sessions,
		cache:    cache,
		logger:   logger.Named("grpc-handler"),
		cacheTTL: ttl,
	}
}

func sessionKey(prefix CacheKeyType, sessionID string) string {
	return fmt.Sprintf("%s:%s", prefix, sessionID)
}

func parseAction(raw string) (service.SessionAction, error) {
	switch action := service.SessionAction(raw); action {
	case service.ActionStart, service.ActionComplete, service.ActionCancel,
		service.ActionReview, service.ActionDispute:
		return action, nil
	default:
		return "", status.Errorf(codes.InvalidArgument, "unknown action %q", raw)
	}
}

func (s *GRPCHandlers) handleError(ctx context.Context, op string, err error) error {
	switch ctx.Err() {
	case context.Canceled:
		s.logger.Warn("request canceled", zap.String("op", op))
		return status.Error(codes.Canceled, "request canceled")
	case context.DeadlineExceeded:
		s.logger.Warn("request timeout", zap.String("op", op))
		return status.Error(codes.DeadlineExceeded, "request timed out")
	}

	switch {
	case errors.Is(err, service.ErrNotFound):
		s.logger.Info("resource not found", zap.String("op", op), zap.Error(err))
		return status.Error(codes.NotFound, "resource not found")
	case errors.Is(err, service.ErrInvalidTransition):
		s.logger.Info("invalid transition", zap.String("op", op), zap.Error(err))
		return status.Error(codes.FailedPrecondition, err.Error())
	case errors.Is(err, service.ErrGradingInFlight):
		s.logger.Info("grading in flight", zap.String("op", op), zap.Error(err))
		return status.Error(codes.FailedPrecondition, "grading is in flight for this call")
	case errors.Is(err, service.ErrInvalidTemplate):
		s.logger.Warn("invalid template", zap.String("op", op), zap.Error(err))
		return status.Error(codes.InvalidArgument, err.Error())
	case errors.Is(err, service.ErrStorageFailure):
		s.logger.Error("storage failure", zap.String("op", op), zap.Error(err))
		return status.Error(codes.Internal, "database error")
	default:
		s.logger.Error("unexpected error", zap.String("op", op), zap.Error(err))
		return status.Errorf(codes.Internal, "%s failed: %v", op, err)
	}
}

func (s *GRPCHandlers) EnqueueGradingJob(ctx context.Context, req *pb.EnqueueGradingJobRequest) (*pb.EnqueueGradingJobResponse, error) {
	if req.GetCallId() == "" {
		return nil, status.Error(codes.InvalidArgument, "call_id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	id, err := s.queue.Enqueue(ctx, req.GetCallId(), int(req.GetPriority()))
	if err != nil {
		return nil, s.handleError(ctx, "EnqueueGradingJob", err)
	}

	return &pb.EnqueueGradingJobResponse{QueueItemId: id}, nil
}

func (s *GRPCHandlers) ProcessQueueBatch(ctx context.Context, req *pb.ProcessQueueBatchRequest) (*pb.ProcessQueueBatchResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	processed, err := s.queue.ProcessBatch(ctx, int(req.GetMaxItems()))
	if err != nil {
		return nil, s.handleError(ctx, "ProcessQueueBatch", err)
	}

	return &pb.ProcessQueueBatchResponse{Processed: int32(processed)}, nil
}

func (s *GRPCHandlers) GetSessionComposite(ctx context.Context, req *pb.SessionRequest) (*pb.SessionCompositeResponse, error) {
	if req.GetSessionId() == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	cacheKey := sessionKey(cacheKeySessionComposite, req.GetSessionId())

	result, err := FindAndCache(ctx, s.cache, &s.sfGroup, cacheKey, s.cacheTTL, s.logger, func(fetchCtx context.Context) (service.CompositeResult, error) {
		return s.sessions.ComputeComposite(fetchCtx, req.GetSessionId())
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetSessionComposite", err)
	}

	return &pb.SessionCompositeResponse{
		Percentage: result.Percentage,
		Pass:       result.PassStatus,
	}, nil
}

func (s *GRPCHandlers) TransitionSession(ctx context.Context, req *pb.TransitionSessionRequest) (*pb.TransitionSessionResponse, error) {
	if req.GetSessionId() == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id is required")
	}
	action, err := parseAction(req.GetAction())
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	next, err := s.sessions.Transition(ctx, req.GetSessionId(), action, req.GetActor(), req.GetReason())
	if err != nil {
		return nil, s.handleError(ctx, "TransitionSession", err)
	}
	s.invalidateSession(ctx, req.GetSessionId())

	return &pb.TransitionSessionResponse{Status: string(next)}, nil
}

// invalidateSession drops the session's cached reads after a write so the
// next composite or report lookup reflects the new state instead of waiting
// out the TTL. Failures are logged and swallowed: the write already landed.
func (s *GRPCHandlers) invalidateSession(ctx context.Context, sessionID string) {
	keys := []string{
		sessionKey(cacheKeySessionComposite, sessionID),
		sessionKey(cacheKeySessionReport, sessionID),
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("cache invalidation failed",
			zap.String("session_id", sessionID),
			zap.Error(err))
	}
}

func (s *GRPCHandlers) GetSessionReport(ctx context.Context, req *pb.SessionRequest) (*pb.SessionReportResponse, error) {
	if req.GetSessionId() == "" {
		return nil, status.Error(codes.InvalidArgument, "session_id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, defaultGRPCTimeout)
	defer cancel()

	cacheKey := sessionKey(cacheKeySessionReport, req.GetSessionId())

	report, err := FindAndCache(ctx, s.cache, &s.sfGroup, cacheKey, s.cacheTTL, s.logger, func(fetchCtx context.Context) (reportPayload, error) {
		r, err := s.sessions.GetReport(fetchCtx, req.GetSessionId())
		if err != nil {
			return reportPayload{}, err
		}
		return newReportPayload(r), nil
	})
	if err != nil {
		return nil, s.handleError(ctx, "GetSessionReport", err)
	}

	return report.toProto(), nil
}

// reportPayload is the cache representation of a session report. Keeping it
// separate from the model avoids caching sql.Null* wrappers.
type reportPayload struct {
	SessionID          string   `json:"session_id"`
	CompositeScore     float64  `json:"composite_score"`
	PassStatus         bool     `json:"pass_status"`
	Summary            string   `json:"summary"`
	Strengths          []string `json:"strengths"`
	Improvements       []string `json:"improvements"`
	Objections         []string `json:"objections"`
	Sentiment          string   `json:"sentiment"`
	TalkRatio          string   `json:"talk_ratio"`
	CompetitorMentions []string `json:"competitor_mentions"`
	ModelUsed          string   `json:"model_used"`
	ProcessingTimeMs   int64    `json:"processing_time_ms"`
	TokensUsed         int64    `json:"tokens_used"`
	CreatedAtUnix      int64    `json:"created_at_unix"`
}

func newReportPayload(r models.Report) reportPayload {
	return reportPayload{
		SessionID:          r.SessionID,
		CompositeScore:     r.CompositeScore,
		PassStatus:         r.PassStatus,
		Summary:            r.Summary,
		Strengths:          r.Strengths,
		Improvements:       r.Improvements,
		Objections:         r.Objections,
		Sentiment:          r.Sentiment,
		TalkRatio:          r.TalkRatio,
		CompetitorMentions: r.CompetitorMentions,
		ModelUsed:          r.ModelUsed,
		ProcessingTimeMs:   r.ProcessingTimeMs,
		TokensUsed:         r.TokensUsed,
		CreatedAtUnix:      r.CreatedAt.Unix(),
	}
}

func (p reportPayload) toProto() *pb.SessionReportResponse {
	return &pb.SessionReportResponse{
		SessionId:          p.SessionID,
		CompositeScore:     p.CompositeScore,
		Pass:               p.PassStatus,
		Summary:            p.Summary,
		Strengths:          p.Strengths,
		Improvements:       p.Improvements,
		Objections:         p.Objections,
		Sentiment:          p.Sentiment,
		TalkRatio:          p.TalkRatio,
		CompetitorMentions: p.CompetitorMentions,
		ModelUsed:          p.ModelUsed,
		ProcessingTimeMs:   p.ProcessingTimeMs,
		TokensUsed:         p.TokensUsed,
		CreatedAt:          timestamppb.New(time.Unix(p.CreatedAtUnix, 0)),
	}
}
