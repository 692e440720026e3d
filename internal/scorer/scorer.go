// Package scorer is the client for the external LLM scoring provider. The
// provider is treated as an opaque scorer: it receives the rubric and the
// transcript and returns structured per-criterion values plus narrative
// coaching fields. The client never retries; transient failures propagate to
// the processing queue, which owns retry policy.
package scorer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.uber.org/zap"

	"github.com/coachlens/grading-server/internal/scoring"
)

var (
	// ErrUnavailable covers timeouts, connection failures, rate limits and
	// provider 5xx responses. The queue retries these with backoff.
	ErrUnavailable = errors.New("scorer unavailable")
	// ErrMalformedResponse covers undecodable or schema-violating payloads.
	ErrMalformedResponse = errors.New("malformed scorer response")
)

const maxResponseBytes = 4 << 20

// CriterionPrompt is one rubric item as presented to the provider.
type CriterionPrompt struct {
	ID       string                  `json:"id"`
	Name     string                  `json:"name"`
	Type     scoring.CriterionType   `json:"type"`
	Config   scoring.CriterionConfig `json:"config"`
	Weight   float64                 `json:"weight"`
	MaxScore float64                 `json:"maxScore"`
	Group    string                  `json:"group,omitempty"`
}

type Request struct {
	CallID        string                `json:"callId"`
	Transcript    string                `json:"transcript"`
	TemplateName  string                `json:"templateName"`
	ScoringMethod scoring.ScoringMethod `json:"scoringMethod"`
	Criteria      []CriterionPrompt     `json:"criteria"`
}

// CriterionScore is one provider answer. Value is type-shaped per the
// criterion and decoded lazily by the scoring engine.
type CriterionScore struct {
	CriterionID string `json:"criterionId"`
	Value       any    `json:"value"`
	IsNA        bool   `json:"isNa,omitempty"`
	Feedback    string `json:"feedback,omitempty"`
	AutoFail    bool   `json:"autoFail,omitempty"`
}

type Usage struct {
	TotalTokens int64 `json:"totalTokens"`
}

type Response struct {
	CriteriaScores     []CriterionScore `json:"criteriaScores"`
	Summary            string           `json:"summary"`
	Strengths          []string         `json:"strengths"`
	Improvements       []string         `json:"improvements"`
	Objections         []string         `json:"objections"`
	Sentiment          string           `json:"sentiment"`
	TalkRatio          string           `json:"talkRatio"`
	CompetitorMentions []string         `json:"competitorMentions"`
	Model              string           `json:"model"`
	Usage              Usage            `json:"usage"`
}

// responseSchema is the contract the provider payload must satisfy before
// any mapping happens. Everything beyond the required core is permissive so
// new narrative fields do not break older servers.
const responseSchema = `{
	"type": "object",
	"required": ["criteriaScores"],
	"properties": {
		"criteriaScores": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["criterionId"],
				"properties": {
					"criterionId": {"type": "string", "minLength": 1},
					"isNa": {"type": "boolean"},
					"feedback": {"type": "string"},
					"autoFail": {"type": "boolean"}
				}
			}
		},
		"summary": {"type": "string"},
		"strengths": {"type": "array", "items": {"type": "string"}},
		"improvements": {"type": "array", "items": {"type": "string"}},
		"objections": {"type": "array", "items": {"type": "string"}},
		"sentiment": {"type": "string"},
		"talkRatio": {"type": "string"},
		"competitorMentions": {"type": "array", "items": {"type": "string"}},
		"model": {"type": "string"},
		"usage": {
			"type": "object",
			"properties": {"totalTokens": {"type": "integer", "minimum": 0}}
		}
	}
}`

type Options struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	Logger  *zap.Logger
}

type Option func(*Options)

func WithBaseURL(url string) Option {
	return func(o *Options) { o.BaseURL = url }
}

func WithAPIKey(key string) Option {
	return func(o *Options) { o.APIKey = key }
}

func WithModel(model string) Option {
	return func(o *Options) { o.Model = model }
}

func WithTimeout(d time.Duration) Option {
	return func(o *Options) { o.Timeout = d }
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// HTTPClient talks JSON over HTTP to the scoring provider.
type HTTPClient struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
	schema  *jsonschema.Schema
	logger  *zap.Logger
}

func New(opts ...Option) (*HTTPClient, error) {
	options := &Options{
		BaseURL: "http://localhost:8089",
		Timeout: 90 * time.Second,
		Logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(options)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("scorer_response.json", bytes.NewReader([]byte(responseSchema))); err != nil {
		return nil, fmt.Errorf("add response schema: %w", err)
	}
	schema, err := compiler.Compile("scorer_response.json")
	if err != nil {
		return nil, fmt.Errorf("compile response schema: %w", err)
	}

	return &HTTPClient{
		baseURL: options.BaseURL,
		apiKey:  options.APIKey,
		model:   options.Model,
		http:    &http.Client{Timeout: options.Timeout},
		schema:  schema,
		logger:  options.Logger.Named("scorer"),
	}, nil
}

// Score submits the rubric and transcript and returns the validated provider
// response. No internal retries: the caller's queue owns backoff.
func (c *HTTPClient) Score(ctx context.Context, req Request) (*Response, error) {
	payload := struct {
		Request
		Model string `json:"model,omitempty"`
	}{Request: req, Model: c.model}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal scorer request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/evaluations", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build scorer request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: provider status %d", ErrUnavailable, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: provider status %d", ErrMalformedResponse, resp.StatusCode)
	}

	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if err := c.schema.Validate(generic); err != nil {
		c.logger.Warn("provider response failed schema validation",
			zap.String("call_id", req.CallID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if out.Model == "" {
		out.Model = c.model
	}

	c.logger.Debug("scorer response received",
		zap.String("call_id", req.CallID),
		zap.Int("criteria_scored", len(out.CriteriaScores)),
		zap.Int64("tokens", out.Usage.TotalTokens))

	return &out, nil
}
