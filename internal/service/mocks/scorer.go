package mocks

import (
	"context"
	"errors"

	"github.com/coachlens/grading-server/internal/scorer"
)

type MockScorer struct {
	ScoreFunc func(ctx context.Context, req scorer.Request) (*scorer.Response, error)
}

func (m *MockScorer) Score(ctx context.Context, req scorer.Request) (*scorer.Response, error) {
	if m.ScoreFunc != nil {
		return m.ScoreFunc(ctx, req)
	}
	return nil, errors.New("ScoreFunc not implemented")
}
