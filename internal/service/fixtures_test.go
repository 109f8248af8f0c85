package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lshigami/softskills/internal/dto"
	"github.com/lshigami/softskills/internal/model"
	"github.com/lshigami/softskills/internal/repository"
	"github.com/lshigami/softskills/internal/testutil"
	"github.com/stretchr/testify/require"
)

const testCooldown = 7 * 24 * time.Hour

type stubScorer struct {
	score    float64
	maxScore float64
	err      error
	delay    time.Duration
	calls    atomic.Int32
	lastReq  atomic.Pointer[ScoreRequest]
}

func (s *stubScorer) Name() string { return "stub" }

func (s *stubScorer) Score(ctx context.Context, req ScoreRequest) (*ScoreResult, error) {
	s.calls.Add(1)
	s.lastReq.Store(&req)
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return &ScoreResult{Score: s.score, MaxScore: s.maxScore, Feedback: "stub feedback"}, nil
}

type fixture struct {
	clock       *testutil.Clock
	scorer      *stubScorer
	attempts    repository.AttemptRepository
	assessments repository.AssessmentRepository
	users       repository.UserRepository
	lifecycle   AttemptService
	evaluation  EvaluationService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	f := &fixture{
		clock:       testutil.NewClock(time.Date(2026, 1, 5, 9, 0, 0, 0, time.UTC)),
		scorer:      &stubScorer{score: 8, maxScore: 10},
		attempts:    repository.NewAttemptRepository(db),
		assessments: repository.NewAssessmentRepository(db),
		users:       repository.NewUserRepository(db),
	}
	settings := AttemptSettings{Cooldown: testCooldown, ScorerTimeout: 2 * time.Second, EligibilityFailOpen: true}
	conv := NewScoreConverterService()
	f.lifecycle = NewAttemptService(f.attempts, f.assessments, f.scorer, conv, settings, f.clock.Now)
	f.evaluation = NewEvaluationService(f.attempts, conv, settings, f.clock.Now)
	return f
}

func (f *fixture) submit(t *testing.T, key model.AttemptKey, transcript string) *dto.AttemptResponse {
	t.Helper()
	resp, err := f.lifecycle.Submit(context.Background(), key, model.SubmissionRef{Transcript: transcript})
	require.NoError(t, err)
	return resp
}

func (f *fixture) approve(t *testing.T, attemptID string, raw float64) *dto.AttemptResponse {
	t.Helper()
	resp, err := f.evaluation.SubmitEvaluation(context.Background(), attemptID, dto.EvaluationRequest{
		SupervisorID: "sup-1",
		RawScore:     &raw,
		Feedback:     "Well structured answer.",
	})
	require.NoError(t, err)
	return resp
}

func floatPtr(v float64) *float64 { return &v }
