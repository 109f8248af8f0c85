package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lshigami/softskills/internal/dto"
	"github.com/lshigami/softskills/internal/model"
	"github.com/lshigami/softskills/internal/repository"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckEligibility_NoPriorAttempt(t *testing.T) {
	f := newFixture(t)

	got, err := f.lifecycle.CheckEligibility(context.Background(), model.AttemptKey{UserID: "u1", Kind: model.KindLeadership})
	require.NoError(t, err)
	assert.True(t, got.Available)
	assert.Empty(t, got.Reason)
}

func TestSubmit_StoresPendingAttemptWithCanonicalScore(t *testing.T) {
	f := newFixture(t)
	now := f.clock.Now()

	resp := f.submit(t, model.AttemptKey{UserID: "u1", Kind: model.KindLeadership}, "I led the migration.")

	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, model.StatusPending, resp.Status)
	require.NotNil(t, resp.AutoScore)
	assert.Equal(t, 80.0, *resp.AutoScore)
	assert.Equal(t, "stub feedback", resp.AutoFeedback)
	assert.Nil(t, resp.AutoBandScore)
	assert.Nil(t, resp.SupervisorScore)
	assert.True(t, resp.CreatedAt.Equal(now))
	assert.True(t, resp.NextAvailableDate.Equal(now.Add(testCooldown)))
}

func TestSubmit_NormalizesKey(t *testing.T) {
	f := newFixture(t)

	resp := f.submit(t, model.AttemptKey{UserID: " u1 ", Kind: "Speaking", Language: "EN"}, "hello")
	assert.Equal(t, "u1", resp.UserID)
	assert.Equal(t, model.KindSpeaking, resp.Kind)
	assert.Equal(t, "en", resp.Language)

	got, err := f.lifecycle.CheckEligibility(context.Background(), model.AttemptKey{UserID: "u1", Kind: model.KindSpeaking, Language: "en"})
	require.NoError(t, err)
	assert.False(t, got.Available)
}

func TestSubmit_SpeakingGetsBandScore(t *testing.T) {
	f := newFixture(t)

	resp := f.submit(t, model.AttemptKey{UserID: "u1", Kind: model.KindSpeaking}, "hello")
	require.NotNil(t, resp.AutoBandScore)
	assert.Equal(t, 7.0, *resp.AutoBandScore)
}

func TestSubmit_BlockedWhilePending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	key := model.AttemptKey{UserID: "u1", Kind: model.KindProblemSolving, TaskID: "t-1"}

	first := f.submit(t, key, "first")

	elig, err := f.lifecycle.CheckEligibility(ctx, key)
	require.NoError(t, err)
	assert.False(t, elig.Available)
	assert.Equal(t, ReasonPendingReview, elig.Reason)
	assert.Equal(t, first.ID, elig.PendingAttemptID)

	f.clock.Advance(30 * 24 * time.Hour)
	_, err = f.lifecycle.Submit(ctx, key, model.SubmissionRef{Transcript: "second"})
	var ineligible *IneligibleError
	require.ErrorAs(t, err, &ineligible)
	assert.Equal(t, ReasonPendingReview, ineligible.Reason)
	assert.Equal(t, first.ID, ineligible.PendingAttemptID)

	stored, err := f.lifecycle.GetAttempt(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", stored.Transcript)
}

func TestSubmit_CooldownAfterEvaluationThenOverwrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	key := model.AttemptKey{UserID: "u1", Kind: model.KindAdaptability}

	first := f.submit(t, key, "first")
	f.clock.Advance(2 * time.Hour)
	evaluatedAt := f.clock.Now()
	f.approve(t, first.ID, 70)

	elig, err := f.lifecycle.CheckEligibility(ctx, key)
	require.NoError(t, err)
	assert.False(t, elig.Available)
	assert.Equal(t, ReasonCooldown, elig.Reason)
	require.NotNil(t, elig.NextAvailableDate)
	assert.True(t, elig.NextAvailableDate.Equal(evaluatedAt.Add(testCooldown)))

	_, err = f.lifecycle.Submit(ctx, key, model.SubmissionRef{Transcript: "too early"})
	var ineligible *IneligibleError
	require.ErrorAs(t, err, &ineligible)
	assert.Equal(t, ReasonCooldown, ineligible.Reason)

	f.clock.Advance(testCooldown - time.Second)
	elig, err = f.lifecycle.CheckEligibility(ctx, key)
	require.NoError(t, err)
	assert.False(t, elig.Available)

	f.clock.Advance(time.Second)
	elig, err = f.lifecycle.CheckEligibility(ctx, key)
	require.NoError(t, err)
	assert.True(t, elig.Available)

	second := f.submit(t, key, "second")
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, model.StatusPending, second.Status)
	assert.Equal(t, "second", second.Transcript)
	assert.Nil(t, second.SupervisorScore)
	assert.Nil(t, second.SupervisorID)
	assert.Nil(t, second.SupervisorEvaluation)
	assert.Nil(t, second.EvaluatedAt)
	assert.True(t, second.CreatedAt.Equal(f.clock.Now()))

	history, err := f.lifecycle.ListUserAttempts(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestSubmit_RejectedIsImmediatelyEligible(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	key := model.AttemptKey{UserID: "u1", Kind: model.KindPresentation, Level: "b2"}

	first := f.submit(t, key, "first")
	_, err := f.evaluation.SubmitEvaluation(ctx, first.ID, dto.EvaluationRequest{
		SupervisorID: "sup-1",
		Feedback:     "Video is unrelated to the task.",
		Decision:     "reject",
	})
	require.NoError(t, err)

	elig, err := f.lifecycle.CheckEligibility(ctx, key)
	require.NoError(t, err)
	assert.True(t, elig.Available)

	second := f.submit(t, key, "second")
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, model.StatusPending, second.Status)
}

func TestSubmit_KeysAreIndependent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.submit(t, model.AttemptKey{UserID: "u1", Kind: model.KindSpeaking, Language: "en"}, "en")

	for _, key := range []model.AttemptKey{
		{UserID: "u1", Kind: model.KindSpeaking, Language: "fr"},
		{UserID: "u1", Kind: model.KindSpeaking},
		{UserID: "u2", Kind: model.KindSpeaking, Language: "en"},
		{UserID: "u1", Kind: model.KindLeadership, Language: "en"},
	} {
		elig, err := f.lifecycle.CheckEligibility(ctx, key)
		require.NoError(t, err)
		assert.True(t, elig.Available, key.String())
	}
}

func TestSubmit_ScorerErrorUsesFallback(t *testing.T) {
	f := newFixture(t)
	f.scorer.err = errors.New("quota exceeded")

	resp := f.submit(t, model.AttemptKey{UserID: "u1", Kind: model.KindLeadership}, "answer")
	require.NotNil(t, resp.AutoScore)
	assert.Equal(t, fallbackScore, *resp.AutoScore)
	assert.Equal(t, fallbackFeedback, resp.AutoFeedback)
	assert.Equal(t, model.StatusPending, resp.Status)
}

func TestSubmit_ScorerTimeoutUsesFallback(t *testing.T) {
	f := newFixture(t)
	f.scorer.delay = time.Second
	conv := NewScoreConverterService()
	settings := AttemptSettings{Cooldown: testCooldown, ScorerTimeout: 20 * time.Millisecond}
	lifecycle := NewAttemptService(f.attempts, f.assessments, f.scorer, conv, settings, f.clock.Now)

	start := time.Now()
	resp, err := lifecycle.Submit(context.Background(), model.AttemptKey{UserID: "u1", Kind: model.KindLeadership}, model.SubmissionRef{Transcript: "answer"})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 900*time.Millisecond)
	require.NotNil(t, resp.AutoScore)
	assert.Equal(t, fallbackScore, *resp.AutoScore)
}

func TestSubmit_OutOfRangeScorerResultIsClamped(t *testing.T) {
	f := newFixture(t)
	f.scorer.score = 12
	f.scorer.maxScore = 10

	resp := f.submit(t, model.AttemptKey{UserID: "u1", Kind: model.KindLeadership}, "answer")
	require.NotNil(t, resp.AutoScore)
	assert.Equal(t, 100.0, *resp.AutoScore)
}

func TestSubmit_UsesCatalogPrompt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.assessments.Create(ctx, &model.Assessment{
		ID:       "as-1",
		Kind:     model.KindLeadership,
		TaskID:   "t-9",
		Title:    "Team conflict",
		Prompt:   "Describe how you resolved a conflict between two senior engineers.",
		MaxScore: 10,
	}))

	f.submit(t, model.AttemptKey{UserID: "u1", Kind: model.KindLeadership, TaskID: "t-9"}, "answer")
	req := f.scorer.lastReq.Load()
	require.NotNil(t, req)
	assert.Equal(t, "Describe how you resolved a conflict between two senior engineers.", req.Prompt)
	assert.Equal(t, 10.0, req.MaxScore)

	f.submit(t, model.AttemptKey{UserID: "u1", Kind: model.KindLeadership, TaskID: "other"}, "answer")
	req = f.scorer.lastReq.Load()
	assert.Equal(t, defaultPrompt(model.KindLeadership), req.Prompt)
}

func TestSubmit_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		key   model.AttemptKey
		ref   model.SubmissionRef
		field string
	}{
		{"missing user", model.AttemptKey{Kind: model.KindLeadership}, model.SubmissionRef{Transcript: "x"}, "user_id"},
		{"missing kind", model.AttemptKey{UserID: "u1"}, model.SubmissionRef{Transcript: "x"}, "kind"},
		{"unknown kind", model.AttemptKey{UserID: "u1", Kind: "negotiation"}, model.SubmissionRef{Transcript: "x"}, "kind"},
		{"empty submission", model.AttemptKey{UserID: "u1", Kind: model.KindLeadership}, model.SubmissionRef{}, "transcript"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.lifecycle.Submit(ctx, tc.key, tc.ref)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Fields[0].Field)
		})
	}
	assert.Zero(t, f.scorer.calls.Load())
}

func TestSubmit_VideoOnlyIsAccepted(t *testing.T) {
	f := newFixture(t)

	resp, err := f.lifecycle.Submit(context.Background(),
		model.AttemptKey{UserID: "u1", Kind: model.KindPresentation},
		model.SubmissionRef{VideoURL: "https://cdn.example.com/v/1.mp4", VideoID: "v-1"})
	require.NoError(t, err)
	assert.Equal(t, "v-1", resp.VideoID)
}

func TestSubmit_ConcurrentSubmissionsYieldOneAttempt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	key := model.AttemptKey{UserID: "u1", Kind: model.KindSpeaking, Language: "en", Level: "b1", TaskID: "t-1"}

	const writers = 8
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		ineligible int
		others     []error
	)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.lifecycle.Submit(ctx, key, model.SubmissionRef{Transcript: "concurrent"})
			mu.Lock()
			defer mu.Unlock()
			var ie *IneligibleError
			switch {
			case err == nil:
				successes++
			case errors.As(err, &ie):
				ineligible++
			default:
				others = append(others, err)
			}
		}()
	}
	wg.Wait()

	assert.Empty(t, others)
	assert.Equal(t, 1, successes)
	assert.Equal(t, writers-1, ineligible)

	history, err := f.lifecycle.ListUserAttempts(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestGetAttempt_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.lifecycle.GetAttempt(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
}

func TestListUserAttempts_NewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	older := f.submit(t, model.AttemptKey{UserID: "u1", Kind: model.KindLeadership}, "a")
	f.clock.Advance(time.Minute)
	newer := f.submit(t, model.AttemptKey{UserID: "u1", Kind: model.KindSpeaking}, "b")
	f.submit(t, model.AttemptKey{UserID: "u2", Kind: model.KindSpeaking}, "c")

	list, err := f.lifecycle.ListUserAttempts(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)
	assert.Equal(t, model.StatusPending, list[0].Status)
}

// brokenAttemptRepo fails every read.
type brokenAttemptRepo struct {
	repository.AttemptRepository
}

func (brokenAttemptRepo) FindByKey(context.Context, model.AttemptKey) (*model.Attempt, error) {
	return nil, errors.New("connection refused")
}

func TestCheckEligibility_StoreErrorFailsOpen(t *testing.T) {
	f := newFixture(t)
	conv := NewScoreConverterService()
	before := EligibilityFailOpens()

	open := NewAttemptService(brokenAttemptRepo{}, f.assessments, f.scorer, conv,
		AttemptSettings{Cooldown: testCooldown, EligibilityFailOpen: true}, f.clock.Now)
	got, err := open.CheckEligibility(context.Background(), model.AttemptKey{UserID: "u1", Kind: model.KindLeadership})
	require.NoError(t, err)
	assert.True(t, got.Available)
	assert.Equal(t, before+1, EligibilityFailOpens())

	closed := NewAttemptService(brokenAttemptRepo{}, f.assessments, f.scorer, conv,
		AttemptSettings{Cooldown: testCooldown, EligibilityFailOpen: false}, f.clock.Now)
	_, err = closed.CheckEligibility(context.Background(), model.AttemptKey{UserID: "u1", Kind: model.KindLeadership})
	assert.Error(t, err)
}

func TestSubmit_StoreErrorIsSurfaced(t *testing.T) {
	f := newFixture(t)
	lifecycle := NewAttemptService(brokenAttemptRepo{}, f.assessments, f.scorer, NewScoreConverterService(),
		AttemptSettings{Cooldown: testCooldown, EligibilityFailOpen: true}, f.clock.Now)

	_, err := lifecycle.Submit(context.Background(), model.AttemptKey{UserID: "u1", Kind: model.KindLeadership}, model.SubmissionRef{Transcript: "x"})
	require.Error(t, err)
	var ie *IneligibleError
	assert.False(t, errors.As(err, &ie))
	assert.False(t, IsValidation(err))
}
