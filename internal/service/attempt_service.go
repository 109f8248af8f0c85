package service

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/softskills/config"
	"github.com/lshigami/softskills/internal/dto"
	"github.com/lshigami/softskills/internal/model"
	"github.com/lshigami/softskills/internal/repository"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	fallbackScore    = 50.0
	fallbackFeedback = "Automatic scoring is not available right now. Your response has been saved and a supervisor will review it."
)

// Clock is the time source for lifecycle decisions.
type Clock func() time.Time

func NewSystemClock() Clock { return time.Now }

type AttemptSettings struct {
	Cooldown            time.Duration
	ScorerTimeout       time.Duration
	EligibilityFailOpen bool
}

func NewAttemptSettings(cfg *config.Config) AttemptSettings {
	return AttemptSettings{
		Cooldown:            cfg.Attempt.Cooldown,
		ScorerTimeout:       cfg.Scorer.Timeout,
		EligibilityFailOpen: cfg.Attempt.EligibilityFailOpen,
	}
}

var eligibilityFailOpens atomic.Int64

// EligibilityFailOpens reports how many eligibility checks were let through on a store error.
func EligibilityFailOpens() int64 { return eligibilityFailOpens.Load() }

type AttemptService interface {
	CheckEligibility(ctx context.Context, key model.AttemptKey) (*dto.EligibilityResponse, error)
	Submit(ctx context.Context, key model.AttemptKey, ref model.SubmissionRef) (*dto.AttemptResponse, error)
	GetAttempt(ctx context.Context, id string) (*dto.AttemptResponse, error)
	ListUserAttempts(ctx context.Context, userID string) ([]dto.AttemptSummaryDTO, error)
}

type attemptService struct {
	attemptRepo    repository.AttemptRepository
	assessmentRepo repository.AssessmentRepository
	scorer         AutoScorer
	scoreConverter ScoreConverterService
	settings       AttemptSettings
	clock          Clock
}

func NewAttemptService(
	attemptRepo repository.AttemptRepository,
	assessmentRepo repository.AssessmentRepository,
	scorer AutoScorer,
	scoreConverter ScoreConverterService,
	settings AttemptSettings,
	clock Clock,
) AttemptService {
	if settings.Cooldown <= 0 {
		settings.Cooldown = config.DefaultCooldown
	}
	if settings.ScorerTimeout <= 0 {
		settings.ScorerTimeout = config.DefaultScorerTimeout
	}
	if clock == nil {
		clock = time.Now
	}
	return &attemptService{
		attemptRepo:    attemptRepo,
		assessmentRepo: assessmentRepo,
		scorer:         scorer,
		scoreConverter: scoreConverter,
		settings:       settings,
		clock:          clock,
	}
}

func (s *attemptService) now() time.Time {
	return s.clock().UTC().Truncate(time.Second)
}

func (s *attemptService) CheckEligibility(ctx context.Context, key model.AttemptKey) (*dto.EligibilityResponse, error) {
	key = key.Normalize()
	if err := validateKey(key); err != nil {
		return nil, err
	}

	resp, err := s.eligibility(ctx, key, s.now())
	if err != nil {
		if !s.settings.EligibilityFailOpen {
			return nil, errors.Wrap(err, "check eligibility")
		}
		total := eligibilityFailOpens.Add(1)
		log.Warn().Err(err).Str("key", key.String()).Int64("failOpenTotal", total).
			Msg("CheckEligibility: store unavailable, allowing attempt (fail-open)")
		return &dto.EligibilityResponse{Available: true}, nil
	}
	return resp, nil
}

func (s *attemptService) eligibility(ctx context.Context, key model.AttemptKey, now time.Time) (*dto.EligibilityResponse, error) {
	existing, err := s.attemptRepo.FindByKey(ctx, key)
	if errors.Is(err, repository.ErrNotFound) {
		return &dto.EligibilityResponse{Available: true}, nil
	}
	if err != nil {
		return nil, err
	}
	return eligibilityOf(existing, now), nil
}

func eligibilityOf(a *model.Attempt, now time.Time) *dto.EligibilityResponse {
	switch a.Status {
	case model.StatusPending:
		return &dto.EligibilityResponse{Reason: ReasonPendingReview, PendingAttemptID: a.ID}
	case model.StatusEvaluated:
		if now.Before(a.NextAvailableDate) {
			next := a.NextAvailableDate
			return &dto.EligibilityResponse{Reason: ReasonCooldown, NextAvailableDate: &next}
		}
	}
	return &dto.EligibilityResponse{Available: true}
}

func (s *attemptService) Submit(ctx context.Context, key model.AttemptKey, ref model.SubmissionRef) (*dto.AttemptResponse, error) {
	key = key.Normalize()
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if ref.Empty() {
		return nil, NewValidationError("transcript", "a transcript or video_url is required")
	}

	now := s.now()
	elig, err := s.eligibility(ctx, key, now)
	if err != nil {
		log.Error().Err(err).Str("key", key.String()).Msg("Submit: failed to read existing attempt")
		return nil, errors.Wrap(err, "submit attempt")
	}
	if !elig.Available {
		return nil, ineligibleFrom(elig)
	}

	scoreReq := s.buildScoreRequest(ctx, key, ref)
	result := s.scoreWithFallback(ctx, scoreReq)

	autoScore, err := s.scoreConverter.ToCanonical(result.Score, result.MaxScore)
	if err != nil {
		log.Warn().Err(err).Str("scorer", s.scorer.Name()).Msg("Submit: scorer result unusable, using fallback score")
		autoScore = fallbackScore
		result = &ScoreResult{Score: fallbackScore, MaxScore: CanonicalMaxScore, Feedback: fallbackFeedback}
	}

	attempt := &model.Attempt{
		ID:                uuid.NewString(),
		Transcript:        ref.Transcript,
		VideoURL:          ref.VideoURL,
		VideoID:           ref.VideoID,
		AutoScore:         &autoScore,
		AutoFeedback:      result.Feedback,
		Status:            model.StatusPending,
		CreatedAt:         now,
		NextAvailableDate: now.Add(s.settings.Cooldown),
	}
	attempt.SetKey(key)
	if len(result.Criteria) > 0 {
		if raw, err := json.Marshal(result.Criteria); err == nil {
			attempt.AutoCriteria = raw
		}
	}

	saved, err := s.attemptRepo.UpsertByKey(ctx, attempt, now)
	if errors.Is(err, repository.ErrAttemptLocked) {
		// lost a race with another submission for the same key
		current, findErr := s.attemptRepo.FindByKey(ctx, key)
		if findErr != nil {
			return nil, &IneligibleError{Reason: ReasonPendingReview}
		}
		return nil, ineligibleFrom(eligibilityOf(current, now))
	}
	if err != nil {
		log.Error().Err(err).Str("key", key.String()).Msg("Submit: failed to persist attempt")
		return nil, errors.Wrap(err, "submit attempt")
	}

	log.Info().Str("attemptID", saved.ID).Str("key", key.String()).Float64("autoScore", autoScore).Msg("Attempt submitted")
	return s.toResponse(saved)
}

func (s *attemptService) buildScoreRequest(ctx context.Context, key model.AttemptKey, ref model.SubmissionRef) ScoreRequest {
	req := ScoreRequest{
		Key:        key,
		Prompt:     defaultPrompt(key.Kind),
		Criteria:   defaultCriteria[key.Kind],
		Submission: ref,
	}
	assessment, err := s.assessmentRepo.FindByScope(ctx, key)
	switch {
	case err == nil:
		req.Prompt = assessment.Prompt
		req.MaxScore = assessment.MaxScore
		if specs := assessment.CriteriaSpecs(); len(specs) > 0 {
			req.Criteria = specs
		}
	case errors.Is(err, repository.ErrNotFound):
		log.Debug().Str("key", key.String()).Msg("No assessment definition for key, using built-in prompt")
	default:
		log.Warn().Err(err).Str("key", key.String()).Msg("Failed to load assessment definition, using built-in prompt")
	}
	return req
}

// scoreWithFallback never fails: scorer errors, timeouts and empty results
// degrade to the fallback score.
func (s *attemptService) scoreWithFallback(ctx context.Context, req ScoreRequest) *ScoreResult {
	scoreCtx, cancel := context.WithTimeout(ctx, s.settings.ScorerTimeout)
	defer cancel()

	result, err := s.scorer.Score(scoreCtx, req)
	if err == nil && result == nil {
		err = errors.New("scorer returned no result")
	}
	if err != nil {
		scoringErr := &ScoringError{Provider: s.scorer.Name(), Err: err}
		log.Warn().Err(scoringErr).Str("key", req.Key.String()).Msg("Auto scoring failed, using fallback score")
		return &ScoreResult{Score: fallbackScore, MaxScore: CanonicalMaxScore, Feedback: fallbackFeedback}
	}
	return result
}

func (s *attemptService) GetAttempt(ctx context.Context, id string) (*dto.AttemptResponse, error) {
	attempt, err := s.attemptRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Resource: "attempt", ID: id}
	}
	if err != nil {
		log.Error().Err(err).Str("attemptID", id).Msg("GetAttempt: failed to load attempt")
		return nil, errors.Wrap(err, "get attempt")
	}
	return s.toResponse(attempt)
}

func (s *attemptService) ListUserAttempts(ctx context.Context, userID string) ([]dto.AttemptSummaryDTO, error) {
	if userID == "" {
		return nil, NewValidationError("user_id", "is required")
	}
	attempts, err := s.attemptRepo.ListByUserID(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("ListUserAttempts: failed to list attempts")
		return nil, errors.Wrap(err, "list user attempts")
	}
	summaries := make([]dto.AttemptSummaryDTO, 0, len(attempts))
	if err := copier.Copy(&summaries, &attempts); err != nil {
		return nil, errors.Wrap(err, "map attempt summaries")
	}
	return summaries, nil
}

func (s *attemptService) toResponse(a *model.Attempt) (*dto.AttemptResponse, error) {
	return buildAttemptResponse(a, s.scoreConverter)
}

func buildAttemptResponse(a *model.Attempt, conv ScoreConverterService) (*dto.AttemptResponse, error) {
	var resp dto.AttemptResponse
	if err := copier.Copy(&resp, a); err != nil {
		log.Error().Err(err).Str("attemptID", a.ID).Msg("Failed to copy attempt model to DTO")
		return nil, errors.Wrap(err, "map attempt")
	}
	resp.AutoBreakdown = a.AutoCriteriaList()
	resp.AutoBandScore = conv.BandScore(a.Kind, a.AutoScore)
	if a.SupervisorScore != nil {
		score := float64(*a.SupervisorScore)
		resp.SupervisorBandScore = conv.BandScore(a.Kind, &score)
	}
	evaluation, err := a.Evaluation()
	if err != nil {
		log.Warn().Err(err).Str("attemptID", a.ID).Msg("Malformed supervisor feedback document")
	}
	resp.SupervisorEvaluation = evaluation
	return &resp, nil
}

func validateKey(key model.AttemptKey) error {
	if key.UserID == "" {
		return NewValidationError("user_id", "is required")
	}
	if key.Kind == "" {
		return NewValidationError("kind", "is required")
	}
	if !key.Kind.Valid() {
		return NewValidationError("kind", "must be one of leadership, problem_solving, adaptability, speaking, presentation")
	}
	return nil
}

func ineligibleFrom(e *dto.EligibilityResponse) *IneligibleError {
	return &IneligibleError{
		Reason:            e.Reason,
		NextAvailableDate: e.NextAvailableDate,
		PendingAttemptID:  e.PendingAttemptID,
	}
}
