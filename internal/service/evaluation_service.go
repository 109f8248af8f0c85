package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/lshigami/softskills/config"
	"github.com/lshigami/softskills/internal/dto"
	"github.com/lshigami/softskills/internal/model"
	"github.com/lshigami/softskills/internal/repository"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

type EvaluationService interface {
	SubmitEvaluation(ctx context.Context, attemptID string, req dto.EvaluationRequest) (*dto.AttemptResponse, error)
}

type evaluationService struct {
	attemptRepo    repository.AttemptRepository
	scoreConverter ScoreConverterService
	cooldown       time.Duration
	clock          Clock
}

func NewEvaluationService(attemptRepo repository.AttemptRepository, scoreConverter ScoreConverterService, settings AttemptSettings, clock Clock) EvaluationService {
	cooldown := settings.Cooldown
	if cooldown <= 0 {
		cooldown = config.DefaultCooldown
	}
	if clock == nil {
		clock = time.Now
	}
	return &evaluationService{attemptRepo: attemptRepo, scoreConverter: scoreConverter, cooldown: cooldown, clock: clock}
}

func (s *evaluationService) SubmitEvaluation(ctx context.Context, attemptID string, req dto.EvaluationRequest) (*dto.AttemptResponse, error) {
	supervisorID := strings.TrimSpace(req.SupervisorID)
	if supervisorID == "" {
		return nil, NewValidationError("supervisor_id", "is required")
	}
	overall := strings.TrimSpace(req.Feedback)
	if overall == "" {
		return nil, NewValidationError("feedback", "is required")
	}
	decision := model.Decision(strings.ToLower(strings.TrimSpace(req.Decision)))
	if decision == "" {
		decision = model.DecisionApprove
	}
	if decision != model.DecisionApprove && decision != model.DecisionReject {
		return nil, NewValidationError("decision", "must be approve or reject")
	}

	attempt, err := s.attemptRepo.FindByID(ctx, attemptID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Resource: "attempt", ID: attemptID}
	}
	if err != nil {
		log.Error().Err(err).Str("attemptID", attemptID).Msg("SubmitEvaluation: failed to load attempt")
		return nil, errors.Wrap(err, "submit evaluation")
	}
	if attempt.Status != model.StatusPending {
		return nil, NewValidationError("status", "only pending attempts can be evaluated, attempt is "+string(attempt.Status))
	}

	if decision == model.DecisionApprove && req.RawScore == nil {
		return nil, NewValidationError("raw_score", "is required to approve an attempt")
	}

	var criteria []model.Criterion
	if len(req.Criteria) > 0 {
		if err := copier.Copy(&criteria, &req.Criteria); err != nil {
			return nil, errors.Wrap(err, "map criteria")
		}
	}
	score, err := s.scoreConverter.NormalizeSupervisorScore(req.RawScore, req.ScoreScale, criteria)
	if err != nil {
		return nil, err
	}

	now := s.clock().UTC().Truncate(time.Second)
	scale := req.ScoreScale
	if req.RawScore != nil && scale == 0 {
		scale = CanonicalMaxScore
	}
	feedback, err := json.Marshal(model.EvaluationFeedback{
		Overall:     overall,
		Criteria:    criteria,
		RawScore:    req.RawScore,
		ScoreScale:  scale,
		Decision:    decision,
		EvaluatedAt: now,
	})
	if err != nil {
		return nil, errors.Wrap(err, "encode supervisor feedback")
	}

	status := model.StatusEvaluated
	if decision == model.DecisionReject {
		status = model.StatusRejected
	}

	updated, err := s.attemptRepo.UpdateByID(ctx, attemptID, model.StatusPending, map[string]interface{}{
		"status":              status,
		"supervisor_id":       supervisorID,
		"supervisor_score":    score,
		"supervisor_feedback": datatypes.JSON(feedback),
		"evaluated_at":        now,
		"next_available_date": now.Add(s.cooldown),
		"updated_at":          now,
	})
	switch {
	case errors.Is(err, repository.ErrStatusChanged):
		return nil, NewValidationError("status", "attempt was evaluated concurrently")
	case errors.Is(err, repository.ErrNotFound):
		return nil, &NotFoundError{Resource: "attempt", ID: attemptID}
	case err != nil:
		log.Error().Err(err).Str("attemptID", attemptID).Msg("SubmitEvaluation: failed to store evaluation")
		return nil, errors.Wrap(err, "submit evaluation")
	}

	event := log.Info().Str("attemptID", attemptID).Str("supervisorID", supervisorID).Str("decision", string(decision))
	if score != nil {
		event = event.Int("supervisorScore", *score)
	}
	event.Msg("Attempt evaluated")

	return buildAttemptResponse(updated, s.scoreConverter)
}
