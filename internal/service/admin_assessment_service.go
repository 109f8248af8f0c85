package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/lshigami/softskills/internal/dto"
	"github.com/lshigami/softskills/internal/model"
	"github.com/lshigami/softskills/internal/repository"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type AdminAssessmentService interface {
	CreateAssessment(ctx context.Context, req dto.AssessmentCreateDTO) (*dto.AssessmentResponseDTO, error)
	ListAssessments(ctx context.Context, kind string) ([]dto.AssessmentResponseDTO, error)
	GetAssessment(ctx context.Context, id string) (*dto.AssessmentResponseDTO, error)
	DeleteAssessment(ctx context.Context, id string) error
}

type adminAssessmentService struct {
	assessmentRepo repository.AssessmentRepository
}

const scopeTakenMsg = "an assessment is already registered for this kind, language, level and task"

func NewAdminAssessmentService(assessmentRepo repository.AssessmentRepository) AdminAssessmentService {
	return &adminAssessmentService{assessmentRepo: assessmentRepo}
}

func (s *adminAssessmentService) CreateAssessment(ctx context.Context, req dto.AssessmentCreateDTO) (*dto.AssessmentResponseDTO, error) {
	scope := model.AttemptKey{
		Kind:     model.Kind(req.Kind),
		Language: req.Language,
		Level:    req.Level,
		TaskID:   req.TaskID,
	}.Normalize()
	if !scope.Kind.Valid() {
		return nil, NewValidationError("kind", "must be one of leadership, problem_solving, adaptability, speaking, presentation")
	}
	if req.Title == "" {
		return nil, NewValidationError("title", "is required")
	}
	if req.Prompt == "" {
		return nil, NewValidationError("prompt", "is required")
	}

	seen := make(map[string]bool, len(req.Criteria))
	specs := make([]model.CriterionSpec, 0, len(req.Criteria))
	var rubricTotal float64
	for i, c := range req.Criteria {
		if c.Name == "" {
			return nil, NewValidationError(fmt.Sprintf("criteria[%d].name", i), "is required")
		}
		if seen[c.Name] {
			return nil, NewValidationError(fmt.Sprintf("criteria[%d].name", i), fmt.Sprintf("duplicate criterion %q", c.Name))
		}
		seen[c.Name] = true
		if c.MaxScore <= 0 {
			return nil, NewValidationError(fmt.Sprintf("criteria[%d].max_score", i), "must be positive")
		}
		specs = append(specs, model.CriterionSpec{Name: c.Name, MaxScore: c.MaxScore})
		rubricTotal += c.MaxScore
	}

	maxScore := req.MaxScore
	switch {
	case maxScore < 0:
		return nil, NewValidationError("max_score", "must be positive")
	case maxScore == 0 && rubricTotal > 0:
		maxScore = rubricTotal
	case maxScore == 0:
		maxScore = CanonicalMaxScore
	}

	if _, err := s.assessmentRepo.FindByScope(ctx, scope); err == nil {
		return nil, NewValidationError("task_id", scopeTakenMsg)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, errors.Wrap(err, "check assessment scope")
	}

	assessment := model.Assessment{
		ID:          uuid.NewString(),
		Kind:        scope.Kind,
		Language:    scope.Language,
		Level:       scope.Level,
		TaskID:      scope.TaskID,
		Title:       req.Title,
		Description: req.Description,
		Prompt:      req.Prompt,
		MaxScore:    maxScore,
	}
	if len(specs) > 0 {
		raw, err := json.Marshal(specs)
		if err != nil {
			return nil, errors.Wrap(err, "encode criteria")
		}
		assessment.Criteria = raw
	}

	if err := s.assessmentRepo.Create(ctx, &assessment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, NewValidationError("task_id", scopeTakenMsg)
		}
		log.Error().Err(err).Str("scope", scope.String()).Msg("Failed to create assessment in database")
		return nil, errors.Wrap(err, "create assessment")
	}
	log.Info().Str("assessmentID", assessment.ID).Str("kind", string(assessment.Kind)).Msg("Assessment created")
	return toAssessmentResponse(&assessment)
}

func (s *adminAssessmentService) ListAssessments(ctx context.Context, kind string) ([]dto.AssessmentResponseDTO, error) {
	k := model.Kind(kind)
	if k != "" && !k.Valid() {
		return nil, NewValidationError("kind", "unknown assessment kind")
	}
	assessments, err := s.assessmentRepo.FindAll(ctx, k)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list assessments from repository")
		return nil, err
	}
	out := make([]dto.AssessmentResponseDTO, 0, len(assessments))
	for i := range assessments {
		resp, err := toAssessmentResponse(&assessments[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *resp)
	}
	return out, nil
}

func (s *adminAssessmentService) GetAssessment(ctx context.Context, id string) (*dto.AssessmentResponseDTO, error) {
	assessment, err := s.assessmentRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &NotFoundError{Resource: "assessment", ID: id}
	}
	if err != nil {
		log.Error().Err(err).Str("assessmentID", id).Msg("Failed to get assessment from repository")
		return nil, errors.Wrap(err, "get assessment")
	}
	return toAssessmentResponse(assessment)
}

func (s *adminAssessmentService) DeleteAssessment(ctx context.Context, id string) error {
	err := s.assessmentRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Resource: "assessment", ID: id}
	}
	return err
}

func toAssessmentResponse(a *model.Assessment) (*dto.AssessmentResponseDTO, error) {
	var resp dto.AssessmentResponseDTO
	if err := copier.Copy(&resp, a); err != nil {
		log.Error().Err(err).Msg("Failed to copy Assessment model to AssessmentResponseDTO")
		return nil, errors.Wrap(err, "map assessment")
	}
	resp.Rubric = a.CriteriaSpecs()
	return &resp, nil
}
