package service

import (
	"context"
	"testing"

	"github.com/lshigami/softskills/internal/dto"
	"github.com/lshigami/softskills/internal/model"
	"github.com/lshigami/softskills/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminAssessmentService_Lifecycle(t *testing.T) {
	f := newFixture(t)
	svc := NewAdminAssessmentService(f.assessments)
	ctx := context.Background()

	created, err := svc.CreateAssessment(ctx, dto.AssessmentCreateDTO{
		Kind:     "Speaking",
		Language: "EN",
		Level:    "b1",
		Title:    "Describe your hometown",
		Prompt:   "Talk for two minutes about your hometown.",
		Criteria: []dto.CriterionSpecDTO{{Name: "Fluency", MaxScore: 5}, {Name: "Vocabulary", MaxScore: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, model.KindSpeaking, created.Kind)
	assert.Equal(t, "en", created.Language)
	assert.Equal(t, 10.0, created.MaxScore)
	require.Len(t, created.Rubric, 2)

	_, err = svc.CreateAssessment(ctx, dto.AssessmentCreateDTO{
		Kind: "speaking", Language: "en", Level: "b1", Title: "Again", Prompt: "Same scope",
	})
	assert.True(t, IsValidation(err))

	plain, err := svc.CreateAssessment(ctx, dto.AssessmentCreateDTO{Kind: "leadership", Title: "Lead", Prompt: "Lead a team."})
	require.NoError(t, err)
	assert.Equal(t, CanonicalMaxScore, plain.MaxScore)
	assert.Empty(t, plain.Rubric)

	speaking, err := svc.ListAssessments(ctx, "speaking")
	require.NoError(t, err)
	require.Len(t, speaking, 1)
	assert.Equal(t, created.ID, speaking[0].ID)

	all, err := svc.ListAssessments(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.ListAssessments(ctx, "negotiation")
	assert.True(t, IsValidation(err))

	got, err := svc.GetAssessment(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Describe your hometown", got.Title)

	require.NoError(t, svc.DeleteAssessment(ctx, created.ID))
	_, err = svc.GetAssessment(ctx, created.ID)
	assert.True(t, IsNotFound(err))
	assert.True(t, IsNotFound(svc.DeleteAssessment(ctx, created.ID)))

	// the scope is free again once deleted
	_, err = svc.CreateAssessment(ctx, dto.AssessmentCreateDTO{
		Kind: "speaking", Language: "en", Level: "b1", Title: "Replacement", Prompt: "New prompt",
	})
	assert.NoError(t, err)
}

func TestAdminAssessmentService_RejectsBadRubric(t *testing.T) {
	f := newFixture(t)
	svc := NewAdminAssessmentService(f.assessments)

	_, err := svc.CreateAssessment(context.Background(), dto.AssessmentCreateDTO{
		Kind: "presentation", Title: "Pitch", Prompt: "Pitch your project.",
		Criteria: []dto.CriterionSpecDTO{{Name: "Delivery", MaxScore: 5}, {Name: "Delivery", MaxScore: 5}},
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "criteria[1].name", verr.Fields[0].Field)
}

func TestAdminUserService(t *testing.T) {
	f := newFixture(t)
	svc := NewAdminUserService(f.users)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, dto.UserCreateDTO{Name: "Lan", Email: "Lan@Example.com"})
	require.NoError(t, err)
	assert.Equal(t, "lan@example.com", created.Email)
	assert.Equal(t, model.RoleStudent, created.Role)

	_, err = svc.CreateUser(ctx, dto.UserCreateDTO{Name: "Lan 2", Email: "lan@example.com"})
	assert.True(t, IsValidation(err))

	_, err = svc.CreateUser(ctx, dto.UserCreateDTO{Name: "X", Email: "x@example.com", Role: "owner"})
	assert.True(t, IsValidation(err))

	got, err := svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lan", got.Name)

	_, err = svc.GetUser(ctx, "missing")
	assert.True(t, IsNotFound(err))
}

// staleScopeRepo misses rows committed by a concurrent writer.
type staleScopeRepo struct {
	repository.AssessmentRepository
}

func (staleScopeRepo) FindByScope(context.Context, model.AttemptKey) (*model.Assessment, error) {
	return nil, repository.ErrNotFound
}

type staleEmailRepo struct {
	repository.UserRepository
}

func (staleEmailRepo) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, repository.ErrNotFound
}

func TestAdminAssessmentService_ConcurrentDuplicateIsValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewAdminAssessmentService(staleScopeRepo{f.assessments})
	ctx := context.Background()
	req := dto.AssessmentCreateDTO{Kind: "adaptability", Title: "Change", Prompt: "Describe a sudden change."}

	_, err := svc.CreateAssessment(ctx, req)
	require.NoError(t, err)

	_, err = svc.CreateAssessment(ctx, req)
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "task_id", validation.Fields[0].Field)
}

func TestAdminUserService_ConcurrentDuplicateIsValidation(t *testing.T) {
	f := newFixture(t)
	svc := NewAdminUserService(staleEmailRepo{f.users})
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, dto.UserCreateDTO{Name: "Lan", Email: "lan@example.com"})
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, dto.UserCreateDTO{Name: "Lan again", Email: "LAN@example.com"})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "email", validation.Fields[0].Field)
}
