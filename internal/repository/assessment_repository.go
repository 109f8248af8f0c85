package repository

import (
	"context"

	"github.com/lshigami/softskills/internal/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type AssessmentRepository interface {
	Create(ctx context.Context, assessment *model.Assessment) error
	FindByID(ctx context.Context, id string) (*model.Assessment, error)
	FindByScope(ctx context.Context, scope model.AttemptKey) (*model.Assessment, error)
	FindAll(ctx context.Context, kind model.Kind) ([]model.Assessment, error)
	Delete(ctx context.Context, id string) error
}

type assessmentRepository struct {
	db *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(ctx context.Context, assessment *model.Assessment) error {
	return translate(r.db.WithContext(ctx).Create(assessment).Error)
}

func (r *assessmentRepository) FindByID(ctx context.Context, id string) (*model.Assessment, error) {
	var assessment model.Assessment
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&assessment).Error; err != nil {
		return nil, translate(err)
	}
	return &assessment, nil
}

// FindByScope matches kind, language, level and task exactly; the user part of the key is ignored.
func (r *assessmentRepository) FindByScope(ctx context.Context, scope model.AttemptKey) (*model.Assessment, error) {
	var assessment model.Assessment
	err := r.db.WithContext(ctx).
		Where("kind = ? AND language = ? AND level = ? AND task_id = ?",
			string(scope.Kind), scope.Language, scope.Level, scope.TaskID).
		Take(&assessment).Error
	if err != nil {
		return nil, translate(err)
	}
	return &assessment, nil
}

func (r *assessmentRepository) FindAll(ctx context.Context, kind model.Kind) ([]model.Assessment, error) {
	var assessments []model.Assessment
	query := r.db.WithContext(ctx).Order("kind asc").Order("created_at desc")
	if kind != "" {
		query = query.Where("kind = ?", string(kind))
	}
	if err := query.Find(&assessments).Error; err != nil {
		return nil, errors.Wrap(err, "list assessments")
	}
	return assessments, nil
}

func (r *assessmentRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Assessment{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete assessment")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
