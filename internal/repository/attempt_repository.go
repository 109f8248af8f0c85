package repository

import (
	"context"
	"time"

	"github.com/lshigami/softskills/internal/model"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned by Create when a unique index rejects the row.
	ErrDuplicate = errors.New("record already exists")
	// ErrAttemptLocked is returned by UpsertByKey when the existing record for the key
	// is still pending review or inside its cooldown window.
	ErrAttemptLocked = errors.New("attempt for key is locked")
	// ErrStatusChanged is returned by UpdateByID when the record left the expected status.
	ErrStatusChanged = errors.New("attempt status changed")
)

var attemptKeyColumns = []clause.Column{
	{Name: "user_id"},
	{Name: "kind"},
	{Name: "language"},
	{Name: "level"},
	{Name: "task_id"},
}

// Columns reset on resubmission. id is not listed: the logical record keeps its identity.
var attemptOverwriteColumns = []string{
	"transcript", "video_url", "video_id",
	"auto_score", "auto_feedback", "auto_criteria",
	"status", "supervisor_id", "supervisor_score", "supervisor_feedback", "evaluated_at",
	"created_at", "updated_at", "next_available_date",
}

type AttemptRepository interface {
	FindByKey(ctx context.Context, key model.AttemptKey) (*model.Attempt, error)
	FindByID(ctx context.Context, id string) (*model.Attempt, error)
	UpsertByKey(ctx context.Context, attempt *model.Attempt, now time.Time) (*model.Attempt, error)
	UpdateByID(ctx context.Context, id string, expected model.AttemptStatus, fields map[string]interface{}) (*model.Attempt, error)
	ListByStatus(ctx context.Context, status model.AttemptStatus, limit int) ([]model.Attempt, error)
	ListByUserID(ctx context.Context, userID string) ([]model.Attempt, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) FindByKey(ctx context.Context, key model.AttemptKey) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND kind = ? AND language = ? AND level = ? AND task_id = ?",
			key.UserID, string(key.Kind), key.Language, key.Level, key.TaskID).
		Take(&attempt).Error
	if err != nil {
		return nil, translate(err)
	}
	return &attempt, nil
}

func (r *attemptRepository) FindByID(ctx context.Context, id string) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&attempt).Error; err != nil {
		return nil, translate(err)
	}
	return &attempt, nil
}

// UpsertByKey inserts the attempt or overwrites the record already stored under its key.
// The overwrite only happens when the stored record is rejected, or evaluated with
// next_available_date <= now; the guard runs inside the INSERT ... ON CONFLICT statement
// so two writers racing on one key can never both replace a live attempt.
func (r *attemptRepository) UpsertByKey(ctx context.Context, attempt *model.Attempt, now time.Time) (*model.Attempt, error) {
	status := clause.Column{Table: "attempts", Name: "status"}
	nextAvailable := clause.Column{Table: "attempts", Name: "next_available_date"}

	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: attemptKeyColumns,
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Or(
				clause.Eq{Column: status, Value: string(model.StatusRejected)},
				clause.And(
					clause.Eq{Column: status, Value: string(model.StatusEvaluated)},
					clause.Lte{Column: nextAvailable, Value: now},
				),
			),
		}},
		DoUpdates: clause.AssignmentColumns(attemptOverwriteColumns),
	}).Create(attempt)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "upsert attempt")
	}
	if res.RowsAffected == 0 {
		return nil, ErrAttemptLocked
	}
	return r.FindByKey(ctx, attempt.Key())
}

// UpdateByID applies fields to the attempt only while it is still in the expected status.
func (r *attemptRepository) UpdateByID(ctx context.Context, id string, expected model.AttemptStatus, fields map[string]interface{}) (*model.Attempt, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Attempt{}).
		Where("id = ? AND status = ?", id, string(expected)).
		Updates(fields)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "update attempt")
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrStatusChanged
	}
	return r.FindByID(ctx, id)
}

func (r *attemptRepository) ListByStatus(ctx context.Context, status model.AttemptStatus, limit int) ([]model.Attempt, error) {
	var attempts []model.Attempt
	query := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at desc").
		Order("id desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&attempts).Error; err != nil {
		return nil, errors.Wrap(err, "list attempts by status")
	}
	return attempts, nil
}

func (r *attemptRepository) ListByUserID(ctx context.Context, userID string) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&attempts).Error
	if err != nil {
		return nil, errors.Wrap(err, "list attempts by user")
	}
	return attempts, nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}
