package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// Assessment is an admin-managed definition holding the prompt shown to the student
// and the rubric used by scorers and supervisors.
type Assessment struct {
	ID          string         `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Kind        Kind           `gorm:"type:varchar(32);not null;uniqueIndex:idx_assessment_scope,priority:1" json:"kind"`
	Language    string         `gorm:"not null;uniqueIndex:idx_assessment_scope,priority:2" json:"language"`
	Level       string         `gorm:"not null;uniqueIndex:idx_assessment_scope,priority:3" json:"level"`
	TaskID      string         `gorm:"not null;uniqueIndex:idx_assessment_scope,priority:4" json:"task_id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description,omitempty"`
	Prompt      string         `gorm:"type:text;not null" json:"prompt"`
	MaxScore    float64        `json:"max_score"`
	Criteria    datatypes.JSON `json:"criteria"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type CriterionSpec struct {
	Name     string  `json:"name"`
	MaxScore float64 `json:"max_score"`
}

func (a *Assessment) CriteriaSpecs() []CriterionSpec {
	if len(a.Criteria) == 0 {
		return nil
	}
	var out []CriterionSpec
	if err := json.Unmarshal(a.Criteria, &out); err != nil {
		return nil
	}
	return out
}
