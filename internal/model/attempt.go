package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type AttemptStatus string

const (
	StatusPending   AttemptStatus = "pending"
	StatusEvaluated AttemptStatus = "evaluated"
	StatusRejected  AttemptStatus = "rejected"
)

// Attempt is the single live record for an AttemptKey. Resubmissions overwrite it in place.
type Attempt struct {
	ID       string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID   string `gorm:"not null;uniqueIndex:idx_attempt_key,priority:1" json:"user_id"`
	Kind     Kind   `gorm:"type:varchar(32);not null;uniqueIndex:idx_attempt_key,priority:2" json:"kind"`
	Language string `gorm:"not null;uniqueIndex:idx_attempt_key,priority:3" json:"language"`
	Level    string `gorm:"not null;uniqueIndex:idx_attempt_key,priority:4" json:"level"`
	TaskID   string `gorm:"not null;uniqueIndex:idx_attempt_key,priority:5" json:"task_id"`

	Transcript string `gorm:"type:text" json:"transcript"`
	VideoURL   string `json:"video_url"`
	VideoID    string `json:"video_id"`

	AutoScore    *float64       `json:"auto_score"`
	AutoFeedback string         `gorm:"type:text" json:"auto_feedback"`
	AutoCriteria datatypes.JSON `json:"auto_criteria"`

	Status             AttemptStatus  `gorm:"type:varchar(16);not null;index" json:"status"`
	SupervisorID       *string        `json:"supervisor_id"`
	SupervisorScore    *int           `json:"supervisor_score"`
	SupervisorFeedback datatypes.JSON `json:"supervisor_feedback"`
	EvaluatedAt        *time.Time     `json:"evaluated_at"`

	CreatedAt         time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	NextAvailableDate time.Time `gorm:"not null" json:"next_available_date"`
}

func (a *Attempt) Key() AttemptKey {
	return AttemptKey{
		UserID:   a.UserID,
		Kind:     a.Kind,
		Language: a.Language,
		Level:    a.Level,
		TaskID:   a.TaskID,
	}
}

func (a *Attempt) SetKey(k AttemptKey) {
	a.UserID = k.UserID
	a.Kind = k.Kind
	a.Language = k.Language
	a.Level = k.Level
	a.TaskID = k.TaskID
}

func (a *Attempt) Submission() SubmissionRef {
	return SubmissionRef{Transcript: a.Transcript, VideoURL: a.VideoURL, VideoID: a.VideoID}
}

// AutoCriteriaList decodes the scorer's per-criterion breakdown. Malformed JSON yields nil.
func (a *Attempt) AutoCriteriaList() []Criterion {
	if len(a.AutoCriteria) == 0 {
		return nil
	}
	var out []Criterion
	if err := json.Unmarshal(a.AutoCriteria, &out); err != nil {
		return nil
	}
	return out
}

func (a *Attempt) Evaluation() (*EvaluationFeedback, error) {
	if len(a.SupervisorFeedback) == 0 {
		return nil, nil
	}
	var fb EvaluationFeedback
	if err := json.Unmarshal(a.SupervisorFeedback, &fb); err != nil {
		return nil, err
	}
	return &fb, nil
}

// SubmissionRef points at the submitted artifact.
type SubmissionRef struct {
	Transcript string `json:"transcript"`
	VideoURL   string `json:"video_url"`
	VideoID    string `json:"video_id"`
}

func (s SubmissionRef) Empty() bool {
	return s.Transcript == "" && s.VideoURL == ""
}

type Criterion struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
	Comment  string  `json:"comment,omitempty"`
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// EvaluationFeedback is the supervisor_feedback document.
type EvaluationFeedback struct {
	Overall     string      `json:"overall"`
	Criteria    []Criterion `json:"criteria,omitempty"`
	RawScore    *float64    `json:"raw_score,omitempty"`
	ScoreScale  float64     `json:"score_scale,omitempty"`
	Decision    Decision    `json:"decision"`
	EvaluatedAt time.Time   `json:"evaluated_at"`
}
