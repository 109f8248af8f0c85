package dto

import (
	"time"

	"github.com/lshigami/softskills/internal/model"
)

type EligibilityResponse struct {
	Available         bool       `json:"available"`
	Reason            string     `json:"reason,omitempty"`
	NextAvailableDate *time.Time `json:"next_available_date,omitempty"`
	PendingAttemptID  string     `json:"pending_attempt_id,omitempty"`
}

type AttemptResponse struct {
	ID       string     `json:"id"`
	UserID   string     `json:"user_id"`
	Kind     model.Kind `json:"kind"`
	Language string     `json:"language,omitempty"`
	Level    string     `json:"level,omitempty"`
	TaskID   string     `json:"task_id,omitempty"`

	Transcript string `json:"transcript,omitempty"`
	VideoURL   string `json:"video_url,omitempty"`
	VideoID    string `json:"video_id,omitempty"`

	AutoScore     *float64          `json:"auto_score"`
	AutoBandScore *float64          `json:"auto_band_score,omitempty"`
	AutoFeedback  string            `json:"auto_feedback"`
	AutoBreakdown []model.Criterion `json:"auto_criteria,omitempty"`

	Status               model.AttemptStatus       `json:"status"`
	SupervisorID         *string                   `json:"supervisor_id"`
	SupervisorScore      *int                      `json:"supervisor_score"`
	SupervisorBandScore  *float64                  `json:"supervisor_band_score,omitempty"`
	SupervisorEvaluation *model.EvaluationFeedback `json:"supervisor_feedback"`
	EvaluatedAt          *time.Time                `json:"evaluated_at"`

	CreatedAt         time.Time `json:"created_at"`
	NextAvailableDate time.Time `json:"next_available_date"`
}

type AttemptSummaryDTO struct {
	ID                string              `json:"id"`
	Kind              model.Kind          `json:"kind"`
	Language          string              `json:"language,omitempty"`
	Level             string              `json:"level,omitempty"`
	TaskID            string              `json:"task_id,omitempty"`
	Status            model.AttemptStatus `json:"status"`
	AutoScore         *float64            `json:"auto_score"`
	SupervisorScore   *int                `json:"supervisor_score"`
	CreatedAt         time.Time           `json:"created_at"`
	NextAvailableDate time.Time           `json:"next_available_date"`
}

// UserInfoDTO is best-effort display data; it is null when the user cannot be resolved.
type UserInfoDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type PendingAttemptDTO struct {
	AttemptResponse
	User *UserInfoDTO `json:"user"`
}

type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
	Field   string   `json:"field,omitempty"`
}

type IneligibleResponse struct {
	Message           string     `json:"message"`
	Reason            string     `json:"reason"`
	NextAvailableDate *time.Time `json:"next_available_date,omitempty"`
	PendingAttemptID  string     `json:"pending_attempt_id,omitempty"`
}
