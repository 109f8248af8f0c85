package dto

// AttemptKeyQuery identifies an attempt scope in query strings.
type AttemptKeyQuery struct {
	UserID   string `form:"user_id" binding:"required"`
	Kind     string `form:"kind" binding:"required,oneof=leadership problem_solving adaptability speaking presentation"`
	Language string `form:"language"`
	Level    string `form:"level"`
	TaskID   string `form:"task_id"`
}

// SubmitAttemptRequest is a student's response for one attempt key.
type SubmitAttemptRequest struct {
	UserID     string `json:"user_id" binding:"required"`
	Kind       string `json:"kind" binding:"required,oneof=leadership problem_solving adaptability speaking presentation"`
	Language   string `json:"language"`
	Level      string `json:"level"`
	TaskID     string `json:"task_id"`
	Transcript string `json:"transcript" binding:"required_without=VideoURL"`
	VideoURL   string `json:"video_url" binding:"omitempty,url"`
	VideoID    string `json:"video_id"`
}

type CriterionDTO struct {
	Name     string  `json:"name" binding:"required"`
	Score    float64 `json:"score" binding:"gte=0"`
	MaxScore float64 `json:"max_score" binding:"required,gt=0"`
	Comment  string  `json:"comment,omitempty"`
}

// EvaluationRequest is a supervisor's manual review of a pending attempt.
// RawScore is read on a 0..ScoreScale scale (ScoreScale defaults to 100).
type EvaluationRequest struct {
	SupervisorID string         `json:"supervisor_id" binding:"required"`
	RawScore     *float64       `json:"raw_score"`
	ScoreScale   float64        `json:"score_scale" binding:"omitempty,gt=0"`
	Feedback     string         `json:"feedback" binding:"required"`
	Criteria     []CriterionDTO `json:"criteria" binding:"omitempty,dive"`
	Decision     string         `json:"decision" binding:"omitempty,oneof=approve reject"`
}
