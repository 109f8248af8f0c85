package dto

import (
	"time"

	"github.com/lshigami/softskills/internal/model"
)

type CriterionSpecDTO struct {
	Name     string  `json:"name" binding:"required"`
	MaxScore float64 `json:"max_score" binding:"required,gt=0"`
}

// AssessmentCreateDTO is for admin to register a prompt and rubric for an assessment scope.
type AssessmentCreateDTO struct {
	Kind        string             `json:"kind" binding:"required,oneof=leadership problem_solving adaptability speaking presentation"`
	Language    string             `json:"language"`
	Level       string             `json:"level"`
	TaskID      string             `json:"task_id"`
	Title       string             `json:"title" binding:"required"`
	Description string             `json:"description,omitempty"`
	Prompt      string             `json:"prompt" binding:"required"`
	MaxScore    float64            `json:"max_score" binding:"omitempty,gt=0"`
	Criteria    []CriterionSpecDTO `json:"criteria" binding:"omitempty,dive"`
}

type AssessmentResponseDTO struct {
	ID          string                `json:"id"`
	Kind        model.Kind            `json:"kind"`
	Language    string                `json:"language,omitempty"`
	Level       string                `json:"level,omitempty"`
	TaskID      string                `json:"task_id,omitempty"`
	Title       string                `json:"title"`
	Description string                `json:"description,omitempty"`
	Prompt      string                `json:"prompt"`
	MaxScore    float64               `json:"max_score"`
	Rubric      []model.CriterionSpec `json:"criteria,omitempty"`
	CreatedAt   time.Time             `json:"created_at"`
}

type UserCreateDTO struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"omitempty,oneof=student supervisor admin"`
}

type UserResponseDTO struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Role      model.Role `json:"role"`
	CreatedAt time.Time  `json:"created_at"`
}
