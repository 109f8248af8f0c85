// Package docs holds the OpenAPI document served at /swagger. Regenerate with `swag init -g cmd/main.go`.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/attempts": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["User - Attempts"],
                "summary": "(User) Submit a response",
                "parameters": [{"in": "body", "name": "submission", "required": true, "schema": {"$ref": "#/definitions/dto.SubmitAttemptRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.AttemptResponse"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "409": {"description": "Pending review or in cooldown", "schema": {"$ref": "#/definitions/dto.IneligibleResponse"}}
                }
            }
        },
        "/attempts/eligibility": {
            "get": {
                "produces": ["application/json"],
                "tags": ["User - Attempts"],
                "summary": "(User) Check whether a new attempt is allowed",
                "parameters": [
                    {"type": "string", "name": "user_id", "in": "query", "required": true},
                    {"type": "string", "name": "kind", "in": "query", "required": true, "enum": ["leadership", "problem_solving", "adaptability", "speaking", "presentation"]},
                    {"type": "string", "name": "language", "in": "query"},
                    {"type": "string", "name": "level", "in": "query"},
                    {"type": "string", "name": "task_id", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.EligibilityResponse"}},
                    "400": {"description": "Invalid key", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/attempts/{attempt_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["User - Attempts"],
                "summary": "(User) Get an attempt",
                "parameters": [{"type": "string", "name": "attempt_id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AttemptResponse"}},
                    "404": {"description": "Attempt not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/users/{user_id}/attempts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["User - Attempts"],
                "summary": "(User) List a user's attempts",
                "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.AttemptSummaryDTO"}}}}
            }
        },
        "/supervisor/attempts/pending": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Supervisor - Review"],
                "summary": "(Supervisor) List attempts waiting for review",
                "parameters": [{"type": "integer", "name": "limit", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.PendingAttemptDTO"}}}}
            }
        },
        "/supervisor/attempts/{attempt_id}/evaluation": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Supervisor - Review"],
                "summary": "(Supervisor) Evaluate a pending attempt",
                "parameters": [
                    {"type": "string", "name": "attempt_id", "in": "path", "required": true},
                    {"in": "body", "name": "evaluation", "required": true, "schema": {"$ref": "#/definitions/dto.EvaluationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AttemptResponse"}},
                    "400": {"description": "Invalid input or attempt not pending", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "404": {"description": "Attempt not found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/admin/assessments": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Admin - Assessments"],
                "summary": "(Admin) List assessments",
                "parameters": [{"type": "string", "name": "kind", "in": "query"}],
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.AssessmentResponseDTO"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin - Assessments"],
                "summary": "(Admin) Register an assessment",
                "parameters": [{"in": "body", "name": "assessment_data", "required": true, "schema": {"$ref": "#/definitions/dto.AssessmentCreateDTO"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.AssessmentResponseDTO"}}}
            }
        },
        "/admin/assessments/{assessment_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Admin - Assessments"],
                "summary": "(Admin) Get an assessment",
                "parameters": [{"type": "string", "name": "assessment_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.AssessmentResponseDTO"}}}
            },
            "delete": {
                "tags": ["Admin - Assessments"],
                "summary": "(Admin) Delete an assessment",
                "parameters": [{"type": "string", "name": "assessment_id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/admin/users": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Admin - Users"],
                "summary": "(Admin) Create a user",
                "parameters": [{"in": "body", "name": "user_data", "required": true, "schema": {"$ref": "#/definitions/dto.UserCreateDTO"}}],
                "responses": {"201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.UserResponseDTO"}}}
            }
        },
        "/admin/users/{user_id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Admin - Users"],
                "summary": "(Admin) Get a user",
                "parameters": [{"type": "string", "name": "user_id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.UserResponseDTO"}}}
            }
        }
    },
    "definitions": {
        "dto.SubmitAttemptRequest": {"type": "object", "properties": {
            "user_id": {"type": "string"}, "kind": {"type": "string"}, "language": {"type": "string"},
            "level": {"type": "string"}, "task_id": {"type": "string"}, "transcript": {"type": "string"},
            "video_url": {"type": "string"}, "video_id": {"type": "string"}}},
        "dto.EvaluationRequest": {"type": "object", "properties": {
            "supervisor_id": {"type": "string"}, "raw_score": {"type": "number"}, "score_scale": {"type": "number"},
            "feedback": {"type": "string"}, "decision": {"type": "string", "enum": ["approve", "reject"]},
            "criteria": {"type": "array", "items": {"$ref": "#/definitions/model.Criterion"}}}},
        "dto.EligibilityResponse": {"type": "object", "properties": {
            "available": {"type": "boolean"}, "reason": {"type": "string"},
            "next_available_date": {"type": "string"}, "pending_attempt_id": {"type": "string"}}},
        "dto.AttemptResponse": {"type": "object", "properties": {
            "id": {"type": "string"}, "user_id": {"type": "string"}, "kind": {"type": "string"},
            "language": {"type": "string"}, "level": {"type": "string"}, "task_id": {"type": "string"},
            "transcript": {"type": "string"}, "video_url": {"type": "string"}, "video_id": {"type": "string"},
            "auto_score": {"type": "number"}, "auto_band_score": {"type": "number"}, "auto_feedback": {"type": "string"},
            "auto_criteria": {"type": "array", "items": {"$ref": "#/definitions/model.Criterion"}},
            "status": {"type": "string", "enum": ["pending", "evaluated", "rejected"]},
            "supervisor_id": {"type": "string"}, "supervisor_score": {"type": "integer"},
            "supervisor_band_score": {"type": "number"}, "supervisor_feedback": {"type": "object"},
            "evaluated_at": {"type": "string"}, "created_at": {"type": "string"}, "next_available_date": {"type": "string"}}},
        "dto.AttemptSummaryDTO": {"type": "object", "properties": {
            "id": {"type": "string"}, "kind": {"type": "string"}, "status": {"type": "string"},
            "auto_score": {"type": "number"}, "supervisor_score": {"type": "integer"},
            "created_at": {"type": "string"}, "next_available_date": {"type": "string"}}},
        "dto.PendingAttemptDTO": {"type": "object", "properties": {
            "id": {"type": "string"}, "user_id": {"type": "string"}, "kind": {"type": "string"},
            "auto_score": {"type": "number"}, "created_at": {"type": "string"},
            "user": {"$ref": "#/definitions/dto.UserInfoDTO"}}},
        "dto.UserInfoDTO": {"type": "object", "properties": {
            "id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"}}},
        "dto.AssessmentCreateDTO": {"type": "object", "properties": {
            "kind": {"type": "string"}, "language": {"type": "string"}, "level": {"type": "string"},
            "task_id": {"type": "string"}, "title": {"type": "string"}, "description": {"type": "string"},
            "prompt": {"type": "string"}, "max_score": {"type": "number"},
            "criteria": {"type": "array", "items": {"$ref": "#/definitions/model.CriterionSpec"}}}},
        "dto.AssessmentResponseDTO": {"type": "object", "properties": {
            "id": {"type": "string"}, "kind": {"type": "string"}, "language": {"type": "string"},
            "level": {"type": "string"}, "task_id": {"type": "string"}, "title": {"type": "string"},
            "prompt": {"type": "string"}, "max_score": {"type": "number"},
            "criteria": {"type": "array", "items": {"$ref": "#/definitions/model.CriterionSpec"}},
            "created_at": {"type": "string"}}},
        "dto.UserCreateDTO": {"type": "object", "properties": {
            "name": {"type": "string"}, "email": {"type": "string"}, "role": {"type": "string", "enum": ["student", "supervisor", "admin"]}}},
        "dto.UserResponseDTO": {"type": "object", "properties": {
            "id": {"type": "string"}, "name": {"type": "string"}, "email": {"type": "string"},
            "role": {"type": "string"}, "created_at": {"type": "string"}}},
        "dto.ErrorResponse": {"type": "object", "properties": {
            "message": {"type": "string"}, "field": {"type": "string"},
            "details": {"type": "array", "items": {"type": "string"}}}},
        "dto.IneligibleResponse": {"type": "object", "properties": {
            "message": {"type": "string"}, "reason": {"type": "string"},
            "next_available_date": {"type": "string"}, "pending_attempt_id": {"type": "string"}}},
        "model.Criterion": {"type": "object", "properties": {
            "name": {"type": "string"}, "score": {"type": "number"}, "max_score": {"type": "number"}, "comment": {"type": "string"}}},
        "model.CriterionSpec": {"type": "object", "properties": {
            "name": {"type": "string"}, "max_score": {"type": "number"}}}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{"http", "https"},
	Title:            "Soft Skills Assessment API",
	Description:      "Attempt lifecycle for soft-skills assessments: eligibility, submission with automatic scoring, supervisor review.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
