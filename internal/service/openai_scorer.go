package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lshigami/softskills/internal/model"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

const openAISystemPrompt = `You grade soft-skills assessment responses.
Reply with a JSON object only:
{"score": number, "max_score": number, "feedback": string,
 "criteria": [{"name": string, "score": number, "max_score": number, "comment": string}]}`

type openAIGrade struct {
	Score    float64           `json:"score"`
	MaxScore float64           `json:"max_score"`
	Feedback string            `json:"feedback"`
	Criteria []model.Criterion `json:"criteria"`
}

// OpenAIScorer talks to any OpenAI-compatible chat completion endpoint in JSON mode.
type OpenAIScorer struct {
	api   *openai.Client
	model string
}

func NewOpenAIScorer(baseURL, apiKey, modelName string) *OpenAIScorer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIScorer{api: openai.NewClientWithConfig(cfg), model: modelName}
}

func (s *OpenAIScorer) Name() string { return "openai" }

func (s *OpenAIScorer) Score(ctx context.Context, req ScoreRequest) (*ScoreResult, error) {
	maxScore := req.MaxScore
	if maxScore <= 0 {
		maxScore = CanonicalMaxScore
	}

	resp, err := s.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openAISystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildScoringPrompt(req, maxScore)},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("LLM returned no choices")
	}

	raw := resp.Choices[0].Message.Content
	log.Debug().Str("raw", raw).Msg("LLM scoring response")

	var grade openAIGrade
	if err := json.Unmarshal([]byte(raw), &grade); err != nil {
		return nil, fmt.Errorf("parse LLM response: %w", err)
	}
	if grade.MaxScore <= 0 {
		grade.MaxScore = maxScore
	}
	if grade.Score < 0 || grade.Score > grade.MaxScore {
		return nil, fmt.Errorf("LLM score %g outside 0-%g", grade.Score, grade.MaxScore)
	}

	return &ScoreResult{
		Score:    grade.Score,
		MaxScore: grade.MaxScore,
		Feedback: grade.Feedback,
		Criteria: grade.Criteria,
	}, nil
}

var _ AutoScorer = (*OpenAIScorer)(nil)
