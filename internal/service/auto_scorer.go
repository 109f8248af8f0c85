package service

import (
	"context"

	"github.com/lshigami/softskills/config"
	"github.com/lshigami/softskills/internal/model"
	"github.com/rs/zerolog/log"
)

// ScoreRequest is everything a scorer gets to look at.
type ScoreRequest struct {
	Key        model.AttemptKey
	Prompt     string
	MaxScore   float64
	Criteria   []model.CriterionSpec
	Submission model.SubmissionRef
}

// ScoreResult is reported on the scorer's own scale (Score out of MaxScore).
type ScoreResult struct {
	Score    float64
	MaxScore float64
	Feedback string
	Criteria []model.Criterion
}

// AutoScorer produces a provisional score. Implementations must honour ctx cancellation;
// callers bound every call with a timeout and fall back on error.
type AutoScorer interface {
	Name() string
	Score(ctx context.Context, req ScoreRequest) (*ScoreResult, error)
}

// NewAutoScorer picks the scorer strategy named by SCORER_PROVIDER.
func NewAutoScorer(cfg *config.Config) (AutoScorer, error) {
	switch cfg.Scorer.Provider {
	case "gemini":
		if cfg.Scorer.GeminiApiKey == "" {
			log.Warn().Msg("GEMINI_API_KEY is not set, using the mock scorer")
			return NewMockScorer(cfg.Scorer.MockSeed), nil
		}
		return NewGeminiScorer(context.Background(), cfg.Scorer.GeminiApiKey, cfg.Scorer.GeminiModel)
	case "openai":
		if cfg.Scorer.OpenAIApiKey == "" && cfg.Scorer.OpenAIBaseURL == "" {
			log.Warn().Msg("OPENAI_API_KEY is not set, using the mock scorer")
			return NewMockScorer(cfg.Scorer.MockSeed), nil
		}
		return NewOpenAIScorer(cfg.Scorer.OpenAIBaseURL, cfg.Scorer.OpenAIApiKey, cfg.Scorer.OpenAIModel), nil
	case "mock", "":
		return NewMockScorer(cfg.Scorer.MockSeed), nil
	default:
		log.Warn().Str("provider", cfg.Scorer.Provider).Msg("Unknown SCORER_PROVIDER, using the mock scorer")
		return NewMockScorer(cfg.Scorer.MockSeed), nil
	}
}

var defaultPrompts = map[model.Kind]string{
	model.KindLeadership:     "Describe a situation where you had to lead a team through a difficult decision. What did you do and what was the outcome?",
	model.KindProblemSolving: "Walk through how you would diagnose and solve an unfamiliar problem under time pressure. Explain your reasoning step by step.",
	model.KindAdaptability:   "Tell us about a time your plans changed suddenly. How did you adjust, and what did you learn?",
	model.KindSpeaking:       "Speak for two minutes about a place that is important to you and explain why.",
	model.KindPresentation:   "Deliver a short presentation introducing a project you are proud of to a non-technical audience.",
}

var defaultCriteria = map[model.Kind][]model.CriterionSpec{
	model.KindSpeaking: {
		{Name: "Fluency", MaxScore: 20},
		{Name: "Pronunciation", MaxScore: 20},
		{Name: "Vocabulary", MaxScore: 20},
		{Name: "Grammar", MaxScore: 20},
		{Name: "Coherence", MaxScore: 20},
	},
	model.KindPresentation: {
		{Name: "Structure", MaxScore: 20},
		{Name: "Delivery", MaxScore: 20},
		{Name: "Content", MaxScore: 20},
		{Name: "Visual Aids", MaxScore: 20},
		{Name: "Audience Engagement", MaxScore: 20},
	},
}

func defaultPrompt(kind model.Kind) string {
	if p, ok := defaultPrompts[kind]; ok {
		return p
	}
	return "Answer the assessment prompt as completely as you can."
}
