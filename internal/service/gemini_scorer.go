package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// GeminiScorer asks a Gemini model for a "Score: / Feedback:" evaluation of the transcript.
type GeminiScorer struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

func NewGeminiScorer(ctx context.Context, apiKey, modelName string) (*GeminiScorer, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &GeminiScorer{client: client, model: client.GenerativeModel(modelName)}, nil
}

func (s *GeminiScorer) Name() string { return "gemini" }

func (s *GeminiScorer) Close() error {
	return s.client.Close()
}

func (s *GeminiScorer) Score(ctx context.Context, req ScoreRequest) (*ScoreResult, error) {
	maxScore := req.MaxScore
	if maxScore <= 0 {
		maxScore = CanonicalMaxScore
	}

	resp, err := s.model.GenerateContent(ctx, genai.Text(buildScoringPrompt(req, maxScore)))
	if err != nil {
		log.Error().Err(err).Str("kind", string(req.Key.Kind)).Msg("Gemini API error during scoring")
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no content")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if text.Len() == 0 {
		return nil, fmt.Errorf("gemini returned no text content")
	}

	score, feedback, err := parseScoreAndFeedback(text.String())
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", text.String()).Msg("Failed to parse score and feedback from Gemini response")
		return nil, err
	}
	if score > maxScore {
		score = maxScore
	}
	if score < 0 {
		score = 0
	}
	return &ScoreResult{Score: score, MaxScore: maxScore, Feedback: feedback}, nil
}

func buildScoringPrompt(req ScoreRequest, maxScore float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an experienced assessor of %s skills.\n", strings.ReplaceAll(string(req.Key.Kind), "_", " "))
	b.WriteString("Please evaluate the following student's response.\n\n")
	if req.Key.Language != "" {
		fmt.Fprintf(&b, "Response language: %s\n", req.Key.Language)
	}
	if req.Key.Level != "" {
		fmt.Fprintf(&b, "Expected level: %s\n", req.Key.Level)
	}
	b.WriteString("Task Prompt:\n---\n")
	b.WriteString(req.Prompt)
	b.WriteString("\n---\n\n")

	criteria := req.Criteria
	if len(criteria) == 0 {
		criteria = defaultCriteria[req.Key.Kind]
	}
	if len(criteria) > 0 {
		b.WriteString("Evaluate the response on these criteria:\n")
		for _, c := range criteria {
			fmt.Fprintf(&b, "- %s (up to %g points)\n", c.Name, c.MaxScore)
		}
		b.WriteString("\n")
	}

	b.WriteString("Student's Response (transcript):\n---\n")
	if req.Submission.Transcript != "" {
		b.WriteString(req.Submission.Transcript)
	} else {
		b.WriteString("(no transcript available)")
	}
	b.WriteString("\n---\n")
	if req.Submission.VideoURL != "" {
		fmt.Fprintf(&b, "A video recording was also submitted: %s\n", req.Submission.VideoURL)
	}

	fmt.Fprintf(&b, `
Format your response strictly as:
Score: [a number from 0 to %.1f]
Feedback:
[constructive feedback: strengths, specific weaknesses, and concrete suggestions]
`, maxScore)
	return b.String()
}

// parseScoreAndFeedback reads the "Score: N" line and everything after "Feedback:".
func parseScoreAndFeedback(raw string) (float64, string, error) {
	const scorePrefix = "Score:"
	const feedbackPrefix = "Feedback:"

	scoreIndex := strings.Index(raw, scorePrefix)
	if scoreIndex == -1 {
		return 0, "", fmt.Errorf("response does not contain %q", scorePrefix)
	}

	rest := raw[scoreIndex+len(scorePrefix):]
	line := rest
	if nl := strings.Index(rest, "\n"); nl != -1 {
		line = rest[:nl]
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, "", fmt.Errorf("empty score value")
	}
	scoreStr := strings.TrimSuffix(fields[0], ",")
	if slash := strings.Index(scoreStr, "/"); slash != -1 {
		scoreStr = scoreStr[:slash]
	}
	score, err := strconv.ParseFloat(scoreStr, 64)
	if err != nil {
		return 0, "", fmt.Errorf("could not parse score value %q: %w", fields[0], err)
	}

	var feedback string
	if fbIndex := strings.Index(raw, feedbackPrefix); fbIndex > scoreIndex {
		feedback = strings.TrimSpace(raw[fbIndex+len(feedbackPrefix):])
	} else if nl := strings.Index(rest, "\n"); nl != -1 {
		feedback = strings.TrimSpace(rest[nl+1:])
	}
	if feedback == "" {
		feedback = "Feedback not found in the expected format after the score."
	}
	return score, feedback, nil
}

var _ AutoScorer = (*GeminiScorer)(nil)
