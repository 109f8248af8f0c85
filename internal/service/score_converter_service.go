package service

import (
	"fmt"
	"math"

	"github.com/lshigami/softskills/internal/model"
)

// Every score stored on an attempt is on the 0-100 canonical scale. Scorers and
// supervisors may report on other scales; conversion happens here and nowhere else.
const (
	CanonicalMaxScore = 100.0
	SpeakingBandMax   = 9.0
)

type ScoreConverterService interface {
	// ToCanonical maps a score reported out of maxScore onto 0-100, clamped, one decimal.
	ToCanonical(score, maxScore float64) (float64, error)
	// NormalizeSupervisorScore applies the single supervisor scoring rule:
	// criteria, when present, win as round(100 * sum(score) / sum(maxScore));
	// otherwise round(100 * rawScore / scale) with scale defaulting to 100.
	NormalizeSupervisorScore(rawScore *float64, scale float64, criteria []model.Criterion) (*int, error)
	// BandScore is the 0-9 display score for speaking attempts, nil for other kinds.
	BandScore(kind model.Kind, canonical *float64) *float64
}

type scoreConverterServiceImpl struct{}

func NewScoreConverterService() ScoreConverterService {
	return &scoreConverterServiceImpl{}
}

func (s *scoreConverterServiceImpl) ToCanonical(score, maxScore float64) (float64, error) {
	if maxScore <= 0 || math.IsNaN(maxScore) || math.IsInf(maxScore, 0) {
		return 0, fmt.Errorf("max score %.2f is not a positive number", maxScore)
	}
	if math.IsNaN(score) || math.IsInf(score, 0) {
		return 0, fmt.Errorf("score %v is not a finite number", score)
	}
	if score < 0 {
		score = 0
	}
	if score > maxScore {
		score = maxScore
	}
	return math.Round(score/maxScore*CanonicalMaxScore*10) / 10, nil
}

func (s *scoreConverterServiceImpl) NormalizeSupervisorScore(rawScore *float64, scale float64, criteria []model.Criterion) (*int, error) {
	if rawScore != nil {
		if scale == 0 {
			scale = CanonicalMaxScore
		}
		if scale < 0 {
			return nil, NewValidationError("score_scale", "must be positive")
		}
		if *rawScore < 0 || *rawScore > scale {
			return nil, NewValidationError("raw_score", fmt.Sprintf("must be between 0 and %g", scale))
		}
	}

	if len(criteria) > 0 {
		if err := validateCriteria(criteria); err != nil {
			return nil, err
		}
		var sum, ceiling float64
		for _, c := range criteria {
			sum += c.Score
			ceiling += c.MaxScore
		}
		v := int(math.Round(sum / ceiling * CanonicalMaxScore))
		return &v, nil
	}

	if rawScore == nil {
		return nil, nil
	}
	v := int(math.Round(*rawScore / scale * CanonicalMaxScore))
	return &v, nil
}

func (s *scoreConverterServiceImpl) BandScore(kind model.Kind, canonical *float64) *float64 {
	if kind != model.KindSpeaking || canonical == nil {
		return nil
	}
	// half-band steps
	band := math.Round(*canonical/CanonicalMaxScore*SpeakingBandMax*2) / 2
	return &band
}

func validateCriteria(criteria []model.Criterion) error {
	seen := make(map[string]bool, len(criteria))
	for i, c := range criteria {
		field := fmt.Sprintf("criteria[%d]", i)
		if c.Name == "" {
			return NewValidationError(field+".name", "is required")
		}
		if seen[c.Name] {
			return NewValidationError(field+".name", fmt.Sprintf("duplicate criterion %q", c.Name))
		}
		seen[c.Name] = true
		if c.MaxScore <= 0 {
			return NewValidationError(field+".max_score", "must be positive")
		}
		if c.Score < 0 || c.Score > c.MaxScore {
			return NewValidationError(field+".score", fmt.Sprintf("must be between 0 and %g", c.MaxScore))
		}
	}
	return nil
}
