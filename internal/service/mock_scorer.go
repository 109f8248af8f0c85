package service

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/lshigami/softskills/internal/model"
)

var mockFeedback = map[model.Kind][]string{
	model.KindLeadership: {
		"You set a clear direction and explained the trade-offs you weighed. Say more about how you brought hesitant team members along.",
		"Good ownership of the outcome. The answer would be stronger with a concrete measure of the result.",
	},
	model.KindProblemSolving: {
		"Your breakdown of the problem is logical. Consider validating assumptions before committing to a solution.",
		"Solid reasoning with a clear plan. Mention how you would check that the fix actually worked.",
	},
	model.KindAdaptability: {
		"You reacted calmly to the change and re-prioritised well. Reflect a little more on what you would do differently next time.",
		"Clear example of adjusting under pressure. Highlight what you learned from the experience.",
	},
	model.KindSpeaking: {
		"Speech is generally fluent with occasional hesitation. Work on linking ideas with a wider range of connectors.",
		"Pronunciation is clear. Vocabulary is adequate but repetitive; try using more precise words.",
	},
	model.KindPresentation: {
		"The structure is easy to follow. Slow down during key points and make more eye contact with the audience.",
		"Engaging opening and clear conclusion. Visual aids could carry less text.",
	},
}

// MockScorer returns randomized scores and canned feedback. A non-zero seed makes it deterministic.
type MockScorer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewMockScorer(seed int64) *MockScorer {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MockScorer{rnd: rand.New(rand.NewSource(seed))}
}

func (m *MockScorer) Name() string { return "mock" }

func (m *MockScorer) Score(ctx context.Context, req ScoreRequest) (*ScoreResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	specs := req.Criteria
	if len(specs) == 0 {
		specs = defaultCriteria[req.Key.Kind]
	}

	result := &ScoreResult{}
	if len(specs) > 0 {
		for _, spec := range specs {
			// 55%-95% of each criterion, whole points
			score := float64(int(spec.MaxScore * (0.55 + m.rnd.Float64()*0.4)))
			result.Criteria = append(result.Criteria, model.Criterion{Name: spec.Name, Score: score, MaxScore: spec.MaxScore})
			result.Score += score
			result.MaxScore += spec.MaxScore
		}
	} else {
		result.MaxScore = req.MaxScore
		if result.MaxScore <= 0 {
			result.MaxScore = CanonicalMaxScore
		}
		result.Score = float64(int(result.MaxScore * (0.6 + m.rnd.Float64()*0.35)))
	}

	canned := mockFeedback[req.Key.Kind]
	if len(canned) == 0 {
		result.Feedback = "Thank you for your response. A supervisor will review it shortly."
	} else {
		result.Feedback = canned[m.rnd.Intn(len(canned))]
	}
	return result, nil
}

var _ AutoScorer = (*MockScorer)(nil)
