package model

import (
	"fmt"
	"strings"
)

type Kind string

const (
	KindLeadership     Kind = "leadership"
	KindProblemSolving Kind = "problem_solving"
	KindAdaptability   Kind = "adaptability"
	KindSpeaking       Kind = "speaking"
	KindPresentation   Kind = "presentation"
)

var AllKinds = []Kind{KindLeadership, KindProblemSolving, KindAdaptability, KindSpeaking, KindPresentation}

func (k Kind) Valid() bool {
	for _, known := range AllKinds {
		if k == known {
			return true
		}
	}
	return false
}

// AttemptKey scopes an attempt. Optional parts are empty strings, never NULL,
// so the composite unique index treats them as values.
type AttemptKey struct {
	UserID   string `json:"user_id"`
	Kind     Kind   `json:"kind"`
	Language string `json:"language,omitempty"`
	Level    string `json:"level,omitempty"`
	TaskID   string `json:"task_id,omitempty"`
}

func (k AttemptKey) Normalize() AttemptKey {
	return AttemptKey{
		UserID:   strings.TrimSpace(k.UserID),
		Kind:     Kind(strings.ToLower(strings.TrimSpace(string(k.Kind)))),
		Language: strings.ToLower(strings.TrimSpace(k.Language)),
		Level:    strings.TrimSpace(k.Level),
		TaskID:   strings.TrimSpace(k.TaskID),
	}
}

func (k AttemptKey) String() string {
	return fmt.Sprintf("%s/%s/%s/%s/%s", k.UserID, k.Kind, k.Language, k.Level, k.TaskID)
}
