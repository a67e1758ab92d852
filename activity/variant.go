// Package activity scores quiz activities and tracks the state of an
// activity while a learner works through it.
package activity

import (
	"errors"
	"strings"

	courseModels "webmatematica/models/course"
)

var ErrUnsupportedActivityType = errors.New("unsupported activity type")

// Variant is either a Quiz or an Exercise.
type Variant interface {
	isVariant()
}

type Quiz struct {
	Questions []courseModels.Question
}

type Exercise struct {
	Content     string
	Solution    string
	Explanation string
}

func (Quiz) isVariant()     {}
func (Exercise) isVariant() {}

// FromActivity builds the variant for a stored activity. The legacy "quizz"
// spelling found in older content is accepted as a quiz.
func FromActivity(a courseModels.Activity) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(a.Type)) {
	case courseModels.ActivityTypeQuiz, "quizz":
		return Quiz{Questions: []courseModels.Question(a.Questions)}, nil
	case courseModels.ActivityTypeExercise:
		return Exercise{Content: a.Content, Solution: a.Solution, Explanation: a.Explanation}, nil
	}
	return nil, ErrUnsupportedActivityType
}
