package activity

import (
	"fmt"

	courseModels "webmatematica/models/course"
)

type Tier string

const (
	TierNone           Tier = ""
	TierExcellent      Tier = "Excellent"
	TierVeryGood       Tier = "Very good"
	TierGood           Tier = "Good"
	TierKeepPracticing Tier = "Keep practicing"
)

// TierFor maps a rounded percentage to its message tier. Exact boundaries
// belong to the higher tier.
func TierFor(percentage int) Tier {
	switch {
	case percentage >= 100:
		return TierExcellent
	case percentage >= 80:
		return TierVeryGood
	case percentage >= 60:
		return TierGood
	default:
		return TierKeepPracticing
	}
}

// Percentage returns correct/total as a percentage rounded half up.
// A zero total yields zero.
func Percentage(correct, total int) int {
	if total <= 0 {
		return 0
	}
	return (correct*200 + total) / (2 * total)
}

// Outcome is the evaluation of a single question.
type Outcome struct {
	QuestionID    string `json:"question_id"`
	Selected      *int   `json:"selected"`
	Scoreable     bool   `json:"scoreable"`
	Correct       bool   `json:"correct"`
	CorrectIndex  *int   `json:"correct_index,omitempty"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
	Explanation   string `json:"explanation,omitempty"`
}

// Result is the score summary of a submitted quiz. Total only counts
// scoreable questions.
type Result struct {
	Correct    int       `json:"correct"`
	Total      int       `json:"total"`
	Percentage int       `json:"percentage"`
	Tier       Tier      `json:"tier"`
	Outcomes   []Outcome `json:"outcomes"`
}

func (r Result) HasScore() bool {
	return r.Total > 0
}

// Message is the line shown under a submitted quiz, empty when nothing was scoreable.
func (r Result) Message() string {
	if !r.HasScore() {
		return ""
	}
	return fmt.Sprintf("Score: %d/%d (%d%%) - %s", r.Correct, r.Total, r.Percentage, r.Tier)
}

// Evaluate scores answers against the questions. Questions missing options or
// a valid correct index are reported but left out of the score.
func Evaluate(questions []courseModels.Question, answers map[string]int) Result {
	result := Result{Outcomes: make([]Outcome, 0, len(questions))}

	for _, q := range questions {
		outcome := Outcome{QuestionID: q.ID, Scoreable: q.Scoreable(), Explanation: q.Explanation}
		selected, answered := answers[q.ID]
		if answered {
			s := selected
			outcome.Selected = &s
		}

		if outcome.Scoreable {
			idx := *q.CorrectAnswerIndex
			outcome.CorrectIndex = &idx
			outcome.CorrectAnswer = q.Options[idx]
			outcome.Correct = answered && selected == idx

			result.Total++
			if outcome.Correct {
				result.Correct++
			}
		}

		result.Outcomes = append(result.Outcomes, outcome)
	}

	if result.HasScore() {
		result.Percentage = Percentage(result.Correct, result.Total)
		result.Tier = TierFor(result.Percentage)
	}
	return result
}
