package activity

import (
	"errors"

	courseModels "webmatematica/models/course"
)

var (
	ErrIllegalTransition = errors.New("action not allowed in the current activity state")
	ErrUnknownQuestion   = errors.New("question does not belong to this activity")
	ErrInvalidOption     = errors.New("option index out of range")
)

type State int

const (
	Collapsed State = iota
	Expanded
	Answering
	Submitted
)

func (s State) String() string {
	switch s {
	case Collapsed:
		return "collapsed"
	case Expanded:
		return "expanded"
	case Answering:
		return "answering"
	case Submitted:
		return "submitted"
	}
	return "unknown"
}

// Card holds the state of one activity while a learner has it open.
// A Card is owned by a single caller and is not safe for concurrent use.
type Card struct {
	variant         Variant
	state           State
	answers         map[string]int
	solutionVisible bool
	result          *Result
}

func NewCard(v Variant) *Card {
	return &Card{variant: v, answers: map[string]int{}}
}

func (c *Card) State() State          { return c.state }
func (c *Card) Variant() Variant      { return c.variant }
func (c *Card) Submitted() bool       { return c.state == Submitted }
func (c *Card) SolutionVisible() bool { return c.solutionVisible }

// Answers returns a copy of the selected option per question id.
func (c *Card) Answers() map[string]int {
	out := make(map[string]int, len(c.answers))
	for k, v := range c.answers {
		out[k] = v
	}
	return out
}

// Expand opens a collapsed card. It has no effect on an open card.
func (c *Card) Expand() {
	if c.state == Collapsed {
		c.state = Expanded
	}
}

// Collapse closes the card and discards answers, result and solution visibility.
func (c *Card) Collapse() {
	c.state = Collapsed
	c.answers = map[string]int{}
	c.solutionVisible = false
	c.result = nil
}

// SelectAnswer records (or changes) the option picked for a quiz question.
func (c *Card) SelectAnswer(questionID string, optionIndex int) error {
	quiz, ok := c.variant.(Quiz)
	if !ok || (c.state != Expanded && c.state != Answering) {
		return ErrIllegalTransition
	}

	q, found := findQuestion(quiz.Questions, questionID)
	if !found {
		return ErrUnknownQuestion
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return ErrInvalidOption
	}

	c.answers[questionID] = optionIndex
	c.state = Answering
	return nil
}

// Unanswered lists the ids of answerable questions with no selection yet.
// Questions without options cannot be answered and are never listed.
func (c *Card) Unanswered() []string {
	quiz, ok := c.variant.(Quiz)
	if !ok {
		return nil
	}

	var missing []string
	for _, q := range quiz.Questions {
		if len(q.Options) == 0 {
			continue
		}
		if _, answered := c.answers[q.ID]; !answered {
			missing = append(missing, q.ID)
		}
	}
	return missing
}

func (c *Card) CanSubmit() bool {
	if _, ok := c.variant.(Quiz); !ok {
		return false
	}
	if c.state != Expanded && c.state != Answering {
		return false
	}
	return len(c.Unanswered()) == 0
}

// Submit scores the quiz. When a question is still unanswered, or the card is
// not a quiz being answered, it does nothing and reports false.
func (c *Card) Submit() (Result, bool) {
	if !c.CanSubmit() {
		return Result{}, false
	}

	quiz := c.variant.(Quiz)
	result := Evaluate(quiz.Questions, c.answers)
	c.result = &result
	c.state = Submitted
	return result, true
}

// Result returns the score of a submitted quiz.
func (c *Card) Result() (Result, bool) {
	if c.result == nil {
		return Result{}, false
	}
	return *c.result, true
}

// ToggleSolutionVisibility flips whether solutions and explanations are shown.
// It works on any open card and never touches answers or results.
func (c *Card) ToggleSolutionVisibility() (bool, error) {
	if c.state == Collapsed {
		return false, ErrIllegalTransition
	}
	c.solutionVisible = !c.solutionVisible
	return c.solutionVisible, nil
}

func findQuestion(questions []courseModels.Question, id string) (courseModels.Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return courseModels.Question{}, false
}
