package activity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	courseModels "webmatematica/models/course"
)

func newQuizCard(questions ...courseModels.Question) *Card {
	return NewCard(Quiz{Questions: questions})
}

func TestCardLifecycle(t *testing.T) {
	card := newQuizCard(question("q1", 0), question("q2", 1))
	assert.Equal(t, Collapsed, card.State())

	card.Expand()
	assert.Equal(t, Expanded, card.State())

	require.NoError(t, card.SelectAnswer("q1", 0))
	assert.Equal(t, Answering, card.State())
	require.NoError(t, card.SelectAnswer("q2", 3))
	require.NoError(t, card.SelectAnswer("q2", 1))

	result, ok := card.Submit()
	require.True(t, ok)
	assert.Equal(t, Submitted, card.State())
	assert.True(t, card.Submitted())
	assert.Equal(t, 2, result.Correct)
	assert.Equal(t, TierExcellent, result.Tier)

	stored, ok := card.Result()
	require.True(t, ok)
	assert.Equal(t, result, stored)

	card.Collapse()
	assert.Equal(t, Collapsed, card.State())
}

func TestCardSubmitIsNoOpWhileAnswersMissing(t *testing.T) {
	card := newQuizCard(question("q1", 0), question("q2", 0))
	card.Expand()
	require.NoError(t, card.SelectAnswer("q1", 0))

	_, ok := card.Submit()

	assert.False(t, ok)
	assert.Equal(t, Answering, card.State())
	assert.Equal(t, []string{"q2"}, card.Unanswered())
	_, hasResult := card.Result()
	assert.False(t, hasResult)
}

func TestCardCollapseAlwaysResets(t *testing.T) {
	setups := map[string]func(c *Card){
		"collapsed": func(c *Card) {},
		"expanded":  func(c *Card) { c.Expand() },
		"answering": func(c *Card) {
			c.Expand()
			_ = c.SelectAnswer("q1", 2)
		},
		"submitted": func(c *Card) {
			c.Expand()
			_ = c.SelectAnswer("q1", 0)
			_, _ = c.Submit()
			_, _ = c.ToggleSolutionVisibility()
		},
	}

	for name, setup := range setups {
		t.Run(name, func(t *testing.T) {
			card := newQuizCard(question("q1", 0))
			setup(card)

			card.Collapse()

			assert.Equal(t, Collapsed, card.State())
			assert.Empty(t, card.Answers())
			assert.False(t, card.Submitted())
			assert.False(t, card.SolutionVisible())
			_, hasResult := card.Result()
			assert.False(t, hasResult)
		})
	}
}

func TestCardSelectAnswerRules(t *testing.T) {
	card := newQuizCard(question("q1", 0))

	assert.ErrorIs(t, card.SelectAnswer("q1", 0), ErrIllegalTransition, "collapsed")

	card.Expand()
	assert.ErrorIs(t, card.SelectAnswer("nope", 0), ErrUnknownQuestion)
	assert.ErrorIs(t, card.SelectAnswer("q1", 4), ErrInvalidOption)
	assert.ErrorIs(t, card.SelectAnswer("q1", -1), ErrInvalidOption)
	assert.Equal(t, Expanded, card.State())

	require.NoError(t, card.SelectAnswer("q1", 0))
	_, ok := card.Submit()
	require.True(t, ok)

	assert.ErrorIs(t, card.SelectAnswer("q1", 1), ErrIllegalTransition, "submitted")
	assert.Equal(t, map[string]int{"q1": 0}, card.Answers())
}

func TestCardAnswersIsACopy(t *testing.T) {
	card := newQuizCard(question("q1", 0))
	card.Expand()
	require.NoError(t, card.SelectAnswer("q1", 1))

	answers := card.Answers()
	answers["q1"] = 3

	assert.Equal(t, 1, card.Answers()["q1"])
}

func TestCardToggleSolutionVisibility(t *testing.T) {
	card := NewCard(Exercise{Content: "Simplifica 2x + 3x - 5", Solution: "5x - 5"})

	_, err := card.ToggleSolutionVisibility()
	assert.ErrorIs(t, err, ErrIllegalTransition)

	card.Expand()
	before := card.SolutionVisible()

	visible, err := card.ToggleSolutionVisibility()
	require.NoError(t, err)
	assert.True(t, visible)

	visible, err = card.ToggleSolutionVisibility()
	require.NoError(t, err)
	assert.Equal(t, before, visible)
	assert.Equal(t, Expanded, card.State())
}

func TestCardExerciseHasNoScoring(t *testing.T) {
	card := NewCard(Exercise{Content: "x", Solution: "y"})
	card.Expand()

	assert.ErrorIs(t, card.SelectAnswer("q1", 0), ErrIllegalTransition)
	_, ok := card.Submit()
	assert.False(t, ok)
	assert.Equal(t, Expanded, card.State())
	assert.Nil(t, card.Unanswered())
}

func TestCardQuizWithoutAnswerableQuestions(t *testing.T) {
	card := newQuizCard(courseModels.Question{ID: "broken", Text: "sin opciones"})
	card.Expand()

	result, ok := card.Submit()

	require.True(t, ok)
	assert.False(t, result.HasScore())
	assert.Empty(t, result.Message())
	assert.Equal(t, Submitted, card.State())
}

func TestCardToggleDoesNotAffectSubmission(t *testing.T) {
	card := newQuizCard(question("q1", 0))
	card.Expand()
	require.NoError(t, card.SelectAnswer("q1", 0))

	_, err := card.ToggleSolutionVisibility()
	require.NoError(t, err)

	assert.Equal(t, Answering, card.State())
	assert.Equal(t, map[string]int{"q1": 0}, card.Answers())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "collapsed", Collapsed.String())
	assert.Equal(t, "submitted", Submitted.String())
	assert.Equal(t, "unknown", State(42).String())
}
