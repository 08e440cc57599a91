package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreQuiz(t *testing.T) {
	questions := []QuizQuestion{
		{Options: []string{"A", "B", "C"}, CorrectAnswerIndex: 1},
		{Options: []string{"A", "B"}, CorrectAnswerIndex: 0},
	}

	got := ScoreQuiz(questions, []int{1, 0})
	assert.Equal(t, QuizScore{Score: 2, Total: 2, Percentage: 100, Complete: true}, got)

	got = ScoreQuiz(questions, []int{-1, 0})
	assert.False(t, got.Complete)
	assert.Equal(t, 1, got.Score)

	got = ScoreQuiz(questions, []int{2, 0})
	assert.Equal(t, 50, got.Percentage)
	assert.True(t, got.Complete)

	got = ScoreQuiz(questions, []int{1})
	assert.False(t, got.Complete)
}

func TestScoreQuizRounding(t *testing.T) {
	questions := []QuizQuestion{
		{Options: []string{"a", "b"}, CorrectAnswerIndex: 0},
		{Options: []string{"a", "b"}, CorrectAnswerIndex: 0},
		{Options: []string{"a", "b"}, CorrectAnswerIndex: 0},
	}
	assert.Equal(t, 67, ScoreQuiz(questions, []int{0, 0, 1}).Percentage)
	assert.Equal(t, 33, ScoreQuiz(questions, []int{0, 1, 1}).Percentage)

	empty := ScoreQuiz(nil, nil)
	assert.Equal(t, 0, empty.Percentage)
	assert.True(t, empty.Complete)
}
