package content

import "math"

// Unanswered marks a question with no selected option.
const Unanswered = -1

type QuizScore struct {
	Score      int  `json:"score"`
	Total      int  `json:"total"`
	Percentage int  `json:"percentage"`
	Complete   bool `json:"complete"`
}

// ScoreQuiz counts selections that match the correct option. A quiz is
// Complete, and so eligible for checking, only when every question has a
// selection.
func ScoreQuiz(questions []QuizQuestion, selections []int) QuizScore {
	res := QuizScore{Total: len(questions), Complete: len(selections) == len(questions)}

	for i, q := range questions {
		if i >= len(selections) {
			break
		}
		sel := selections[i]
		if sel == Unanswered {
			res.Complete = false
			continue
		}
		if sel == q.CorrectAnswerIndex {
			res.Score++
		}
	}

	if res.Total > 0 {
		res.Percentage = int(math.Round(100 * float64(res.Score) / float64(res.Total)))
	}
	return res
}
