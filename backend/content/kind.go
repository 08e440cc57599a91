package content

import "strings"

// Kind is the closed set of presentation kinds. Content records carry an
// open-ended type label; ParseKind folds it onto one of these.
type Kind int

const (
	KindLesson Kind = iota
	KindQuiz
	KindExercise
	KindProject
)

func (k Kind) String() string {
	switch k {
	case KindQuiz:
		return "quiz"
	case KindExercise:
		return "exercise"
	case KindProject:
		return "project"
	default:
		return "lesson"
	}
}

// ParseKind maps a content-type label to its Kind. Labels are trimmed and
// matched case-insensitively; anything unrecognised is a lesson.
func ParseKind(label string) Kind {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "lesson":
		return KindLesson
	case "quiz":
		return KindQuiz
	case "exercise", "programming exercise":
		return KindExercise
	case "project":
		return KindProject
	default:
		return KindLesson
	}
}

// Known reports whether label names one of the four kinds directly, as
// opposed to falling back to lesson.
func Known(label string) bool {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "lesson", "quiz", "exercise", "programming exercise", "project":
		return true
	}
	return false
}
