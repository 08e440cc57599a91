package content

import (
	"encoding/json"
	"fmt"
)

// Presentation is the capability set for one Kind.
type Presentation interface {
	Kind() Kind
	// Parse never fails: an undecodable body yields the kind's placeholder
	// with Fallback set.
	Parse(body string) Decoded[Structure]
	Render(s Structure) (*View, error)
	Edit(s Structure, p Patch) (Structure, error)
}

// Resolve returns the presentation for a content-type label. Unknown labels
// get the lesson presentation.
func Resolve(label string) Presentation {
	switch ParseKind(label) {
	case KindQuiz:
		return quizPresentation{}
	case KindExercise:
		return exercisePresentation{}
	case KindProject:
		return projectPresentation{}
	default:
		return lessonPresentation{}
	}
}

func wrap[T any, P interface {
	*T
	Structure
}](d Decoded[T]) Decoded[Structure] {
	v := d.Value
	return Decoded[Structure]{Value: P(&v), Fallback: d.Fallback, Err: d.Err}
}

type lessonPresentation struct{}

func (lessonPresentation) Kind() Kind { return KindLesson }

func (lessonPresentation) Parse(body string) Decoded[Structure] {
	return Decoded[Structure]{Value: &Lesson{Markdown: body}}
}

func (lessonPresentation) Render(s Structure) (*View, error) {
	l, ok := s.(*Lesson)
	if !ok {
		return nil, mismatch(KindLesson, s)
	}
	return renderLesson(l)
}

func (lessonPresentation) Edit(s Structure, p Patch) (Structure, error) {
	l, ok := s.(*Lesson)
	if !ok {
		return nil, mismatch(KindLesson, s)
	}
	return editLesson(l, p)
}

type quizPresentation struct{}

func (quizPresentation) Kind() Kind { return KindQuiz }

func (quizPresentation) Parse(body string) Decoded[Structure] {
	return wrap[Quiz](DecodeQuiz(body))
}

func (quizPresentation) Render(s Structure) (*View, error) {
	q, ok := s.(*Quiz)
	if !ok {
		return nil, mismatch(KindQuiz, s)
	}
	return renderQuiz(q), nil
}

func (quizPresentation) Edit(s Structure, p Patch) (Structure, error) {
	q, ok := s.(*Quiz)
	if !ok {
		return nil, mismatch(KindQuiz, s)
	}
	return editQuiz(q, p)
}

type exercisePresentation struct{}

func (exercisePresentation) Kind() Kind { return KindExercise }

func (exercisePresentation) Parse(body string) Decoded[Structure] {
	return wrap[Exercise](DecodeExercise(body))
}

func (exercisePresentation) Render(s Structure) (*View, error) {
	e, ok := s.(*Exercise)
	if !ok {
		return nil, mismatch(KindExercise, s)
	}
	return renderExercise(e)
}

func (exercisePresentation) Edit(s Structure, p Patch) (Structure, error) {
	e, ok := s.(*Exercise)
	if !ok {
		return nil, mismatch(KindExercise, s)
	}
	return editExercise(e, p)
}

type projectPresentation struct{}

func (projectPresentation) Kind() Kind { return KindProject }

func (projectPresentation) Parse(body string) Decoded[Structure] {
	return wrap[Project](DecodeProject(body))
}

func (projectPresentation) Render(s Structure) (*View, error) {
	p, ok := s.(*Project)
	if !ok {
		return nil, mismatch(KindProject, s)
	}
	return renderProject(p)
}

func (projectPresentation) Edit(s Structure, patch Patch) (Structure, error) {
	p, ok := s.(*Project)
	if !ok {
		return nil, mismatch(KindProject, s)
	}
	return editProject(p, patch)
}

func mismatch(want Kind, s Structure) error {
	if s == nil {
		return fmt.Errorf("expected %s structure, got nil", want)
	}
	return fmt.Errorf("expected %s structure, got %s", want, s.Kind())
}

// Encode serialises a structure back to the stored body: markdown for
// lessons and JSON for everything else.
func Encode(s Structure) (string, error) {
	if l, ok := s.(*Lesson); ok {
		return l.Markdown, nil
	}
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", s.Kind(), err)
	}
	return string(raw), nil
}
