package content

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownOp    = errors.New("unknown edit operation")
	ErrOutOfRange   = errors.New("index out of range")
	ErrCellNotFound = errors.New("cell not found")
	ErrInvalidEdit  = errors.New("invalid edit")
)

// Patch is one edit operation. Which fields matter depends on Op.
type Patch struct {
	Op string `json:"op" validate:"required"`

	// Index addresses a question, test case or, for addCell, the cell to
	// insert after (-1 inserts at the top).
	Index int `json:"index"`
	// Option addresses an option within the question at Index.
	Option int `json:"option"`

	CellID    string   `json:"cellId"`
	CellType  CellType `json:"cellType"`
	Direction string   `json:"direction"`

	Field    string    `json:"field"`
	Value    string    `json:"value"`
	TestCase *TestCase `json:"testCase"`
}

const (
	NewQuestionText = "New question"
	NewOptionText   = "New option"
	NewMarkdownCell = "## New section"
	NewCodeCell     = "# Enter your code here"
	minQuizOptions  = 2
	directionUp     = "up"
	directionDown   = "down"
)

func unknownOp(k Kind, op string) error {
	return fmt.Errorf("%w %q for %s", ErrUnknownOp, op, k)
}

func checkIndex(what string, i, n int) error {
	if i < 0 || i >= n {
		return fmt.Errorf("%s %d: %w (have %d)", what, i, ErrOutOfRange, n)
	}
	return nil
}

func editLesson(l *Lesson, p Patch) (Structure, error) {
	switch p.Op {
	case "replace", "setContent":
		return &Lesson{Markdown: p.Value}, nil
	default:
		return nil, unknownOp(KindLesson, p.Op)
	}
}

func editQuiz(src *Quiz, p Patch) (Structure, error) {
	q := src.clone()

	switch p.Op {
	case "setTitle":
		q.Title = p.Value
	case "setDescription":
		q.Description = p.Value
	case "addQuestion":
		q.Questions = append(q.Questions, QuizQuestion{
			Question: NewQuestionText,
			Options:  []string{"Option 1", "Option 2", "Option 3"},
		})
	case "removeQuestion":
		if err := checkIndex("question", p.Index, len(q.Questions)); err != nil {
			return nil, err
		}
		q.Questions = append(q.Questions[:p.Index], q.Questions[p.Index+1:]...)
	case "updateQuestion", "updateExplanation":
		if err := checkIndex("question", p.Index, len(q.Questions)); err != nil {
			return nil, err
		}
		if p.Op == "updateQuestion" {
			q.Questions[p.Index].Question = p.Value
		} else {
			q.Questions[p.Index].Explanation = p.Value
		}
	case "addOption":
		if err := checkIndex("question", p.Index, len(q.Questions)); err != nil {
			return nil, err
		}
		q.Questions[p.Index].Options = append(q.Questions[p.Index].Options, NewOptionText)
	case "updateOption":
		if err := checkIndex("question", p.Index, len(q.Questions)); err != nil {
			return nil, err
		}
		qq := &q.Questions[p.Index]
		if err := checkIndex("option", p.Option, len(qq.Options)); err != nil {
			return nil, err
		}
		qq.Options[p.Option] = p.Value
	case "removeOption":
		if err := checkIndex("question", p.Index, len(q.Questions)); err != nil {
			return nil, err
		}
		qq := &q.Questions[p.Index]
		if err := checkIndex("option", p.Option, len(qq.Options)); err != nil {
			return nil, err
		}
		if len(qq.Options) <= minQuizOptions {
			return nil, fmt.Errorf("%w: a question needs at least %d options", ErrInvalidEdit, minQuizOptions)
		}
		qq.Options = append(qq.Options[:p.Option], qq.Options[p.Option+1:]...)
		switch {
		case qq.CorrectAnswerIndex == p.Option:
			qq.CorrectAnswerIndex = 0
		case qq.CorrectAnswerIndex > p.Option:
			qq.CorrectAnswerIndex--
		}
	case "setCorrect":
		if err := checkIndex("question", p.Index, len(q.Questions)); err != nil {
			return nil, err
		}
		qq := &q.Questions[p.Index]
		if err := checkIndex("option", p.Option, len(qq.Options)); err != nil {
			return nil, err
		}
		qq.CorrectAnswerIndex = p.Option
	default:
		return nil, unknownOp(KindQuiz, p.Op)
	}
	return q, nil
}

func editExercise(src *Exercise, p Patch) (Structure, error) {
	e := src.clone()

	switch p.Op {
	case "setField":
		switch p.Field {
		case "description":
			e.Description = p.Value
		case "instructions":
			e.Instructions = p.Value
		case "initialCode":
			e.InitialCode = p.Value
		case "language":
			e.Language = p.Value
		case "solution":
			e.Solution = p.Value
		default:
			return nil, fmt.Errorf("%w: unknown exercise field %q", ErrInvalidEdit, p.Field)
		}
	case "addTestCase":
		tc := TestCase{}
		if p.TestCase != nil {
			tc = *p.TestCase
		}
		e.TestCases = append(e.TestCases, tc)
	case "removeTestCase":
		if err := checkIndex("test case", p.Index, len(e.TestCases)); err != nil {
			return nil, err
		}
		e.TestCases = append(e.TestCases[:p.Index], e.TestCases[p.Index+1:]...)
	case "updateTestCase":
		if err := checkIndex("test case", p.Index, len(e.TestCases)); err != nil {
			return nil, err
		}
		tc := &e.TestCases[p.Index]
		switch p.Field {
		case "input":
			tc.Input = p.Value
		case "expectedOutput":
			tc.ExpectedOutput = p.Value
		case "description":
			tc.Description = p.Value
		default:
			return nil, fmt.Errorf("%w: unknown test case field %q", ErrInvalidEdit, p.Field)
		}
	default:
		return nil, unknownOp(KindExercise, p.Op)
	}
	return e, nil
}

func cellIndex(cells []Cell, id string) (int, error) {
	for i, c := range cells {
		if c.ID == id {
			return i, nil
		}
	}
	return -1, fmt.Errorf("cell %q: %w", id, ErrCellNotFound)
}

func editProject(src *Project, p Patch) (Structure, error) {
	proj := src.clone()

	switch p.Op {
	case "setDescription":
		proj.Description = p.Value
	case "addCell":
		if p.Index < -1 || p.Index >= len(proj.Cells) {
			return nil, fmt.Errorf("cell %d: %w (have %d)", p.Index, ErrOutOfRange, len(proj.Cells))
		}
		cell := Cell{ID: newCellID(), Type: p.CellType}
		switch p.CellType {
		case CellMarkdown:
			cell.Content = NewMarkdownCell
		case CellCode:
			cell.Content = NewCodeCell
			cell.Language = DefaultLanguage
		default:
			return nil, fmt.Errorf("%w: unknown cell type %q", ErrInvalidEdit, p.CellType)
		}
		at := p.Index + 1
		proj.Cells = append(proj.Cells[:at], append([]Cell{cell}, proj.Cells[at:]...)...)
	case "removeCell":
		i, err := cellIndex(proj.Cells, p.CellID)
		if err != nil {
			return nil, err
		}
		proj.Cells = append(proj.Cells[:i], proj.Cells[i+1:]...)
	case "moveCell":
		i, err := cellIndex(proj.Cells, p.CellID)
		if err != nil {
			return nil, err
		}
		switch p.Direction {
		case directionUp:
			if i > 0 {
				proj.Cells[i-1], proj.Cells[i] = proj.Cells[i], proj.Cells[i-1]
			}
		case directionDown:
			if i < len(proj.Cells)-1 {
				proj.Cells[i+1], proj.Cells[i] = proj.Cells[i], proj.Cells[i+1]
			}
		default:
			return nil, fmt.Errorf("%w: direction must be up or down", ErrInvalidEdit)
		}
	case "updateCell":
		i, err := cellIndex(proj.Cells, p.CellID)
		if err != nil {
			return nil, err
		}
		proj.Cells[i].Content = p.Value
	case "setLanguage":
		i, err := cellIndex(proj.Cells, p.CellID)
		if err != nil {
			return nil, err
		}
		if proj.Cells[i].Type != CellCode {
			return nil, fmt.Errorf("%w: only code cells have a language", ErrInvalidEdit)
		}
		proj.Cells[i].Language = p.Value
	case "clearOutput":
		i, err := cellIndex(proj.Cells, p.CellID)
		if err != nil {
			return nil, err
		}
		proj.Cells[i].Output = ""
	default:
		return nil, unknownOp(KindProject, p.Op)
	}
	return proj, nil
}
