package content

// Structure is the typed form of a content body. The concrete types are
// *Lesson, *Quiz, *Exercise and *Project.
type Structure interface {
	Kind() Kind
}

type Lesson struct {
	Markdown string `json:"markdown"`
}

type QuizQuestion struct {
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation,omitempty"`
}

type Quiz struct {
	Title       string         `json:"title,omitempty"`
	Description string         `json:"description"`
	Questions   []QuizQuestion `json:"questions"`
}

type TestCase struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
	Description    string `json:"description"`
}

type Exercise struct {
	Description  string     `json:"description"`
	Instructions string     `json:"instructions"`
	InitialCode  string     `json:"initialCode"`
	Language     string     `json:"language"`
	TestCases    []TestCase `json:"testCases"`
	Solution     string     `json:"solution,omitempty"`
}

type CellType string

const (
	CellMarkdown CellType = "markdown"
	CellCode     CellType = "code"
)

// Cell is one notebook cell. Language is set only on code cells.
type Cell struct {
	ID       string   `json:"id"`
	Type     CellType `json:"type"`
	Content  string   `json:"content"`
	Language string   `json:"language,omitempty"`
	Output   string   `json:"output,omitempty"`
}

type Project struct {
	Description string `json:"description"`
	Cells       []Cell `json:"cells"`
}

func (*Lesson) Kind() Kind   { return KindLesson }
func (*Quiz) Kind() Kind     { return KindQuiz }
func (*Exercise) Kind() Kind { return KindExercise }
func (*Project) Kind() Kind  { return KindProject }

const (
	DefaultLanguage    = "python"
	DefaultInitialCode = "# Your code here"
)

func (q *Quiz) clone() *Quiz {
	out := *q
	out.Questions = make([]QuizQuestion, len(q.Questions))
	for i, qq := range q.Questions {
		qq.Options = append([]string(nil), qq.Options...)
		out.Questions[i] = qq
	}
	return &out
}

func (e *Exercise) clone() *Exercise {
	out := *e
	out.TestCases = append([]TestCase{}, e.TestCases...)
	return &out
}

func (p *Project) clone() *Project {
	out := *p
	out.Cells = append([]Cell{}, p.Cells...)
	return &out
}
