package content

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		label string
		want  Kind
	}{
		{"lesson", KindLesson},
		{"  QUIZ ", KindQuiz},
		{"exercise", KindExercise},
		{"Programming Exercise", KindExercise},
		{"project", KindProject},
		{"video", KindLesson},
		{"", KindLesson},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseKind(tt.label), tt.label)
	}

	assert.True(t, Known(" Quiz"))
	assert.False(t, Known("podcast"))
}

func TestResolveUnknownTypeIsMarkdown(t *testing.T) {
	for _, label := range []string{"podcast", "flashcards", "??", "lessons"} {
		p := Resolve(label)
		require.Equal(t, KindLesson, p.Kind(), label)

		d := p.Parse("# Heading\n\nbody")
		assert.False(t, d.Fallback)
		lesson, ok := d.Value.(*Lesson)
		require.True(t, ok)
		assert.Equal(t, "# Heading\n\nbody", lesson.Markdown)

		view, err := p.Render(d.Value)
		require.NoError(t, err)
		assert.Contains(t, view.HTML, "<h1>Heading</h1>")
	}
}

func TestQuizInvalidJSONYieldsPlaceholder(t *testing.T) {
	for _, body := range []string{"not json at all", "", "{\"questions\": [", "**Question 1** [CORRECT]"} {
		d := Resolve("quiz").Parse(body)
		assert.True(t, d.Fallback, body)
		assert.Error(t, d.Err)

		q, ok := d.Value.(*Quiz)
		require.True(t, ok)
		require.Len(t, q.Questions, 1)
		qq := q.Questions[0]
		assert.NotEmpty(t, qq.Options)
		assert.GreaterOrEqual(t, qq.CorrectAnswerIndex, 0)
		assert.Less(t, qq.CorrectAnswerIndex, len(qq.Options))
		assert.Equal(t, "Quiz content", q.Description)
	}
}

func TestDecodeQuiz(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		d := DecodeQuiz(`{"title":"Loops","description":"Check loops","questions":[
			{"question":"Which keyword?","options":["for","loop","repeat"],"correctAnswerIndex":0,"explanation":"Go has for."}]}`)
		require.False(t, d.Fallback, d.Err)
		assert.Equal(t, "Loops", d.Value.Title)
		assert.Equal(t, "Go has for.", d.Value.Questions[0].Explanation)
	})

	t.Run("bare array in a fence", func(t *testing.T) {
		d := DecodeQuiz("```json\n[{\"question\":\"2+2?\",\"options\":[\"3\",\"4\"],\"correctAnswerIndex\":1}]\n```")
		require.False(t, d.Fallback, d.Err)
		require.Len(t, d.Value.Questions, 1)
		assert.Equal(t, 1, d.Value.Questions[0].CorrectAnswerIndex)
	})

	t.Run("out of range answer is reset", func(t *testing.T) {
		d := DecodeQuiz(`{"questions":[{"question":"q","options":["a","b"],"correctAnswerIndex":7}]}`)
		require.False(t, d.Fallback, d.Err)
		assert.Equal(t, 0, d.Value.Questions[0].CorrectAnswerIndex)
	})

	t.Run("too few options fails the shape check", func(t *testing.T) {
		d := DecodeQuiz(`{"questions":[{"question":"q","options":["only"]}]}`)
		assert.True(t, d.Fallback)
		assert.Equal(t, QuizFallback(), d.Value)
	})
}

func TestDecodeExercise(t *testing.T) {
	d := DecodeExercise(`{"description":"Sum","instructions":"Add *two* numbers","testCases":[{"input":"1 2","expectedOutput":"3","description":"small"}]}`)
	require.False(t, d.Fallback, d.Err)
	assert.Equal(t, DefaultInitialCode, d.Value.InitialCode)
	assert.Equal(t, DefaultLanguage, d.Value.Language)
	require.Len(t, d.Value.TestCases, 1)
	assert.Equal(t, "3", d.Value.TestCases[0].ExpectedOutput)

	raw := "## Exercise 1\nWrite a function."
	d = DecodeExercise(raw)
	assert.True(t, d.Fallback)
	assert.Equal(t, "Exercise description", d.Value.Description)
	assert.Equal(t, raw, d.Value.Instructions)
	assert.Equal(t, "# Your code here", d.Value.InitialCode)
	assert.Equal(t, "python", d.Value.Language)
	assert.NotNil(t, d.Value.TestCases)

	// valid JSON of the wrong shape still falls back
	d = DecodeExercise(`"just a string"`)
	assert.True(t, d.Fallback)
}

func TestDecodeProject(t *testing.T) {
	d := DecodeProject(`{"description":"EDA","cells":[
		{"type":"markdown","content":"# Intro","language":"python"},
		{"id":"c2","type":"code","content":"print(1)"},
		{"id":"c2","type":"code","content":"print(2)","language":"r"}]}`)
	require.False(t, d.Fallback, d.Err)
	cells := d.Value.Cells
	require.Len(t, cells, 3)
	assert.NotEmpty(t, cells[0].ID)
	assert.Empty(t, cells[0].Language)
	assert.Equal(t, "c2", cells[1].ID)
	assert.Equal(t, "python", cells[1].Language)
	assert.NotEqual(t, "c2", cells[2].ID)
	assert.Equal(t, "r", cells[2].Language)

	d = DecodeProject("plain notes")
	assert.True(t, d.Fallback)
	require.Len(t, d.Value.Cells, 1)
	assert.Equal(t, Cell{ID: "1", Type: CellMarkdown, Content: "plain notes"}, d.Value.Cells[0])
	assert.Equal(t, "Project description", d.Value.Description)

	d = DecodeProject(`{"cells":[{"type":"chart","content":"x"}]}`)
	assert.True(t, d.Fallback)
}

func TestRenderViews(t *testing.T) {
	p := Resolve("project")
	d := p.Parse(`{"description":"d","cells":[{"id":"a","type":"markdown","content":"**bold**"},{"id":"b","type":"code","content":"x = 1"}]}`)
	view, err := p.Render(d.Value)
	require.NoError(t, err)
	require.Len(t, view.Cells, 2)
	assert.Contains(t, view.Cells[0].HTML, "<strong>bold</strong>")
	assert.Empty(t, view.Cells[1].HTML)

	e := Resolve("exercise")
	view, err = e.Render(e.Parse("Use a `for` loop").Value)
	require.NoError(t, err)
	assert.Contains(t, view.HTML, "<code>for</code>")
	assert.Equal(t, "exercise", view.Kind)

	q := Resolve("quiz")
	view, err = q.Render(q.Parse("nope").Value)
	require.NoError(t, err)
	assert.Equal(t, 1, view.QuestionCount)

	_, err = q.Render(&Lesson{})
	assert.Error(t, err)
}

func TestEncodeRoundTrip(t *testing.T) {
	q := QuizFallback()
	body, err := Encode(&q)
	require.NoError(t, err)
	var back Quiz
	require.NoError(t, json.Unmarshal([]byte(body), &back))
	assert.Equal(t, q, back)

	body, err = Encode(&Lesson{Markdown: "# md"})
	require.NoError(t, err)
	assert.Equal(t, "# md", body)
}

func TestStripCodeFence(t *testing.T) {
	bare := `{"a":1}`
	for _, in := range []string{
		bare,
		"```json\n" + bare + "\n```",
		"```\n" + bare + "\n```",
		"  ```JSON\n" + bare + "\n```  ",
		"```json" + bare + "```",
	} {
		assert.Equal(t, bare, StripCodeFence(in), in)
	}
	assert.Equal(t, "plain", StripCodeFence(" plain "))
	assert.True(t, strings.HasPrefix(StripCodeFence("```\n[1]\n```"), "["))
}
