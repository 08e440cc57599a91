package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/kassslll/creator-studio/backend/llm"
	"github.com/kassslll/creator-studio/backend/utils"
	"github.com/kassslll/creator-studio/backend/vectordb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ragJSON = `{
  "analysis": "The user wants to learn Python for data work.",
  "curriculumStructure": {"title": "Python Data Track", "modules": [{"title": "NumPy"}]},
  "thoughts": ["Understand intent", "Scan documents", "Pick modules", "Order the path"]
}`

func newRetriever(t *testing.T) *vectordb.KeywordRetriever {
	t.Helper()
	docs, err := vectordb.LoadCorpus("")
	require.NoError(t, err)
	r := vectordb.NewKeywordRetriever()
	require.NoError(t, r.Index(context.Background(), docs))
	return r
}

func newDiscovery(t *testing.T, mock *llm.MockProvider) *DiscoveryService {
	return NewDiscoveryService(newRetriever(t), mock, utils.NopLogger())
}

func TestDiscoverNoDocumentsSkipsProvider(t *testing.T) {
	mock := llm.NewMockProvider()
	res, err := newDiscovery(t, mock).Discover(context.Background(), "quantum chromodynamics")
	require.NoError(t, err)

	assert.Equal(t, 0, mock.CallCount())
	assert.Empty(t, res.Documents)
	assert.NotNil(t, res.Documents)
	assert.Equal(t, []string{`No relevant educational content found for query: "quantum chromodynamics"`}, res.Thoughts)
	assert.Empty(t, res.Analysis)
	assert.Nil(t, res.CurriculumStructure)
}

func TestDiscoverParsesBareAndFencedAlike(t *testing.T) {
	bare := llm.NewMockProvider(llm.MockResponse{Text: ragJSON})
	fenced := llm.NewMockProvider(llm.MockResponse{Text: "Here you go:\n```json\n" + ragJSON + "\n```\nEnjoy."})

	a, err := newDiscovery(t, bare).Discover(context.Background(), "pandas")
	require.NoError(t, err)
	b, err := newDiscovery(t, fenced).Discover(context.Background(), "pandas")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, "The user wants to learn Python for data work.", a.Analysis)
	assert.Equal(t, []string{"Understand intent", "Scan documents", "Pick modules", "Order the path"}, a.Thoughts)
	structure, ok := a.CurriculumStructure.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Python Data Track", structure["title"])
}

func TestDiscoverKeepsBackticksInsideStrings(t *testing.T) {
	reply := `{"analysis": "Learners should use ` + "```python```" + ` blocks", "thoughts": ["a", "b", "c", "d"]}`
	bare := llm.NewMockProvider(llm.MockResponse{Text: reply})
	fenced := llm.NewMockProvider(llm.MockResponse{Text: "```json\n" + reply + "\n```"})

	a, err := newDiscovery(t, bare).Discover(context.Background(), "python")
	require.NoError(t, err)
	b, err := newDiscovery(t, fenced).Discover(context.Background(), "python")
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c", "d"}, a.Thoughts)
	assert.Equal(t, "Learners should use ```python``` blocks", a.Analysis)
	assert.Equal(t, a, b)
}

func TestDiscoverSortsDocumentsAndBuildsPrompt(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: ragJSON})
	res, err := newDiscovery(t, mock).Discover(context.Background(), "pandas")
	require.NoError(t, err)

	require.Len(t, res.Documents, 3)
	for i := 1; i < len(res.Documents); i++ {
		assert.GreaterOrEqual(t, res.Documents[i-1].Similarity, res.Documents[i].Similarity)
	}

	req, ok := mock.LastCall()
	require.True(t, ok)
	assert.Equal(t, TemperatureCreative, req.Temperature)
	assert.Contains(t, req.Prompt, "USER QUERY: pandas")
	assert.Contains(t, req.Prompt, "Document 1 (Python for Data Science Handbook, Similarity: 94.0%):")
	assert.Contains(t, req.Prompt, "Type: Course")
	assert.Contains(t, req.Prompt, `"thoughts"`)
}

func TestDiscoverRepairsMalformedJSON(t *testing.T) {
	broken := `{"analysis": "Needs numpy basics", "thoughts": ["one", "two", "three", "four"],`
	mock := llm.NewMockProvider(llm.MockResponse{Text: broken})

	res, err := newDiscovery(t, mock).Discover(context.Background(), "numpy")
	require.NoError(t, err)
	assert.Equal(t, "Needs numpy basics", res.Analysis)
	assert.Equal(t, []string{"one", "two", "three", "four"}, res.Thoughts)
}

func TestDiscoverFlattensThoughtObjects(t *testing.T) {
	text := `{"thoughts": [{"step": 1, "description": "first"}, "second", {"text": "third"}, "fourth", "fifth"]}`
	mock := llm.NewMockProvider(llm.MockResponse{Text: text})

	res, err := newDiscovery(t, mock).Discover(context.Background(), "python")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third", "fourth"}, res.Thoughts)
}

func TestDiscoverUnparsableResponseFallsBack(t *testing.T) {
	text := strings.Repeat("plain prose ", 40)
	mock := llm.NewMockProvider(llm.MockResponse{Text: text})

	res, err := newDiscovery(t, mock).Discover(context.Background(), "matplotlib")
	require.NoError(t, err)

	assert.Equal(t, UnparsedThoughts("matplotlib"), res.Thoughts)
	assert.Len(t, res.Thoughts, 4)
	assert.Equal(t, text[:200]+"...", res.Analysis)
	assert.Equal(t, map[string]any{
		"title":       "Curriculum for matplotlib",
		"description": "Generated curriculum based on your query",
		"modules":     []any{},
	}, res.CurriculumStructure)
	require.Len(t, res.Documents, 2)
}

func TestDiscoverProviderFailureDegrades(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("boom")}})

	res, err := newDiscovery(t, mock).Discover(context.Background(), "python")
	require.NoError(t, err)
	assert.Equal(t, RetrievalOnlyThoughts("python"), res.Thoughts)
	assert.Empty(t, res.Analysis)
	assert.Nil(t, res.CurriculumStructure)
	assert.Len(t, res.Documents, 5)
}

func TestAnalyzeQuery(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "They want charts."})
	svc := newDiscovery(t, mock)

	got, err := svc.AnalyzeQuery(context.Background(), "plotting")
	require.NoError(t, err)
	assert.Equal(t, "They want charts.", got.Analysis)

	req, _ := mock.LastCall()
	assert.Equal(t, TemperatureAnalytical, req.Temperature)
	assert.True(t, strings.HasSuffix(req.Prompt, "plotting"))

	_, err = svc.AnalyzeQuery(context.Background(), "again")
	var genErr *GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, "Failed to analyze content query: LLM provider unavailable", err.Error())
}

func TestPendingThoughts(t *testing.T) {
	assert.Equal(t, []string{
		`Analyzing query: "sql"`,
		"Retrieving relevant educational content",
		"Generating curriculum recommendations",
	}, PendingThoughts("sql"))
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, extractJSON("text ```\n{\"a\":1}\n``` more"))
	assert.Equal(t, `{"a":1}`, extractJSON(`  {"a":1} `))

	withTicks := `{"analysis": "Use ` + "```python```" + ` blocks"}`
	assert.Equal(t, withTicks, extractJSON(withTicks))
	assert.Equal(t, withTicks, extractJSON("```json\n"+withTicks+"\n```"))
}

func TestGenerate(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "# Loops"})
	svc := NewGenerationService(mock, utils.NopLogger())

	res, err := svc.Generate(context.Background(), GenerateParams{
		Title:        "Loops",
		ContentType:  "quiz",
		Difficulty:   "Beginner",
		Duration:     "30",
		Objectives:   "Understand for loops",
		Instructions: "Keep it short",
		Options:      GenerationOptions{IncludeCode: true, ProviderModel: "gpt-4o-mini"},
	})
	require.NoError(t, err)
	assert.Equal(t, "# Loops", res.Body)
	assert.Equal(t, "gpt-4o-mini", res.ProviderModel)
	assert.Equal(t, "quiz", res.ContentType)
	assert.Equal(t, "Loops", res.Title)

	req, _ := mock.LastCall()
	assert.Equal(t, "gpt-4o-mini", req.Model)
	assert.Equal(t, TemperatureCreative, req.Temperature)
	assert.Contains(t, req.Prompt, "[CORRECT]")
	assert.Contains(t, req.Prompt, "Generate a quiz on Loops with the following details:")
	assert.Contains(t, req.Prompt, "- Duration: 30 minutes")
	assert.Contains(t, req.Prompt, "Generation Style: comprehensive")
	assert.Contains(t, req.Prompt, "Please include code examples.")
	assert.NotContains(t, req.Prompt, "Please include visual element descriptions.")
	assert.Contains(t, req.Prompt, "markdown")
}

func TestGenerateDefaultsAndFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "body"})
	svc := NewGenerationService(mock, utils.NopLogger())

	res, err := svc.Generate(context.Background(), GenerateParams{Title: "Recursion"})
	require.NoError(t, err)
	assert.Equal(t, "lesson", res.ContentType)
	assert.Equal(t, "mock", res.ProviderModel)

	mock.AddResponse(llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("quota exceeded")}})
	_, err = svc.Generate(context.Background(), GenerateParams{Title: "Recursion"})
	require.Error(t, err)
	assert.Equal(t, "Failed to generate content: quota exceeded", err.Error())
	var rl *llm.ErrRateLimit
	assert.ErrorAs(t, err, &rl)
}

func TestTemplateFor(t *testing.T) {
	assert.Contains(t, templateFor("Programming Exercise", "markdown"), "Test Cases")
	assert.Contains(t, templateFor("project", "html"), "html")
	assert.Equal(t, templateFor("podcast", "markdown"), templateFor("webinar", "markdown"))
	assert.NotEqual(t, templateFor("podcast", "markdown"), templateFor("lesson", "markdown"))
}

func TestModify(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Text: "shorter"})
	svc := NewModificationService(mock, utils.NopLogger())

	res, err := svc.Modify(context.Background(), "# Original body", "simplify", "fewer words")
	require.NoError(t, err)
	assert.Equal(t, "shorter", res.NewBody)
	assert.Equal(t, "# Original body", res.OriginalBody)
	assert.Equal(t, "simplify", res.ModificationType)

	req, _ := mock.LastCall()
	assert.Contains(t, req.Prompt, modificationGuidance[ModSimplify])
	assert.NotContains(t, req.Prompt, modificationGuidance[ModExpand])
	assert.Contains(t, req.Prompt, "Here is the content to modify:\n\n# Original body")
	assert.True(t, strings.HasSuffix(req.Prompt, "Modification instructions: fewer words"))
}

func TestModifyUnknownKindListsAllGuidance(t *testing.T) {
	prompt := modificationPrompt("body", "translate", "")
	for _, k := range ModificationKinds {
		assert.Contains(t, prompt, "If "+string(k)+": "+modificationGuidance[k])
	}
}

func TestModifyFailure(t *testing.T) {
	svc := NewModificationService(llm.NewMockProvider(), utils.NopLogger())
	_, err := svc.Modify(context.Background(), "body", "refine", "")
	assert.EqualError(t, err, "Failed to modify content: LLM provider unavailable")
}
