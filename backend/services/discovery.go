package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	jsonrepair "github.com/RealAlexandreAI/json-repair"

	"github.com/kassslll/creator-studio/backend/llm"
	"github.com/kassslll/creator-studio/backend/utils"
	"github.com/kassslll/creator-studio/backend/vectordb"
)

const (
	maxThoughts     = 4
	analysisPreview = 200
)

// DiscoveryResult is the full, final answer to a discovery query. Pacing
// the thoughts out to a user is up to the caller.
type DiscoveryResult struct {
	Documents           []vectordb.Document `json:"documents"`
	Thoughts            []string            `json:"thoughts"`
	Analysis            string              `json:"analysis,omitempty"`
	CurriculumStructure any                 `json:"curriculumStructure,omitempty"`
	Query               string              `json:"query"`
}

type QueryAnalysis struct {
	Analysis string `json:"analysis"`
	Query    string `json:"query"`
}

type DiscoveryService struct {
	retriever vectordb.Retriever
	provider  llm.Provider
	logger    *utils.Logger
}

func NewDiscoveryService(retriever vectordb.Retriever, provider llm.Provider, logger *utils.Logger) *DiscoveryService {
	return &DiscoveryService{retriever: retriever, provider: provider, logger: logger}
}

// Discover searches the corpus and asks the provider for a curriculum
// recommendation grounded in the hits. Only a retrieval failure is an
// error: no hits skips the provider, a provider failure degrades to fixed
// thoughts, and malformed provider JSON degrades to a placeholder.
func (s *DiscoveryService) Discover(ctx context.Context, query string) (*DiscoveryResult, error) {
	found, err := s.retriever.Search(ctx, query, vectordb.DefaultSearchLimit)
	if err != nil {
		return nil, fmt.Errorf("search documents: %w", err)
	}

	docs := append([]vectordb.Document{}, found.Documents...)
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Similarity > docs[j].Similarity
	})

	if len(docs) == 0 {
		return &DiscoveryResult{
			Documents: docs,
			Thoughts:  []string{fmt.Sprintf("No relevant educational content found for query: %q", query)},
			Query:     query,
		}, nil
	}

	resp, err := s.provider.Generate(ctx, llm.Request{
		Prompt:      ragPrompt(query, docs),
		Temperature: TemperatureCreative,
	})
	if err != nil {
		s.logger.Warn("rag processing failed, using retrieval-only result",
			"query", query, "error", (&GenerationError{Op: opRAG, Err: err}).Error())
		return &DiscoveryResult{
			Documents: docs,
			Thoughts:  RetrievalOnlyThoughts(query),
			Query:     query,
		}, nil
	}

	out := parseRAGResponse(resp.Text, query)
	if out.fallback {
		s.logger.Warn("rag response was not JSON, using placeholder", "query", query)
	}
	return &DiscoveryResult{
		Documents:           docs,
		Thoughts:            out.thoughts,
		Analysis:            out.analysis,
		CurriculumStructure: out.curriculum,
		Query:               query,
	}, nil
}

// AnalyzeQuery asks the provider for a free-text reading of what the query
// is after.
func (s *DiscoveryService) AnalyzeQuery(ctx context.Context, query string) (*QueryAnalysis, error) {
	resp, err := s.provider.Generate(ctx, llm.Request{
		Prompt:      "You are an assistant that helps people discover educational content. Analyze the following query to understand the educational content needs: " + query,
		Temperature: TemperatureAnalytical,
	})
	if err != nil {
		return nil, &GenerationError{Op: opAnalyze, Err: err}
	}
	return &QueryAnalysis{Analysis: resp.Text, Query: query}, nil
}

// RetrievalOnlyThoughts are shown when documents were found but the
// provider call failed.
func RetrievalOnlyThoughts(query string) []string {
	return []string{
		fmt.Sprintf("Analyzing query intent: educational content discovery for %q", query),
		"Performing vector similarity search across educational content database",
		"Generating curriculum options based on retrieved content and user learning objectives",
		"Finalizing curriculum structure with appropriate learning materials, exercises, and assessments",
	}
}

// UnparsedThoughts are shown when the provider answered but not in JSON.
func UnparsedThoughts(query string) []string {
	return []string{
		fmt.Sprintf("Analyzing query intent: educational content discovery for %q", query),
		"Reviewing retrieved documents for relevant educational concepts and materials",
		"Formulating structured curriculum based on user needs and available content",
		"Finalizing recommended learning path with appropriate modules and assessments",
	}
}

// PendingThoughts fill the progress display when a result carries no
// thoughts of its own.
func PendingThoughts(query string) []string {
	return []string{
		fmt.Sprintf("Analyzing query: %q", query),
		"Retrieving relevant educational content",
		"Generating curriculum recommendations",
	}
}

func ragPrompt(query string, docs []vectordb.Document) string {
	var b strings.Builder
	b.WriteString("You are an assistant that helps people discover educational content and plans learning paths and curricula.\n\n")
	fmt.Fprintf(&b, "USER QUERY: %s\n\n", query)
	b.WriteString("RETRIEVED CONTEXT DOCUMENTS:\n")
	for i, d := range docs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "Document %d (%s, Similarity: %.1f%%):\n", i+1, d.Title, d.Similarity*100)
		fmt.Fprintf(&b, "Type: %s\n", d.Type)
		fmt.Fprintf(&b, "Snippet: %s\n", d.Snippet)
	}
	b.WriteString(`
Using the query and the documents above:
1. Work out the user's intent and learning goals
2. Pull out the relevant concepts and topics from the documents
3. Put together a structured curriculum that meets those needs
4. Include concrete modules: lessons, quizzes, exercises and projects

Reply with a JSON object containing:
1. "analysis": your understanding of the user's needs
2. "curriculumStructure": your recommended curriculum
3. "thoughts": an array of exactly 4 short strings describing your reasoning, from understanding the query to finalizing the recommendation
`)
	return b.String()
}

type ragOutcome struct {
	thoughts   []string
	analysis   string
	curriculum any
	fallback   bool
}

// parseRAGResponse decodes the provider's reply. A reply that cannot be
// read as an object carrying at least one expected field becomes the
// deterministic placeholder.
func parseRAGResponse(text, query string) ragOutcome {
	fields, ok := decodeObject(extractJSON(text))
	if ok {
		_, hasA := fields["analysis"]
		_, hasC := fields["curriculumStructure"]
		_, hasT := fields["thoughts"]
		ok = hasA || hasC || hasT
	}
	if !ok {
		return ragOutcome{
			thoughts: UnparsedThoughts(query),
			analysis: preview(text),
			curriculum: map[string]any{
				"title":       "Curriculum for " + query,
				"description": "Generated curriculum based on your query",
				"modules":     []any{},
			},
			fallback: true,
		}
	}

	out := ragOutcome{thoughts: decodeThoughts(fields["thoughts"])}
	if raw, ok := fields["analysis"]; ok {
		out.analysis = decodeText(raw)
	}
	if raw, ok := fields["curriculumStructure"]; ok {
		var v any
		if err := json.Unmarshal(raw, &v); err == nil {
			out.curriculum = v
		}
	}
	return out
}

// extractJSON pulls the JSON candidate out of a reply. A reply that starts
// as an object is taken whole, backticks inside its strings included.
// Otherwise it is the body of the first ```json fence, else of the first
// bare fence, else the whole text. A fence body runs to the last closing
// fence when that yields valid JSON.
func extractJSON(text string) string {
	trimmed := strings.TrimSpace(text)
	if strings.HasPrefix(trimmed, "{") {
		return trimmed
	}
	for _, marker := range []string{"```json", "```"} {
		start := strings.Index(trimmed, marker)
		if start < 0 {
			continue
		}
		rest := trimmed[start+len(marker):]
		if end := strings.LastIndex(rest, "```"); end >= 0 {
			if whole := strings.TrimSpace(rest[:end]); json.Valid([]byte(whole)) {
				return whole
			}
		}
		if end := strings.Index(rest, "```"); end >= 0 {
			rest = rest[:end]
		}
		return strings.TrimSpace(rest)
	}
	return trimmed
}

func decodeObject(s string) (map[string]json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &fields); err == nil && fields != nil {
		return fields, true
	}

	repaired, err := jsonrepair.RepairJSON(s)
	if err != nil {
		return nil, false
	}
	if err := json.Unmarshal([]byte(repaired), &fields); err != nil || fields == nil {
		return nil, false
	}
	return fields, true
}

// decodeThoughts accepts strings or objects carrying a description and
// keeps at most four.
func decodeThoughts(raw json.RawMessage) []string {
	thoughts := make([]string, 0, maxThoughts)
	if raw == nil {
		return thoughts
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return thoughts
	}
	for _, item := range items {
		if len(thoughts) == maxThoughts {
			break
		}
		if t := decodeThought(item); t != "" {
			thoughts = append(thoughts, t)
		}
	}
	return thoughts
}

func decodeThought(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return ""
	}
	for _, key := range []string{"description", "thought", "text", "step"} {
		if v, ok := obj[key].(string); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func decodeText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func preview(text string) string {
	r := []rune(text)
	if len(r) > analysisPreview {
		r = r[:analysisPreview]
	}
	return string(r) + "..."
}
