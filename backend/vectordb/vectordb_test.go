package vectordb

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/kassslll/creator-studio/backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(docs []Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.ID
	}
	return out
}

func newKeyword(t *testing.T) *KeywordRetriever {
	t.Helper()
	docs, err := LoadCorpus("")
	require.NoError(t, err)
	k := NewKeywordRetriever()
	require.NoError(t, k.Index(context.Background(), docs))
	return k
}

func TestKeywordSearchRanksAndKeepsCorpusOrderOnTies(t *testing.T) {
	k := newKeyword(t)

	res, err := k.Search(context.Background(), "PYTHON", 0)
	require.NoError(t, err)
	// 3 and 5 both score 0.87; 3 comes first in the corpus.
	assert.Equal(t, []string{"1", "4", "3", "5", "6"}, ids(res.Documents))
	assert.Equal(t, 5, res.TotalFound)

	res, err = k.Search(context.Background(), "pandas", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "5"}, ids(res.Documents))
}

func TestKeywordSearchLimitAndMiss(t *testing.T) {
	k := newKeyword(t)

	res, err := k.Search(context.Background(), "python", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "4"}, ids(res.Documents))

	res, err = k.Search(context.Background(), "quantum chromodynamics", 10)
	require.NoError(t, err)
	assert.Empty(t, res.Documents)
	assert.NotNil(t, res.Documents)
	assert.Equal(t, 0, res.TotalFound)
}

func TestKeywordStatusAndStats(t *testing.T) {
	k := newKeyword(t)

	status, err := k.Status(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "connected", status.Status)
	assert.Equal(t, IndexName, status.IndexName)
	assert.True(t, status.Healthy)

	stats, err := k.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, stats.DocumentCount)
	assert.Equal(t, 1536, stats.VectorDimensions)
	assert.Equal(t, "cosine", stats.IndexType)
	assert.False(t, stats.LastUpdated.IsZero())
}

func TestHashEmbedder(t *testing.T) {
	embed := HashEmbedder(HashDimensions)

	a, err := embed(context.Background(), "Data Visualization with Matplotlib")
	require.NoError(t, err)
	b, err := embed(context.Background(), "data visualization WITH matplotlib!")
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, HashDimensions)

	var norm float64
	for _, v := range a {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)

	empty, err := embed(context.Background(), "...")
	require.NoError(t, err)
	assert.Equal(t, float32(1), empty[0])
}

func newChromem(t *testing.T, minSimilarity float64) *ChromemRetriever {
	t.Helper()
	docs, err := LoadCorpus("")
	require.NoError(t, err)
	c, err := NewChromemRetriever(HashEmbedder(HashDimensions), HashDimensions, minSimilarity)
	require.NoError(t, err)
	require.NoError(t, c.Index(context.Background(), docs))
	return c
}

func TestChromemSearch(t *testing.T) {
	c := newChromem(t, 0)

	res, err := c.Search(context.Background(), "matplotlib visualization", 3)
	require.NoError(t, err)
	require.NotEmpty(t, res.Documents)
	assert.LessOrEqual(t, len(res.Documents), 3)
	assert.Equal(t, "3", res.Documents[0].ID)
	assert.Equal(t, "Module", res.Documents[0].Type)
	for i := 1; i < len(res.Documents); i++ {
		assert.GreaterOrEqual(t, res.Documents[i-1].Similarity, res.Documents[i].Similarity)
	}
	for _, d := range res.Documents {
		assert.GreaterOrEqual(t, d.Similarity, 0.0)
		assert.LessOrEqual(t, d.Similarity, 1.0)
	}

	// limit larger than the collection is clamped
	res, err = c.Search(context.Background(), "python", 50)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(res.Documents), 6)

	res, err = c.Search(context.Background(), "   ", 5)
	require.NoError(t, err)
	assert.Empty(t, res.Documents)
}

func TestChromemMinSimilarity(t *testing.T) {
	c := newChromem(t, 0.99)
	res, err := c.Search(context.Background(), "matplotlib", 10)
	require.NoError(t, err)
	assert.Empty(t, res.Documents)

	stats, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, stats.DocumentCount)
	assert.Equal(t, HashDimensions, stats.VectorDimensions)
}

func TestParseCorpus(t *testing.T) {
	docs, err := LoadCorpus("")
	require.NoError(t, err)
	require.Len(t, docs, 6)
	assert.Equal(t, "Python for Data Science Handbook", docs[0].Title)
	assert.Equal(t, 0.94, docs[0].Similarity)

	_, err = ParseCorpus([]byte("documents:\n  - id: a\n    title: A\n  - id: a\n    title: B\n"))
	assert.ErrorContains(t, err, "duplicate id")

	_, err = ParseCorpus([]byte("documents:\n  - id: a\n    title: A\n    similarity: 1.5\n"))
	assert.ErrorContains(t, err, "outside [0,1]")

	_, err = ParseCorpus([]byte("documents:\n  - title: A\n"))
	assert.ErrorContains(t, err, "id is required")
}

func TestNewFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`documents:
  - id: go-1
    title: Concurrency in Go
    type: Course
    similarity: 0.9
    snippet: Goroutines and channels.
`), 0o600))

	r, err := New(context.Background(), &config.Config{VectorDriver: "keyword", CorpusPath: path})
	require.NoError(t, err)
	res, err := r.Search(context.Background(), "goroutines", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"go-1"}, ids(res.Documents))

	r, err = New(context.Background(), &config.Config{VectorDriver: "chromem", Embedder: "hash"})
	require.NoError(t, err)
	stats, err := r.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, stats.DocumentCount)

	_, err = New(context.Background(), &config.Config{VectorDriver: "pinecone"})
	assert.Error(t, err)
}
