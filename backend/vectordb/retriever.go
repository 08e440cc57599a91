package vectordb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/kassslll/creator-studio/backend/config"
)

// DefaultSearchLimit is used when a search does not name a limit.
const DefaultSearchLimit = 10

// IndexName is reported by Status for every backend.
const IndexName = "educational-content"

// Document is one corpus entry as returned by a search. Similarity is in
// [0,1].
type Document struct {
	ID         string  `json:"id" yaml:"id"`
	Title      string  `json:"title" yaml:"title"`
	Type       string  `json:"type" yaml:"type"`
	Similarity float64 `json:"similarity" yaml:"similarity"`
	Snippet    string  `json:"snippet" yaml:"snippet"`
}

type SearchResult struct {
	Documents  []Document `json:"documents"`
	TotalFound int        `json:"totalFound"`
}

type Status struct {
	Status    string `json:"status"`
	Provider  string `json:"provider"`
	IndexName string `json:"indexName"`
	Healthy   bool   `json:"healthy"`
}

type Stats struct {
	DocumentCount    int       `json:"documentCount"`
	VectorDimensions int       `json:"vectorDimensions"`
	IndexType        string    `json:"indexType"`
	LastUpdated      time.Time `json:"lastUpdated"`
}

// Retriever is the similarity search backend behind discovery.
type Retriever interface {
	// Search returns at most limit documents ordered by descending
	// similarity. Equal similarities keep corpus order.
	Search(ctx context.Context, query string, limit int) (*SearchResult, error)
	Index(ctx context.Context, docs []Document) error
	Status(ctx context.Context) (*Status, error)
	Stats(ctx context.Context) (*Stats, error)
}

// New builds the retriever selected by cfg.VectorDriver and indexes the
// configured corpus into it.
func New(ctx context.Context, cfg *config.Config) (Retriever, error) {
	docs, err := LoadCorpus(cfg.CorpusPath)
	if err != nil {
		return nil, err
	}

	var r Retriever
	switch cfg.VectorDriver {
	case "keyword":
		r = NewKeywordRetriever()
	case "chromem":
		embed, dims, err := NewEmbedder(cfg)
		if err != nil {
			return nil, err
		}
		r, err = NewChromemRetriever(embed, dims, cfg.VectorMinSimilarity)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown vector driver: %q", cfg.VectorDriver)
	}

	if err := r.Index(ctx, docs); err != nil {
		return nil, fmt.Errorf("index corpus: %w", err)
	}
	return r, nil
}

// rank sorts docs by descending similarity, keeping input order among
// ties, and truncates to limit.
func rank(docs []Document, limit int) []Document {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].Similarity > docs[j].Similarity
	})
	if len(docs) > limit {
		docs = docs[:limit]
	}
	return docs
}
