package vectordb

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/philippgille/chromem-go"
)

const collectionName = "educational-content"

// ChromemRetriever runs cosine similarity search over an in-process
// chromem-go collection.
type ChromemRetriever struct {
	coll          *chromem.Collection
	dims          int
	minSimilarity float64

	mu      sync.RWMutex
	updated time.Time
	next    int
}

func NewChromemRetriever(embed chromem.EmbeddingFunc, dims int, minSimilarity float64) (*ChromemRetriever, error) {
	db := chromem.NewDB()
	coll, err := db.GetOrCreateCollection(collectionName, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection: %w", err)
	}
	return &ChromemRetriever{
		coll:          coll,
		dims:          dims,
		minSimilarity: minSimilarity,
	}, nil
}

func (c *ChromemRetriever) Index(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	batch := make([]chromem.Document, len(docs))
	for i, d := range docs {
		batch[i] = chromem.Document{
			ID:      d.ID,
			Content: d.Title + "\n" + d.Snippet,
			Metadata: map[string]string{
				"title":   d.Title,
				"type":    d.Type,
				"snippet": d.Snippet,
				"order":   strconv.Itoa(c.next + i),
			},
		}
	}
	if err := c.coll.AddDocuments(ctx, batch, runtime.NumCPU()); err != nil {
		return fmt.Errorf("failed to add documents: %w", err)
	}
	c.next += len(docs)
	c.updated = time.Now()
	return nil
}

func (c *ChromemRetriever) Search(ctx context.Context, query string, limit int) (*SearchResult, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	n := limit
	if count := c.coll.Count(); n > count {
		n = count
	}
	if n == 0 || strings.TrimSpace(query) == "" {
		return &SearchResult{Documents: []Document{}}, nil
	}

	results, err := c.coll.Query(ctx, query, n, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}

	// chromem orders by similarity only; restore corpus order among ties
	// before the stable rank.
	ordered := make([]Document, len(results))
	orders := make(map[string]int, len(results))
	for i, r := range results {
		ordered[i] = Document{
			ID:         r.ID,
			Title:      r.Metadata["title"],
			Type:       r.Metadata["type"],
			Similarity: clamp01(float64(r.Similarity)),
			Snippet:    r.Metadata["snippet"],
		}
		orders[r.ID], _ = strconv.Atoi(r.Metadata["order"])
	}
	sortByOrder(ordered, orders)

	hits := make([]Document, 0, len(ordered))
	for _, d := range ordered {
		if d.Similarity >= c.minSimilarity {
			hits = append(hits, d)
		}
	}
	hits = rank(hits, limit)
	return &SearchResult{Documents: hits, TotalFound: len(hits)}, nil
}

func (c *ChromemRetriever) Status(context.Context) (*Status, error) {
	return &Status{
		Status:    "connected",
		Provider:  "chromem",
		IndexName: IndexName,
		Healthy:   true,
	}, nil
}

func (c *ChromemRetriever) Stats(context.Context) (*Stats, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return &Stats{
		DocumentCount:    c.coll.Count(),
		VectorDimensions: c.dims,
		IndexType:        "cosine",
		LastUpdated:      c.updated,
	}, nil
}

func sortByOrder(docs []Document, orders map[string]int) {
	sort.SliceStable(docs, func(i, j int) bool {
		return orders[docs[i].ID] < orders[docs[j].ID]
	})
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
