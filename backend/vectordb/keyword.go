package vectordb

import (
	"context"
	"strings"
	"sync"
	"time"
)

// keywordDimensions mirrors the embedding width of the hosted index the
// keyword backend stands in for.
const keywordDimensions = 1536

// KeywordRetriever matches the query as a case-insensitive substring of a
// document's title or snippet and ranks hits by their stored similarity.
type KeywordRetriever struct {
	mu      sync.RWMutex
	docs    []Document
	updated time.Time
}

func NewKeywordRetriever() *KeywordRetriever {
	return &KeywordRetriever{}
}

func (k *KeywordRetriever) Index(_ context.Context, docs []Document) error {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.docs = append(k.docs, docs...)
	k.updated = time.Now()
	return nil
}

func (k *KeywordRetriever) Search(_ context.Context, query string, limit int) (*SearchResult, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()

	q := strings.ToLower(query)
	hits := make([]Document, 0)
	for _, d := range k.docs {
		if strings.Contains(strings.ToLower(d.Title), q) || strings.Contains(strings.ToLower(d.Snippet), q) {
			hits = append(hits, d)
		}
	}
	hits = rank(hits, limit)
	return &SearchResult{Documents: hits, TotalFound: len(hits)}, nil
}

func (k *KeywordRetriever) Status(context.Context) (*Status, error) {
	return &Status{
		Status:    "connected",
		Provider:  "keyword",
		IndexName: IndexName,
		Healthy:   true,
	}, nil
}

func (k *KeywordRetriever) Stats(context.Context) (*Stats, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return &Stats{
		DocumentCount:    len(k.docs),
		VectorDimensions: keywordDimensions,
		IndexType:        "cosine",
		LastUpdated:      k.updated,
	}, nil
}
