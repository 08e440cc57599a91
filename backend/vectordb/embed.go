package vectordb

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/cespare/xxhash"
	"github.com/philippgille/chromem-go"

	"github.com/kassslll/creator-studio/backend/config"
)

// HashDimensions is the width of HashEmbedder vectors.
const HashDimensions = 256

// openAI3SmallDimensions is the output width of text-embedding-3-small.
const openAI3SmallDimensions = 1536

// HashEmbedder returns an embedding func that needs no model: each
// lower-cased token is hashed into one of dims buckets with a hash-derived
// sign, then the vector is L2 normalised. Texts sharing words land close
// together under cosine similarity.
func HashEmbedder(dims int) chromem.EmbeddingFunc {
	return func(_ context.Context, text string) ([]float32, error) {
		vec := make([]float32, dims)
		for _, tok := range tokenize(text) {
			h := xxhash.Sum64String(tok)
			idx := h % uint64(dims)
			if h>>63 == 1 {
				vec[idx]--
			} else {
				vec[idx]++
			}
		}

		var norm float64
		for _, v := range vec {
			norm += float64(v) * float64(v)
		}
		if norm == 0 {
			vec[0] = 1
			return vec, nil
		}
		scale := float32(1 / math.Sqrt(norm))
		for i := range vec {
			vec[i] *= scale
		}
		return vec, nil
	}
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// NewEmbedder returns the embedding func selected by cfg.Embedder and the
// width of its vectors (0 when the backend decides).
func NewEmbedder(cfg *config.Config) (chromem.EmbeddingFunc, int, error) {
	switch cfg.Embedder {
	case "hash", "":
		return HashEmbedder(HashDimensions), HashDimensions, nil
	case "openai":
		model, dims := chromem.EmbeddingModelOpenAI3Small, openAI3SmallDimensions
		if cfg.EmbeddingModel != "" {
			model, dims = chromem.EmbeddingModelOpenAI(cfg.EmbeddingModel), 0
		}
		return chromem.NewEmbeddingFuncOpenAI(cfg.OpenAIAPIKey, model), dims, nil
	case "ollama":
		model := cfg.EmbeddingModel
		if model == "" {
			model = "nomic-embed-text"
		}
		return chromem.NewEmbeddingFuncOllama(model, strings.TrimRight(cfg.OllamaHost, "/")+"/api"), 0, nil
	default:
		return nil, 0, fmt.Errorf("unknown embedder: %q", cfg.Embedder)
	}
}
