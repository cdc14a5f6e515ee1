package rag

import (
	"context"
	"time"

	"github.com/ichef/ChefAPI/internal/config"
	"github.com/ichef/ChefAPI/internal/domain/commonModels"
	"github.com/ichef/ChefAPI/internal/metrics"
	"github.com/ichef/ChefAPI/internal/rag/embedding"
	"github.com/ichef/ChefAPI/internal/rag/vectorDB"
)

// Retriever is embed-then-search as one unit. The chat pipeline, the agent's
// recipe tool and the MCP surface all go through here so they see identical
// results for identical queries.
type Retriever struct {
	embedder embedding.Embedder
	vectorDB vectorDB.DataProcessor
}

func NewRetriever(em embedding.Embedder, vector vectorDB.DataProcessor) *Retriever {
	return &Retriever{embedder: em, vectorDB: vector}
}

// Retrieve embeds query and returns the top matches ordered by descending
// similarity. Propagates vectorDB.ErrIndexUnavailable untouched.
func (r *Retriever) Retrieve(ctx context.Context, query string) ([]commonModels.Passage, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("retrieval", time.Since(start)) }()

	vector, err := r.embedder.GetEmbedding(ctx, query)
	if err != nil {
		return nil, err
	}
	return r.vectorDB.Search(ctx, vector, config.RetrievalTopK())
}
