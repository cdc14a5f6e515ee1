package vectorDB

import (
	"context"
	"errors"

	"github.com/ichef/ChefAPI/internal/domain/commonModels"
)

// ErrIndexUnavailable is returned when retrieval runs before any ingestion:
// the collection is missing or empty. This is a precondition failure for
// every downstream feature and must reach the user, never be swallowed.
var ErrIndexUnavailable = errors.New("vector index unavailable - run ingestion first")

type DataProcessor interface {
	// Search returns up to topK passages ordered by descending similarity.
	// An empty result is a successful search; ErrIndexUnavailable means the
	// index was never built.
	Search(ctx context.Context, vectorVal []float32, topK uint64) ([]commonModels.Passage, error)

	GetCachedAnswer(ctx context.Context, queryVector []float32) (string, bool, error)
	SaveToCache(ctx context.Context, id string, vector []float32, answer string) error

	// CreateCollection Ingest document call
	CreateCollection(ctx context.Context, collectionName string) error
	UpsertBatch(ctx context.Context, collectionName string, chunks []commonModels.DocChunk, vectors [][]float32) error
}
