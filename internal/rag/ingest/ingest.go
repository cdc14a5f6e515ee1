package ingest

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/ichef/ChefAPI/internal/adapter/utils"
	"github.com/ichef/ChefAPI/internal/config"
	"github.com/ichef/ChefAPI/internal/domain/commonModels"
	"github.com/ichef/ChefAPI/internal/domain/jobModel"
	"github.com/ichef/ChefAPI/internal/rag/embedding"
	"github.com/ichef/ChefAPI/internal/rag/vectorDB"
	"github.com/ichef/ChefAPI/pkg/logger_i"
)

// ErrNoDocuments means the document source yielded nothing to ingest.
// Reported on the job; never fatal to the process.
var ErrNoDocuments = errors.New("no documents found in source directory")

type rawPage struct {
	Number  int    `json:"number"`
	Content string `json:"content"`
}

var (
	logger     *logger_i.Logger
	loggerOnce sync.Once
)

func getLogger() *logger_i.Logger {
	loggerOnce.Do(func() {
		logger = logger_i.NewLogger("Document Ingestion")
	})
	return logger
}

// ProcessDocumentIngestion ingests one uploaded file end to end and reports
// the number of chunks indexed on the job payload.
func ProcessDocumentIngestion(ctx context.Context, job jobModel.Job, e embedding.Embedder, vectorDatabase vectorDB.DataProcessor) jobModel.Job {
	log := getLogger().With("traceId", ctx.Value(config.TRACE_ID_KEY))

	docName := job.JobPayload.IngestFileName
	docPath := job.JobPayload.IngestURL

	log.Debug("Processing document", "filename", docName, "path", docPath)

	job.CurrentStep = jobModel.IngestProcessing
	err := vectorDatabase.CreateCollection(ctx, config.RecipeCollectionName)
	if err != nil {
		log.Error("Error creating collection", "error", err)
		job.Status = jobModel.JobStatusError
		return job
	}

	count, err := ingestFile(ctx, docName, docPath, e, vectorDatabase)
	if err != nil {
		log.Error("Error processing document", "error", err)
		job.Status = jobModel.JobStatusError
		job.Error.Message = "Error ingesting document content"
		return job
	}

	if err := os.Remove(docPath); err != nil {
		log.Error("Error removing temp file", "error", err)
	}

	job.JobPayload.ChunksIndexed = count
	job.Status = jobModel.JobStatusComplete
	return job
}

// ingestFile runs extract -> chunk -> embed -> upsert for one file and
// returns the chunk count. Fails fast: the first failing step aborts.
func ingestFile(ctx context.Context, docName string, docPath string, e embedding.Embedder, vectorDatabase vectorDB.DataProcessor) (int, error) {
	log := getLogger().With("traceId", ctx.Value(config.TRACE_ID_KEY), "filename", docName)

	docType := getDocType(docPath)
	if docType == commonModels.ERR {
		return 0, errors.New("unsupported document type: " + docPath)
	}

	doc := commonModels.Document{
		//deterministic document id keeps re-ingestion idempotent
		Id:                  utils.GetDeterministicUUID("doc/" + docName),
		Name:                docName,
		LastIngestTimestamp: time.Now(),
		ContentType:         docType,
	}

	rawPages, err := extractText(docPath, doc.ContentType)
	if err != nil {
		return 0, err
	}
	log.Debug("Extracted document", "pages", len(rawPages))

	chunks := PrepareChunks(rawPages, doc, config.GoogleEmbeddingModel)
	log.Debug("Prepared chunks", "count", len(chunks))

	if len(chunks) == 0 {
		return 0, errors.New("document produced no chunks")
	}

	if err := BatchIngest(ctx, chunks, vectorDatabase, e); err != nil {
		return 0, err
	}
	return len(chunks), nil
}
