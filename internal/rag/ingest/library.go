package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ichef/ChefAPI/internal/config"
	"github.com/ichef/ChefAPI/internal/domain/jobModel"
	"github.com/ichef/ChefAPI/internal/rag/embedding"
	"github.com/ichef/ChefAPI/internal/rag/vectorDB"
)

// ProcessLibraryIngestion ingests every PDF in the documents directory.
// An empty directory is reported as ErrNoDocuments on the job, the process
// keeps serving. A failing document aborts the run - no partial silent
// success.
func ProcessLibraryIngestion(ctx context.Context, job jobModel.Job, e embedding.Embedder, vectorDatabase vectorDB.DataProcessor) jobModel.Job {
	log := getLogger().With("traceId", ctx.Value(config.TRACE_ID_KEY))

	dir := job.JobPayload.IngestURL
	if dir == "" {
		dir = config.DocumentsDir
	}

	job.CurrentStep = jobModel.IngestProcessing
	if err := vectorDatabase.CreateCollection(ctx, config.RecipeCollectionName); err != nil {
		log.Error("Error creating collection", "error", err)
		job.Status = jobModel.JobStatusError
		return job
	}

	paths, err := listPDFs(dir)
	if err != nil {
		log.Error("Error reading documents directory", "dir", dir, "error", err)
		job.Status = jobModel.JobStatusError
		job.Error.Message = "Could not read documents directory"
		return job
	}
	if len(paths) == 0 {
		log.Warn("Documents directory is empty", "dir", dir)
		job.Status = jobModel.JobStatusError
		job.Error.Message = ErrNoDocuments.Error()
		return job
	}

	total := 0
	for _, path := range paths {
		count, err := ingestFile(ctx, filepath.Base(path), path, e, vectorDatabase)
		if err != nil {
			log.Error("Error ingesting library document", "path", path, "error", err)
			job.Status = jobModel.JobStatusError
			job.Error.Message = "Error ingesting " + filepath.Base(path)
			return job
		}
		total += count
	}

	log.Info("Library ingestion complete", "documents", len(paths), "chunks", total)
	job.JobPayload.ChunksIndexed = total
	job.Status = jobModel.JobStatusComplete
	return job
}

func listPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	return paths, nil
}
