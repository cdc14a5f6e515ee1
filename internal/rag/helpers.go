package rag

import (
	"context"
	"net/http"
	"time"

	"github.com/ichef/ChefAPI/internal/config"
	"github.com/ichef/ChefAPI/internal/domain/commonModels"
	"github.com/ichef/ChefAPI/internal/domain/jobModel"
	"github.com/ichef/ChefAPI/internal/metrics"
	"github.com/ichef/ChefAPI/pkg/logger_i"
)

func returnOutput(job jobModel.Job, ans string) jobModel.Job {
	job.JobPayload.Answer = ans
	job.CurrentStep = jobModel.Complete
	return job
}

func logOutput(job jobModel.Job, status jobModel.InternalStatus, log *logger_i.Logger) jobModel.Job {
	job.CurrentStep = status
	log.Debug("ProcessRequest", "Current Status", job.CurrentStep)
	return job
}

// jobError finalizes a failed job. Precondition failures keep their real
// message so the caller can act on them; everything else stays generic.
func (s *service) jobError(job jobModel.Job, err error, code string, canRetry bool) jobModel.Job {
	s.logger.Error(code, "error", err)

	message := "Internal Server Error"
	httpCode := http.StatusInternalServerError
	switch code {
	case "INDEX_UNAVAILABLE", "NO_DOCUMENTS":
		message = err.Error()
		httpCode = http.StatusConflict
	}

	job.Error = jobModel.JobError{
		Code:    httpCode,
		Message: message,
		Retry:   canRetry,
	}
	job.Status = jobModel.JobStatusError
	return job
}

// executeReformulateStep rewrites a follow-up question into a standalone
// search query. First turns skip the model call entirely; the rewritten
// query drives retrieval only, the original stays on the payload.
func (s *service) executeReformulateStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, history []string) (string, error) {
	if len(history) == 0 {
		return job.JobPayload.Question, nil
	}
	*job = logOutput(*job, jobModel.ReformulateCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("reformulation", time.Since(start)) }()

	rewritten, err := s.llmProvider.Reformulate(ctx, history, job.JobPayload.Question)
	if err != nil {
		return "", err
	}
	if rewritten == "" {
		return job.JobPayload.Question, nil
	}
	return rewritten, nil
}

func (s *service) executeEmbeddingStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, query string) ([]float32, error) {
	*job = logOutput(*job, jobModel.EmbeddingAPICall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("embedding", time.Since(start)) }()

	return s.embedder.GetEmbedding(ctx, query)
}

func (s *service) executeCacheCheckStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, emb []float32) (string, bool) {
	*job = logOutput(*job, jobModel.CacheCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("cache_lookup", time.Since(start)) }()

	ans, found, _ := s.vectorDB.GetCachedAnswer(ctx, emb)
	return ans, found
}

func (s *service) executeVectorSearchStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, emb []float32) ([]commonModels.Passage, error) {
	*job = logOutput(*job, jobModel.VectorDBCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("vector_search", time.Since(start)) }()

	passages, err := s.vectorDB.Search(ctx, emb, config.RetrievalTopK())
	job.JobPayload.Sources = passages
	return passages, err
}

func (s *service) executeLLMStep(ctx context.Context, log *logger_i.Logger, job *jobModel.Job, passages []commonModels.Passage, history []string) (string, error) {
	*job = logOutput(*job, jobModel.LLMCall, log)

	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("llm_generation", time.Since(start)) }()

	return s.llmProvider.Generate(ctx, job.JobPayload.Question, passages, history, job.JobPayload.Restrictions)
}
