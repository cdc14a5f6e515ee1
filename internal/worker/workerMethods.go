package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/ichef/ChefAPI/internal/config"
	jobmodel "github.com/ichef/ChefAPI/internal/domain/jobModel"
	"github.com/ichef/ChefAPI/internal/metrics"
	"github.com/ichef/ChefAPI/pkg/logger_i"
)

func executeJob(job jobmodel.Job) {
	start := time.Now()
	defer func() {
		// Record total time at the end
		metrics.CaptureJobMetrics(string(job.Status), time.Since(start))
	}()
	ctxTrace := context.WithValue(context.Background(), config.TRACE_ID_KEY, job.TraceId)
	ctx, cancel := context.WithTimeout(ctxTrace, config.JobTimeout)
	defer cancel()
	logger.With("trace Id ", job.TraceId)
	logger.Debug("Processing job:", "job Id:", job.Id)

	saveJobState(ctx, job, jobmodel.JobStatusRunning)

	switch job.JobType {
	case jobmodel.JobTypeIngest:
		job.CurrentStep = jobmodel.IngestProcessing
		job = _ragService.IngestDocument(ctx, job)

	case jobmodel.JobTypeLibrary:
		job.CurrentStep = jobmodel.IngestProcessing
		job = _ragService.IngestLibrary(ctx, job)

	case jobmodel.JobTypeAgent:
		job = processConversation(job, ctx, logger, _ragService.ProcessAgentRequest)

	default:
		job = processConversation(job, ctx, logger, _ragService.ProcessRequest)
	}

	job.EndTime = time.Now()
	if job.Status != jobmodel.JobStatusError {
		job.Status = jobmodel.JobStatusComplete
	}
	saveJobState(ctx, job, job.Status)
}

func removeWorker(reason string) {

	workerWaitGroup.Done()
	atomic.AddInt64(&currentWorkerCount, -1)
	logger.Info("Removed worker ", "reason", reason, "workerCount", currentWorkerCount)
	metrics.DecrementActiveWorkerCount()

}

// processConversation runs either the chat pipeline or the agent loop, then
// appends the finished turn to the session on success.
func processConversation(job jobmodel.Job, ctx context.Context, logger *logger_i.Logger,
	process func(context.Context, jobmodel.Job, []string) jobmodel.Job) jobmodel.Job {

	job.CurrentStep = jobmodel.RedisCall
	messageHistory, err := _jobService.MessageStore.GetMessageHistory(ctx, job.ChatId)
	if err != nil {
		logger.Error("Failed to get message history", "err", err)
	}

	job = process(ctx, job, messageHistory)

	if job.Status != jobmodel.JobStatusError {
		if err := _jobService.MessageStore.TrySaveChat(ctx, job.ChatId, job.JobPayload); err != nil {
			logger.Error("Failed to save chat history", "err", err)
		}
	}
	return job
}

func saveJobState(ctx context.Context, job jobmodel.Job, jobStatus jobmodel.JobStatus) {
	job.Status = jobStatus
	if err := _jobService.JobStore.SaveJob(ctx, job); err != nil {
		logger.Error("Failed to update status in Redis", "err", err)
	}
}
