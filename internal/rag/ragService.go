package rag

import (
	"context"
	"errors"
	"time"

	"github.com/ichef/ChefAPI/internal/adapter/utils"
	"github.com/ichef/ChefAPI/internal/config"
	"github.com/ichef/ChefAPI/internal/domain/commonModels"
	"github.com/ichef/ChefAPI/internal/domain/jobModel"
	"github.com/ichef/ChefAPI/internal/metrics"
	"github.com/ichef/ChefAPI/internal/rag/agent"
	"github.com/ichef/ChefAPI/internal/rag/agent/tools"
	"github.com/ichef/ChefAPI/internal/rag/embedding"
	"github.com/ichef/ChefAPI/internal/rag/ingest"
	"github.com/ichef/ChefAPI/internal/rag/llm"
	"github.com/ichef/ChefAPI/internal/rag/vectorDB"
	"github.com/ichef/ChefAPI/pkg/logger_i"
)

/*
ARCHITECTURE NOTE: OPAQUE INTERFACE PATTERN
---------------------------------------------------------

1. Service (Interface):
  - Real work happens down low bruh
  - This is the PUBLIC contract.
  - It defines the "behavior" (what the worker can do).
  - We expose this to keep the worker decoupled from our specific logic.

2. service (Private Struct):
  - down low stuff
  - This is the PRIVATE implementation.
  - It holds the "state" (database connections and LLM clients).
  - It is lowercase to prevent external packages from accessing our
    internal dependencies (vectorDB, llmProvider) directly.

3. Pointer Receiver (*service):
  - By defining methods on (*service), the struct IMPLICITLY satisfies
    the Service interface.
  - if it quacks like a duck, -it's a duck (Duck Typing)

4. Dependency Injection (NewService):
  - This constructor links the private struct to the public interface.
  - It allows us to swap real DBs for mocks during testing without
    changing the worker's code.
*/

// Service Worker will only call this service - it doesn't need to know the llm or the vector
type Service interface {
	ProcessRequest(ctx context.Context, job jobModel.Job, messageHistory []string) jobModel.Job
	ProcessAgentRequest(ctx context.Context, job jobModel.Job, messageHistory []string) jobModel.Job
	IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job
	IngestLibrary(ctx context.Context, job jobModel.Job) jobModel.Job

	// Retrieve serves callers outside the job pipeline (the MCP surface).
	Retrieve(ctx context.Context, query string) ([]commonModels.Passage, error)
}

type service struct {
	vectorDB    vectorDB.DataProcessor
	llmProvider llm.Provider
	embedder    embedding.Embedder
	retriever   *Retriever
	agentLoop   *agent.Loop
	logger      *logger_i.Logger
}

// NewService constructor
func NewService(vector vectorDB.DataProcessor, provider llm.Provider, em embedding.Embedder) Service {
	retriever := NewRetriever(em, vector)
	toolbox := tools.NewToolbox(retriever, tools.NewDuckDuckGoSearch())
	return &service{
		vectorDB:    vector,
		llmProvider: provider,
		embedder:    em,
		retriever:   retriever,
		agentLoop:   agent.NewLoop(provider, toolbox),
		logger:      logger_i.NewLogger("RAG Service :"),
	}
}

// ProcessRequest is the grounded chat pipeline: reformulate when history
// exists, embed, check the semantic cache, search the index, synthesize.
func (s *service) ProcessRequest(ctx context.Context, jobt jobModel.Job, messageHistory []string) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY).(string), "JobId", jobt.Id)

	processContext, cancel := context.WithTimeout(ctx, config.JobTimeout)
	defer cancel()

	jobt.CurrentStep = jobModel.RAGCall

	// Reformulation - only follow-ups need it
	searchQuery, err := s.executeReformulateStep(processContext, inMethodLogger, &jobt, messageHistory)
	if err != nil {
		return s.jobError(jobt, err, "REFORMULATION_FAILURE", true)
	}

	// Embedding
	embeddingStep, err := s.executeEmbeddingStep(processContext, inMethodLogger, &jobt, searchQuery)
	if err != nil {
		return s.jobError(jobt, err, "EMBEDDING_FAILURE", true)
	}

	// Cache Check
	cachedAnswer, found := s.executeCacheCheckStep(ctx, inMethodLogger, &jobt, embeddingStep)
	if found {
		return returnOutput(jobt, cachedAnswer)
	}

	// Vector DB Search
	passages, err := s.executeVectorSearchStep(processContext, inMethodLogger, &jobt, embeddingStep)
	if err != nil {
		if errors.Is(err, vectorDB.ErrIndexUnavailable) {
			return s.jobError(jobt, err, "INDEX_UNAVAILABLE", false)
		}
		return s.jobError(jobt, err, "VECTOR_DB_FAILURE", true)
	}

	// LLM Generation - answers from the original question, searches from the
	// reformulated one
	answer, err := s.executeLLMStep(processContext, inMethodLogger, &jobt, passages, messageHistory)
	if err != nil {
		return s.jobError(jobt, err, "LLM_GENERATION_FAILURE", true)
	}

	//Background Cache Save - detached from the job context, which the worker
	//cancels as soon as the job returns
	go func() {
		saveCtx, saveCancel := context.WithTimeout(context.WithoutCancel(ctx), config.ModelCallTimeout)
		defer saveCancel()
		if err := s.vectorDB.SaveToCache(saveCtx, utils.GetNewUUID(), embeddingStep, answer); err != nil {
			s.logger.Error("Failed to save to cache")
		}
	}()

	return returnOutput(jobt, answer)
}

// ProcessAgentRequest runs the tool-using loop instead of the fixed pipeline.
// No semantic cache here - tool results are time and state dependent.
func (s *service) ProcessAgentRequest(ctx context.Context, jobt jobModel.Job, messageHistory []string) jobModel.Job {
	inMethodLogger := s.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY).(string), "JobId", jobt.Id)

	processContext, cancel := context.WithTimeout(ctx, config.JobTimeout)
	defer cancel()

	jobt = logOutput(jobt, jobModel.AgentLoopCall, inMethodLogger)

	start := time.Now()
	outcome, err := s.agentLoop.Run(processContext, jobt.JobPayload.Question, messageHistory, jobt.JobPayload.Restrictions)
	metrics.CaptureExecutionMetrics("agent_loop", time.Since(start))

	jobt.JobPayload.Steps = outcome.Steps
	if err != nil {
		return s.jobError(jobt, err, "AGENT_LOOP_FAILURE", true)
	}

	return returnOutput(jobt, outcome.Answer)
}

func (s *service) IngestDocument(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("Document_ingestion", time.Since(start)) }()
	j := ingest.ProcessDocumentIngestion(ctx, job, s.embedder, s.vectorDB)
	if j.Status != jobModel.JobStatusError {
		return j
	}
	return s.jobError(j, errors.New("ingest document failed"), "INGESTION_FAILURE", true)
}

func (s *service) IngestLibrary(ctx context.Context, job jobModel.Job) jobModel.Job {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("Library_ingestion", time.Since(start)) }()
	j := ingest.ProcessLibraryIngestion(ctx, job, s.embedder, s.vectorDB)
	if j.Status != jobModel.JobStatusError {
		return j
	}
	if j.Error.Message == ingest.ErrNoDocuments.Error() {
		return s.jobError(j, ingest.ErrNoDocuments, "NO_DOCUMENTS", false)
	}
	return s.jobError(j, errors.New("ingest library failed"), "INGESTION_FAILURE", true)
}

func (s *service) Retrieve(ctx context.Context, query string) ([]commonModels.Passage, error) {
	return s.retriever.Retrieve(ctx, query)
}
