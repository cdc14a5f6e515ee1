package jobModel

import (
	"context"
	"time"

	"github.com/ichef/ChefAPI/internal/domain/commonModels"
)

type JobStatus string
type InternalStatus string

type JobType string

const (
	JobStatusQueued   JobStatus = "QUEUED"
	JobStatusRunning  JobStatus = "RUNNING"
	JobStatusComplete JobStatus = "COMPLETE"
	JobStatusError    JobStatus = "Error"

	UserQueryInit    InternalStatus = "Init"
	ReformulateCall  InternalStatus = "Reformulate"
	CacheCall        InternalStatus = "CacheCall"
	RAGCall          InternalStatus = "RAG"
	LLMCall          InternalStatus = "LLM"
	VectorDBCall     InternalStatus = "VectorDB"
	EmbeddingAPICall InternalStatus = "EmbeddingAPI"
	AgentLoopCall    InternalStatus = "AgentLoop"
	RedisCall        InternalStatus = "Redis"

	IngestInit       InternalStatus = "IngestInit"
	IngestProcessing InternalStatus = "IngestProcessing"
	Error            InternalStatus = "Error"

	Complete InternalStatus = "Complete"

	JobTypeQuery   JobType = "Query"
	JobTypeAgent   JobType = "Agent"
	JobTypeIngest  JobType = "Ingest"
	JobTypeLibrary JobType = "IngestLibrary"
)

type Job struct {
	Id          string         `json:"id"`
	ChatId      string         `json:"chat_id"`
	TraceId     string         `json:"trace_id"`
	JobType     JobType        `json:"job_type"`
	JobPayload  JobPayload     `json:"job_payload"`
	Error       JobError       `json:"error,omitempty"`
	CreatedTime time.Time      `json:"created_time"`
	EndTime     time.Time      `json:"end_time,omitempty"`
	Status      JobStatus      `json:"status"`
	CurrentStep InternalStatus `json:"current_step"`
}

type JobError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Retry   bool   `json:"retry"`
}

type JobPayload struct {
	Question     string                   `json:"question,omitempty"`
	Answer       string                   `json:"answer,omitempty"`
	Restrictions string                   `json:"restrictions,omitempty"`
	Sources      []commonModels.Passage   `json:"sources,omitempty"`
	Steps        []commonModels.AgentStep `json:"steps,omitempty"`

	IngestFileName string `json:"ingest_file_name,omitempty"`
	IngestURL      string `json:"ingest_url,omitempty"`
	ChunksIndexed  int    `json:"chunks_indexed,omitempty"`
}

type JobStore interface {
	GetJob(ctx context.Context, jobId string) (Job, bool)
	SaveJob(ctx context.Context, job Job) error
	DeleteJob(ctx context.Context, jobID string)
}

// MessageStore is the per-session conversation memory. Sessions are owned by
// their chat id; create and clear are explicit operations, nothing ambient.
type MessageStore interface {
	ValidateChatId(ctx context.Context, id string) bool
	InitNewChat(ctx context.Context, id string) error
	ClearChat(ctx context.Context, id string) error
	TrySaveChat(ctx context.Context, id string, payload JobPayload) error

	// GetMessageHistory returns the last turns as role-prefixed lines,
	// oldest first.
	GetMessageHistory(ctx context.Context, chatId string) ([]string, error)

	// GetTranscript returns every turn of the session, oldest first.
	GetTranscript(ctx context.Context, chatId string) ([]string, error)
}
