package api

import "time"

type JobExternalStatus string

const (
	JobStatusError JobExternalStatus = "Error"
)

type JobResponse struct {
	Id        string            `json:"id" example:"job_cz109"`
	ChatId    string            `json:"chat_id" example:"chat_550"`
	Result    Result            `json:"result"`
	Error     *JobOutgoingError `json:"error,omitempty"`
	StartTime time.Time         `json:"start_time"`
	EndTime   time.Time         `json:"end_time,omitempty"`
}

type JobOutgoingError struct {
	Code    int    `json:"code" example:"400"`
	Message string `json:"message" example:"Job not found"`
	Retry   bool   `json:"can_retry" example:"false"`
}

type Source struct {
	DocName string  `json:"doc_name"`
	Page    int     `json:"page"`
	Score   float32 `json:"score"`
	Excerpt string  `json:"excerpt,omitempty"`
}

// AgentTraceStep mirrors one thought/action/observation triple for the
// expandable trace display.
type AgentTraceStep struct {
	Tool        string `json:"tool"`
	Input       string `json:"input"`
	Observation string `json:"observation"`
}

type RAGResponse struct {
	Question string           `json:"question"`
	Answer   string           `json:"answer"`
	Sources  []Source         `json:"sources,omitempty"`
	Steps    []AgentTraceStep `json:"steps,omitempty"`
}

type Result struct {
	Status              string       `json:"status"`
	RAGExternalResponse *RAGResponse `json:"rag_response,omitempty"`
	ChunksIndexed       int          `json:"chunks_indexed,omitempty"`
}

type InitJobResponse struct {
	Id        string `json:"id"`
	StatusURL string `json:"status_url"`
}

type HistoryResponse struct {
	ChatId string        `json:"chat_id"`
	Turns  []HistoryTurn `json:"turns"`
}

type HistoryTurn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// requests---------------------

type ChatRequest struct {
	Message string `json:"message" validate:"required"`
	ChatID  string `json:"chatID,omitempty"`

	// Mode selects the answering strategy: "chat" (default, grounded RAG
	// answer) or "agent" (tool-using reasoning loop).
	Mode string `json:"mode,omitempty"`

	// Restrictions are dietary restrictions/preferences injected into the
	// assistant persona, e.g. ["Vegano", "Sem Lactose"].
	Restrictions []string `json:"restrictions,omitempty"`
}

const (
	ModeChat  = "chat"
	ModeAgent = "agent"
)

type JobStatusRequest struct {
	JobId string `json:"job_id" validate:"required"`
}

type IngestDocumentRequest struct {
	DocumentName string `json:"document_name" validate:"required"`
}
