package commonModels

import "time"

type Document struct {
	Id                  string    `json:"source_doc_id"`
	Name                string    `json:"doc_name"`
	LastIngestTimestamp time.Time `json:"ingested_at"`
	ContentType         DocType   `json:"contentType"`
}

type DocChunk struct {
	Doc            Document
	ChunkId        string `json:"chunk_id"`
	Chunk          string `json:"content"`
	PageNum        int    `json:"page_num"`
	ChunkPageOrder int    `json:"chunk_order"`
	EmbeddingModel string `json:"embeddingModel"`
}

// Passage is one retrieval hit: the chunk text plus the citation metadata
// the answer is displayed with. Score is cosine similarity.
type Passage struct {
	Content string  `json:"content"`
	DocId   string  `json:"source_doc_id"`
	DocName string  `json:"doc_name"`
	PageNum int     `json:"page_num"`
	Score   float32 `json:"score"`
}

type DocType string

var PDF DocType = "PDF"
var DOCX DocType = "DOCX"
var TXT DocType = "TXT"
var ERR DocType = "ERROR"

// ToolKind is the closed set of tools the agent can invoke.
// Every switch over it must be exhaustive.
type ToolKind string

const (
	ToolRetrieval  ToolKind = "search_recipes"
	ToolWebSearch  ToolKind = "search_web"
	ToolCalculator ToolKind = "calculator"
)

// AgentStep is one thought/action/observation triple of an agent episode.
// The ordered sequence doubles as the scratchpad and the user-visible trace.
type AgentStep struct {
	Thought     string   `json:"thought,omitempty"`
	Tool        ToolKind `json:"tool"`
	Input       string   `json:"input"`
	Observation string   `json:"observation"`
}
