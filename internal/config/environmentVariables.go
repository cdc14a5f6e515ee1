package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//auth
	NoAuthBypass = true
	AuthToken    = ""

	//chunking
	ChunkSize    = 1000
	ChunkOverlap = 200

	//retrieval
	DefaultTopK           = 3
	CacheSimilarityCutoff = 0.97

	EmbeddingOutputDimensionality int32 = 1536
	RecipeCollectionName                = "recipe-book"

	//agent loop bounds
	AgentMaxIterations  = 8
	AgentMaxParseRetry  = 2
	AgentStopSequence   = "\nObservation"
	HistoryWindowLength = 5

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//per job / per model-call timeouts
	JobTimeout       = 60 * time.Second
	ModelCallTimeout = 30 * time.Second

	//vectorDB
	QdrantConnectionTimeout = 30 * time.Second
	QdrantHost              = ""
	QdrantPort              = 6333 //http
	QdrantGrpcPort          = 6334
	QdrantUseTLS            = false
	QdrantPoolSize          = 1

	//llm - Groq serves an OpenAI compatible endpoint
	GroqBaseURL   = "https://api.groq.com/openai/v1"
	GroqModelName = "llama-3.3-70b-versatile"

	GeminiModelName      = "gemini-2.5-flash-lite-preview-09-2025"
	GoogleEmbeddingModel = "gemini-embedding-001"

	//low creativity for grounded answers, zero for the agent loop
	ChatTemperature  float32 = 0.2
	AgentTemperature float32 = 0

	//document library for batch ingestion
	DocumentsDir = "./documents"

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//web search
	SearchEndpoint = "https://lite.duckduckgo.com/lite/"
	SearchTimeout  = 15 * time.Second

	//redis
	redisHost = "127.0.0.1"
	redisPort = "6379"
	RedisAddr = redisHost + ":" + redisPort

	RedisPassword = ""

	//redis has 16 DB we can use
	RedisJobStore     = 0
	RedisMessageStore = 1

	//redis timeouts
	RedisJobStoreTTL     = 24 * time.Hour
	RedisMessageStoreTTL = 24 * time.Hour
)

var (
	GroqAPIKey            = os.Getenv("GROQ_API_KEY")
	GoogleEmbeddingAPIKey = os.Getenv("GOOGLE_API_KEY")
)

// RetrievalTopK is deployment tunable - larger k trades precision for recall
// and raises token cost downstream.
func RetrievalTopK() uint64 {
	if v, err := strconv.Atoi(os.Getenv("RETRIEVAL_TOP_K")); err == nil && v > 0 {
		return uint64(v)
	}
	return DefaultTopK
}

// Prompts. The assistant persona is a chef/nutritionist answering in
// Brazilian Portuguese, constrained by the user's dietary restrictions.
const (
	PersonaInstruction = "Você é o iChef, um Chef Profissional e Nutricionista. " +
		"Responda sempre em Português do Brasil, de forma acolhedora. " +
		"Receitas devem ter lista de ingredientes e passo-a-passo."

	RestrictionInstruction = "PERFIL DO USUÁRIO (RESPEITE RIGOROSAMENTE) - Restrições/Preferências: %s. " +
		"Se o usuário tiver restrição (ex: Vegano), NUNCA sugira ingredientes excluídos; sugira substitutos."

	GroundingInstruction = "Use APENAS o contexto fornecido para responder. " +
		"Se a resposta não estiver no contexto, diga educadamente que não sabe. Não invente informações."

	ReformulateInstruction = "Dada a conversa abaixo e uma nova pergunta, reescreva a pergunta para que " +
		"ela seja completamente independente do histórico (resolva pronomes e referências). " +
		"Se a pergunta já for independente, devolva-a sem alterações. " +
		"Responda somente com a pergunta reescrita, nada mais."
)
