// @title           iChef API
// @version         1.0
// @description     Document-grounded culinary assistant: async chat, agent and ingestion jobs.
// @termsOfService  http://swagger.io/terms/

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/ichef/ChefAPI/internal/config"
	"github.com/ichef/ChefAPI/internal/data/store"
	jobmodel "github.com/ichef/ChefAPI/internal/domain/jobModel"
	"github.com/ichef/ChefAPI/internal/handlers"
	"github.com/ichef/ChefAPI/internal/job"
	"github.com/ichef/ChefAPI/internal/mcpserver"
	"github.com/ichef/ChefAPI/internal/rag"
	"github.com/ichef/ChefAPI/internal/rag/embedding/googleEmbedding"
	"github.com/ichef/ChefAPI/internal/rag/llm"
	"github.com/ichef/ChefAPI/internal/rag/llm/gemini"
	"github.com/ichef/ChefAPI/internal/rag/llm/groq"
	"github.com/ichef/ChefAPI/internal/rag/vectorDB/qdrantDB"
	"github.com/ichef/ChefAPI/internal/server"
	"github.com/ichef/ChefAPI/internal/worker"
	"github.com/ichef/ChefAPI/pkg/logger_i"
)

var (
	listenAddr        string
	mcpListenAddr     string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.StringVar(&mcpListenAddr, "mcp-addr", "", "MCP server listen address (empty disables it)")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and job store
	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          store.GetRedisJobStore(serviceContext),
		MessageStore:      store.GetRedisMessageStore(serviceContext),
	}
	logger.Info("Starting job service")

	if serviceConfig.JobStore == nil || serviceConfig.MessageStore == nil {
		logger.Error("Redis stores are offline")
		serviceConfig.JobStore = store.InitInMemoryJobStore()
		serviceConfig.MessageStore = store.InitMessageStore()
	}
	service := job.InitJobService(serviceConfig)

	vectorDB := qdrantDB.GetQuadrantClient(serviceContext)
	embeddingService := googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, config.GoogleEmbeddingAPIKey)

	//Groq is the primary provider, Gemini covers deployments without a Groq key
	var llmProvider llm.Provider = groq.GetGroqClient(serviceContext, config.GroqAPIKey, config.GroqModelName)
	if llmProvider == nil {
		logger.Warn("Groq unavailable, falling back to Gemini")
		llmProvider = gemini.GetGeminiClient(serviceContext, config.GoogleEmbeddingAPIKey, config.GeminiModelName)
	}

	if vectorDB == nil || embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "VectorDB", vectorDB != nil, "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	ragService := rag.NewService(vectorDB, llmProvider, embeddingService)

	handlers.InitJobHandler(service)

	if mcpListenAddr != "" {
		mcpServer := mcpserver.NewServer(ragService)
		go func() {
			if err := mcpServer.RunHTTP(serviceContext, mcpListenAddr); err != nil {
				logger.Error("MCP server stopped", "error", err)
			}
		}()
	}

	//init worker pool
	worker.InitServices(service, ragService)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
