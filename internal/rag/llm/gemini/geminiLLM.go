package gemini

import (
	"context"
	"errors"
	"sync"

	"github.com/ichef/ChefAPI/internal/config"
	"github.com/ichef/ChefAPI/internal/domain/commonModels"
	"github.com/ichef/ChefAPI/internal/rag/llm"
	"github.com/ichef/ChefAPI/pkg/logger_i"
	"google.golang.org/genai"
)

type llmClient struct {
	client    *genai.Client
	modelName string
}

var logger *logger_i.Logger
var geminiClient *llmClient
var once sync.Once

// GetGeminiClient is the alternate provider, used when no Groq key is set.
func GetGeminiClient(ctx context.Context, apikey string, modelName string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_gemini")
		newGeminiClient(ctx, apikey, modelName)
	})

	if geminiClient == nil {
		return nil
	}
	return &llmClient{client: geminiClient.client, modelName: geminiClient.modelName}
}

func newGeminiClient(ctx context.Context, apikey string, modelName string) {

	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apikey})
	if err != nil {
		logger.Error("Error creating Gemini client:", "error", err)
	}
	if c != nil {
		geminiClient = &llmClient{client: c, modelName: modelName}
		logger.Info("Gemini client created", "model", modelName)
		go closeClient(ctx, geminiClient)
	}
}

func (c *llmClient) Generate(ctx context.Context, userQuery string, passages []commonModels.Passage, messageHistory []string, restrictions string) (string, error) {
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	log.Debug("grounded generation", "passages", len(passages))

	return c.doCall(ctx,
		llm.BuildSystemInstruction(restrictions),
		llm.BuildGroundedPrompt(userQuery, passages, messageHistory),
		nil, config.ChatTemperature)
}

func (c *llmClient) Reformulate(ctx context.Context, messageHistory []string, question string) (string, error) {
	return c.doCall(ctx, "", llm.BuildReformulatePrompt(messageHistory, question), nil, 0)
}

func (c *llmClient) Complete(ctx context.Context, prompt string, stop []string, temperature float32) (string, error) {
	return c.doCall(ctx, "", prompt, stop, temperature)
}

func (c *llmClient) doCall(ctx context.Context, system string, user string, stop []string, temperature float32) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.ModelCallTimeout)
	defer cancel()

	temp := temperature
	contentConfig := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	if system != "" {
		contentConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: system}},
		}
	}
	if len(stop) > 0 {
		contentConfig.StopSequences = stop
	}

	result, err := c.client.Models.GenerateContent(
		callCtx,
		c.modelName,
		genai.Text(user),
		contentConfig,
	)
	if err != nil {
		logger.Error("Gemini generation failed", "error", err)
		return "", err
	}
	if result == nil {
		return "", errors.New("gemini returned no result")
	}
	return result.Text(), nil
}

func closeClient(ctx context.Context, llmC *llmClient) {
	<-ctx.Done()
	logger.Info("Closing Gemini client")
	llmC.client = nil
	llmC.modelName = ""
}
