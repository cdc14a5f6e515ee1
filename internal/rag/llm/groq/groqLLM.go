package groq

import (
	"context"
	"errors"
	"sync"

	"github.com/ichef/ChefAPI/internal/config"
	"github.com/ichef/ChefAPI/internal/domain/commonModels"
	"github.com/ichef/ChefAPI/internal/rag/llm"
	"github.com/ichef/ChefAPI/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Groq serves an OpenAI compatible API, so the openai SDK pointed at the
// Groq base URL is the whole client.
type llmClient struct {
	client    openai.Client
	modelName string
}

var logger *logger_i.Logger
var groqClient *llmClient
var once sync.Once

func GetGroqClient(ctx context.Context, apikey string, modelName string) llm.Provider {
	once.Do(func() {
		logger = logger_i.NewLogger("llm_groq")
		newGroqClient(apikey, modelName)
	})

	if groqClient == nil {
		return nil
	}
	return &llmClient{client: groqClient.client, modelName: groqClient.modelName}
}

func newGroqClient(apikey string, modelName string) {
	if apikey == "" {
		logger.Error("GROQ_API_KEY is not set")
		return
	}

	c := openai.NewClient(
		option.WithAPIKey(apikey),
		option.WithBaseURL(config.GroqBaseURL),
	)
	groqClient = &llmClient{client: c, modelName: modelName}
	logger.Info("Groq client created", "model", modelName)
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
	log := logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	log.Debug("reformulating follow-up question")

	return c.doCall(ctx, "", llm.BuildReformulatePrompt(messageHistory, question), nil, 0)
}

func (c *llmClient) Complete(ctx context.Context, prompt string, stop []string, temperature float32) (string, error) {
	return c.doCall(ctx, "", prompt, stop, temperature)
}

func (c *llmClient) doCall(ctx context.Context, system string, user string, stop []string, temperature float32) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, config.ModelCallTimeout)
	defer cancel()

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, 2)
	if system != "" {
		messages = append(messages, openai.SystemMessage(system))
	}
	messages = append(messages, openai.UserMessage(user))

	params := openai.ChatCompletionNewParams{
		Model:       c.modelName,
		Messages:    messages,
		Temperature: openai.Float(float64(temperature)),
	}
	if len(stop) > 0 {
		params.Stop = openai.ChatCompletionNewParamsStopUnion{OfStringArray: stop}
	}

	completion, err := c.client.Chat.Completions.New(callCtx, params)
	if err != nil {
		logger.Error("Groq completion failed", "error", err)
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("groq returned no choices")
	}
	return completion.Choices[0].Message.Content, nil
}
