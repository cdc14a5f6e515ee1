package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/ichef/ChefAPI/internal/domain/commonModels"
	"github.com/ichef/ChefAPI/internal/metrics"
	"github.com/ichef/ChefAPI/pkg/logger_i"
)

// PassageFinder is the retrieval contract the recipe-search tool wraps.
type PassageFinder interface {
	Retrieve(ctx context.Context, query string) ([]commonModels.Passage, error)
}

// WebSearcher is the external search collaborator: free text in, untrusted
// free text out.
type WebSearcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// Toolbox holds the closed tool set of the agent. Tool faults are returned
// as errors here and turned into observations by the caller - they never
// abort an episode.
type Toolbox struct {
	retriever PassageFinder
	web       WebSearcher
	logger    *logger_i.Logger
}

func NewToolbox(retriever PassageFinder, web WebSearcher) *Toolbox {
	return &Toolbox{
		retriever: retriever,
		web:       web,
		logger:    logger_i.NewLogger("Toolbox"),
	}
}

// Descriptions renders the tool roster for the agent prompt.
func Descriptions() string {
	return strings.Join([]string{
		fmt.Sprintf("%s: pesquisa receitas nos livros de culinária indexados. Entrada: termos de busca.", commonModels.ToolRetrieval),
		fmt.Sprintf("%s: pesquisa receitas ou informações na Internet. Entrada: termos de busca.", commonModels.ToolWebSearch),
		fmt.Sprintf("%s: calcula expressões matemáticas (soma, multiplicação, divisão). Entrada: ex '200 * 2'.", commonModels.ToolCalculator),
	}, "\n")
}

// Names lists the valid Action values.
func Names() string {
	return fmt.Sprintf("%s, %s, %s", commonModels.ToolRetrieval, commonModels.ToolWebSearch, commonModels.ToolCalculator)
}

// ParseKind maps a model-emitted tool name onto the variant.
func ParseKind(name string) (commonModels.ToolKind, bool) {
	switch commonModels.ToolKind(strings.TrimSpace(name)) {
	case commonModels.ToolRetrieval:
		return commonModels.ToolRetrieval, true
	case commonModels.ToolWebSearch:
		return commonModels.ToolWebSearch, true
	case commonModels.ToolCalculator:
		return commonModels.ToolCalculator, true
	default:
		return "", false
	}
}

// Invoke dispatches on the tool variant. The switch is exhaustive over
// ToolKind; ParseKind guarantees no other value reaches it.
func (t *Toolbox) Invoke(ctx context.Context, kind commonModels.ToolKind, input string) (string, error) {
	var observation string
	var err error

	switch kind {
	case commonModels.ToolRetrieval:
		observation, err = t.retrieve(ctx, input)
	case commonModels.ToolWebSearch:
		observation, err = t.web.Search(ctx, input)
	case commonModels.ToolCalculator:
		observation, err = Calculate(input)
	default:
		err = fmt.Errorf("unknown tool: %s", kind)
	}

	metrics.CaptureToolInvocation(string(kind), err != nil)
	if err != nil {
		t.logger.Error("Tool invocation failed", "tool", kind, "error", err)
		return "", err
	}
	return observation, nil
}

func (t *Toolbox) retrieve(ctx context.Context, query string) (string, error) {
	passages, err := t.retriever.Retrieve(ctx, query)
	if err != nil {
		return "", err
	}
	if len(passages) == 0 {
		return "Nenhuma receita encontrada nos livros indexados.", nil
	}

	var b strings.Builder
	for _, p := range passages {
		fmt.Fprintf(&b, "[%s, página %d] %s\n", p.DocName, p.PageNum, p.Content)
	}
	return b.String(), nil
}
