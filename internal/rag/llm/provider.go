package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ichef/ChefAPI/internal/config"
	"github.com/ichef/ChefAPI/internal/domain/commonModels"
)

// Provider is the language model collaborator. Three calls cover the three
// ways the system talks to a model: grounded answer synthesis, history-aware
// question reformulation, and raw deterministic completion for the agent loop.
type Provider interface {
	// Generate answers query grounded on the retrieved passages, honoring
	// the conversation history and the user's dietary restrictions.
	Generate(ctx context.Context, query string, passages []commonModels.Passage, messageHistory []string, restrictions string) (string, error)

	// Reformulate rewrites a follow-up question into a standalone one.
	// Callers skip it when history is empty.
	Reformulate(ctx context.Context, messageHistory []string, question string) (string, error)

	// Complete is a single raw completion with optional stop sequences and
	// explicit temperature. The agent loop runs this at temperature 0.
	Complete(ctx context.Context, prompt string, stop []string, temperature float32) (string, error)
}

// BuildSystemInstruction assembles the persona plus restriction constraints
// plus the grounding ("say you don't know") contract.
func BuildSystemInstruction(restrictions string) string {
	if restrictions == "" {
		restrictions = "Nenhuma restrição específica."
	}
	return config.PersonaInstruction + "\n" +
		fmt.Sprintf(config.RestrictionInstruction, restrictions) + "\n" +
		config.GroundingInstruction
}

// BuildGroundedPrompt lays out history, retrieved context and the question
// in the order every provider sends them.
func BuildGroundedPrompt(query string, passages []commonModels.Passage, messageHistory []string) string {
	var b strings.Builder

	if len(messageHistory) > 0 {
		b.WriteString("Histórico da conversa:\n")
		b.WriteString(strings.Join(messageHistory, "\n"))
		b.WriteString("\n\n")
	}

	b.WriteString("--- CONTEXTO ---\n")
	for _, p := range passages {
		fmt.Fprintf(&b, "[%s, página %d]\n%s\n\n", p.DocName, p.PageNum, p.Content)
	}
	b.WriteString("----------------\n\n")

	fmt.Fprintf(&b, "Pergunta: %s", query)
	return b.String()
}

// BuildReformulatePrompt pairs the rewrite instruction with the history and
// the new question.
func BuildReformulatePrompt(messageHistory []string, question string) string {
	var b strings.Builder
	b.WriteString(config.ReformulateInstruction)
	b.WriteString("\n\nHistórico:\n")
	b.WriteString(strings.Join(messageHistory, "\n"))
	fmt.Fprintf(&b, "\n\nNova pergunta: %s", question)
	return b.String()
}
