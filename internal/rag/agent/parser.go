package agent

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ichef/ChefAPI/internal/domain/commonModels"
	"github.com/ichef/ChefAPI/internal/rag/agent/tools"
)

// ErrParse marks a model response that does not follow the expected grammar.
// The loop recovers from it locally, bounded, before surfacing a failure.
var ErrParse = errors.New("malformed model response")

// decision is the parsed outcome of one THINKING round: either a tool
// invocation or a final answer.
type decision struct {
	Thought string
	IsFinal bool
	Answer  string
	Tool    commonModels.ToolKind
	Input   string
}

const (
	thoughtPrefix     = "Thought:"
	actionPrefix      = "Action:"
	actionInputPrefix = "Action Input:"
	finalAnswerPrefix = "Final Answer:"
	observationPrefix = "Observation:"
)

// parseDecision applies the grammar: an optional Thought line, then either
// an Action + Action Input pair or a Final Answer. Anything the model emits
// after a hallucinated Observation line is discarded - observations come
// from tools, never from the model.
func parseDecision(output string) (decision, error) {
	// the prompt ends with "Thought:", so the first line of the completion
	// usually arrives without the prefix
	trimmed := strings.TrimSpace(output)
	if !strings.HasPrefix(trimmed, thoughtPrefix) &&
		!strings.HasPrefix(trimmed, actionPrefix) &&
		!strings.HasPrefix(trimmed, finalAnswerPrefix) &&
		!strings.HasPrefix(trimmed, observationPrefix) {
		output = thoughtPrefix + " " + trimmed
	}

	if idx := strings.Index(output, observationPrefix); idx >= 0 {
		output = output[:idx]
	}

	var d decision
	var sawAction, sawInput bool

	lines := strings.Split(output, "\n")
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		switch {
		case strings.HasPrefix(line, finalAnswerPrefix):
			// the final answer runs to the end of the response
			rest := strings.TrimSpace(strings.TrimPrefix(line, finalAnswerPrefix))
			if tail := strings.Join(lines[i+1:], "\n"); strings.TrimSpace(tail) != "" {
				rest = strings.TrimSpace(rest + "\n" + tail)
			}
			if rest == "" {
				return d, fmt.Errorf("%w: empty final answer", ErrParse)
			}
			d.IsFinal = true
			d.Answer = rest
			return d, nil

		case strings.HasPrefix(line, thoughtPrefix):
			d.Thought = strings.TrimSpace(strings.TrimPrefix(line, thoughtPrefix))

		case strings.HasPrefix(line, actionPrefix) && !strings.HasPrefix(line, actionInputPrefix):
			name := strings.TrimSpace(strings.TrimPrefix(line, actionPrefix))
			kind, ok := tools.ParseKind(strings.Trim(name, "[]"))
			if !ok {
				return d, fmt.Errorf("%w: unknown tool %q", ErrParse, name)
			}
			d.Tool = kind
			sawAction = true

		case strings.HasPrefix(line, actionInputPrefix):
			d.Input = strings.TrimSpace(strings.TrimPrefix(line, actionInputPrefix))
			sawInput = true
		}
	}

	if !sawAction {
		return d, fmt.Errorf("%w: no action and no final answer", ErrParse)
	}
	if !sawInput {
		return d, fmt.Errorf("%w: action without action input", ErrParse)
	}
	return d, nil
}
