package agent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ichef/ChefAPI/internal/config"
	"github.com/ichef/ChefAPI/internal/domain/commonModels"
	"github.com/ichef/ChefAPI/internal/metrics"
	"github.com/ichef/ChefAPI/internal/rag/agent/tools"
	"github.com/ichef/ChefAPI/internal/rag/llm"
	"github.com/ichef/ChefAPI/pkg/logger_i"
)

// state of the loop between model calls. Transitions:
// THINKING -> ACTING -> OBSERVING -> THINKING, or THINKING -> DONE.
type state int

const (
	stateThinking state = iota
	stateActing
	stateObserving
	stateDone
)

// ErrModelFailure wraps a completion call that failed outright - distinct
// from a malformed response, which the loop retries.
var ErrModelFailure = errors.New("agent model call failed")

const forcedAnswer = "Desculpe, não consegui concluir o raciocínio dentro do limite de passos. " +
	"Tente reformular a pergunta ou dividi-la em partes menores."

// Outcome is the result of one agent run: the answer plus the full trace of
// reasoning steps, and whether termination was forced by the iteration cap.
type Outcome struct {
	Answer string
	Steps  []commonModels.AgentStep
	Forced bool
}

// Loop drives the think/act/observe cycle against a model provider and a
// toolbox. One Loop is safe for concurrent runs; all per-run state lives on
// the stack of Run.
type Loop struct {
	provider llm.Provider
	toolbox  *tools.Toolbox
	logger   *logger_i.Logger

	maxIterations   int
	maxParseRetries int
}

func NewLoop(provider llm.Provider, toolbox *tools.Toolbox) *Loop {
	return &Loop{
		provider:        provider,
		toolbox:         toolbox,
		logger:          logger_i.NewLogger("agent"),
		maxIterations:   config.AgentMaxIterations,
		maxParseRetries: config.AgentMaxParseRetry,
	}
}

// Run executes the loop for one question. Every model call replays the full
// scratchpad, so each round sees everything observed so far. Tool failures
// become observations and feed back into the reasoning; only model-call
// failures and exhausted parse retries abort the run.
func (l *Loop) Run(ctx context.Context, question string, messageHistory []string, restrictions string) (Outcome, error) {
	var steps []commonModels.AgentStep
	var pending decision
	var observation string
	var answer string

	stop := []string{config.AgentStopSequence}
	parseRetries := 0
	iterations := 0
	current := stateThinking

	for current != stateDone {
		switch current {

		case stateThinking:
			if iterations >= l.maxIterations {
				l.logger.Warn("iteration cap reached, forcing termination", "iterations", iterations)
				metrics.CaptureAgentIterations("forced", iterations)
				return Outcome{Answer: forcedAnswer, Steps: steps, Forced: true}, nil
			}
			iterations++

			output, err := l.provider.Complete(ctx, l.buildPrompt(question, messageHistory, restrictions, steps), stop, config.AgentTemperature)
			if err != nil {
				metrics.CaptureAgentIterations("model_failure", iterations)
				return Outcome{Steps: steps}, fmt.Errorf("%w: %v", ErrModelFailure, err)
			}

			d, perr := parseDecision(output)
			if perr != nil {
				parseRetries++
				l.logger.Warn("malformed agent response", "attempt", parseRetries, "error", perr.Error())
				if parseRetries > l.maxParseRetries {
					metrics.CaptureAgentIterations("parse_failure", iterations)
					return Outcome{Steps: steps}, perr
				}
				// surface the format error as an observation so the next
				// round can self-correct
				steps = append(steps, commonModels.AgentStep{
					Observation: "Sua última resposta estava fora do formato. Responda com 'Thought:', 'Action:', 'Action Input:' ou 'Final Answer:'.",
				})
				continue
			}
			parseRetries = 0

			if d.IsFinal {
				answer = d.Answer
				steps = append(steps, commonModels.AgentStep{Thought: d.Thought})
				current = stateDone
				continue
			}
			pending = d
			current = stateActing

		case stateActing:
			result, err := l.toolbox.Invoke(ctx, pending.Tool, pending.Input)
			if err != nil {
				// the model gets to read the failure and try another route
				result = "Erro ao executar a ferramenta: " + err.Error()
			}
			observation = result
			current = stateObserving

		case stateObserving:
			steps = append(steps, commonModels.AgentStep{
				Thought:     pending.Thought,
				Tool:        pending.Tool,
				Input:       pending.Input,
				Observation: observation,
			})
			current = stateThinking
		}
	}

	metrics.CaptureAgentIterations("final", iterations)
	return Outcome{Answer: answer, Steps: steps}, nil
}

// buildPrompt renders the ReAct template: persona and constraints, the tool
// roster, the format contract, then the conversation, the question and the
// scratchpad of previous rounds.
func (l *Loop) buildPrompt(question string, messageHistory []string, restrictions string, steps []commonModels.AgentStep) string {
	var b strings.Builder

	b.WriteString(llm.BuildSystemInstruction(restrictions))
	b.WriteString("\n\nVocê tem acesso às seguintes ferramentas:\n\n")
	b.WriteString(tools.Descriptions())
	b.WriteString("\n\nUse exatamente este formato:\n\n")
	b.WriteString("Thought: o que você precisa descobrir em seguida\n")
	fmt.Fprintf(&b, "Action: uma de [%s]\n", tools.Names())
	b.WriteString("Action Input: a entrada da ferramenta\n")
	b.WriteString("Observation: o resultado da ferramenta\n")
	b.WriteString("... (Thought/Action/Action Input/Observation repetem quantas vezes forem necessárias)\n")
	b.WriteString("Thought: já sei a resposta final\n")
	b.WriteString("Final Answer: a resposta final para o usuário\n")

	if len(messageHistory) > 0 {
		b.WriteString("\nHistórico da conversa:\n")
		b.WriteString(strings.Join(messageHistory, "\n"))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nQuestion: %s\n", question)

	for _, step := range steps {
		if step.Thought != "" {
			fmt.Fprintf(&b, "Thought: %s\n", step.Thought)
		}
		if step.Tool != "" {
			fmt.Fprintf(&b, "Action: %s\nAction Input: %s\n", step.Tool, step.Input)
		}
		if step.Observation != "" {
			fmt.Fprintf(&b, "Observation: %s\n", step.Observation)
		}
	}
	b.WriteString("Thought:")

	return b.String()
}
