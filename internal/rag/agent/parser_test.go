package agent

import (
	"errors"
	"testing"

	"github.com/ichef/ChefAPI/internal/domain/commonModels"
)

func TestParseDecision_Action(t *testing.T) {
	output := "Thought: preciso dobrar a quantidade\nAction: calculator\nAction Input: 200 * 2"

	d, err := parseDecision(output)
	if err != nil {
		t.Fatalf("parseDecision failed: %v", err)
	}
	if d.IsFinal {
		t.Error("action response should not be final")
	}
	if d.Thought != "preciso dobrar a quantidade" {
		t.Errorf("Thought got %q", d.Thought)
	}
	if d.Tool != commonModels.ToolCalculator {
		t.Errorf("Tool got %q", d.Tool)
	}
	if d.Input != "200 * 2" {
		t.Errorf("Input got %q", d.Input)
	}
}

func TestParseDecision_FinalAnswer(t *testing.T) {
	output := "Thought: já sei\nFinal Answer: Use 400g de farinha.\nCom carinho."

	d, err := parseDecision(output)
	if err != nil {
		t.Fatalf("parseDecision failed: %v", err)
	}
	if !d.IsFinal {
		t.Fatal("expected final decision")
	}
	if d.Answer != "Use 400g de farinha.\nCom carinho." {
		t.Errorf("Answer got %q", d.Answer)
	}
}

// Completions continue the prompt's trailing "Thought:", so the first line
// usually arrives without the prefix and must still be captured.
func TestParseDecision_UnprefixedFirstThought(t *testing.T) {
	output := " preciso dobrar a quantidade\nAction: calculator\nAction Input: 200 * 2"

	d, err := parseDecision(output)
	if err != nil {
		t.Fatalf("parseDecision failed: %v", err)
	}
	if d.Thought != "preciso dobrar a quantidade" {
		t.Errorf("Thought got %q", d.Thought)
	}
	if d.Tool != commonModels.ToolCalculator || d.Input != "200 * 2" {
		t.Errorf("got tool %q input %q", d.Tool, d.Input)
	}
}

func TestParseDecision_UnprefixedThoughtBeforeFinalAnswer(t *testing.T) {
	output := "já sei a resposta\nFinal Answer: Use 400g de farinha."

	d, err := parseDecision(output)
	if err != nil {
		t.Fatalf("parseDecision failed: %v", err)
	}
	if !d.IsFinal {
		t.Fatal("expected final decision")
	}
	if d.Thought != "já sei a resposta" {
		t.Errorf("Thought got %q", d.Thought)
	}
	if d.Answer != "Use 400g de farinha." {
		t.Errorf("Answer got %q", d.Answer)
	}
}

func TestParseDecision_DiscardsHallucinatedObservation(t *testing.T) {
	output := "Thought: vou buscar\nAction: search_recipes\nAction Input: bolo\nObservation: inventei isso\nFinal Answer: nope"

	d, err := parseDecision(output)
	if err != nil {
		t.Fatalf("parseDecision failed: %v", err)
	}
	if d.IsFinal {
		t.Error("text after a hallucinated observation must be ignored")
	}
	if d.Tool != commonModels.ToolRetrieval || d.Input != "bolo" {
		t.Errorf("got tool %q input %q", d.Tool, d.Input)
	}
}

func TestParseDecision_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{"free text", "deixa eu pensar sobre isso"},
		{"unknown tool", "Action: shell\nAction Input: ls"},
		{"missing input", "Thought: hmm\nAction: calculator"},
		{"empty final answer", "Final Answer:"},
		{"empty output", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := parseDecision(tt.output); !errors.Is(err, ErrParse) {
				t.Errorf("expected ErrParse, got %v", err)
			}
		})
	}
}
