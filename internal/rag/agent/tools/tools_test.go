package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/ichef/ChefAPI/internal/domain/commonModels"
)

type stubFinder struct {
	passages []commonModels.Passage
	err      error
}

func (s *stubFinder) Retrieve(ctx context.Context, query string) ([]commonModels.Passage, error) {
	return s.passages, s.err
}

type stubSearcher struct {
	result string
	err    error
}

func (s *stubSearcher) Search(ctx context.Context, query string) (string, error) {
	return s.result, s.err
}

func TestToolboxInvoke_Calculator(t *testing.T) {
	tb := NewToolbox(&stubFinder{}, &stubSearcher{})

	obs, err := tb.Invoke(context.Background(), commonModels.ToolCalculator, "200 * 2")
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if obs != "400" {
		t.Errorf("observation got %q, want 400", obs)
	}

	if _, err := tb.Invoke(context.Background(), commonModels.ToolCalculator, "rm -rf"); err == nil {
		t.Error("malicious input should be rejected")
	}
}

func TestToolboxInvoke_Retrieval(t *testing.T) {
	finder := &stubFinder{
		passages: []commonModels.Passage{
			{Content: "bata os ovos com o açúcar", DocName: "bolos.pdf", PageNum: 12, Score: 0.91},
		},
	}
	tb := NewToolbox(finder, &stubSearcher{})

	obs, err := tb.Invoke(context.Background(), commonModels.ToolRetrieval, "bolo de cenoura")
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if !strings.Contains(obs, "bolos.pdf") || !strings.Contains(obs, "página 12") {
		t.Errorf("observation missing citation: %q", obs)
	}

	tb = NewToolbox(&stubFinder{}, &stubSearcher{})
	obs, err = tb.Invoke(context.Background(), commonModels.ToolRetrieval, "nada")
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if !strings.Contains(obs, "Nenhuma receita") {
		t.Errorf("empty retrieval should say so, got %q", obs)
	}
}

func TestToolboxInvoke_ErrorsSurface(t *testing.T) {
	tb := NewToolbox(&stubFinder{err: errors.New("index offline")}, &stubSearcher{err: errors.New("dns failure")})

	if _, err := tb.Invoke(context.Background(), commonModels.ToolRetrieval, "q"); err == nil {
		t.Error("retrieval error should surface")
	}
	if _, err := tb.Invoke(context.Background(), commonModels.ToolWebSearch, "q"); err == nil {
		t.Error("web search error should surface")
	}
}
