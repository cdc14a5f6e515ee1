package tools

import (
	"strings"
	"testing"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		expr     string
		expected string
	}{
		{"200 * 2", "400"},
		{"1 + 2 + 3", "6"},
		{"10 - 4", "6"},
		{"7 / 2", "3.5"},
		{"2 + 3 * 4", "14"},
		{"(2 + 3) * 4", "20"},
		{"-5 + 10", "5"},
		{"0.5 * 4", "2"},
		{"  200*2  ", "400"},
	}

	for _, tt := range tests {
		got, err := Calculate(tt.expr)
		if err != nil {
			t.Errorf("Calculate(%q) failed: %v", tt.expr, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("Calculate(%q) = %s; want %s", tt.expr, got, tt.expected)
		}
	}
}

func TestCalculate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		expr string
	}{
		{"shell command", "rm -rf /tmp"},
		{"letters", "dois + dois"},
		{"function call", "pow(2, 3)"},
		{"division by zero", "1 / 0"},
		{"dangling operator", "2 +"},
		{"unbalanced parens", "(1 + 2"},
		{"empty", ""},
		{"bad number", "1..2 + 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, err := Calculate(tt.expr); err == nil {
				t.Errorf("Calculate(%q) = %s, expected an error", tt.expr, got)
			}
		})
	}
}

func TestParseKind(t *testing.T) {
	for _, valid := range []string{"calculator", "search_recipes", "search_web", " calculator "} {
		if _, ok := ParseKind(valid); !ok {
			t.Errorf("ParseKind(%q) should succeed", valid)
		}
	}
	for _, invalid := range []string{"", "Calculator", "search", "shell"} {
		if kind, ok := ParseKind(invalid); ok {
			t.Errorf("ParseKind(%q) should fail, got %q", invalid, kind)
		}
	}
}

func TestDescriptionsListEveryTool(t *testing.T) {
	desc := Descriptions()
	for _, name := range []string{"search_recipes", "search_web", "calculator"} {
		if !strings.Contains(desc, name) {
			t.Errorf("Descriptions() missing %s", name)
		}
		if !strings.Contains(Names(), name) {
			t.Errorf("Names() missing %s", name)
		}
	}
}
