package core

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare object",
			input: `{"score": 8}`,
			want:  `{"score": 8}`,
		},
		{
			name:  "surrounding prose",
			input: "Here is my evaluation: {\"score\": 8} Hope this helps!",
			want:  `{"score": 8}`,
		},
		{
			name:  "code fence",
			input: "```json\n{\"score\": 8}\n```",
			want:  `{"score": 8}`,
		},
		{
			name:  "fence without language",
			input: "```\n{\"score\": 8}\n```",
			want:  `{"score": 8}`,
		},
		{
			name:  "no braces",
			input: "eight out of ten",
			want:  "eight out of ten",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSON(tt.input); got != tt.want {
				t.Errorf("ExtractJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEvaluateParsesModelOutput(t *testing.T) {
	llm := &fakeLLM{
		evaluateResponse: "```json\n" +
			`{"score": 9, "qualified": true, "strengths": ["Go", "Kubernetes"], "next_step": "schedule_screen", "reasoning": "senior"}` +
			"\n```",
	}
	evaluator := NewEvaluator(llm, zap.NewNop())

	eval, err := evaluator.Evaluate(context.Background(), applicationMessage())
	if err != nil {
		t.Fatal(err)
	}
	if eval.Score != 9 || !eval.Qualified {
		t.Errorf("unexpected evaluation: %+v", eval)
	}
	if len(eval.Strengths) != 2 {
		t.Errorf("strengths = %v, want 2 entries", eval.Strengths)
	}
}

func TestEvaluateUnparseableReturnsDefaultAndError(t *testing.T) {
	llm := &fakeLLM{evaluateResponse: "Looks pretty good to me."}
	evaluator := NewEvaluator(llm, zap.NewNop())

	eval, err := evaluator.Evaluate(context.Background(), applicationMessage())
	if !errors.Is(err, ErrUnparseable) {
		t.Fatalf("expected ErrUnparseable, got %v", err)
	}
	if eval == nil || eval.Score != 5 || !eval.Qualified {
		t.Errorf("expected default evaluation alongside the error, got %+v", eval)
	}
}
