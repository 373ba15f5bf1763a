package core

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     Category
	}{
		{"exact label", "new_application", CategoryNewApplication},
		{"padded label", "  scheduling_response\n", CategorySchedulingResponse},
		{"uppercase label", "QUESTION", CategoryQuestion},
		{"chatty output", "I'd say this is probably a follow up email", CategoryOther},
		{"empty output", "", CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			llm := &fakeLLM{classifyResponse: tt.response}
			classifier := NewClassifier(llm, zap.NewNop())

			got, err := classifier.Classify(context.Background(), applicationMessage())
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}
