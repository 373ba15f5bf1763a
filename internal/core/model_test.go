package core

import "testing"

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input     string
		want      Category
		wantKnown bool
	}{
		{"new_application", CategoryNewApplication, true},
		{"scheduling_response", CategorySchedulingResponse, true},
		{"interviewer_feedback", CategoryInterviewerFeedback, true},
		{"question", CategoryQuestion, true},
		{"follow_up", CategoryFollowUp, true},
		{"other", CategoryOther, true},
		{"  New_Application \n", CategoryNewApplication, true},
		{"QUESTION", CategoryQuestion, true},
		{"spam", CategoryOther, false},
		{"", CategoryOther, false},
		{"new application", CategoryOther, false},
	}

	for _, tt := range tests {
		got, known := ParseCategory(tt.input)
		if got != tt.want || known != tt.wantKnown {
			t.Errorf("ParseCategory(%q) = (%s, %v), want (%s, %v)",
				tt.input, got, known, tt.want, tt.wantKnown)
		}
	}
}

func TestParseCandidateStatus(t *testing.T) {
	tests := []struct {
		input     string
		want      CandidateStatus
		wantKnown bool
	}{
		{"new", StatusNew, true},
		{"screening", StatusScreening, true},
		{"scheduling", StatusScheduling, true},
		{"interviewed", StatusInterviewed, true},
		{"rejected", StatusRejected, true},
		{"hired", StatusHired, true},
		{" Hired ", StatusHired, true},
		{"fired", StatusNew, false},
		{"", StatusNew, false},
	}

	for _, tt := range tests {
		got, known := ParseCandidateStatus(tt.input)
		if got != tt.want || known != tt.wantKnown {
			t.Errorf("ParseCandidateStatus(%q) = (%s, %v), want (%s, %v)",
				tt.input, got, known, tt.want, tt.wantKnown)
		}
	}
}

func TestDefaultEvaluation(t *testing.T) {
	eval := DefaultEvaluation()
	if eval.Score != 5 {
		t.Errorf("default score = %d, want 5", eval.Score)
	}
	if !eval.Qualified {
		t.Error("default evaluation must be qualified")
	}
	if eval.NextStep != "schedule_screen" {
		t.Errorf("default next step = %q, want schedule_screen", eval.NextStep)
	}
}
