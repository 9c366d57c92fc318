package plan_test

import (
	"errors"
	"testing"

	"github.com/merchantlab/consult-go/domain/plan"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		want    []plan.Step
		wantErr error
	}{
		{
			name: "bare array",
			raw:  `[{"tool_name":"rag_searcher","query":"loyalty programs"}]`,
			want: []plan.Step{{ToolName: "rag_searcher", Query: "loyalty programs"}},
		},
		{
			name: "fenced array with prose",
			raw: "Here is the plan:\n```json\n[" +
				`{"tool_name":"get_profile","query":"profile"},` +
				`{"tool_name":"data_analyzer","query":"weekday sales"}` +
				"]\n```",
			want: []plan.Step{
				{ToolName: "get_profile", Query: "profile"},
				{ToolName: "data_analyzer", Query: "weekday sales"},
			},
		},
		{
			name:    "no array",
			raw:     "I cannot produce a plan.",
			wantErr: plan.ErrInvalidPlan,
		},
		{
			name:    "empty array",
			raw:     "[]",
			wantErr: plan.ErrEmptyPlan,
		},
		{
			name:    "missing tool name",
			raw:     `[{"tool_name":"","query":"q"}]`,
			wantErr: plan.ErrMissingToolName,
		},
		{
			name:    "missing query",
			raw:     `[{"tool_name":"rag_searcher","query":"  "}]`,
			wantErr: plan.ErrMissingQuery,
		},
		{
			name:    "malformed json",
			raw:     `[{"tool_name": rag}]`,
			wantErr: plan.ErrInvalidPlan,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := plan.Parse(tt.raw)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Parse() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("Parse() returned %d steps, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("step %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestStepDescriptor(t *testing.T) {
	t.Parallel()

	step := plan.Step{ToolName: "rag_searcher", Query: "franchise trends"}
	if got, want := step.Descriptor(), "rag_searcher(franchise trends)"; got != want {
		t.Errorf("Descriptor() = %q, want %q", got, want)
	}
}
