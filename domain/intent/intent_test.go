package intent_test

import (
	"testing"

	"github.com/merchantlab/consult-go/domain/intent"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw  string
		want intent.Intent
	}{
		{"profile_query", intent.ProfileQuery},
		{"marketing_idea", intent.MarketingIdea},
		{"greeting", intent.Greeting},
		{"web_search", intent.Unknown},
		{"", intent.Unknown},
		{"PROFILE_QUERY", intent.Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()

			if got := intent.Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestRouteFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		in         intent.Intent
		wantNode   string
		wantDirect string
	}{
		{"profile answers from synthesis", intent.ProfileQuery, intent.NodeSynthesizer, ""},
		{"bigcon goes direct", intent.BigconRequest, intent.NodeExecutor, "action_card_generator"},
		{"video goes direct", intent.VideoRecommendation, intent.NodeExecutor, "video_recommender"},
		{"analysis takes planner", intent.DataAnalysis, intent.NodePlanner, ""},
		{"rag takes planner", intent.GeneralRAGSearch, intent.NodePlanner, ""},
		{"marketing takes planner", intent.MarketingIdea, intent.NodePlanner, ""},
		{"greeting responds simply", intent.Greeting, intent.NodeSimpleResponder, ""},
		{"unknown responds simply", intent.Unknown, intent.NodeSimpleResponder, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			route := intent.RouteFor(tt.in)
			if route.Node != tt.wantNode {
				t.Errorf("Node = %q, want %q", route.Node, tt.wantNode)
			}
			if route.Capability != tt.wantDirect {
				t.Errorf("Capability = %q, want %q", route.Capability, tt.wantDirect)
			}
		})
	}
}

func TestPlannerRoutesRestrictTools(t *testing.T) {
	t.Parallel()

	route := intent.RouteFor(intent.GeneralRAGSearch)
	for _, want := range []string{"rag_searcher", "get_profile", "update_profile"} {
		found := false
		for _, name := range route.AllowedTools {
			if name == want {
				found = true
			}
		}
		if !found {
			t.Errorf("general route AllowedTools = %v, missing %q", route.AllowedTools, want)
		}
	}

	route = intent.RouteFor(intent.MarketingIdea)
	if len(route.AllowedTools) == 0 {
		t.Error("marketing route must restrict the plan to its capability set")
	}
}
