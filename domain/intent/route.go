package intent

// Route is the dispatch decision the router derives from an intent:
// either a direct capability call, a planner takeover, or a simple
// conversational reply.
type Route struct {
	// Node names the graph node the turn moves to next.
	Node string

	// Capability is the capability a direct dispatch invokes. Empty
	// for planner and responder routes.
	Capability string

	// AllowedTools restricts which capabilities the turn's plan may
	// use. Empty means no restriction.
	AllowedTools []string
}

// Graph node names shared by the router and the state machine.
const (
	NodePlanner         = "planner"
	NodeExecutor        = "executor"
	NodeSynthesizer     = "synthesizer"
	NodeSimpleResponder = "simple_responder"
	NodeDone            = "done"
)

// RouteFor returns the dispatch decision for an intent.
//
// Intents that map one to one onto a capability dispatch directly,
// skipping the planner round-trip. Questions needing composition hand
// control to the planner under an allowed-tools restriction. Profile
// questions go straight to synthesis, and greetings or unclassifiable
// questions get a fixed conversational reply.
func RouteFor(i Intent) Route {
	switch i {
	case ProfileQuery:
		return Route{Node: NodeSynthesizer}
	case BigconRequest:
		return Route{Node: NodeExecutor, Capability: "action_card_generator"}
	case VideoRecommendation:
		return Route{Node: NodeExecutor, Capability: "video_recommender"}
	case PolicyRecommendation:
		return Route{Node: NodeExecutor, Capability: "policy_recommender"}
	case DataAnalysis:
		return Route{Node: NodePlanner, AllowedTools: []string{
			"data_analyzer", "rag_searcher",
		}}
	case MarketingIdea:
		return Route{Node: NodePlanner, AllowedTools: []string{
			"rag_searcher", "marketing_idea_generator",
		}}
	case GeneralRAGSearch:
		// The catch-all planner route also carries the profile tools so
		// a plan can read or correct stored facts before searching.
		return Route{Node: NodePlanner, AllowedTools: []string{
			"rag_searcher", "get_profile", "update_profile",
		}}
	case Greeting, Unknown:
		return Route{Node: NodeSimpleResponder}
	default:
		return Route{Node: NodeSimpleResponder}
	}
}
