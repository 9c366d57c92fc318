// Package intent defines the closed intent vocabulary the classifier
// maps user questions into and the routing decision attached to each
// intent.
package intent

import "context"

// Intent is one of the closed set of recognized question types.
type Intent string

const (
	ProfileQuery         Intent = "profile_query"
	BigconRequest        Intent = "bigcon_request"
	DataAnalysis         Intent = "data_analysis"
	MarketingIdea        Intent = "marketing_idea"
	GeneralRAGSearch     Intent = "general_rag_search"
	VideoRecommendation  Intent = "video_recommendation"
	PolicyRecommendation Intent = "policy_recommendation"
	Greeting             Intent = "greeting"
	Unknown              Intent = "unknown"
)

// All lists every intent the classifier may emit.
func All() []Intent {
	return []Intent{
		ProfileQuery,
		BigconRequest,
		DataAnalysis,
		MarketingIdea,
		GeneralRAGSearch,
		VideoRecommendation,
		PolicyRecommendation,
		Greeting,
		Unknown,
	}
}

// Valid reports whether i belongs to the closed vocabulary.
func (i Intent) Valid() bool {
	switch i {
	case ProfileQuery, BigconRequest, DataAnalysis, MarketingIdea,
		GeneralRAGSearch, VideoRecommendation, PolicyRecommendation,
		Greeting, Unknown:
		return true
	}
	return false
}

// Normalize maps arbitrary classifier output onto the closed
// vocabulary, returning Unknown for anything unrecognized.
func Normalize(raw string) Intent {
	i := Intent(raw)
	if i.Valid() {
		return i
	}
	return Unknown
}

// Classifier maps a user question to an intent.
type Classifier interface {
	Classify(ctx context.Context, query string) (Intent, error)
}
