// Package consulting provides the capability set of the consulting
// engine: profile access, retrieval, sales analysis, idea generation,
// action cards, and recommendations.
package consulting

import (
	"context"
	"fmt"

	"github.com/merchantlab/consult-go/domain/capability"
	"github.com/merchantlab/consult-go/domain/knowledge"
	"github.com/merchantlab/consult-go/domain/profile"
	"github.com/merchantlab/consult-go/domain/tabular"
	"github.com/merchantlab/consult-go/infrastructure/llm"
)

// Capability names as referenced by plans and routes.
const (
	NameGetProfile        = "get_profile"
	NameUpdateProfile     = "update_profile"
	NameRAGSearcher       = "rag_searcher"
	NameDataAnalyzer      = "data_analyzer"
	NameMarketingIdeas    = "marketing_idea_generator"
	NameActionCard        = "action_card_generator"
	NameVideoRecommender  = "video_recommender"
	NamePolicyRecommender = "policy_recommender"
)

// Deps carries the collaborators the capabilities are built over.
type Deps struct {
	// Profiles is the merchant profile store.
	Profiles profile.Store

	// Searcher retrieves from the curated collections.
	Searcher knowledge.Searcher

	// Analyzer answers questions over sales tables.
	Analyzer tabular.Analyzer

	// Provider is the language model for generation capabilities.
	Provider llm.Provider

	// Model overrides the provider's default model when set.
	Model string

	// MaxCardTurns bounds the action card negotiation (default 3).
	MaxCardTurns int
}

func (d Deps) validate() error {
	if d.Profiles == nil {
		return fmt.Errorf("consulting pack: profile store is required")
	}
	if d.Searcher == nil {
		return fmt.Errorf("consulting pack: searcher is required")
	}
	if d.Analyzer == nil {
		return fmt.Errorf("consulting pack: analyzer is required")
	}
	if d.Provider == nil {
		return fmt.Errorf("consulting pack: llm provider is required")
	}
	return nil
}

// New builds the full capability set.
func New(deps Deps) ([]capability.Capability, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if deps.MaxCardTurns <= 0 {
		deps.MaxCardTurns = 3
	}

	return []capability.Capability{
		getProfileCapability(deps),
		updateProfileCapability(deps),
		ragSearcherCapability(deps),
		dataAnalyzerCapability(deps),
		marketingIdeasCapability(deps),
		actionCardCapability(deps),
		videoRecommenderCapability(deps),
		policyRecommenderCapability(deps),
	}, nil
}

// Register builds the capability set and registers it.
func Register(ctx context.Context, registry capability.Registry, deps Deps) error {
	capabilities, err := New(deps)
	if err != nil {
		return err
	}
	for _, c := range capabilities {
		if err := registry.Register(ctx, c); err != nil {
			return fmt.Errorf("register %s: %w", c.Name(), err)
		}
	}
	return nil
}
