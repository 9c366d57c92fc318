package consulting

import (
	"context"
	"errors"
	"strings"

	"github.com/merchantlab/consult-go/domain/capability"
	"github.com/merchantlab/consult-go/domain/tabular"
)

func dataAnalyzerCapability(deps Deps) capability.Capability {
	return capability.New(NameDataAnalyzer).
		WithDescription("Answers questions over the store's sales records: totals, trends, comparisons, and breakdowns.").
		WithStoreID().
		WithHandler(func(ctx context.Context, input capability.Input) (capability.Output, error) {
			raw, err := deps.Analyzer.Analyze(ctx, input.StoreID, input.Query)
			if err != nil {
				payload := capability.NewErrorPayload(NameDataAnalyzer, input.Query, err)
				if errors.Is(err, tabular.ErrNoData) {
					payload = payload.WithDetails("no sales records are loaded for this store")
				}
				return payload.Output(), nil
			}
			// Only marked output is a finished answer. Anything else is
			// an intermediate finding that feeds synthesis.
			if !strings.Contains(raw, tabular.FinalAnswerMarker) {
				return capability.NewOutput(tabular.ExtractAnswer(raw)), nil
			}
			return capability.NewFinalOutput(tabular.ExtractAnswer(raw)), nil
		}).
		MustBuild()
}
