package capability_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/merchantlab/consult-go/domain/capability"
	"github.com/merchantlab/consult-go/domain/knowledge"
)

func TestBuilder(t *testing.T) {
	t.Parallel()

	echo := func(_ context.Context, input capability.Input) (capability.Output, error) {
		return capability.NewOutput(input.Query), nil
	}

	t.Run("valid chain", func(t *testing.T) {
		t.Parallel()

		c, err := capability.New("rag_searcher").
			WithDescription("searches curated collections").
			WithProfile().
			WithStoreID().
			WithHandler(echo).
			Build()
		if err != nil {
			t.Fatalf("Build() unexpected error: %v", err)
		}
		if c.Name() != "rag_searcher" {
			t.Errorf("Name() = %q, want %q", c.Name(), "rag_searcher")
		}
		meta := c.Metadata()
		if !meta.NeedsProfile || !meta.NeedsStoreID || meta.NeedsHistory {
			t.Errorf("Metadata() = %+v, want profile and store id only", meta)
		}
	})

	t.Run("missing name", func(t *testing.T) {
		t.Parallel()

		_, err := capability.New("  ").WithDescription("d").WithHandler(echo).Build()
		if !errors.Is(err, capability.ErrInvalidCapability) {
			t.Fatalf("Build() error = %v, want ErrInvalidCapability", err)
		}
	})

	t.Run("missing description", func(t *testing.T) {
		t.Parallel()

		_, err := capability.New("x").WithHandler(echo).Build()
		if !errors.Is(err, capability.ErrInvalidCapability) {
			t.Fatalf("Build() error = %v, want ErrInvalidCapability", err)
		}
	})

	t.Run("missing handler", func(t *testing.T) {
		t.Parallel()

		_, err := capability.New("x").WithDescription("d").Build()
		if !errors.Is(err, capability.ErrInvalidCapability) {
			t.Fatalf("Build() error = %v, want ErrInvalidCapability", err)
		}
	})
}

func TestExecuteHonorsCancellation(t *testing.T) {
	t.Parallel()

	c := capability.New("slow").
		WithDescription("never runs").
		WithHandler(func(_ context.Context, _ capability.Input) (capability.Output, error) {
			t.Fatal("handler must not run after cancellation")
			return capability.Output{}, nil
		}).
		MustBuild()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := c.Execute(ctx, capability.Input{Query: "q"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("Execute() error = %v, want context.Canceled", err)
	}
}

func TestOutputRoundTrip(t *testing.T) {
	t.Parallel()

	original := capability.NewFinalOutput("use a stamp card").WithSources([]knowledge.Document{
		{
			ID:       "strategy-12",
			Category: knowledge.CategoryStrategy,
			Content:  "loyalty stamp cards lift repeat visits",
			Metadata: map[string]string{"title": "Loyalty basics"},
			Score:    0.91,
		},
	})

	data, err := original.Marshal()
	if err != nil {
		t.Fatalf("Marshal() unexpected error: %v", err)
	}

	decoded, err := capability.UnmarshalOutput(data)
	if err != nil {
		t.Fatalf("UnmarshalOutput() unexpected error: %v", err)
	}
	if decoded.Content != original.Content {
		t.Errorf("Content = %q, want %q", decoded.Content, original.Content)
	}
	if !decoded.IsFinalAnswer {
		t.Error("IsFinalAnswer lost in round trip")
	}
	if len(decoded.Sources) != 1 || decoded.Sources[0].ID != "strategy-12" {
		t.Errorf("Sources = %+v, want one document strategy-12", decoded.Sources)
	}
	if got := decoded.Sources[0].Title(); got != "Loyalty basics" {
		t.Errorf("Title() = %q, want %q", got, "Loyalty basics")
	}
}

func TestErrorPayloadRedactsQuotes(t *testing.T) {
	t.Parallel()

	payload := capability.NewErrorPayload("data_analyzer", "weekday sales",
		errors.New(`column "sales" not found`)).
		WithDetails("table `daily` is empty")

	if strings.ContainsAny(payload.Message, "\"`") {
		t.Errorf("Message %q still contains quote characters", payload.Message)
	}
	if strings.ContainsAny(payload.Details, "\"`") {
		t.Errorf("Details %q still contains quote characters", payload.Details)
	}
	if payload.Status != "error" || payload.ToolName != "data_analyzer" {
		t.Errorf("payload = %+v, want status error for data_analyzer", payload)
	}

	out := payload.Output()
	if out.IsFinalAnswer {
		t.Error("error output must not be final")
	}
	decoded := capability.ErrorPayload{}
	if err := json.Unmarshal([]byte(out.Content), &decoded); err != nil {
		t.Fatalf("error output content is not valid JSON: %v", err)
	}
	if decoded.Query != "weekday sales" {
		t.Errorf("Query = %q, want %q", decoded.Query, "weekday sales")
	}
}
