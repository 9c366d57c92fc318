package resilience_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/merchantlab/consult-go/domain/capability"
	"github.com/merchantlab/consult-go/infrastructure/resilience"
)

func TestExecuteSucceeds(t *testing.T) {
	t.Parallel()

	c := capability.New("echo").
		WithDescription("echoes the query").
		WithHandler(func(_ context.Context, input capability.Input) (capability.Output, error) {
			return capability.NewOutput(input.Query), nil
		}).
		MustBuild()

	executor := resilience.NewDefaultExecutor()
	out, err := executor.Execute(context.Background(), c, capability.Input{Query: "hello"})
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}
	if out.Content != "hello" {
		t.Errorf("Content = %q", out.Content)
	}
}

func TestExecuteRetriesTransportErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int64
	c := capability.New("flaky").
		WithDescription("fails twice then succeeds").
		WithHandler(func(_ context.Context, _ capability.Input) (capability.Output, error) {
			if calls.Add(1) < 3 {
				return capability.Output{}, errors.New("transient failure")
			}
			return capability.NewOutput("ok"), nil
		}).
		MustBuild()

	cfg := resilience.DefaultExecutorConfig()
	cfg.RetryInitialDelay = time.Millisecond
	executor := resilience.NewExecutor(cfg)

	out, err := executor.Execute(context.Background(), c, capability.Input{Query: "q"})
	if err != nil {
		t.Fatalf("Execute() unexpected error: %v", err)
	}
	if out.Content != "ok" || calls.Load() != 3 {
		t.Errorf("Content = %q after %d calls", out.Content, calls.Load())
	}
}

func TestExecuteHonorsTimeout(t *testing.T) {
	t.Parallel()

	c := capability.New("slow").
		WithDescription("sleeps past the timeout").
		WithHandler(func(ctx context.Context, _ capability.Input) (capability.Output, error) {
			select {
			case <-ctx.Done():
				return capability.Output{}, ctx.Err()
			case <-time.After(time.Second):
				return capability.NewOutput("too late"), nil
			}
		}).
		MustBuild()

	cfg := resilience.DefaultExecutorConfig()
	cfg.DefaultTimeout = 10 * time.Millisecond
	cfg.RetryMaxAttempts = 1
	executor := resilience.NewExecutor(cfg)

	if _, err := executor.Execute(context.Background(), c, capability.Input{Query: "q"}); err == nil {
		t.Error("Execute() must fail when the capability exceeds the timeout")
	}
}
