// Package capability defines the unit of work the executor dispatches:
// a named consulting capability with context-injection metadata, a
// uniform output envelope, and a structured error payload that crosses
// the capability boundary as data.
package capability

import (
	"context"

	"github.com/merchantlab/consult-go/domain/conversation"
	"github.com/merchantlab/consult-go/domain/profile"
)

// Input carries the query plus the ambient context the executor
// injected according to the capability's metadata. Fields whose
// injection flag is off are left zero.
type Input struct {
	Query   string
	StoreID string
	Profile *profile.Profile
	History []conversation.Message
}

// Capability is a named unit of consulting work.
type Capability interface {
	// Name returns the unique capability name used in plans.
	Name() string

	// Description returns the one-line summary shown to the planner.
	Description() string

	// Metadata returns the context-injection contract.
	Metadata() Metadata

	// Execute runs the capability. Operational failures are reported
	// inside the Output envelope; a non-nil error is reserved for
	// context cancellation and programming faults.
	Execute(ctx context.Context, input Input) (Output, error)
}

// Handler is the function signature a built capability wraps.
type Handler func(ctx context.Context, input Input) (Output, error)

type funcCapability struct {
	meta    Metadata
	handler Handler
}

func (c *funcCapability) Name() string        { return c.meta.Name }
func (c *funcCapability) Description() string { return c.meta.Description }
func (c *funcCapability) Metadata() Metadata  { return c.meta }

func (c *funcCapability) Execute(ctx context.Context, input Input) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	return c.handler(ctx, input)
}
