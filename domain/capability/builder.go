package capability

import (
	"fmt"
	"strings"
)

// Builder constructs capabilities fluently. Use New to start a chain
// and Build (or MustBuild) to finish it.
type Builder struct {
	meta    Metadata
	handler Handler
}

// New starts building a capability with the given name.
func New(name string) *Builder {
	return &Builder{meta: Metadata{Name: name}}
}

// WithDescription sets the planner-facing summary.
func (b *Builder) WithDescription(desc string) *Builder {
	b.meta.Description = desc
	return b
}

// WithProfile requests profile injection.
func (b *Builder) WithProfile() *Builder {
	b.meta.NeedsProfile = true
	return b
}

// WithStoreID requests store identifier injection.
func (b *Builder) WithStoreID() *Builder {
	b.meta.NeedsStoreID = true
	return b
}

// WithHistory requests conversation history injection.
func (b *Builder) WithHistory() *Builder {
	b.meta.NeedsHistory = true
	return b
}

// WithUserQuery requests the user's original question as the query.
func (b *Builder) WithUserQuery() *Builder {
	b.meta.NeedsUserQuery = true
	return b
}

// WithHandler sets the execution function.
func (b *Builder) WithHandler(h Handler) *Builder {
	b.handler = h
	return b
}

// Build validates the chain and returns the capability.
func (b *Builder) Build() (Capability, error) {
	if strings.TrimSpace(b.meta.Name) == "" {
		return nil, fmt.Errorf("%w: name is empty", ErrInvalidCapability)
	}
	if strings.TrimSpace(b.meta.Description) == "" {
		return nil, fmt.Errorf("%w: %q has no description", ErrInvalidCapability, b.meta.Name)
	}
	if b.handler == nil {
		return nil, fmt.Errorf("%w: %q has no handler", ErrInvalidCapability, b.meta.Name)
	}
	return &funcCapability{meta: b.meta, handler: b.handler}, nil
}

// MustBuild is Build that panics on error. Intended for static
// capability sets assembled at startup.
func (b *Builder) MustBuild() Capability {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}
