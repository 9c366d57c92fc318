package capability

import "context"

// Registry stores the capability set the executor dispatches against.
// Implementations must be safe for concurrent use.
type Registry interface {
	// Register adds a capability. Registering a name twice fails with
	// ErrAlreadyRegistered.
	Register(ctx context.Context, c Capability) error

	// Get returns a capability by name, or ErrNotFound.
	Get(ctx context.Context, name string) (Capability, error)

	// List returns every registered capability.
	List(ctx context.Context) ([]Capability, error)

	// Names returns the registered capability names sorted
	// alphabetically.
	Names(ctx context.Context) ([]string, error)
}
