package profile

import "context"

// Store provides access to merchant profiles.
//
// Update addresses one field of the profile document by section and
// key and merges the patch into it: map patches merge recursively with
// the existing value, scalar patches replace it. Implementations
// serialize concurrent updates to the same profile.
type Store interface {
	// Get loads a profile by identifier.
	Get(ctx context.Context, id string) (*Profile, error)

	// Update merges patch into the field at section.key and persists
	// the result. It returns the updated profile.
	Update(ctx context.Context, id, section, key string, patch any) (*Profile, error)

	// List returns the identifiers of all stored profiles.
	List(ctx context.Context) ([]string, error)
}
