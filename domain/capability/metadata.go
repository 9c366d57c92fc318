package capability

// Metadata declares a capability's identity and the ambient inputs the
// executor must inject before invoking it. Injection is opt-in: a
// capability receives only what its metadata asks for.
type Metadata struct {
	// Name is the unique capability name referenced by plan steps.
	Name string

	// Description is the one-line summary listed in planner prompts.
	Description string

	// NeedsProfile requests the resolved merchant profile.
	NeedsProfile bool

	// NeedsStoreID requests the active store identifier.
	NeedsStoreID bool

	// NeedsHistory requests the recent conversation messages.
	NeedsHistory bool

	// NeedsUserQuery requests the user's original question as the
	// query, overriding whatever query the plan step carries.
	NeedsUserQuery bool
}
