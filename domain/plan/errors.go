package plan

import "errors"

var (
	// ErrInvalidPlan indicates the planner output was not a valid JSON
	// array of steps.
	ErrInvalidPlan = errors.New("invalid plan payload")

	// ErrEmptyPlan indicates the planner produced an empty array.
	ErrEmptyPlan = errors.New("plan contains no steps")

	// ErrMissingToolName indicates a step without a capability name.
	ErrMissingToolName = errors.New("plan step missing tool name")

	// ErrMissingQuery indicates a step without a query.
	ErrMissingQuery = errors.New("plan step missing query")
)
