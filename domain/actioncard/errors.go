package actioncard

import "errors"

var (
	// ErrInvalidResponse indicates model output that decodes to
	// neither a card nor tool calls.
	ErrInvalidResponse = errors.New("invalid action card response")

	// ErrNoRecommendations indicates a card with an empty
	// recommendation list.
	ErrNoRecommendations = errors.New("action card has no recommendations")

	// ErrIncompleteCard indicates a recommendation missing required
	// fields.
	ErrIncompleteCard = errors.New("incomplete action card")

	// ErrTurnsExhausted indicates the negotiation hit its turn bound
	// without producing a valid card.
	ErrTurnsExhausted = errors.New("action card negotiation turns exhausted")
)
