//go:generate go run github.com/abice/go-enum --file=$GOFILE --names --nocase

package conversation

import (
	"slices"

	"github.com/samber/oops"

	"github.com/reshetovitsme/devradar/internal/shared/errors"
)

// State is the step a chat is at within a conversation
// ENUM(idle,asking_count,asking_words,awaiting_deletion_index,awaiting_identifier,awaiting_confirmation)
type State string

// transitions lists the states reachable from each state. Staying in the
// same state (a re-prompt) is always allowed.
var transitions = map[State][]State{
	StateIdle:                  {StateAskingCount, StateAwaitingDeletionIndex, StateAwaitingIdentifier},
	StateAskingCount:           {StateAskingWords, StateIdle},
	StateAskingWords:           {StateIdle},
	StateAwaitingDeletionIndex: {StateIdle},
	StateAwaitingIdentifier:    {StateAwaitingConfirmation, StateIdle},
	StateAwaitingConfirmation:  {StateIdle},
}

// CanTransition reports whether a conversation may move from one state to another.
func CanTransition(from, to State) bool {
	return from == to || slices.Contains(transitions[from], to)
}

func checkTransition(from, to State) error {
	if !CanTransition(from, to) {
		return oops.With("from", from, "to", to).Wrap(errors.ErrSessionCorrupted)
	}
	return nil
}
