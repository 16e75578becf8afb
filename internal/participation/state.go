// Package participation owns the trip-membership workflow: the join request
// state machine, who may move a participant between states, and which
// capabilities (chat, member management) each state unlocks.
package participation

import (
	"errors"

	"github.com/jointventure/jointventure-backend/internal/models"
)

// State is a viewer's relationship to a trip. The three persisted states map
// onto the trip_participants status column; StateNone means no row exists and
// StateOwner is the pseudo-state of the trip's creator, who never holds a row.
type State string

const (
	StateNone     State = "none"
	StatePending  State = "Pending"
	StateApproved State = "Approved"
	StateRejected State = "Rejected"
	StateOwner    State = "owner"
)

type Action string

const (
	ActionRequest Action = "request"
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
	ActionRemove  Action = "remove"
)

var (
	ErrHostCannotJoin   = errors.New("trip host cannot request to join their own trip")
	ErrAlreadyRequested = errors.New("join request already exists for this trip")
	ErrNotHost          = errors.New("only the trip host may manage participants")
	ErrNotPending       = errors.New("participant is not awaiting a decision")
	ErrNotApproved      = errors.New("participant is not an approved member")
	ErrNotMember        = errors.New("chat is only available to the host and approved members")
	ErrUnknownAction    = errors.New("unknown participation action")
)

// Transition is the single place participant status changes are decided.
// It returns the state the participant moves to, or an error when the action
// is not allowed from the current state or for the acting role.
//
// Approved and Rejected are terminal for the requester: there is no path from
// Rejected back to a re-requestable state, and the only transition not rooted
// in Pending is the host removing an Approved member (Approved -> Rejected).
func Transition(current State, actorIsHost bool, action Action) (State, error) {
	switch action {
	case ActionRequest:
		if actorIsHost {
			return current, ErrHostCannotJoin
		}
		if current != StateNone {
			return current, ErrAlreadyRequested
		}
		return StatePending, nil

	case ActionApprove, ActionReject:
		if !actorIsHost {
			return current, ErrNotHost
		}
		if current != StatePending {
			return current, ErrNotPending
		}
		if action == ActionApprove {
			return StateApproved, nil
		}
		return StateRejected, nil

	case ActionRemove:
		if !actorIsHost {
			return current, ErrNotHost
		}
		if current != StateApproved {
			return current, ErrNotApproved
		}
		return StateRejected, nil
	}
	return current, ErrUnknownAction
}

// CanChat reports whether a state unlocks the trip chat and member list.
func CanChat(s State) bool {
	return s == StateOwner || s == StateApproved
}

// StateFromStatus maps a stored participant status to a workflow state.
func StateFromStatus(status models.ParticipantStatus) State {
	switch status {
	case models.ParticipantStatusPending:
		return StatePending
	case models.ParticipantStatusApproved:
		return StateApproved
	case models.ParticipantStatusRejected:
		return StateRejected
	}
	return StateNone
}
