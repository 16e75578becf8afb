package participation

import (
	"testing"

	"github.com/jointventure/jointventure-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current State
		isHost  bool
		action  Action
		want    State
		wantErr error
	}{
		{"first request goes pending", StateNone, false, ActionRequest, StatePending, nil},
		{"host cannot request own trip", StateOwner, true, ActionRequest, StateOwner, ErrHostCannotJoin},
		{"duplicate request while pending", StatePending, false, ActionRequest, StatePending, ErrAlreadyRequested},
		{"duplicate request after approval", StateApproved, false, ActionRequest, StateApproved, ErrAlreadyRequested},
		{"no re-request after rejection", StateRejected, false, ActionRequest, StateRejected, ErrAlreadyRequested},

		{"host approves pending", StatePending, true, ActionApprove, StateApproved, nil},
		{"host rejects pending", StatePending, true, ActionReject, StateRejected, nil},
		{"non-host cannot approve", StatePending, false, ActionApprove, StatePending, ErrNotHost},
		{"non-host cannot reject", StatePending, false, ActionReject, StatePending, ErrNotHost},
		{"cannot approve twice", StateApproved, true, ActionApprove, StateApproved, ErrNotPending},
		{"cannot reject a rejected request", StateRejected, true, ActionReject, StateRejected, ErrNotPending},
		{"cannot decide when no request exists", StateNone, true, ActionApprove, StateNone, ErrNotPending},

		{"host removes approved member", StateApproved, true, ActionRemove, StateRejected, nil},
		{"non-host cannot remove", StateApproved, false, ActionRemove, StateApproved, ErrNotHost},
		{"cannot remove a pending requester", StatePending, true, ActionRemove, StatePending, ErrNotApproved},
		{"cannot remove a non-member", StateNone, true, ActionRemove, StateNone, ErrNotApproved},

		{"unknown action", StateNone, false, Action("promote"), StateNone, ErrUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.current, tt.isHost, tt.action)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCanChat(t *testing.T) {
	t.Parallel()

	assert.True(t, CanChat(StateOwner))
	assert.True(t, CanChat(StateApproved))
	assert.False(t, CanChat(StateNone))
	assert.False(t, CanChat(StatePending))
	assert.False(t, CanChat(StateRejected))
}

func TestStateFromStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StatePending, StateFromStatus(models.ParticipantStatusPending))
	assert.Equal(t, StateApproved, StateFromStatus(models.ParticipantStatusApproved))
	assert.Equal(t, StateRejected, StateFromStatus(models.ParticipantStatusRejected))
	assert.Equal(t, StateNone, StateFromStatus(models.ParticipantStatus("bogus")))
}
