package participation_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jointventure/jointventure-backend/internal/models"
	"github.com/jointventure/jointventure-backend/internal/participation"
	"github.com/jointventure/jointventure-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	store *store.MemoryStore
	svc   *participation.Service
	host  models.User
	guest models.User
	trip  models.Trip
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := store.NewMemoryStore()
	host := s.SeedUser(models.User{Email: "host@example.com", FullName: "Hana Host"})
	guest := s.SeedUser(models.User{Email: "guest@example.com", FullName: "Gary Guest"})
	trip := s.SeedTrip(models.Trip{
		CreatorID:     host.ID,
		StartLocation: "Accra",
		EndLocation:   "Cape Coast",
		StartTime:     time.Now().Add(48 * time.Hour),
		EndTime:       time.Now().Add(72 * time.Hour),
		Visibility:    models.VisibilityPublic,
	})
	return &fixture{
		store: s,
		svc:   participation.NewService(s),
		host:  host,
		guest: guest,
		trip:  trip,
	}
}

func TestStatus(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	t.Run("owner", func(t *testing.T) {
		state, err := f.svc.Status(ctx, f.trip.ID, f.host.ID)
		require.NoError(t, err)
		assert.Equal(t, participation.StateOwner, state)
	})

	t.Run("stranger", func(t *testing.T) {
		state, err := f.svc.Status(ctx, f.trip.ID, f.guest.ID)
		require.NoError(t, err)
		assert.Equal(t, participation.StateNone, state)
	})

	t.Run("unknown trip", func(t *testing.T) {
		_, err := f.svc.Status(ctx, 999, f.guest.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestRequestJoin(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.RequestJoin(ctx, f.trip.ID, f.guest.ID))

	state, err := f.svc.Status(ctx, f.trip.ID, f.guest.ID)
	require.NoError(t, err)
	assert.Equal(t, participation.StatePending, state)

	t.Run("second request is rejected", func(t *testing.T) {
		err := f.svc.RequestJoin(ctx, f.trip.ID, f.guest.ID)
		assert.ErrorIs(t, err, participation.ErrAlreadyRequested)
	})

	t.Run("host cannot join own trip", func(t *testing.T) {
		err := f.svc.RequestJoin(ctx, f.trip.ID, f.host.ID)
		assert.ErrorIs(t, err, participation.ErrHostCannotJoin)
	})

	t.Run("unknown trip", func(t *testing.T) {
		err := f.svc.RequestJoin(ctx, 999, f.guest.ID)
		assert.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestRequestJoinLosesInsertRace(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	// A concurrent request slipped in between the status read and the insert.
	require.NoError(t, f.store.CreateParticipant(ctx, &models.TripParticipant{
		TripID: f.trip.ID,
		UserID: f.guest.ID,
		Status: models.ParticipantStatusPending,
	}))

	err := f.svc.RequestJoin(ctx, f.trip.ID, f.guest.ID)
	assert.ErrorIs(t, err, participation.ErrAlreadyRequested)
}

func TestDecide(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("approve", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.svc.RequestJoin(ctx, f.trip.ID, f.guest.ID))

		require.NoError(t, f.svc.Decide(ctx, f.trip.ID, f.host.ID, f.guest.ID, true))

		state, err := f.svc.Status(ctx, f.trip.ID, f.guest.ID)
		require.NoError(t, err)
		assert.Equal(t, participation.StateApproved, state)
	})

	t.Run("reject", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.svc.RequestJoin(ctx, f.trip.ID, f.guest.ID))

		require.NoError(t, f.svc.Decide(ctx, f.trip.ID, f.host.ID, f.guest.ID, false))

		state, err := f.svc.Status(ctx, f.trip.ID, f.guest.ID)
		require.NoError(t, err)
		assert.Equal(t, participation.StateRejected, state)
	})

	t.Run("only the host decides", func(t *testing.T) {
		f := newFixture(t)
		other := f.store.SeedUser(models.User{Email: "other@example.com"})
		require.NoError(t, f.svc.RequestJoin(ctx, f.trip.ID, f.guest.ID))

		err := f.svc.Decide(ctx, f.trip.ID, other.ID, f.guest.ID, true)
		assert.ErrorIs(t, err, participation.ErrNotHost)
	})

	t.Run("second decision does not land", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.svc.RequestJoin(ctx, f.trip.ID, f.guest.ID))
		require.NoError(t, f.svc.Decide(ctx, f.trip.ID, f.host.ID, f.guest.ID, true))

		err := f.svc.Decide(ctx, f.trip.ID, f.host.ID, f.guest.ID, false)
		assert.ErrorIs(t, err, participation.ErrNotPending)

		state, err := f.svc.Status(ctx, f.trip.ID, f.guest.ID)
		require.NoError(t, err)
		assert.Equal(t, participation.StateApproved, state)
	})

	t.Run("no request to decide", func(t *testing.T) {
		f := newFixture(t)
		err := f.svc.Decide(ctx, f.trip.ID, f.host.ID, f.guest.ID, true)
		assert.ErrorIs(t, err, participation.ErrNotPending)
	})
}

func TestRemove(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("approved member is removed", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.svc.RequestJoin(ctx, f.trip.ID, f.guest.ID))
		require.NoError(t, f.svc.Decide(ctx, f.trip.ID, f.host.ID, f.guest.ID, true))

		require.NoError(t, f.svc.Remove(ctx, f.trip.ID, f.host.ID, f.guest.ID))

		state, err := f.svc.Status(ctx, f.trip.ID, f.guest.ID)
		require.NoError(t, err)
		assert.Equal(t, participation.StateRejected, state)
	})

	t.Run("pending requester cannot be removed", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.svc.RequestJoin(ctx, f.trip.ID, f.guest.ID))

		err := f.svc.Remove(ctx, f.trip.ID, f.host.ID, f.guest.ID)
		assert.ErrorIs(t, err, participation.ErrNotApproved)
	})

	t.Run("only the host removes", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.svc.RequestJoin(ctx, f.trip.ID, f.guest.ID))
		require.NoError(t, f.svc.Decide(ctx, f.trip.ID, f.host.ID, f.guest.ID, true))

		err := f.svc.Remove(ctx, f.trip.ID, f.guest.ID, f.guest.ID)
		assert.ErrorIs(t, err, participation.ErrNotHost)
	})
}

func TestChatGate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("host always has access", func(t *testing.T) {
		f := newFixture(t)
		ok, err := f.svc.CanAccessChat(ctx, f.trip.ID, f.host.ID)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("pending requester is locked out", func(t *testing.T) {
		f := newFixture(t)
		require.NoError(t, f.svc.RequestJoin(ctx, f.trip.ID, f.guest.ID))

		ok, err := f.svc.CanAccessChat(ctx, f.trip.ID, f.guest.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		_, err = f.svc.Messages(ctx, f.trip.ID, f.guest.ID)
		assert.ErrorIs(t, err, participation.ErrNotMember)

		_, err = f.svc.Members(ctx, f.trip.ID, f.guest.ID)
		assert.ErrorIs(t, err, participation.ErrNotMember)

		_, err = f.svc.SendMessage(ctx, f.trip.ID, f.guest.ID, "let me in")
		assert.ErrorIs(t, err, participation.ErrNotMember)
	})

	t.Run("store error propagates", func(t *testing.T) {
		f := newFixture(t)
		boom := errors.New("connection reset")
		f.store.ParticipantErr = boom

		_, err := f.svc.CanAccessChat(ctx, f.trip.ID, f.guest.ID)
		assert.ErrorIs(t, err, boom)
	})
}

func TestSendMessageValidation(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.SendMessage(ctx, f.trip.ID, f.host.ID, "   ")
	assert.Error(t, err)
}

func TestMessagesRefetchIsStable(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.RequestJoin(ctx, f.trip.ID, f.guest.ID))
	require.NoError(t, f.svc.Decide(ctx, f.trip.ID, f.host.ID, f.guest.ID, true))

	_, err := f.svc.SendMessage(ctx, f.trip.ID, f.host.ID, "welcome aboard")
	require.NoError(t, err)
	_, err = f.svc.SendMessage(ctx, f.trip.ID, f.guest.ID, "glad to be here")
	require.NoError(t, err)
	_, err = f.svc.SendMessage(ctx, f.trip.ID, f.host.ID, "we leave at dawn")
	require.NoError(t, err)

	// Clients refetch the full list on every change notification; with no
	// writes in between, two fetches must return identical sequences.
	first, err := f.svc.Messages(ctx, f.trip.ID, f.guest.ID)
	require.NoError(t, err)
	second, err := f.svc.Messages(ctx, f.trip.ID, f.guest.ID)
	require.NoError(t, err)

	require.Len(t, first, 3)
	assert.Equal(t, first, second)
	assert.Equal(t, "welcome aboard", first[0].Content)
	assert.Equal(t, "glad to be here", first[1].Content)
	assert.Equal(t, "we leave at dawn", first[2].Content)
}

// Full lifecycle: request, approve, chat, remove. A removed member loses chat
// access but their messages survive.
func TestMembershipLifecycle(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.RequestJoin(ctx, f.trip.ID, f.guest.ID))
	require.NoError(t, f.svc.Decide(ctx, f.trip.ID, f.host.ID, f.guest.ID, true))

	msg, err := f.svc.SendMessage(ctx, f.trip.ID, f.guest.ID, "hello everyone!")
	require.NoError(t, err)
	assert.Equal(t, "hello everyone!", msg.Content)

	members, err := f.svc.Members(ctx, f.trip.ID, f.host.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, f.guest.ID, members[0].UserID)
	assert.Equal(t, f.guest.FullName, members[0].User.FullName)

	require.NoError(t, f.svc.Remove(ctx, f.trip.ID, f.host.ID, f.guest.ID))

	_, err = f.svc.Messages(ctx, f.trip.ID, f.guest.ID)
	assert.ErrorIs(t, err, participation.ErrNotMember)

	members, err = f.svc.Members(ctx, f.trip.ID, f.host.ID)
	require.NoError(t, err)
	assert.Empty(t, members)

	messages, err := f.svc.Messages(ctx, f.trip.ID, f.host.ID)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hello everyone!", messages[0].Content)
}
