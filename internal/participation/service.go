package participation

import (
	"context"
	"errors"
	"strings"

	"github.com/jointventure/jointventure-backend/internal/models"
	"github.com/jointventure/jointventure-backend/internal/store"
)

// Service runs the participation workflow against an injected data store.
type Service struct {
	store store.DataStore
}

func NewService(s store.DataStore) *Service {
	return &Service{store: s}
}

// Status resolves the viewer's participation state for a trip.
func (s *Service) Status(ctx context.Context, tripID, userID uint) (State, error) {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return StateNone, err
	}
	if trip.CreatorID == userID {
		return StateOwner, nil
	}
	p, err := s.store.GetParticipant(ctx, tripID, userID)
	if errors.Is(err, store.ErrNotFound) {
		return StateNone, nil
	}
	if err != nil {
		return StateNone, err
	}
	return StateFromStatus(p.Status), nil
}

// RequestJoin creates a Pending participant row for the viewer. A concurrent
// duplicate insert loses against the unique index and is reported as
// ErrAlreadyRequested, same as a stale client re-requesting.
func (s *Service) RequestJoin(ctx context.Context, tripID, userID uint) error {
	current, err := s.Status(ctx, tripID, userID)
	if err != nil {
		return err
	}
	if _, err := Transition(current, current == StateOwner, ActionRequest); err != nil {
		return err
	}
	err = s.store.CreateParticipant(ctx, &models.TripParticipant{
		TripID: tripID,
		UserID: userID,
		Status: models.ParticipantStatusPending,
	})
	if errors.Is(err, store.ErrDuplicate) {
		return ErrAlreadyRequested
	}
	return err
}

// Decide moves a Pending request to Approved or Rejected. Only the trip's
// creator may decide, and the update is conditional on the row still being
// Pending so two rapid decisions cannot both land.
func (s *Service) Decide(ctx context.Context, tripID, actorID, userID uint, approve bool) error {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if trip.CreatorID != actorID {
		return ErrNotHost
	}
	action := ActionReject
	target := models.ParticipantStatusRejected
	if approve {
		action = ActionApprove
		target = models.ParticipantStatusApproved
	}
	if _, err := Transition(StatePending, true, action); err != nil {
		return err
	}
	ok, err := s.store.UpdateParticipantStatus(ctx, tripID, userID, models.ParticipantStatusPending, target)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotPending
	}
	return nil
}

// Remove transitions an Approved member straight to Rejected. This is the
// only transition that does not originate from Pending; the member's prior
// chat messages are left untouched.
func (s *Service) Remove(ctx context.Context, tripID, actorID, userID uint) error {
	trip, err := s.store.GetTrip(ctx, tripID)
	if err != nil {
		return err
	}
	if trip.CreatorID != actorID {
		return ErrNotHost
	}
	if _, err := Transition(StateApproved, true, ActionRemove); err != nil {
		return err
	}
	ok, err := s.store.UpdateParticipantStatus(ctx, tripID, userID, models.ParticipantStatusApproved, models.ParticipantStatusRejected)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotApproved
	}
	return nil
}

// Members lists a trip's Approved participants. Gated like the chat.
func (s *Service) Members(ctx context.Context, tripID, viewerID uint) ([]models.TripParticipant, error) {
	state, err := s.Status(ctx, tripID, viewerID)
	if err != nil {
		return nil, err
	}
	if !CanChat(state) {
		return nil, ErrNotMember
	}
	return s.store.ParticipantsByTripAndStatus(ctx, tripID, models.ParticipantStatusApproved)
}

// Messages returns a trip's chat history in insertion order.
func (s *Service) Messages(ctx context.Context, tripID, viewerID uint) ([]models.TripMessage, error) {
	state, err := s.Status(ctx, tripID, viewerID)
	if err != nil {
		return nil, err
	}
	if !CanChat(state) {
		return nil, ErrNotMember
	}
	return s.store.MessagesByTrip(ctx, tripID)
}

// SendMessage appends a chat message for the host or an approved member.
func (s *Service) SendMessage(ctx context.Context, tripID, userID uint, content string) (*models.TripMessage, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, errors.New("message content is empty")
	}
	state, err := s.Status(ctx, tripID, userID)
	if err != nil {
		return nil, err
	}
	if !CanChat(state) {
		return nil, ErrNotMember
	}
	msg := &models.TripMessage{
		TripID:  tripID,
		UserID:  userID,
		Content: content,
	}
	if err := s.store.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// CanAccessChat is the gate the realtime hub consults before subscribing a
// connection to a trip's message channel.
func (s *Service) CanAccessChat(ctx context.Context, tripID, userID uint) (bool, error) {
	state, err := s.Status(ctx, tripID, userID)
	if err != nil {
		return false, err
	}
	return CanChat(state), nil
}
