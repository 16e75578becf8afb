package store

import (
	"context"
	"errors"

	"github.com/jointventure/jointventure-backend/internal/models"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate is returned when an insert violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate record")
)

// DataStore is the data-access contract consumed by the participation
// workflow and the dashboard aggregator. Handlers that only do plain CRUD
// keep working against *gorm.DB directly; the workflow goes through this
// interface so it can be exercised against an in-memory implementation.
type DataStore interface {
	// Trips
	GetTrip(ctx context.Context, id uint) (*models.Trip, error)
	TripsByCreator(ctx context.Context, creatorID uint) ([]models.Trip, error)
	TripsByIDs(ctx context.Context, ids []uint) ([]models.Trip, error)

	// Participants
	CreateParticipant(ctx context.Context, p *models.TripParticipant) error
	GetParticipant(ctx context.Context, tripID, userID uint) (*models.TripParticipant, error)
	// UpdateParticipantStatus performs a conditional status update and reports
	// whether a row transitioned. A false return with nil error means the row
	// was not in the expected `from` status (or does not exist).
	UpdateParticipantStatus(ctx context.Context, tripID, userID uint, from, to models.ParticipantStatus) (bool, error)
	ParticipantsByTripAndStatus(ctx context.Context, tripID uint, status models.ParticipantStatus) ([]models.TripParticipant, error)
	PendingByTrips(ctx context.Context, tripIDs []uint) ([]models.TripParticipant, error)
	ApprovedTripIDs(ctx context.Context, userID uint) ([]uint, error)

	// Messages
	CreateMessage(ctx context.Context, m *models.TripMessage) error
	MessagesByTrip(ctx context.Context, tripID uint) ([]models.TripMessage, error)
}
