package store

import (
	"context"
	"errors"

	"github.com/jointventure/jointventure-backend/internal/models"
	"gorm.io/gorm"
)

// GormStore implements DataStore on top of a GORM Postgres connection.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) GetTrip(ctx context.Context, id uint) (*models.Trip, error) {
	var trip models.Trip
	err := s.db.WithContext(ctx).Preload("Creator").First(&trip, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &trip, nil
}

func (s *GormStore) TripsByCreator(ctx context.Context, creatorID uint) ([]models.Trip, error) {
	var trips []models.Trip
	err := s.db.WithContext(ctx).
		Preload("Creator").
		Where("creator_id = ?", creatorID).
		Order("start_time ASC").
		Find(&trips).Error
	return trips, err
}

func (s *GormStore) TripsByIDs(ctx context.Context, ids []uint) ([]models.Trip, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var trips []models.Trip
	err := s.db.WithContext(ctx).
		Preload("Creator").
		Where("id IN ?", ids).
		Order("start_time ASC").
		Find(&trips).Error
	return trips, err
}

func (s *GormStore) CreateParticipant(ctx context.Context, p *models.TripParticipant) error {
	err := s.db.WithContext(ctx).Create(p).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	return err
}

func (s *GormStore) GetParticipant(ctx context.Context, tripID, userID uint) (*models.TripParticipant, error) {
	var p models.TripParticipant
	err := s.db.WithContext(ctx).
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *GormStore) UpdateParticipantStatus(ctx context.Context, tripID, userID uint, from, to models.ParticipantStatus) (bool, error) {
	res := s.db.WithContext(ctx).
		Model(&models.TripParticipant{}).
		Where("trip_id = ? AND user_id = ? AND status = ?", tripID, userID, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) ParticipantsByTripAndStatus(ctx context.Context, tripID uint, status models.ParticipantStatus) ([]models.TripParticipant, error) {
	var participants []models.TripParticipant
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("trip_id = ? AND status = ?", tripID, status).
		Order("created_at ASC").
		Find(&participants).Error
	return participants, err
}

func (s *GormStore) PendingByTrips(ctx context.Context, tripIDs []uint) ([]models.TripParticipant, error) {
	if len(tripIDs) == 0 {
		return nil, nil
	}
	var participants []models.TripParticipant
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("trip_id IN ? AND status = ?", tripIDs, models.ParticipantStatusPending).
		Order("created_at ASC").
		Find(&participants).Error
	return participants, err
}

func (s *GormStore) ApprovedTripIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := s.db.WithContext(ctx).
		Model(&models.TripParticipant{}).
		Where("user_id = ? AND status = ?", userID, models.ParticipantStatusApproved).
		Pluck("trip_id", &ids).Error
	return ids, err
}

func (s *GormStore) CreateMessage(ctx context.Context, m *models.TripMessage) error {
	return s.db.WithContext(ctx).Create(m).Error
}

func (s *GormStore) MessagesByTrip(ctx context.Context, tripID uint) ([]models.TripMessage, error) {
	var messages []models.TripMessage
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("trip_id = ?", tripID).
		Order("created_at ASC").
		Find(&messages).Error
	return messages, err
}
