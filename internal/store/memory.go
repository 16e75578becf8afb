package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jointventure/jointventure-backend/internal/models"
)

// MemoryStore is an in-memory DataStore used by tests in place of Postgres.
// It mirrors the constraints the database enforces: the (trip_id, user_id)
// uniqueness of participants and the ordering contracts of the list methods.
type MemoryStore struct {
	mu           sync.Mutex
	nextID       uint
	users        map[uint]models.User
	trips        map[uint]models.Trip
	participants []*models.TripParticipant
	messages     []*models.TripMessage

	// Injectable failures, one per entity group.
	TripErr        error
	ParticipantErr error
	MessageErr     error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextID: 1,
		users:  make(map[uint]models.User),
		trips:  make(map[uint]models.Trip),
	}
}

func (s *MemoryStore) id() uint {
	id := s.nextID
	s.nextID++
	return id
}

// SeedUser registers a user so participant and message lookups can resolve it.
func (s *MemoryStore) SeedUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.id()
	}
	s.users[u.ID] = u
	return u
}

// SeedTrip stores a trip and returns it with an assigned ID.
func (s *MemoryStore) SeedTrip(t models.Trip) models.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.ID == 0 {
		t.ID = s.id()
	}
	if creator, ok := s.users[t.CreatorID]; ok {
		t.Creator = creator
	}
	s.trips[t.ID] = t
	return t
}

func (s *MemoryStore) GetTrip(ctx context.Context, id uint) (*models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.TripErr != nil {
		return nil, s.TripErr
	}
	trip, ok := s.trips[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &trip, nil
}

func (s *MemoryStore) TripsByCreator(ctx context.Context, creatorID uint) ([]models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.TripErr != nil {
		return nil, s.TripErr
	}
	var trips []models.Trip
	for _, t := range s.trips {
		if t.CreatorID == creatorID {
			trips = append(trips, t)
		}
	}
	sortTripsByStart(trips)
	return trips, nil
}

func (s *MemoryStore) TripsByIDs(ctx context.Context, ids []uint) ([]models.Trip, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.TripErr != nil {
		return nil, s.TripErr
	}
	var trips []models.Trip
	for _, id := range ids {
		if t, ok := s.trips[id]; ok {
			trips = append(trips, t)
		}
	}
	sortTripsByStart(trips)
	return trips, nil
}

func (s *MemoryStore) CreateParticipant(ctx context.Context, p *models.TripParticipant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ParticipantErr != nil {
		return s.ParticipantErr
	}
	for _, existing := range s.participants {
		if existing.TripID == p.TripID && existing.UserID == p.UserID {
			return ErrDuplicate
		}
	}
	p.ID = s.id()
	p.CreatedAt = time.Now()
	p.User = s.users[p.UserID]
	copied := *p
	s.participants = append(s.participants, &copied)
	return nil
}

func (s *MemoryStore) GetParticipant(ctx context.Context, tripID, userID uint) (*models.TripParticipant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ParticipantErr != nil {
		return nil, s.ParticipantErr
	}
	for _, p := range s.participants {
		if p.TripID == tripID && p.UserID == userID {
			copied := *p
			return &copied, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) UpdateParticipantStatus(ctx context.Context, tripID, userID uint, from, to models.ParticipantStatus) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ParticipantErr != nil {
		return false, s.ParticipantErr
	}
	for _, p := range s.participants {
		if p.TripID == tripID && p.UserID == userID && p.Status == from {
			p.Status = to
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) ParticipantsByTripAndStatus(ctx context.Context, tripID uint, status models.ParticipantStatus) ([]models.TripParticipant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ParticipantErr != nil {
		return nil, s.ParticipantErr
	}
	var out []models.TripParticipant
	for _, p := range s.participants {
		if p.TripID == tripID && p.Status == status {
			copied := *p
			copied.User = s.users[p.UserID]
			out = append(out, copied)
		}
	}
	return out, nil
}

func (s *MemoryStore) PendingByTrips(ctx context.Context, tripIDs []uint) ([]models.TripParticipant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ParticipantErr != nil {
		return nil, s.ParticipantErr
	}
	wanted := make(map[uint]bool, len(tripIDs))
	for _, id := range tripIDs {
		wanted[id] = true
	}
	var out []models.TripParticipant
	for _, p := range s.participants {
		if wanted[p.TripID] && p.Status == models.ParticipantStatusPending {
			copied := *p
			copied.User = s.users[p.UserID]
			out = append(out, copied)
		}
	}
	return out, nil
}

func (s *MemoryStore) ApprovedTripIDs(ctx context.Context, userID uint) ([]uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ParticipantErr != nil {
		return nil, s.ParticipantErr
	}
	var ids []uint
	for _, p := range s.participants {
		if p.UserID == userID && p.Status == models.ParticipantStatusApproved {
			ids = append(ids, p.TripID)
		}
	}
	return ids, nil
}

func (s *MemoryStore) CreateMessage(ctx context.Context, m *models.TripMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.MessageErr != nil {
		return s.MessageErr
	}
	m.ID = s.id()
	m.CreatedAt = time.Now()
	m.User = s.users[m.UserID]
	copied := *m
	s.messages = append(s.messages, &copied)
	return nil
}

func (s *MemoryStore) MessagesByTrip(ctx context.Context, tripID uint) ([]models.TripMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.MessageErr != nil {
		return nil, s.MessageErr
	}
	var out []models.TripMessage
	for _, m := range s.messages {
		if m.TripID == tripID {
			copied := *m
			copied.User = s.users[m.UserID]
			out = append(out, copied)
		}
	}
	return out, nil
}

func sortTripsByStart(trips []models.Trip) {
	sort.SliceStable(trips, func(i, j int) bool {
		return trips[i].StartTime.Before(trips[j].StartTime)
	})
}
