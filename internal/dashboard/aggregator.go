// Package dashboard assembles the signed-in user's home view: hosted trips,
// joined trips, the next upcoming departure, and the host's request inbox.
package dashboard

import (
	"context"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jointventure/jointventure-backend/internal/models"
	"github.com/jointventure/jointventure-backend/internal/store"
)

// PendingRequest is one join request awaiting the host's decision, enriched
// with the requester's profile and a display label for the trip.
type PendingRequest struct {
	TripID       uint                     `json:"tripId"`
	UserID       uint                     `json:"userId"`
	Status       models.ParticipantStatus `json:"status"`
	Requester    models.User              `json:"requester"`
	TripLocation string                   `json:"tripLocation"`
}

type Overview struct {
	Hosted   []models.Trip    `json:"hosted"`
	Joined   []models.Trip    `json:"joined"`
	NextTrip *models.Trip     `json:"nextTrip,omitempty"`
	Requests []PendingRequest `json:"requests"`
}

type Aggregator struct {
	store store.DataStore
	now   func() time.Time
}

func NewAggregator(s store.DataStore) *Aggregator {
	return &Aggregator{store: s, now: time.Now}
}

// Overview builds the dashboard for a user. Each sub-fetch degrades to an
// empty list on error rather than failing the whole view; failures are logged
// and not retried.
func (a *Aggregator) Overview(ctx context.Context, userID uint) *Overview {
	out := &Overview{
		Hosted:   []models.Trip{},
		Joined:   []models.Trip{},
		Requests: []PendingRequest{},
	}

	hosted, err := a.store.TripsByCreator(ctx, userID)
	if err != nil {
		log.Error().Err(err).Uint("userId", userID).Msg("dashboard: failed to fetch hosted trips")
	} else {
		out.Hosted = hosted
	}

	joinedIDs, err := a.store.ApprovedTripIDs(ctx, userID)
	if err != nil {
		log.Error().Err(err).Uint("userId", userID).Msg("dashboard: failed to fetch joined trip ids")
	} else if len(joinedIDs) > 0 {
		joined, err := a.store.TripsByIDs(ctx, joinedIDs)
		if err != nil {
			log.Error().Err(err).Uint("userId", userID).Msg("dashboard: failed to fetch joined trips")
		} else {
			out.Joined = joined
		}
	}

	out.NextTrip = NextTrip(out.Hosted, out.Joined, a.now())

	if len(out.Hosted) > 0 {
		hostedIDs := make([]uint, 0, len(out.Hosted))
		locations := make(map[uint]string, len(out.Hosted))
		for _, t := range out.Hosted {
			hostedIDs = append(hostedIDs, t.ID)
			locations[t.ID] = t.StartLocation
		}
		pending, err := a.store.PendingByTrips(ctx, hostedIDs)
		if err != nil {
			log.Error().Err(err).Uint("userId", userID).Msg("dashboard: failed to fetch pending requests")
		} else {
			for _, p := range pending {
				label, ok := locations[p.TripID]
				if !ok {
					label = "Unknown Trip"
				}
				out.Requests = append(out.Requests, PendingRequest{
					TripID:       p.TripID,
					UserID:       p.UserID,
					Status:       p.Status,
					Requester:    p.User,
					TripLocation: label,
				})
			}
		}
	}

	return out
}

// NextTrip picks the earliest trip across both sets whose start time is
// strictly after now. The sort is stable so equal start times keep their
// hosted-before-joined order.
func NextTrip(hosted, joined []models.Trip, now time.Time) *models.Trip {
	merged := make([]models.Trip, 0, len(hosted)+len(joined))
	merged = append(merged, hosted...)
	merged = append(merged, joined...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].StartTime.Before(merged[j].StartTime)
	})
	for i := range merged {
		if merged[i].StartTime.After(now) {
			return &merged[i]
		}
	}
	return nil
}
