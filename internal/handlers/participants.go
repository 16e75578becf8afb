package handlers

import (
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jointventure/jointventure-backend/internal/models"
	"github.com/jointventure/jointventure-backend/internal/participation"
	"github.com/jointventure/jointventure-backend/internal/services"
	"github.com/jointventure/jointventure-backend/internal/store"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

func parseTripID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("tripId"), 10, 64)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid trip id"})
		return 0, false
	}
	return uint(id), true
}

// RequestJoin creates a pending join request for the signed-in user
func RequestJoin(db *gorm.DB, svc *participation.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		tripID, ok := parseTripID(c)
		if !ok {
			return
		}

		err := svc.RequestJoin(c.Request.Context(), tripID, userId)
		switch {
		case err == nil:
		case errors.Is(err, store.ErrNotFound):
			c.JSON(404, gin.H{"error": "Trip not found"})
			return
		case errors.Is(err, participation.ErrHostCannotJoin):
			c.JSON(400, gin.H{"error": "You are the host of this trip"})
			return
		case errors.Is(err, participation.ErrAlreadyRequested):
			c.JSON(409, gin.H{"error": "You have already requested to join this trip"})
			return
		default:
			c.JSON(500, gin.H{"error": "Failed to send join request"})
			return
		}

		// Push a heads-up to the host. Best effort, off the request path.
		go func() {
			ctx := context.Background()
			var trip models.Trip
			if err := db.Preload("Creator").First(&trip, tripID).Error; err != nil {
				return
			}
			var requester models.User
			if err := db.First(&requester, userId).Error; err != nil {
				return
			}
			if err := services.SendJoinRequestNotification(ctx, trip.Creator.FCMToken, requester.FullName, trip.StartLocation, trip.ID); err != nil {
				log.Error().Err(err).Uint("tripId", trip.ID).Msg("failed to send join request notification")
			}
		}()

		c.JSON(201, gin.H{
			"message": "Request sent! The host will review your request.",
			"status":  models.ParticipantStatusPending,
		})
	}
}

// DecideRequest lets the host approve or reject a pending join request
func DecideRequest(db *gorm.DB, svc *participation.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetUint("userId")
		tripID, ok := parseTripID(c)
		if !ok {
			return
		}
		targetID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid user id"})
			return
		}

		var input struct {
			Status string `json:"status" binding:"required,oneof=Approved Rejected"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		approve := input.Status == string(models.ParticipantStatusApproved)

		err = svc.Decide(c.Request.Context(), tripID, actorID, uint(targetID), approve)
		switch {
		case err == nil:
		case errors.Is(err, store.ErrNotFound):
			c.JSON(404, gin.H{"error": "Trip not found"})
			return
		case errors.Is(err, participation.ErrNotHost):
			c.JSON(403, gin.H{"error": "Only the trip host may decide requests"})
			return
		case errors.Is(err, participation.ErrNotPending):
			c.JSON(409, gin.H{"error": "Request is no longer pending"})
			return
		default:
			c.JSON(500, gin.H{"error": "Failed to update request"})
			return
		}

		go func() {
			ctx := context.Background()
			var trip models.Trip
			if err := db.First(&trip, tripID).Error; err != nil {
				return
			}
			var requester models.User
			if err := db.First(&requester, uint(targetID)).Error; err != nil {
				return
			}
			if err := services.SendDecisionNotification(ctx, requester.FCMToken, trip.StartLocation, trip.ID, approve); err != nil {
				log.Error().Err(err).Uint("tripId", trip.ID).Msg("failed to send decision notification")
			}
		}()

		c.JSON(200, gin.H{"status": input.Status})
	}
}

// GetMembers lists a trip's approved participants. Gated like the chat.
func GetMembers(svc *participation.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		tripID, ok := parseTripID(c)
		if !ok {
			return
		}

		members, err := svc.Members(c.Request.Context(), tripID, userId)
		switch {
		case err == nil:
		case errors.Is(err, store.ErrNotFound):
			c.JSON(404, gin.H{"error": "Trip not found"})
			return
		case errors.Is(err, participation.ErrNotMember):
			c.JSON(403, gin.H{"error": "Members are only visible to the host and approved members"})
			return
		default:
			c.JSON(500, gin.H{"error": "Failed to fetch members"})
			return
		}

		c.JSON(200, members)
	}
}

// RemoveParticipant lets the host remove an approved member from the trip.
// The member's chat subscription is revoked; their messages stay.
func RemoveParticipant(svc *participation.Service, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetUint("userId")
		tripID, ok := parseTripID(c)
		if !ok {
			return
		}
		targetID, err := strconv.ParseUint(c.Param("userId"), 10, 64)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid user id"})
			return
		}

		err = svc.Remove(c.Request.Context(), tripID, actorID, uint(targetID))
		switch {
		case err == nil:
		case errors.Is(err, store.ErrNotFound):
			c.JSON(404, gin.H{"error": "Trip not found"})
			return
		case errors.Is(err, participation.ErrNotHost):
			c.JSON(403, gin.H{"error": "Only the trip host may remove members"})
			return
		case errors.Is(err, participation.ErrNotApproved):
			c.JSON(409, gin.H{"error": "User is not an approved member"})
			return
		default:
			c.JSON(500, gin.H{"error": "Failed to remove member"})
			return
		}

		hub.RemoveUserFromTrip(tripID, uint(targetID))

		c.JSON(200, gin.H{"message": "Member removed"})
	}
}
