package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/jointventure/jointventure-backend/internal/participation"
	"github.com/jointventure/jointventure-backend/internal/services"
	"github.com/jointventure/jointventure-backend/internal/store"
)

// GetMessages returns a trip's full chat history in insertion order. Clients
// call this both on open and on every change-feed notification.
func GetMessages(svc *participation.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		tripID, ok := parseTripID(c)
		if !ok {
			return
		}

		messages, err := svc.Messages(c.Request.Context(), tripID, userId)
		switch {
		case err == nil:
		case errors.Is(err, store.ErrNotFound):
			c.JSON(404, gin.H{"error": "Trip not found"})
			return
		case errors.Is(err, participation.ErrNotMember):
			c.JSON(403, gin.H{"error": "Chat is only available to the host and approved members"})
			return
		default:
			c.JSON(500, gin.H{"error": "Failed to fetch messages"})
			return
		}

		c.JSON(200, messages)
	}
}

// SendMessage appends a chat message and notifies the trip's subscribers
func SendMessage(svc *participation.Service, hub *services.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		tripID, ok := parseTripID(c)
		if !ok {
			return
		}

		var input struct {
			Content string `json:"content" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		msg, err := svc.SendMessage(c.Request.Context(), tripID, userId, input.Content)
		switch {
		case err == nil:
		case errors.Is(err, store.ErrNotFound):
			c.JSON(404, gin.H{"error": "Trip not found"})
			return
		case errors.Is(err, participation.ErrNotMember):
			c.JSON(403, gin.H{"error": "Chat is only available to the host and approved members"})
			return
		default:
			c.JSON(500, gin.H{"error": "Failed to send message"})
			return
		}

		hub.NotifyMessageInserted(tripID)

		c.JSON(201, msg)
	}
}
