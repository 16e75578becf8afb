package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jointventure/jointventure-backend/internal/models"
	"github.com/jointventure/jointventure-backend/internal/participation"
	"gorm.io/gorm"
)

type CreateTripInput struct {
	StartLocation string                 `json:"startLocation" binding:"required"`
	EndLocation   string                 `json:"endLocation" binding:"required"`
	StartTime     time.Time              `json:"startTime" binding:"required"`
	EndTime       time.Time              `json:"endTime" binding:"required"`
	Vehicle       models.VehicleType     `json:"vehicle" binding:"required,oneof=Bus Car Bike Train Aeroplane"`
	Flexibility   models.FlexibilityType `json:"flexibility" binding:"required,oneof=Strict Flexible"`
	TravelStyle   models.TravelStyleType `json:"travelStyle" binding:"required,oneof=Budget Luxury Backpacking"`
	Purpose       models.PurposeType     `json:"purpose" binding:"required,oneof=Explore Work Adventure"`
	Visibility    models.VisibilityType  `json:"visibility" binding:"required,oneof=Public Limited"`
	MaxPeople     int                    `json:"maxPeople" binding:"required,min=2"`
	SafetyRules   string                 `json:"safetyRules"`
	Stops         []string               `json:"stops"`
}

// CreateTrip handles the creation of a new trip with its stops
func CreateTrip(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")

		var input CreateTripInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}

		if !input.EndTime.After(input.StartTime) {
			c.JSON(400, gin.H{"error": "Trip end time must be after start time"})
			return
		}

		trip := models.Trip{
			CreatorID:     userId,
			StartLocation: input.StartLocation,
			EndLocation:   input.EndLocation,
			StartTime:     input.StartTime,
			EndTime:       input.EndTime,
			Vehicle:       input.Vehicle,
			Flexibility:   input.Flexibility,
			TravelStyle:   input.TravelStyle,
			Purpose:       input.Purpose,
			Visibility:    input.Visibility,
			MaxPeople:     input.MaxPeople,
			SafetyRules:   input.SafetyRules,
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&trip).Error; err != nil {
				return err
			}
			order := 0
			for _, name := range input.Stops {
				name = strings.TrimSpace(name)
				if name == "" {
					continue
				}
				order++
				stop := models.TripStop{
					TripID:    trip.ID,
					StopName:  name,
					StopOrder: order,
				}
				if err := tx.Create(&stop).Error; err != nil {
					return err
				}
				trip.Stops = append(trip.Stops, stop)
			}
			return nil
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to create trip"})
			return
		}

		c.JSON(201, trip)
	}
}

// DiscoverTrips retrieves public trips with optional search and filters
func DiscoverTrips(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		search := c.Query("search")
		travelStyle := c.Query("travelStyle")
		startDate := c.Query("startDate")

		var trips []models.Trip
		query := db.Preload("Creator").
			Where("visibility = ?", models.VisibilityPublic).
			Order("start_time ASC")

		if search != "" {
			like := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(start_location) LIKE ? OR LOWER(end_location) LIKE ?", like, like)
		}
		if travelStyle != "" && travelStyle != "All" {
			query = query.Where("travel_style = ?", travelStyle)
		}
		if startDate != "" {
			if t, err := time.Parse("2006-01-02", startDate); err == nil {
				query = query.Where("start_time >= ?", t)
			}
		}

		if err := query.Find(&trips).Error; err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch trips"})
			return
		}

		c.JSON(200, trips)
	}
}

// GetTrip retrieves a trip with its creator, ordered stops, and the viewer's
// participation status
func GetTrip(db *gorm.DB, svc *participation.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		tripID, err := strconv.ParseUint(c.Param("tripId"), 10, 64)
		if err != nil {
			c.JSON(400, gin.H{"error": "Invalid trip id"})
			return
		}

		var trip models.Trip
		if err := db.Preload("Creator").
			Preload("Stops", func(tx *gorm.DB) *gorm.DB {
				return tx.Order("stop_order ASC")
			}).
			First(&trip, tripID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Trip not found"})
			return
		}

		state, err := svc.Status(c.Request.Context(), trip.ID, userId)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to resolve participation status"})
			return
		}

		c.JSON(200, gin.H{
			"trip":       trip,
			"joinStatus": state,
		})
	}
}

// DeleteTrip soft deletes a trip along with its stops and participants.
// Messages are left on the soft-deleted rows; the app never destroys them.
func DeleteTrip(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		tripID, ok := parseTripID(c)
		if !ok {
			return
		}

		var trip models.Trip
		if err := db.First(&trip, tripID).Error; err != nil {
			c.JSON(404, gin.H{"error": "Trip not found"})
			return
		}

		if trip.CreatorID != userId {
			c.JSON(403, gin.H{"error": "Only the host can delete this trip"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("trip_id = ?", trip.ID).Delete(&models.TripStop{}).Error; err != nil {
				return err
			}
			if err := tx.Where("trip_id = ?", trip.ID).Delete(&models.TripParticipant{}).Error; err != nil {
				return err
			}
			return tx.Delete(&trip).Error
		})
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to delete trip"})
			return
		}

		c.JSON(200, gin.H{"message": "Trip successfully deleted"})
	}
}
