package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jointventure/jointventure-backend/internal/dashboard"
)

// GetDashboard returns the signed-in user's hosted and joined trips, next
// upcoming departure, and pending request inbox
func GetDashboard(agg *dashboard.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		userId := c.GetUint("userId")
		c.JSON(200, agg.Overview(c.Request.Context(), userId))
	}
}
