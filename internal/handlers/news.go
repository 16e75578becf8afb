package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jointventure/jointventure-backend/internal/services"
)

// GetTravelNews proxies the travel news feed, cached per category
func GetTravelNews() gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.DefaultQuery("category", "All")

		articles, err := services.FetchTravelNews(c.Request.Context(), category)
		if err != nil {
			c.JSON(500, gin.H{"error": "Failed to fetch travel news"})
			return
		}

		c.JSON(200, articles)
	}
}
