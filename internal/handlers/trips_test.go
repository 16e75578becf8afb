package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func tripIDContext(t *testing.T, tripID string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodDelete, "/api/trips/"+url.PathEscape(tripID), nil)
	c.Params = gin.Params{{Key: "tripId", Value: tripID}}
	c.Set("userId", uint(1))
	return c, w
}

func TestParseTripID(t *testing.T) {
	t.Run("numeric id", func(t *testing.T) {
		c, _ := tripIDContext(t, "42")
		id, ok := parseTripID(c)
		assert.True(t, ok)
		assert.Equal(t, uint(42), id)
	})

	t.Run("non-numeric id is rejected", func(t *testing.T) {
		c, w := tripIDContext(t, "1 OR deleted_at IS NULL")
		_, ok := parseTripID(c)
		assert.False(t, ok)
		assert.Equal(t, 400, w.Code)
	})
}

// The id must be validated before it reaches the database; with a nil db a
// regression here would panic instead of returning 400.
func TestDeleteTripRejectsInvalidID(t *testing.T) {
	c, w := tripIDContext(t, "not-a-number")

	DeleteTrip(nil)(c)

	assert.Equal(t, 400, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid trip id")
}
