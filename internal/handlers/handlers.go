package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID extracts the authenticated user's ID from the gin context.
// The auth middleware stores the JWT subject claim under "userID".
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	raw, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return primitive.NilObjectID, false
	}

	hex, ok := raw.(string)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return primitive.NilObjectID, false
	}

	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token subject"})
		return primitive.NilObjectID, false
	}

	return id, true
}
