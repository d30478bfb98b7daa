package middleware

import (
	"net/http"

	"github.com/careconnect/careconnect-api/internal/constants"
	"github.com/careconnect/careconnect-api/internal/database"
	"github.com/careconnect/careconnect-api/internal/models"
	"github.com/gin-gonic/gin"
)

// RequireMember checks that the authenticated user has a member record
func RequireMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		var member models.Member
		if err := database.GetDB().First(&member, userID).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only members can perform this action",
			})
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyMember, member)
		c.Next()
	}
}

// RequireCaregiver checks that the authenticated user has a caregiver record
func RequireCaregiver() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		var caregiver models.Caregiver
		if err := database.GetDB().First(&caregiver, userID).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Only caregivers can perform this action",
			})
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyCaregiver, caregiver)
		c.Next()
	}
}
