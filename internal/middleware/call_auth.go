package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/researchcollab/research-collab-api/internal/database"
	apierrors "github.com/researchcollab/research-collab-api/internal/errors"
	"github.com/researchcollab/research-collab-api/internal/models"
)

// ContextKeyCall is the gin context key holding the call loaded by
// RequireCallOwnership.
const ContextKeyCall = "research_call"

// RequireCallOwnership checks that the authenticated user is the lead author
// of the call addressed by the :slug parameter and stores the call in context.
func RequireCallOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		if slug == "" {
			apierrors.BadRequest(c, "Invalid call slug")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var call models.ResearchCall
		if err := database.GetDB().Where("slug = ?", slug).First(&call).Error; err != nil {
			apierrors.NotFound(c, "Research call not found")
			c.Abort()
			return
		}

		if call.LeadAuthorID != userID {
			apierrors.Forbidden(c, "Only the lead author can perform this action")
			c.Abort()
			return
		}

		c.Set(ContextKeyCall, call)
		c.Next()
	}
}

// GetCall retrieves the call loaded by RequireCallOwnership.
func GetCall(c *gin.Context) (models.ResearchCall, bool) {
	callInterface, exists := c.Get(ContextKeyCall)
	if !exists {
		return models.ResearchCall{}, false
	}

	call, ok := callInterface.(models.ResearchCall)
	return call, ok
}
