package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/researchcollab/research-collab-api/internal/credit"
)

// CreditHandler serves the static CRediT role catalog.
type CreditHandler struct{}

// NewCreditHandler creates a new CreditHandler.
func NewCreditHandler() *CreditHandler {
	return &CreditHandler{}
}

// ListRoles returns the full CRediT taxonomy.
func (h *CreditHandler) ListRoles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"roles": credit.Roles(),
	})
}
