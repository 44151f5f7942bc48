package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/researchcollab/research-collab-api/internal/constants"
	"github.com/researchcollab/research-collab-api/internal/dto"
	apierrors "github.com/researchcollab/research-collab-api/internal/errors"
	"github.com/researchcollab/research-collab-api/internal/middleware"
	"github.com/researchcollab/research-collab-api/internal/services"
	"github.com/researchcollab/research-collab-api/internal/utils"
)

// AuthHandler coordinates Discord OAuth login and session handling.
type AuthHandler struct {
	authService  *services.AuthService
	dashboardURL string
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, dashboardURL string) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		dashboardURL: dashboardURL,
	}
}

// DiscordLogin redirects the browser to the Discord authorization page.
func (h *AuthHandler) DiscordLogin(c *gin.Context) {
	state, err := utils.GenerateOAuthState()
	if err != nil {
		apierrors.InternalError(c, "Failed to generate OAuth state")
		return
	}

	authorizeURL, err := h.authService.AuthorizeURL(state)
	if err != nil {
		apierrors.ConfigurationError(c, "Discord OAuth configuration is missing")
		return
	}

	session := sessions.Default(c)
	session.Set(constants.SessionKeyOAuthState, state)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.Redirect(http.StatusFound, authorizeURL)
}

// DiscordCallback handles the OAuth redirect: verifies the state, exchanges
// the code, establishes the session and redirects to the dashboard.
func (h *AuthHandler) DiscordCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		apierrors.BadRequest(c, "Authorization code missing")
		return
	}

	session := sessions.Default(c)
	expectedState := session.Get(constants.SessionKeyOAuthState)
	if expectedState == nil || expectedState != c.Query("state") {
		apierrors.BadRequest(c, "Invalid OAuth state")
		return
	}
	session.Delete(constants.SessionKeyOAuthState)

	user, err := h.authService.HandleCallback(c.Request.Context(), code)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	session.Set(constants.ContextKeyUserID, user.ID)
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to save session")
		return
	}

	c.Redirect(http.StatusFound, h.dashboardURL)
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		apierrors.InternalError(c, "Failed to logout")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetCurrentUser returns the authenticated user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	user, err := h.authService.GetUser(userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	userDTO := dto.ToUserDTO(*user, true)
	c.JSON(http.StatusOK, userDTO)
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOAuthNotConfigured):
		apierrors.ConfigurationError(c, "Discord OAuth configuration is missing")
	case errors.Is(err, services.ErrCodeExchangeFailed),
		errors.Is(err, services.ErrProfileFetchFailed),
		errors.Is(err, services.ErrFailedToSaveUser):
		apierrors.InternalError(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
