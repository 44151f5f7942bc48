package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/researchcollab/research-collab-api/internal/constants"
	"github.com/researchcollab/research-collab-api/internal/database"
	"github.com/researchcollab/research-collab-api/internal/dto"
	"github.com/researchcollab/research-collab-api/internal/middleware"
	"github.com/researchcollab/research-collab-api/internal/models"
	"github.com/researchcollab/research-collab-api/internal/notify"
	"github.com/researchcollab/research-collab-api/internal/repository"
	"github.com/researchcollab/research-collab-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// recorderMailer collects emails instead of sending them.
type recorderMailer struct {
	emails []notify.Email
}

func (m *recorderMailer) Send(email notify.Email) error {
	m.emails = append(m.emails, email)
	return nil
}

// recorderAnnouncer collects call announcements.
type recorderAnnouncer struct {
	announcements []notify.CallAnnouncement
}

func (a *recorderAnnouncer) Announce(announcement notify.CallAnnouncement) error {
	a.announcements = append(a.announcements, announcement)
	return nil
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.ResearchCall{},
		&models.CoAuthorApplication{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

type callTestEnv struct {
	db          *gorm.DB
	handler     *CallHandler
	callService *services.CallService
	announcer   *recorderAnnouncer
}

func setupCallTestEnv(t *testing.T) callTestEnv {
	t.Helper()

	db := openTestDB(t)

	announcer := &recorderAnnouncer{}
	dispatcher := notify.NewDispatcher(&recorderMailer{}, announcer)

	callRepo := repository.NewCallRepository(db)
	callService := services.NewCallService(callRepo, dispatcher, "http://localhost:3000")
	handler := NewCallHandler(callService)

	return callTestEnv{
		db:          db,
		handler:     handler,
		callService: callService,
		announcer:   announcer,
	}
}

func testContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func createTestUser(t *testing.T, db *gorm.DB, username, email string) *models.User {
	user := &models.User{
		DiscordID: "discord-" + username,
		Username:  username,
		Email:     email,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestCall(t *testing.T, svc *services.CallService, leadAuthorID uint64, title string) *models.ResearchCall {
	call, err := svc.CreateCall(services.CreateCallInput{
		Title:        title,
		Summary:      "A summary of the proposed work.",
		Keywords:     []string{"ml", "chemistry"},
		CreditRoles:  []string{"conceptualization", "software"},
		LeadAuthorID: leadAuthorID,
	})
	require.NoError(t, err)
	return call
}

func TestCallHandler_CreateCall(t *testing.T) {
	env := setupCallTestEnv(t)

	lead := createTestUser(t, env.db, "lead", "lead@example.org")

	payload := map[string]interface{}{
		"title":        "Graph Neural Networks for Drug Discovery",
		"summary":      "Exploring GNN architectures for molecule property prediction.",
		"keywords":     []string{"ml", "chemistry"},
		"credit_roles": []string{"conceptualization", "software"},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/api/calls", body, lead.ID)

	env.handler.CreateCall(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.ResearchCallDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.CallStatusOpen, response.Status)
	require.Regexp(t, `^graph-neural-networks-for-drug-discovery-\d{1,3}$`, response.Slug)
	require.Equal(t, lead.ID, response.LeadAuthorID)

	// The channel announcement was dispatched
	require.Len(t, env.announcer.announcements, 1)
	require.Equal(t, payload["title"], env.announcer.announcements[0].Title)
	require.Contains(t, env.announcer.announcements[0].URL, response.Slug)
}

func TestCallHandler_CreateCall_UnknownCreditRole(t *testing.T) {
	env := setupCallTestEnv(t)

	lead := createTestUser(t, env.db, "lead", "lead@example.org")

	payload := map[string]interface{}{
		"title":        "A Call",
		"summary":      "Summary",
		"keywords":     []string{"ml"},
		"credit_roles": []string{"software", "writing_original"},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/api/calls", body, lead.ID)

	env.handler.CreateCall(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, env.announcer.announcements)
}

func TestCallHandler_ListCalls_FiltersByStatusAndAuthor(t *testing.T) {
	env := setupCallTestEnv(t)

	lead := createTestUser(t, env.db, "lead", "lead@example.org")
	other := createTestUser(t, env.db, "other", "other@example.org")

	open := createTestCall(t, env.callService, lead.ID, "Open Call")
	closed := createTestCall(t, env.callService, lead.ID, "Closed Call")
	createTestCall(t, env.callService, other.ID, "Someone Else's Call")

	_, err := env.callService.CloseCall(closed.ID, "")
	require.NoError(t, err)

	c, w := testContext(http.MethodGet, "/api/calls?status=open", nil, lead.ID)
	env.handler.ListCalls(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.CallListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Calls, 2)

	c, w = testContext(http.MethodGet, fmt.Sprintf("/api/calls?status=open&authorId=%d", lead.ID), nil, lead.ID)
	env.handler.ListCalls(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Calls, 1)
	require.Equal(t, open.ID, response.Calls[0].ID)
}

func TestCallHandler_GetCallBySlug(t *testing.T) {
	env := setupCallTestEnv(t)

	lead := createTestUser(t, env.db, "lead", "lead@example.org")
	call := createTestCall(t, env.callService, lead.ID, "Quantum Sensing Review")

	c, w := testContext(http.MethodGet, "/api/calls/"+call.Slug, nil, lead.ID)
	c.Params = gin.Params{{Key: "slug", Value: call.Slug}}

	env.handler.GetCallBySlug(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.ResearchCallDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, call.ID, response.ID)
	require.NotNil(t, response.LeadAuthor)
	require.Equal(t, "lead", response.LeadAuthor.Username)
}

func TestCallHandler_GetCallBySlug_NotFound(t *testing.T) {
	env := setupCallTestEnv(t)

	c, w := testContext(http.MethodGet, "/api/calls/unknown-slug-1", nil, 1)
	c.Params = gin.Params{{Key: "slug", Value: "unknown-slug-1"}}

	env.handler.GetCallBySlug(c)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCallHandler_CloseCall(t *testing.T) {
	env := setupCallTestEnv(t)

	lead := createTestUser(t, env.db, "lead", "lead@example.org")
	call := createTestCall(t, env.callService, lead.ID, "Closable Call")

	payload := map[string]string{"publication_url": "https://doi.org/10.1000/example"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/api/calls/"+call.Slug+"/close", body, lead.ID)
	c.Set(middleware.ContextKeyCall, *call)

	env.handler.CloseCall(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.ResearchCallDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, models.CallStatusClosed, response.Status)
	require.Equal(t, payload["publication_url"], response.PublicationURL)

	// Closed is terminal
	c, w = testContext(http.MethodPost, "/api/calls/"+call.Slug+"/close", body, lead.ID)
	c.Set(middleware.ContextKeyCall, *call)

	env.handler.CloseCall(c)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestCallHandler_UpdateCall(t *testing.T) {
	env := setupCallTestEnv(t)

	lead := createTestUser(t, env.db, "lead", "lead@example.org")
	call := createTestCall(t, env.callService, lead.ID, "Editable Call")

	payload := map[string]interface{}{"title": "Editable Call, Revised"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := testContext(http.MethodPatch, "/api/calls/"+call.Slug, body, lead.ID)
	c.Set(middleware.ContextKeyCall, *call)

	env.handler.UpdateCall(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.ResearchCallDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Editable Call, Revised", response.Title)
	// The slug never changes once assigned
	require.Equal(t, call.Slug, response.Slug)
}

func TestCallHandler_UpdateCall_ClosedCallRejected(t *testing.T) {
	env := setupCallTestEnv(t)

	lead := createTestUser(t, env.db, "lead", "lead@example.org")
	call := createTestCall(t, env.callService, lead.ID, "Soon Closed")

	_, err := env.callService.CloseCall(call.ID, "")
	require.NoError(t, err)

	payload := map[string]interface{}{"title": "Too Late"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := testContext(http.MethodPatch, "/api/calls/"+call.Slug, body, lead.ID)
	c.Set(middleware.ContextKeyCall, *call)

	env.handler.UpdateCall(c)

	require.Equal(t, http.StatusConflict, w.Code)
}
