package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"civicreport-be/models"
	"civicreport-be/stores"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// identityStub stands in for AuthMiddleware in tests
func identityStub(id, name, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", id)
		c.Set("user_name", name)
		c.Set("user_role", role)
		c.Next()
	}
}

func newTestRouter(t *testing.T, id, name, role string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	InitStores(stores.NewMemoryBlob())

	r := gin.New()
	authed := r.Group("/", identityStub(id, name, role))
	{
		authed.POST("/issue/create", CreateIssue)
		authed.GET("/issue/", GetAllIssues)
		authed.GET("/issue/mine", GetMyIssues)
		authed.GET("/issue/:id", GetIssue)
		authed.POST("/issue/:id/vote", VoteIssue)
		authed.POST("/issue/:id/comments", AddComment)
		authed.POST("/issue/:id/complete", CompleteIssue)
		authed.POST("/civic-hours", CreateCivicHour)
		authed.GET("/civic-hours", GetCivicHours)
		authed.POST("/civic-hours/:id/verify", VerifyCivicHour)
		authed.GET("/rewards/me", GetMyRewards)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateIssueCreditsReporter(t *testing.T) {
	r := newTestRouter(t, "u1", "Asha", models.RoleUser)

	w := doJSON(t, r, http.MethodPost, "/issue/create", gin.H{
		"title":       "Pothole on Main St",
		"description": "Deep pothole near the crossing",
		"category":    "roads",
		"priority":    "high",
		"address":     "Main St, Sector 5",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Issue        models.Issue `json:"issue"`
		EarnedPoints int          `json:"earnedPoints"`
		TotalPoints  int          `json:"totalPoints"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 16, resp.EarnedPoints)
	assert.Equal(t, 16, resp.TotalPoints)
	assert.Equal(t, "u1", resp.Issue.ReporterID)
	assert.Equal(t, "Asha", resp.Issue.ReporterName)
	assert.Equal(t, models.NotCompleted, resp.Issue.Status)

	w = doJSON(t, r, http.MethodGet, "/rewards/me", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total": 16}`, w.Body.String())
}

// faultyRewardsBlob refuses writes to the rewards key so ledger credits
// fail while issue persistence keeps working.
type faultyRewardsBlob struct {
	stores.Blob
}

func (b faultyRewardsBlob) Set(ctx context.Context, key string, data []byte) error {
	if key == stores.RewardsKey {
		return errors.New("rewards storage unavailable")
	}
	return b.Blob.Set(ctx, key, data)
}

func TestCreateIssueOmitsTotalWhenLedgerUnavailable(t *testing.T) {
	r := newTestRouter(t, "u1", "Asha", models.RoleUser)
	InitStores(faultyRewardsBlob{stores.NewMemoryBlob()})

	w := doJSON(t, r, http.MethodPost, "/issue/create", gin.H{
		"title":       "Broken streetlight",
		"description": "Dark stretch near the park gate",
		"category":    "electricity",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp, "issue")
	assert.Contains(t, resp, "earnedPoints")

	// The real total is unknown, so no total is reported at all
	assert.NotContains(t, resp, "totalPoints")
}

func TestCreateIssueRejectsUnknownCategory(t *testing.T) {
	r := newTestRouter(t, "u1", "Asha", models.RoleUser)

	w := doJSON(t, r, http.MethodPost, "/issue/create", gin.H{
		"title":       "Anything",
		"description": "Anything else",
		"category":    "ufo_sightings",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVoteEndpoint(t *testing.T) {
	r := newTestRouter(t, "u1", "Asha", models.RoleUser)

	w := doJSON(t, r, http.MethodPost, "/issue/create", gin.H{
		"title":       "Overflowing bin",
		"description": "Garbage not collected for a week",
		"category":    "waste_management",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Issue models.Issue `json:"issue"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPost, "/issue/"+created.Issue.ID+"/vote", gin.H{"direction": "up"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, "/issue/"+created.Issue.ID+"/vote", gin.H{"direction": "up"})
	require.Equal(t, http.StatusOK, w.Code)

	var voted struct {
		Upvotes   int `json:"upvotes"`
		Downvotes int `json:"downvotes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &voted))
	assert.Equal(t, 2, voted.Upvotes)
	assert.Zero(t, voted.Downvotes)

	w = doJSON(t, r, http.MethodPost, "/issue/"+created.Issue.ID+"/vote", gin.H{"direction": "sideways"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCompleteIssueEndpoint(t *testing.T) {
	r := newTestRouter(t, "o1", "Officer Rao", models.RoleOfficial)

	w := doJSON(t, r, http.MethodPost, "/issue/create", gin.H{
		"title":       "Broken streetlight",
		"description": "Dark corner at night",
		"category":    "electricity",
		"priority":    "critical",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Issue models.Issue `json:"issue"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	// Missing proof fails, record stays untouched
	w = doJSON(t, r, http.MethodPost, "/issue/"+created.Issue.ID+"/complete", gin.H{"proofImages": []string{}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/issue/"+created.Issue.ID+"/complete", gin.H{
		"proofImages": []string{"img://fixed"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Issue        models.Issue `json:"issue"`
		EarnedPoints int          `json:"earnedPoints"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 30, resp.EarnedPoints) // round(20 * 1.5)
	assert.Equal(t, models.Completed, resp.Issue.Status)
	assert.Equal(t, "Officer Rao", resp.Issue.CompletedByName)
	require.NotNil(t, resp.Issue.CompletedAt)

	// Completing twice conflicts
	w = doJSON(t, r, http.MethodPost, "/issue/"+created.Issue.ID+"/complete", gin.H{
		"proofImages": []string{"img://again"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetAllIssuesFiltersAndPaginates(t *testing.T) {
	r := newTestRouter(t, "u1", "Asha", models.RoleUser)

	for _, category := range []string{"roads", "roads", "parks"} {
		w := doJSON(t, r, http.MethodPost, "/issue/create", gin.H{
			"title":       "Issue about " + category,
			"description": "Some description here",
			"category":    category,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doJSON(t, r, http.MethodGet, "/issue/?category=roads", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listed struct {
		Issues      []models.Issue `json:"issues"`
		TotalIssues int            `json:"totalIssues"`
		TotalPages  int            `json:"totalPages"`
		CurrentPage int            `json:"currentPage"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Equal(t, 2, listed.TotalIssues)
	assert.Equal(t, 1, listed.TotalPages)
	require.Len(t, listed.Issues, 2)
	for _, issue := range listed.Issues {
		assert.Equal(t, models.Roads, issue.Category)
	}

	w = doJSON(t, r, http.MethodGet, "/issue/?limit=2&page=2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Equal(t, 3, listed.TotalIssues)
	assert.Equal(t, 2, listed.TotalPages)
	assert.Len(t, listed.Issues, 1)
}

func TestGetIssueNotFound(t *testing.T) {
	r := newTestRouter(t, "u1", "Asha", models.RoleUser)

	w := doJSON(t, r, http.MethodGet, "/issue/missing-id", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
