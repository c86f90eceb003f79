package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/reet/goalforge-api/internal/goals"
	"github.com/reet/goalforge-api/internal/handlers"
	"github.com/reet/goalforge-api/internal/middleware"
	"github.com/reet/goalforge-api/internal/models"
	"github.com/reet/goalforge-api/internal/routes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory goals.Store for exercising the HTTP layer.
type fakeStore struct {
	goals map[uuid.UUID]models.Goal
}

func newFakeStore() *fakeStore {
	return &fakeStore{goals: map[uuid.UUID]models.Goal{}}
}

func (s *fakeStore) Create(goal *models.Goal) error {
	if goal.ID == uuid.Nil {
		goal.ID = uuid.New()
	}
	s.goals[goal.ID] = *goal
	return nil
}

func (s *fakeStore) Get(id uuid.UUID) (*models.Goal, error) {
	goal, ok := s.goals[id]
	if !ok {
		return nil, goals.ErrRecordNotFound
	}
	return &goal, nil
}

func (s *fakeStore) ListByOwner(ownerID uuid.UUID) ([]models.Goal, error) {
	var out []models.Goal
	for _, g := range s.goals {
		if g.OwnerID != nil && *g.OwnerID == ownerID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DisplayOrder < out[j].DisplayOrder
	})
	return out, nil
}

func (s *fakeStore) DeleteOne(id uuid.UUID) error {
	if _, ok := s.goals[id]; !ok {
		return goals.ErrRecordNotFound
	}
	delete(s.goals, id)
	return nil
}

func (s *fakeStore) DeleteAllByOwner(ownerID uuid.UUID) error {
	for id, g := range s.goals {
		if g.OwnerID != nil && *g.OwnerID == ownerID {
			delete(s.goals, id)
		}
	}
	return nil
}

func (s *fakeStore) SaveBatch(batch []models.Goal) ([]models.Goal, error) {
	for i := range batch {
		if batch[i].ID == uuid.Nil {
			batch[i].ID = uuid.New()
		}
		s.goals[batch[i].ID] = batch[i]
	}
	return batch, nil
}

func newTestApp(t *testing.T) (*fiber.App, uuid.UUID, string) {
	t.Helper()

	app := fiber.New()
	routes.Setup(app, handlers.NewGoalHandler(goals.NewService(newFakeStore())))

	userID := uuid.New()
	token, err := middleware.GenerateToken(userID, "tester@example.com")
	require.NoError(t, err)
	return app, userID, token
}

func doJSON(t *testing.T, app *fiber.App, method, url, token string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var decoded map[string]interface{}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &decoded))
	}
	return resp, decoded
}

func createGoal(t *testing.T, app *fiber.App, token, name string, effort float64) string {
	t.Helper()
	resp, body := doJSON(t, app, http.MethodPost, "/api/goals/", token, fiber.Map{
		"name":            name,
		"progressType":    "dur",
		"estimatedEffort": effort,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return body["id"].(string)
}

func TestGoalRoutesRequireAuth(t *testing.T) {
	t.Parallel()
	app, _, _ := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/goals/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestCreateGoalHTTP(t *testing.T) {
	t.Parallel()
	app, userID, token := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/goals/", token, fiber.Map{
		"name":            "Learn Go",
		"progressType":    "DUR",
		"estimatedEffort": 40,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "Learn Go", body["name"])
	assert.Equal(t, "dur", body["progressType"])
	assert.Equal(t, "not_started", body["status"])
	assert.Equal(t, userID.String(), body["ownerId"])
	assert.Equal(t, 40.0, body["remainingEffort"])
}

func TestCreateGoalRejectsBadType(t *testing.T) {
	t.Parallel()
	app, _, token := newTestApp(t)

	resp, body := doJSON(t, app, http.MethodPost, "/api/goals/", token, fiber.Map{
		"name":         "bad",
		"progressType": "hours",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
}

func TestGetGoalHidesForeignGoals(t *testing.T) {
	t.Parallel()
	app, _, token := newTestApp(t)
	id := createGoal(t, app, token, "mine", 10)

	otherToken, err := middleware.GenerateToken(uuid.New(), "other@example.com")
	require.NoError(t, err)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/goals/"+id, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodGet, "/api/goals/"+id, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "GOAL_NOT_FOUND", body["error"])
}

func TestInvalidGoalIDParam(t *testing.T) {
	t.Parallel()
	app, _, token := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/goals/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLifecycleOverHTTP(t *testing.T) {
	t.Parallel()
	app, _, token := newTestApp(t)
	id := createGoal(t, app, token, "g", 10)

	resp, body := doJSON(t, app, http.MethodPost, "/api/goals/"+id+"/start", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "active", body["status"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/goals/"+id+"/start", token, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", body["error"])

	today := time.Now().Format("2006-01-02")
	resp, body = doJSON(t, app, http.MethodPost, "/api/goals/"+id+"/progress", token, fiber.Map{
		"date":   today,
		"effort": 4,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 4.0, body["investedEffort"])
	assert.Equal(t, 6.0, body["remainingEffort"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/goals/"+id+"/pause", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "paused", body["status"])

	resp, body = doJSON(t, app, http.MethodPost, "/api/goals/"+id+"/progress", token, fiber.Map{
		"date":   today,
		"effort": 5,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "GOAL_PAUSED", body["error"])
}

func TestProgressBeforeStartHTTP(t *testing.T) {
	t.Parallel()
	app, _, token := newTestApp(t)
	id := createGoal(t, app, token, "g", 10)

	resp, body := doJSON(t, app, http.MethodPost, "/api/goals/"+id+"/progress", token, fiber.Map{
		"date":   time.Now().Format("2006-01-02"),
		"effort": 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "GOAL_NOT_STARTED", body["error"])
}

func TestReorderHTTP(t *testing.T) {
	t.Parallel()
	app, _, token := newTestApp(t)
	first := createGoal(t, app, token, "first", 1)
	second := createGoal(t, app, token, "second", 1)

	resp, _ := doJSON(t, app, http.MethodPut, "/api/goals/reorder", token, fiber.Map{
		"goalIds": []string{second, first},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/goals/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	listResp, err := app.Test(req, -1)
	require.NoError(t, err)
	var list []map[string]interface{}
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&list))
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0]["id"])
	assert.Equal(t, first, list[1]["id"])

	resp, body := doJSON(t, app, http.MethodPut, "/api/goals/reorder", token, fiber.Map{
		"goalIds": []string{},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION_ERROR", body["error"])
}

func TestImportExportHTTP(t *testing.T) {
	t.Parallel()
	app, _, token := newTestApp(t)
	createGoal(t, app, token, "old", 5)

	// Calendar arrives in the record-list form and is normalized
	importBody := fiber.Map{
		"mode": "reset",
		"goals": []fiber.Map{
			{
				"name":            "imported",
				"progressType":    "dur",
				"estimatedEffort": 10,
				"progressCalendar": []fiber.Map{
					{"date": "2026-08-20", "effort": 3},
				},
			},
		},
	}
	resp, _ := doJSON(t, app, http.MethodPost, "/api/goals/import", token, importBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req := httptest.NewRequest(http.MethodGet, "/api/goals/export", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	exportResp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, exportResp.StatusCode)

	var exported []map[string]interface{}
	require.NoError(t, json.NewDecoder(exportResp.Body).Decode(&exported))
	require.Len(t, exported, 1)
	assert.Equal(t, "imported", exported[0]["name"])
	assert.Equal(t, 3.0, exported[0]["investedEffort"])
	assert.Equal(t, 7.0, exported[0]["remainingEffort"])

	cal, ok := exported[0]["progressCalendar"].(map[string]interface{})
	require.True(t, ok, "calendar is stored in map form, got %T", exported[0]["progressCalendar"])
	assert.Equal(t, 3.0, cal["2026-08-20"])
}

func TestDeleteGoalHTTP(t *testing.T) {
	t.Parallel()
	app, _, token := newTestApp(t)
	id := createGoal(t, app, token, "g", 1)

	resp, _ := doJSON(t, app, http.MethodDelete, "/api/goals/"+id, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body := doJSON(t, app, http.MethodDelete, "/api/goals/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "GOAL_NOT_FOUND", body["error"])
}
