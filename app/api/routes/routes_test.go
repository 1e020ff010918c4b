package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/armii/platform-admin/pkg/domains/connection"
	"github.com/armii/platform-admin/pkg/domains/platform"
	"github.com/armii/platform-admin/pkg/dtos"
	"github.com/armii/platform-admin/pkg/entities"
	"github.com/armii/platform-admin/pkg/errs"
	"github.com/armii/platform-admin/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := utils.RegisterBindingValidations(); err != nil {
		panic(err)
	}
}

// stubTracker records calls and answers from fixed state.
type stubTracker struct {
	connection.Tracker

	selected   map[string]string
	connected  map[string]string
	extractErr error
	statusErr  error
}

func newStubTracker() *stubTracker {
	return &stubTracker{selected: map[string]string{}, connected: map[string]string{}}
}

func (s *stubTracker) Select(ctx context.Context, platformName, accountAddress string) (<-chan error, error) {
	s.selected[platformName] = accountAddress
	return s.Connect(ctx, platformName, accountAddress), nil
}

func (s *stubTracker) Connect(ctx context.Context, platformName, accountAddress string) <-chan error {
	result := make(chan error, 1)
	result <- nil
	return result
}

func (s *stubTracker) Extract(ctx context.Context, platformName string) error {
	if _, ok := s.connected[platformName]; !ok {
		return fmt.Errorf("extract %s: %w", platformName, errs.ErrNoConnectedAccount)
	}
	return s.extractErr
}

func (s *stubTracker) GetAllConnectedAccounts(ctx context.Context) (map[string]string, error) {
	return s.connected, nil
}

func (s *stubTracker) Status(ctx context.Context, platformName string) (dtos.ConnectionStatusDTO, error) {
	if s.statusErr != nil {
		return dtos.ConnectionStatusDTO{}, s.statusErr
	}
	status := dtos.ConnectionStatusDTO{PlatformName: platformName, State: entities.StateUnselected}
	if addr, ok := s.selected[platformName]; ok {
		status.SelectedAccount = addr
		status.IsRegistered = true
		status.IsConnecting = true
		status.State = entities.StateConnecting
	}
	return status, nil
}

type testAPI struct {
	router  *gin.Engine
	service platform.Service
	tracker *stubTracker
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	api := &testAPI{
		router:  gin.New(),
		service: platform.NewService(platform.NewStore()),
		tracker: newStubTracker(),
	}
	v1 := api.router.Group("/api/v1")
	IndexRoutes(v1)
	PlatformRoutes(v1, api.service)
	PairRoutes(v1.Group("/pairs"), api.service)
	ConnectionRoutes(v1.Group("/connections"), api.tracker)
	return api
}

func (a *testAPI) do(t *testing.T, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w, resp
}

func TestIndex(t *testing.T) {
	api := newTestAPI(t)

	w, resp := api.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"], 3)
}

func TestCreatePlatform(t *testing.T) {
	api := newTestAPI(t)

	w, resp := api.do(t, http.MethodPost, "/platforms", gin.H{"name": "Reddit"})
	require.Equal(t, http.StatusCreated, w.Code)
	data := resp["data"].(map[string]any)
	assert.Equal(t, "reddit", data["type"])

	w, _ = api.do(t, http.MethodPost, "/platforms", gin.H{"name": "reddit"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, resp = api.do(t, http.MethodPost, "/platforms", gin.H{"name": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid request payload", resp["error"])
}

func TestResolvePlatform(t *testing.T) {
	api := newTestAPI(t)

	w, resp := api.do(t, http.MethodPost, "/platforms/resolve", gin.H{"query": "onedrive"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, resp["data"].(map[string]any)["created"])

	w, _ = api.do(t, http.MethodPost, "/platforms/resolve", gin.H{"query": "onedrive"})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = api.do(t, http.MethodPost, "/platforms/resolve", gin.H{"query": "nothing"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchAndCatalog(t *testing.T) {
	api := newTestAPI(t)

	w, resp := api.do(t, http.MethodGet, "/platforms/search?q=whatsapp", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := resp["data"].(map[string]any)
	assert.Len(t, data["platforms"], 1)
	assert.Equal(t, []any{"WhatsApp"}, data["suggestions"])

	w, resp = api.do(t, http.MethodGet, "/platforms/catalog", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, resp["data"], "Instagram")
}

func TestSaveAccountsAndView(t *testing.T) {
	api := newTestAPI(t)

	w, resp := api.do(t, http.MethodPost, "/accounts", gin.H{
		"platforms": []gin.H{{"platform_id": "instagram", "addresses": []string{"a1", "a2"}}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, resp["data"].(map[string]any)["saved"], 2)

	w, resp = api.do(t, http.MethodGet, "/platforms/instagram/accounts", nil)
	require.Equal(t, http.StatusOK, w.Code)
	accounts := resp["data"].([]any)
	require.Len(t, accounts, 2)
	accountID := accounts[0].(map[string]any)["id"].(string)

	w, resp = api.do(t, http.MethodGet, "/accounts/"+accountID+"/platforms", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"], 1)

	w, _ = api.do(t, http.MethodDelete, "/accounts/"+accountID+"/platforms/instagram", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = api.do(t, http.MethodGet, "/accounts/"+accountID+"/platforms", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, resp = api.do(t, http.MethodGet, "/overview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"], 11)

	w, resp = api.do(t, http.MethodGet, "/accounts/draft", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"].(map[string]any)["instagram"], 2)
}

func TestSaveAccounts_PartialFailure(t *testing.T) {
	api := newTestAPI(t)

	w, resp := api.do(t, http.MethodPost, "/accounts", gin.H{
		"platforms": []gin.H{{"platform_id": "gmail", "addresses": []string{"g1", " "}}},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, resp["data"].(map[string]any)["saved"], 1)
	assert.Len(t, resp["fields"], 1)

	w, _ = api.do(t, http.MethodPost, "/accounts", gin.H{"platforms": []gin.H{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteUnknownAccount(t *testing.T) {
	api := newTestAPI(t)

	w, resp := api.do(t, http.MethodDelete, "/accounts/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, resp["error"], "not found")
}

func TestPairs(t *testing.T) {
	api := newTestAPI(t)
	pair, err := api.service.AddPlatformAccountPair("Instagram", "a1", "instagram")
	require.NoError(t, err)
	_, err = api.service.AddPlatformAccountPair("Instagram", "a1", "instagram")
	require.NoError(t, err)

	w, resp := api.do(t, http.MethodGet, "/pairs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, resp["data"], 2)

	w, resp = api.do(t, http.MethodGet, "/pairs/grouped?by=type", nil)
	require.Equal(t, http.StatusOK, w.Code)
	groups := resp["data"].([]any)
	require.Len(t, groups, 1)
	assert.Equal(t, []any{"a1"}, groups[0].(map[string]any)["accountAddresses"])

	w, _ = api.do(t, http.MethodGet, "/pairs/grouped?by=owner", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = api.do(t, http.MethodDelete, "/pairs/"+pair.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = api.do(t, http.MethodDelete, "/pairs/"+pair.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = api.do(t, http.MethodDelete, "/pairs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, api.service.GetPlatformAccountPairs())
}

func TestSelectAccount(t *testing.T) {
	api := newTestAPI(t)

	w, resp := api.do(t, http.MethodPost, "/connections/select", gin.H{"platform_name": "Instagram", "account_address": "a1"})
	require.Equal(t, http.StatusAccepted, w.Code)
	data := resp["data"].(map[string]any)
	assert.Equal(t, "connecting", data["state"])
	assert.Equal(t, "a1", api.tracker.selected["Instagram"])

	w, _ = api.do(t, http.MethodPost, "/connections/select", gin.H{"platform_name": "Instagram", "account_address": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExtract(t *testing.T) {
	api := newTestAPI(t)

	w, _ := api.do(t, http.MethodPost, "/connections/extract", gin.H{"platform_name": "Instagram"})
	assert.Equal(t, http.StatusConflict, w.Code)

	api.tracker.connected["Instagram"] = "a1"
	w, resp := api.do(t, http.MethodPost, "/connections/extract", gin.H{"platform_name": "Instagram"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Data extracted successfully", resp["message"])

	w, resp = api.do(t, http.MethodGet, "/connections", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]any{"Instagram": "a1"}, resp["data"])
}

func TestConnectionStatus(t *testing.T) {
	api := newTestAPI(t)

	w, _ := api.do(t, http.MethodGet, "/connections/status", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, resp := api.do(t, http.MethodGet, "/connections/status?platform=Gmail", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "unselected", resp["data"].(map[string]any)["state"])

	api.tracker.statusErr = fmt.Errorf("storage down")
	w, resp = api.do(t, http.MethodGet, "/connections/status?platform=Gmail", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "something went wrong", resp["error"])
}
