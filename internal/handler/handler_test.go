package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/xxxsen/draftpad/internal/handler"
	"github.com/xxxsen/draftpad/internal/pkg/errcode"
	"github.com/xxxsen/draftpad/internal/service"
	"github.com/xxxsen/draftpad/internal/store"
)

type envelope struct {
	Code int             `json:"code"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	counter := 0
	ids := func() string {
		counter++
		return fmt.Sprintf("rev-%d", counter)
	}
	clock := func() time.Time {
		return time.Date(2026, 8, 31, 10, 30, 0, 0, time.UTC)
	}
	drafts := service.NewDraftService(store.NewMemory(), ids, clock, 16, time.Minute)

	router := gin.New()
	handler.RegisterRoutes(router.Group("/api/v1"), handler.RouterDeps{
		Drafts:    handler.NewDraftHandler(drafts),
		Revisions: handler.NewRevisionHandler(drafts),
	})
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path string, body interface{}) *envelope {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	require.Equal(t, http.StatusOK, resp.Code)

	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env))
	return &env
}

func TestSaveAndHistoryFlow(t *testing.T) {
	router := setupRouter(t)

	env := doRequest(t, router, http.MethodPut, "/api/v1/draft", map[string]string{"content": "the cat sat"})
	require.Zero(t, env.Code)
	var saved struct {
		Changed  bool `json:"changed"`
		Revision struct {
			ID         string   `json:"id"`
			SavedAt    string   `json:"saved_at"`
			AddedWords []string `json:"added_words"`
		} `json:"revision"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &saved))
	require.True(t, saved.Changed)
	require.Equal(t, "rev-1", saved.Revision.ID)
	require.Equal(t, "2026-08-31 10:30", saved.Revision.SavedAt)
	require.Equal(t, []string{"the", "cat", "sat"}, saved.Revision.AddedWords)

	env = doRequest(t, router, http.MethodGet, "/api/v1/draft", nil)
	require.Zero(t, env.Code)
	var draft struct {
		Content string `json:"content"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &draft))
	require.Equal(t, "the cat sat", draft.Content)

	env = doRequest(t, router, http.MethodPut, "/api/v1/draft", map[string]string{"content": "the dog sat sat"})
	require.Zero(t, env.Code)

	env = doRequest(t, router, http.MethodGet, "/api/v1/revisions", nil)
	require.Zero(t, env.Code)
	var revisions []struct {
		ID           string   `json:"id"`
		AddedWords   []string `json:"added_words"`
		RemovedWords []string `json:"removed_words"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &revisions))
	require.Len(t, revisions, 2)
	require.Equal(t, "rev-2", revisions[0].ID)
	require.Equal(t, []string{"dog", "sat"}, revisions[0].AddedWords)
	require.Equal(t, []string{"cat"}, revisions[0].RemovedWords)

	env = doRequest(t, router, http.MethodGet, "/api/v1/revisions/rev-1", nil)
	require.Zero(t, env.Code)
}

func TestSaveNoChange(t *testing.T) {
	router := setupRouter(t)

	doRequest(t, router, http.MethodPut, "/api/v1/draft", map[string]string{"content": "same"})
	env := doRequest(t, router, http.MethodPut, "/api/v1/draft", map[string]string{"content": "same"})
	require.Zero(t, env.Code)

	var result struct {
		Changed bool   `json:"changed"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.False(t, result.Changed)
	require.Equal(t, "No changes detected", result.Message)

	env = doRequest(t, router, http.MethodGet, "/api/v1/revisions", nil)
	var revisions []json.RawMessage
	require.NoError(t, json.Unmarshal(env.Data, &revisions))
	require.Len(t, revisions, 1)
}

func TestSaveWhitespaceOnlyMessage(t *testing.T) {
	router := setupRouter(t)

	doRequest(t, router, http.MethodPut, "/api/v1/draft", map[string]string{"content": "hello  world"})
	env := doRequest(t, router, http.MethodPut, "/api/v1/draft", map[string]string{"content": "hello world"})
	require.Zero(t, env.Code)

	var result struct {
		Changed bool   `json:"changed"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.True(t, result.Changed)
	require.Equal(t, "Only whitespace or formatting changes", result.Message)
}

func TestSaveMissingContent(t *testing.T) {
	router := setupRouter(t)

	env := doRequest(t, router, http.MethodPut, "/api/v1/draft", map[string]string{"other": "field"})
	require.Equal(t, errcode.ErrInvalid, env.Code)
}

func TestGetUnknownRevision(t *testing.T) {
	router := setupRouter(t)

	env := doRequest(t, router, http.MethodGet, "/api/v1/revisions/nope", nil)
	require.Equal(t, errcode.ErrNotFound, env.Code)
}

func TestPreviewRendersMarkdown(t *testing.T) {
	router := setupRouter(t)

	doRequest(t, router, http.MethodPut, "/api/v1/draft", map[string]string{"content": "# Title\n\nsome *text*"})
	env := doRequest(t, router, http.MethodGet, "/api/v1/draft/preview", nil)
	require.Zero(t, env.Code)

	var result struct {
		HTML string `json:"html"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.Contains(t, result.HTML, "<h1>Title</h1>")
}
