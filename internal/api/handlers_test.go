package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subtextdev/subtext-api/internal/generation"
	"github.com/subtextdev/subtext-api/internal/service"
	"github.com/subtextdev/subtext-api/internal/task"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := task.NewMemoryStore(task.DefaultTTL, nil)
	orchestrator := service.NewOrchestrator(store, generation.Defaults(), nil)

	r := chi.NewRouter()
	r.Post("/api/v1/generate-commit", NewCommitHandler(orchestrator, nil).GenerateCommit)
	r.Post("/api/v1/generate-readme", NewReadmeHandler(orchestrator, nil).GenerateReadme)
	r.Get("/tasks/{taskID}", NewTaskHandler(orchestrator, nil).GetTaskStatus)
	r.Post("/queue/pop", NewWorkerHandler(orchestrator, nil).PopTask)
	r.Post("/queue/complete/{taskID}", NewWorkerHandler(orchestrator, nil).CompleteTask)
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func commitPayload() map[string]any {
	return map[string]any{
		"diff": "diff --git a/parser.go b/parser.go\n+func parseConfig(path string)",
		"config": map[string]any{
			"project_descriptions": "An editor extension backend.",
			"style": map[string]any{
				"convention": "conventional",
				"useEmojis":  false,
				"language":   "english",
			},
			"rules": []string{"subject under 72 characters"},
		},
		"history": []string{"fix: handle empty config path"},
	}
}

// Drives a commit request end to end over HTTP: enqueue, poll, worker
// pop/complete for both phases, final poll.
func TestCommitFlowOverHTTP(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/generate-commit", commitPayload())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	enq := decodeBody[CommitTaskResponse](t, rec)
	assert.Equal(t, "pending", enq.Status)
	require.NotEmpty(t, enq.TaskID)

	pollPath := "/tasks/" + enq.TaskID

	rec = doJSON(t, router, http.MethodGet, pollPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decodeBody[TaskStatusResponse](t, rec)
	assert.Equal(t, "pending", status.Status)
	assert.Equal(t, "commit", status.Domain)

	// Worker claims the analyze phase.
	rec = doJSON(t, router, http.MethodPost, "/queue/pop", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	claimed := decodeBody[WorkerTaskResponse](t, rec)
	assert.Equal(t, enq.TaskID, claimed.ID)
	assert.Equal(t, "analyze", claimed.Phase)
	assert.Equal(t, "processing", claimed.Status)
	assert.NotEmpty(t, claimed.SystemInstruction)

	rec = doJSON(t, router, http.MethodPost, "/queue/complete/"+claimed.ID, CompleteTaskRequest{
		Result: `{"intent":"fix","scope":"parser","summary":"s","anchors":["parseConfig"]}`,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Client polls: the phase rewrite is invisible, it reads "pending".
	rec = doJSON(t, router, http.MethodGet, pollPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status = decodeBody[TaskStatusResponse](t, rec)
	assert.Equal(t, "pending", status.Status)
	assert.Empty(t, status.Result)

	// Worker claims the generate phase under the same id.
	rec = doJSON(t, router, http.MethodPost, "/queue/pop", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	claimed = decodeBody[WorkerTaskResponse](t, rec)
	assert.Equal(t, enq.TaskID, claimed.ID)
	assert.Equal(t, "generate", claimed.Phase)

	rec = doJSON(t, router, http.MethodPost, "/queue/complete/"+claimed.ID, CompleteTaskRequest{
		Result: "fix: pass config path to parseConfig",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, pollPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status = decodeBody[TaskStatusResponse](t, rec)
	assert.Equal(t, "completed", status.Status)
	assert.Equal(t, "fix: pass config path to parseConfig", status.Result)
	assert.Empty(t, status.Error)
}

func TestGenerateCommitRejectsBadPayloads(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/generate-commit", bytes.NewBufferString("{not json"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown field", func(t *testing.T) {
		t.Parallel()
		payload := commitPayload()
		payload["surprise"] = true
		rec := doJSON(t, router, http.MethodPost, "/api/v1/generate-commit", payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty diff", func(t *testing.T) {
		t.Parallel()
		payload := commitPayload()
		payload["diff"] = ""
		rec := doJSON(t, router, http.MethodPost, "/api/v1/generate-commit", payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestPopOnEmptyQueue(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/queue/pop", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCompleteTaskErrors(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/queue/complete/not-a-uuid", CompleteTaskRequest{Result: "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodPost,
		"/queue/complete/00000000-0000-0000-0000-000000000001", CompleteTaskRequest{Result: ""})
	assert.Equal(t, http.StatusBadRequest, rec.Code, "empty result fails validation")

	rec = doJSON(t, router, http.MethodPost,
		"/queue/complete/00000000-0000-0000-0000-000000000001", CompleteTaskRequest{Result: "done"})
	assert.Equal(t, http.StatusNotFound, rec.Code, "unknown task id")
}

func TestGetTaskStatusErrors(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/tasks/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/tasks/00000000-0000-0000-0000-000000000001", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func readmePayload(async bool) map[string]any {
	return map[string]any{
		"fact": map[string]any{
			"repository": map[string]any{"name": "subtext", "type": "backend"},
			"runtime": map[string]any{
				"frontend": nil,
				"backend":  map[string]any{"language": "go"},
			},
			"scripts": map[string]any{"dev": "make run", "build": nil},
		},
		"mode":       "final",
		"doc_target": "developer",
		"async":      async,
	}
}

func TestGenerateReadmeSync(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/generate-readme", readmePayload(false))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeBody[ReadmeGenerateResponse](t, rec)
	assert.Equal(t, "readme_developer_v1", resp.Template)
	assert.Empty(t, resp.TaskID)
	assert.False(t, resp.Fallback)
	assert.Contains(t, resp.Content, "# subtext")
	assert.Contains(t, resp.Content, "Not specified")
	assert.Contains(t, resp.Content, "Not present")
}

func TestGenerateReadmeAsyncFlow(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/generate-readme", readmePayload(true))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[ReadmeGenerateResponse](t, rec)
	require.NotEmpty(t, resp.TaskID)
	assert.Empty(t, resp.Content)

	rec = doJSON(t, router, http.MethodPost, "/queue/pop", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	claimed := decodeBody[WorkerTaskResponse](t, rec)
	assert.Equal(t, resp.TaskID, claimed.ID)
	assert.Equal(t, "readme", claimed.Domain)
	assert.Empty(t, claimed.Phase)

	rec = doJSON(t, router, http.MethodPost, "/queue/complete/"+claimed.ID, CompleteTaskRequest{
		Result: "# subtext\n\nGenerated overview.",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/tasks/"+resp.TaskID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decodeBody[TaskStatusResponse](t, rec)
	assert.Equal(t, "completed", status.Status)
	assert.Contains(t, status.Result, "Generated overview.")
}

func TestGenerateReadmeValidation(t *testing.T) {
	t.Parallel()
	router := newTestRouter(t)

	tests := []struct {
		name   string
		mutate func(map[string]any)
	}{
		{"missing fact", func(p map[string]any) { delete(p, "fact") }},
		{"missing mode", func(p map[string]any) { delete(p, "mode") }},
		{"invalid mode", func(p map[string]any) { p["mode"] = "preview" }},
		{"missing doc target", func(p map[string]any) { delete(p, "doc_target") }},
		{"unknown doc target", func(p map[string]any) { p["doc_target"] = "marketing" }},
		{"bad repository type", func(p map[string]any) {
			p["fact"] = map[string]any{"repository": map[string]any{"name": "x", "type": "spaceship"}}
		}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			payload := readmePayload(false)
			tc.mutate(payload)
			rec := doJSON(t, router, http.MethodPost, "/api/v1/generate-readme", payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code,
				fmt.Sprintf("body: %s", rec.Body.String()))
		})
	}
}
