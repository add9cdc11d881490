package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/LJTian/MacroBrief/internal/brief"
	"github.com/LJTian/MacroBrief/internal/storage"
	"github.com/gin-gonic/gin"
)

type envelope struct {
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T, briefPath string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, err := storage.NewStore("", "")
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	r := gin.New()
	NewServer(store, briefPath).RegisterRoutes(r)
	return r
}

func doGet(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := doGet(newTestRouter(t, "unused.md"), "/health")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Fatalf("health: %d %s", w.Code, w.Body.String())
	}
}

func TestGetBriefMissingFile(t *testing.T) {
	r := newTestRouter(t, filepath.Join(t.TempDir(), "none.md"))

	w := doGet(r, "/api/v1/brief")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var sum brief.Summary
	if err := json.Unmarshal(env.Data, &sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if sum.Exists || sum.Signal != brief.SignalRed || sum.Status != brief.StatusMissing {
		t.Fatalf("unexpected summary %+v", sum)
	}

	if w := doGet(r, "/api/v1/brief/raw"); w.Code != http.StatusNotFound {
		t.Fatalf("raw for missing file: status = %d", w.Code)
	}
}

func TestGetBriefSummaryAndRaw(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brief.md")
	end := time.Date(2024, 1, 3, 20, 0, 0, 0, time.UTC)
	report := brief.Render(nil, end.Add(-24*time.Hour), end)
	if err := brief.WriteFileAtomic(path, report); err != nil {
		t.Fatalf("write: %v", err)
	}
	r := newTestRouter(t, path)

	w := doGet(r, "/api/v1/brief")
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	var sum brief.Summary
	if err := json.Unmarshal(env.Data, &sum); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if env.Code != "ok" || !sum.Exists || len(sum.KeyLines) != 3 || sum.Signal != brief.SignalYellow {
		t.Fatalf("unexpected response %s", w.Body.String())
	}

	w = doGet(r, "/api/v1/brief/raw")
	if w.Code != http.StatusOK {
		t.Fatalf("raw status = %d", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/markdown") {
		t.Fatalf("unexpected content type %q", w.Header().Get("Content-Type"))
	}
	if w.Body.String() != report+"\n" {
		t.Fatalf("raw body mismatch")
	}
}

func TestArchiveEndpointsWithoutDatabase(t *testing.T) {
	r := newTestRouter(t, "unused.md")
	for _, path := range []string{"/api/v1/briefs", "/api/v1/briefs/dates?limit=5"} {
		if w := doGet(r, path); w.Code != http.StatusServiceUnavailable {
			t.Fatalf("%s: status = %d, want 503", path, w.Code)
		}
	}
	if w := doGet(r, "/api/v1/brief/raw?date=2024-01-03"); w.Code != http.StatusNotFound {
		t.Fatalf("archived raw without db: status = %d, want 404", w.Code)
	}
	if w := doGet(r, "/api/v1/brief/raw?date=yesterday"); w.Code != http.StatusBadRequest {
		t.Fatalf("invalid date: status = %d, want 400", w.Code)
	}
}
