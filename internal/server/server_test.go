package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"todolists/internal/models"
	"todolists/internal/todo"
	"todolists/internal/todo/todotest"
)

func newTestServer(t *testing.T) (*Server, *todotest.FakeService) {
	t.Helper()
	svc := todotest.NewFakeService()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(svc, logger), svc
}

func serve(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := serve(srv, http.MethodGet, "/api/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Header().Get(requestIDHeader) == "" {
		t.Error("expected request id header")
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/healthz", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	srv.Engine().ServeHTTP(rec, req)
	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Errorf("expected caller id echoed, got %q", got)
	}
}

func TestListAll(t *testing.T) {
	srv, svc := newTestServer(t)
	id := svc.AddList("Groceries")
	svc.AddItem(id, models.Item{Title: "Milk", Tag: "dairy"})

	rec := serve(srv, http.MethodGet, "/api/lists", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var snap todo.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(snap.Lists) != 1 || len(snap.Lists[0].Items) != 1 || snap.Lists[0].Items[0].Tag != "dairy" {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if len(snap.PriorityLevels) != len(models.PriorityLevels) {
		t.Errorf("expected priority levels, got %v", snap.PriorityLevels)
	}
}

func TestCreateList(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := serve(srv, http.MethodPost, "/api/lists", `{"title":"Work"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var out createdResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil || out.ID == 0 {
		t.Errorf("expected id in body, got %s (%v)", rec.Body.String(), err)
	}
}

func TestCreateListValidation(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := serve(srv, http.MethodPost, "/api/lists", `{"title":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var body struct {
		Errors map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := body.Errors["Title"]; len(got) != 1 || got[0] != "Title is required." {
		t.Errorf("unexpected field errors: %v", body.Errors)
	}
}

func TestMalformedBody(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := serve(srv, http.MethodPost, "/api/lists", `{"title":`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestInvalidIdentifier(t *testing.T) {
	srv, _ := newTestServer(t)
	for _, path := range []string{"/api/lists/abc", "/api/lists/0", "/api/items/-1"} {
		rec := serve(srv, http.MethodDelete, path, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, rec.Code)
		}
	}
}

func TestNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	rec := serve(srv, http.MethodPut, "/api/lists/42", `{"title":"x"}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "list 42 not found") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}

	rec = serve(srv, http.MethodGet, "/api/nowhere", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 for unknown route, got %d", rec.Code)
	}
}

func TestBackendFailure(t *testing.T) {
	srv, svc := newTestServer(t)
	svc.ListAllErr = errors.New("disk on fire")
	rec := serve(srv, http.MethodGet, "/api/lists", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestItemRoutes(t *testing.T) {
	srv, svc := newTestServer(t)
	groceries := svc.AddList("Groceries")
	work := svc.AddList("Work")

	rec := serve(srv, http.MethodPost, "/api/items", `{"listId":`+itoa(groceries)+`,"title":"Milk"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created createdResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &created)
	path := "/api/items/" + itoa(created.ID)

	rec = serve(srv, http.MethodPut, path, `{"title":"Oat milk","done":true}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("update: expected 204, got %d", rec.Code)
	}

	rec = serve(srv, http.MethodPut, path+"/detail", `{"listId":`+itoa(work)+`,"priority":2,"note":"n","color":"#f00","tag":"a,b"}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("detail: expected 204, got %d", rec.Code)
	}

	item, ok := svc.Item(created.ID)
	if !ok {
		t.Fatal("item missing from service")
	}
	if item.Title != "Oat milk" || !item.Done || item.ListID != work || item.Priority != 2 || item.Tag != "a,b" {
		t.Errorf("unexpected stored item: %+v", item)
	}

	rec = serve(srv, http.MethodDelete, path, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204, got %d", rec.Code)
	}
	if _, ok := svc.Item(created.ID); ok {
		t.Error("expected item removed")
	}
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
