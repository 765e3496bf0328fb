package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"todolists/internal/models"
	"todolists/internal/server"
	"todolists/internal/todo"
	"todolists/internal/todo/todotest"
)

func newTestClient(t *testing.T) (*Client, *todotest.FakeService) {
	t.Helper()
	svc := todotest.NewFakeService()
	srv := server.New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ts := httptest.NewServer(srv.Engine())
	t.Cleanup(ts.Close)

	c, err := New(ts.URL+"/", ts.Client())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c, svc
}

func TestNewRejectsBadURL(t *testing.T) {
	for _, raw := range []string{"", "ftp://example.com", "::nope"} {
		if _, err := New(raw, nil); err == nil {
			t.Errorf("expected error for %q", raw)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	c, svc := newTestClient(t)
	ctx := context.Background()

	listID, err := c.CreateList(ctx, "Groceries")
	if err != nil {
		t.Fatalf("create list: %v", err)
	}
	other, _ := c.CreateList(ctx, "Work")

	itemID, err := c.CreateItem(ctx, models.Item{ListID: listID, Title: "Milk"})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	if err := c.UpdateItem(ctx, itemID, models.Item{Title: "Milk", Done: true}); err != nil {
		t.Fatalf("update item: %v", err)
	}
	if err := c.UpdateItemDetail(ctx, itemID, models.ItemDetail{ListID: other, Priority: 3, Tag: "dairy"}); err != nil {
		t.Fatalf("update detail: %v", err)
	}
	if err := c.UpdateList(ctx, listID, "Shopping"); err != nil {
		t.Fatalf("update list: %v", err)
	}

	snap, err := c.ListAll(ctx)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(snap.Lists) != 2 || snap.Lists[0].Title != "Shopping" {
		t.Fatalf("unexpected lists: %+v", snap.Lists)
	}
	if items := snap.Lists[1].Items; len(items) != 1 || !items[0].Done || items[0].Priority != 3 {
		t.Errorf("expected moved done item, got %+v", items)
	}

	if err := c.DeleteItem(ctx, itemID); err != nil {
		t.Fatalf("delete item: %v", err)
	}
	if err := c.DeleteList(ctx, listID); err != nil {
		t.Fatalf("delete list: %v", err)
	}
	if _, ok := svc.Item(itemID); ok {
		t.Error("expected item gone")
	}
}

func TestValidationErrorIsMapped(t *testing.T) {
	c, _ := newTestClient(t)
	_, err := c.CreateList(context.Background(), "")
	v, ok := todo.IsValidation(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if got := v.FieldError("Title"); got != "Title is required." {
		t.Errorf("unexpected message %q", got)
	}
}

func TestNotFoundIsMapped(t *testing.T) {
	c, _ := newTestClient(t)
	err := c.DeleteItem(context.Background(), 77)
	var nf *todo.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected not found, got %v", err)
	}
	if nf.Kind != "item" || nf.ID != 77 {
		t.Errorf("unexpected not found: %+v", nf)
	}
}

func TestServerFailureIsTransport(t *testing.T) {
	c, svc := newTestClient(t)
	svc.ListAllErr = errors.New("boom")
	_, err := c.ListAll(context.Background())
	var te *todo.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestUnreachableIsTransport(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c, err := New(url, nil)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	_, err = c.ListAll(context.Background())
	var te *todo.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected transport error, got %v", err)
	}
}
