// Package client implements todo.Service against the HTTP API of internal/server.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"todolists/internal/models"
	"todolists/internal/todo"
)

// Client talks to a todo API server.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ todo.Service = (*Client)(nil)

// New creates a client for the server at baseURL (for example http://localhost:8080).
func New(baseURL string, httpClient *http.Client) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("api url must be http or https: %q", baseURL)
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: u.String(), http: httpClient}, nil
}

type errorBody struct {
	Error  string              `json:"error"`
	Errors map[string][]string `json:"errors"`
}

type idBody struct {
	ID int64 `json:"id"`
}

// ListAll implements todo.Service.
func (c *Client) ListAll(ctx context.Context) (todo.Snapshot, error) {
	var snap todo.Snapshot
	err := c.do(ctx, "list all", http.MethodGet, "/api/lists", nil, &snap, "list", 0)
	return snap, err
}

// CreateList implements todo.Service.
func (c *Client) CreateList(ctx context.Context, title string) (int64, error) {
	var out idBody
	err := c.do(ctx, "create list", http.MethodPost, "/api/lists", map[string]string{"title": title}, &out, "list", 0)
	return out.ID, err
}

// UpdateList implements todo.Service.
func (c *Client) UpdateList(ctx context.Context, id int64, title string) error {
	body := map[string]any{"id": id, "title": title}
	return c.do(ctx, "update list", http.MethodPut, fmt.Sprintf("/api/lists/%d", id), body, nil, "list", id)
}

// DeleteList implements todo.Service.
func (c *Client) DeleteList(ctx context.Context, id int64) error {
	return c.do(ctx, "delete list", http.MethodDelete, fmt.Sprintf("/api/lists/%d", id), nil, nil, "list", id)
}

// CreateItem implements todo.Service.
func (c *Client) CreateItem(ctx context.Context, item models.Item) (int64, error) {
	var out idBody
	err := c.do(ctx, "create item", http.MethodPost, "/api/items", item, &out, "list", item.ListID)
	return out.ID, err
}

// UpdateItem implements todo.Service.
func (c *Client) UpdateItem(ctx context.Context, id int64, item models.Item) error {
	return c.do(ctx, "update item", http.MethodPut, fmt.Sprintf("/api/items/%d", id), item, nil, "item", id)
}

// UpdateItemDetail implements todo.Service.
func (c *Client) UpdateItemDetail(ctx context.Context, id int64, detail models.ItemDetail) error {
	return c.do(ctx, "update item detail", http.MethodPut, fmt.Sprintf("/api/items/%d/detail", id), detail, nil, "item", id)
}

// DeleteItem implements todo.Service.
func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.do(ctx, "delete item", http.MethodDelete, fmt.Sprintf("/api/items/%d", id), nil, nil, "item", id)
}

// do sends one request. kind and id describe the entity reported on a 404.
func (c *Client) do(ctx context.Context, op, method, path string, in, out any, kind string, id int64) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("%s: encode request: %w", op, err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("%s: build request: %w", op, err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &todo.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%s: decode response: %w", op, err)
		}
		return nil
	}

	var eb errorBody
	_ = json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&eb)

	switch {
	case resp.StatusCode == http.StatusBadRequest && len(eb.Errors) > 0:
		return &todo.ValidationError{Fields: eb.Errors}
	case resp.StatusCode == http.StatusNotFound:
		return &todo.NotFoundError{Kind: kind, ID: id}
	case resp.StatusCode >= 500:
		return &todo.TransportError{Op: op, Err: errors.New(statusText(resp.StatusCode, eb.Error))}
	default:
		return fmt.Errorf("%s: %s", op, statusText(resp.StatusCode, eb.Error))
	}
}

func statusText(code int, msg string) string {
	if msg == "" {
		return fmt.Sprintf("status %d", code)
	}
	return fmt.Sprintf("status %d: %s", code, msg)
}
