// Package todo holds the client-side list and item state machine: the Board
// store, its search and tag filters, and the lifecycle operations that
// reconcile optimistic local changes with a CRUD Service.
package todo

import (
	"context"

	"todolists/internal/models"
)

// Snapshot is everything the board needs at startup.
type Snapshot struct {
	Lists          []*models.List         `json:"lists"`
	PriorityLevels []models.PriorityLevel `json:"priorityLevels"`
}

// Service is the list/item CRUD backend the board talks to.
// Every call may fail with a ValidationError, NotFoundError or TransportError.
type Service interface {
	ListAll(ctx context.Context) (Snapshot, error)

	CreateList(ctx context.Context, title string) (int64, error)
	UpdateList(ctx context.Context, id int64, title string) error
	DeleteList(ctx context.Context, id int64) error

	CreateItem(ctx context.Context, item models.Item) (int64, error)
	UpdateItem(ctx context.Context, id int64, item models.Item) error
	UpdateItemDetail(ctx context.Context, id int64, detail models.ItemDetail) error
	DeleteItem(ctx context.Context, id int64) error
}
