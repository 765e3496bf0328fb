// Package todotest provides in-memory doubles for exercising the todo board.
package todotest

import (
	"context"
	"strings"
	"sync"

	"todolists/internal/models"
	"todolists/internal/todo"
)

// FakeService is an in-memory implementation of todo.Service for testing.
type FakeService struct {
	mu     sync.Mutex
	lists  []*models.List
	nextID int64
	calls  []string

	// Error injection for testing
	ListAllErr          error
	CreateListErr       error
	UpdateListErr       error
	DeleteListErr       error
	CreateItemErr       error
	UpdateItemErr       error
	UpdateItemDetailErr error
	DeleteItemErr       error
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{nextID: 100}
}

// AddList seeds a list and returns its identifier.
func (f *FakeService) AddList(title string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.lists = append(f.lists, &models.List{ID: f.nextID, Title: title, Items: []*models.Item{}})
	return f.nextID
}

// AddItem seeds an item into listID and returns its identifier.
func (f *FakeService) AddItem(listID int64, item models.Item) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.find(listID)
	if list == nil {
		return 0
	}
	f.nextID++
	item.ID = f.nextID
	item.ListID = listID
	list.Items = append(list.Items, &item)
	return item.ID
}

// Calls returns the operations invoked so far, in order.
func (f *FakeService) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

// Item returns a copy of the stored item with id.
func (f *FakeService) Item(id int64) (models.Item, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, list := range f.lists {
		for _, item := range list.Items {
			if item.ID == id {
				return *item, true
			}
		}
	}
	return models.Item{}, false
}

// ListAll implements todo.Service.
func (f *FakeService) ListAll(ctx context.Context) (todo.Snapshot, error) {
	f.record("ListAll")
	if f.ListAllErr != nil {
		return todo.Snapshot{}, f.ListAllErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := todo.Snapshot{PriorityLevels: append([]models.PriorityLevel(nil), models.PriorityLevels...)}
	for _, l := range f.lists {
		list := &models.List{ID: l.ID, Title: l.Title, Items: make([]*models.Item, 0, len(l.Items))}
		for _, item := range l.Items {
			cp := *item
			list.Items = append(list.Items, &cp)
		}
		snap.Lists = append(snap.Lists, list)
	}
	return snap, nil
}

// CreateList implements todo.Service.
func (f *FakeService) CreateList(ctx context.Context, title string) (int64, error) {
	f.record("CreateList")
	if f.CreateListErr != nil {
		return 0, f.CreateListErr
	}
	if strings.TrimSpace(title) == "" {
		return 0, todo.NewValidationError("Title", "Title is required.")
	}
	return f.AddList(title), nil
}

// UpdateList implements todo.Service.
func (f *FakeService) UpdateList(ctx context.Context, id int64, title string) error {
	f.record("UpdateList")
	if f.UpdateListErr != nil {
		return f.UpdateListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	list := f.find(id)
	if list == nil {
		return &todo.NotFoundError{Kind: "list", ID: id}
	}
	list.Title = title
	return nil
}

// DeleteList implements todo.Service.
func (f *FakeService) DeleteList(ctx context.Context, id int64) error {
	f.record("DeleteList")
	if f.DeleteListErr != nil {
		return f.DeleteListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, l := range f.lists {
		if l.ID == id {
			f.lists = append(f.lists[:i], f.lists[i+1:]...)
			return nil
		}
	}
	return &todo.NotFoundError{Kind: "list", ID: id}
}

// CreateItem implements todo.Service.
func (f *FakeService) CreateItem(ctx context.Context, item models.Item) (int64, error) {
	f.record("CreateItem")
	if f.CreateItemErr != nil {
		return 0, f.CreateItemErr
	}
	f.mu.Lock()
	exists := f.find(item.ListID) != nil
	f.mu.Unlock()
	if !exists {
		return 0, &todo.NotFoundError{Kind: "list", ID: item.ListID}
	}
	return f.AddItem(item.ListID, item), nil
}

// UpdateItem implements todo.Service.
func (f *FakeService) UpdateItem(ctx context.Context, id int64, item models.Item) error {
	f.record("UpdateItem")
	if f.UpdateItemErr != nil {
		return f.UpdateItemErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, _ := f.findItem(id)
	if stored == nil {
		return &todo.NotFoundError{Kind: "item", ID: id}
	}
	stored.Title = item.Title
	stored.Done = item.Done
	return nil
}

// UpdateItemDetail implements todo.Service.
func (f *FakeService) UpdateItemDetail(ctx context.Context, id int64, detail models.ItemDetail) error {
	f.record("UpdateItemDetail")
	if f.UpdateItemDetailErr != nil {
		return f.UpdateItemDetailErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, owner := f.findItem(id)
	if stored == nil {
		return &todo.NotFoundError{Kind: "item", ID: id}
	}
	if detail.ListID != owner.ID {
		dest := f.find(detail.ListID)
		if dest == nil {
			return &todo.NotFoundError{Kind: "list", ID: detail.ListID}
		}
		owner.Items = removeItem(owner.Items, id)
		dest.Items = append(dest.Items, stored)
		stored.ListID = dest.ID
	}
	stored.Priority = detail.Priority
	stored.Note = detail.Note
	stored.Color = detail.Color
	stored.Tag = detail.Tag
	return nil
}

// DeleteItem implements todo.Service.
func (f *FakeService) DeleteItem(ctx context.Context, id int64) error {
	f.record("DeleteItem")
	if f.DeleteItemErr != nil {
		return f.DeleteItemErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, owner := f.findItem(id)
	if stored == nil {
		return &todo.NotFoundError{Kind: "item", ID: id}
	}
	owner.Items = removeItem(owner.Items, id)
	return nil
}

func (f *FakeService) record(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, op)
}

func (f *FakeService) find(id int64) *models.List {
	for _, l := range f.lists {
		if l.ID == id {
			return l
		}
	}
	return nil
}

func (f *FakeService) findItem(id int64) (*models.Item, *models.List) {
	for _, l := range f.lists {
		for _, item := range l.Items {
			if item.ID == id {
				return item, l
			}
		}
	}
	return nil, nil
}

func removeItem(items []*models.Item, id int64) []*models.Item {
	out := items[:0]
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}
