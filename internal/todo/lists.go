package todo

import (
	"context"
	"slices"

	"todolists/internal/models"
)

// BeginNewList opens an empty create-list form.
func (b *Board) BeginNewList() *models.NewListDraft {
	b.newList = &models.NewListDraft{}
	b.focus(FocusNewListTitle, listFocusDelay)
	return b.newList
}

// CancelNewList discards the create-list form.
func (b *Board) CancelNewList() {
	b.newList = nil
}

// CreateList submits the create-list form. On success the new list is
// appended and selected; a title validation message is copied into the form.
func (b *Board) CreateList() {
	draft := b.newList
	if draft == nil {
		return
	}
	title := draft.Title

	var id int64
	b.rt.Go("create list", func(ctx context.Context) error {
		var err error
		id, err = b.svc.CreateList(ctx, title)
		return err
	}, func(err error) {
		if err != nil {
			if v, ok := IsValidation(err); ok {
				if msg := v.FieldError("Title"); msg != "" {
					draft.Error = msg
				}
			}
			b.logFailure("create list", err)
			b.focus(FocusNewListTitle, listFocusDelay)
			return
		}

		list := &models.List{ID: id, Title: title, Items: []*models.Item{}}
		b.lists = append(b.lists, list)
		b.Select(list)
		if b.newList == draft {
			b.newList = nil
		}
	})
}

// OpenListOptions opens the rename form for the active list.
func (b *Board) OpenListOptions() *models.ListOptionsDraft {
	if b.selected == nil {
		return nil
	}
	b.listOptions = &models.ListOptionsDraft{ID: b.selected.ID, Title: b.selected.Title}
	return b.listOptions
}

// CancelListOptions discards the rename form.
func (b *Board) CancelListOptions() {
	b.listOptions = nil
}

// UpdateListOptions submits the rename form.
func (b *Board) UpdateListOptions() {
	draft := b.listOptions
	if draft == nil || b.selected == nil {
		return
	}
	b.RenameList(b.selected, draft.Title)
}

// RenameList renames list; the in-memory title changes once the service confirms.
func (b *Board) RenameList(list *models.List, title string) {
	id := list.ID
	b.rt.Go("update list", func(ctx context.Context) error {
		return b.svc.UpdateList(ctx, id, title)
	}, func(err error) {
		if err != nil {
			b.logFailure("update list", err)
			return
		}
		list.Title = title
		if b.listOptions != nil && b.listOptions.ID == id {
			b.listOptions = nil
		}
	})
}

// DeleteSelectedList deletes the active list.
func (b *Board) DeleteSelectedList() {
	if b.selected == nil {
		return
	}
	b.DeleteList(b.selected)
}

// DeleteList deletes list. When it was active the first remaining list
// becomes active, or none when no list is left.
func (b *Board) DeleteList(list *models.List) {
	id := list.ID
	b.rt.Go("delete list", func(ctx context.Context) error {
		return b.svc.DeleteList(ctx, id)
	}, func(err error) {
		if err != nil {
			b.logFailure("delete list", err)
			return
		}
		b.lists = slices.DeleteFunc(b.lists, func(l *models.List) bool { return l.ID == id })
		b.listOptions = nil
		if b.selected != list {
			return
		}
		if len(b.lists) > 0 {
			b.Select(b.lists[0])
		} else {
			b.Select(nil)
		}
	})
}
