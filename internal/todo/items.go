package todo

import (
	"context"
	"fmt"
	"log/slog"

	"todolists/internal/models"
)

// ItemFocusTarget names the title input of the item displayed at index.
func ItemFocusTarget(index int) string {
	return fmt.Sprintf("itemTitle%d", index)
}

// AddItem appends a blank, unpersisted item to the active list and starts
// editing its title.
func (b *Board) AddItem() *models.Item {
	list := b.selected
	if list == nil {
		return nil
	}
	item := &models.Item{
		ListID:   list.ID,
		Priority: b.defaultPriority(),
	}
	b.appendItem(list, item)
	b.EditItem(item)
	return item
}

// EditItem puts item's title into edit mode and asks for focus on its row.
func (b *Board) EditItem(item *models.Item) {
	b.editing = item
	for i, shown := range b.Items() {
		if shown == item {
			b.focus(ItemFocusTarget(i), itemFocusDelay)
			break
		}
	}
}

// CommitItem persists an edited item. A blank title deletes it instead. When a
// new item is committed with Enter another blank item follows shortly.
func (b *Board) CommitItem(item *models.Item, pressedEnter bool) {
	isNew := !item.Persisted()

	if item.Blank() {
		b.DeleteItem(item, false)
		return
	}

	payload := *item
	if isNew {
		if b.selected != nil {
			payload.ListID = b.selected.ID
		}
		var id int64
		b.rt.Go("create item", func(ctx context.Context) error {
			var err error
			id, err = b.svc.CreateItem(ctx, payload)
			return err
		}, func(err error) {
			if err != nil {
				b.logFailure("create item", err)
				return
			}
			item.ID = id
		})
	} else {
		b.rt.Go("update item", func(ctx context.Context) error {
			return b.svc.UpdateItem(ctx, payload.ID, payload)
		}, func(err error) {
			if err != nil {
				b.logFailure("update item", err)
				return
			}
			b.logger.Debug("update succeeded", slog.Int64("item", payload.ID))
		})
	}

	b.editing = nil

	if isNew && pressedEnter {
		b.rt.After(addItemDelay, func() { b.AddItem() })
	}
}

// ToggleDone flips the done flag and commits the item.
func (b *Board) ToggleDone(item *models.Item) {
	item.Done = !item.Done
	b.CommitItem(item, false)
}

// OpenItemDetail opens the detail editor on item.
func (b *Board) OpenItemDetail(item *models.Item) *models.ItemDetailDraft {
	b.detailItem = item
	b.itemDetail = &models.ItemDetailDraft{
		ID:       item.ID,
		ListID:   item.ListID,
		Priority: item.Priority,
		Note:     item.Note,
		Color:    item.Color,
		Tags:     SplitTags(item.Tag),
	}
	return b.itemDetail
}

// CloseItemDetail closes the detail editor and cancels a running countdown.
func (b *Board) CloseItemDetail() {
	b.StopDeleteCountdown()
	b.detailItem = nil
	b.itemDetail = nil
}

// UpdateItemDetails submits the open detail editor.
func (b *Board) UpdateItemDetails() {
	if b.detailItem == nil || b.itemDetail == nil {
		return
	}
	b.UpdateItemDetail(b.detailItem, *b.itemDetail)
}

// UpdateItemDetail applies priority, note, color and tags to item. A different
// list identifier moves the item to that list. The tag index is rebuilt
// afterwards.
func (b *Board) UpdateItemDetail(item *models.Item, draft models.ItemDetailDraft) {
	detail := models.ItemDetail{
		ListID:   draft.ListID,
		Priority: draft.Priority,
		Note:     draft.Note,
		Color:    draft.Color,
		Tag:      JoinTags(draft.Tags),
	}
	if detail.ListID == 0 {
		detail.ListID = item.ListID
	}

	// Unpersisted items carry their details into the create call.
	if !item.Persisted() {
		b.applyDetail(item, detail)
		return
	}

	id := item.ID
	b.rt.Go("update item detail", func(ctx context.Context) error {
		return b.svc.UpdateItemDetail(ctx, id, detail)
	}, func(err error) {
		if err != nil {
			b.logFailure("update item detail", err)
			return
		}
		b.applyDetail(item, detail)
	})
}

func (b *Board) applyDetail(item *models.Item, detail models.ItemDetail) {
	if item.ListID != detail.ListID {
		b.moveItem(item, detail.ListID)
	}
	item.Priority = detail.Priority
	item.Note = detail.Note
	item.Color = detail.Color
	item.Tag = detail.Tag
	b.RefreshTags()

	if b.detailItem == item {
		b.CloseItemDetail()
	}
}

// moveItem relocates item from its current list to the list with destID.
func (b *Board) moveItem(item *models.Item, destID int64) {
	dest := b.findList(destID)
	if dest == nil {
		b.logger.Warn("move target list not found", slog.Int64("item", item.ID), slog.Int64("list", destID))
		return
	}
	b.removeItem(item)
	item.ListID = destID
	b.appendItem(dest, item)
}

// DeleteItem deletes item. With countdown set it starts a cancellable
// countdown instead; calling it again with countdown while one is running
// cancels it. Only one countdown runs at a time across all items.
func (b *Board) DeleteItem(item *models.Item, countdown bool) {
	if countdown {
		if b.deleting {
			b.StopDeleteCountdown()
			return
		}
		b.deleting = true
		b.countdown = DeleteCountdownTicks
		b.countdownItem = item
		b.countdownTimer = b.rt.Every(DeleteCountdownTick, func() {
			if !b.deleting {
				return
			}
			b.countdown--
			if b.countdown <= 0 {
				b.DeleteItem(item, false)
			}
		})
		return
	}

	b.StopDeleteCountdown()
	if b.detailItem != nil {
		b.detailItem = nil
		b.itemDetail = nil
	}
	if b.editing == item {
		b.editing = nil
	}

	if !item.Persisted() {
		b.removeItem(item)
		return
	}

	id := item.ID
	b.rt.Go("delete item", func(ctx context.Context) error {
		return b.svc.DeleteItem(ctx, id)
	}, func(err error) {
		if err != nil {
			b.logFailure("delete item", err)
			return
		}
		b.removeItem(item)
	})
}

// StopDeleteCountdown cancels a running countdown.
func (b *Board) StopDeleteCountdown() {
	if b.countdownTimer != nil {
		b.countdownTimer.Stop()
		b.countdownTimer = nil
	}
	b.countdown = 0
	b.deleting = false
	b.countdownItem = nil
}

// Countdown returns the remaining ticks, the item it will delete and whether
// a countdown is running.
func (b *Board) Countdown() (remaining int, item *models.Item, active bool) {
	return b.countdown, b.countdownItem, b.deleting
}

func (b *Board) defaultPriority() int {
	if len(b.levels) == 0 {
		return 0
	}
	return b.levels[0].Value
}
