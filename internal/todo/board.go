package todo

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"todolists/internal/models"
)

const (
	// DeleteCountdownTicks is how many countdown ticks pass before a countdown delete fires.
	DeleteCountdownTicks = 3
	// DeleteCountdownTick is the length of one countdown tick.
	DeleteCountdownTick = time.Second

	addItemDelay   = 250 * time.Millisecond
	itemFocusDelay = 100 * time.Millisecond
	listFocusDelay = 250 * time.Millisecond
)

// FocusNewListTitle is the focus target of the create-list title field.
const FocusNewListTitle = "title"

// Options configures a Board.
type Options struct {
	Logger *slog.Logger
	// OnFocus receives advisory focus requests for presentation elements.
	OnFocus func(target string)
}

// Board owns the in-memory lists and items. It must only be driven from the
// Runtime's loop: user actions call its methods directly and service
// completions arrive through the Runtime.
type Board struct {
	svc     Service
	rt      Runtime
	logger  *slog.Logger
	onFocus func(string)

	loaded   bool
	lists    []*models.List
	levels   []models.PriorityLevel
	selected *models.List
	tags     []string
	search   Search

	editing    *models.Item
	detailItem *models.Item

	newList     *models.NewListDraft
	listOptions *models.ListOptionsDraft
	itemDetail  *models.ItemDetailDraft

	deleting       bool
	countdown      int
	countdownItem  *models.Item
	countdownTimer Timer
}

// NewBoard creates an empty board backed by svc.
func NewBoard(svc Service, rt Runtime, opts Options) *Board {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Board{
		svc:     svc,
		rt:      rt,
		logger:  logger,
		onFocus: opts.OnFocus,
	}
}

// Load fetches lists and priority levels, selects the first list and builds
// its tag index.
func (b *Board) Load() {
	var snap Snapshot
	b.rt.Go("list all", func(ctx context.Context) error {
		var err error
		snap, err = b.svc.ListAll(ctx)
		return err
	}, func(err error) {
		if err != nil {
			b.logFailure("list all", err)
			return
		}
		b.loaded = true
		b.lists = snap.Lists
		b.levels = snap.PriorityLevels
		for _, list := range b.lists {
			if list.Items == nil {
				list.Items = []*models.Item{}
			}
		}
		if len(b.lists) > 0 {
			b.Select(b.lists[0])
			b.RefreshTags()
		}
	})
}

// Loaded reports whether the initial snapshot has arrived.
func (b *Board) Loaded() bool { return b.loaded }

// Lists returns the list collection in display order.
func (b *Board) Lists() []*models.List { return b.lists }

// Selected returns the active list, or nil when there are no lists.
func (b *Board) Selected() *models.List { return b.selected }

// Items returns the displayed (possibly filtered) items of the active list.
func (b *Board) Items() []*models.Item {
	if b.selected == nil {
		return nil
	}
	return b.selected.Items
}

// PriorityLevels returns the levels supplied by the backend.
func (b *Board) PriorityLevels() []models.PriorityLevel { return b.levels }

// Tags returns the tag index of the active list.
func (b *Board) Tags() []string { return b.tags }

// Editing returns the item whose title is being edited, if any.
func (b *Board) Editing() *models.Item { return b.editing }

// DetailItem returns the item open in the detail editor, if any.
func (b *Board) DetailItem() *models.Item { return b.detailItem }

// NewListDraft returns the open create-list form, if any.
func (b *Board) NewListDraft() *models.NewListDraft { return b.newList }

// ListOptionsDraft returns the open rename-list form, if any.
func (b *Board) ListOptionsDraft() *models.ListOptionsDraft { return b.listOptions }

// ItemDetailDraft returns the open item-detail form, if any.
func (b *Board) ItemDetailDraft() *models.ItemDetailDraft { return b.itemDetail }

// Select makes list the active list. Any search on the previous list is
// cleared first. The tag index is left as is.
func (b *Board) Select(list *models.List) {
	if list == b.selected {
		return
	}
	b.search.Attach(list)
	b.selected = list
}

// RefreshTags rebuilds the tag index over every item of the active list,
// including items hidden by the search.
func (b *Board) RefreshTags() {
	if b.selected == nil {
		b.tags = nil
		return
	}
	b.tags = BuildTagIndex(b.allItems(b.selected))
}

// RemainingItems counts the items of list that are not done.
func (b *Board) RemainingItems(list *models.List) int {
	n := 0
	for _, item := range b.allItems(list) {
		if !item.Done {
			n++
		}
	}
	return n
}

// SearchCriteria returns the active tag tokens and title substring.
func (b *Board) SearchCriteria() ([]string, string) { return b.search.Criteria() }

// AddSearchTag narrows the displayed items to those carrying token (any-of).
func (b *Board) AddSearchTag(token string) { b.search.AddTag(token) }

// RemoveSearchTag drops token from the tag criteria.
func (b *Board) RemoveSearchTag(token string) { b.search.RemoveTag(token) }

// SetSearchTitle sets the title substring criterion.
func (b *Board) SetSearchTitle(text string) { b.search.SetTitle(text) }

// ClearSearch removes every criterion and restores the active list.
func (b *Board) ClearSearch() { b.search.Clear() }

// allItems returns every item of list, looking through an active search.
func (b *Board) allItems(list *models.List) []*models.Item {
	if list == b.search.List() && b.search.Filtering() {
		return b.search.parked
	}
	return list.Items
}

func (b *Board) findList(id int64) *models.List {
	for _, list := range b.lists {
		if list.ID == id {
			return list
		}
	}
	return nil
}

func (b *Board) appendItem(list *models.List, item *models.Item) {
	list.Items = append(list.Items, item)
	if list == b.search.List() {
		b.search.Track(item)
	}
}

// removeItem drops item from whichever list holds it. Persisted items also
// match by identifier.
func (b *Board) removeItem(item *models.Item) {
	id := item.ID
	match := func(p *models.Item) bool {
		return p == item || (id != 0 && p.ID == id)
	}
	for _, list := range b.lists {
		list.Items = slices.DeleteFunc(list.Items, match)
	}
	if b.search.Filtering() {
		b.search.parked = slices.DeleteFunc(b.search.parked, match)
	}
}

func (b *Board) focus(target string, delay time.Duration) {
	if b.onFocus == nil {
		return
	}
	b.rt.After(delay, func() { b.onFocus(target) })
}

func (b *Board) logFailure(op string, err error) {
	b.logger.Error("service call failed", slog.String("op", op), slog.String("error", err.Error()))
}
