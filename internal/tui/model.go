// Package tui is the terminal front end of the board. Every key maps onto a
// todo.Board entry point, and the board's continuations are delivered back
// into the program as messages so all state changes happen inside Update.
package tui

import (
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todolists/internal/models"
	"todolists/internal/todo"
)

type mode int

const (
	modeBrowse mode = iota
	modeEditTitle
	modeSearch
	modeTags
	modeNewList
	modeListOptions
	modeDetail
)

type pane int

const (
	paneLists pane = iota
	paneItems
)

// Detail form fields, in tab order.
const (
	fieldPriority = iota
	fieldList
	fieldNote
	fieldColor
	fieldTags
	fieldCount
)

// runMsg carries a board continuation into Update.
type runMsg func()

// focusQueue collects focus targets raised by the board. It is only touched
// from Update.
type focusQueue struct {
	targets []string
}

func (q *focusQueue) drain() []string {
	out := q.targets
	q.targets = nil
	return out
}

// Model is the bubbletea model of the board screen.
type Model struct {
	board  *todo.Board
	focus  *focusQueue
	keys   KeyMap
	styles Styles
	help   help.Model

	width  int
	height int

	mode       mode
	pane       pane
	itemCursor int
	tagCursor  int

	// The board objects currently loaded into an input.
	editing      *models.Item
	newListDraft *models.NewListDraft
	optionsDraft *models.ListOptionsDraft
	detailDraft  *models.ItemDetailDraft

	titleInput  textinput.Model
	searchInput textinput.Model
	formInput   textinput.Model

	detailField int
	noteInput   textinput.Model
	colorInput  textinput.Model
	tagsInput   textinput.Model
}

// New creates the board screen over svc. Service calls and timers are
// scheduled on rt.
func New(svc todo.Service, rt todo.Runtime, logger *slog.Logger) Model {
	focus := &focusQueue{}
	board := todo.NewBoard(svc, rt, todo.Options{
		Logger:  logger,
		OnFocus: func(target string) { focus.targets = append(focus.targets, target) },
	})

	h := help.New()
	h.ShowAll = false

	return Model{
		board:       board,
		focus:       focus,
		keys:        DefaultKeyMap(),
		styles:      DefaultStyles(),
		help:        h,
		pane:        paneLists,
		titleInput:  newInput("item title", ""),
		searchInput: newInput("search titles", "/ "),
		formInput:   newInput("list title", ""),
		noteInput:   newInput("note", ""),
		colorInput:  newInput("#rrggbb", ""),
		tagsInput:   newInput("tag,tag", ""),
	}
}

func newInput(placeholder, prompt string) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = prompt
	ti.CharLimit = 200
	return ti
}

// Board exposes the underlying board.
func (m Model) Board() *todo.Board { return m.board }

// Init loads the board.
func (m Model) Init() tea.Cmd {
	board := m.board
	return func() tea.Msg { return runMsg(board.Load) }
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case runMsg:
		msg()

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	default:
		cmds = append(cmds, m.updateActiveInput(msg))
	}

	cmds = append(cmds, m.sync())
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	switch m.mode {
	case modeEditTitle:
		return m.handleEditTitle(msg)
	case modeSearch:
		return m.handleSearch(msg)
	case modeTags:
		return m.handleTags(msg)
	case modeNewList:
		return m.handleNewList(msg)
	case modeListOptions:
		return m.handleListOptions(msg)
	case modeDetail:
		return m.handleDetail(msg)
	}
	return m.handleBrowse(msg)
}

func (m *Model) handleBrowse(msg tea.KeyMsg) tea.Cmd {
	b := m.board

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return nil
	case key.Matches(msg, m.keys.Pane):
		if m.pane == paneLists {
			m.pane = paneItems
		} else {
			m.pane = paneLists
		}
		return nil
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
		return nil
	case key.Matches(msg, m.keys.Down):
		m.move(1)
		return nil
	case key.Matches(msg, m.keys.NewList):
		b.BeginNewList()
		return nil
	case key.Matches(msg, m.keys.ListOptions):
		b.OpenListOptions()
		return nil
	case key.Matches(msg, m.keys.Search):
		_, title := b.SearchCriteria()
		m.searchInput.SetValue(title)
		m.searchInput.CursorEnd()
		m.mode = modeSearch
		return m.searchInput.Focus()
	case key.Matches(msg, m.keys.Tags):
		if len(b.Tags()) > 0 {
			m.mode = modeTags
		}
		return nil
	case key.Matches(msg, m.keys.ClearSearch):
		b.ClearSearch()
		m.searchInput.SetValue("")
		return nil
	case key.Matches(msg, m.keys.Add):
		m.pane = paneItems
		b.AddItem()
		return nil
	}

	if m.pane == paneLists {
		if msg.Type == tea.KeyEnter {
			m.pane = paneItems
		}
		return nil
	}

	item := m.currentItem()
	if item == nil {
		return nil
	}
	switch {
	case key.Matches(msg, m.keys.Edit):
		b.EditItem(item)
	case key.Matches(msg, m.keys.Toggle):
		b.ToggleDone(item)
	case key.Matches(msg, m.keys.Detail):
		b.OpenItemDetail(item)
	case key.Matches(msg, m.keys.Countdown):
		b.DeleteItem(item, true)
	case key.Matches(msg, m.keys.DeleteItem):
		b.DeleteItem(item, false)
	}
	return nil
}

// move shifts the cursor of the focused pane. In the lists pane the list
// under the cursor becomes active.
func (m *Model) move(delta int) {
	if m.pane == paneItems {
		m.itemCursor = clamp(m.itemCursor+delta, len(m.board.Items()))
		return
	}
	lists := m.board.Lists()
	if len(lists) == 0 {
		return
	}
	i := clamp(m.listIndex()+delta, len(lists))
	m.board.Select(lists[i])
	m.itemCursor = 0
}

func (m *Model) handleEditTitle(msg tea.KeyMsg) tea.Cmd {
	item := m.editing
	switch {
	case key.Matches(msg, m.keys.Confirm):
		item.Title = m.titleInput.Value()
		m.board.CommitItem(item, true)
		return nil
	case key.Matches(msg, m.keys.Cancel):
		item.Title = m.titleInput.Value()
		m.board.CommitItem(item, false)
		return nil
	}
	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return cmd
}

func (m *Model) handleSearch(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.searchInput.Blur()
		m.mode = modeBrowse
		return nil
	case key.Matches(msg, m.keys.Cancel):
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.board.SetSearchTitle("")
		m.mode = modeBrowse
		return nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.board.SetSearchTitle(m.searchInput.Value())
	m.itemCursor = 0
	return cmd
}

func (m *Model) handleTags(msg tea.KeyMsg) tea.Cmd {
	tags := m.board.Tags()
	switch {
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Tags):
		m.mode = modeBrowse
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		m.tagCursor = clamp(m.tagCursor-1, len(tags))
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
		m.tagCursor = clamp(m.tagCursor+1, len(tags))
	case key.Matches(msg, m.keys.ClearSearch):
		m.board.ClearSearch()
	case key.Matches(msg, m.keys.Select):
		if len(tags) == 0 {
			return nil
		}
		token := tags[m.tagCursor]
		active, _ := m.board.SearchCriteria()
		if slices.Contains(active, token) {
			m.board.RemoveSearchTag(token)
		} else {
			m.board.AddSearchTag(token)
		}
		m.itemCursor = 0
	}
	return nil
}

func (m *Model) handleNewList(msg tea.KeyMsg) tea.Cmd {
	draft := m.newListDraft
	switch {
	case key.Matches(msg, m.keys.Confirm):
		draft.Title = m.formInput.Value()
		m.board.CreateList()
		return nil
	case key.Matches(msg, m.keys.Cancel):
		m.board.CancelNewList()
		return nil
	}
	var cmd tea.Cmd
	m.formInput, cmd = m.formInput.Update(msg)
	draft.Title = m.formInput.Value()
	return cmd
}

func (m *Model) handleListOptions(msg tea.KeyMsg) tea.Cmd {
	draft := m.optionsDraft
	switch {
	case key.Matches(msg, m.keys.Confirm):
		draft.Title = m.formInput.Value()
		m.board.UpdateListOptions()
		return nil
	case key.Matches(msg, m.keys.Remove):
		m.board.DeleteSelectedList()
		return nil
	case key.Matches(msg, m.keys.Cancel):
		m.board.CancelListOptions()
		return nil
	}
	var cmd tea.Cmd
	m.formInput, cmd = m.formInput.Update(msg)
	draft.Title = m.formInput.Value()
	return cmd
}

func (m *Model) handleDetail(msg tea.KeyMsg) tea.Cmd {
	draft := m.detailDraft
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.storeDetailInputs()
		m.board.UpdateItemDetails()
		return nil
	case key.Matches(msg, m.keys.Cancel):
		m.board.CloseItemDetail()
		return nil
	case key.Matches(msg, m.keys.Remove):
		if item := m.board.DetailItem(); item != nil {
			m.board.DeleteItem(item, true)
		}
		return nil
	case key.Matches(msg, m.keys.Next):
		return m.focusDetailField((m.detailField + 1) % fieldCount)
	case key.Matches(msg, m.keys.Prev):
		return m.focusDetailField((m.detailField + fieldCount - 1) % fieldCount)
	}

	switch m.detailField {
	case fieldPriority:
		if step := arrowStep(msg); step != 0 {
			draft.Priority = cyclePriority(m.board.PriorityLevels(), draft.Priority, step)
		}
		return nil
	case fieldList:
		if step := arrowStep(msg); step != 0 {
			draft.ListID = cycleList(m.board.Lists(), draft.ListID, step)
		}
		return nil
	}

	var cmd tea.Cmd
	switch m.detailField {
	case fieldNote:
		m.noteInput, cmd = m.noteInput.Update(msg)
	case fieldColor:
		m.colorInput, cmd = m.colorInput.Update(msg)
	case fieldTags:
		m.tagsInput, cmd = m.tagsInput.Update(msg)
	}
	m.storeDetailInputs()
	return cmd
}

func (m *Model) storeDetailInputs() {
	draft := m.detailDraft
	if draft == nil {
		return
	}
	draft.Note = m.noteInput.Value()
	draft.Color = strings.TrimSpace(m.colorInput.Value())
	draft.Tags = todo.SplitTags(m.tagsInput.Value())
}

func (m *Model) focusDetailField(field int) tea.Cmd {
	m.detailField = field
	m.noteInput.Blur()
	m.colorInput.Blur()
	m.tagsInput.Blur()
	switch field {
	case fieldNote:
		return m.noteInput.Focus()
	case fieldColor:
		return m.colorInput.Focus()
	case fieldTags:
		return m.tagsInput.Focus()
	}
	return nil
}

// updateActiveInput forwards non-key messages such as cursor blinks.
func (m *Model) updateActiveInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.mode {
	case modeEditTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case modeSearch:
		m.searchInput, cmd = m.searchInput.Update(msg)
	case modeNewList, modeListOptions:
		m.formInput, cmd = m.formInput.Update(msg)
	case modeDetail:
		switch m.detailField {
		case fieldNote:
			m.noteInput, cmd = m.noteInput.Update(msg)
		case fieldColor:
			m.colorInput, cmd = m.colorInput.Update(msg)
		case fieldTags:
			m.tagsInput, cmd = m.tagsInput.Update(msg)
		}
	}
	return cmd
}

// sync reconciles the screen state with the board after every message:
// open drafts pick the mode, and the inputs are loaded from the objects the
// board hands out.
func (m *Model) sync() tea.Cmd {
	var cmds []tea.Cmd
	b := m.board

	want := m.mode
	switch {
	case b.ItemDetailDraft() != nil:
		want = modeDetail
	case b.NewListDraft() != nil:
		want = modeNewList
	case b.ListOptionsDraft() != nil:
		want = modeListOptions
	case b.Editing() != nil:
		want = modeEditTitle
	case m.mode == modeSearch || m.mode == modeTags:
	default:
		want = modeBrowse
	}

	changed := want != m.mode
	if changed {
		m.leave(m.mode)
		m.mode = want
	}
	switch want {
	case modeDetail:
		if changed || b.ItemDetailDraft() != m.detailDraft {
			cmds = append(cmds, m.loadDetail(b.ItemDetailDraft()))
		}
	case modeNewList:
		if changed || b.NewListDraft() != m.newListDraft {
			m.newListDraft = b.NewListDraft()
			cmds = append(cmds, m.loadForm(m.newListDraft.Title))
		}
	case modeListOptions:
		if changed || b.ListOptionsDraft() != m.optionsDraft {
			m.optionsDraft = b.ListOptionsDraft()
			cmds = append(cmds, m.loadForm(m.optionsDraft.Title))
		}
	case modeEditTitle:
		if changed || b.Editing() != m.editing {
			m.editing = b.Editing()
			m.titleInput.SetValue(m.editing.Title)
			m.titleInput.CursorEnd()
			cmds = append(cmds, m.titleInput.Focus())
		}
	}
	if want != modeEditTitle {
		m.editing = nil
	}

	items := b.Items()
	if m.editing != nil {
		if i := slices.Index(items, m.editing); i >= 0 {
			m.itemCursor = i
		}
	}
	m.itemCursor = clamp(m.itemCursor, len(items))
	m.tagCursor = clamp(m.tagCursor, len(b.Tags()))

	for _, target := range m.focus.drain() {
		cmds = append(cmds, m.applyFocus(target))
	}
	return tea.Batch(cmds...)
}

func (m *Model) leave(old mode) {
	switch old {
	case modeEditTitle:
		m.titleInput.Blur()
	case modeSearch:
		m.searchInput.Blur()
	case modeNewList:
		m.formInput.Blur()
		m.newListDraft = nil
	case modeListOptions:
		m.formInput.Blur()
		m.optionsDraft = nil
	case modeDetail:
		m.noteInput.Blur()
		m.colorInput.Blur()
		m.tagsInput.Blur()
		m.detailDraft = nil
	}
}

func (m *Model) loadForm(title string) tea.Cmd {
	m.formInput.SetValue(title)
	m.formInput.CursorEnd()
	return m.formInput.Focus()
}

func (m *Model) loadDetail(draft *models.ItemDetailDraft) tea.Cmd {
	m.detailDraft = draft
	m.noteInput.SetValue(draft.Note)
	m.colorInput.SetValue(draft.Color)
	m.tagsInput.SetValue(todo.JoinTags(draft.Tags))
	for _, in := range []*textinput.Model{&m.noteInput, &m.colorInput, &m.tagsInput} {
		in.CursorEnd()
	}
	return m.focusDetailField(fieldPriority)
}

// applyFocus honors a focus request from the board.
func (m *Model) applyFocus(target string) tea.Cmd {
	if target == todo.FocusNewListTitle {
		if m.mode == modeNewList {
			return m.formInput.Focus()
		}
		return nil
	}
	if raw, ok := strings.CutPrefix(target, "itemTitle"); ok {
		i, err := strconv.Atoi(raw)
		if err != nil {
			return nil
		}
		m.pane = paneItems
		m.itemCursor = clamp(i, len(m.board.Items()))
		if m.mode == modeEditTitle {
			return m.titleInput.Focus()
		}
	}
	return nil
}

func (m *Model) currentItem() *models.Item {
	items := m.board.Items()
	if m.itemCursor < 0 || m.itemCursor >= len(items) {
		return nil
	}
	return items[m.itemCursor]
}

func (m *Model) listIndex() int {
	return slices.Index(m.board.Lists(), m.board.Selected())
}

func arrowStep(msg tea.KeyMsg) int {
	switch msg.Type {
	case tea.KeyLeft:
		return -1
	case tea.KeyRight:
		return 1
	}
	return 0
}

func cyclePriority(levels []models.PriorityLevel, current, step int) int {
	if len(levels) == 0 {
		return current
	}
	i := slices.IndexFunc(levels, func(l models.PriorityLevel) bool { return l.Value == current })
	return levels[wrap(i+step, len(levels))].Value
}

func cycleList(lists []*models.List, current int64, step int) int64 {
	if len(lists) == 0 {
		return current
	}
	i := slices.IndexFunc(lists, func(l *models.List) bool { return l.ID == current })
	return lists[wrap(i+step, len(lists))].ID
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
