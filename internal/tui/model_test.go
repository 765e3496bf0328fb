package tui

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"todolists/internal/models"
	"todolists/internal/todo"
	"todolists/internal/todo/todotest"
)

type harness struct {
	t     *testing.T
	m     Model
	svc   *todotest.FakeService
	rt    *todotest.ManualRuntime
	listA int64
	listB int64
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{t: t, svc: todotest.NewFakeService(), rt: &todotest.ManualRuntime{}}
	h.listA = h.svc.AddList("Groceries")
	h.listB = h.svc.AddList("Work")
	h.svc.AddItem(h.listA, models.Item{Title: "Milk", Tag: "dairy,fridge"})
	h.svc.AddItem(h.listA, models.Item{Title: "Eggs", Tag: "dairy"})
	h.svc.AddItem(h.listA, models.Item{Title: "Bread", Tag: "bakery", Done: true})

	h.m = New(h.svc, h.rt, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.send(h.m.Init()())
	if !h.m.Board().Loaded() {
		t.Fatal("board did not load")
	}
	return h
}

func (h *harness) send(msg tea.Msg) tea.Cmd {
	h.t.Helper()
	next, cmd := h.m.Update(msg)
	h.m = next.(Model)
	return cmd
}

func (h *harness) press(keys ...string) {
	h.t.Helper()
	for _, k := range keys {
		h.send(keyMsg(k))
	}
}

func (h *harness) typeText(text string) {
	h.t.Helper()
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// advance moves the runtime clock and lets the model observe the result.
func (h *harness) advance(d time.Duration) {
	h.t.Helper()
	h.rt.Advance(d)
	h.send(runMsg(func() {}))
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func titles(items []*models.Item) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Title
	}
	return out
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, c := range msg {
			if isQuit(c) {
				return true
			}
		}
	}
	return false
}

func TestViewShowsLoadedBoard(t *testing.T) {
	h := newHarness(t)
	view := h.m.View()
	for _, want := range []string{"Groceries", "Work", "Milk", "#dairy", "(2)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestQuit(t *testing.T) {
	h := newHarness(t)
	if !isQuit(h.send(keyMsg("q"))) {
		t.Error("expected q to quit")
	}
}

func TestAddItemWithEnterChainsBlankItem(t *testing.T) {
	h := newHarness(t)
	b := h.m.Board()

	h.press("a")
	if h.m.mode != modeEditTitle || b.Editing() == nil {
		t.Fatalf("expected title editor, mode=%v", h.m.mode)
	}
	h.typeText("Tea")
	h.press("enter")

	if h.m.mode != modeBrowse {
		t.Fatalf("expected browse after commit, mode=%v", h.m.mode)
	}
	items := b.Items()
	if got := items[len(items)-1]; got.Title != "Tea" || !got.Persisted() {
		t.Errorf("expected persisted Tea, got %+v", got)
	}

	h.advance(250 * time.Millisecond)
	if h.m.mode != modeEditTitle || b.Editing() == nil || b.Editing().Title != "" {
		t.Fatalf("expected a chained blank item in edit mode")
	}

	// Leaving a blank title deletes the draft item.
	h.press("esc")
	if got := titles(b.Items()); len(got) != 4 {
		t.Errorf("expected blank item dropped, got %v", got)
	}
}

func TestEditTitle(t *testing.T) {
	h := newHarness(t)
	h.press("tab", "down", "e")
	if h.m.mode != modeEditTitle || h.m.editing.Title != "Eggs" {
		t.Fatalf("expected to edit Eggs, mode=%v", h.m.mode)
	}
	h.typeText(" (free range)")
	h.press("enter")

	item, _ := h.svc.Item(h.m.Board().Items()[1].ID)
	if item.Title != "Eggs (free range)" {
		t.Errorf("expected renamed item, got %q", item.Title)
	}
}

func TestToggleDone(t *testing.T) {
	h := newHarness(t)
	h.press("tab", "x")
	if !h.m.Board().Items()[0].Done {
		t.Error("expected Milk done")
	}
	if !strings.Contains(h.m.View(), "(1)") {
		t.Error("expected remaining count to drop")
	}
}

func TestTitleSearch(t *testing.T) {
	h := newHarness(t)
	h.press("/")
	h.typeText("MI")
	if got := titles(h.m.Board().Items()); len(got) != 1 || got[0] != "Milk" {
		t.Fatalf("expected Milk only, got %v", got)
	}
	h.press("esc")
	if got := titles(h.m.Board().Items()); len(got) != 3 {
		t.Errorf("expected search cleared, got %v", got)
	}
}

func TestTagPicker(t *testing.T) {
	h := newHarness(t)
	b := h.m.Board()

	h.press("t", "right", "right", " ")
	if got := titles(b.Items()); len(got) != 1 || got[0] != "Bread" {
		t.Fatalf("expected bakery filter, got %v", got)
	}
	h.press(" ")
	if got := titles(b.Items()); len(got) != 3 {
		t.Errorf("expected filter removed, got %v", got)
	}
	h.press("esc")
	if h.m.mode != modeBrowse {
		t.Errorf("expected browse, mode=%v", h.m.mode)
	}
}

func TestSwitchingListsClearsSearch(t *testing.T) {
	h := newHarness(t)
	h.press("t", " ")
	h.press("esc", "down")

	b := h.m.Board()
	if b.Selected().ID != h.listB {
		t.Fatalf("expected Work selected")
	}
	if tags, _ := b.SearchCriteria(); len(tags) != 0 {
		t.Errorf("expected criteria cleared, got %v", tags)
	}
}

func TestNewListValidation(t *testing.T) {
	h := newHarness(t)
	h.press("n")
	if h.m.mode != modeNewList {
		t.Fatalf("expected new list form, mode=%v", h.m.mode)
	}
	h.press("enter")
	if h.m.mode != modeNewList {
		t.Fatal("expected form to stay open")
	}
	if !strings.Contains(h.m.View(), "Title is required.") {
		t.Errorf("expected validation message in view")
	}

	h.typeText("Home")
	h.press("enter")
	if h.m.mode != modeBrowse {
		t.Fatalf("expected form closed, mode=%v", h.m.mode)
	}
	if sel := h.m.Board().Selected(); sel == nil || sel.Title != "Home" {
		t.Errorf("expected new list selected, got %+v", sel)
	}
}

func TestListOptions(t *testing.T) {
	h := newHarness(t)
	h.press("down", "r")
	if h.m.mode != modeListOptions || h.m.formInput.Value() != "Work" {
		t.Fatalf("expected rename form for Work")
	}
	h.typeText("!")
	h.press("enter")
	if got := h.m.Board().Selected().Title; got != "Work!" {
		t.Errorf("expected rename, got %q", got)
	}

	h.press("r", "ctrl+d")
	if h.m.mode != modeBrowse {
		t.Errorf("expected browse after delete, mode=%v", h.m.mode)
	}
	b := h.m.Board()
	if len(b.Lists()) != 1 || b.Selected().ID != h.listA {
		t.Errorf("expected Groceries selected after delete")
	}
}

func TestItemDetailMove(t *testing.T) {
	h := newHarness(t)
	b := h.m.Board()

	h.press("tab", "o")
	if h.m.mode != modeDetail {
		t.Fatalf("expected detail form, mode=%v", h.m.mode)
	}
	h.press("right")
	h.press("tab", "right")
	h.press("tab", "tab", "tab")
	h.typeText(",cold")
	h.press("enter")

	if h.m.mode != modeBrowse {
		t.Fatalf("expected detail closed, mode=%v", h.m.mode)
	}
	stored, _ := h.svc.Item(b.Lists()[1].Items[0].ID)
	if stored.ListID != h.listB || stored.Priority != models.PriorityLevels[1].Value || stored.Tag != "dairy,fridge,cold" {
		t.Errorf("unexpected stored item %+v", stored)
	}
	if got := titles(b.Items()); len(got) != 2 {
		t.Errorf("expected Milk moved out, got %v", got)
	}
}

func TestDetailCountdownDeletes(t *testing.T) {
	h := newHarness(t)
	b := h.m.Board()

	h.press("tab", "o", "ctrl+d")
	if _, _, active := b.Countdown(); !active {
		t.Fatal("expected countdown running")
	}
	if !strings.Contains(h.m.View(), "Deleting in 3") {
		t.Error("expected countdown in view")
	}

	h.advance(todo.DeleteCountdownTicks * todo.DeleteCountdownTick)
	if h.m.mode != modeBrowse {
		t.Errorf("expected detail closed, mode=%v", h.m.mode)
	}
	if got := titles(b.Items()); len(got) != 2 || got[0] != "Eggs" {
		t.Errorf("expected Milk deleted, got %v", got)
	}
}

func TestCountdownCancel(t *testing.T) {
	h := newHarness(t)
	h.press("tab", "d", "d")
	h.advance(5 * time.Second)
	if got := titles(h.m.Board().Items()); len(got) != 3 {
		t.Errorf("expected nothing deleted, got %v", got)
	}
}
