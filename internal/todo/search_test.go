package todo_test

import (
	"testing"

	"todolists/internal/models"
	"todolists/internal/todo"
)

func groceries() *models.List {
	return &models.List{
		ID:    1,
		Title: "Groceries",
		Items: []*models.Item{
			{ID: 11, ListID: 1, Title: "Milk", Tag: "dairy,fridge"},
			{ID: 12, ListID: 1, Title: "Eggs", Tag: "dairy"},
			{ID: 13, ListID: 1, Title: "Bread", Tag: "bakery"},
		},
	}
}

func titles(items []*models.Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.Title)
	}
	return out
}

func assertTitles(t *testing.T, items []*models.Item, want ...string) {
	t.Helper()
	got := titles(items)
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestSearchTagThenTitleThenClear(t *testing.T) {
	list := groceries()
	original := list.Items

	var s todo.Search
	s.Attach(list)

	s.AddTag("dairy")
	assertTitles(t, list.Items, "Milk", "Eggs")

	s.SetTitle("egg")
	assertTitles(t, list.Items, "Eggs")

	s.SetTitle("")
	assertTitles(t, list.Items, "Milk", "Eggs")

	s.RemoveTag("dairy")
	assertTitles(t, list.Items, "Milk", "Eggs", "Bread")
	if &list.Items[0] != &original[0] {
		t.Error("expected the original slice to be restored")
	}
	if s.Filtering() {
		t.Error("expected no parked copy once criteria are cleared")
	}
}

func TestSearchIdleLeavesSliceUntouched(t *testing.T) {
	list := groceries()
	original := list.Items

	var s todo.Search
	s.Attach(list)
	s.SetTitle("")
	s.Clear()

	if &list.Items[0] != &original[0] || len(list.Items) != 3 {
		t.Error("idle search must not replace the displayed slice")
	}
}

func TestSearchPredicate(t *testing.T) {
	tests := []struct {
		name  string
		tags  []string
		title string
		want  []string
	}{
		{name: "tag any-of", tags: []string{"fridge", "bakery"}, want: []string{"Milk", "Bread"}},
		{name: "tag case-insensitive", tags: []string{"DAIRY"}, want: []string{"Milk", "Eggs"}},
		{name: "tag substring", tags: []string{"air"}, want: []string{"Milk", "Eggs"}},
		{name: "title only", title: "READ", want: []string{"Bread"}},
		{name: "both axes", tags: []string{"dairy"}, title: "m", want: []string{"Milk"}},
		{name: "no match", tags: []string{"frozen"}, want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := groceries()
			var s todo.Search
			s.Attach(list)
			for _, tag := range tt.tags {
				s.AddTag(tag)
			}
			if tt.title != "" {
				s.SetTitle(tt.title)
			}
			assertTitles(t, list.Items, tt.want...)
		})
	}
}

func TestSearchRemoveTagKeepsOtherMatches(t *testing.T) {
	list := groceries()
	var s todo.Search
	s.Attach(list)

	s.AddTag("fridge")
	s.AddTag("dairy")
	assertTitles(t, list.Items, "Milk", "Eggs")

	// Milk carries both tokens; it must survive losing one of them.
	s.RemoveTag("fridge")
	assertTitles(t, list.Items, "Milk", "Eggs")

	tags, _ := s.Criteria()
	if len(tags) != 1 || tags[0] != "dairy" {
		t.Errorf("expected [dairy], got %v", tags)
	}
}

func TestSearchRemoveLastTagLeavesTitleMatches(t *testing.T) {
	list := groceries()
	var s todo.Search
	s.Attach(list)

	s.AddTag("bakery")
	s.SetTitle("e")
	assertTitles(t, list.Items, "Bread")

	s.RemoveTag("bakery")
	assertTitles(t, list.Items, "Eggs", "Bread")
	if !s.Filtering() {
		t.Error("title criterion still active; expected to stay filtering")
	}
}

func TestSearchIdempotent(t *testing.T) {
	list := groceries()
	var s todo.Search
	s.Attach(list)

	s.AddTag("dairy")
	first := titles(list.Items)
	s.AddTag("dairy")
	assertTitles(t, list.Items, first...)

	s.SetTitle("milk")
	s.SetTitle("milk")
	assertTitles(t, list.Items, "Milk")
}

func TestSearchTrackKeepsItemsAddedWhileFiltering(t *testing.T) {
	list := groceries()
	var s todo.Search
	s.Attach(list)

	s.AddTag("bakery")
	added := &models.Item{Title: "Cheese", Tag: "dairy"}
	list.Items = append(list.Items, added)
	s.Track(added)

	s.Clear()
	assertTitles(t, list.Items, "Milk", "Eggs", "Bread", "Cheese")
}

func TestSearchAttachRestoresPreviousList(t *testing.T) {
	first := groceries()
	second := &models.List{ID: 2, Title: "Work"}

	var s todo.Search
	s.Attach(first)
	s.AddTag("bakery")
	s.Attach(second)

	assertTitles(t, first.Items, "Milk", "Eggs", "Bread")
	if s.Active() {
		t.Error("expected criteria reset on attach")
	}
}
