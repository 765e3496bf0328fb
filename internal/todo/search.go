package todo

import (
	"slices"
	"strings"

	"todolists/internal/models"
)

// Search filters a list's displayed items by tag tokens and a title
// substring. While any criterion is active the unfiltered items are parked
// and every recompute runs against the parked copy; once all criteria are
// cleared the parked slice is put back unchanged.
type Search struct {
	list      *models.List
	parked    []*models.Item
	filtering bool

	tags  []string
	title string
}

// Attach points the search at list, restoring and resetting any previous one.
func (s *Search) Attach(list *models.List) {
	s.Clear()
	s.list = list
}

// List returns the list being filtered.
func (s *Search) List() *models.List { return s.list }

// Active reports whether any criterion is set.
func (s *Search) Active() bool {
	return len(s.tags) > 0 || s.title != ""
}

// Filtering reports whether a parked copy is currently held.
func (s *Search) Filtering() bool { return s.filtering }

// Criteria returns the active tag tokens and title substring.
func (s *Search) Criteria() ([]string, string) {
	return slices.Clone(s.tags), s.title
}

// AddTag adds token to the tag criteria (any-of) and refilters.
func (s *Search) AddTag(token string) {
	if token == "" {
		return
	}
	if !slices.Contains(s.tags, token) {
		s.tags = append(s.tags, token)
	}
	s.apply()
}

// RemoveTag drops token from the tag criteria. Displayed items whose tag field
// contains token are evicted straight away, then the remaining criteria are
// reapplied against the parked items.
func (s *Search) RemoveTag(token string) {
	idx := slices.Index(s.tags, token)
	if idx < 0 {
		return
	}
	s.tags = slices.Delete(s.tags, idx, idx+1)

	if s.filtering && s.list != nil {
		s.list.Items = slices.DeleteFunc(s.list.Items, func(item *models.Item) bool {
			return containsFold(item.Tag, token)
		})
	}
	s.apply()
}

// SetTitle replaces the title criterion and refilters.
func (s *Search) SetTitle(text string) {
	s.title = text
	s.apply()
}

// Clear removes every criterion and restores the parked items.
func (s *Search) Clear() {
	s.tags = nil
	s.title = ""
	s.restore()
}

// Matches reports whether item passes the current criteria.
func (s *Search) Matches(item *models.Item) bool {
	if len(s.tags) > 0 {
		hit := false
		for _, tok := range s.tags {
			if containsFold(item.Tag, tok) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if s.title != "" && !containsFold(item.Title, s.title) {
		return false
	}
	return true
}

// Track records an item appended to the displayed list while filtering so it
// survives the restore.
func (s *Search) Track(item *models.Item) {
	if s.filtering {
		s.parked = append(s.parked, item)
	}
}

func (s *Search) apply() {
	if s.list == nil {
		return
	}
	if !s.Active() {
		s.restore()
		return
	}
	if !s.filtering {
		s.parked = s.list.Items
		s.filtering = true
	}

	shown := make([]*models.Item, 0, len(s.parked))
	for _, item := range s.parked {
		if s.Matches(item) {
			shown = append(shown, item)
		}
	}
	s.list.Items = shown
}

func (s *Search) restore() {
	if !s.filtering {
		return
	}
	if s.list != nil {
		s.list.Items = s.parked
	}
	s.parked = nil
	s.filtering = false
}

func containsFold(field, sub string) bool {
	if field == "" {
		return false
	}
	return strings.Contains(strings.ToLower(field), strings.ToLower(sub))
}
