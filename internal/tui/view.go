package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"todolists/internal/models"
	"todolists/internal/todo"
)

const listsPaneWidth = 28

// View renders the board screen.
func (m Model) View() string {
	b := m.board
	if !b.Loaded() {
		return m.styles.Subtle.Render("Loading lists…") + "\n"
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	panes := lipgloss.JoinHorizontal(lipgloss.Top, m.renderLists(), m.renderItems())
	sections = append(sections, panes)

	if form := m.renderForm(); form != "" {
		sections = append(sections, form)
	}

	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	b := m.board
	tags, title := b.SearchCriteria()

	parts := []string{m.styles.Header.Render("todolists")}
	if m.mode == modeSearch {
		parts = append(parts, m.searchInput.View())
	} else if title != "" {
		parts = append(parts, m.styles.Subtle.Render(fmt.Sprintf("title ~ %q", title)))
	}

	if all := b.Tags(); len(all) > 0 {
		var rendered []string
		for i, tag := range all {
			style := m.styles.Tag
			if slices.Contains(tags, tag) {
				style = m.styles.ActiveTag
			}
			label := "#" + tag
			if m.mode == modeTags && i == m.tagCursor {
				label = "[" + label + "]"
			}
			rendered = append(rendered, style.Render(label))
		}
		parts = append(parts, strings.Join(rendered, " "))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderLists() string {
	b := m.board
	var rows []string
	rows = append(rows, m.styles.PaneTitle.Render("Lists"))

	for _, list := range b.Lists() {
		marker := "  "
		style := lipgloss.NewStyle()
		if list == b.Selected() {
			marker = m.styles.Cursor.Render("> ")
			style = m.styles.Selected
		}
		count := m.styles.Subtle.Render(fmt.Sprintf("(%d)", b.RemainingItems(list)))
		rows = append(rows, marker+style.Render(list.Title)+" "+count)
	}
	if len(b.Lists()) == 0 {
		rows = append(rows, m.styles.Subtle.Render("no lists, press n"))
	}

	style := m.styles.Pane
	if m.pane == paneLists && m.mode == modeBrowse {
		style = m.styles.ActivePane
	}
	return style.Width(listsPaneWidth).Render(strings.Join(rows, "\n"))
}

func (m Model) renderItems() string {
	b := m.board
	list := b.Selected()

	title := "Items"
	if list != nil {
		title = list.Title
	}
	var rows []string
	rows = append(rows, m.styles.PaneTitle.Render(title))

	remaining, doomed, counting := b.Countdown()
	for i, item := range b.Items() {
		rows = append(rows, m.renderItem(i, item, counting && doomed == item, remaining))
	}
	if list != nil && len(b.Items()) == 0 {
		rows = append(rows, m.styles.Subtle.Render("nothing here, press a"))
	}

	style := m.styles.Pane
	if m.pane == paneItems && m.mode == modeBrowse {
		style = m.styles.ActivePane
	}
	width := m.width - listsPaneWidth - 6
	if width < 30 {
		width = 50
	}
	return style.Width(width).Render(strings.Join(rows, "\n"))
}

func (m Model) renderItem(i int, item *models.Item, counting bool, remaining int) string {
	marker := "  "
	if m.pane == paneItems && i == m.itemCursor {
		marker = m.styles.Cursor.Render("> ")
	}

	check := "[ ] "
	if item.Done {
		check = "[x] "
	}

	var title string
	switch {
	case item == m.editing && m.mode == modeEditTitle:
		title = m.titleInput.View()
	case item.Done:
		title = m.styles.Done.Render(item.Title)
	default:
		title = item.Title
	}

	var extras []string
	if item.Color != "" {
		extras = append(extras, lipgloss.NewStyle().Foreground(lipgloss.Color(item.Color)).Render("●"))
	}
	if name := priorityName(m.board.PriorityLevels(), item.Priority); name != "" && item.Priority != 0 {
		extras = append(extras, m.styles.Subtle.Render("!"+strings.ToLower(name)))
	}
	for _, tag := range todo.SplitTags(item.Tag) {
		extras = append(extras, m.styles.Tag.Render("#"+tag))
	}
	if counting {
		extras = append(extras, m.styles.Countdown.Render(fmt.Sprintf("deleting in %d", remaining)))
	}

	row := marker + check + title
	if len(extras) > 0 {
		row += "  " + strings.Join(extras, " ")
	}
	return row
}

func (m Model) renderForm() string {
	switch m.mode {
	case modeNewList:
		body := []string{m.styles.PaneTitle.Render("New list"), m.formInput.View()}
		if d := m.board.NewListDraft(); d != nil && d.Error != "" {
			body = append(body, m.styles.Error.Render(d.Error))
		}
		return m.styles.Form.Render(strings.Join(body, "\n"))

	case modeListOptions:
		body := []string{
			m.styles.PaneTitle.Render("List options"),
			m.formInput.View(),
			m.styles.Subtle.Render("enter rename · ctrl+d delete list · esc cancel"),
		}
		return m.styles.Form.Render(strings.Join(body, "\n"))

	case modeDetail:
		return m.renderDetail()
	}
	return ""
}

func (m Model) renderDetail() string {
	draft := m.detailDraft
	if draft == nil {
		return ""
	}
	b := m.board

	listTitle := ""
	for _, l := range b.Lists() {
		if l.ID == draft.ListID {
			listTitle = l.Title
		}
	}

	rows := []string{m.styles.PaneTitle.Render("Item details")}
	rows = append(rows,
		m.detailRow(fieldPriority, "Priority", "‹ "+priorityName(b.PriorityLevels(), draft.Priority)+" ›"),
		m.detailRow(fieldList, "List", "‹ "+listTitle+" ›"),
		m.detailRow(fieldNote, "Note", m.noteInput.View()),
		m.detailRow(fieldColor, "Color", m.colorInput.View()),
		m.detailRow(fieldTags, "Tags", m.tagsInput.View()),
	)

	if remaining, item, active := b.Countdown(); active && item == b.DetailItem() {
		rows = append(rows, m.styles.Countdown.Render(fmt.Sprintf("Deleting in %d… ctrl+d to cancel", remaining)))
	} else {
		rows = append(rows, m.styles.Subtle.Render("enter save · ctrl+d delete · esc close"))
	}
	return m.styles.Form.Render(strings.Join(rows, "\n"))
}

func (m Model) detailRow(field int, label, value string) string {
	style := m.styles.FormLabel
	if m.detailField == field {
		style = m.styles.ActiveLabel
	}
	return style.Render(label) + value
}

func priorityName(levels []models.PriorityLevel, value int) string {
	for _, l := range levels {
		if l.Value == value {
			return l.Name
		}
	}
	return ""
}
