package ui

import (
	"fmt"
	"io"

	"github.com/gabrielcapilla/musify/internal/domain"
	"github.com/gabrielcapilla/musify/internal/ports"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// labeledItem is a list entry the shared delegate knows how to draw.
type labeledItem interface {
	list.Item
	Label() string
}

// catalogItem remembers its catalog position, which differs from the list
// position while a filter is applied.
type catalogItem struct {
	index int
	item  domain.MediaItem
}

func (i catalogItem) FilterValue() string { return i.item.Title + " " + i.item.Subtitle }
func (i catalogItem) Label() string       { return withSubtitle(i.item.Title, i.item.Subtitle) }

func withSubtitle(title, subtitle string) string {
	if subtitle == "" {
		return title
	}
	return title + " - " + subtitle
}

type itemDelegate struct{ styles Styles }

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	li, ok := item.(labeledItem)
	if !ok {
		return
	}

	itemStyle := d.styles.ListNormal
	pointer := "  "
	if index == m.Index() {
		itemStyle = d.styles.ListSelected
		pointer = d.styles.ListPointer.String()
	}

	line := li.Label()
	if m.Width() > 0 {
		line = truncate(line, m.Width()-lipgloss.Width(pointer))
	}
	fmt.Fprint(w, itemStyle.Render(pointer+line))
}

func newList(styles Styles) list.Model {
	li := list.New([]list.Item{}, itemDelegate{styles: styles}, 0, 0)
	li.SetShowTitle(false)
	li.SetShowStatusBar(false)
	li.SetShowHelp(false)
	return li
}

func newSpinner(styles Styles) spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Spinner
	return s
}

// CatalogModel lists the music source's items once the source is ready.
type CatalogModel struct {
	styles  Styles
	list    list.Model
	spinner spinner.Model
	loading bool
	err     error
}

func NewCatalogModel(styles Styles) CatalogModel {
	return CatalogModel{styles: styles, list: newList(styles), spinner: newSpinner(styles), loading: true}
}

func (m CatalogModel) Init() tea.Cmd { return m.spinner.Tick }

func (m *CatalogModel) SetSize(w, h int) { m.list.SetSize(w, h) }

// SetItems replaces the listed items and ends the loading state.
func (m *CatalogModel) SetItems(items []domain.MediaItem) tea.Cmd {
	m.loading = false
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = catalogItem{index: i, item: it}
	}
	return m.list.SetItems(listItems)
}

func (m *CatalogModel) SetError(err error) {
	m.loading = false
	m.err = err
}

func (m CatalogModel) Loading() bool { return m.loading }

// Filtering reports whether keystrokes are being typed into the list filter.
func (m CatalogModel) Filtering() bool { return m.list.FilterState() == list.Filtering }

// SelectedIndex is the catalog position of the selected item, or -1.
func (m CatalogModel) SelectedIndex() int {
	if ci, ok := m.list.SelectedItem().(catalogItem); ok {
		return ci.index
	}
	return -1
}

func (m CatalogModel) Update(msg tea.Msg) (CatalogModel, tea.Cmd) {
	var cmd tea.Cmd
	if m.loading {
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" && !m.Filtering() {
		if idx := m.SelectedIndex(); idx >= 0 {
			return m, func() tea.Msg { return ports.PlayItemMsg{Index: idx} }
		}
		return m, nil
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m CatalogModel) View() string {
	switch {
	case m.loading:
		return m.spinner.View() + " Loading catalog..."
	case m.err != nil:
		return m.styles.ErrorText.Render(fmt.Sprintf("Error: %v", m.err))
	case len(m.list.Items()) == 0:
		return "The catalog is empty."
	default:
		return m.list.View()
	}
}
