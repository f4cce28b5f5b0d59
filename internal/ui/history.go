package ui

import (
	"fmt"

	"github.com/gabrielcapilla/musify/internal/domain"
	"github.com/gabrielcapilla/musify/internal/ports"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

type historyItem struct{ entry domain.HistoryEntry }

func (i historyItem) FilterValue() string { return i.entry.Song.Title }
func (i historyItem) Label() string {
	return i.entry.PlayedAt.Local().Format("Jan 02 15:04") + "  " + withSubtitle(i.entry.Song.Title, i.entry.Song.Subtitle)
}

// HistoryModel shows the most recent plays, newest first.
type HistoryModel struct {
	store   ports.HistoryStore
	limit   int
	styles  Styles
	list    list.Model
	spinner spinner.Model
	loading bool
	err     error
}

func NewHistoryModel(store ports.HistoryStore, limit int, styles Styles) HistoryModel {
	return HistoryModel{store: store, limit: limit, styles: styles, list: newList(styles), spinner: newSpinner(styles)}
}

func (m *HistoryModel) SetSize(w, h int) { m.list.SetSize(w, h) }

// Filtering reports whether keystrokes are being typed into the list filter.
func (m HistoryModel) Filtering() bool { return m.list.FilterState() == list.Filtering }

// Load reads the history in the background.
func (m *HistoryModel) Load() tea.Cmd {
	if m.store == nil {
		return nil
	}
	m.loading = true
	m.err = nil
	store, limit := m.store, m.limit
	fetch := func() tea.Msg {
		entries, err := store.GetHistory(limit)
		if err != nil {
			return ports.HistoryErrorMsg{Err: err}
		}
		return ports.HistoryLoadedMsg{Entries: entries}
	}
	return tea.Batch(m.spinner.Tick, fetch)
}

func (m HistoryModel) Update(msg tea.Msg) (HistoryModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case ports.HistoryLoadedMsg:
		m.loading = false
		items := make([]list.Item, len(msg.Entries))
		for i, entry := range msg.Entries {
			items[i] = historyItem{entry: entry}
		}
		return m, m.list.SetItems(items)
	case ports.HistoryErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil
	}

	if m.loading {
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" && !m.Filtering() {
		if hi, ok := m.list.SelectedItem().(historyItem); ok {
			return m, func() tea.Msg { return ports.PlayHistoryMsg{Entry: hi.entry} }
		}
		return m, nil
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m HistoryModel) View() string {
	switch {
	case m.loading:
		return m.spinner.View() + " Loading history..."
	case m.err != nil:
		return m.styles.ErrorText.Render(fmt.Sprintf("Error: %v", m.err))
	case len(m.list.Items()) == 0:
		return "Nothing played yet."
	default:
		return m.list.View()
	}
}
