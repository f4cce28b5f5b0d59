package ui

import (
	"errors"
	"time"

	"github.com/gabrielcapilla/musify/internal/domain"
	"github.com/gabrielcapilla/musify/internal/logger"
	"github.com/gabrielcapilla/musify/internal/ports"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	MIN_WIDTH  = 50
	MIN_HEIGHT = 15

	tickInterval = time.Second
)

var errCatalogUnavailable = errors.New("catalog unavailable")

// CatalogSource is the part of the music source the UI browses and plays.
type CatalogSource interface {
	MediaItems() []domain.MediaItem
	ConcatenatingSource(factory ports.MediaSourceFactory) *ports.ConcatenatingMediaSource
}

type AppModel struct {
	width, height int
	source        CatalogSource
	factory       ports.MediaSourceFactory
	playerService ports.PlayerService
	history       ports.HistoryStore
	items         []domain.MediaItem
	// queued is set while mpv plays the catalog queue starting at queueStart.
	queued        bool
	queueStart    int
	current       int
	playing       bool
	tabs          TabModel
	catalog       CatalogModel
	recent        HistoryModel
	player        PlayerModel
	styles        Styles
}

func InitialModel(src CatalogSource, factory ports.MediaSourceFactory, pService ports.PlayerService, history ports.HistoryStore, historyLimit int) AppModel {
	styles := DefaultStyles()
	return AppModel{
		source:        src,
		factory:       factory,
		playerService: pService,
		history:       history,
		current:       -1,
		tabs:          NewTabModel(),
		catalog:       NewCatalogModel(styles),
		recent:        NewHistoryModel(history, historyLimit, styles),
		player:        NewPlayerModel(styles),
		styles:        styles,
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return ports.TickMsg(t) })
}

func (m AppModel) Init() tea.Cmd { return tea.Batch(m.catalog.Init(), tickCmd()) }

func songFromItem(item domain.MediaItem) domain.Song {
	return domain.Song{
		MediaID:  item.MediaID,
		Title:    item.Title,
		Subtitle: item.Subtitle,
		ImageURL: item.IconURI,
		SongURL:  item.MediaURI,
	}
}

func (m AppModel) recordPlay(item domain.MediaItem) {
	if m.history == nil {
		return
	}
	entry := domain.HistoryEntry{Song: songFromItem(item), PlayedAt: time.Now()}
	if err := m.history.AddToHistory(entry); err != nil {
		logger.Log.Error().Err(err).Str("mediaId", item.MediaID).Msg("Could not record play")
	}
}

func (m AppModel) playQueueCmd(index int) tea.Cmd {
	item := m.items[index]
	return func() tea.Msg {
		queue := m.source.ConcatenatingSource(m.factory)
		if err := m.playerService.PlayQueue(queue, index); err != nil {
			return ports.PlayErrorMsg{Err: err}
		}
		m.recordPlay(item)
		return ports.SongNowPlayingMsg{Item: item}
	}
}

func (m AppModel) playEntryCmd(entry domain.HistoryEntry) tea.Cmd {
	item := domain.MediaItem{
		MediaURI: entry.Song.SongURL,
		Title:    entry.Song.Title,
		Subtitle: entry.Song.Subtitle,
		MediaID:  entry.Song.MediaID,
		IconURI:  entry.Song.ImageURL,
	}
	return func() tea.Msg {
		if err := m.playerService.Play(item.MediaURI); err != nil {
			return ports.PlayErrorMsg{Err: err}
		}
		m.recordPlay(item)
		return ports.SongNowPlayingMsg{Item: item}
	}
}

func (m AppModel) filtering() bool {
	if m.tabs.ActiveTab == historyTab {
		return m.recent.Filtering()
	}
	return m.catalog.Filtering()
}

func (m AppModel) controlCmd(action func() error) tea.Cmd {
	return func() tea.Msg {
		if err := action(); err != nil {
			return ports.PlayErrorMsg{Err: err}
		}
		return nil
	}
}

func (m AppModel) stateCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.playerService.GetState()
		if err != nil {
			return ports.PlayErrorMsg{Err: err}
		}
		return ports.PlayerStateUpdateMsg{State: state}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if !m.filtering() {
			switch msg.String() {
			case "tab":
				m.tabs.Next()
				if m.tabs.ActiveTab == historyTab {
					return m, m.recent.Load()
				}
				return m, nil
			case "q":
				return m, tea.Quit
			case " ":
				return m, m.controlCmd(m.playerService.Pause)
			case "n":
				return m, m.controlCmd(m.playerService.Next)
			}
		}
	case ports.CatalogReadyMsg:
		if !msg.OK {
			m.catalog.SetError(errCatalogUnavailable)
			return m, nil
		}
		m.items = m.source.MediaItems()
		return m, m.catalog.SetItems(m.items)
	case ports.PlayItemMsg:
		if msg.Index < 0 || msg.Index >= len(m.items) {
			return m, nil
		}
		m.queued = true
		m.playing = true
		m.queueStart = msg.Index
		m.current = msg.Index
		m.player.SetLoading(m.items[msg.Index])
		return m, m.playQueueCmd(msg.Index)
	case ports.PlayHistoryMsg:
		m.queued = false
		m.playing = true
		m.current = -1
		return m, m.playEntryCmd(msg.Entry)
	case ports.SongNowPlayingMsg:
		m.player.SetPlaying(msg.Item)
		return m, nil
	case ports.PlayErrorMsg:
		m.player.SetError(msg.Err)
		return m, nil
	case ports.TickMsg:
		if !m.playing {
			return m, tickCmd()
		}
		return m, tea.Batch(m.stateCmd(), tickCmd())
	case ports.PlayerStateUpdateMsg:
		m.player.SetState(msg.State)
		if !m.queued || msg.State.Index < 0 {
			return m, nil
		}
		if idx := m.queueStart + msg.State.Index; idx != m.current && idx < len(m.items) {
			m.current = idx
			item := m.items[idx]
			m.player.SetPlaying(item)
			return m, func() tea.Msg {
				m.recordPlay(item)
				return nil
			}
		}
		return m, nil
	case ports.HistoryLoadedMsg, ports.HistoryErrorMsg:
		m.recent, cmd = m.recent.Update(msg)
		return m, cmd
	}

	if m.tabs.ActiveTab == historyTab {
		m.recent, cmd = m.recent.Update(msg)
		return m, cmd
	}
	m.catalog, cmd = m.catalog.Update(msg)
	return m, cmd
}

func (m AppModel) View() string {
	if m.width < MIN_WIDTH || m.height < MIN_HEIGHT {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, "Terminal too small")
	}

	availableWidth := m.width - m.styles.App.GetHorizontalFrameSize()

	tabsView := m.tabs.View()
	tabsHeight := lipgloss.Height(tabsView)
	playerHeight := 3
	helpHeight := 1

	mainHeight := m.height - tabsHeight - playerHeight - helpHeight - m.styles.App.GetVerticalFrameSize()

	m.catalog.SetSize(availableWidth-2, mainHeight-2)
	m.recent.SetSize(availableWidth-2, mainHeight-2)
	m.player.SetSize(availableWidth-2, playerHeight-2)

	mainContent := m.catalog.View()
	if m.tabs.ActiveTab == historyTab {
		mainContent = m.recent.View()
	}
	mainPanel := m.styles.Box.Width(availableWidth - 2).Height(mainHeight - 2).Render(mainContent)
	playerPanel := m.styles.Box.Width(availableWidth - 2).Height(playerHeight - 2).Render(m.player.View())

	helpView := m.styles.Help.Width(availableWidth).Render("[tab] switch | [↑/↓] navigate | [/] filter | [Enter] play | [space] pause | [n] next | [q] quit")

	return m.styles.App.Render(lipgloss.JoinVertical(lipgloss.Top,
		tabsView,
		mainPanel,
		playerPanel,
		helpView,
	))
}
