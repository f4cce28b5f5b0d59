package ui

import (
	"fmt"

	"github.com/gabrielcapilla/musify/internal/domain"
	"github.com/gabrielcapilla/musify/internal/ports"

	"github.com/charmbracelet/lipgloss"
)

type playerStatus int

const (
	statusIdle playerStatus = iota
	statusLoading
	statusPlaying
	statusError
)

type PlayerModel struct {
	width, height int
	status        playerStatus
	item          domain.MediaItem
	state         ports.PlayerState
	err           error
	styles        Styles
}

func NewPlayerModel(styles Styles) PlayerModel {
	return PlayerModel{status: statusIdle, styles: styles}
}

func (m *PlayerModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

func (m *PlayerModel) SetLoading(item domain.MediaItem) {
	m.status = statusLoading
	m.item = item
	m.err = nil
}

func (m *PlayerModel) SetPlaying(item domain.MediaItem) {
	m.status = statusPlaying
	m.item = item
	m.err = nil
}

func (m *PlayerModel) SetError(err error) {
	m.status = statusError
	m.err = err
}

func (m *PlayerModel) SetState(state ports.PlayerState) { m.state = state }

func formatSeconds(s float64) string {
	total := int(s)
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

func (m PlayerModel) View() string {
	var content string
	switch m.status {
	case statusIdle:
		content = "..."
	case statusLoading:
		content = "Loading: " + m.item.Title
	case statusPlaying:
		sTitle := m.styles.PlayerTitle.Render(m.item.Title)
		sArtist := m.styles.PlayerArtist.Render(m.item.Subtitle)
		icon := "▶"
		if !m.state.IsPlaying {
			icon = "⏸"
		}
		progress := fmt.Sprintf(" [%s / %s]", formatSeconds(m.state.Position), formatSeconds(m.state.Duration))
		content = lipgloss.JoinHorizontal(lipgloss.Left, icon, " ", sTitle, " - ", sArtist, progress)
	case statusError:
		content = m.styles.ErrorText.Render(fmt.Sprintf("Error: %v", m.err))
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Center, content)
}
