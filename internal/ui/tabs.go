package ui

import (
	"github.com/charmbracelet/lipgloss"
)

const (
	catalogTab = iota
	historyTab
)

func tabBorderWithBottom(left, middle, right string) lipgloss.Border {
	border := lipgloss.RoundedBorder()
	border.BottomLeft = left
	border.Bottom = middle
	border.BottomRight = right
	return border
}

var (
	inactiveTabBorder = tabBorderWithBottom("┴", "─", "┴")
	activeTabBorder   = tabBorderWithBottom("┘", " ", "└")
	inactiveTabStyle  = lipgloss.NewStyle().Border(inactiveTabBorder, true).BorderForeground(highlightColor).Padding(0, 1)
	activeTabStyle    = inactiveTabStyle.Border(activeTabBorder, true)
)

type TabModel struct {
	Tabs      []string
	ActiveTab int
}

func NewTabModel() TabModel {
	return TabModel{Tabs: []string{"Catalog", "History"}, ActiveTab: catalogTab}
}

func (m *TabModel) Next() {
	m.ActiveTab = (m.ActiveTab + 1) % len(m.Tabs)
}

func (m TabModel) View() string {
	rendered := make([]string, len(m.Tabs))
	for i, t := range m.Tabs {
		style := inactiveTabStyle
		if i == m.ActiveTab {
			style = activeTabStyle
		}
		rendered[i] = style.Render(t)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
