package ui

import "github.com/charmbracelet/lipgloss"

var highlightColor = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}

type Styles struct {
	App          lipgloss.Style
	Box          lipgloss.Style
	Help         lipgloss.Style
	ListNormal   lipgloss.Style
	ListSelected lipgloss.Style
	ListPointer  lipgloss.Style
	Spinner      lipgloss.Style
	ErrorText    lipgloss.Style
	PlayerTitle  lipgloss.Style
	PlayerArtist lipgloss.Style
}

func DefaultStyles() Styles {
	s := Styles{}
	s.App = lipgloss.NewStyle().Padding(0, 1)
	s.Box = lipgloss.NewStyle().Border(lipgloss.RoundedBorder(), true).BorderForeground(highlightColor)
	s.Help = lipgloss.NewStyle().Faint(true)
	s.ListNormal = lipgloss.NewStyle()
	s.ListSelected = lipgloss.NewStyle().Foreground(highlightColor).Bold(true)
	s.ListPointer = lipgloss.NewStyle().Foreground(highlightColor).SetString("> ")
	s.Spinner = lipgloss.NewStyle().Foreground(highlightColor)
	s.ErrorText = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	s.PlayerTitle = lipgloss.NewStyle().Bold(true)
	s.PlayerArtist = lipgloss.NewStyle().Faint(true)
	return s
}
