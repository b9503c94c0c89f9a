package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorRed    = lipgloss.Color("#ff5555")
	colorGreen  = lipgloss.Color("#50fa7b")
	colorYellow = lipgloss.Color("#f1fa8c")
	colorBlue   = lipgloss.Color("#8be9fd")
	colorPurple = lipgloss.Color("#bd93f9")
	colorDim    = lipgloss.Color("#6272a4")
	colorBgLight = lipgloss.Color("#343746")
	colorFg     = lipgloss.Color("#f8f8f2")
	colorBorder = lipgloss.Color("#44475a")
	colorHighlight = lipgloss.Color("#44475a")
)

var (
	hunkListStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	hunkItemStyle = lipgloss.NewStyle().
		Foreground(colorFg)

	hunkItemSelectedStyle = lipgloss.NewStyle().
		Foreground(colorFg).
		Background(colorHighlight).
		Bold(true)

	modeAllStyle = lipgloss.NewStyle().Foreground(colorGreen)
	modeNoneStyle = lipgloss.NewStyle().Foreground(colorDim)
	modePartialStyle = lipgloss.NewStyle().Foreground(colorYellow)

	diffViewStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	lineNumberStyle = lipgloss.NewStyle().
		Foreground(colorDim).
		Width(4).
		Align(lipgloss.Right)

	addedLineStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	deletedLineStyle = lipgloss.NewStyle().Foreground(colorRed)
	contextLineStyle = lipgloss.NewStyle().Foreground(colorFg)

	cursorLineStyle = lipgloss.NewStyle().Background(colorHighlight).Bold(true)

	includedMarkStyle = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	excludedMarkStyle = lipgloss.NewStyle().Foreground(colorDim)

	hunkHeaderStyle = lipgloss.NewStyle().
		Foreground(colorPurple).
		Bold(true)

	fileHeaderStyle = lipgloss.NewStyle().
		Foreground(colorBlue).
		Bold(true).
		Padding(0, 0, 1, 0)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorFg).
		Background(colorBgLight).
		Padding(0, 1)

	helpBarStyle = lipgloss.NewStyle().Foreground(colorDim)
	helpKeyStyle = lipgloss.NewStyle().Foreground(colorYellow)
)
