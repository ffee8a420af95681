package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette shared by the prompts and the command output.
// All terminal colors and styling definitions are centralized here
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575"))

	StepStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6"))

	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981")).
			Width(16)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6"))

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	// Token styles
	ExpiredStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Strikethrough(true)

	ActiveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981"))

	logoStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4"))

	spinnerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6"))
)
