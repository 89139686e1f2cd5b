// Package styles provides shared lipgloss styles and huh form themes.
package styles

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    lipgloss.Color
	ColorSecondary  lipgloss.Color
	ColorForeground lipgloss.Color
	ColorMuted      lipgloss.Color
	ColorBackground lipgloss.Color
	ColorSurface    lipgloss.Color
	ColorSuccess    lipgloss.Color
	ColorWarning    lipgloss.Color
	ColorError      lipgloss.Color
)

// Style exports.
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Divider  lipgloss.Style
)

// ColorPool is used for deterministic color hashing of group and
// category names.
var ColorPool []lipgloss.Color

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	Title = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	Subtitle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
	Label = lipgloss.NewStyle().
		Foreground(ColorMuted)
	Value = lipgloss.NewStyle().
		Foreground(ColorForeground)
	Muted = lipgloss.NewStyle().
		Foreground(ColorMuted)
	Success = lipgloss.NewStyle().
		Foreground(ColorSuccess)
	Warning = lipgloss.NewStyle().
		Foreground(ColorWarning)
	Error = lipgloss.NewStyle().
		Foreground(ColorError)
	Divider = lipgloss.NewStyle().
		Foreground(ColorSurface)

	ColorPool = []lipgloss.Color{
		ColorPrimary,
		ColorSecondary,
		ColorSuccess,
		ColorWarning,
		ColorError,
		ColorMuted,
	}
}

// ColorForString returns a deterministic color for a given string.
// The same string always produces the same color.
func ColorForString(s string) lipgloss.Color {
	var hash uint32
	for _, c := range s {
		hash = hash*31 + uint32(c)
	}
	return ColorPool[hash%uint32(len(ColorPool))]
}

// FormTheme returns a huh theme derived from the active palette.
func FormTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = t.Focused.Title.Foreground(ColorPrimary).Bold(true)
	t.Focused.Base = t.Focused.Base.BorderForeground(ColorPrimary)
	t.Focused.Description = t.Focused.Description.Foreground(ColorMuted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(ColorError)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(ColorError)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(ColorSecondary)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(ColorPrimary)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Background(ColorPrimary).Foreground(ColorBackground)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Background(ColorSurface).Foreground(ColorMuted)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(ColorSecondary)
	t.Focused.TextInput.Cursor = t.Focused.TextInput.Cursor.Foreground(ColorForeground)

	t.Blurred.Title = t.Blurred.Title.Foreground(ColorMuted)
	t.Blurred.Description = t.Blurred.Description.Foreground(ColorMuted)

	return t
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}
