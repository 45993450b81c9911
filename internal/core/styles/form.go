package styles

import "github.com/charmbracelet/huh"

// FormTheme returns the huh theme closest to the active palette.
func FormTheme() *huh.Theme {
	switch activeTheme {
	case "catppuccin":
		return huh.ThemeCatppuccin()
	case "gruvbox", "kanagawa":
		return huh.ThemeBase16()
	case "onedark":
		return huh.ThemeDracula()
	default:
		return huh.ThemeCharm()
	}
}
