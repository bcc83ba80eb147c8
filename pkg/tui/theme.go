package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

var (
	colorRose = tcell.NewRGBColor(235, 188, 186)
	colorFoam = tcell.NewRGBColor(156, 207, 216)
	colorGold = tcell.NewRGBColor(246, 193, 119)
	colorLove = tcell.NewRGBColor(235, 111, 146)
	colorText = tcell.NewRGBColor(224, 222, 244)
)

// SetupRosePineTheme switches tview to the Rose Pine (moon) palette.
func SetupRosePineTheme() {
	tview.Styles = tview.Theme{
		PrimitiveBackgroundColor:    tcell.NewRGBColor(35, 33, 54),    // base
		ContrastBackgroundColor:     tcell.NewRGBColor(42, 39, 63),    // surface
		MoreContrastBackgroundColor: tcell.NewRGBColor(57, 53, 82),    // overlay
		BorderColor:                 tcell.NewRGBColor(110, 106, 134), // muted
		TitleColor:                  colorRose,
		GraphicsColor:               colorFoam,
		PrimaryTextColor:            colorText,
		SecondaryTextColor:          tcell.NewRGBColor(144, 140, 170), // subtle
		TertiaryTextColor:           tcell.NewRGBColor(110, 106, 134), // muted
		InverseTextColor:            tcell.NewRGBColor(35, 33, 54),    // base
		ContrastSecondaryTextColor:  colorText,
	}
}
