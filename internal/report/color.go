package report

import (
	"github.com/account-compliance-api/internal/models"
	"github.com/fatih/color"
)

// Shared color printers for report sections.
var (
	colorRed    = color.New(color.FgRed)
	colorYellow = color.New(color.FgYellow)
	colorGreen  = color.New(color.FgGreen)
	colorBold   = color.New(color.Bold)
)

// ColorStatus colors account status labels.
func ColorStatus(val string) string {
	switch val {
	case models.StatusBlocked:
		return colorRed.Sprint(val)
	case models.StatusDisabled:
		return colorYellow.Sprint(val)
	case models.StatusActive:
		return colorGreen.Sprint(val)
	default:
		return val
	}
}
