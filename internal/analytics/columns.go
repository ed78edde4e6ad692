// Package analytics derives the chart data from the loaded tables.
package analytics

// Column headers of the source sheets.
const (
	ColumnBrand        = "Brand"
	ColumnTransparency = "Transparency_Index_2025"
	ColumnYear         = "Year"
	ColumnBehavior     = "Behavior"
	ColumnBefore       = "2022_%"
	ColumnAfter        = "2024_%"
)

// Brand names one value series of the brand-value sheet.
type Brand struct {
	Name   string
	Column string
}
