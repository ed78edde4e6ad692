// Package workbook reads the three source tables out of an .xlsx file.
package workbook

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"fashion-visuals/internal/table"

	"github.com/xuri/excelize/v2"
)

// SheetNames lists the worksheets the pipeline consumes.
type SheetNames struct {
	Transparency string `mapstructure:"transparency" validate:"required"`
	BrandValue   string `mapstructure:"brand_value" validate:"required"`
	Behaviors    string `mapstructure:"behaviors" validate:"required"`
}

// DefaultSheetNames returns the sheet names of the published data file.
func DefaultSheetNames() SheetNames {
	return SheetNames{
		Transparency: "Transparency_2025",
		BrandValue:   "BrandValue_2010_2024",
		Behaviors:    "UK_Behaviors_2022_2024",
	}
}

// Workbook holds the loaded tables. They are read-only after Load.
type Workbook struct {
	Path         string
	Transparency *table.Table
	BrandValue   *table.Table
	Behaviors    *table.Table
}

// Load opens path and reads the three named sheets. Any missing file or
// sheet is returned as an error; nothing is partially loaded.
func Load(path string, names SheetNames) (*Workbook, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat workbook %s: %w", path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	wb := &Workbook{Path: path}
	targets := []struct {
		name string
		dst  **table.Table
	}{
		{names.Transparency, &wb.Transparency},
		{names.BrandValue, &wb.BrandValue},
		{names.Behaviors, &wb.Behaviors},
	}
	for _, target := range targets {
		t, err := ReadSheet(f, target.name)
		if err != nil {
			return nil, &SheetError{Path: path, Sheet: target.name, Err: err}
		}
		*target.dst = t
	}

	return wb, nil
}

// ReadSheet converts one worksheet into a table. The first non-empty row is
// the header row. Raw cell values are used so number formats do not leak
// thousands separators or percent signs into the data.
func ReadSheet(f *excelize.File, sheetName string) (*table.Table, error) {
	if !slices.Contains(f.GetSheetList(), sheetName) {
		return nil, ErrSheetNotFound
	}

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	start := 0
	for start < len(rows) && isBlank(rows[start]) {
		start++
	}
	if start == len(rows) {
		return table.New(sheetName, nil, nil), nil
	}

	var data [][]string
	for _, row := range rows[start+1:] {
		if isBlank(row) {
			continue
		}
		data = append(data, row)
	}

	return table.New(sheetName, rows[start], data), nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
