package workbook

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the workbook path does not exist.
var ErrFileNotFound = errors.New("workbook not found")

// ErrSheetNotFound indicates a required sheet is absent from the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// SheetError represents a failure while reading one sheet.
type SheetError struct {
	Path  string
	Sheet string
	Err   error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("workbook %s: sheet %q: %v", e.Path, e.Sheet, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}
