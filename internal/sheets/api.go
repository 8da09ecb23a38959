package sheets

import (
	"context"
)

// SheetsAPI is the subset of Google Sheets operations the standings export needs.
//
// Cell values cross this boundary as [][]interface{} because that is what
// google.golang.org/api/sheets/v4 accepts and returns. Wrap read values with
// NewCell rather than type-asserting them elsewhere.
type SheetsAPI interface {
	// ReadSheet reads values from a sheet range
	ReadSheet(ctx context.Context, spreadsheetID, range_ string) ([][]interface{}, error)

	// UpdateRange overwrites values starting at the range's top-left cell
	UpdateRange(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error

	// ClearRange clears all values in a sheet range
	ClearRange(ctx context.Context, spreadsheetID, range_ string) error

	// CreateSheet adds a tab to the spreadsheet
	CreateSheet(ctx context.Context, spreadsheetID, sheetName string) error

	// SheetExists checks if a tab with the given name exists
	SheetExists(ctx context.Context, spreadsheetID, sheetName string) (bool, error)

	// EnsureSheetCapacity grows a tab to at least the given grid size
	EnsureSheetCapacity(ctx context.Context, spreadsheetID, sheetName string, requiredRows, requiredCols int) error
}
