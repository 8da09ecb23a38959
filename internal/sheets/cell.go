package sheets

import (
	"fmt"
	"strconv"
)

// Cell provides type-safe access to a value read from Google Sheets.
// Values come back as interface{} holding a string, a float64 or nil.
type Cell struct {
	raw interface{}
}

// NewCell wraps a raw value from the Sheets API
func NewCell(raw interface{}) Cell {
	return Cell{raw: raw}
}

// String returns the cell value as the sheet displays it
func (c Cell) String() string {
	switch v := c.raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// IsEmpty returns true if the cell contains nil or empty string
func (c Cell) IsEmpty() bool {
	return c.raw == nil || c.raw == ""
}

// rowStrings converts a raw row into display strings
func rowStrings(row []interface{}) []string {
	out := make([]string, len(row))
	for i, v := range row {
		out[i] = NewCell(v).String()
	}
	return out
}

// toRow converts display strings into a raw row for the Sheets API
func toRow(cells []string) []interface{} {
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}
