package sheets

import (
	"context"
	"fmt"
	"slices"

	"nba_standings/internal/domain/standings"

	"github.com/rs/zerolog/log"
)

// StandingsSheetsManager mirrors standings tables into per-season tabs
type StandingsSheetsManager struct {
	api SheetsAPI
}

// NewStandingsSheetsManager creates a new standings sheets manager with the given API client
func NewStandingsSheetsManager(api SheetsAPI) *StandingsSheetsManager {
	return &StandingsSheetsManager{
		api: api,
	}
}

// SheetName returns the tab name for a season and subset, e.g. "Standings 2023-24 East"
func (m *StandingsSheetsManager) SheetName(season string, subset standings.TeamSubset) string {
	switch subset {
	case standings.SubsetEast:
		return fmt.Sprintf("Standings %s East", season)
	case standings.SubsetWest:
		return fmt.Sprintf("Standings %s West", season)
	default:
		return fmt.Sprintf("Standings %s", season)
	}
}

// EnsureStandingsSheet creates the tab if it doesn't exist
func (m *StandingsSheetsManager) EnsureStandingsSheet(ctx context.Context, spreadsheetID, sheetName string) error {
	exists, err := m.api.SheetExists(ctx, spreadsheetID, sheetName)
	if err != nil {
		return fmt.Errorf("failed to check if standings sheet exists: %w", err)
	}
	if exists {
		return nil
	}

	log.Info().
		Str("sheet_name", sheetName).
		Msg("Creating standings sheet")

	if err := m.api.CreateSheet(ctx, spreadsheetID, sheetName); err != nil {
		return fmt.Errorf("failed to create standings sheet: %w", err)
	}
	return nil
}

// ExportStandings replaces the tab contents with the header row and one row per team.
// The write is skipped when the tab already holds the same values.
func (m *StandingsSheetsManager) ExportStandings(ctx context.Context, spreadsheetID, season string, subset standings.TeamSubset, rows []standings.TableRow) error {
	sheetName := m.SheetName(season, subset)
	if err := m.EnsureStandingsSheet(ctx, spreadsheetID, sheetName); err != nil {
		return err
	}

	values := StandingsValues(rows)
	fullRange := fmt.Sprintf("'%s'!A:%s", sheetName, columnName(len(standings.TableHeaders)))

	existing, err := m.api.ReadSheet(ctx, spreadsheetID, fullRange)
	if err != nil {
		return fmt.Errorf("failed to read standings sheet: %w", err)
	}
	if sameValues(existing, values) {
		log.Debug().
			Str("sheet_name", sheetName).
			Msg("Standings sheet unchanged, skipping write")
		return nil
	}

	if err := m.api.EnsureSheetCapacity(ctx, spreadsheetID, sheetName, len(values), len(standings.TableHeaders)); err != nil {
		return fmt.Errorf("failed to ensure standings sheet capacity: %w", err)
	}

	if err := m.api.ClearRange(ctx, spreadsheetID, fullRange); err != nil {
		return fmt.Errorf("failed to clear standings sheet: %w", err)
	}

	raw := make([][]interface{}, len(values))
	for i, row := range values {
		raw[i] = toRow(row)
	}
	if err := m.api.UpdateRange(ctx, spreadsheetID, fmt.Sprintf("'%s'!A1", sheetName), raw); err != nil {
		return fmt.Errorf("failed to write standings sheet: %w", err)
	}

	log.Info().
		Str("sheet_name", sheetName).
		Int("teams", len(rows)).
		Msg("Exported standings table")

	return nil
}

// StandingsValues lays out the header row followed by each table row's cells
func StandingsValues(rows []standings.TableRow) [][]string {
	values := make([][]string, 0, len(rows)+1)
	values = append(values, standings.TableHeaders)
	for _, row := range rows {
		values = append(values, row.Cells())
	}
	return values
}

// sameValues compares sheet contents, ignoring trailing empty cells which the API omits
func sameValues(existing [][]interface{}, values [][]string) bool {
	if len(existing) != len(values) {
		return false
	}
	for i, row := range existing {
		if !slices.Equal(trimTrailing(rowStrings(row)), trimTrailing(values[i])) {
			return false
		}
	}
	return true
}

func trimTrailing(cells []string) []string {
	end := len(cells)
	for end > 0 && cells[end-1] == "" {
		end--
	}
	return cells[:end]
}

// columnName converts a 1-based column number to its A1 letter(s)
func columnName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+n%26)) + name
		n /= 26
	}
	return name
}
