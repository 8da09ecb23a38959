package processing

import (
	"context"

	"nba_standings/internal/app"
	"nba_standings/internal/domain/standings"
)

// SeasonPayloadSource fetches the raw team array for a season
type SeasonPayloadSource interface {
	GetSeasonPayload(ctx context.Context, season string) ([]byte, error)
}

// TeamSource loads a season's teams, possibly from a cache
type TeamSource interface {
	Teams(ctx context.Context, season string) ([]app.Team, error)
}

// StandingsExporter mirrors a standings table into a spreadsheet
type StandingsExporter interface {
	ExportStandings(ctx context.Context, spreadsheetID, season string, subset standings.TeamSubset, rows []standings.TableRow) error
}

// Deployer publishes a generated file
type Deployer interface {
	Deploy(ctx context.Context, localPath string) error
}
