package processing

import (
	"nba_standings/internal/deployment"
	"nba_standings/internal/nba"
	"nba_standings/internal/sheets"
)

// Compile-time interface compliance checks

var (
	_ SeasonPayloadSource = (*nba.Client)(nil)
	_ TeamSource          = (*SeasonCache)(nil)
	_ StandingsExporter   = (*sheets.StandingsSheetsManager)(nil)
	_ Deployer            = (*deployment.SSHDeployer)(nil)
)
