package nba

import (
	"context"

	"nba_standings/internal/app"
)

// StandingsAPI defines the interface for fetching season payloads from the data server
type StandingsAPI interface {
	GetSeasonTeams(ctx context.Context, season string) ([]app.Team, error)
	GetSeasonPayload(ctx context.Context, season string) ([]byte, error)

	// API call tracking
	GetAPICallCount() int64
	IncrementAPICall()
	ResetAPICallCount()
}
