package mocks

import (
	"context"
	"sync"

	"nba_standings/internal/app"
	"nba_standings/internal/domain/standings"
)

// MockPayloadSource is a test double for nba.Client's raw payload fetch
type MockPayloadSource struct {
	// Payloads keyed by season
	Payloads map[string][]byte
	Error    error

	mutex sync.Mutex
	calls int
}

// NewMockPayloadSource creates a payload source serving the given seasons
func NewMockPayloadSource(payloads map[string][]byte) *MockPayloadSource {
	return &MockPayloadSource{Payloads: payloads}
}

func (m *MockPayloadSource) GetSeasonPayload(ctx context.Context, season string) ([]byte, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.calls++
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Payloads[season], nil
}

// Calls returns how many fetches were made
func (m *MockPayloadSource) Calls() int {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.calls
}

// MockTeamSource is a test double for the season cache
type MockTeamSource struct {
	Response []app.Team
	Error    error

	TeamsCalled     bool
	TeamsCalledWith string
}

func (m *MockTeamSource) Teams(ctx context.Context, season string) ([]app.Team, error) {
	m.TeamsCalled = true
	m.TeamsCalledWith = season
	return m.Response, m.Error
}

// MockStandingsExporter records exported tables
type MockStandingsExporter struct {
	Error error

	ExportCalled  bool
	SpreadsheetID string
	Season        string
	Subset        standings.TeamSubset
	ExportedRows  []standings.TableRow
}

func (m *MockStandingsExporter) ExportStandings(ctx context.Context, spreadsheetID, season string, subset standings.TeamSubset, rows []standings.TableRow) error {
	m.ExportCalled = true
	m.SpreadsheetID = spreadsheetID
	m.Season = season
	m.Subset = subset
	m.ExportedRows = rows
	return m.Error
}

// MockDeployer records deployed paths
type MockDeployer struct {
	Error error

	DeployedPaths []string
}

func (m *MockDeployer) Deploy(ctx context.Context, localPath string) error {
	m.DeployedPaths = append(m.DeployedPaths, localPath)
	return m.Error
}
