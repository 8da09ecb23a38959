package processing

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"nba_standings/internal/app"
	"nba_standings/internal/config"
	"nba_standings/internal/nba"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const seasonCacheSchema = `
	CREATE TABLE IF NOT EXISTS season_payloads (
		season TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		fetched_at INTEGER NOT NULL
	);
`

// SeasonCache serves season payloads from SQLite, fetching from the source when
// an entry is missing or expired. Completed seasons never expire; the current
// season expires after the TTL.
type SeasonCache struct {
	db      *sql.DB
	source  SeasonPayloadSource
	seasons *config.Seasons
	ttl     time.Duration
	tracker *APICallTracker
	now     func() time.Time
	mutex   sync.Mutex
}

type cachedPayload struct {
	payload   []byte
	fetchedAt time.Time
}

// OpenSeasonCache opens (creating if needed) the cache database at path
func OpenSeasonCache(path string, source SeasonPayloadSource, seasons *config.Seasons, ttl time.Duration, tracker *APICallTracker) (*SeasonCache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}
	// One connection keeps writes serialized and in-memory databases intact
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(seasonCacheSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	if tracker == nil {
		tracker = NewAPICallTracker()
	}

	log.Debug().
		Str("path", path).
		Dur("ttl", ttl).
		Msg("Opened season cache")

	return &SeasonCache{
		db:      db,
		source:  source,
		seasons: seasons,
		ttl:     ttl,
		tracker: tracker,
		now:     time.Now,
	}, nil
}

// Close closes the cache database
func (c *SeasonCache) Close() error {
	return c.db.Close()
}

// Teams returns the season's teams, from the cache when the entry is fresh.
// If a refresh fails and an expired entry exists, the expired entry is served.
func (c *SeasonCache) Teams(ctx context.Context, season string) ([]app.Team, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, err := c.load(ctx, season)
	if err != nil {
		return nil, err
	}

	var (
		stale     []app.Team
		haveStale bool
	)
	if entry != nil {
		teams, err := nba.DecodeTeams(entry.payload)
		switch {
		case err != nil:
			log.Warn().
				Err(err).
				Str("season", season).
				Msg("Discarding undecodable cached payload")
		case c.isFresh(season, entry):
			c.tracker.RecordCall(EventCacheHit)
			log.Debug().
				Str("season", season).
				Dur("cache_age", c.now().Sub(entry.fetchedAt)).
				Msg("Using cached season payload (API call saved)")
			return teams, nil
		default:
			stale, haveStale = teams, true
		}
	}

	payload, err := c.source.GetSeasonPayload(ctx, season)
	if err != nil {
		if haveStale && ctx.Err() == nil {
			c.tracker.RecordCall(EventStaleServe)
			log.Warn().
				Err(err).
				Str("season", season).
				Time("fetched_at", entry.fetchedAt).
				Msg("Season refresh failed, serving expired cached payload")
			return stale, nil
		}
		return nil, err
	}
	c.tracker.RecordCall(EventSeasonFetch)

	teams, err := nba.DecodeTeams(payload)
	if err != nil {
		return nil, err
	}

	if err := c.store(ctx, season, payload, c.now()); err != nil {
		// The fresh data is still usable
		log.Warn().
			Err(err).
			Str("season", season).
			Msg("Failed to store season payload in cache")
	}

	log.Debug().
		Str("season", season).
		Int("teams", len(teams)).
		Int("bytes", len(payload)).
		Msg("Cached fresh season payload")

	return teams, nil
}

// Invalidate removes a season so the next lookup fetches it
func (c *SeasonCache) Invalidate(ctx context.Context, season string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, err := c.db.ExecContext(ctx, `DELETE FROM season_payloads WHERE season = ?`, season); err != nil {
		return fmt.Errorf("failed to invalidate season %s: %w", season, err)
	}
	return nil
}

// FetchedAt returns when the season was last fetched, and false if it is not cached
func (c *SeasonCache) FetchedAt(ctx context.Context, season string) (time.Time, bool, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, err := c.load(ctx, season)
	if err != nil || entry == nil {
		return time.Time{}, false, err
	}
	return entry.fetchedAt, true, nil
}

func (c *SeasonCache) isFresh(season string, entry *cachedPayload) bool {
	if c.seasons.IsCompleted(season) {
		return true
	}
	return c.now().Sub(entry.fetchedAt) < c.ttl
}

func (c *SeasonCache) load(ctx context.Context, season string) (*cachedPayload, error) {
	var (
		payload   []byte
		fetchedAt int64
	)
	err := c.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM season_payloads WHERE season = ?`, season,
	).Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached season %s: %w", season, err)
	}

	return &cachedPayload{
		payload:   payload,
		fetchedAt: time.UnixMilli(fetchedAt),
	}, nil
}

func (c *SeasonCache) store(ctx context.Context, season string, payload []byte, fetchedAt time.Time) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO season_payloads (season, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(season) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
	`, season, payload, fetchedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to store season %s: %w", season, err)
	}
	return nil
}
