// Package analytics maintains per-server-instance match counters in
// Postgres. The counters are advisory: the game flow never depends
// on them and a failed update is only logged by the caller.
package analytics

import (
	"context"
	"database/sql"
	"time"

	"github.com/sqlc-dev/pqtype"
)

const QuerierCtxTimeout = time.Second * 10

type Querier interface {
	IncrementGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) error
	IncrementGamesFinishedCount(ctx context.Context, serverIp pqtype.Inet) error
	IncrementGamesRestartedCount(ctx context.Context, serverIp pqtype.Inet) error

	GetGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
	GetGamesFinishedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
	GetGamesRestartedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error)
}

const incrementGamesCreatedCount = `
INSERT INTO game_server_analytics (server_ip, games_created)
VALUES ($1, 1)
ON CONFLICT (server_ip)
DO UPDATE SET games_created = game_server_analytics.games_created + 1
`

const incrementGamesFinishedCount = `
INSERT INTO game_server_analytics (server_ip, games_finished)
VALUES ($1, 1)
ON CONFLICT (server_ip)
DO UPDATE SET games_finished = game_server_analytics.games_finished + 1
`

const incrementGamesRestartedCount = `
INSERT INTO game_server_analytics (server_ip, games_restarted)
VALUES ($1, 1)
ON CONFLICT (server_ip)
DO UPDATE SET games_restarted = game_server_analytics.games_restarted + 1
`

const getGamesCreatedCount = `
SELECT games_created FROM game_server_analytics WHERE server_ip = $1
`

const getGamesFinishedCount = `
SELECT games_finished FROM game_server_analytics WHERE server_ip = $1
`

const getGamesRestartedCount = `
SELECT games_restarted FROM game_server_analytics WHERE server_ip = $1
`

type PostgresQuerier struct {
	db *sql.DB
}

var _ Querier = (*PostgresQuerier)(nil)

func NewPostgresQuerier(db *sql.DB) *PostgresQuerier {
	return &PostgresQuerier{db: db}
}

func (q *PostgresQuerier) IncrementGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, incrementGamesCreatedCount, serverIp)
	return err
}

func (q *PostgresQuerier) IncrementGamesFinishedCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, incrementGamesFinishedCount, serverIp)
	return err
}

func (q *PostgresQuerier) IncrementGamesRestartedCount(ctx context.Context, serverIp pqtype.Inet) error {
	_, err := q.db.ExecContext(ctx, incrementGamesRestartedCount, serverIp)
	return err
}

func (q *PostgresQuerier) GetGamesCreatedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, getGamesCreatedCount, serverIp).Scan(&count)
	return count, err
}

func (q *PostgresQuerier) GetGamesFinishedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, getGamesFinishedCount, serverIp).Scan(&count)
	return count, err
}

func (q *PostgresQuerier) GetGamesRestartedCount(ctx context.Context, serverIp pqtype.Inet) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, getGamesRestartedCount, serverIp).Scan(&count)
	return count, err
}

// Manager binds a Querier to this server instance's inet so call
// sites only name the event.
type Manager struct {
	queries  Querier
	serverIp pqtype.Inet
}

func NewManager(queries Querier, serverIp pqtype.Inet) *Manager {
	return &Manager{queries: queries, serverIp: serverIp}
}

func (m *Manager) GameCreated(ctx context.Context) error {
	return m.queries.IncrementGamesCreatedCount(ctx, m.serverIp)
}

func (m *Manager) GameFinished(ctx context.Context) error {
	return m.queries.IncrementGamesFinishedCount(ctx, m.serverIp)
}

func (m *Manager) GameRestarted(ctx context.Context) error {
	return m.queries.IncrementGamesRestartedCount(ctx, m.serverIp)
}

func (m *Manager) GamesCreatedCount(ctx context.Context) (int64, error) {
	return m.queries.GetGamesCreatedCount(ctx, m.serverIp)
}

func (m *Manager) GamesFinishedCount(ctx context.Context) (int64, error) {
	return m.queries.GetGamesFinishedCount(ctx, m.serverIp)
}

func (m *Manager) GamesRestartedCount(ctx context.Context) (int64, error) {
	return m.queries.GetGamesRestartedCount(ctx, m.serverIp)
}
