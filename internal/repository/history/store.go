package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/omarshaarawi/rotocoach/internal/models"
	_ "modernc.org/sqlite"
)

// Store keeps a snapshot of every report so values and standings can be
// compared across runs.
type Store struct {
	db *sql.DB
}

type Run struct {
	ID          int64
	GeneratedAt time.Time
	MyTeamID    int
	Total       int
	Buffer      sql.NullFloat64
	Source      string
}

// ValuePoint is one player's value in one run.
type ValuePoint struct {
	RunID       int64
	GeneratedAt time.Time
	TeamID      int
	Total       float64
	Mod         float64
}

// Open creates the database file and schema when missing. ":memory:" opens a
// private in-memory database.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps a :memory: database alive across calls.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			generated_at TEXT NOT NULL,
			my_team_id INTEGER NOT NULL,
			total INTEGER NOT NULL,
			buffer REAL,
			source TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS team_ranks (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			team_id INTEGER NOT NULL,
			total INTEGER NOT NULL,
			PRIMARY KEY (run_id, team_id)
		);

		CREATE TABLE IF NOT EXISTS player_values (
			run_id INTEGER NOT NULL REFERENCES runs(id),
			player_id TEXT NOT NULL,
			name TEXT NOT NULL,
			team_id INTEGER NOT NULL,
			total REAL NOT NULL,
			mod_value REAL NOT NULL,
			PRIMARY KEY (run_id, player_id)
		);

		CREATE INDEX IF NOT EXISTS idx_player_values_player ON player_values(player_id);
	`

	_, err := s.db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save writes one report in a single transaction and returns the run id.
func (s *Store) Save(ctx context.Context, report *models.Report, source string) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var buffer sql.NullFloat64
	if report.Buffer.HasMin {
		buffer = sql.NullFloat64{Float64: report.Buffer.Min, Valid: true}
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (generated_at, my_team_id, total, buffer, source) VALUES (?, ?, ?, ?, ?)`,
		report.GeneratedAt.UTC().Format(time.RFC3339Nano), report.MyTeamID, report.Baseline.Total, buffer, source,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	for _, t := range report.Ranking.Teams {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO team_ranks (run_id, team_id, total) VALUES (?, ?, ?)`,
			runID, t.TeamID, t.Total,
		); err != nil {
			return 0, fmt.Errorf("inserting team rank: %w", err)
		}
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO player_values (run_id, player_id, name, team_id, total, mod_value) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing value insert: %w", err)
	}
	defer stmt.Close()
	for _, v := range report.Values {
		if _, err := stmt.ExecContext(ctx, runID, v.Player.ID, v.Player.Name, v.TeamID, v.Total, v.Mod); err != nil {
			return 0, fmt.Errorf("inserting value for %s: %w", v.Player.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Recent returns the latest runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, generated_at, my_team_id, total, buffer, source FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var at string
		if err := rows.Scan(&r.ID, &at, &r.MyTeamID, &r.Total, &r.Buffer, &r.Source); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.GeneratedAt, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parsing run time: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// PlayerTrend returns a player's value across the latest runs, oldest first.
func (s *Store) PlayerTrend(ctx context.Context, playerID string, limit int) ([]ValuePoint, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.generated_at, v.team_id, v.total, v.mod_value
		FROM player_values v JOIN runs r ON r.id = v.run_id
		WHERE v.player_id = ?
		ORDER BY r.id DESC LIMIT ?`, playerID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying player trend: %w", err)
	}
	defer rows.Close()

	var points []ValuePoint
	for rows.Next() {
		var p ValuePoint
		var at string
		if err := rows.Scan(&p.RunID, &at, &p.TeamID, &p.Total, &p.Mod); err != nil {
			return nil, fmt.Errorf("scanning value: %w", err)
		}
		p.GeneratedAt, err = time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("parsing run time: %w", err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}
