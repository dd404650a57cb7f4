// Package save keeps player save slots in a SQLite database.
package save

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	_ "modernc.org/sqlite"
)

const timeFormat = time.RFC3339Nano

const schema = `
CREATE TABLE IF NOT EXISTS save_slots (
	slot       TEXT PRIMARY KEY,
	pos_x      REAL NOT NULL,
	pos_y      REAL NOT NULL,
	pos_z      REAL NOT NULL,
	rot_w      REAL NOT NULL,
	rot_x      REAL NOT NULL,
	rot_y      REAL NOT NULL,
	rot_z      REAL NOT NULL,
	updated_at TEXT NOT NULL
)`

// Data is what a slot holds: where the player stands and where it faces.
type Data struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

var ErrSlotRequired = errors.New("save: slot name is required")

type Store struct {
	sqlDB *sql.DB
	now   func() time.Time
}

// Open opens or creates the save database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("save: storage path is required")
	}

	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("save: open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("save: ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("save: create schema: %w", err)
	}

	return &Store{sqlDB: sqlDB, now: time.Now}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Save writes data to slot, replacing what was there.
func (s *Store) Save(ctx context.Context, slot string, data Data) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(slot) == "" {
		return ErrSlotRequired
	}

	p, r := data.Position, data.Rotation
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO save_slots (slot, pos_x, pos_y, pos_z, rot_w, rot_x, rot_y, rot_z, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(slot) DO UPDATE SET
	pos_x = excluded.pos_x, pos_y = excluded.pos_y, pos_z = excluded.pos_z,
	rot_w = excluded.rot_w, rot_x = excluded.rot_x, rot_y = excluded.rot_y, rot_z = excluded.rot_z,
	updated_at = excluded.updated_at`,
		slot, p.X(), p.Y(), p.Z(), r.W, r.X(), r.Y(), r.Z(), s.now().UTC().Format(timeFormat),
	)
	if err != nil {
		return fmt.Errorf("save: write slot %q: %w", slot, err)
	}
	return nil
}

// Load reads a slot. It reports false when the slot has never been saved.
func (s *Store) Load(ctx context.Context, slot string) (Data, bool, error) {
	if err := ctx.Err(); err != nil {
		return Data{}, false, err
	}
	if strings.TrimSpace(slot) == "" {
		return Data{}, false, ErrSlotRequired
	}

	var px, py, pz, rw, rx, ry, rz float64
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT pos_x, pos_y, pos_z, rot_w, rot_x, rot_y, rot_z FROM save_slots WHERE slot = ?`, slot,
	).Scan(&px, &py, &pz, &rw, &rx, &ry, &rz)
	if errors.Is(err, sql.ErrNoRows) {
		return Data{}, false, nil
	}
	if err != nil {
		return Data{}, false, fmt.Errorf("save: read slot %q: %w", slot, err)
	}

	return Data{
		Position: mgl32.Vec3{float32(px), float32(py), float32(pz)},
		Rotation: mgl32.Quat{W: float32(rw), V: mgl32.Vec3{float32(rx), float32(ry), float32(rz)}},
	}, true, nil
}

// Slots lists saved slot names, most recently written first.
func (s *Store) Slots(ctx context.Context) ([]string, error) {
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT slot FROM save_slots ORDER BY updated_at DESC, slot`)
	if err != nil {
		return nil, fmt.Errorf("save: list slots: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var slot string
		if err := rows.Scan(&slot); err != nil {
			return nil, fmt.Errorf("save: list slots: %w", err)
		}
		out = append(out, slot)
	}
	return out, rows.Err()
}
