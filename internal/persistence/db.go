// Package persistence provides SQLite-based storage for editor sessions and layouts.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hexedit/internal/editor"
	"github.com/talgya/hexedit/internal/symmetry"
	"github.com/talgya/hexedit/internal/world"
)

// DB wraps a SQLite connection for editor persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pieces (
		seq INTEGER PRIMARY KEY,
		id TEXT NOT NULL UNIQUE,
		kind TEXT NOT NULL,
		pos_q INTEGER NOT NULL,
		pos_r INTEGER NOT NULL,
		rotation INTEGER NOT NULL,
		existing INTEGER NOT NULL,
		shape_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS editor_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := db.conn.Exec(schema)
	return err
}

type pieceRow struct {
	Seq       int64  `db:"seq"`
	ID        string `db:"id"`
	Kind      string `db:"kind"`
	PosQ      int    `db:"pos_q"`
	PosR      int    `db:"pos_r"`
	Rotation  int    `db:"rotation"`
	Existing  bool   `db:"existing"`
	ShapeJSON string `db:"shape_json"`
}

// SavePieces writes all pieces to the database (full replace), keeping their order.
func (db *DB) SavePieces(pieces []*world.Piece) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM pieces"); err != nil {
		return err
	}

	stmt, err := tx.Preparex(`INSERT INTO pieces
		(seq, id, kind, pos_q, pos_r, rotation, existing, shape_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, p := range pieces {
		shapeJSON, err := json.Marshal(p.Footprint)
		if err != nil {
			return fmt.Errorf("encode shape %s: %w", p.PieceID, err)
		}
		_, err = stmt.Exec(i, p.PieceID.String(), p.Kind, p.Pos.Q, p.Pos.R, int(p.Rot), p.Existing, string(shapeJSON))
		if err != nil {
			return fmt.Errorf("insert piece %s: %w", p.PieceID, err)
		}
	}

	return tx.Commit()
}

// LoadLayout rebuilds a layout of the given radius from the saved pieces.
// Loaded pieces count as pre-existing for the new session.
func (db *DB) LoadLayout(radius int) (*world.Layout, error) {
	var rows []pieceRow
	if err := db.conn.Select(&rows, "SELECT * FROM pieces ORDER BY seq"); err != nil {
		return nil, fmt.Errorf("select pieces: %w", err)
	}

	l := world.NewLayout(radius)
	for _, row := range rows {
		id, err := uuid.Parse(row.ID)
		if err != nil {
			return nil, fmt.Errorf("piece %d: %w", row.Seq, err)
		}
		var shape world.Shape
		if err := json.Unmarshal([]byte(row.ShapeJSON), &shape); err != nil {
			return nil, fmt.Errorf("piece %s shape: %w", id, err)
		}
		p := &world.Piece{
			PieceID:   id,
			Kind:      row.Kind,
			Pos:       world.AxialCoord{Q: row.PosQ, R: row.PosR},
			Rot:       world.Rotation(row.Rotation).Normalize(),
			Footprint: shape,
			Existing:  true,
		}
		if err := l.Add(p); err != nil {
			return nil, fmt.Errorf("piece %s: %w", id, err)
		}
	}
	return l, nil
}

// HasPieces returns true if any pieces have been saved.
func (db *DB) HasPieces() bool {
	var count int
	if err := db.conn.Get(&count, "SELECT COUNT(*) FROM pieces"); err != nil {
		return false
	}
	return count > 0
}

// SaveMeta stores a key-value pair in editor metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO editor_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM editor_meta WHERE key = ?", key)
	return value, err
}

// SaveSession stores the editor's symmetry mode, rotation and pending move.
func (db *DB) SaveSession(s editor.Session) error {
	mode, err := s.Symmetry.MarshalText()
	if err != nil {
		return err
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	meta := map[string]string{
		"symmetry":     string(mode),
		"rotation":     strconv.Itoa(int(s.Rotation)),
		"pending_move": s.PendingMove.String(),
	}
	for k, v := range meta {
		if _, err := tx.Exec("INSERT OR REPLACE INTO editor_meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return fmt.Errorf("save %s: %w", k, err)
		}
	}
	return tx.Commit()
}

// LoadSession returns the saved session. ok is false when none was saved.
func (db *DB) LoadSession() (s editor.Session, ok bool, err error) {
	modeStr, err := db.GetMeta("symmetry")
	if errors.Is(err, sql.ErrNoRows) {
		return s, false, nil
	}
	if err != nil {
		return s, false, err
	}
	if s.Symmetry, err = symmetry.ParseMode(modeStr); err != nil {
		return s, false, err
	}

	rotStr, err := db.GetMeta("rotation")
	if err != nil {
		return s, false, fmt.Errorf("rotation: %w", err)
	}
	rot, err := strconv.Atoi(rotStr)
	if err != nil {
		return s, false, fmt.Errorf("rotation: %w", err)
	}
	s.Rotation = world.Rotation(rot).Normalize()

	moveStr, err := db.GetMeta("pending_move")
	if err != nil {
		return s, false, fmt.Errorf("pending move: %w", err)
	}
	if s.PendingMove, err = uuid.Parse(moveStr); err != nil {
		return s, false, fmt.Errorf("pending move: %w", err)
	}
	return s, true, nil
}

// SaveEditorState performs a full save of the layout and session.
func (db *DB) SaveEditorState(l *world.Layout, s editor.Session) error {
	slog.Info("saving editor state", "pieces", len(l.Pieces()), "symmetry", s.Symmetry.String())

	if err := db.SavePieces(l.Pieces()); err != nil {
		return fmt.Errorf("save pieces: %w", err)
	}
	if err := db.SaveSession(s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	slog.Info("editor state saved")
	return nil
}
