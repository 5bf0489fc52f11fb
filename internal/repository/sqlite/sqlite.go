// Package sqlite provides a SQLite-backed Repository.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"graphmap/internal/domain"
	"graphmap/internal/mapper"
	"graphmap/internal/repository"
	"graphmap/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// Repository implements repository.Repository using SQLite
type Repository struct {
	db *sql.DB
}

var _ repository.Repository = (*Repository)(nil)

// New opens the database at dbPath and applies migrations.
// Use ":memory:" for a throwaway database.
func New(dbPath string) (*Repository, error) {
	if strings.TrimSpace(dbPath) == "" {
		return nil, fmt.Errorf("database path is required")
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A single connection keeps ":memory:" databases alive across calls and
	// serializes writers.
	db.SetMaxOpenConns(1)

	ctx := context.Background()
	for _, pragma := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	if err := applyMigrations(ctx, db, migrations.FS, "."); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Repository{db: db}, nil
}

// AddParent inserts a parent and its children in one transaction
func (r *Repository) AddParent(ctx context.Context, parent *domain.Parent) error {
	if parent == nil {
		return fmt.Errorf("parent is required")
	}
	rec := mapper.ToRecord(parent)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := parentExists(ctx, tx, rec.ID)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("add parent %s: %w", rec.ID, repository.ErrParentExists)
	}

	now := toMillis(time.Now())
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO parents (id, value, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, rec.ID, rec.Value, now, now); err != nil {
		return fmt.Errorf("failed to insert parent: %w", err)
	}

	if len(rec.Children) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO children (parent_id, position, id, value)
			VALUES (?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare child statement: %w", err)
		}
		defer stmt.Close()

		for i, c := range rec.Children {
			if _, err := stmt.ExecContext(ctx, rec.ID, i, c.ID, c.Value); err != nil {
				return fmt.Errorf("failed to insert child %s: %w", c.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetParent loads a parent graph by id, or returns nil when it is not stored
func (r *Repository) GetParent(ctx context.Context, id string) (*domain.Parent, error) {
	var row parentRow
	err := r.db.QueryRowContext(ctx, `
		SELECT `+parentColumns+` FROM parents WHERE id = ?
	`, id).Scan(row.scanArgs()...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query parent: %w", err)
	}

	rec := row.toRecord()

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+childColumns+` FROM children WHERE parent_id = ? ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query children: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cr childRow
		if err := rows.Scan(cr.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		rec.Children = append(rec.Children, cr.toRecord())
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating children: %w", err)
	}

	return mapper.ToDomain(&rec), nil
}

// UpdateParent copies child values onto stored children with matching ids
func (r *Repository) UpdateParent(ctx context.Context, parent *domain.Parent) error {
	if parent == nil {
		return fmt.Errorf("parent is required")
	}
	payload := mapper.ToRecord(parent)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	exists, err := parentExists(ctx, tx, payload.ID)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}

	positions, err := childPositions(ctx, tx, payload.ID)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE children SET value = ? WHERE parent_id = ? AND position = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare update statement: %w", err)
	}
	defer stmt.Close()

	updated := 0
	for _, c := range payload.Children {
		pos, ok := positions[c.ID]
		if !ok {
			continue
		}
		if _, err := stmt.ExecContext(ctx, c.Value, payload.ID, pos); err != nil {
			return fmt.Errorf("failed to update child %s: %w", c.ID, err)
		}
		updated++
	}

	if updated > 0 {
		if _, err := tx.ExecContext(ctx, `
			UPDATE parents SET updated_at = ? WHERE id = ?
		`, toMillis(time.Now()), payload.ID); err != nil {
			return fmt.Errorf("failed to touch parent: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// updatedAt returns when the parent was last written, or false if it is not stored
func (r *Repository) updatedAt(ctx context.Context, id string) (time.Time, bool, error) {
	var row parentRow
	err := r.db.QueryRowContext(ctx, `
		SELECT `+parentColumns+` FROM parents WHERE id = ?
	`, id).Scan(row.scanArgs()...)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("failed to query parent: %w", err)
	}
	return fromMillis(row.UpdatedAt), true, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}

func parentExists(ctx context.Context, tx *sql.Tx, id string) (bool, error) {
	var found int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM parents WHERE id = ?`, id).Scan(&found)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to query parent: %w", err)
	}
	return true, nil
}

// childPositions maps each stored child id to the position of its first occurrence
func childPositions(ctx context.Context, tx *sql.Tx, parentID string) (map[string]int, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT `+childColumns+` FROM children WHERE parent_id = ? ORDER BY position
	`, parentID)
	if err != nil {
		return nil, fmt.Errorf("failed to query children: %w", err)
	}
	defer rows.Close()

	positions := make(map[string]int)
	for rows.Next() {
		var cr childRow
		if err := rows.Scan(cr.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan child: %w", err)
		}
		if _, ok := positions[cr.ID]; !ok {
			positions[cr.ID] = cr.Position
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating children: %w", err)
	}

	return positions, nil
}
