package sqlite

import (
	"time"

	"graphmap/internal/record"
)

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// ============================================================================
// Parent Row Scanner
// ============================================================================

// parentRow holds all columns from a parent query for scanning
type parentRow struct {
	ID        string
	Value     string
	CreatedAt int64
	UpdatedAt int64
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match parentColumns order exactly
func (r *parentRow) scanArgs() []any {
	return []any{
		&r.ID,        // 1
		&r.Value,     // 2
		&r.CreatedAt, // 3
		&r.UpdatedAt, // 4
	}
}

// toRecord converts the scanned row to a record with an empty child slice
func (r *parentRow) toRecord() record.Parent {
	return record.Parent{
		ID:       r.ID,
		Value:    r.Value,
		Children: []record.Child{},
	}
}

const parentColumns = `id, value, created_at, updated_at`

// ============================================================================
// Child Row Scanner
// ============================================================================

// childRow holds all columns from a child query for scanning
type childRow struct {
	ParentID string
	Position int
	ID       string
	Value    string
}

// scanArgs returns pointers to all fields for sql.Scan()
// MUST match childColumns order exactly
func (r *childRow) scanArgs() []any {
	return []any{
		&r.ParentID, // 1
		&r.Position, // 2
		&r.ID,       // 3
		&r.Value,    // 4
	}
}

func (r *childRow) toRecord() record.Child {
	return record.Child{
		ID:    r.ID,
		Value: r.Value,
	}
}

const childColumns = `parent_id, position, id, value`
