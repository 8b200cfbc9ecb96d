package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// LabRecord is one archived lab. Payload holds the full lab JSON
// exactly as it is offered for download.
type LabRecord struct {
	ID         string
	Topic      string
	Difficulty string
	Title      string
	Payload    string
	CreatedAt  time.Time
}

// CreateLab inserts a new lab record.
func (d *DB) CreateLab(ctx context.Context, record *LabRecord) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT INTO labs (id, topic, difficulty, title, payload)
		VALUES (?, ?, ?, ?, ?)
	`, record.ID, record.Topic, record.Difficulty, record.Title, record.Payload)

	if err != nil {
		return fmt.Errorf("failed to insert lab: %w", err)
	}

	d.logger.Info().
		Str("lab_id", record.ID).
		Str("topic", record.Topic).
		Str("title", record.Title).
		Msg("Lab archived")

	return nil
}

// GetLab retrieves a lab by ID. Returns (nil, nil) when not found.
func (d *DB) GetLab(ctx context.Context, id string) (*LabRecord, error) {
	var record LabRecord

	err := d.db.QueryRowContext(ctx, `
		SELECT id, topic, difficulty, title, payload, created_at
		FROM labs WHERE id = ?
	`, id).Scan(
		&record.ID, &record.Topic, &record.Difficulty,
		&record.Title, &record.Payload, &record.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get lab: %w", err)
	}

	return &record, nil
}

// ListLabs returns the most recent labs, newest first.
func (d *DB) ListLabs(ctx context.Context, limit int) ([]*LabRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := d.db.QueryContext(ctx, `
		SELECT id, topic, difficulty, title, payload, created_at
		FROM labs ORDER BY created_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list labs: %w", err)
	}
	defer rows.Close()

	var records []*LabRecord
	for rows.Next() {
		var record LabRecord
		if err := rows.Scan(
			&record.ID, &record.Topic, &record.Difficulty,
			&record.Title, &record.Payload, &record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan lab: %w", err)
		}
		records = append(records, &record)
	}

	return records, rows.Err()
}

// DeleteLab removes a lab from the archive.
func (d *DB) DeleteLab(ctx context.Context, id string) error {
	result, err := d.db.ExecContext(ctx, "DELETE FROM labs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete lab: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("lab not found: %s", id)
	}

	d.logger.Info().Str("lab_id", id).Msg("Lab deleted")
	return nil
}
