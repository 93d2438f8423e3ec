package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"novatrend/internal/model"
)

// SnapshotRepository stores the last non-empty result of each feed. A save
// replaces the previous snapshot of that feed.
type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

const snapshotSchema = `
	CREATE TABLE IF NOT EXISTS feed_snapshot (
		feed         TEXT NOT NULL,
		position     INT NOT NULL,
		id           TEXT NOT NULL,
		headline     TEXT NOT NULL,
		summary      TEXT NOT NULL,
		source       TEXT NOT NULL,
		url          TEXT NOT NULL,
		grade        TEXT NOT NULL,
		confidence   DOUBLE PRECISION NOT NULL,
		published_at TIMESTAMPTZ NOT NULL,
		region       TEXT NOT NULL DEFAULT '',
		keywords     TEXT[] NOT NULL DEFAULT '{}',
		saved_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (feed, position)
	)`

func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, snapshotSchema)
	return err
}

func (r *SnapshotRepository) Save(ctx context.Context, feed string, records []model.AnalyzedRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM feed_snapshot WHERE feed = $1`, feed)
	if err != nil {
		return fmt.Errorf("clear snapshot %s: %w", feed, err)
	}

	for i, rec := range records {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO feed_snapshot(feed, position, id, headline, summary, source, url, grade, confidence, published_at, region, keywords)
			VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, feed, i, rec.ID, rec.Headline, rec.Summary, rec.Source, rec.URL, string(rec.Grade), rec.Confidence, rec.PublishedAt, string(rec.Region), pq.Array(rec.Keywords))
		if err != nil {
			return fmt.Errorf("insert snapshot %s: %w", feed, err)
		}
	}

	return tx.Commit()
}

// Load returns the snapshot in saved order; empty when none exists.
func (r *SnapshotRepository) Load(ctx context.Context, feed string) ([]model.AnalyzedRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, headline, summary, source, url, grade, confidence, published_at, region, keywords
		FROM feed_snapshot
		WHERE feed = $1
		ORDER BY position ASC
	`, feed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []model.AnalyzedRecord
	for rows.Next() {
		var (
			rec    model.AnalyzedRecord
			grade  string
			region string
		)
		err := rows.Scan(&rec.ID, &rec.Headline, &rec.Summary, &rec.Source, &rec.URL, &grade, &rec.Confidence, &rec.PublishedAt, &region, pq.Array(&rec.Keywords))
		if err != nil {
			return nil, err
		}
		rec.Grade = model.Grade(grade)
		rec.Region = model.Region(region)
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
