package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/keesa/smsparse/internal/common"
	"github.com/keesa/smsparse/internal/model"
	"github.com/keesa/smsparse/internal/textutil"
)

// SaveMerchant inserts or updates a catalog entry. The normalized name is
// the primary key, so re-importing the same merchant refreshes its display
// name instead of duplicating it.
func (s *SQLiteStorage) SaveMerchant(ctx context.Context, merchant *model.Merchant) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateMerchant(merchant); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO merchants (name, display_name, source)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			display_name = excluded.display_name,
			source = excluded.source
	`, textutil.Normalize(merchant.Name), merchant.DisplayName, merchant.Source)
	if err != nil {
		return fmt.Errorf("failed to save merchant: %w", err)
	}

	return nil
}

// GetMerchant retrieves a merchant by its normalized name.
func (s *SQLiteStorage) GetMerchant(ctx context.Context, name string) (*model.Merchant, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	var m model.Merchant
	err := s.db.QueryRowContext(ctx, `
		SELECT name, display_name, source, created_at
		FROM merchants
		WHERE name = ?
	`, textutil.Normalize(name)).Scan(&m.Name, &m.DisplayName, &m.Source, &m.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get merchant: %w", err)
	}

	return &m, nil
}

// ListMerchants returns the whole catalog ordered by name. The order is
// stable, which the index build relies on for positional alignment.
func (s *SQLiteStorage) ListMerchants(ctx context.Context) ([]model.Merchant, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, display_name, source, created_at
		FROM merchants
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list merchants: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var merchants []model.Merchant
	for rows.Next() {
		var m model.Merchant
		if scanErr := rows.Scan(&m.Name, &m.DisplayName, &m.Source, &m.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan merchant: %w", scanErr)
		}
		merchants = append(merchants, m)
	}

	return merchants, rows.Err()
}

// CountMerchants returns the catalog size.
func (s *SQLiteStorage) CountMerchants(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM merchants`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count merchants: %w", err)
	}
	return count, nil
}

// RecordIndexBuild stores the metadata of a completed index build run.
func (s *SQLiteStorage) RecordIndexBuild(ctx context.Context, buildID string, merchantCount, dimension int) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(buildID, "buildID"); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO index_builds (build_id, merchant_count, dimension, built_at)
		VALUES (?, ?, ?, ?)
	`, buildID, merchantCount, dimension, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record index build: %w", err)
	}
	return nil
}
