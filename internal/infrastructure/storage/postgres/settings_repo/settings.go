// Package settings_repo provides the PostgreSQL implementation of the
// settings key-value store.
package settings_repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"billmint/internal/domain/settings"
	"billmint/internal/infrastructure/storage/postgres"
)

const settingsTable = "settings"

// SettingsRepo implements settings.Store on a key/JSONB table.
type SettingsRepo struct {
	txm *postgres.TxManager
}

// Ensure compile-time interface compliance.
var _ settings.Store = (*SettingsRepo)(nil)

// NewSettingsRepo creates a new settings repository.
func NewSettingsRepo(txm *postgres.TxManager) *SettingsRepo {
	return &SettingsRepo{txm: txm}
}

// Get returns the raw value for key, or (nil, nil) when the key is absent.
func (r *SettingsRepo) Get(ctx context.Context, key string) (json.RawMessage, error) {
	querier := r.txm.GetQuerier(ctx)

	var value json.RawMessage
	err := querier.QueryRow(ctx,
		"SELECT value FROM "+settingsTable+" WHERE key = $1", key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get setting %s: %w", key, err)
	}

	return value, nil
}

// Set upserts the value for key.
func (r *SettingsRepo) Set(ctx context.Context, key string, value json.RawMessage) error {
	querier := r.txm.GetQuerier(ctx)

	_, err := querier.Exec(ctx, `
        INSERT INTO `+settingsTable+` (key, value, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (key)
        DO UPDATE SET value = $2, updated_at = NOW()
	`, key, value)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}

	return nil
}
